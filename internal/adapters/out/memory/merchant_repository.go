package memory

import (
	"context"

	"shipping/internal/core/domain/model/merchant"
	"shipping/internal/core/ports"
)

type MerchantRepository struct {
	uow *UnitOfWork
}

var _ ports.MerchantRepository = (*MerchantRepository)(nil)

func (r *MerchantRepository) Add(_ context.Context, m *merchant.Merchant) error {
	if err := r.uow.requireActive(); err != nil {
		return err
	}

	m.AssignID(r.uow.store.allocateMerchantID())
	row := merchantRow{
		id:          m.ID(),
		name:        m.Name(),
		category:    m.Category(),
		url:         m.URL(),
		imageURL:    m.ImageURL(),
		description: m.Description(),
	}
	r.uow.stage(change{
		apply: func(s *Store) { s.merchants = append(s.merchants, row) },
	}, nil)
	return nil
}

func (r *MerchantRepository) List(_ context.Context) ([]*merchant.Merchant, error) {
	s := r.uow.store
	s.mu.RLock()
	rows := append([]merchantRow(nil), s.merchants...)
	s.mu.RUnlock()

	merchants := make([]*merchant.Merchant, 0, len(rows))
	for _, row := range rows {
		m, err := merchant.RestoreMerchant(row.id, row.name, row.category, row.url, row.imageURL, row.description)
		if err != nil {
			return nil, err
		}
		merchants = append(merchants, m)
	}
	return merchants, nil
}

func (r *MerchantRepository) Count(_ context.Context) (int64, error) {
	s := r.uow.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.merchants)), nil
}
