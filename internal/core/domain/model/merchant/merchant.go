// Package merchant provides the directory of recommended Chinese marketplaces
// and shops. The directory is reference data: it is seeded, listed and never
// changed by customers.
package merchant

import (
	"errors"
	"net/url"
	"strings"

	"shipping/internal/pkg/errs"
)

// Merchant is one directory entry.
type Merchant struct {
	id          int64
	name        string
	category    string
	url         string
	imageURL    string
	description string
}

// NewMerchant validates a directory entry. The id is assigned by the store.
func NewMerchant(name, category, storeURL, imageURL, description string) (*Merchant, error) {
	m := &Merchant{
		name:        strings.TrimSpace(name),
		category:    strings.TrimSpace(category),
		url:         strings.TrimSpace(storeURL),
		imageURL:    strings.TrimSpace(imageURL),
		description: strings.TrimSpace(description),
	}

	var errList []error
	if m.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if m.category == "" {
		errList = append(errList, errs.NewValueIsRequiredError("category"))
	}
	errList = append(errList, validateURL("url", m.url), validateURL("imageUrl", m.imageURL))
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMerchant rebuilds a stored entry.
func RestoreMerchant(id int64, name, category, storeURL, imageURL, description string) (*Merchant, error) {
	m, err := NewMerchant(name, category, storeURL, imageURL, description)
	if err != nil {
		return nil, err
	}
	m.id = id
	return m, nil
}

func (m *Merchant) ID() int64           { return m.id }
func (m *Merchant) Name() string        { return m.name }
func (m *Merchant) Category() string    { return m.category }
func (m *Merchant) URL() string         { return m.url }
func (m *Merchant) ImageURL() string    { return m.imageURL }
func (m *Merchant) Description() string { return m.description }

// AssignID is called by the store when the entry is persisted.
func (m *Merchant) AssignID(id int64) {
	m.id = id
}

func validateURL(param, raw string) error {
	if raw == "" {
		return nil
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return nil
}

// Seed is the default directory loaded into an empty store.
func Seed() []*Merchant {
	entries := [][5]string{
		{"FashionTrend", "Clothing", "https://world.taobao.com", "https://images.unsplash.com/photo-1441986300917-64674bd600d8", "Trendy apparel from Taobao sellers"},
		{"TechGadgets", "Electronics", "https://www.1688.com", "https://images.unsplash.com/photo-1498049794561-7780e7231661", "Wholesale electronics and accessories from 1688"},
		{"KidsZone", "Kids", "https://world.taobao.com", "https://images.unsplash.com/photo-1515488042361-ee00e0ddd4e4", "Toys and clothing for children"},
		{"HomeDecor", "Home", "https://www.1688.com", "https://images.unsplash.com/photo-1484101403633-562f891dc89a", "Furniture and home accessories"},
	}

	seed := make([]*Merchant, 0, len(entries))
	for _, e := range entries {
		m, err := NewMerchant(e[0], e[1], e[2], e[3], e[4])
		if err != nil {
			panic(err)
		}
		seed = append(seed, m)
	}
	return seed
}
