package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpin "shipping/internal/adapters/in/http"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/application/verification"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/jobs"
)

var ErrProviderCannotReceiveCallbacks = errors.New("call provider does not accept webhook callbacks")

type CompositionRoot struct {
	cfg        Config
	uowFactory ports.UnitOfWorkFactory
	provider   ports.CallProvider
	tariff     services.Tariff
	gate       *verification.Gate
	logger     *slog.Logger
}

// NewCompositionRoot wires the application over one store and one call
// provider. The provider must also accept callbacks so the webhook endpoint
// can feed it.
func NewCompositionRoot(
	cfg Config,
	uowFactory ports.UnitOfWorkFactory,
	provider ports.CallProvider,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	tariff, err := services.NewTariff(cfg.TariffRatePerKg, cfg.TariffFXRate)
	if err != nil {
		return nil, fmt.Errorf("tariff: %w", err)
	}
	if _, ok := provider.(commands.CallEventSink); !ok {
		return nil, ErrProviderCannotReceiveCallbacks
	}

	c := &CompositionRoot{
		cfg:        cfg,
		uowFactory: uowFactory,
		provider:   provider,
		tariff:     tariff,
		logger:     logger,
	}
	c.gate = verification.NewGate(
		verification.UoWFactoryFunc(func() verification.UoW { return c.uowFactory.Create() }),
		provider,
		logger,
		cfg.CallTimeout,
	)
	return c, nil
}

// Gate is the verification gate; its Run loop must be started by the caller.
func (c *CompositionRoot) Gate() *verification.Gate {
	return c.gate
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) profileUoWFactory() commands.ProfileUoWFactory {
	return FuncProfileUoWFactory(func() commands.ProfileUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateRecordWeightCommandHandler() commands.RecordWeightCommandHandler {
	return commands.NewRecordWeightCommandHandler(c.parcelUoWFactory(), c.tariff)
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() commands.RequestTransitionCommandHandler {
	return commands.NewRequestTransitionCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateAttachImagesCommandHandler() commands.AttachImagesCommandHandler {
	return commands.NewAttachImagesCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateInitiateVerificationCommandHandler() commands.InitiateVerificationCommandHandler {
	return commands.NewInitiateVerificationCommandHandler(c.gate)
}

func (c *CompositionRoot) CreateReportCallEventCommandHandler() commands.ReportCallEventCommandHandler {
	sink, _ := c.provider.(commands.CallEventSink)
	return commands.NewReportCallEventCommandHandler(sink)
}

func (c *CompositionRoot) CreateEnsureProfileCommandHandler() commands.EnsureProfileCommandHandler {
	return commands.NewEnsureProfileCommandHandler(c.profileUoWFactory())
}

func (c *CompositionRoot) CreateUpdateProfileCommandHandler() commands.UpdateProfileCommandHandler {
	return commands.NewUpdateProfileCommandHandler(c.profileUoWFactory())
}

func (c *CompositionRoot) CreateSubmitKycCommandHandler() commands.SubmitKycCommandHandler {
	return commands.NewSubmitKycCommandHandler(c.profileUoWFactory())
}

func (c *CompositionRoot) CreateFailStaleCallsCommandHandler() commands.FailStaleCallsCommandHandler {
	var f commands.CallUoWFactory = FuncCallUoWFactory(func() commands.CallUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFailStaleCallsCommandHandler(f)
}

func (c *CompositionRoot) CreateSeedMerchantsCommandHandler() commands.SeedMerchantsCommandHandler {
	var f commands.MerchantUoWFactory = FuncMerchantUoWFactory(func() commands.MerchantUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSeedMerchantsCommandHandler(f)
}

func (c *CompositionRoot) parcelReaders() queries.ParcelReaderFactory {
	return FuncParcelReaderFactory(func() queries.ParcelReader {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.parcelReaders())
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.parcelReaders())
}

func (c *CompositionRoot) CreateAdminDashboardQueryHandler() queries.AdminDashboardQueryHandler {
	return queries.NewAdminDashboardQueryHandler(c.parcelReaders())
}

func (c *CompositionRoot) CreateListMerchantsQueryHandler() queries.ListMerchantsQueryHandler {
	var f queries.MerchantReaderFactory = FuncMerchantReaderFactory(func() queries.MerchantReader {
		return c.uowFactory.Create()
	})
	return queries.NewListMerchantsQueryHandler(f)
}

func (c *CompositionRoot) CreateCalculatePriceQueryHandler() queries.CalculatePriceQueryHandler {
	return queries.NewCalculatePriceQueryHandler(c.tariff)
}

// CreateHTTPServer builds the API server with the demo accounts.
func (c *CompositionRoot) CreateHTTPServer() (*httpin.Server, error) {
	api, err := httpin.LoadAPIDocument()
	if err != nil {
		return nil, err
	}
	accounts, err := httpin.NewDemoAccounts()
	if err != nil {
		return nil, err
	}
	sessions, err := httpin.NewSessions(c.cfg.SessionSecret, c.cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	handlers := httpin.Handlers{
		CreateParcel:         c.CreateCreateParcelCommandHandler(),
		RecordWeight:         c.CreateRecordWeightCommandHandler(),
		RequestTransition:    c.CreateRequestTransitionCommandHandler(),
		AttachImages:         c.CreateAttachImagesCommandHandler(),
		InitiateVerification: c.CreateInitiateVerificationCommandHandler(),
		ReportCallEvent:      c.CreateReportCallEventCommandHandler(),
		EnsureProfile:        c.CreateEnsureProfileCommandHandler(),
		UpdateProfile:        c.CreateUpdateProfileCommandHandler(),
		SubmitKyc:            c.CreateSubmitKycCommandHandler(),
		GetParcel:            c.CreateGetParcelQueryHandler(),
		ListParcels:          c.CreateListParcelsQueryHandler(),
		ListMerchants:        c.CreateListMerchantsQueryHandler(),
		CalculatePrice:       c.CreateCalculatePriceQueryHandler(),
		AdminDashboard:       c.CreateAdminDashboardQueryHandler(),
	}

	return httpin.NewServer(handlers, accounts, sessions, api, c.logger,
		httpin.WithWebhookSecret(c.cfg.CallWebhookSecret)), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	reaper := jobs.NewStaleCallReaperJob(
		c.CreateFailStaleCallsCommandHandler(),
		c.cfg.StaleCallAfter,
		c.cfg.StaleCallSchedule,
		c.logger,
	)
	return jobs.NewJobManager(reaper)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncProfileUoWFactory func() commands.ProfileUoW

func (f FuncProfileUoWFactory) Create() commands.ProfileUoW {
	return f()
}

type FuncCallUoWFactory func() commands.CallUoW

func (f FuncCallUoWFactory) Create() commands.CallUoW {
	return f()
}

type FuncMerchantUoWFactory func() commands.MerchantUoW

func (f FuncMerchantUoWFactory) Create() commands.MerchantUoW {
	return f()
}

type FuncParcelReaderFactory func() queries.ParcelReader

func (f FuncParcelReaderFactory) Create() queries.ParcelReader {
	return f()
}

type FuncMerchantReaderFactory func() queries.MerchantReader

func (f FuncMerchantReaderFactory) Create() queries.MerchantReader {
	return f()
}
