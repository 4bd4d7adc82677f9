package http

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const webhookSecretHeader = "X-Webhook-Secret"

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	// Command handlers
	CreateParcel         commands.CreateParcelCommandHandler
	RecordWeight         commands.RecordWeightCommandHandler
	RequestTransition    commands.RequestTransitionCommandHandler
	AttachImages         commands.AttachImagesCommandHandler
	InitiateVerification commands.InitiateVerificationCommandHandler
	ReportCallEvent      commands.ReportCallEventCommandHandler
	EnsureProfile        commands.EnsureProfileCommandHandler
	UpdateProfile        commands.UpdateProfileCommandHandler
	SubmitKyc            commands.SubmitKycCommandHandler

	// Query handlers
	GetParcel      queries.GetParcelQueryHandler
	ListParcels    queries.ListParcelsQueryHandler
	ListMerchants  queries.ListMerchantsQueryHandler
	CalculatePrice queries.CalculatePriceQueryHandler
	AdminDashboard queries.AdminDashboardQueryHandler
}

// Server maps HTTP requests onto the application use cases.
type Server struct {
	handlers      Handlers
	accounts      *Accounts
	sessions      *Sessions
	api           *APIDocument
	webhookSecret string
	logger        *slog.Logger
}

type Option func(*Server)

// WithWebhookSecret makes the call provider callback require the shared
// secret in the X-Webhook-Secret header.
func WithWebhookSecret(secret string) Option {
	return func(s *Server) {
		s.webhookSecret = secret
	}
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	handlers Handlers,
	accounts *Accounts,
	sessions *Sessions,
	api *APIDocument,
	logger *slog.Logger,
	opts ...Option,
) *Server {
	s := &Server{
		handlers: handlers,
		accounts: accounts,
		sessions: sessions,
		api:      api,
		logger:   logger.With("component", "http"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register mounts every route under /api.
func (s *Server) Register(e *echo.Echo) {
	s.api.Register()

	api := e.Group("/api")
	api.GET("/health", s.Health)
	api.GET("/swagger/*", echoSwagger.WrapHandler)

	api.POST("/login", s.Login)
	api.POST("/logout", s.Logout)
	api.GET("/auth/user", s.CurrentUser, s.RequireSession)

	api.POST("/calculate", s.CalculatePrice)
	api.GET("/stores", s.ListStores)
	api.POST("/webhooks/calls", s.ReportCallEvent)

	api.GET("/parcels", s.ListParcels, s.RequireSession)
	api.POST("/parcels", s.CreateParcel, s.RequireSession)
	api.GET("/parcels/:id", s.GetParcel, s.RequireSession)
	api.POST("/parcels/:id/verify-voice", s.VerifyVoice, s.RequireSession)

	api.PATCH("/parcels/:id/status", s.ChangeParcelStatus, s.RequireSession, s.RequireOperator)
	api.POST("/parcels/:id/weight", s.RecordParcelWeight, s.RequireSession, s.RequireOperator)
	api.POST("/parcels/:id/images", s.AttachParcelImages, s.RequireSession, s.RequireOperator)
	api.GET("/admin/dashboard", s.Dashboard, s.RequireSession, s.RequireOperator)

	api.GET("/profile", s.GetProfile, s.RequireSession)
	api.PATCH("/profile", s.UpdateProfile, s.RequireSession)
	api.POST("/profile/kyc", s.SubmitKyc, s.RequireSession)
}

// Health handles GET /api/health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// ReportCallEvent handles POST /api/webhooks/calls - a call provider status callback.
func (s *Server) ReportCallEvent(ctx echo.Context) error {
	if s.webhookSecret != "" {
		got := ctx.Request().Header.Get(webhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.webhookSecret)) != 1 {
			return s.respondError(ctx, errs.ErrUnauthorized)
		}
	}

	var body CallEvent
	if err := s.api.bind(ctx, "CallEvent", &body); err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewReportCallEventCommand(body.CallID, body.Status, body.Duration, body.RecordingURL, body.Reason)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.handlers.ReportCallEvent.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}
