package http

import (
	"net/http"

	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Login handles POST /api/login - exchanges demo credentials for a session cookie.
func (s *Server) Login(ctx echo.Context) error {
	var body Credentials
	if err := s.api.bind(ctx, "Credentials", &body); err != nil {
		return s.respondError(ctx, err)
	}

	account, err := s.accounts.Authenticate(body.Email, body.Password)
	if err != nil {
		s.logger.InfoContext(ctx.Request().Context(), "login rejected", "email", body.Email)
		return s.respondError(ctx, err)
	}

	token, err := s.sessions.Issue(account)
	if err != nil {
		return s.respondError(ctx, err)
	}

	ctx.SetCookie(s.sessions.cookie(token))
	return ctx.JSON(http.StatusOK, toUser(account))
}

// Logout handles POST /api/logout.
func (s *Server) Logout(ctx echo.Context) error {
	ctx.SetCookie(expiredCookie())
	return ctx.NoContent(http.StatusNoContent)
}

// CurrentUser handles GET /api/auth/user.
func (s *Server) CurrentUser(ctx echo.Context) error {
	account, ok := s.accounts.Get(principalFrom(ctx).UserID)
	if !ok {
		return s.respondError(ctx, errs.ErrUnauthorized)
	}

	return ctx.JSON(http.StatusOK, toUser(account))
}
