package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	SessionCookie = "session"

	principalKey = "principal"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOperator Role = "operator"
)

// Account is a login known to the mock identity store.
type Account struct {
	ID        kernel.UserID
	Email     string
	FirstName string
	LastName  string
	Role      Role

	passwordHash []byte
}

// Accounts holds the demo logins. Passwords are only kept as bcrypt hashes.
type Accounts struct {
	byEmail map[string]Account
	byID    map[kernel.UserID]Account
}

type demoAccount struct {
	id, email, password, firstName, lastName string
	role                                     Role
}

var demoAccounts = []demoAccount{
	{"demo-001", "demo@china2india.com", "demo123", "Demo", "User", RoleCustomer},
	{"test-001", "test@example.com", "test123", "Test", "User", RoleCustomer},
	{"john-001", "john@example.com", "john123", "John", "Doe", RoleCustomer},
	{"ops-001", "ops@china2india.com", "ops123", "Warehouse", "Operator", RoleOperator},
}

// NewDemoAccounts hashes the built-in demo logins.
func NewDemoAccounts() (*Accounts, error) {
	accounts := &Accounts{
		byEmail: make(map[string]Account, len(demoAccounts)),
		byID:    make(map[kernel.UserID]Account, len(demoAccounts)),
	}
	for _, d := range demoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password of %s: %w", d.email, err)
		}
		account := Account{
			ID:           kernel.UserID(d.id),
			Email:        d.email,
			FirstName:    d.firstName,
			LastName:     d.lastName,
			Role:         d.role,
			passwordHash: hash,
		}
		accounts.byEmail[d.email] = account
		accounts.byID[account.ID] = account
	}
	return accounts, nil
}

// Authenticate returns errs.ErrUnauthorized for unknown emails and wrong
// passwords alike.
func (a *Accounts) Authenticate(email, password string) (Account, error) {
	account, ok := a.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return Account{}, errs.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)); err != nil {
		return Account{}, errs.ErrUnauthorized
	}
	return account, nil
}

func (a *Accounts) Get(id kernel.UserID) (Account, bool) {
	account, ok := a.byID[id]
	return account, ok
}

// Principal is the caller resolved from the session cookie.
type Principal struct {
	UserID kernel.UserID
	Email  string
	Role   Role
}

func (p Principal) IsOperator() bool {
	return p.Role == RoleOperator
}

type sessionClaims struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies HS256 session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessions(secret string, ttl time.Duration) (*Sessions, error) {
	if len(secret) < 16 {
		return nil, errs.NewValueIsInvalidErrorWithCause("sessionSecret", errors.New("must be at least 16 bytes"))
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("sessionTTL", ttl, "1ns", "unbounded")
	}
	return &Sessions{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *Sessions) Issue(account Account) (string, error) {
	now := s.now()
	claims := sessionClaims{
		Email: account.Email,
		Role:  account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Sessions) Parse(token string) (Principal, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", errs.ErrUnauthorized, err)
	}

	userID, err := kernel.NewUserID(claims.Subject)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", errs.ErrUnauthorized, err)
	}

	return Principal{UserID: userID, Email: claims.Email, Role: claims.Role}, nil
}

func (s *Sessions) cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  s.now().Add(s.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// RequireSession rejects requests without a valid session cookie and stores
// the resolved Principal on the echo context.
func (s *Server) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			return s.respondError(c, errs.ErrUnauthorized)
		}

		principal, err := s.sessions.Parse(cookie.Value)
		if err != nil {
			return s.respondError(c, err)
		}

		c.Set(principalKey, principal)
		return next(c)
	}
}

// RequireOperator must run after RequireSession.
func (s *Server) RequireOperator(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !principalFrom(c).IsOperator() {
			return s.respondError(c, errs.ErrForbidden)
		}
		return next(c)
	}
}

func principalFrom(c echo.Context) Principal {
	p, _ := c.Get(principalKey).(Principal)
	return p
}
