package profile

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

const (
	DefaultTrustScore = 50
	DefaultCodLimit   = int64(15000)

	MinTrustScore = 0
	MaxTrustScore = 100
)

// ErrProfileIsNotConstructed is returned when a Profile was not created through
// NewProfile or RestoreProfile.
var ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile or RestoreProfile")

// Profile holds the customer data that surrounds parcels: contact details, the
// personal warehouse address in China and the KYC state.
type Profile struct {
	userID        kernel.UserID
	trustScore    int
	codLimit      int64
	phoneNumber   string
	indianAddress string
	warehouseAddr string
	aadhaarURL    string
	isKycVerified bool
	createdAt     time.Time
	updatedAt     time.Time
	isConstructed bool
}

// NewProfile creates the default profile of a user. The warehouse address is
// derived from the user id so that inbound parcels can be matched to the owner.
func NewProfile(userID kernel.UserID, now time.Time) (*Profile, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	return &Profile{
		userID:        userID,
		trustScore:    DefaultTrustScore,
		codLimit:      DefaultCodLimit,
		warehouseAddr: WarehouseAddress(userID),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// WarehouseAddress returns the Guangzhou consolidation address assigned to userID.
func WarehouseAddress(userID kernel.UserID) string {
	code := strings.ToUpper(userID.String())
	if len(code) > 6 {
		code = code[:6]
	}
	return fmt.Sprintf("No. 888, Logistic Park, Baiyun District, Guangzhou, ID: CN-WAREHOUSE-%s-001", code)
}

// Snapshot is the persisted state of a profile.
type Snapshot struct {
	UserID           kernel.UserID
	TrustScore       int
	CodLimit         int64
	PhoneNumber      string
	IndianAddress    string
	WarehouseAddress string
	AadhaarURL       string
	IsKycVerified    bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RestoreProfile rebuilds a profile from storage.
func RestoreProfile(s Snapshot) (*Profile, error) {
	var errList []error
	errList = append(errList, s.UserID.Validate())
	if s.TrustScore < MinTrustScore || s.TrustScore > MaxTrustScore {
		errList = append(errList, errs.NewValueIsOutOfRangeError("trustScore", s.TrustScore, MinTrustScore, MaxTrustScore))
	}
	if s.CodLimit < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("codLimit", s.CodLimit, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Profile{
		userID:        s.UserID,
		trustScore:    s.TrustScore,
		codLimit:      s.CodLimit,
		phoneNumber:   s.PhoneNumber,
		indianAddress: s.IndianAddress,
		warehouseAddr: s.WarehouseAddress,
		aadhaarURL:    s.AadhaarURL,
		isKycVerified: s.IsKycVerified,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}, nil
}

func (p *Profile) Snapshot() Snapshot {
	return Snapshot{
		UserID:           p.userID,
		TrustScore:       p.trustScore,
		CodLimit:         p.codLimit,
		PhoneNumber:      p.phoneNumber,
		IndianAddress:    p.indianAddress,
		WarehouseAddress: p.warehouseAddr,
		AadhaarURL:       p.aadhaarURL,
		IsKycVerified:    p.isKycVerified,
		CreatedAt:        p.createdAt,
		UpdatedAt:        p.updatedAt,
	}
}

func (p *Profile) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProfileIsNotConstructed
	}
	return nil
}

func (p *Profile) UserID() kernel.UserID { return p.userID }
func (p *Profile) TrustScore() int { return p.trustScore }
func (p *Profile) CodLimit() int64 { return p.codLimit }
func (p *Profile) PhoneNumber() string { return p.phoneNumber }
func (p *Profile) IndianAddress() string { return p.indianAddress }
func (p *Profile) WarehouseAddress() string { return p.warehouseAddr }
func (p *Profile) AadhaarURL() string { return p.aadhaarURL }
func (p *Profile) IsKycVerified() bool { return p.isKycVerified }
func (p *Profile) CreatedAt() time.Time { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time { return p.updatedAt }

// Contact carries optional contact changes. Nil fields are left as they are.
type Contact struct {
	PhoneNumber   *string
	IndianAddress *string
}

// UpdateContact changes the phone number and the Indian delivery address.
func (p *Profile) UpdateContact(c Contact, now time.Time) error {
	if c.PhoneNumber == nil && c.IndianAddress == nil {
		return errs.NewValueIsRequiredErrorWithCause("profile", errors.New("nothing to update"))
	}

	phone := p.phoneNumber
	if c.PhoneNumber != nil {
		phone = strings.TrimSpace(*c.PhoneNumber)
		if err := validatePhone(phone); err != nil {
			return err
		}
	}

	address := p.indianAddress
	if c.IndianAddress != nil {
		address = strings.TrimSpace(*c.IndianAddress)
	}

	p.phoneNumber = phone
	p.indianAddress = address
	p.updatedAt = now
	return nil
}

// SubmitKyc stores the identity document reference. Document review is
// simulated and accepts the submission immediately.
func (p *Profile) SubmitKyc(aadhaarURL string, now time.Time) error {
	aadhaarURL = strings.TrimSpace(aadhaarURL)
	if aadhaarURL == "" {
		return errs.NewValueIsRequiredError("aadhaarUrl")
	}
	if _, err := url.ParseRequestURI(aadhaarURL); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("aadhaarUrl", err)
	}

	p.aadhaarURL = aadhaarURL
	p.isKycVerified = true
	p.updatedAt = now
	return nil
}

// validatePhone accepts an empty value (to clear the number) or digits with
// the usual separators and an optional leading plus.
func validatePhone(phone string) error {
	if phone == "" {
		return nil
	}

	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return errs.NewValueIsInvalidErrorWithCause("phoneNumber", fmt.Errorf("unexpected character %q", r))
		}
	}
	if digits < 7 || digits > 15 {
		return errs.NewValueIsInvalidErrorWithCause("phoneNumber", fmt.Errorf("%d digits, expected 7 to 15", digits))
	}
	return nil
}
