package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"shipping/internal/pkg/errs"
)

// ParcelID is the store-assigned identifier of a parcel. It is positive and
// stable for the lifetime of the record.
type ParcelID int64

// NewParcelID validates a raw identifier coming from a path parameter or a database row.
func NewParcelID(value int64) (ParcelID, error) {
	id := ParcelID(value)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// Validate rejects zero and negative identifiers.
func (id ParcelID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("parcelId", fmt.Errorf("%d is not greater than 0", int64(id)))
	}
	return nil
}

// Int64 returns the raw identifier.
func (id ParcelID) Int64() int64 {
	return int64(id)
}

func (id ParcelID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// UserID identifies the owner of parcels and profiles. It comes from the
// authenticated session and never changes for a given record.
type UserID string

// NewUserID trims surrounding whitespace and rejects empty identifiers.
func NewUserID(value string) (UserID, error) {
	id := UserID(strings.TrimSpace(value))
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate rejects the empty identifier.
func (id UserID) Validate() error {
	if strings.TrimSpace(string(id)) == "" {
		return errs.NewValueIsRequiredError("userId")
	}
	return nil
}

func (id UserID) String() string {
	return string(id)
}
