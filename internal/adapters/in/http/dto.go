package http

import (
	"time"

	"shipping/internal/core/domain/model/merchant"
	"shipping/internal/core/domain/model/parcel"
	"shipping/internal/core/domain/model/profile"
	"shipping/internal/core/ports"
)

type (
	Credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	NewParcel struct {
		TrackingNumber string `json:"trackingNumber"`
		Description    string `json:"description"`
	}

	StatusChange struct {
		Status string `json:"status"`
	}

	WeightRecord struct {
		Weight float64 `json:"weight"`
	}

	ImageAttachment struct {
		Images []string `json:"images"`
	}

	PriceRequest struct {
		Weight float64 `json:"weight"`
	}

	ProfileUpdate struct {
		PhoneNumber   *string `json:"phoneNumber"`
		IndianAddress *string `json:"indianAddress"`
	}

	KycSubmission struct {
		AadhaarURL string `json:"aadhaarUrl"`
	}

	CallEvent struct {
		CallID       string `json:"callId"`
		Status       string `json:"status"`
		Duration     int    `json:"duration"`
		RecordingURL string `json:"recordingUrl"`
		Reason       string `json:"reason"`
	}
)

type (
	User struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Role      Role   `json:"role"`
	}

	Parcel struct {
		ID              int64     `json:"id"`
		UserID          string    `json:"userId"`
		TrackingNumber  string    `json:"trackingNumber"`
		Description     *string   `json:"description"`
		Weight          *float64  `json:"weight"`
		Status          string    `json:"status"`
		CodAmount       int64     `json:"codAmount"`
		Images          []string  `json:"images"`
		IsVoiceVerified bool      `json:"isVoiceVerified"`
		CreatedAt       time.Time `json:"createdAt"`
		UpdatedAt       time.Time `json:"updatedAt"`
	}

	VerificationResult struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		CallID  string `json:"callId,omitempty"`
	}

	Profile struct {
		UserID           string    `json:"userId"`
		TrustScore       int       `json:"trustScore"`
		CodLimit         int64     `json:"codLimit"`
		PhoneNumber      string    `json:"phoneNumber"`
		IndianAddress    string    `json:"indianAddress"`
		WarehouseAddress string    `json:"warehouseAddress"`
		AadhaarURL       string    `json:"aadhaarUrl"`
		IsKycVerified    bool      `json:"isKycVerified"`
		CreatedAt        time.Time `json:"createdAt"`
		UpdatedAt        time.Time `json:"updatedAt"`
	}

	Store struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Category    string `json:"category"`
		URL         string `json:"url"`
		ImageURL    string `json:"imageUrl"`
		Description string `json:"description"`
	}

	Dashboard struct {
		TotalParcels        int64 `json:"totalParcels"`
		PendingVerification int64 `json:"pendingVerification"`
		Revenue             int64 `json:"revenue"`
	}
)

func toUser(a Account) User {
	return User{
		ID:        a.ID.String(),
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      a.Role,
	}
}

func toParcel(p *parcel.Parcel) Parcel {
	response := Parcel{
		ID:              p.ID().Int64(),
		UserID:          p.UserID().String(),
		TrackingNumber:  p.TrackingNumber(),
		Status:          p.Status().String(),
		CodAmount:       p.CodAmount(),
		Images:          p.Images(),
		IsVoiceVerified: p.IsVoiceVerified(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
	if d := p.Description(); d != "" {
		response.Description = &d
	}
	if w := p.Weight(); w != nil {
		kg := w.Kg()
		response.Weight = &kg
	}
	if response.Images == nil {
		response.Images = []string{}
	}
	return response
}

func toParcels(parcels []*parcel.Parcel) []Parcel {
	response := make([]Parcel, len(parcels))
	for i, p := range parcels {
		response[i] = toParcel(p)
	}
	return response
}

func toProfile(p *profile.Profile) Profile {
	return Profile{
		UserID:           p.UserID().String(),
		TrustScore:       p.TrustScore(),
		CodLimit:         p.CodLimit(),
		PhoneNumber:      p.PhoneNumber(),
		IndianAddress:    p.IndianAddress(),
		WarehouseAddress: p.WarehouseAddress(),
		AadhaarURL:       p.AadhaarURL(),
		IsKycVerified:    p.IsKycVerified(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}

func toStores(merchants []*merchant.Merchant) []Store {
	response := make([]Store, len(merchants))
	for i, m := range merchants {
		response[i] = Store{
			ID:          m.ID(),
			Name:        m.Name(),
			Category:    m.Category(),
			URL:         m.URL(),
			ImageURL:    m.ImageURL(),
			Description: m.Description(),
		}
	}
	return response
}

func toDashboard(stats ports.ParcelStats) Dashboard {
	return Dashboard{
		TotalParcels:        stats.Total,
		PendingVerification: stats.AwaitingVerification,
		Revenue:             stats.Revenue,
	}
}
