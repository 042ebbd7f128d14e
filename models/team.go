package models

import "time"

type Team struct {
	ID             string    `json:"id" db:"id"`
	OwnerID        string    `json:"-" db:"owner_id"`
	Name           string    `json:"name" db:"name"`
	SportType      string    `json:"sportType" db:"sport_type"`
	Currency       string    `json:"currency" db:"currency"`
	Location       string    `json:"location,omitempty" db:"location"`
	Schedule       string    `json:"schedule,omitempty" db:"schedule"`
	PaymentMethod  string    `json:"paymentMethod,omitempty" db:"payment_method"`
	PaymentDetails string    `json:"paymentDetails,omitempty" db:"payment_details"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logoUrl,omitempty" db:"-"`
}
