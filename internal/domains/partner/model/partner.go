package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var ErrPartnerNotFound = errors.New("partner not found")

// Partner is one listed partner organization. No relation to home records.
type Partner struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	LogoURL      string    `json:"logo_url"`
	Website      string    `json:"website"`
	Instagram    string    `json:"instagram"`
	Email        string    `json:"email"`
	Published    bool      `json:"published"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PartnerRequest is the write payload for create and update.
type PartnerRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	LogoURL      string `json:"logo_url"`
	Website      string `json:"website"`
	Instagram    string `json:"instagram"`
	Email        string `json:"email"`
	Published    *bool  `json:"published"` // nil defaults to true
	DisplayOrder int    `json:"display_order"`
}

func (r PartnerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 300),
		),
		validation.Field(&r.Email,
			validation.When(r.Email != "", is.Email.Error("invalid email format")),
		),
		validation.Field(&r.Website,
			validation.When(r.Website != "", is.URL.Error("invalid website url")),
		),
	)
}
