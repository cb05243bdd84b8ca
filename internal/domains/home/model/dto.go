package model

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// HomeRequest is the write payload for create, update and bulk import.
// Update is a full-record replace: omitted fields reset to their zero value.
type HomeRequest struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Biography   string   `json:"biography"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Images      []Image  `json:"images"`
	PhotoDate   string   `json:"photo_date"`
	Sources     []string `json:"sources"`
	Tags        []string `json:"tags"`
	PortraitURL string   `json:"portrait_url"`
	BirthDate   string   `json:"birth_date"`
	DeathDate   string   `json:"death_date"`
	Published   *bool    `json:"published"` // nil defaults to true
}

func (r HomeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 300),
		),
		validation.Field(&r.BirthDate,
			validation.When(r.BirthDate != "",
				validation.Match(dateFormat).Error("birth_date must be YYYY-MM-DD"),
			),
		),
		validation.Field(&r.DeathDate,
			validation.When(r.DeathDate != "",
				validation.Match(dateFormat).Error("death_date must be YYYY-MM-DD"),
			),
		),
		validation.Field(&r.Latitude, validation.By(func(interface{}) error {
			// coordinates are both-or-neither
			if (r.Latitude == nil) != (r.Longitude == nil) {
				return errors.New("latitude and longitude must be set together")
			}
			return nil
		})),
	)
}
