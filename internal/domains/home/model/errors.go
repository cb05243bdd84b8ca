package model

import "errors"

var (
	ErrHomeNotFound  = errors.New("home not found")
	ErrInvalidName   = errors.New("name is required")
	ErrDuplicateSlug = errors.New("slug already exists")
)
