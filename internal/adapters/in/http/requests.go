package http

import (
	"github.com/go-playground/validator/v10"

	"fulfillment/internal/core/domain/model/kernel"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator for request bodies.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks struct tags on a bound request body.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// LocationBody is a geographic point supplied by a courier device.
type LocationBody struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

func (b *LocationBody) toDomain() (*kernel.Location, error) {
	if b == nil {
		return nil, nil
	}
	location, err := kernel.NewLocation(b.Latitude, b.Longitude)
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// UpdateStatusRequest is the body of PATCH /deliveries/:id/status.
type UpdateStatusRequest struct {
	Status   string        `json:"status" validate:"required"`
	Location *LocationBody `json:"location" validate:"omitempty"`
	Notes    string        `json:"notes" validate:"omitempty,max=500"`
}

// IssueSummaryBody is one structured issue attached to a rejected validation.
type IssueSummaryBody struct {
	Type        string `json:"type" validate:"required"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// ValidateDeliveryRequest is the body of POST /deliveries/:id/validate.
type ValidateDeliveryRequest struct {
	Validated *bool              `json:"validated" validate:"required"`
	Rating    *int               `json:"rating" validate:"omitempty,min=1,max=5"`
	Review    *string            `json:"review" validate:"omitempty,max=500"`
	Issues    []IssueSummaryBody `json:"issues" validate:"omitempty,dive"`
}

// ReportIssueRequest is the body of POST /deliveries/:id/issues. Severity is
// optional and defaults to MEDIUM when omitted.
type ReportIssueRequest struct {
	Type        string        `json:"type" validate:"required"`
	Severity    string        `json:"severity" validate:"omitempty"`
	Description string        `json:"description" validate:"required,max=1000"`
	Location    *LocationBody `json:"location" validate:"omitempty"`
	Photos      []string      `json:"photos" validate:"omitempty,max=10,dive,required"`
}
