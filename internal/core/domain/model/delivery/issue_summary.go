package delivery

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// MaxIssueSummaryDescriptionLength bounds the free-text description a client
// can attach to a rejection.
const MaxIssueSummaryDescriptionLength = 500

// IssueSummary is a structured issue a client attaches when rejecting a
// delivery. It is a typed sub-entity of the Delivery aggregate, validated at
// construction rather than stored as an opaque blob.
type IssueSummary struct {
	issueType   string
	description string
}

// NewIssueSummary creates a validated IssueSummary.
// The type is a short client-supplied tag (e.g. "DAMAGED"); the description
// is free text bounded by MaxIssueSummaryDescriptionLength.
func NewIssueSummary(issueType, description string) (IssueSummary, error) {
	if issueType == "" {
		return IssueSummary{}, errs.NewValueIsRequiredError("issue type")
	}
	if len(description) > MaxIssueSummaryDescriptionLength {
		return IssueSummary{}, errs.NewValueIsInvalidErrorWithCause("issue description",
			fmt.Errorf("%d characters exceeds the %d character limit",
				len(description), MaxIssueSummaryDescriptionLength))
	}

	return IssueSummary{
		issueType:   issueType,
		description: description,
	}, nil
}

// Type returns the client-supplied issue tag.
func (s IssueSummary) Type() string {
	return s.issueType
}

// Description returns the free-text detail.
func (s IssueSummary) Description() string {
	return s.description
}

// String formats the summary for notification messages.
func (s IssueSummary) String() string {
	if s.description == "" {
		return s.issueType
	}
	return fmt.Sprintf("%s: %s", s.issueType, s.description)
}
