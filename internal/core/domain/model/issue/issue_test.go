package issue_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

func Test_NewIssue_Correct(t *testing.T) {
	// Arrange
	deliveryID := kernel.NewUUID()
	reporterID := kernel.NewUUID()
	location, err := kernel.NewLocation(55.751244, 37.618423)
	require.NoError(t, err)
	now := time.Now().UTC()

	// Act
	iss, err := issue.NewIssue(deliveryID, reporterID, issue.TypeDamagedPackage,
		issue.SeverityMedium, "box crushed on one side", &location,
		[]string{"photo-1", "photo-2"}, now)

	// Assert
	require.NoError(t, err)
	assert.NoError(t, iss.Validate())
	assert.NoError(t, iss.ID().Validate())
	assert.Equal(t, deliveryID, iss.DeliveryID())
	assert.Equal(t, reporterID, iss.ReporterID())
	assert.Equal(t, issue.TypeDamagedPackage, iss.Type())
	assert.Equal(t, issue.SeverityMedium, iss.Severity())
	assert.Equal(t, issue.StatusOpen, iss.Status())
	assert.Equal(t, "box crushed on one side", iss.Description())
	require.NotNil(t, iss.Location())
	assert.True(t, iss.Location().IsEqual(location))
	assert.Equal(t, []string{"photo-1", "photo-2"}, iss.Photos())
	assert.Equal(t, now, iss.CreatedAt())
}

func Test_NewIssue_WithoutLocationAndPhotos(t *testing.T) {
	iss, err := issue.NewIssue(kernel.NewUUID(), kernel.NewUUID(), issue.TypeOther,
		issue.SeverityLow, "left at wrong entrance", nil, nil, time.Now().UTC())

	require.NoError(t, err)
	assert.Nil(t, iss.Location())
	assert.Empty(t, iss.Photos())
}

func Test_NewIssue_Incorrect(t *testing.T) {
	deliveryID := kernel.NewUUID()
	reporterID := kernel.NewUUID()
	now := time.Now().UTC()

	tests := map[string]struct {
		deliveryID  kernel.UUID
		reporterID  kernel.UUID
		issueType   issue.Type
		severity    issue.Severity
		description string
		photos      []string
		now         time.Time
	}{
		"empty delivery id": {
			kernel.UUID{}, reporterID, issue.TypeOther, issue.SeverityLow,
			"text", nil, now,
		},
		"empty reporter id": {
			deliveryID, kernel.UUID{}, issue.TypeOther, issue.SeverityLow,
			"text", nil, now,
		},
		"unknown type": {
			deliveryID, reporterID, issue.TypeUnknown, issue.SeverityLow,
			"text", nil, now,
		},
		"unknown severity": {
			deliveryID, reporterID, issue.TypeOther, issue.SeverityUnknown,
			"text", nil, now,
		},
		"empty description": {
			deliveryID, reporterID, issue.TypeOther, issue.SeverityLow,
			"", nil, now,
		},
		"too long description": {
			deliveryID, reporterID, issue.TypeOther, issue.SeverityLow,
			strings.Repeat("a", issue.MaxDescriptionLength+1), nil, now,
		},
		"too many photos": {
			deliveryID, reporterID, issue.TypeOther, issue.SeverityLow,
			"text", make([]string, issue.MaxPhotos+1), now,
		},
		"zero time": {
			deliveryID, reporterID, issue.TypeOther, issue.SeverityLow,
			"text", nil, time.Time{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			iss, err := issue.NewIssue(test.deliveryID, test.reporterID,
				test.issueType, test.severity, test.description, nil,
				test.photos, test.now)
			assert.Error(t, err)
			assert.Nil(t, iss)
		})
	}
}

func Test_NewIssue_EmptyPhotoReference(t *testing.T) {
	iss, err := issue.NewIssue(kernel.NewUUID(), kernel.NewUUID(), issue.TypeOther,
		issue.SeverityLow, "text", nil, []string{"photo-1", ""}, time.Now().UTC())

	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Nil(t, iss)
}

func Test_RestoreIssue(t *testing.T) {
	id := kernel.NewUUID()
	deliveryID := kernel.NewUUID()
	reporterID := kernel.NewUUID()
	createdAt := time.Now().UTC().Add(-time.Hour)

	iss := issue.RestoreIssue(id, deliveryID, reporterID, issue.TypeLostPackage,
		issue.SeverityCritical, issue.StatusResolved, "package never scanned at hub",
		nil, []string{"photo-1"}, createdAt)

	assert.NoError(t, iss.Validate())
	assert.Equal(t, id, iss.ID())
	assert.Equal(t, issue.StatusResolved, iss.Status())
	assert.Equal(t, issue.SeverityCritical, iss.Severity())
	assert.Equal(t, createdAt, iss.CreatedAt())
}

func Test_ParseType(t *testing.T) {
	tests := map[string]issue.Type{
		"ADDRESS_ISSUE":         issue.TypeAddressIssue,
		"DAMAGED_PACKAGE":       issue.TypeDamagedPackage,
		"RECIPIENT_UNAVAILABLE": issue.TypeRecipientUnavailable,
		"WRONG_ITEM":            issue.TypeWrongItem,
		"LOST_PACKAGE":          issue.TypeLostPackage,
		"DELAYED_DELIVERY":      issue.TypeDelayedDelivery,
		"OTHER":                 issue.TypeOther,
	}

	for name, expected := range tests {
		t.Run(name, func(t *testing.T) {
			parsed, err := issue.ParseType(name)
			require.NoError(t, err)
			assert.Equal(t, expected, parsed)
			assert.Equal(t, name, parsed.String())
		})
	}

	_, err := issue.ParseType("EXPLODED")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func Test_ParseSeverity(t *testing.T) {
	tests := map[string]issue.Severity{
		"LOW":      issue.SeverityLow,
		"MEDIUM":   issue.SeverityMedium,
		"HIGH":     issue.SeverityHigh,
		"CRITICAL": issue.SeverityCritical,
	}

	for name, expected := range tests {
		t.Run(name, func(t *testing.T) {
			parsed, err := issue.ParseSeverity(name)
			require.NoError(t, err)
			assert.Equal(t, expected, parsed)
			assert.Equal(t, name, parsed.String())
		})
	}

	_, err := issue.ParseSeverity("FATAL")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func Test_Severity_ForcesFailure(t *testing.T) {
	assert.False(t, issue.SeverityLow.ForcesFailure())
	assert.False(t, issue.SeverityMedium.ForcesFailure())
	assert.True(t, issue.SeverityHigh.ForcesFailure())
	assert.True(t, issue.SeverityCritical.ForcesFailure())
}
