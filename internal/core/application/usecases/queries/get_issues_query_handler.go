package queries

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
)

// GetIssuesQueryHandler retrieves the issues reported against a delivery,
// ascending by creation time.
type GetIssuesQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

// NewGetIssuesQueryHandler creates a handler for issue list queries.
// Requires a GORM database connection for query execution.
func NewGetIssuesQueryHandler(db *gorm.DB, policy services.AccessPolicy) GetIssuesQueryHandler {
	return GetIssuesQueryHandler{db: db, policy: policy}
}

// Handle executes the issue list query. The actor must be one of the
// delivery's involved parties or an admin.
func (h GetIssuesQueryHandler) Handle(
	ctx context.Context,
	query GetIssuesQuery,
) ([]GetIssuesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := loadDelivery(ctx, h.db, query.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.AuthorizeIssueView(query.Actor(), aggregate); err != nil {
		return nil, err
	}

	issues := make([]GetIssuesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			reporter_id,
			type,
			severity,
			status,
			description,
			latitude,
			longitude,
			photos,
			created_at
		FROM delivery_issues
		WHERE delivery_id = ?
		ORDER BY created_at ASC, id ASC
	`, query.DeliveryID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rawID       uuid.UUID
			reporterID  uuid.UUID
			issueType   int
			severity    int
			status      int
			description string
			latitude    *float64
			longitude   *float64
			photos      []byte
			createdAt   time.Time
		)
		if err = rows.Scan(&rawID, &reporterID, &issueType, &severity, &status,
			&description, &latitude, &longitude, &photos, &createdAt); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(rawID[:])
		if idErr != nil {
			return nil, idErr
		}

		reporter, reporterErr := kernel.UUIDFromBytes(reporterID[:])
		if reporterErr != nil {
			return nil, reporterErr
		}

		response := GetIssuesQueryResponse{
			ID:          id,
			DeliveryID:  query.DeliveryID(),
			ReporterID:  reporter,
			Type:        issue.Type(issueType).String(),
			Severity:    issue.Severity(severity).String(),
			Status:      issue.Status(status).String(),
			Description: description,
			CreatedAt:   createdAt,
		}

		if latitude != nil && longitude != nil {
			location, locErr := kernel.NewLocation(*latitude, *longitude)
			if locErr != nil {
				return nil, locErr
			}
			response.Location = &location
		}

		if len(photos) > 0 {
			if err = json.Unmarshal(photos, &response.Photos); err != nil {
				return nil, err
			}
		}

		issues = append(issues, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return issues, nil
}
