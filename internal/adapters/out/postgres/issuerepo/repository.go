package issuerepo

import (
	"context"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
)

// GormIssueRepository implements IssueRepository using GORM.
type GormIssueRepository struct {
	db *gorm.DB
}

// NewGormIssueRepository creates a new GORM issue repository.
func NewGormIssueRepository(db *gorm.DB) *GormIssueRepository {
	return &GormIssueRepository{db: db}
}

// Add saves a newly reported issue to the database.
func (r *GormIssueRepository) Add(ctx context.Context, aggregate *issue.Issue) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByDelivery retrieves all issues of a delivery, ascending by creation
// time.
func (r *GormIssueRepository) GetByDelivery(ctx context.Context,
	deliveryID kernel.UUID) ([]*issue.Issue, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var dtos []IssueDTO
	err := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID.Bytes()).
		Order("created_at ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	issues := make([]*issue.Issue, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		issues = append(issues, aggregate)
	}

	return issues, nil
}
