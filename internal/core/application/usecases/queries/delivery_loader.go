package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// loadDelivery fetches the fields of a delivery that authorization and
// rendering need. Read queries authorize against the same involved-party
// rules as commands, so they reconstruct a minimal aggregate.
func loadDelivery(ctx context.Context, db *gorm.DB, id kernel.UUID) (*delivery.Delivery, error) {
	row := db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_id,
			courier_id,
			merchant_id,
			price_cents,
			status,
			version
		FROM deliveries
		WHERE id = ?
	`, id.Bytes()).Row()

	var (
		rawID      uuid.UUID
		clientID   uuid.UUID
		courierID  uuid.NullUUID
		merchantID uuid.NullUUID
		priceCents int64
		status     int
		version    int
	)
	err := row.Scan(&rawID, &clientID, &courierID, &merchantID, &priceCents,
		&status, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(rawID[:])
	if err != nil {
		return nil, err
	}

	client, err := kernel.UUIDFromBytes(clientID[:])
	if err != nil {
		return nil, err
	}

	courier, err := optionalUUID(courierID)
	if err != nil {
		return nil, err
	}

	merchant, err := optionalUUID(merchantID)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoneyFromCents(priceCents)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(deliveryID, client, courier, merchant,
		price, delivery.Status(status), version, nil, nil, nil, nil, nil, nil)
}

func optionalUUID(raw uuid.NullUUID) (*kernel.UUID, error) {
	if !raw.Valid {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes(raw.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
