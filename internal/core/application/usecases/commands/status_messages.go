package commands

import (
	"fmt"

	"fulfillment/internal/core/domain/model/delivery"
)

// Human-readable tracking messages written alongside each status change.
func getStatusMessages() map[delivery.Status]string {
	return map[delivery.Status]string{
		delivery.StatusPending:        "delivery created",
		delivery.StatusAssigned:       "courier assigned",
		delivery.StatusPickedUp:       "package picked up",
		delivery.StatusInTransit:      "package in transit",
		delivery.StatusOutForDelivery: "package out for delivery",
		delivery.StatusDelivered:      "package delivered",
		delivery.StatusFailed:         "delivery failed",
		delivery.StatusCancelled:      "delivery cancelled",
	}
}

// statusMessage renders the tracking message for a status change, appending
// the caller's notes when present.
func statusMessage(status delivery.Status, notes string) string {
	message, ok := getStatusMessages()[status]
	if !ok {
		message = status.String()
	}
	if notes != "" {
		return fmt.Sprintf("%s: %s", message, notes)
	}
	return message
}
