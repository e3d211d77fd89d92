package entities

import "time"

const (
	EventHouseUpdated = "house.updated"
	EventHouseDeleted = "house.deleted"
	EventHouseRating  = "house.rating"
	EventBookCreated  = "book.created"
	EventBookDeleted  = "book.deleted"
)

// HouseEvent is pushed to websocket subscribers of a house after a committed change.
type HouseEvent struct {
	Type          string    `json:"type"`
	HouseID       string    `json:"houseId"`
	ResourceID    string    `json:"resourceId,omitempty"`
	AverageRating *float64  `json:"averageRating,omitempty"`
	At            time.Time `json:"at"`
}
