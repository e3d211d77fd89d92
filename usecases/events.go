package usecases

import (
	"time"

	"houses-api/entities"
)

// EventPublisher receives house events once the change that caused them is committed.
type EventPublisher interface {
	PublishHouseEvent(ev entities.HouseEvent)
}

type nopPublisher struct{}

func (nopPublisher) PublishHouseEvent(entities.HouseEvent) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

func houseEvent(kind, houseID, resourceID string, avg *float64) entities.HouseEvent {
	return entities.HouseEvent{
		Type:          kind,
		HouseID:       houseID,
		ResourceID:    resourceID,
		AverageRating: avg,
		At:            time.Now().UTC(),
	}
}
