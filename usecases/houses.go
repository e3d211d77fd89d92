package usecases

import (
	"context"
	"strings"

	"houses-api/apperr"
	"houses-api/db"
	"houses-api/entities"
	"houses-api/logger"
	"houses-api/query"
	"houses-api/repositories"

	"gorm.io/gorm"
)

// HouseInput carries the client-writable house fields; nil means "leave as is".
type HouseInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	Housing     *bool   `json:"housing"`
	AcceptGi    *bool   `json:"acceptGi"`
}

func (in HouseInput) apply(h *entities.House) {
	if in.Name != nil {
		h.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		h.Description = *in.Description
	}
	if in.Website != nil {
		h.Website = strings.TrimSpace(*in.Website)
	}
	if in.Phone != nil {
		h.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		h.Email = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		h.Address = *in.Address
	}
	if in.Housing != nil {
		h.Housing = *in.Housing
	}
	if in.AcceptGi != nil {
		h.AcceptGi = *in.AcceptGi
	}
}

type HouseUseCase struct {
	db        db.Database
	houses    repositories.HouseRepository
	lifecycle *Lifecycle
	events    EventPublisher
	log       *logger.Logger
}

func NewHouseUseCase(database db.Database, houses repositories.HouseRepository, lifecycle *Lifecycle, events EventPublisher, log *logger.Logger) *HouseUseCase {
	return &HouseUseCase{
		db:        database,
		houses:    houses,
		lifecycle: lifecycle,
		events:    publisherOrNop(events),
		log:       log.With("component", "houses"),
	}
}

func houseNotFound(id string) func() error {
	return func() error { return apperr.NotFound("House not found with id of %s", id) }
}

// CreateHouse publishes a new house owned by the actor.
func (uc *HouseUseCase) CreateHouse(ctx context.Context, actor Actor, in HouseInput) (*entities.House, error) {
	house := &entities.House{UserID: actor.ID}
	in.apply(house)
	house.Slug = Slugify(house.Name)
	if !actor.IsAdmin() {
		slot := actor.ID
		house.OwnerSlot = &slot
	}
	if err := validateEntity(house); err != nil {
		return nil, err
	}

	err := uc.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := uc.lifecycle.EnforceSingleHouseOwnership(ctx, tx, actor); err != nil {
			return err
		}
		return uc.houses.Create(ctx, tx, house)
	})
	if err != nil {
		return nil, translate(err, nil, func() error { return uc.createConflict(ctx, actor, house.Name) })
	}

	uc.log.Info("house created", "house_id", house.ID, "user_id", actor.ID)
	return house, nil
}

// createConflict explains a unique violation raised by a concurrent or repeated create.
func (uc *HouseUseCase) createConflict(ctx context.Context, actor Actor, name string) error {
	if !actor.IsAdmin() {
		if existing, err := uc.houses.FindByUserID(ctx, nil, actor.ID); err == nil && existing != nil {
			return apperr.Conflict("The user with ID %s has already published a house", actor.ID)
		}
	}
	return apperr.Conflict("A house named %q already exists", name)
}

// GetHouse retrieves a house by ID
func (uc *HouseUseCase) GetHouse(ctx context.Context, id string) (*entities.House, error) {
	house, err := uc.houses.GetByID(ctx, nil, id)
	if err != nil {
		return nil, translate(err, houseNotFound(id), nil)
	}
	return house, nil
}

// ListHouses runs a filtered, paginated listing.
func (uc *HouseUseCase) ListHouses(ctx context.Context, params *query.Params) ([]entities.House, int64, error) {
	houses, total, err := uc.houses.List(ctx, nil, params)
	if err != nil {
		return nil, 0, translate(err, nil, nil)
	}
	return houses, total, nil
}

// UpdateHouse applies in to a house owned by the actor.
func (uc *HouseUseCase) UpdateHouse(ctx context.Context, actor Actor, id string, in HouseInput) (*entities.House, error) {
	var house *entities.House
	err := uc.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		house, err = uc.houses.GetByID(ctx, tx, id)
		if err != nil {
			return translate(err, houseNotFound(id), nil)
		}
		if err := uc.lifecycle.AuthorizeMutation(actor, "update", Owned{Kind: "house", ID: house.ID, OwnerID: house.UserID}); err != nil {
			return err
		}
		in.apply(house)
		house.Slug = Slugify(house.Name)
		if err := validateEntity(house); err != nil {
			return err
		}
		if err := uc.houses.Update(ctx, tx, house); err != nil {
			return err
		}
		updated, err := uc.houses.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		house = updated
		return nil
	})
	if err != nil {
		return nil, translate(err, nil, func() error {
			return apperr.Conflict("A house named %q already exists", house.Name)
		})
	}

	uc.events.PublishHouseEvent(houseEvent(entities.EventHouseUpdated, house.ID, house.ID, house.AverageRating))
	return house, nil
}

// DeleteHouse removes a house together with its books and reviews.
func (uc *HouseUseCase) DeleteHouse(ctx context.Context, actor Actor, id string) error {
	err := uc.db.Transaction(ctx, func(tx *gorm.DB) error {
		house, err := uc.houses.GetByID(ctx, tx, id)
		if err != nil {
			return translate(err, houseNotFound(id), nil)
		}
		if err := uc.lifecycle.AuthorizeMutation(actor, "delete", Owned{Kind: "house", ID: house.ID, OwnerID: house.UserID}); err != nil {
			return err
		}
		if err := uc.lifecycle.CascadeDeleteHouse(ctx, tx, house.ID); err != nil {
			return err
		}
		return uc.houses.Delete(ctx, tx, house.ID)
	})
	if err != nil {
		return translate(err, nil, nil)
	}

	uc.log.Info("house deleted", "house_id", id, "user_id", actor.ID)
	uc.events.PublishHouseEvent(houseEvent(entities.EventHouseDeleted, id, id, nil))
	return nil
}
