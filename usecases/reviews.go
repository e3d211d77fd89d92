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

type ReviewInput struct {
	Title  *string `json:"title"`
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

func (in ReviewInput) apply(r *entities.Review) {
	if in.Title != nil {
		r.Title = strings.TrimSpace(*in.Title)
	}
	if in.Text != nil {
		r.Text = *in.Text
	}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
}

type ReviewUseCase struct {
	db        db.Database
	reviews   repositories.ReviewRepository
	houses    repositories.HouseRepository
	lifecycle *Lifecycle
	events    EventPublisher
	log       *logger.Logger
}

func NewReviewUseCase(database db.Database, reviews repositories.ReviewRepository, houses repositories.HouseRepository, lifecycle *Lifecycle, events EventPublisher, log *logger.Logger) *ReviewUseCase {
	return &ReviewUseCase{
		db:        database,
		reviews:   reviews,
		houses:    houses,
		lifecycle: lifecycle,
		events:    publisherOrNop(events),
		log:       log.With("component", "reviews"),
	}
}

func reviewNotFound(id string) func() error {
	return func() error { return apperr.NotFound("No review found with the id of %s", id) }
}

// AddReview records the actor's review of a house and refreshes the house rating.
func (uc *ReviewUseCase) AddReview(ctx context.Context, actor Actor, houseID string, in ReviewInput) (*entities.Review, error) {
	review := &entities.Review{HouseID: houseID, UserID: actor.ID}
	var avg *float64
	err := uc.db.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := uc.houses.GetByID(ctx, tx, houseID); err != nil {
			return translate(err, func() error { return apperr.NotFound("No house with the id of %s", houseID) }, nil)
		}
		in.apply(review)
		if err := validateEntity(review); err != nil {
			return err
		}
		if err := uc.reviews.Create(ctx, tx, review); err != nil {
			return translate(err, nil, func() error {
				return apperr.Conflict("User %s has already reviewed house %s", actor.ID, houseID)
			})
		}
		var err error
		avg, err = uc.lifecycle.RecomputeHouseAverageRating(ctx, tx, houseID)
		return err
	})
	if err != nil {
		return nil, translate(err, nil, nil)
	}

	uc.events.PublishHouseEvent(houseEvent(entities.EventHouseRating, houseID, review.ID, avg))
	return review, nil
}

// GetReview retrieves a review by ID
func (uc *ReviewUseCase) GetReview(ctx context.Context, id string) (*entities.Review, error) {
	review, err := uc.reviews.GetByID(ctx, nil, id)
	if err != nil {
		return nil, translate(err, reviewNotFound(id), nil)
	}
	return review, nil
}

// ListReviewsByHouse returns every review of a house.
func (uc *ReviewUseCase) ListReviewsByHouse(ctx context.Context, houseID string) ([]entities.Review, error) {
	reviews, err := uc.reviews.ListByHouse(ctx, nil, houseID)
	if err != nil {
		return nil, translate(err, nil, nil)
	}
	return reviews, nil
}

func (uc *ReviewUseCase) ListReviews(ctx context.Context, params *query.Params) ([]entities.Review, int64, error) {
	reviews, total, err := uc.reviews.List(ctx, nil, params)
	if err != nil {
		return nil, 0, translate(err, nil, nil)
	}
	return reviews, total, nil
}

// UpdateReview applies in to a review owned by the actor and refreshes the house rating.
func (uc *ReviewUseCase) UpdateReview(ctx context.Context, actor Actor, id string, in ReviewInput) (*entities.Review, error) {
	var review *entities.Review
	var avg *float64
	err := uc.db.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		review, err = uc.reviews.GetByID(ctx, tx, id)
		if err != nil {
			return translate(err, reviewNotFound(id), nil)
		}
		if err := uc.lifecycle.AuthorizeMutation(actor, "update", Owned{Kind: "review", ID: review.ID, OwnerID: review.UserID}); err != nil {
			return err
		}
		in.apply(review)
		if err := validateEntity(review); err != nil {
			return err
		}
		if err := uc.reviews.Update(ctx, tx, review); err != nil {
			return err
		}
		avg, err = uc.lifecycle.RecomputeHouseAverageRating(ctx, tx, review.HouseID)
		return err
	})
	if err != nil {
		return nil, translate(err, nil, nil)
	}

	uc.events.PublishHouseEvent(houseEvent(entities.EventHouseRating, review.HouseID, review.ID, avg))
	return review, nil
}

// DeleteReview removes a review owned by the actor and refreshes the house rating.
func (uc *ReviewUseCase) DeleteReview(ctx context.Context, actor Actor, id string) error {
	var houseID string
	var avg *float64
	err := uc.db.Transaction(ctx, func(tx *gorm.DB) error {
		review, err := uc.reviews.GetByID(ctx, tx, id)
		if err != nil {
			return translate(err, reviewNotFound(id), nil)
		}
		if err := uc.lifecycle.AuthorizeMutation(actor, "delete", Owned{Kind: "review", ID: review.ID, OwnerID: review.UserID}); err != nil {
			return err
		}
		houseID = review.HouseID
		if err := uc.reviews.Delete(ctx, tx, review.ID); err != nil {
			return err
		}
		avg, err = uc.lifecycle.RecomputeHouseAverageRating(ctx, tx, houseID)
		return err
	})
	if err != nil {
		return translate(err, nil, nil)
	}

	uc.events.PublishHouseEvent(houseEvent(entities.EventHouseRating, houseID, id, avg))
	return nil
}
