package usecases

import (
	"context"

	"houses-api/apperr"
	"houses-api/logger"
	"houses-api/repositories"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Owned identifies a resource and the user it belongs to.
type Owned struct {
	Kind    string
	ID      string
	OwnerID string
}

// Lifecycle holds the ownership and cross-entity consistency rules shared by
// every resource use case. Methods taking a tx must be called inside the
// transaction of the mutation that triggers them.
type Lifecycle struct {
	houses  repositories.HouseRepository
	books   repositories.BookRepository
	reviews repositories.ReviewRepository
	log     *logger.Logger
}

func NewLifecycle(houses repositories.HouseRepository, books repositories.BookRepository, reviews repositories.ReviewRepository, log *logger.Logger) *Lifecycle {
	return &Lifecycle{
		houses:  houses,
		books:   books,
		reviews: reviews,
		log:     log.With("component", "lifecycle"),
	}
}

// AuthorizeMutation allows admins and the resource owner.
func (l *Lifecycle) AuthorizeMutation(actor Actor, action string, res Owned) error {
	if actor.IsAdmin() || (actor.ID != "" && actor.ID == res.OwnerID) {
		return nil
	}
	l.log.Warn("mutation refused", "action", action, "kind", res.Kind, "resource_id", res.ID, "actor_id", actor.ID)
	return apperr.Forbidden(actor.ID, res.ID, "User %s is not authorized to %s %s %s", actor.ID, action, res.Kind, res.ID)
}

// EnforceSingleHouseOwnership rejects a non-admin actor who already owns a house.
func (l *Lifecycle) EnforceSingleHouseOwnership(ctx context.Context, tx *gorm.DB, actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	existing, err := l.houses.FindByUserID(ctx, tx, actor.ID)
	if err != nil {
		return apperr.Unexpected(err)
	}
	if existing != nil {
		return apperr.Conflict("The user with ID %s has already published a house", actor.ID)
	}
	return nil
}

// CascadeDeleteHouse removes the dependents of a house. It must run before the
// house row itself is deleted.
func (l *Lifecycle) CascadeDeleteHouse(ctx context.Context, tx *gorm.DB, houseID string) error {
	books, err := l.books.DeleteByHouse(ctx, tx, houseID)
	if err != nil {
		l.log.Error("cascade delete of books failed", "house_id", houseID, "error", err)
		return apperr.Unexpected(err)
	}
	reviews, err := l.reviews.DeleteByHouse(ctx, tx, houseID)
	if err != nil {
		l.log.Error("cascade delete of reviews failed", "house_id", houseID, "error", err)
		return apperr.Unexpected(err)
	}
	l.log.Info("cascade deleted house dependents", "house_id", houseID, "books", books, "reviews", reviews)
	return nil
}

// RecomputeHouseAverageRating stores the mean rating of the house's reviews,
// or NULL once no reviews remain, and returns the stored value.
func (l *Lifecycle) RecomputeHouseAverageRating(ctx context.Context, tx *gorm.DB, houseID string) (*float64, error) {
	avg, err := l.reviews.AverageRating(ctx, tx, houseID)
	if err != nil {
		l.log.Error("average rating aggregation failed", "house_id", houseID, "error", err)
		return nil, apperr.Unexpected(err)
	}
	if err := l.houses.UpdateAverageRating(ctx, tx, houseID, avg); err != nil {
		l.log.Error("average rating update failed", "house_id", houseID, "error", err)
		return nil, apperr.Unexpected(err)
	}
	return avg, nil
}

// Slugify derives the URL slug of a house name.
func Slugify(name string) string {
	return slug.Make(name)
}
