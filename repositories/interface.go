package repositories

import (
	"context"

	"houses-api/entities"
	"houses-api/query"

	"gorm.io/gorm"
)

// Every method accepts an optional transaction; nil runs on the base connection.

type HouseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, house *entities.House) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*entities.House, error)
	FindByUserID(ctx context.Context, tx *gorm.DB, userID string) (*entities.House, error)
	List(ctx context.Context, tx *gorm.DB, params *query.Params) ([]entities.House, int64, error)
	Update(ctx context.Context, tx *gorm.DB, house *entities.House) error
	UpdateAverageRating(ctx context.Context, tx *gorm.DB, id string, avg *float64) error
	UpdatePhoto(ctx context.Context, tx *gorm.DB, id, photo string) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type BookRepository interface {
	Create(ctx context.Context, tx *gorm.DB, book *entities.Book) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*entities.Book, error)
	ListByHouse(ctx context.Context, tx *gorm.DB, houseID string) ([]entities.Book, error)
	List(ctx context.Context, tx *gorm.DB, params *query.Params) ([]entities.Book, int64, error)
	Update(ctx context.Context, tx *gorm.DB, book *entities.Book) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	DeleteByHouse(ctx context.Context, tx *gorm.DB, houseID string) (int64, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *entities.Review) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*entities.Review, error)
	ListByHouse(ctx context.Context, tx *gorm.DB, houseID string) ([]entities.Review, error)
	List(ctx context.Context, tx *gorm.DB, params *query.Params) ([]entities.Review, int64, error)
	Update(ctx context.Context, tx *gorm.DB, review *entities.Review) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	DeleteByHouse(ctx context.Context, tx *gorm.DB, houseID string) (int64, error)
	// AverageRating groups reviews by house and returns the mean rating of
	// houseID's group, or nil when the house has no reviews.
	AverageRating(ctx context.Context, tx *gorm.DB, houseID string) (*float64, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *entities.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*entities.User, error)
	UpdateRole(ctx context.Context, tx *gorm.DB, id, role string) error
}

func conn(ctx context.Context, base, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return base.WithContext(ctx)
}
