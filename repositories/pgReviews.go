package repositories

import (
	"context"

	"houses-api/db"
	"houses-api/entities"
	"houses-api/query"

	"gorm.io/gorm"
)

type reviewPgRepository struct {
	db db.Database
}

func NewReviewPgRepository(database db.Database) ReviewRepository {
	return &reviewPgRepository{db: database}
}

func (r *reviewPgRepository) Create(ctx context.Context, tx *gorm.DB, review *entities.Review) error {
	return conn(ctx, r.db.GetDB(), tx).Create(review).Error
}

func (r *reviewPgRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*entities.Review, error) {
	var review entities.Review
	err := conn(ctx, r.db.GetDB(), tx).Where("id = ?", id).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewPgRepository) ListByHouse(ctx context.Context, tx *gorm.DB, houseID string) ([]entities.Review, error) {
	reviews := []entities.Review{}
	err := conn(ctx, r.db.GetDB(), tx).Where("house_id = ?", houseID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *reviewPgRepository) List(ctx context.Context, tx *gorm.DB, params *query.Params) ([]entities.Review, int64, error) {
	var total int64
	base := conn(ctx, r.db.GetDB(), tx).Model(&entities.Review{})
	if err := params.Where(base.Session(&gorm.Session{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	reviews := []entities.Review{}
	err := params.Scope(conn(ctx, r.db.GetDB(), tx)).Find(&reviews).Error
	return reviews, total, err
}

func (r *reviewPgRepository) Update(ctx context.Context, tx *gorm.DB, review *entities.Review) error {
	return conn(ctx, r.db.GetDB(), tx).Save(review).Error
}

func (r *reviewPgRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return conn(ctx, r.db.GetDB(), tx).Where("id = ?", id).Delete(&entities.Review{}).Error
}

func (r *reviewPgRepository) DeleteByHouse(ctx context.Context, tx *gorm.DB, houseID string) (int64, error) {
	res := conn(ctx, r.db.GetDB(), tx).Where("house_id = ?", houseID).Delete(&entities.Review{})
	return res.RowsAffected, res.Error
}

type ratingGroup struct {
	HouseID       string
	AverageRating float64
}

func (r *reviewPgRepository) AverageRating(ctx context.Context, tx *gorm.DB, houseID string) (*float64, error) {
	var groups []ratingGroup
	err := conn(ctx, r.db.GetDB(), tx).Model(&entities.Review{}).
		Select("house_id, AVG(rating) AS average_rating").
		Where("house_id = ?", houseID).
		Group("house_id").
		Scan(&groups).Error
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, nil
	}
	avg := groups[0].AverageRating
	return &avg, nil
}
