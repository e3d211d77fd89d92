package repositories

import (
	"context"
	"errors"

	"houses-api/db"
	"houses-api/entities"
	"houses-api/query"

	"gorm.io/gorm"
)

type housePgRepository struct {
	db db.Database
}

func NewHousePgRepository(database db.Database) HouseRepository {
	return &housePgRepository{db: database}
}

func (r *housePgRepository) Create(ctx context.Context, tx *gorm.DB, house *entities.House) error {
	return conn(ctx, r.db.GetDB(), tx).Create(house).Error
}

func (r *housePgRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*entities.House, error) {
	var house entities.House
	err := conn(ctx, r.db.GetDB(), tx).Where("id = ?", id).First(&house).Error
	if err != nil {
		return nil, err
	}
	return &house, nil
}

// FindByUserID returns nil, nil when the user owns no house.
func (r *housePgRepository) FindByUserID(ctx context.Context, tx *gorm.DB, userID string) (*entities.House, error) {
	var house entities.House
	err := conn(ctx, r.db.GetDB(), tx).Where("user_id = ?", userID).First(&house).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &house, nil
}

func (r *housePgRepository) List(ctx context.Context, tx *gorm.DB, params *query.Params) ([]entities.House, int64, error) {
	var total int64
	base := conn(ctx, r.db.GetDB(), tx).Model(&entities.House{})
	if err := params.Where(base.Session(&gorm.Session{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	houses := []entities.House{}
	err := params.Scope(conn(ctx, r.db.GetDB(), tx)).Find(&houses).Error
	return houses, total, err
}

// houseWritable lists the columns Update writes. The derived rating and the
// photo have their own setters.
var houseWritable = []string{
	"name", "slug", "description", "website", "phone", "email", "address", "housing", "accept_gi",
}

func (r *housePgRepository) Update(ctx context.Context, tx *gorm.DB, house *entities.House) error {
	return conn(ctx, r.db.GetDB(), tx).Model(&entities.House{}).Where("id = ?", house.ID).
		Select(houseWritable).Updates(house).Error
}

func (r *housePgRepository) UpdateAverageRating(ctx context.Context, tx *gorm.DB, id string, avg *float64) error {
	return conn(ctx, r.db.GetDB(), tx).Model(&entities.House{}).Where("id = ?", id).
		Update("average_rating", avg).Error
}

func (r *housePgRepository) UpdatePhoto(ctx context.Context, tx *gorm.DB, id, photo string) error {
	return conn(ctx, r.db.GetDB(), tx).Model(&entities.House{}).Where("id = ?", id).
		Update("photo", photo).Error
}

func (r *housePgRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return conn(ctx, r.db.GetDB(), tx).Where("id = ?", id).Delete(&entities.House{}).Error
}
