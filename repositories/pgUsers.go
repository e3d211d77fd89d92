package repositories

import (
	"context"

	"houses-api/db"
	"houses-api/entities"

	"gorm.io/gorm"
)

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) Create(ctx context.Context, tx *gorm.DB, user *entities.User) error {
	return conn(ctx, r.db.GetDB(), tx).Create(user).Error
}

func (r *userPgRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*entities.User, error) {
	var user entities.User
	if err := conn(ctx, r.db.GetDB(), tx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPgRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*entities.User, error) {
	var user entities.User
	if err := conn(ctx, r.db.GetDB(), tx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPgRepository) UpdateRole(ctx context.Context, tx *gorm.DB, id, role string) error {
	res := conn(ctx, r.db.GetDB(), tx).Model(&entities.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
