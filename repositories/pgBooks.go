package repositories

import (
	"context"

	"houses-api/db"
	"houses-api/entities"
	"houses-api/query"

	"gorm.io/gorm"
)

type bookPgRepository struct {
	db db.Database
}

func NewBookPgRepository(database db.Database) BookRepository {
	return &bookPgRepository{db: database}
}

func (r *bookPgRepository) Create(ctx context.Context, tx *gorm.DB, book *entities.Book) error {
	return conn(ctx, r.db.GetDB(), tx).Create(book).Error
}

func (r *bookPgRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*entities.Book, error) {
	var book entities.Book
	err := conn(ctx, r.db.GetDB(), tx).Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookPgRepository) ListByHouse(ctx context.Context, tx *gorm.DB, houseID string) ([]entities.Book, error) {
	books := []entities.Book{}
	err := conn(ctx, r.db.GetDB(), tx).Where("house_id = ?", houseID).Order("created_at ASC").Find(&books).Error
	return books, err
}

func (r *bookPgRepository) List(ctx context.Context, tx *gorm.DB, params *query.Params) ([]entities.Book, int64, error) {
	var total int64
	base := conn(ctx, r.db.GetDB(), tx).Model(&entities.Book{})
	if err := params.Where(base.Session(&gorm.Session{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	books := []entities.Book{}
	err := params.Scope(conn(ctx, r.db.GetDB(), tx)).Find(&books).Error
	return books, total, err
}

func (r *bookPgRepository) Update(ctx context.Context, tx *gorm.DB, book *entities.Book) error {
	return conn(ctx, r.db.GetDB(), tx).Save(book).Error
}

func (r *bookPgRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return conn(ctx, r.db.GetDB(), tx).Where("id = ?", id).Delete(&entities.Book{}).Error
}

func (r *bookPgRepository) DeleteByHouse(ctx context.Context, tx *gorm.DB, houseID string) (int64, error) {
	res := conn(ctx, r.db.GetDB(), tx).Where("house_id = ?", houseID).Delete(&entities.Book{})
	return res.RowsAffected, res.Error
}
