package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title     string    `gorm:"size:100;not null" json:"title" validate:"required,max=100"`
	Text      string    `gorm:"not null" json:"text" validate:"required"`
	Rating    int       `gorm:"not null" json:"rating" validate:"required,min=1,max=10"`
	CreatedAt time.Time `json:"createdAt"`
	HouseID   string    `gorm:"uniqueIndex:idx_review_house_user;index;type:varchar(36);not null" json:"houseId" validate:"required"`
	UserID    string    `gorm:"uniqueIndex:idx_review_house_user;type:varchar(36);not null" json:"userId" validate:"required"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	return nil
}
