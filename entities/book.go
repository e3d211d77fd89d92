package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Book struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title       string    `gorm:"not null" json:"title" validate:"required"`
	Description string    `gorm:"not null" json:"description" validate:"required"`
	Author      string    `gorm:"not null" json:"author" validate:"required"`
	Rating      int       `gorm:"not null" json:"rating" validate:"required,min=1,max=10"`
	CreatedAt   time.Time `json:"createdAt"`
	HouseID     string    `gorm:"index;type:varchar(36);not null" json:"houseId" validate:"required"`
	UserID      string    `gorm:"index;type:varchar(36);not null" json:"userId" validate:"required"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	return nil
}

// BookDetail is a book together with a summary of its house.
type BookDetail struct {
	Book
	House *HouseSummary `json:"house,omitempty"`
}
