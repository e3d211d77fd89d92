package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultPhoto = "no-photo.jpg"

type House struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name          string    `gorm:"uniqueIndex;size:50;not null" json:"name" validate:"required,max=50"`
	Slug          string    `gorm:"index;type:text" json:"slug"`
	Description   string    `gorm:"size:500;not null" json:"description" validate:"required,max=500"`
	Website       string    `json:"website,omitempty" validate:"omitempty,http_url"`
	Phone         string    `gorm:"size:20" json:"phone,omitempty" validate:"omitempty,max=20"`
	Email         string    `json:"email,omitempty" validate:"omitempty,email"`
	Address       string    `gorm:"not null" json:"address" validate:"required"`
	AverageRating *float64  `json:"averageRating" validate:"omitempty,min=1,max=10"`
	Photo         string    `gorm:"default:no-photo.jpg" json:"photo"`
	Housing       bool      `json:"housing"`
	AcceptGi      bool      `json:"acceptGi"`
	CreatedAt     time.Time `json:"createdAt"`
	UserID        string    `gorm:"index;type:varchar(36);not null" json:"userId" validate:"required"`
	// OwnerSlot holds UserID for non-admin owners and NULL otherwise; its unique
	// index allows at most one house per non-admin owner.
	OwnerSlot *string `gorm:"uniqueIndex;type:varchar(36)" json:"-"`
}

func (h *House) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	if h.Photo == "" {
		h.Photo = DefaultPhoto
	}
	return nil
}

// HouseSummary is the slice of a house embedded in book responses.
type HouseSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
