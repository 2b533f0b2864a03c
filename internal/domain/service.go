package domain

import "time"

// Service is a bookable offering published by a photographer.
type Service struct {
	ID             int64     `json:"id"`
	PhotographerID int64     `json:"photographer_id" validate:"required"`
	Name           string    `json:"name" validate:"required"`
	Description    string    `json:"description,omitempty" gorm:"type:text"`
	Price          float64   `json:"price" validate:"gte=0"`
	ImageURL       string    `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Photographer *User `json:"photographer,omitempty" gorm:"foreignKey:PhotographerID"`
}
