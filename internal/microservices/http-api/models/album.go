package models

import "time"

type Album struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"not null;index"`
	Artist      string    `json:"artist" gorm:"not null;index"`
	Description string    `json:"description" gorm:"not null;type:text"`
	ImageURL    string    `json:"image_url" gorm:"not null"`
	Rating      float64   `json:"rating" gorm:"not null;default:0"` // derived: mean of review ratings
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE;"`
}

func (Album) TableName() string {
	return "albums"
}
