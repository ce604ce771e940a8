package models

import "time"

type Review struct {
	ID      int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID  string  `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_reviews_user_album,priority:1"`
	AlbumID int64   `json:"album_id" gorm:"not null;index;uniqueIndex:idx_reviews_user_album,priority:2"`
	Title   string  `json:"title" gorm:"not null;default:''"`
	Content string  `json:"content" gorm:"not null;type:text"`
	Rating  float64 `json:"rating" gorm:"not null;check:chk_reviews_rating,rating >= 0 AND rating <= 5"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations. The cascading foreign keys are declared on the has-many side.
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Album *Album `json:"album,omitempty" gorm:"foreignKey:AlbumID"`
}

func (Review) TableName() string {
	return "reviews"
}
