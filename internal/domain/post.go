package domain

import "time"

type Post struct {
	ID           int64    `json:"_id" gorm:"primaryKey"`
	Title        string   `json:"title"`
	Message      string   `json:"message"`
	Creator      string   `json:"creator"`
	Tags         []string `json:"tags" gorm:"serializer:json"`
	SelectedFile string   `json:"selectedFile"`
	LikeCount    int      `json:"likeCount" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }
