package models

import (
	"time"

	"github.com/lib/pq"
)

type Extraction struct {
	Id         int64          `json:"id" gorm:"primaryKey"`
	PostURL    string         `json:"post_url"`
	MediaCount int            `json:"media_count"`
	MediaURLs  pq.StringArray `json:"media_urls" gorm:"type:text[]"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

func (e Extraction) TableName() string {
	return "extractions"
}

type ExtractionMedia struct {
	Id           int64     `json:"id" gorm:"primaryKey"`
	ExtractionId int64     `json:"extraction_id"`
	Handle       string    `json:"handle"`
	OriginalURL  string    `json:"original_url"`
	Kind         string    `json:"kind"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (m ExtractionMedia) TableName() string {
	return "extraction_media"
}
