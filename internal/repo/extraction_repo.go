package repo

import (
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/ZacharyKim7/Instagram-Downloader/internal/dto"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/models"
)

type ExtractionRepo struct {
	DB *gorm.DB
}

func NewExtractionRepo(db *gorm.DB) *ExtractionRepo {
	return &ExtractionRepo{DB: db}
}

// Record stores one extraction request and its stored media rows.
func (r *ExtractionRepo) Record(postURL string, media []dto.StoredMedia) error {
	urls := make(pq.StringArray, 0, len(media))
	for _, m := range media {
		urls = append(urls, m.OriginalURL)
	}

	extraction := models.Extraction{
		PostURL:    postURL,
		MediaCount: len(media),
		MediaURLs:  urls,
	}
	if err := r.DB.Table(extraction.TableName()).Create(&extraction).Error; err != nil {
		return err
	}

	for _, m := range media {
		row := models.ExtractionMedia{
			ExtractionId: extraction.Id,
			Handle:       m.Handle,
			OriginalURL:  m.OriginalURL,
			Kind:         m.Kind,
			ContentType:  m.ContentType,
			Size:         m.Size,
		}
		if err := r.DB.Table(row.TableName()).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// Recent returns the latest extractions, newest first.
func (r *ExtractionRepo) Recent(limit int) ([]models.Extraction, error) {
	var extractions []models.Extraction
	err := r.DB.Table(models.Extraction{}.TableName()).
		Order("created_at desc").
		Limit(limit).
		Find(&extractions).Error
	return extractions, err
}
