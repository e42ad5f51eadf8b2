package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ZacharyKim7/Instagram-Downloader/internal/config"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/db"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/middleware"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/repo"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/scraper"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/services/media"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/session"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/storage"
)

type Container struct {
	MiddlewareService *middleware.MiddlewareService
	MediaService      *media.Service
	Store             storage.Store
}

// NewContainer wires the whole pipeline from config. The database is
// optional; without DB_URL history recording is simply disabled.
func NewContainer(cfg *config.Config, httpClient *http.Client, log zerolog.Logger) (*Container, error) {
	var store storage.Store
	var err error
	if cfg.StorageBackend == "disk" {
		store, err = storage.NewDiskStore(cfg.MediaDir, cfg.MediaRetention)
		if err != nil {
			return nil, err
		}
	} else {
		store = storage.NewMemoryStore(cfg.MediaRetention)
	}

	var history *repo.ExtractionRepo
	if cfg.DatabaseURL != "" {
		database, err := db.ConnectDB(cfg.DatabaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("database unavailable, history disabled")
		} else if err := db.MigrateDB(database); err != nil {
			log.Warn().Err(err).Msg("migration failed, history disabled")
		} else {
			history = repo.NewExtractionRepo(database)
		}
	}

	sessions := session.NewStore(cfg.SessionFile)
	auth := scraper.NewAuthenticator(cfg.Username, cfg.Password, log)
	postScraper := scraper.NewScraper(auth, sessions, cfg.HasCredentials(), cfg.MaxBrowsers, log)

	mediaService := media.NewService(postScraper, store, history, httpClient, log)
	middlewareService := middleware.NewMiddlewareService(cfg.JWTSecret)

	return &Container{
		MiddlewareService: middlewareService,
		MediaService:      mediaService,
		Store:             store,
	}, nil
}
