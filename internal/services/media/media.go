package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ZacharyKim7/Instagram-Downloader/internal/dto"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/repo"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/scraper"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/storage"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/utilities"
)

// PostScraper is the media discovery collaborator. Satisfied by
// *scraper.Scraper; narrowed to an interface so handler tests can stub it.
type PostScraper interface {
	ScrapePost(ctx context.Context, postURL string) ([]scraper.MediaReference, error)
}

// Service wires discovery, download and storage behind the HTTP handlers.
type Service struct {
	scraper PostScraper
	store   storage.Store
	history *repo.ExtractionRepo
	client  *http.Client
	log     zerolog.Logger
}

func NewService(postScraper PostScraper, store storage.Store, history *repo.ExtractionRepo, client *http.Client, log zerolog.Logger) *Service {
	return &Service{
		scraper: postScraper,
		store:   store,
		history: history,
		client:  client,
		log:     log,
	}
}

// Extract handles POST /api/extract: discover media on the post, fetch and
// commit each item, answer with the manifest. Partial success is preferred
// over total failure throughout.
func (s *Service) Extract(ctx *gin.Context) {
	var req dto.ExtractRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		utilities.Error(ctx, http.StatusBadRequest, "URL is required")
		return
	}

	if err := scraper.ValidatePostURL(req.URL); err != nil {
		utilities.Error(ctx, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := s.ExtractToManifest(ctx.Request.Context(), req.URL)
	if err != nil {
		s.log.Error().Err(err).Str("url", req.URL).Msg("scrape failed")
		utilities.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, dto.ExtractResponse{
		Success: true,
		Media:   stored,
		Total:   len(stored),
	})
}

// ExtractToManifest runs the full pipeline for one post URL: discovery,
// fetch-and-store, history recording. Shared by the HTTP handler and the
// Telegram bot.
func (s *Service) ExtractToManifest(ctx context.Context, postURL string) ([]dto.StoredMedia, error) {
	refs, err := s.scraper.ScrapePost(ctx, postURL)
	if err != nil {
		return nil, err
	}

	stored := s.Resolve(ctx, refs)
	s.recordHistory(postURL, stored)
	return stored, nil
}

// Resolve runs the fetch-and-store loop over discovered references in order.
// Individual failures are logged and skipped; the output may be shorter than
// the input.
func (s *Service) Resolve(ctx context.Context, refs []scraper.MediaReference) []dto.StoredMedia {
	stored := make([]dto.StoredMedia, 0, len(refs))

	for _, ref := range refs {
		item, err := s.resolveOne(ctx, ref)
		if err != nil {
			s.log.Warn().Err(err).Str("url", ref.URL).Msg("skipping media item")
			continue
		}
		stored = append(stored, item)
	}
	return stored
}

func (s *Service) resolveOne(ctx context.Context, ref scraper.MediaReference) (dto.StoredMedia, error) {
	data, contentType, err := s.fetchBytes(ctx, ref.URL)
	if err != nil {
		return dto.StoredMedia{}, err
	}

	if !acceptContentType(contentType, ref.URL, ref.Kind) {
		return dto.StoredMedia{}, fmt.Errorf("content type %q does not match %s", contentType, ref.Kind)
	}

	filename := strings.ReplaceAll(uuid.New().String(), "-", "") + extensionFor(contentType, ref.Kind)
	handle, err := s.store.Put(data, contentType, filename)
	if err != nil {
		return dto.StoredMedia{}, fmt.Errorf("failed to store media: %w", err)
	}

	return dto.StoredMedia{
		Handle:      handle,
		Filename:    filename,
		OriginalURL: ref.URL,
		LocalPath:   "/api/download/" + handle,
		Size:        int64(len(data)),
		Kind:        string(ref.Kind),
		ContentType: contentType,
	}, nil
}

// Download handles GET /api/download/:handle, streaming stored bytes as an
// attachment with the original content type.
func (s *Service) Download(ctx *gin.Context) {
	handle := ctx.Param("handle")

	blob, err := s.store.Get(handle)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Error().Err(err).Str("handle", handle).Msg("storage lookup failed")
		}
		utilities.Error(ctx, http.StatusNotFound, "not found")
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", blob.Filename))
	ctx.Data(http.StatusOK, blob.ContentType, blob.Data)
}

// History handles GET /api/history when a database is configured.
func (s *Service) History(ctx *gin.Context) {
	if s.history == nil {
		utilities.Error(ctx, http.StatusNotFound, "history is not enabled")
		return
	}

	extractions, err := s.history.Recent(50)
	if err != nil {
		utilities.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}
	utilities.Response(ctx, http.StatusOK, true, extractions, "")
}

func (s *Service) recordHistory(postURL string, stored []dto.StoredMedia) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(postURL, stored); err != nil {
		s.log.Warn().Err(err).Msg("could not record extraction history")
	}
}
