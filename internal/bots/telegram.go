package bots

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/ZacharyKim7/Instagram-Downloader/internal/services/media"
)

var postURLPattern = regexp.MustCompile(`https://(?:www\.)?instagram\.com/(?:p|reel)/[^\s]+`)

// Telegram is an optional front-end: message the bot a post URL and it
// replies with download links for every media item it could extract.
type Telegram struct {
	bot     *bot.Bot
	media   *media.Service
	baseURL string
	log     zerolog.Logger
}

func NewTelegram(token, baseURL string, mediaService *media.Service, log zerolog.Logger) (*Telegram, error) {
	t := &Telegram{
		media:   mediaService,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}

	b, err := bot.New(token, bot.WithDefaultHandler(t.handle))
	if err != nil {
		return nil, fmt.Errorf("could not create telegram bot: %w", err)
	}
	t.bot = b
	return t, nil
}

// Start blocks until ctx is cancelled.
func (t *Telegram) Start(ctx context.Context) {
	t.log.Info().Msg("telegram bot started")
	t.bot.Start(ctx)
}

func (t *Telegram) handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	postURL := postURLPattern.FindString(update.Message.Text)
	if postURL == "" {
		t.reply(ctx, b, update, "Send me an Instagram post or reel URL.")
		return
	}

	stored, err := t.media.ExtractToManifest(ctx, postURL)
	if err != nil {
		t.log.Warn().Err(err).Str("url", postURL).Msg("bot extraction failed")
		t.reply(ctx, b, update, "Sorry, that post could not be processed.")
		return
	}
	if len(stored) == 0 {
		t.reply(ctx, b, update, "No media found on that post.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d media item(s):\n", len(stored))
	for _, item := range stored {
		fmt.Fprintf(&sb, "%s%s (%s)\n", t.baseURL, item.LocalPath, item.Kind)
	}
	t.reply(ctx, b, update, sb.String())
}

func (t *Telegram) reply(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
	if err != nil {
		t.log.Warn().Err(err).Msg("could not send telegram reply")
	}
}
