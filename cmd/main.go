package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/net/proxy"

	"github.com/ZacharyKim7/Instagram-Downloader/internal/api"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/bots"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/config"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/logger"
	"github.com/ZacharyKim7/Instagram-Downloader/internal/utilities"
)

// createHTTPClientWithProxy creates an HTTP client with SOCKS5 or HTTP proxy support
func createHTTPClientWithProxy(proxyURL string) *http.Client {
	if proxyURL == "" {
		return &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	parsedURL, err := url.Parse(proxyURL)
	if err != nil {
		fmt.Printf("Error parsing proxy URL: %v, using default client\n", err)
		return &http.Client{Timeout: 30 * time.Second}
	}

	var transport *http.Transport

	if parsedURL.Scheme == "socks5" {
		dialer, err := proxy.SOCKS5("tcp", parsedURL.Host, nil, proxy.Direct)
		if err != nil {
			fmt.Printf("Error creating SOCKS5 proxy: %v, using default client\n", err)
			return &http.Client{Timeout: 30 * time.Second}
		}

		transport = &http.Transport{
			Dial: dialer.Dial,
		}
	} else {
		transport = &http.Transport{
			Proxy: http.ProxyURL(parsedURL),
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   30 * time.Second,
	}
}

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	httpClient := createHTTPClientWithProxy(cfg.ProxyURL)

	server := gin.New()
	server.Use(gin.CustomRecovery(func(ctx *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Msg("unexpected fault in request pipeline")
		utilities.Error(ctx, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", recovered))
		ctx.Abort()
	}))
	server.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"*"},
		AllowHeaders: []string{"*"},
	}))
	server.GET("/", func(ctx *gin.Context) {
		utilities.Response(ctx, 200, true, nil, "server is running fine")
	})

	container, err := api.NewContainer(cfg, httpClient, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to create container")
		os.Exit(1)
	}
	defer container.Store.Close()

	api.RegisterRoutes(&server.RouterGroup, container)

	if cfg.TelegramToken != "" {
		tg, err := bots.NewTelegram(cfg.TelegramToken, "http://localhost:"+cfg.Port, container.MediaService, log)
		if err != nil {
			log.Warn().Err(err).Msg("telegram bot disabled")
		} else {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			go tg.Start(ctx)
		}
	}

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := server.Run(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
