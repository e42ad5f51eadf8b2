package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ZacharyKim7/Instagram-Downloader/internal/utilities"
)

type MiddlewareService struct {
	jwtSecret string
}

func NewMiddlewareService(jwtSecret string) *MiddlewareService {
	return &MiddlewareService{jwtSecret: jwtSecret}
}

// AuthMiddleware validates the X-Auth-Token JWT when a secret is configured.
// Without a secret the API is open and the middleware passes through.
func (m *MiddlewareService) AuthMiddleware(ctx *gin.Context) {
	if m.jwtSecret == "" {
		ctx.Next()
		return
	}

	authToken := ctx.Request.Header.Get("X-Auth-Token")
	if authToken == "" {
		utilities.Response(ctx, http.StatusUnauthorized, false, nil, "Unauthorized")
		ctx.Abort()
		return
	}

	token, err := jwt.ParseWithClaims(authToken, jwt.MapClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(m.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		utilities.Response(ctx, http.StatusUnauthorized, false, nil, "Unauthorized")
		ctx.Abort()
		return
	}

	ctx.Next()
}
