package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/GoSim-25-26J-441/kanban-backend/config"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/auth"
	authmw "github.com/GoSim-25-26J-441/kanban-backend/internal/auth/middleware"
)

// Authenticator builds the authentication middleware for AUTH_MODE. The
// returned func releases background resources.
func Authenticator(ctx context.Context, cfg *config.Config, logger *log.Logger) (gin.HandlerFunc, func(), error) {
	noop := func() {}

	switch cfg.Auth.Mode {
	case config.AuthFirebase:
		client, err := auth.InitializeFirebase(ctx, &cfg.Auth)
		if err != nil {
			return nil, noop, err
		}
		return authmw.BearerAuth(auth.NewFirebaseVerifier(client)), noop, nil

	case config.AuthJWT:
		if cfg.Auth.JWKSURL == "" {
			return authmw.BearerAuth(auth.NewHS256Verifier(cfg.Auth.JWTSecret, cfg.Auth.Audience, cfg.Auth.Issuer)), noop, nil
		}
		jwks, err := keyfunc.Get(cfg.Auth.JWKSURL, keyfunc.Options{
			Ctx:               ctx,
			RefreshInterval:   time.Hour,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				logger.WithError(err).Warn("jwks refresh failed")
			},
		})
		if err != nil {
			return nil, noop, fmt.Errorf("jwks: %w", err)
		}
		return authmw.BearerAuth(auth.NewJWKSVerifier(jwks, cfg.Auth.Audience, cfg.Auth.Issuer)), jwks.EndBackground, nil

	case config.AuthHeader:
		logger.Warn("AUTH_MODE=header trusts the X-User-Id header; use only for development")
		return authmw.HeaderAuth(), noop, nil

	default:
		return nil, noop, fmt.Errorf("unsupported AUTH_MODE %q", cfg.Auth.Mode)
	}
}
