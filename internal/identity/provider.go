package identity

import (
	"amigo-admin/internal/config"
	"amigo-admin/internal/database"

	"go.uber.org/zap"
)

// NewVerifier picks the verifier for the configured auth mode
func NewVerifier(cfg *config.Config, fb *database.Firebase, log *zap.Logger) Verifier {
	if cfg.DevAuth {
		log.Warn("DEV_AUTH enabled: accepting locally signed tokens instead of Firebase ID tokens")
		return NewDevVerifier(cfg.JWTSecret)
	}
	return NewFirebaseVerifier(fb.Auth)
}
