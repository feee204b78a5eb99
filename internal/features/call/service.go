package call

import (
	"context"
	"time"

	"amigo-admin/internal/access"
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/config"
	"amigo-admin/internal/features/user"

	"go.uber.org/zap"
)

// CallerDirectory looks up app users for their call access flag
type CallerDirectory interface {
	FindByID(ctx context.Context, uid string) (*user.User, error)
}

type TokenService interface {
	Issue(ctx context.Context, callerUID string, grant *access.Grant, req TokenRequest) (*TokenResponse, error)
	Status() ConfigStatus
}

type TokenServiceImpl struct {
	appID   string
	appCert string
	ttl     time.Duration
	callers CallerDirectory
	log     *zap.Logger
	now     func() time.Time
}

func NewTokenService(cfg *config.Config, callers CallerDirectory, log *zap.Logger) TokenService {
	return &TokenServiceImpl{
		appID:   cfg.AgoraAppID,
		appCert: cfg.AgoraAppCertificate,
		ttl:     cfg.AgoraTokenTTL,
		callers: callers,
		log:     log,
		now:     time.Now,
	}
}

// Issue admits admins outright and app users holding call access
func (s *TokenServiceImpl) Issue(ctx context.Context, callerUID string, grant *access.Grant, req TokenRequest) (*TokenResponse, error) {
	if s.appID == "" || s.appCert == "" {
		return nil, apperr.New(apperr.Internal, "Server configuration error - Agora credentials not configured")
	}
	subj, err := parseSubject(req.UID)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		u, err := s.callers.FindByID(ctx, callerUID)
		if err != nil {
			return nil, apperr.Wrap(apperr.Unavailable, "Failed to look up caller", err)
		}
		if u == nil || !u.CallAccess {
			return nil, apperr.New(apperr.PermissionDenied, "Call access not granted")
		}
	}

	role, roleName := rtcRole(req.Role)
	ttl := uint32(s.ttl / time.Second)
	token, err := buildToken(s.appID, s.appCert, req.ChannelName, subj, role, ttl)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to generate token", err)
	}

	issued := s.now().Unix()
	s.log.Info("call token issued",
		zap.String("uid", callerUID),
		zap.String("channel", req.ChannelName),
		zap.String("subject", subj.String()),
		zap.String("role", roleName),
	)
	return &TokenResponse{
		Token:       token,
		AppID:       s.appID,
		ChannelName: req.ChannelName,
		UID:         req.UID,
		Role:        roleName,
		Expiration:  issued + int64(ttl),
		ExpiresIn:   int64(ttl),
		GeneratedAt: issued,
	}, nil
}

func (s *TokenServiceImpl) Status() ConfigStatus {
	st := ConfigStatus{
		Message:   "Agora Token Server is running",
		Status:    "active",
		Timestamp: s.now().UTC(),
	}
	st.Config.AppIDConfigured = s.appID != ""
	st.Config.AppCertificateConfigured = s.appCert != ""
	return st
}
