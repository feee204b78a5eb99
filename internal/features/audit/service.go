package audit

import (
	"context"
	"time"

	common_models "amigo-admin/internal/common/models"
	"amigo-admin/internal/identity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserFinder resolves actor ids to display names
type UserFinder interface {
	DisplayNames(ctx context.Context, ids []string) (map[string]string, error)
}

type AuditService interface {
	LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error
	ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error)
}

type AuditServiceImpl struct {
	Repo     AuditRepository
	UserRepo UserFinder
}

func NewAuditService(repo AuditRepository, userRepo UserFinder) AuditService {
	return &AuditServiceImpl{
		Repo:     repo,
		UserRepo: userRepo,
	}
}

func (s *AuditServiceImpl) LogChange(ctx context.Context, action common_models.AuditAction, module string, recordID string, changes map[string]common_models.Change) error {
	log := common_models.AuditLog{
		ID:        primitive.NewObjectID(),
		Action:    action,
		Module:    module,
		RecordID:  recordID,
		ActorID:   "system",
		Changes:   changes,
		Timestamp: time.Now(),
	}
	if id, ok := identity.FromContext(ctx); ok {
		log.ActorID = id.UID
		log.ActorEmail = id.Email
	}

	return s.Repo.Create(ctx, log)
}

func (s *AuditServiceImpl) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	logs, err := s.Repo.List(ctx, filters, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	actorIDs := make([]string, 0)
	seen := make(map[string]bool)
	for _, log := range logs {
		if log.ActorID != "system" && log.ActorID != "" && !seen[log.ActorID] {
			seen[log.ActorID] = true
			actorIDs = append(actorIDs, log.ActorID)
		}
	}

	names := map[string]string{}
	if len(actorIDs) > 0 {
		if found, err := s.UserRepo.DisplayNames(ctx, actorIDs); err == nil {
			names = found
		}
	}

	for i, log := range logs {
		switch {
		case log.ActorID == "system" || log.ActorID == "":
			logs[i].ActorName = "System"
		case names[log.ActorID] != "":
			logs[i].ActorName = names[log.ActorID]
		case log.ActorEmail != "":
			logs[i].ActorName = log.ActorEmail
		default:
			logs[i].ActorName = "Unknown User"
		}
	}

	return logs, nil
}
