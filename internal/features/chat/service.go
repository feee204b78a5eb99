package chat

import (
	"context"
	"sort"
	"time"

	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/common/models"
	"amigo-admin/internal/features/audit"
	"amigo-admin/internal/features/user"

	"go.uber.org/zap"
)

const unknownSender = "Unknown User"

// SenderDirectory resolves message authors
type SenderDirectory interface {
	FindByID(ctx context.Context, uid string) (*user.User, error)
}

type ChatService interface {
	ListChats(ctx context.Context) ([]Summary, error)
	GetChat(ctx context.Context, chatID string) (*Conversation, error)
	DeleteChat(ctx context.Context, chatID string) (Location, int, error)
	ArchiveChat(ctx context.Context, chatID, archivedBy string) (Location, error)
	DeleteMessage(ctx context.Context, chatID, messageID string) (Location, error)
}

type ChatServiceImpl struct {
	Repo         ChatRepository
	Resolver     *Resolver
	Senders      SenderDirectory
	AuditService audit.AuditService
	log          *zap.Logger
	now          func() time.Time
}

func NewChatService(repo ChatRepository, senders SenderDirectory, auditService audit.AuditService, log *zap.Logger) ChatService {
	return &ChatServiceImpl{
		Repo:         repo,
		Resolver:     NewResolver(repo, log),
		Senders:      senders,
		AuditService: auditService,
		log:          log,
		now:          time.Now,
	}
}

func (s *ChatServiceImpl) ListChats(ctx context.Context) ([]Summary, error) {
	docs, err := s.Repo.ListChats(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to fetch chats", err)
	}

	chats := make([]Summary, 0, len(docs))
	for _, doc := range docs {
		if summary, ok := summarize(doc); ok {
			chats = append(chats, summary)
		}
	}
	sort.SliceStable(chats, func(i, j int) bool {
		a, b := chats[i].LastUpdated, chats[j].LastUpdated
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})
	return chats, nil
}

func (s *ChatServiceImpl) GetChat(ctx context.Context, chatID string) (*Conversation, error) {
	loc, docs, err := s.Resolver.Resolve(ctx, chatID)
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(docs))
	for _, doc := range docs {
		messages = append(messages, normalize(doc))
	}
	s.enrich(ctx, messages)
	sortByTimestamp(messages, s.now())

	return &Conversation{
		ChatID:   chatID,
		ChatType: loc.Kind,
		Messages: messages,
	}, nil
}

// enrich fills sender fields with one lookup per distinct sender. A failed
// lookup only affects that sender's messages, which keep whatever name they
// were stored with.
func (s *ChatServiceImpl) enrich(ctx context.Context, messages []Message) {
	senders := make(map[string]*user.User)

	for i := range messages {
		m := &messages[i]
		if m.SenderID != "" {
			u, seen := senders[m.SenderID]
			if !seen {
				var err error
				u, err = s.Senders.FindByID(ctx, m.SenderID)
				if err != nil {
					s.log.Debug("sender lookup failed", zap.String("sender_id", m.SenderID), zap.Error(err))
					u = nil
				}
				senders[m.SenderID] = u
			}
			if u != nil {
				m.SenderName = u.Name()
				m.SenderEmail = u.Email
				continue
			}
		}
		if m.SenderName == "" {
			m.SenderName = unknownSender
		}
	}
}

// sortByTimestamp orders oldest first; untimed messages sort as now
func sortByTimestamp(messages []Message, now time.Time) {
	at := func(m Message) time.Time {
		if m.Timestamp == nil {
			return now
		}
		return *m.Timestamp
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return at(messages[i]).Before(at(messages[j]))
	})
}

// DeleteChat clears the first existing container. For chats documents the
// document itself goes too; group containers keep their document.
func (s *ChatServiceImpl) DeleteChat(ctx context.Context, chatID string) (Location, int, error) {
	loc, err := s.Resolver.Locate(ctx, chatID)
	if err != nil {
		return Location{}, 0, err
	}

	deleted, err := s.Repo.ClearMessages(ctx, loc)
	if err != nil {
		return Location{}, deleted, apperr.Wrap(apperr.Unavailable, "Failed to delete chat", err)
	}
	if loc.Layout == LayoutChats {
		if err := s.Repo.DeleteContainer(ctx, loc); err != nil {
			return Location{}, deleted, apperr.Wrap(apperr.Unavailable, "Failed to delete chat", err)
		}
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionDelete, "chats", chatID, map[string]models.Change{
		"chatType": {Old: loc.Kind},
		"messages": {Old: deleted, New: 0},
	})
	return loc, deleted, nil
}

func (s *ChatServiceImpl) ArchiveChat(ctx context.Context, chatID, archivedBy string) (Location, error) {
	loc, err := s.Resolver.Locate(ctx, chatID)
	if err != nil {
		return Location{}, err
	}

	if err := s.Repo.UpdateContainer(ctx, loc, map[string]interface{}{
		"isActive":   false,
		"archivedAt": s.now(),
		"archivedBy": archivedBy,
	}); err != nil {
		return Location{}, apperr.Wrap(apperr.Unavailable, "Failed to archive chat", err)
	}

	_ = s.AuditService.LogChange(ctx, models.AuditActionArchive, "chats", chatID, map[string]models.Change{
		"isActive": {Old: true, New: false},
	})
	return loc, nil
}

// DeleteMessage removes the message from the first container holding it
func (s *ChatServiceImpl) DeleteMessage(ctx context.Context, chatID, messageID string) (Location, error) {
	if messageID == "" {
		return Location{}, apperr.New(apperr.InvalidArgument, "messageId is required")
	}

	for _, loc := range s.Resolver.Candidates(ctx, chatID) {
		ok, err := s.Repo.HasMessage(ctx, loc, messageID)
		if err != nil {
			s.log.Warn("message lookup failed", zap.String("chat_id", chatID), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		if err := s.Repo.DeleteMessage(ctx, loc, messageID); err != nil {
			return Location{}, apperr.Wrap(apperr.Unavailable, "Failed to delete message", err)
		}
		_ = s.AuditService.LogChange(ctx, models.AuditActionDelete, "chats", chatID, map[string]models.Change{
			"messageId": {Old: messageID},
		})
		return loc, nil
	}
	return Location{}, apperr.New(apperr.NotFound, "Message not found")
}
