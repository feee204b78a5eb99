package chat

import (
	"context"
	"strings"

	"amigo-admin/internal/common/apperr"

	"go.uber.org/zap"
)

// strategy proposes the container one storage layout would use for chatID
type strategy func(ctx context.Context, chatID string) (Location, bool)

// Resolver finds which of the historical storage layouts holds a chat.
// Lookups are read-only and a failed lookup only rules its layout out.
type Resolver struct {
	repo       ChatRepository
	log        *zap.Logger
	strategies []strategy
}

func NewResolver(repo ChatRepository, log *zap.Logger) *Resolver {
	r := &Resolver{repo: repo, log: log}
	r.strategies = []strategy{r.chatDocument, r.groupDocument, r.compositeID}
	return r
}

// chatDocument covers direct chats and inner-group chats created as
// chats/{id} documents carrying groupId and innerGroupId
func (r *Resolver) chatDocument(ctx context.Context, chatID string) (Location, bool) {
	data, err := r.repo.GetChat(ctx, chatID)
	if err != nil {
		r.lookupFailed("chats", chatID, err)
		return Location{}, false
	}
	if data == nil {
		return Location{}, false
	}
	loc := Location{Kind: KindDirect, Layout: LayoutChats, ChatID: chatID}
	if data.Has("groupId") && data.Has("innerGroupId") {
		loc.Kind = KindInnerGroup
		loc.GroupID = data.String("groupId")
		loc.InnerGroupID = data.String("innerGroupId")
	}
	return loc, true
}

func (r *Resolver) groupDocument(ctx context.Context, chatID string) (Location, bool) {
	loc := Location{Kind: KindGroup, Layout: LayoutGroup, ChatID: chatID, GroupID: chatID}
	ok, err := r.repo.Exists(ctx, loc)
	if err != nil {
		r.lookupFailed("groups", chatID, err)
		return Location{}, false
	}
	return loc, ok
}

// compositeID splits {groupId}_{innerGroupId} at the first separator.
// Generated inner group ids never contain one.
func (r *Resolver) compositeID(ctx context.Context, chatID string) (Location, bool) {
	// g_i_x resolves to inner group "i_x", not "i"
	groupID, innerGroupID, found := strings.Cut(chatID, "_")
	if !found || groupID == "" || innerGroupID == "" {
		return Location{}, false
	}
	parent, err := r.repo.Exists(ctx, Location{Layout: LayoutGroup, GroupID: groupID})
	if err != nil {
		r.lookupFailed("groups", groupID, err)
		return Location{}, false
	}
	if !parent {
		return Location{}, false
	}
	loc := Location{Kind: KindInnerGroup, Layout: LayoutNested, ChatID: chatID, GroupID: groupID, InnerGroupID: innerGroupID}
	ok, err := r.repo.Exists(ctx, loc)
	if err != nil {
		r.lookupFailed("innerGroups", chatID, err)
		return Location{}, false
	}
	return loc, ok
}

// Candidates lists every existing container for chatID in lookup order
func (r *Resolver) Candidates(ctx context.Context, chatID string) []Location {
	var out []Location
	for _, try := range r.strategies {
		if loc, ok := try(ctx, chatID); ok {
			out = append(out, loc)
		}
	}
	return out
}

// Resolve returns the first container that exists and holds messages
func (r *Resolver) Resolve(ctx context.Context, chatID string) (Location, []RawDoc, error) {
	if chatID == "" {
		return Location{}, nil, apperr.New(apperr.InvalidArgument, "chatId is required")
	}
	for _, try := range r.strategies {
		loc, ok := try(ctx, chatID)
		if !ok {
			continue
		}
		docs, err := r.repo.Messages(ctx, loc)
		if err != nil {
			r.lookupFailed("messages", chatID, err)
			continue
		}
		if len(docs) > 0 {
			return loc, docs, nil
		}
	}
	return Location{}, nil, apperr.New(apperr.NotFound, "Chat not found or no messages found")
}

// Locate returns the first container that exists, with or without messages
func (r *Resolver) Locate(ctx context.Context, chatID string) (Location, error) {
	if chatID == "" {
		return Location{}, apperr.New(apperr.InvalidArgument, "chatId is required")
	}
	for _, try := range r.strategies {
		if loc, ok := try(ctx, chatID); ok {
			return loc, nil
		}
	}
	return Location{}, apperr.New(apperr.NotFound, "Chat not found")
}

func (r *Resolver) lookupFailed(layout, id string, err error) {
	r.log.Warn("chat lookup failed",
		zap.String("layout", layout),
		zap.String("chat_id", id),
		zap.Error(err),
	)
}
