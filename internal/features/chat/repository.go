package chat

import (
	"context"

	"amigo-admin/internal/database"

	"cloud.google.com/go/firestore"
)

type ChatRepository interface {
	ListChats(ctx context.Context) ([]RawDoc, error)
	// GetChat returns (nil, nil) when chats/{chatId} is absent
	GetChat(ctx context.Context, chatID string) (database.Fields, error)
	Exists(ctx context.Context, loc Location) (bool, error)
	Messages(ctx context.Context, loc Location) ([]RawDoc, error)
	HasMessage(ctx context.Context, loc Location, messageID string) (bool, error)
	DeleteMessage(ctx context.Context, loc Location, messageID string) error
	ClearMessages(ctx context.Context, loc Location) (int, error)
	DeleteContainer(ctx context.Context, loc Location) error
	UpdateContainer(ctx context.Context, loc Location, updates map[string]interface{}) error
}

type ChatRepositoryImpl struct {
	client *firestore.Client
}

func NewChatRepository(fb *database.Firebase) ChatRepository {
	return &ChatRepositoryImpl{client: fb.Firestore}
}

func (r *ChatRepositoryImpl) container(loc Location) *firestore.DocumentRef {
	switch loc.Layout {
	case LayoutGroup:
		return r.client.Collection("groups").Doc(loc.GroupID)
	case LayoutNested:
		return r.client.Collection("groups").Doc(loc.GroupID).Collection("innerGroups").Doc(loc.InnerGroupID)
	default:
		return r.client.Collection("chats").Doc(loc.ChatID)
	}
}

func (r *ChatRepositoryImpl) messages(loc Location) *firestore.CollectionRef {
	return r.container(loc).Collection("messages")
}

func (r *ChatRepositoryImpl) ListChats(ctx context.Context) ([]RawDoc, error) {
	docs := []RawDoc{}
	err := database.ForEach(r.client.Collection("chats").Documents(ctx), func(doc *firestore.DocumentSnapshot) error {
		docs = append(docs, RawDoc{ID: doc.Ref.ID, Data: doc.Data()})
		return nil
	})
	return docs, err
}

func (r *ChatRepositoryImpl) GetChat(ctx context.Context, chatID string) (database.Fields, error) {
	doc, err := r.client.Collection("chats").Doc(chatID).Get(ctx)
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	data := doc.Data()
	if data == nil {
		data = map[string]interface{}{}
	}
	return data, nil
}

func (r *ChatRepositoryImpl) Exists(ctx context.Context, loc Location) (bool, error) {
	_, err := r.container(loc).Get(ctx)
	if database.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

func (r *ChatRepositoryImpl) Messages(ctx context.Context, loc Location) ([]RawDoc, error) {
	docs := []RawDoc{}
	err := database.ForEach(r.messages(loc).Documents(ctx), func(doc *firestore.DocumentSnapshot) error {
		docs = append(docs, RawDoc{ID: doc.Ref.ID, Data: doc.Data()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *ChatRepositoryImpl) HasMessage(ctx context.Context, loc Location, messageID string) (bool, error) {
	_, err := r.messages(loc).Doc(messageID).Get(ctx)
	if database.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

func (r *ChatRepositoryImpl) DeleteMessage(ctx context.Context, loc Location, messageID string) error {
	_, err := r.messages(loc).Doc(messageID).Delete(ctx)
	return err
}

func (r *ChatRepositoryImpl) ClearMessages(ctx context.Context, loc Location) (int, error) {
	return database.DeleteAll(ctx, r.client, r.messages(loc))
}

func (r *ChatRepositoryImpl) DeleteContainer(ctx context.Context, loc Location) error {
	_, err := r.container(loc).Delete(ctx)
	return err
}

func (r *ChatRepositoryImpl) UpdateContainer(ctx context.Context, loc Location, updates map[string]interface{}) error {
	fsUpdates := make([]firestore.Update, 0, len(updates))
	for path, value := range updates {
		fsUpdates = append(fsUpdates, firestore.Update{Path: path, Value: value})
	}
	_, err := r.container(loc).Update(ctx, fsUpdates)
	return err
}
