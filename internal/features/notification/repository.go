package notification

import (
	"context"

	"amigo-admin/internal/database"

	"cloud.google.com/go/firestore"
)

// LogRepository is append-only; entries are never updated
type LogRepository interface {
	Append(ctx context.Context, entry LogEntry) (string, error)
	List(ctx context.Context, q LogQuery) ([]LogEntry, error)
}

type LogRepositoryImpl struct {
	client *firestore.Client
}

func NewLogRepository(fb *database.Firebase) LogRepository {
	return &LogRepositoryImpl{client: fb.Firestore}
}

func (r *LogRepositoryImpl) col() *firestore.CollectionRef {
	return r.client.Collection("notificationLogs")
}

func (r *LogRepositoryImpl) Append(ctx context.Context, entry LogEntry) (string, error) {
	ref, _, err := r.col().Add(ctx, entry.fields())
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (r *LogRepositoryImpl) List(ctx context.Context, q LogQuery) ([]LogEntry, error) {
	q = q.normalized()
	query := r.col().OrderBy("timestamp", firestore.Desc)
	if q.Status != "" {
		query = query.Where("status", "==", q.Status)
	}
	if q.SentBy != "" {
		query = query.Where("sentBy", "==", q.SentBy)
	}

	entries := []LogEntry{}
	err := database.ForEach(query.Limit(q.Limit).Documents(ctx), func(doc *firestore.DocumentSnapshot) error {
		entries = append(entries, decodeLogEntry(doc.Ref.ID, doc.Data()))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
