package user

import (
	"context"
	"sort"

	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/database"

	"cloud.google.com/go/firestore"
)

const getAllChunk = 100

type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, uid string) (*User, error)
	FindByIDs(ctx context.Context, uids []string) (map[string]*User, error)
	FindByPushToken(ctx context.Context, token string) (*User, error)
	Update(ctx context.Context, uid string, updates map[string]interface{}) error
	DisplayNames(ctx context.Context, uids []string) (map[string]string, error)
	Count(ctx context.Context) (Counts, error)
}

type Counts struct {
	Total      int64
	Online     int64
	CallAccess int64
}

type UserRepositoryImpl struct {
	client *firestore.Client
}

func NewUserRepository(fb *database.Firebase) UserRepository {
	return &UserRepositoryImpl{client: fb.Firestore}
}

func (r *UserRepositoryImpl) col() *firestore.CollectionRef {
	return r.client.Collection("users")
}

// List returns every user, newest first. Sorting happens here so accounts
// without createdAt are not dropped by an ordered query.
func (r *UserRepositoryImpl) List(ctx context.Context) ([]User, error) {
	users := []User{}
	err := database.ForEach(r.col().Documents(ctx), func(doc *firestore.DocumentSnapshot) error {
		users = append(users, decodeUser(doc.Ref.ID, doc.Data()))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool {
		a, b := users[i].CreatedAt, users[j].CreatedAt
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})
	return users, nil
}

// FindByID returns (nil, nil) for unknown users
func (r *UserRepositoryImpl) FindByID(ctx context.Context, uid string) (*User, error) {
	if uid == "" {
		return nil, nil
	}
	doc, err := r.col().Doc(uid).Get(ctx)
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u := decodeUser(doc.Ref.ID, doc.Data())
	return &u, nil
}

// FindByIDs omits unknown ids from the result
func (r *UserRepositoryImpl) FindByIDs(ctx context.Context, uids []string) (map[string]*User, error) {
	found := make(map[string]*User, len(uids))
	for start := 0; start < len(uids); start += getAllChunk {
		end := min(start+getAllChunk, len(uids))
		refs := make([]*firestore.DocumentRef, 0, end-start)
		for _, uid := range uids[start:end] {
			if uid != "" {
				refs = append(refs, r.col().Doc(uid))
			}
		}
		if len(refs) == 0 {
			continue
		}
		docs, err := r.client.GetAll(ctx, refs)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			if !doc.Exists() {
				continue
			}
			u := decodeUser(doc.Ref.ID, doc.Data())
			found[u.UID] = &u
		}
	}
	return found, nil
}

func (r *UserRepositoryImpl) FindByPushToken(ctx context.Context, token string) (*User, error) {
	docs, err := r.col().Where("fcmToken", "==", token).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	u := decodeUser(docs[0].Ref.ID, docs[0].Data())
	return &u, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, uid string, updates map[string]interface{}) error {
	fsUpdates := make([]firestore.Update, 0, len(updates))
	for path, value := range updates {
		fsUpdates = append(fsUpdates, firestore.Update{Path: path, Value: value})
	}
	_, err := r.col().Doc(uid).Update(ctx, fsUpdates)
	if database.IsNotFound(err) {
		return apperr.New(apperr.NotFound, "User not found")
	}
	return err
}

func (r *UserRepositoryImpl) DisplayNames(ctx context.Context, uids []string) (map[string]string, error) {
	users, err := r.FindByIDs(ctx, uids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for uid, u := range users {
		names[uid] = u.Name()
	}
	return names, nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context) (Counts, error) {
	var c Counts
	var err error
	if c.Total, err = database.Count(ctx, r.col().Query); err != nil {
		return c, err
	}
	if c.Online, err = database.Count(ctx, r.col().Where("isOnline", "==", true)); err != nil {
		return c, err
	}
	if c.CallAccess, err = database.Count(ctx, r.col().Where("callAccess", "==", true)); err != nil {
		return c, err
	}
	return c, nil
}
