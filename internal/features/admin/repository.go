package admin

import (
	"context"
	"sort"

	"amigo-admin/internal/access"
	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/database"

	"cloud.google.com/go/firestore"
)

type AdminRepository interface {
	List(ctx context.Context) ([]Admin, error)
	FindByID(ctx context.Context, uid string) (*Admin, error)
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	Create(ctx context.Context, a *Admin) error
	Update(ctx context.Context, uid string, updates map[string]interface{}) error
	Delete(ctx context.Context, uid string) error
	Count(ctx context.Context) (total int64, active int64, err error)
	LookupAdmin(ctx context.Context, uid string) (*access.AdminRecord, error)
}

type AdminRepositoryImpl struct {
	client *firestore.Client
}

func NewAdminRepository(fb *database.Firebase) AdminRepository {
	return &AdminRepositoryImpl{client: fb.Firestore}
}

func (r *AdminRepositoryImpl) col() *firestore.CollectionRef {
	return r.client.Collection("admins")
}

func (r *AdminRepositoryImpl) List(ctx context.Context) ([]Admin, error) {
	admins := []Admin{}
	err := database.ForEach(r.col().Documents(ctx), func(doc *firestore.DocumentSnapshot) error {
		admins = append(admins, decodeAdmin(doc.Ref.ID, doc.Data()))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(admins, func(i, j int) bool {
		a, b := admins[i].CreatedAt, admins[j].CreatedAt
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})
	return admins, nil
}

func (r *AdminRepositoryImpl) FindByID(ctx context.Context, uid string) (*Admin, error) {
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
	a := decodeAdmin(doc.Ref.ID, doc.Data())
	return &a, nil
}

func (r *AdminRepositoryImpl) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	docs, err := r.col().Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	a := decodeAdmin(docs[0].Ref.ID, docs[0].Data())
	return &a, nil
}

func (r *AdminRepositoryImpl) Create(ctx context.Context, a *Admin) error {
	_, err := r.col().Doc(a.UID).Set(ctx, map[string]interface{}{
		"email":       a.Email,
		"role":        a.Role,
		"permissions": a.Permissions,
		"isActive":    a.IsActive,
		"createdAt":   *a.CreatedAt,
		"createdBy":   a.CreatedBy,
	})
	return err
}

func (r *AdminRepositoryImpl) Update(ctx context.Context, uid string, updates map[string]interface{}) error {
	fsUpdates := make([]firestore.Update, 0, len(updates))
	for path, value := range updates {
		fsUpdates = append(fsUpdates, firestore.Update{Path: path, Value: value})
	}
	_, err := r.col().Doc(uid).Update(ctx, fsUpdates)
	if database.IsNotFound(err) {
		return apperr.New(apperr.NotFound, "Admin not found")
	}
	return err
}

func (r *AdminRepositoryImpl) Delete(ctx context.Context, uid string) error {
	_, err := r.col().Doc(uid).Delete(ctx)
	return err
}

func (r *AdminRepositoryImpl) Count(ctx context.Context) (int64, int64, error) {
	total, err := database.Count(ctx, r.col().Query)
	if err != nil {
		return 0, 0, err
	}
	active, err := database.Count(ctx, r.col().Where("isActive", "==", true))
	if err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

// LookupAdmin feeds the capability resolver
func (r *AdminRepositoryImpl) LookupAdmin(ctx context.Context, uid string) (*access.AdminRecord, error) {
	a, err := r.FindByID(ctx, uid)
	if err != nil || a == nil {
		return nil, err
	}
	return &access.AdminRecord{
		Role:        a.Role,
		Permissions: a.Permissions,
		IsActive:    a.IsActive,
	}, nil
}
