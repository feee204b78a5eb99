package inner_group

import (
	"context"
	"sort"

	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/database"

	"cloud.google.com/go/firestore"
)

type TemplateRepository interface {
	List(ctx context.Context) ([]Template, error)
	FindByID(ctx context.Context, id string) (*Template, error)
	Create(ctx context.Context, t *Template) error
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type TemplateRepositoryImpl struct {
	client *firestore.Client
}

func NewTemplateRepository(fb *database.Firebase) TemplateRepository {
	return &TemplateRepositoryImpl{client: fb.Firestore}
}

func (r *TemplateRepositoryImpl) col() *firestore.CollectionRef {
	return r.client.Collection("standaloneInnerGroups")
}

func (r *TemplateRepositoryImpl) List(ctx context.Context) ([]Template, error) {
	templates := []Template{}
	err := database.ForEach(r.col().Documents(ctx), func(doc *firestore.DocumentSnapshot) error {
		templates = append(templates, decodeTemplate(doc.Ref.ID, doc.Data()))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(templates, func(i, j int) bool {
		a, b := templates[i].CreatedAt, templates[j].CreatedAt
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})
	return templates, nil
}

func (r *TemplateRepositoryImpl) FindByID(ctx context.Context, id string) (*Template, error) {
	if id == "" {
		return nil, nil
	}
	doc, err := r.col().Doc(id).Get(ctx)
	if database.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t := decodeTemplate(doc.Ref.ID, doc.Data())
	return &t, nil
}

func (r *TemplateRepositoryImpl) Create(ctx context.Context, t *Template) error {
	ref, _, err := r.col().Add(ctx, map[string]interface{}{
		"name":        t.Name,
		"description": t.Description,
		"startTime":   t.StartTime,
		"endTime":     t.EndTime,
		"members":     t.Members,
		"createdBy":   t.CreatedBy,
		"createdAt":   *t.CreatedAt,
	})
	if err != nil {
		return err
	}
	t.ID = ref.ID
	return nil
}

func (r *TemplateRepositoryImpl) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	fsUpdates := make([]firestore.Update, 0, len(updates))
	for path, value := range updates {
		fsUpdates = append(fsUpdates, firestore.Update{Path: path, Value: value})
	}
	_, err := r.col().Doc(id).Update(ctx, fsUpdates)
	if database.IsNotFound(err) {
		return apperr.New(apperr.NotFound, "Inner group not found")
	}
	return err
}

func (r *TemplateRepositoryImpl) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

func (r *TemplateRepositoryImpl) Count(ctx context.Context) (int64, error) {
	return database.Count(ctx, r.col().Query)
}
