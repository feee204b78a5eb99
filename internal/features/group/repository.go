package group

import (
	"context"
	"sort"

	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/database"

	"cloud.google.com/go/firestore"
)

type GroupRepository interface {
	List(ctx context.Context) ([]Group, error)
	ListByOwner(ctx context.Context, uid string) ([]Group, error)
	FindByID(ctx context.Context, id string) (*Group, error)
	Create(ctx context.Context, g *Group) error
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, id, uid string) error
	RemoveMember(ctx context.Context, id, uid string, innerGroups []InnerGroup) error
	AppendInnerGroup(ctx context.Context, id string, ig InnerGroup) error
	SetInnerGroups(ctx context.Context, id string, innerGroups []InnerGroup) error
	Count(ctx context.Context) (int64, error)
}

type GroupRepositoryImpl struct {
	client *firestore.Client
}

func NewGroupRepository(fb *database.Firebase) GroupRepository {
	return &GroupRepositoryImpl{client: fb.Firestore}
}

func (r *GroupRepositoryImpl) col() *firestore.CollectionRef {
	return r.client.Collection("groups")
}

func (r *GroupRepositoryImpl) List(ctx context.Context) ([]Group, error) {
	return r.query(ctx, r.col().Query)
}

func (r *GroupRepositoryImpl) ListByOwner(ctx context.Context, uid string) ([]Group, error) {
	return r.query(ctx, r.col().Where("createdBy", "==", uid))
}

func (r *GroupRepositoryImpl) query(ctx context.Context, q firestore.Query) ([]Group, error) {
	groups := []Group{}
	err := database.ForEach(q.Documents(ctx), func(doc *firestore.DocumentSnapshot) error {
		groups = append(groups, decodeGroup(doc.Ref.ID, doc.Data()))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].CreatedAt, groups[j].CreatedAt
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})
	return groups, nil
}

func (r *GroupRepositoryImpl) FindByID(ctx context.Context, id string) (*Group, error) {
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
	g := decodeGroup(doc.Ref.ID, doc.Data())
	return &g, nil
}

func (r *GroupRepositoryImpl) Create(ctx context.Context, g *Group) error {
	ref := r.col().NewDoc()
	_, err := ref.Set(ctx, map[string]interface{}{
		"name":        g.Name,
		"description": g.Description,
		"members":     g.Members,
		"innerGroups": innerGroupFields(g.InnerGroups),
		"isActive":    g.IsActive,
		"createdBy":   g.CreatedBy,
		"createdAt":   *g.CreatedAt,
		"updatedAt":   *g.UpdatedAt,
	})
	if err != nil {
		return err
	}
	g.ID = ref.ID
	return nil
}

// Delete removes the group together with its message history
func (r *GroupRepositoryImpl) Delete(ctx context.Context, id string) error {
	ref := r.col().Doc(id)
	if _, err := database.DeleteAll(ctx, r.client, ref.Collection("messages")); err != nil {
		return err
	}
	_, err := ref.Delete(ctx)
	return err
}

func (r *GroupRepositoryImpl) AddMember(ctx context.Context, id, uid string) error {
	return r.update(ctx, id, []firestore.Update{
		{Path: "members", Value: firestore.ArrayUnion(uid)},
	})
}

// RemoveMember drops the member and rewrites the inner groups in one write
func (r *GroupRepositoryImpl) RemoveMember(ctx context.Context, id, uid string, innerGroups []InnerGroup) error {
	return r.update(ctx, id, []firestore.Update{
		{Path: "members", Value: firestore.ArrayRemove(uid)},
		{Path: "innerGroups", Value: innerGroupFields(innerGroups)},
	})
}

func (r *GroupRepositoryImpl) AppendInnerGroup(ctx context.Context, id string, ig InnerGroup) error {
	return r.update(ctx, id, []firestore.Update{
		{Path: "innerGroups", Value: firestore.ArrayUnion(ig.Fields())},
	})
}

func (r *GroupRepositoryImpl) SetInnerGroups(ctx context.Context, id string, innerGroups []InnerGroup) error {
	return r.update(ctx, id, []firestore.Update{
		{Path: "innerGroups", Value: innerGroupFields(innerGroups)},
	})
}

func (r *GroupRepositoryImpl) Count(ctx context.Context) (int64, error) {
	return database.Count(ctx, r.col().Query)
}

func (r *GroupRepositoryImpl) update(ctx context.Context, id string, updates []firestore.Update) error {
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})
	_, err := r.col().Doc(id).Update(ctx, updates)
	if database.IsNotFound(err) {
		return apperr.New(apperr.NotFound, "Group not found")
	}
	return err
}
