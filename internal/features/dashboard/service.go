package dashboard

import (
	"context"
	"sync"
	"time"

	"amigo-admin/internal/common/apperr"
	"amigo-admin/internal/features/user"

	"golang.org/x/sync/errgroup"
)

type UserCounter interface {
	Count(ctx context.Context) (user.Counts, error)
}

type AdminCounter interface {
	Count(ctx context.Context) (total int64, active int64, err error)
}

type GroupCounter interface {
	Count(ctx context.Context) (int64, error)
}

type TemplateCounter interface {
	Count(ctx context.Context) (int64, error)
}

type StatsService interface {
	// Current returns the cached snapshot, computing it on first use
	Current(ctx context.Context) (*Stats, error)
	Refresh(ctx context.Context) (*Stats, error)
}

type StatsServiceImpl struct {
	users     UserCounter
	admins    AdminCounter
	groups    GroupCounter
	templates TemplateCounter
	now       func() time.Time

	mu       sync.RWMutex
	snapshot *Stats
}

func NewStatsService(users UserCounter, admins AdminCounter, groups GroupCounter, templates TemplateCounter) StatsService {
	return &StatsServiceImpl{
		users:     users,
		admins:    admins,
		groups:    groups,
		templates: templates,
		now:       time.Now,
	}
}

func (s *StatsServiceImpl) Current(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}
	return s.Refresh(ctx)
}

// Refresh runs every count aggregation concurrently. A failed refresh
// keeps the previous snapshot.
func (s *StatsServiceImpl) Refresh(ctx context.Context) (*Stats, error) {
	var (
		st     Stats
		counts user.Counts
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.TotalAdmins, st.ActiveAdmins, err = s.admins.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.TotalGroups, err = s.groups.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		st.StandaloneInnerGroups, err = s.templates.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperr.Wrap(apperr.Unavailable, "Failed to compute dashboard stats", err)
	}

	st.TotalUsers = counts.Total
	st.OnlineUsers = counts.Online
	st.CallAccessUsers = counts.CallAccess
	st.GeneratedAt = s.now()

	s.mu.Lock()
	s.snapshot = &st
	s.mu.Unlock()
	return &st, nil
}
