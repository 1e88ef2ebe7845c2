package app

import (
	"context"
	"encoding/json"

	"sakan/console/internal/normalize"
	"sakan/console/internal/rbac"
	"sakan/console/internal/session"
)

// Sessions is the narrow view of the session manager the HTTP layer needs.
type Sessions interface {
	Login(ctx context.Context, username, password string) session.Result
	Logout(ctx context.Context) error
	Current() (normalize.Identity, bool)
	IsAuthenticated() bool
	IsLoading() bool
}

// Queries is the query/mutation layer contract.
type Queries interface {
	List(ctx context.Context, kind normalize.Kind) (json.RawMessage, error)
	Create(ctx context.Context, kind normalize.Kind, payload json.RawMessage) error
	Update(ctx context.Context, kind normalize.Kind, id int64, payload json.RawMessage) error
	Delete(ctx context.Context, kind normalize.Kind, id int64) error
}

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Service struct {
	sessions Sessions
	queries  Queries
	store    Pinger
}

func NewService(sessions Sessions, queries Queries, store Pinger) *Service {
	return &Service{
		sessions: sessions,
		queries:  queries,
		store:    store,
	}
}

func (s *Service) Sessions() Sessions { return s.sessions }

func (s *Service) Queries() Queries { return s.queries }

// Can gates an action by the live session's role.
func (s *Service) Can(role string, action rbac.Action) bool {
	return rbac.Can(rbac.Normalize(role), action)
}

// Ping checks the credential/cache store.
func (s *Service) Ping(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Ping(ctx)
}
