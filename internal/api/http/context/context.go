package context

import (
	"context"

	"github.com/dtroode/autocompany-server/internal/model"
)

type sessionKey struct{}

type sessionValue struct {
	id      string
	session model.Session
}

var _ model.ContextManager = (*Manager)(nil)

// Manager stores the request session in a context.Context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetSession returns a copy of ctx that carries the session and its id.
func (m *Manager) SetSession(ctx context.Context, id string, session model.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionValue{id: id, session: session.Clone()})
}

// GetSession retrieves the session attached by SetSession.
func (m *Manager) GetSession(ctx context.Context) (string, model.Session, bool) {
	v, ok := ctx.Value(sessionKey{}).(sessionValue)
	if !ok {
		return "", model.Session{}, false
	}
	return v.id, v.session.Clone(), true
}
