package model

import "context"

type ContextManager interface {
	SetSession(ctx context.Context, id string, session Session) context.Context
	GetSession(ctx context.Context) (id string, session Session, ok bool)
}
