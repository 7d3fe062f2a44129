package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	httpctx "github.com/dtroode/autocompany-server/internal/api/http/context"
	"github.com/dtroode/autocompany-server/internal/apierrors"
	"github.com/dtroode/autocompany-server/internal/logger"
	"github.com/dtroode/autocompany-server/internal/model"
)

// Session resolves the session cookie into a stored session and attaches it to the request.
type Session struct {
	store          model.SessionStore
	contextManager model.ContextManager
	secureCookie   bool
	logger         *logger.Logger
	newID          func() string
}

// NewSession creates a new Session middleware.
func NewSession(store model.SessionStore, contextManager model.ContextManager, secureCookie bool, logger *logger.Logger) *Session {
	return &Session{
		store:          store,
		contextManager: contextManager,
		secureCookie:   secureCookie,
		logger:         logger,
		newID:          uuid.NewString,
	}
}

// Handle reuses a known session or starts a new one and sets its cookie.
func (m *Session) Handle(c *gin.Context) {
	ctx := c.Request.Context()

	if id, err := c.Cookie(httpctx.SessionCookieName); err == nil && id != "" {
		session, err := m.store.Get(ctx, id)
		switch {
		case err == nil:
			c.Request = c.Request.WithContext(m.contextManager.SetSession(ctx, id, session))
			c.Next()
			return
		case !errors.Is(err, model.ErrNotFound):
			m.logger.Error("Session middleware: failed to load session",
				"error", err.Error())
			abortWithError(c, apierrors.NewErrInternalServerError(err))
			return
		}
	}

	id := m.newID()
	session := model.Session{}
	if err := m.store.Set(ctx, id, session); err != nil {
		m.logger.Error("Session middleware: failed to create session",
			"error", err.Error())
		abortWithError(c, apierrors.NewErrInternalServerError(err))
		return
	}

	httpctx.SetSessionCookie(c.Writer, id, m.secureCookie)
	c.Request = c.Request.WithContext(m.contextManager.SetSession(ctx, id, session))
	c.Next()
}
