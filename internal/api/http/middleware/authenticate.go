package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/autocompany-server/internal/apierrors"
	"github.com/dtroode/autocompany-server/internal/logger"
	"github.com/dtroode/autocompany-server/internal/model"
)

// ContextUsernameKey is the gin context key holding the authenticated username.
const ContextUsernameKey = "auth.username"

// TokenParser resolves a bearer token into a username.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// Authenticate admits requests from a logged-in session or with a valid bearer token.
type Authenticate struct {
	tokens         TokenParser
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens TokenParser, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

func (m *Authenticate) Handle(c *gin.Context) {
	if _, session, ok := m.contextManager.GetSession(c.Request.Context()); ok && session.Authenticated() {
		c.Set(ContextUsernameKey, session.User.Username)
		c.Next()
		return
	}

	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || token == "" {
		c.Header("WWW-Authenticate", "Bearer")
		abortWithError(c, apierrors.NewErrNotAuthenticated())
		return
	}

	username, err := m.tokens.ParseToken(token)
	if err != nil {
		m.logger.Debug("Authenticate middleware: bearer token rejected",
			"path", c.Request.URL.Path)
		c.Header("WWW-Authenticate", "Bearer")
		abortWithError(c, apierrors.NewErrNotAuthenticated())
		return
	}

	c.Set(ContextUsernameKey, username)
	c.Next()
}
