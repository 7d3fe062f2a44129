package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/autocompany-server/internal/api/http/context"
	"github.com/dtroode/autocompany-server/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
	UseJSONFieldNames()
}

const testSessionID = "sess-1"

// withSession attaches a fixed session to every request, standing in for the session middleware.
func withSession(cm model.ContextManager, session model.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(cm.SetSession(c.Request.Context(), testSessionID, session))
		c.Next()
	}
}

func newEngine(cm *httpctx.Manager) *gin.Engine {
	r := gin.New()
	r.Use(withSession(cm, model.Session{}))
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func doForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == httpctx.SessionCookieName {
			return c
		}
	}
	return nil
}
