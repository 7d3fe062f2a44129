package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/autocompany-server/internal/api/http/context"
	"github.com/dtroode/autocompany-server/internal/api/http/handler"
	"github.com/dtroode/autocompany-server/internal/apierrors"
	"github.com/dtroode/autocompany-server/internal/mocks"
	"github.com/dtroode/autocompany-server/internal/model"
	"github.com/dtroode/autocompany-server/internal/session"
	"github.com/dtroode/autocompany-server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth struct {
	tokens map[string]string
}

func (f fakeAuth) Register(context.Context, string, model.Registration) (model.Account, error) {
	return model.Account{}, errors.New("not used")
}

func (f fakeAuth) Login(context.Context, string, string, string) (string, error) {
	return "", apierrors.NewErrInvalidCredentials()
}

func (f fakeAuth) ConfirmEmail(context.Context, string, string, string) error {
	return errors.New("not used")
}

func (f fakeAuth) Logout(context.Context, string) error { return nil }

func (f fakeAuth) Me(context.Context, string) (model.SessionUser, error) {
	return model.SessionUser{}, apierrors.NewErrNotAuthenticated()
}

func (f fakeAuth) ParseToken(token string) (string, error) {
	if u, ok := f.tokens[token]; ok {
		return u, nil
	}
	return "", apierrors.NewErrNotAuthenticated()
}

type companies struct{}

func (companies) Create(_ context.Context, c model.Company) (model.Company, error) { return c, nil }
func (companies) Get(context.Context, int64) (model.Company, error) {
	return model.Company{}, model.ErrNotFound
}
func (companies) List(context.Context) ([]model.Company, error) {
	return []model.Company{{INN: 1, NameCompany: "Auto", Address: "Moscow"}}, nil
}
func (companies) Update(_ context.Context, _ int64, c model.Company) (model.Company, error) {
	return c, nil
}
func (companies) Delete(context.Context, int64) error { return nil }

func newEngine(t *testing.T, opts Options, exports handler.ExportService) *gin.Engine {
	t.Helper()

	if opts.RateLimitRPS == 0 {
		opts.RateLimitRPS = 100
		opts.RateLimitBurst = 100
	}

	r := New(
		fakeAuth{tokens: map[string]string{"good": "alice"}},
		exports,
		session.NewMemoryStore(0),
		Stores{Companies: companies{}},
		httpctx.NewManager(),
		opts,
		testutil.MakeNoopLogger(),
	)
	return r.Register()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func hasSessionCookie(w *httptest.ResponseRecorder) bool {
	for _, c := range w.Result().Cookies() {
		if c.Name == httpctx.SessionCookieName && c.Value != "" {
			return true
		}
	}
	return false
}

func TestRouter_RootAndHealth(t *testing.T) {
	t.Parallel()

	e := newEngine(t, Options{}, nil)

	w := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Car Shop"}`, w.Body.String())
	assert.True(t, hasSessionCookie(w))

	w = serve(e, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_UnknownRouteGetsSession(t *testing.T) {
	t.Parallel()

	e := newEngine(t, Options{}, nil)

	w := serve(e, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Not Found"}`, w.Body.String())
	assert.True(t, hasSessionCookie(w))
}

func TestRouter_ResourcesOpenByDefault(t *testing.T) {
	t.Parallel()

	e := newEngine(t, Options{}, nil)

	w := serve(e, httptest.NewRequest(http.MethodGet, "/companies", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"companies":[{"inn":1,"name_company":"Auto","address":"Moscow"}]}`, w.Body.String())
}

func TestRouter_RequireAuth(t *testing.T) {
	t.Parallel()

	e := newEngine(t, Options{RequireAuth: true}, nil)

	w := serve(e, httptest.NewRequest(http.MethodGet, "/companies", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	req := httptest.NewRequest(http.MethodGet, "/companies", nil)
	req.Header.Set("Authorization", "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, serve(e, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/companies", nil)
	req.Header.Set("Authorization", "Bearer good")
	assert.Equal(t, http.StatusOK, serve(e, req).Code)

	// Auth routes stay reachable.
	w = serve(e, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ExportRoutesOnlyWhenEnabled(t *testing.T) {
	t.Parallel()

	e := newEngine(t, Options{}, nil)
	w := serve(e, httptest.NewRequest(http.MethodPost, "/exports/cars", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	exports := mocks.NewExportService(t)
	exports.On("Export", mock.Anything, "cars").Return("exports/cars/x.csv", nil)

	e = newEngine(t, Options{}, exports)
	w = serve(e, httptest.NewRequest(http.MethodPost, "/exports/cars", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRouter_RecoversPanics(t *testing.T) {
	t.Parallel()

	e := newEngine(t, Options{}, nil)
	e.GET("/boom", func(*gin.Context) { panic("boom") })

	w := serve(e, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"internal server error"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestRouter_CORSAllowsCredentials(t *testing.T) {
	t.Parallel()

	e := newEngine(t, Options{CORSOrigins: []string{"http://localhost:3000"}}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := serve(e, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_AuthRateLimit(t *testing.T) {
	t.Parallel()

	e := newEngine(t, Options{RateLimitRPS: 0.001, RateLimitBurst: 1}, nil)

	first := serve(e, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	second := serve(e, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// Resource routes are not limited.
	assert.Equal(t, http.StatusOK, serve(e, httptest.NewRequest(http.MethodGet, "/companies", nil)).Code)
}

func TestRouter_AuthRateLimitIgnoresForwardedFor(t *testing.T) {
	t.Parallel()

	e := newEngine(t, Options{RateLimitRPS: 0.001, RateLimitBurst: 1}, nil)

	codes := make([]int, 0, 5)
	for i := range 5 {
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.RemoteAddr = "203.0.113.7:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		req.Header.Set("X-Real-IP", fmt.Sprintf("198.51.100.%d", i+1))
		codes = append(codes, serve(e, req).Code)
	}

	assert.Equal(t, []int{
		http.StatusOK,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, codes)
}

func TestRouter_AuthRateLimitHonorsTrustedProxy(t *testing.T) {
	t.Parallel()

	e := newEngine(t, Options{
		RateLimitRPS:   0.001,
		RateLimitBurst: 1,
		TrustedProxies: []string{"10.0.0.1"},
	}, nil)

	for i := range 3 {
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.RemoteAddr = "10.0.0.1:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		assert.Equal(t, http.StatusOK, serve(e, req).Code)
	}
}

func TestRouter_ThrottledAuthRequestGetsNoSession(t *testing.T) {
	t.Parallel()

	e := newEngine(t, Options{RateLimitRPS: 0.001, RateLimitBurst: 1}, nil)

	first := serve(e, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	require.Equal(t, http.StatusOK, first.Code)
	assert.True(t, hasSessionCookie(first))

	second := serve(e, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.False(t, hasSessionCookie(second))
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}
