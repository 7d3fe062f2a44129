package handler

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/autocompany-server/internal/api/http/context"
	"github.com/dtroode/autocompany-server/internal/apierrors"
	"github.com/dtroode/autocompany-server/internal/mocks"
	"github.com/dtroode/autocompany-server/internal/model"
	"github.com/dtroode/autocompany-server/internal/testutil"
)

func newAuthEngine(t *testing.T) (*mocks.AuthService, http.Handler) {
	t.Helper()

	svc := mocks.NewAuthService(t)
	cm := httpctx.NewManager()
	h := NewAuth(svc, cm, false, testutil.MakeNoopLogger())

	r := newEngine(cm)
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/confirm-email", h.ConfirmEmail)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/me", h.Me)
	return svc, r
}

func validRegisterBody() map[string]string {
	return map[string]string{
		"email":             "alice@example.com",
		"username":          "alice",
		"password":          "s3cret",
		"repeated_password": "s3cret",
		"fio":               "Alice A.",
		"birthday":          "01.02.1990",
	}
}

func TestAuth_Register(t *testing.T) {
	t.Parallel()

	svc, h := newAuthEngine(t)
	birthday := time.Date(1990, time.February, 1, 0, 0, 0, 0, time.UTC)
	svc.On("Register", mock.Anything, testSessionID, model.Registration{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "s3cret",
		FIO:      "Alice A.",
		Birthday: birthday,
	}).Return(model.Account{
		ID:       7,
		Username: "alice",
		Email:    "alice@example.com",
		Birthday: birthday,
	}, nil)

	w := doJSON(t, h, http.MethodPost, "/auth/register", validRegisterBody())

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"user_id":7,"username":"alice","email":"alice@example.com","birthday":"01.02.1990","email_verified":false}`, w.Body.String())
}

func TestAuth_Register_RejectedBeforeService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mutate     func(map[string]string)
		raw        string
		wantCode   int
		wantDetail string
	}{
		{
			name:       "passwords differ",
			mutate:     func(b map[string]string) { b["repeated_password"] = "other" },
			wantCode:   http.StatusUnprocessableEntity,
			wantDetail: "passwords do not match",
		},
		{
			name:       "birthday format",
			mutate:     func(b map[string]string) { b["birthday"] = "1990-02-01" },
			wantCode:   http.StatusUnprocessableEntity,
			wantDetail: "birthday must be in DD.MM.YYYY format",
		},
		{
			name:       "invalid email",
			mutate:     func(b map[string]string) { b["email"] = "not-an-email" },
			wantCode:   http.StatusUnprocessableEntity,
			wantDetail: "email",
		},
		{
			name:       "missing username",
			mutate:     func(b map[string]string) { delete(b, "username") },
			wantCode:   http.StatusUnprocessableEntity,
			wantDetail: "username",
		},
		{
			name:       "malformed body",
			raw:        `{"email":`,
			wantCode:   http.StatusBadRequest,
			wantDetail: "malformed request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, h := newAuthEngine(t)

			var body any
			if tt.raw != "" {
				body = tt.raw
			} else {
				b := validRegisterBody()
				tt.mutate(b)
				body = b
			}

			w := doJSON(t, h, http.MethodPost, "/auth/register", body)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, decodeBody(t, w)["detail"], tt.wantDetail)
		})
	}
}

func TestAuth_Register_ServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"username taken", apierrors.NewErrUsernameTaken("alice"), http.StatusConflict},
		{"mail failed", apierrors.NewErrNotificationFailed(assert.AnError), http.StatusServiceUnavailable},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, h := newAuthEngine(t)
			svc.On("Register", mock.Anything, testSessionID, mock.Anything).Return(model.Account{}, tt.err)

			w := doJSON(t, h, http.MethodPost, "/auth/register", validRegisterBody())

			assert.Equal(t, tt.wantCode, w.Code)
			assert.NotContains(t, w.Body.String(), assert.AnError.Error())
		})
	}
}

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	svc, h := newAuthEngine(t)
	svc.On("Login", mock.Anything, testSessionID, "alice", "s3cret").Return("jwt-token", nil)

	w := doForm(h, "/auth/login", url.Values{"username": {"alice"}, "password": {"s3cret"}})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"access_token":"jwt-token","token_type":"bearer"}`, w.Body.String())

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, testSessionID, cookie.Value)
	assert.Equal(t, 30*24*60*60, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc, h := newAuthEngine(t)
	svc.On("Login", mock.Anything, testSessionID, "alice", "wrong").Return("", apierrors.NewErrInvalidCredentials())

	w := doForm(h, "/auth/login", url.Values{"username": {"alice"}, "password": {"wrong"}})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestAuth_Login_MissingField(t *testing.T) {
	t.Parallel()

	_, h := newAuthEngine(t)

	w := doForm(h, "/auth/login", url.Values{"username": {"alice"}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decodeBody(t, w)["detail"], "password")
}

func TestAuth_ConfirmEmail(t *testing.T) {
	t.Parallel()

	svc, h := newAuthEngine(t)
	svc.On("ConfirmEmail", mock.Anything, testSessionID, "alice@example.com", "042137").Return(nil)

	w := doJSON(t, h, http.MethodPost, "/auth/confirm-email", map[string]string{
		"email": "alice@example.com",
		"code":  "042137",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Email successfully confirmed"}`, w.Body.String())
}

func TestAuth_ConfirmEmail_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unknown account", apierrors.NewErrAccountNotFound("alice@example.com"), http.StatusNotFound},
		{"already verified", apierrors.NewErrEmailAlreadyVerified("alice@example.com"), http.StatusConflict},
		{"wrong code", apierrors.NewErrInvalidCode(), http.StatusUnauthorized},
		{"expired", apierrors.NewErrCodeExpired(), http.StatusGone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, h := newAuthEngine(t)
			svc.On("ConfirmEmail", mock.Anything, testSessionID, "alice@example.com", "000000").Return(tt.err)

			w := doJSON(t, h, http.MethodPost, "/auth/confirm-email", map[string]string{
				"email": "alice@example.com",
				"code":  "000000",
			})

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestAuth_Logout(t *testing.T) {
	t.Parallel()

	svc, h := newAuthEngine(t)
	svc.On("Logout", mock.Anything, testSessionID).Return(nil)

	w := doJSON(t, h, http.MethodPost, "/auth/logout", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Successfully logged out"}`, w.Body.String())

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestAuth_Me(t *testing.T) {
	t.Parallel()

	svc, h := newAuthEngine(t)
	svc.On("Me", mock.Anything, testSessionID).Return(model.SessionUser{ID: 1, Username: "alice", Email: "alice@example.com"}, nil)

	w := doJSON(t, h, http.MethodGet, "/auth/me", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":1,"username":"alice","email":"alice@example.com","email_verified":false}`, w.Body.String())
}

func TestAuth_Me_Anonymous(t *testing.T) {
	t.Parallel()

	svc, h := newAuthEngine(t)
	svc.On("Me", mock.Anything, testSessionID).Return(model.SessionUser{}, apierrors.NewErrNotAuthenticated())

	w := doJSON(t, h, http.MethodGet, "/auth/me", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_Logout_WithoutSession(t *testing.T) {
	t.Parallel()

	svc := mocks.NewAuthService(t)
	cm := mocks.NewContextManager(t)
	cm.On("GetSession", mock.Anything).Return("", model.Session{}, false)
	svc.On("Logout", mock.Anything, "").Return(nil)

	h := NewAuth(svc, cm, true, testutil.MakeNoopLogger())
	r := gin.New()
	r.POST("/auth/logout", h.Logout)

	w := doJSON(t, r, http.MethodPost, "/auth/logout", nil)

	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}
