package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	httpctx "github.com/dtroode/autocompany-server/internal/api/http/context"
	"github.com/dtroode/autocompany-server/internal/apierrors"
	"github.com/dtroode/autocompany-server/internal/logger"
	"github.com/dtroode/autocompany-server/internal/model"
)

// BirthdayLayout is the DD.MM.YYYY format of birthdays on the wire.
const BirthdayLayout = "02.01.2006"

// AuthService defines registration, login and session operations.
type AuthService interface {
	Register(ctx context.Context, sessionID string, reg model.Registration) (model.Account, error)
	Login(ctx context.Context, sessionID, username, password string) (string, error)
	ConfirmEmail(ctx context.Context, sessionID, email, code string) error
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, sessionID string) (model.SessionUser, error)
}

// Auth handles the /auth endpoints.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	secureCookie   bool
	logger         *logger.Logger
}

func NewAuth(authService AuthService, contextManager model.ContextManager, secureCookie bool, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		secureCookie:   secureCookie,
		logger:         logger,
	}
}

type registerRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Username         string `json:"username" binding:"required,max=64"`
	Password         string `json:"password" binding:"required,max=72"`
	RepeatedPassword string `json:"repeated_password" binding:"required"`
	FIO              string `json:"fio" binding:"required"`
	Birthday         string `json:"birthday" binding:"required"`
}

type accountResponse struct {
	UserID        int64  `json:"user_id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Birthday      string `json:"birthday"`
	EmailVerified bool   `json:"email_verified"`
}

type loginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type confirmRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

func (h *Auth) sessionID(c *gin.Context) string {
	id, _, _ := h.contextManager.GetSession(c.Request.Context())
	return id
}

func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}

	if req.Password != req.RepeatedPassword {
		writeError(c, h.logger, apierrors.NewErrValidation("passwords do not match"))
		return
	}

	birthday, err := time.Parse(BirthdayLayout, req.Birthday)
	if err != nil {
		writeError(c, h.logger, apierrors.NewErrValidation("birthday must be in DD.MM.YYYY format"))
		return
	}

	account, err := h.authService.Register(c.Request.Context(), h.sessionID(c), model.Registration{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FIO:      req.FIO,
		Birthday: birthday,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, accountResponse{
		UserID:        account.ID,
		Username:      account.Username,
		Email:         account.Email,
		Birthday:      account.Birthday.Format(BirthdayLayout),
		EmailVerified: account.EmailVerified,
	})
}

// Login accepts an OAuth2 password form and returns a bearer token.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}

	sessionID := h.sessionID(c)
	token, err := h.authService.Login(c.Request.Context(), sessionID, req.Username, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpctx.SetSessionCookie(c.Writer, sessionID, h.secureCookie)
	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Auth) ConfirmEmail(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindError(err))
		return
	}

	if err := h.authService.ConfirmEmail(c.Request.Context(), h.sessionID(c), req.Email, req.Code); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email successfully confirmed"})
}

// Logout drops the session named by the request cookie and expires the cookie.
func (h *Auth) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), h.sessionID(c)); err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpctx.ExpireSessionCookie(c.Writer, h.secureCookie)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (h *Auth) Me(c *gin.Context) {
	user, err := h.authService.Me(c.Request.Context(), h.sessionID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
