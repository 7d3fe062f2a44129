package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/autocompany-server/internal/apierrors"
	"github.com/dtroode/autocompany-server/internal/logger"
	"github.com/dtroode/autocompany-server/internal/model"
)

type defaulter interface {
	ApplyDefaults()
}

type validatable interface {
	Validate() error
}

// KeyCodec converts a path parameter into a record key and writes the key back
// into a decoded record.
type KeyCodec[T any, K comparable] struct {
	Parse func(string) (K, error)
	Set   func(*T, K)
}

// Int64Key builds a KeyCodec for numeric keys.
func Int64Key[T any](set func(*T, int64)) KeyCodec[T, int64] {
	return KeyCodec[T, int64]{
		Parse: func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) },
		Set:   set,
	}
}

// StringKey builds a KeyCodec for text keys.
func StringKey[T any](set func(*T, string)) KeyCodec[T, string] {
	return KeyCodec[T, string]{
		Parse: func(s string) (string, error) {
			if s == "" {
				return "", errors.New("empty key")
			}
			return s, nil
		},
		Set: set,
	}
}

// Resource serves CRUD endpoints for one dealership entity.
type Resource[T any, K comparable] struct {
	singular string
	plural   string
	store    model.ResourceStore[T, K]
	key      KeyCodec[T, K]
	logger   *logger.Logger
}

// NewResource creates a handler; singular names the entity in messages and
// plural is the list field of the GET response.
func NewResource[T any, K comparable](
	singular, plural string,
	store model.ResourceStore[T, K],
	key KeyCodec[T, K],
	logger *logger.Logger,
) *Resource[T, K] {
	return &Resource[T, K]{
		singular: singular,
		plural:   plural,
		store:    store,
		key:      key,
		logger:   logger,
	}
}

// Mount registers the CRUD routes on g.
func (h *Resource[T, K]) Mount(g *gin.RouterGroup) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Resource[T, K]) Create(c *gin.Context) {
	item, ok := h.bind(c, nil)
	if !ok {
		return
	}

	created, err := h.store.Create(c.Request.Context(), item)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(c, h.logger, apierrors.NewErrNotFound("eligible worker"))
			return
		}
		writeError(c, h.logger, h.storeError(err))
		return
	}

	c.JSON(http.StatusOK, created)
}

func (h *Resource[T, K]) List(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{h.plural: items})
}

func (h *Resource[T, K]) Get(c *gin.Context) {
	key, ok := h.parseKey(c)
	if !ok {
		return
	}

	item, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		writeError(c, h.logger, h.storeError(err))
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Resource[T, K]) Update(c *gin.Context) {
	key, ok := h.parseKey(c)
	if !ok {
		return
	}

	item, ok := h.bind(c, &key)
	if !ok {
		return
	}

	updated, err := h.store.Update(c.Request.Context(), key, item)
	if err != nil {
		writeError(c, h.logger, h.storeError(err))
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Resource[T, K]) Delete(c *gin.Context) {
	key, ok := h.parseKey(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), key); err != nil {
		writeError(c, h.logger, h.storeError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.singular + " deleted"})
}

func (h *Resource[T, K]) parseKey(c *gin.Context) (K, bool) {
	key, err := h.key.Parse(c.Param("id"))
	if err != nil {
		writeError(c, h.logger, apierrors.NewErrValidation("invalid id"))
		return key, false
	}
	return key, true
}

// bind decodes the body over a record holding defaults. When key is set it
// overrides any key in the body.
func (h *Resource[T, K]) bind(c *gin.Context, key *K) (T, bool) {
	var item T
	if d, ok := any(&item).(defaulter); ok {
		d.ApplyDefaults()
	}
	if key != nil {
		h.key.Set(&item, *key)
	}

	if err := c.ShouldBindJSON(&item); err != nil {
		writeError(c, h.logger, bindError(err))
		return item, false
	}
	if key != nil {
		h.key.Set(&item, *key)
	}

	if v, ok := any(item).(validatable); ok {
		if err := v.Validate(); err != nil {
			writeError(c, h.logger, apierrors.NewErrValidation(err.Error()))
			return item, false
		}
	}

	return item, true
}

func (h *Resource[T, K]) storeError(err error) error {
	var cerr *model.ConstraintError
	column := ""
	if errors.As(err, &cerr) {
		column = cerr.Column
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return apierrors.NewErrNotFound(h.singular)
	case errors.Is(err, model.ErrAlreadyExists):
		return apierrors.NewErrConflict(h.singular + " already exists")
	case errors.Is(err, model.ErrReference):
		if column != "" {
			return apierrors.NewErrValidation(fmt.Sprintf("%s references a missing or dependent record", column))
		}
		return apierrors.NewErrValidation("record is referenced by or references a missing record")
	case errors.Is(err, model.ErrInvalid):
		if column != "" {
			return apierrors.NewErrValidation(fmt.Sprintf("invalid value for %s", column))
		}
		return apierrors.NewErrValidation("value violates a constraint")
	default:
		return err
	}
}
