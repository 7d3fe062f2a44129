package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/autocompany-server/internal/apierrors"
	"github.com/dtroode/autocompany-server/internal/logger"
	"github.com/dtroode/autocompany-server/internal/model"
)

const (
	exportPrefix      = "exports"
	exportContentType = "text/csv; charset=utf-8"
	exportTimeLayout  = "20060102T150405Z"
)

// utf8BOM lets spreadsheet programs detect the encoding of Cyrillic values.
const utf8BOM = "\ufeff"

// ExportSource yields one table of an entity.
type ExportSource interface {
	Columns() []string
	Rows(ctx context.Context) ([][]string, error)
}

type tableSource[T model.Tabular, K comparable] struct {
	store model.ResourceStore[T, K]
}

// NewTableSource exports every row of store.
func NewTableSource[T model.Tabular, K comparable](store model.ResourceStore[T, K]) ExportSource {
	return tableSource[T, K]{store: store}
}

func (s tableSource[T, K]) Columns() []string {
	var zero T
	return zero.Columns()
}

func (s tableSource[T, K]) Rows(ctx context.Context) ([][]string, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, item.Values())
	}
	return rows, nil
}

// Export writes entity lists as CSV files into object storage.
type Export struct {
	storage model.Storage
	sources map[string]ExportSource
	logger  *logger.Logger

	now   func() time.Time
	newID func() string
}

func NewExport(storage model.Storage, sources map[string]ExportSource, logger *logger.Logger) *Export {
	return &Export{
		storage: storage,
		sources: sources,
		logger:  logger,
		now:     time.Now,
		newID:   func() string { return uuid.NewString()[:8] },
	}
}

// Entities returns the exportable entity names in sorted order.
func (e *Export) Entities() []string {
	names := make([]string, 0, len(e.sources))
	for name := range e.sources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Export uploads the current list of entity and returns the object key.
func (e *Export) Export(ctx context.Context, entity string) (string, error) {
	source, ok := e.sources[entity]
	if !ok {
		return "", apierrors.NewErrNotFound(fmt.Sprintf("export %q", entity))
	}

	rows, err := source.Rows(ctx)
	if err != nil {
		e.logger.Error("Export service: failed to read rows",
			"entity", entity,
			"error", err.Error())
		return "", fmt.Errorf("failed to read %s: %w", entity, err)
	}

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(source.Columns()); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to write csv rows: %w", err)
	}

	name := fmt.Sprintf("%s-%s.csv", e.now().UTC().Format(exportTimeLayout), e.newID())
	key := path.Join(exportPrefix, entity, name)

	if err := e.storage.Upload(ctx, key, &buf, exportContentType); err != nil {
		e.logger.Error("Export service: failed to upload export",
			"entity", entity,
			"key", key,
			"error", err.Error())
		return "", fmt.Errorf("failed to upload export: %w", err)
	}

	e.logger.Info("Export service: export created",
		"entity", entity,
		"key", key,
		"rows", len(rows))

	return key, nil
}

// List returns the stored exports of entity, newest first.
func (e *Export) List(ctx context.Context, entity string) ([]model.StoredObject, error) {
	if _, ok := e.sources[entity]; !ok {
		return nil, apierrors.NewErrNotFound(fmt.Sprintf("export %q", entity))
	}

	objects, err := e.storage.List(ctx, path.Join(exportPrefix, entity)+"/")
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	return objects, nil
}

// Open streams a stored export back. The caller closes the reader.
func (e *Export) Open(ctx context.Context, entity, name string) (io.ReadCloser, error) {
	key, err := e.existingKey(ctx, entity, name)
	if err != nil {
		return nil, err
	}

	rc, err := e.storage.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download export: %w", err)
	}
	return rc, nil
}

func (e *Export) Remove(ctx context.Context, entity, name string) error {
	key, err := e.existingKey(ctx, entity, name)
	if err != nil {
		return err
	}

	if err := e.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete export: %w", err)
	}

	e.logger.Info("Export service: export removed",
		"key", key)

	return nil
}

func (e *Export) existingKey(ctx context.Context, entity, name string) (string, error) {
	if _, ok := e.sources[entity]; !ok {
		return "", apierrors.NewErrNotFound(fmt.Sprintf("export %q", entity))
	}
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") || path.Ext(name) != ".csv" {
		return "", apierrors.NewErrBadRequest("invalid export name")
	}

	key := path.Join(exportPrefix, entity, name)
	exists, err := e.storage.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to check export: %w", err)
	}
	if !exists {
		return "", apierrors.NewErrNotFound("export file")
	}

	return key, nil
}
