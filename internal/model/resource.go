package model

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ResourceStore is row-level CRUD over one table keyed by K.
type ResourceStore[T any, K comparable] interface {
	Create(ctx context.Context, item T) (T, error)
	Get(ctx context.Context, key K) (T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, key K, item T) (T, error)
	Delete(ctx context.Context, key K) error
}

// Tabular is implemented by records that can be written as a CSV row.
type Tabular interface {
	Columns() []string
	Values() []string
}

// DateLayout is the wire format of Date.
const DateLayout = "2006-01-02"

// Date is a calendar date encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("date must have format YYYY-MM-DD: %w", err)
	}
	d.Time = t
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
	case nil:
		d.Time = time.Time{}
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

func formatOptionalInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatOptionalString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
