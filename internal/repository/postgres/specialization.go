package postgres

import (
	"errors"
	"fmt"

	"github.com/dtroode/autocompany-server/internal/model"
)

// eligibleWorker explains a failed specialization insert. The INSERT ... SELECT
// returns no rows when the worker is missing or holds a different post.
func eligibleWorker(err error, table, post string) error {
	err = classify(err, table)
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("no worker with post %q: %w", post, model.ErrNotFound)
	}
	return err
}
