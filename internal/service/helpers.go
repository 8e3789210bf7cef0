package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
)

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// mapLookupError turns repository lookup failures into API errors, converting
// sql.ErrNoRows into a not-found with the given message.
func mapLookupError(err error, notFoundMessage string) *appErrors.Error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFoundMessage)
	}
	return appErrors.FromError(err)
}
