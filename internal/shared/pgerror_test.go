package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslatePgError(t *testing.T) {
	assert.NoError(t, TranslatePgError(nil))
	assert.ErrorIs(t, TranslatePgError(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, TranslatePgError(fmt.Errorf("scan: %w", pgx.ErrNoRows)), ErrNotFound)

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	err := TranslatePgError(unique)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "users_email_key")

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "comments_author_id_fkey"}
	err = TranslatePgError(fk)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "comments_author_id_fkey", ViolatedConstraint(err))
	assert.Equal(t, "comments_author_id_fkey", ViolatedConstraint(fmt.Errorf("insert: %w", err)))

	other := errors.New("connection reset")
	assert.Equal(t, other, TranslatePgError(other))
	assert.Empty(t, ViolatedConstraint(other))
}
