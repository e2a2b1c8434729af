package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/zvrva/stayfinder/internal/domain"
)

func TestMapUserWriteError(t *testing.T) {
	duplicate := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	assert.ErrorIs(t, mapUserWriteError(duplicate), domain.ErrEmailTaken)

	other := &pgconn.PgError{Code: "23514"}
	assert.NotErrorIs(t, mapUserWriteError(other), domain.ErrEmailTaken)

	plain := errors.New("connection reset")
	assert.Equal(t, plain, mapUserWriteError(plain))

	assert.NoError(t, mapUserWriteError(nil))
}
