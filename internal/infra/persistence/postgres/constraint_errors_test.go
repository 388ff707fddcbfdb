package postgres

import (
	"testing"

	"civic/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAccountConstraintViolation(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField repository.UniqueField
		wantOK    bool
	}{
		{
			name:      "email index",
			err:       &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: accountsEmailLiveKey},
			wantField: repository.UniqueFieldEmail,
			wantOK:    true,
		},
		{
			name:      "username index",
			err:       &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: accountsUsernameLiveKey},
			wantField: repository.UniqueFieldUsername,
			wantOK:    true,
		},
		{
			name:      "wrapped email index",
			err:       errors.Wrap(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: accountsEmailLiveKey}, "insert"),
			wantField: repository.UniqueFieldEmail,
			wantOK:    true,
		},
		{
			name: "unknown index named after column",
			err: &pgconn.PgError{
				Code:           pgUniqueViolation,
				ConstraintName: "idx_legacy",
				Detail:         "Key (lower(username::text))=(john) already exists.",
			},
			wantField: repository.UniqueFieldUsername,
			wantOK:    true,
		},
		{
			name: "unrelated unique index",
			err:  &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "accounts_pkey", Detail: "Key (id)=(1) already exists."},
		},
		{
			name: "not null violation",
			err:  &pgconn.PgError{Code: pgNotNullViolation, ConstraintName: accountsEmailLiveKey},
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violation, ok := accountConstraintViolation(tt.err)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, violation)

				return
			}

			assert.Equal(t, tt.wantField, violation.Field)
			assert.ErrorIs(t, violation, tt.err)
		})
	}
}

func TestConstraintPredicates(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintViolation(&pgconn.PgError{Code: pgUniqueViolation}))
	assert.False(t, isUniqueConstraintViolation(&pgconn.PgError{Code: pgNotNullViolation}))

	assert.True(t, isNotNullConstraintViolation(&pgconn.PgError{Code: pgNotNullViolation}))
	assert.False(t, isNotNullConstraintViolation(errors.New("null value")))

	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, isForeignKeyConstraintViolation(&pgconn.PgError{Code: pgForeignKeyViolation}))
	assert.False(t, isForeignKeyConstraintViolation(errors.New("boom")))
}
