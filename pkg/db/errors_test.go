package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "pgx unique violation",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"},
			want: true,
		},
		{
			name:       "pgx unique violation matching constraint",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"},
			constraint: "idx_users_email",
			want:       true,
		},
		{
			name:       "pgx unique violation different constraint",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "idx_other"},
			constraint: "idx_users_email",
			want:       false,
		},
		{
			name: "pgx non-unique error code",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "fk_users"},
			want: false,
		},
		{
			name: "pq unique violation",
			err:  &pq.Error{Code: "23505", Constraint: "idx_users_email"},
			want: true,
		},
		{
			name: "wrapped pgx error",
			err:  fmt.Errorf("create user: %w", &pgconn.PgError{Code: "23505"}),
			want: true,
		},
		{
			name: "sqlite message",
			err:  errors.New("UNIQUE constraint failed: users.email"),
			want: true,
		},
		{
			name: "postgres message fallback",
			err:  errors.New(`duplicate key value violates unique constraint "idx_users_email"`),
			want: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsUniqueViolation(tc.err, tc.constraint))
		})
	}
}
