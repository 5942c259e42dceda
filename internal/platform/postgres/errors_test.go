package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassify_SQLStateCodes(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{code: "23505", want: ErrUniqueViolation},
		{code: "23503", want: ErrForeignKeyViolation},
		{code: "23514", want: ErrCheckViolation},
	}
	for _, tc := range cases {
		err := fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: tc.code, ConstraintName: "some_constraint"})
		classified := Classify(err)
		require.ErrorIs(t, classified, tc.want)
		require.True(t, IsConstraint(classified))
	}
}

func TestClassify_UnknownSQLStatePassesThrough(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42P01"}
	classified := Classify(pgErr)
	require.ErrorIs(t, classified, pgErr)
	require.False(t, IsConstraint(classified))
}

func TestClassify_GormTranslatedErrors(t *testing.T) {
	require.ErrorIs(t, Classify(gorm.ErrDuplicatedKey), ErrUniqueViolation)
	require.ErrorIs(t, Classify(gorm.ErrForeignKeyViolated), ErrForeignKeyViolation)
	require.ErrorIs(t, Classify(gorm.ErrCheckConstraintViolated), ErrCheckViolation)
}

func TestClassify_TransportFailures(t *testing.T) {
	require.ErrorIs(t, Classify(timeoutError{}), ErrTransport)
	require.ErrorIs(t, Classify(context.DeadlineExceeded), ErrTransport)
}

func TestClassify_NotFoundPassesThrough(t *testing.T) {
	classified := Classify(gorm.ErrRecordNotFound)
	require.ErrorIs(t, classified, gorm.ErrRecordNotFound)
	require.False(t, IsConstraint(classified))
}

func TestClassify_Nil(t *testing.T) {
	require.NoError(t, Classify(nil))
}

func TestClassify_UnrelatedErrorPassesThrough(t *testing.T) {
	sentinel := errors.New("boom")
	require.ErrorIs(t, Classify(sentinel), sentinel)
}
