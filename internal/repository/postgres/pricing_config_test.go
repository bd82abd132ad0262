package postgres

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

func TestConflictError_UniqueViolationBecomesValidation(t *testing.T) {
	dup := &pq.Error{Code: uniqueViolationCode, Constraint: "uq_vessels_name_size"}

	err := conflictError(dup, "vessel", "a vessel named Amber Jar at 8oz already exists")

	vErr, ok := err.(*errors.ErrValidation)
	require.True(t, ok, "unique violation should map to ErrValidation")
	assert.Equal(t, "a vessel named Amber Jar at 8oz already exists", vErr.Fields["vessel"])
}

func TestConflictError_OtherErrorsPassThrough(t *testing.T) {
	plain := fmt.Errorf("connection reset by peer")
	assert.Equal(t, plain, conflictError(plain, "vessel", "unused"))

	// A different Postgres error class is not a conflict
	fk := &pq.Error{Code: "23503"}
	assert.Equal(t, fk, conflictError(fk, "wax", "unused"))
}
