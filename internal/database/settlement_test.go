package database

import (
	"testing"

	"github.com/jackc/pgconn"
	"github.com/pkg/errors"
)

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func checkRetryable(t *testing.T, err error, expected bool) {
	if got := overwriteRetryable(err); got != expected {
		t.Fatalf("Invalid retry classification for %v: %v, expected: %v", err, got, expected)
	}
}

func TestOverwriteRetryClassification(t *testing.T) {
	checkRetryable(t, pgError("40001"), true) // serialization failure
	checkRetryable(t, pgError("40P01"), true) // deadlock

	checkRetryable(t, pgError("23503"), false) // broken foreign key is real
	checkRetryable(t, errors.New("no sqlstate at all"), false)
	checkRetryable(t, nil, false)
}

func TestConcurrentOverwriteRetriesDuplicateKey(t *testing.T) {
	// Two recalculations of the same round race: the slower one deletes
	// against a snapshot without the winner's rows and its insert collides
	// on the composite keys. That attempt must retry and converge, not
	// abort with a failed run.
	checkRetryable(t, pgError("23505"), true)
	checkRetryable(t, errors.Wrap(pgError("23505"), "Failed to insert spot scores"), true)
}
