package postgres

import (
	"database/sql"
	"errors"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches no rows", func(t *testing.T) {
		if !isNotFound(sql.ErrNoRows) {
			t.Fatal("expected true for sql.ErrNoRows")
		}
	})

	t.Run("ignores other errors", func(t *testing.T) {
		if isNotFound(errors.New("connection refused")) {
			t.Fatal("expected false for unrelated error")
		}
	})
}
