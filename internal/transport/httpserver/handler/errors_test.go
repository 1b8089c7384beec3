package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "record not found",
			err:     gorm.ErrRecordNotFound,
			status:  http.StatusNotFound,
			message: "Record not found",
		},
		{
			name:    "unique violation",
			err:     &pgconn.PgError{Code: "23505"},
			status:  http.StatusBadRequest,
			message: "A record with this value already exists",
		},
		{
			name:    "foreign key violation",
			err:     &pgconn.PgError{Code: "23503"},
			status:  http.StatusBadRequest,
			message: "Referenced record does not exist",
		},
		{
			name:    "malformed uuid input",
			err:     &pgconn.PgError{Code: "22P02"},
			status:  http.StatusNotFound,
			message: "Record not found",
		},
		{
			name:    "wrapped malformed uuid input",
			err:     fmt.Errorf("load member: %w", &pgconn.PgError{Code: "22P02"}),
			status:  http.StatusNotFound,
			message: "Record not found",
		},
		{
			name:    "unknown failure",
			err:     fmt.Errorf("connection reset"),
			status:  http.StatusInternalServerError,
			message: "Server Error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, message := translateError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, message)
		})
	}
}
