package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
)

// translateError is the fallback for failures no handler classified:
// known persistence error codes map to client statuses, everything else
// is a generic 500.
func translateError(err error) (int, string) {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "Record not found"
	case errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
		return http.StatusBadRequest, "A record with this value already exists"
	case errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation:
		return http.StatusBadRequest, "Referenced record does not exist"
	case errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepr:
		// a malformed id compared against a uuid column means the
		// record cannot exist
		return http.StatusNotFound, "Record not found"
	}
	return http.StatusInternalServerError, "Server Error"
}

// respondUnhandled logs and writes a translated failure; expected causes
// log at warn, everything else at error.
func (h *Handlers) respondUnhandled(w http.ResponseWriter, op string, err error, args ...any) {
	status, message := translateError(err)
	if status == http.StatusInternalServerError {
		h.log.InternalError(op, err, args...)
	} else {
		h.log.BusinessError(op, err, args...)
	}
	writeError(w, status, message)
}
