package member

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrGroupNotFound  = errors.New("group not found")
	ErrJumuiaNotFound = errors.New("jumuia not found")
)
