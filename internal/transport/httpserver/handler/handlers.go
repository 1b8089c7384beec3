package handler

import (
	admindomain "church-registry-go/internal/domain/admin"
	memberdomain "church-registry-go/internal/domain/member"
	unitdomain "church-registry-go/internal/domain/unit"
	"church-registry-go/pkg/logger"
)

type Handlers struct {
	Admins  *admindomain.Service
	Members *memberdomain.Service
	Units   *unitdomain.Service
	log     logger.Logger
}

func New(admins *admindomain.Service, members *memberdomain.Service, units *unitdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Admins:  admins,
		Members: members,
		Units:   units,
		log:     log,
	}
}
