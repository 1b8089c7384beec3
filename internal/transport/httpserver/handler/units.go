package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	unitdomain "church-registry-go/internal/domain/unit"
	"github.com/go-chi/chi/v5"
)

type unitNameRequest struct {
	Name string `json:"name"`
}

type unitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type unitWithCountResponse struct {
	unitResponse
	MemberCount int64 `json:"memberCount"`
}

type unitDetailResponse struct {
	unitResponse
	MemberCount int64                   `json:"memberCount"`
	Members     []unitMemberSummaryJSON `json:"members"`
}

type unitMemberSummaryJSON struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Gender    string  `json:"gender"`
	Phone     *string `json:"phone"`
	Status    string  `json:"status"`
}

type rosterMemberResponse struct {
	ID               string          `json:"id"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	Gender           string          `json:"gender"`
	DateOfBirth      *string         `json:"dateOfBirth"`
	Phone            *string         `json:"phone"`
	MaritalStatus    string          `json:"maritalStatus"`
	NumberOfChildren int             `json:"numberOfChildren"`
	Status           string          `json:"status"`
	GroupID          *string         `json:"groupId"`
	JumuiaID         *string         `json:"jumuiaId"`
	Group            *unitdomain.Ref `json:"group,omitempty"`
	Jumuia           *unitdomain.Ref `json:"jumuia,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func toUnitResponse(u unitdomain.Unit) unitResponse {
	return unitResponse{
		ID:        u.ID,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toRosterResponse(kind unitdomain.Kind, m unitdomain.RosterMember) rosterMemberResponse {
	resp := rosterMemberResponse{
		ID:               m.ID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Gender:           m.Gender,
		DateOfBirth:      formatDate(m.DateOfBirth),
		Phone:            m.Phone,
		MaritalStatus:    m.MaritalStatus,
		NumberOfChildren: m.NumberOfChildren,
		Status:           m.Status,
		GroupID:          m.GroupID,
		JumuiaID:         m.JumuiaID,
		CreatedAt:        m.CreatedAt,
	}
	// a group roster carries each member's jumuia summary and vice versa
	switch kind {
	case unitdomain.KindGroup:
		resp.Jumuia = m.Other
	case unitdomain.KindJumuia:
		resp.Group = m.Other
	}
	return resp
}

func (h *Handlers) ListGroups(w http.ResponseWriter, r *http.Request) {
	h.listUnits(w, r, unitdomain.KindGroup)
}

func (h *Handlers) GetGroup(w http.ResponseWriter, r *http.Request) {
	h.getUnit(w, r, unitdomain.KindGroup)
}

func (h *Handlers) CreateGroup(w http.ResponseWriter, r *http.Request) {
	h.createUnit(w, r, unitdomain.KindGroup)
}

func (h *Handlers) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	h.updateUnit(w, r, unitdomain.KindGroup)
}

func (h *Handlers) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	h.deleteUnit(w, r, unitdomain.KindGroup)
}

func (h *Handlers) GroupMembers(w http.ResponseWriter, r *http.Request) {
	h.unitMembers(w, r, unitdomain.KindGroup)
}

func (h *Handlers) ListJumuias(w http.ResponseWriter, r *http.Request) {
	h.listUnits(w, r, unitdomain.KindJumuia)
}

func (h *Handlers) GetJumuia(w http.ResponseWriter, r *http.Request) {
	h.getUnit(w, r, unitdomain.KindJumuia)
}

func (h *Handlers) CreateJumuia(w http.ResponseWriter, r *http.Request) {
	h.createUnit(w, r, unitdomain.KindJumuia)
}

func (h *Handlers) UpdateJumuia(w http.ResponseWriter, r *http.Request) {
	h.updateUnit(w, r, unitdomain.KindJumuia)
}

func (h *Handlers) DeleteJumuia(w http.ResponseWriter, r *http.Request) {
	h.deleteUnit(w, r, unitdomain.KindJumuia)
}

func (h *Handlers) JumuiaMembers(w http.ResponseWriter, r *http.Request) {
	h.unitMembers(w, r, unitdomain.KindJumuia)
}

func (h *Handlers) listUnits(w http.ResponseWriter, r *http.Request, kind unitdomain.Kind) {
	units, err := h.Units.List(r.Context(), kind)
	if err != nil {
		h.respondUnhandled(w, string(kind)+"s.list: list failed", err)
		return
	}

	response := make([]unitWithCountResponse, 0, len(units))
	for _, u := range units {
		response = append(response, unitWithCountResponse{
			unitResponse: toUnitResponse(u.Unit),
			MemberCount:  u.MemberCount,
		})
	}

	writeList(w, len(response), response)
}

func (h *Handlers) getUnit(w http.ResponseWriter, r *http.Request, kind unitdomain.Kind) {
	id := chi.URLParam(r, "id")

	detail, err := h.Units.Get(r.Context(), kind, id)
	if err != nil {
		if errors.Is(err, unitdomain.ErrNotFound) {
			writeError(w, http.StatusNotFound, kind.Title()+" not found")
			return
		}
		h.respondUnhandled(w, string(kind)+"s.get: get failed", err, "id", id)
		return
	}

	members := make([]unitMemberSummaryJSON, 0, len(detail.Members))
	for _, m := range detail.Members {
		members = append(members, unitMemberSummaryJSON{
			ID:        m.ID,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Gender:    m.Gender,
			Phone:     m.Phone,
			Status:    m.Status,
		})
	}

	writeData(w, http.StatusOK, unitDetailResponse{
		unitResponse: toUnitResponse(detail.Unit),
		MemberCount:  detail.MemberCount,
		Members:      members,
	})
}

func (h *Handlers) createUnit(w http.ResponseWriter, r *http.Request, kind unitdomain.Kind) {
	var req unitNameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Please provide %s name", kind))
		return
	}

	created, err := h.Units.Create(r.Context(), kind, req.Name)
	if err != nil {
		if errors.Is(err, unitdomain.ErrNameTaken) {
			h.log.BusinessError(string(kind)+"s.create: name taken", err, "name", req.Name)
			writeError(w, http.StatusBadRequest, fmt.Sprintf("A %s with this name already exists", kind))
			return
		}
		h.respondUnhandled(w, string(kind)+"s.create: create failed", err, "name", req.Name)
		return
	}

	h.log.Info(string(kind)+"s.create: created", "id", created.ID, "name", created.Name)
	writeData(w, http.StatusCreated, toUnitResponse(*created))
}

func (h *Handlers) updateUnit(w http.ResponseWriter, r *http.Request, kind unitdomain.Kind) {
	id := chi.URLParam(r, "id")

	var req unitNameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Please provide %s name", kind))
		return
	}

	updated, err := h.Units.Update(r.Context(), kind, id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, unitdomain.ErrNotFound):
			writeError(w, http.StatusNotFound, kind.Title()+" not found")
		case errors.Is(err, unitdomain.ErrNameTaken):
			h.log.BusinessError(string(kind)+"s.update: name taken", err, "id", id, "name", req.Name)
			writeError(w, http.StatusBadRequest, fmt.Sprintf("A %s with this name already exists", kind))
		default:
			h.respondUnhandled(w, string(kind)+"s.update: update failed", err, "id", id)
		}
		return
	}

	writeData(w, http.StatusOK, toUnitResponse(*updated))
}

func (h *Handlers) deleteUnit(w http.ResponseWriter, r *http.Request, kind unitdomain.Kind) {
	id := chi.URLParam(r, "id")

	err := h.Units.Delete(r.Context(), kind, id)
	if err != nil {
		var blocked *unitdomain.DeleteBlockedError
		switch {
		case errors.Is(err, unitdomain.ErrNotFound):
			writeError(w, http.StatusNotFound, kind.Title()+" not found")
		case errors.As(err, &blocked):
			h.log.BusinessError(string(kind)+"s.delete: blocked by members", err, "id", id, "member_count", blocked.Count)
			writeError(w, http.StatusBadRequest, fmt.Sprintf(
				"Cannot delete %s. It has %d member(s). Please reassign or remove members first.",
				kind, blocked.Count,
			))
		default:
			h.respondUnhandled(w, string(kind)+"s.delete: delete failed", err, "id", id)
		}
		return
	}

	h.log.Warn(string(kind)+"s.delete: deleted", "id", id)
	writeMessage(w, http.StatusOK, struct{}{}, kind.Title()+" deleted successfully")
}

func (h *Handlers) unitMembers(w http.ResponseWriter, r *http.Request, kind unitdomain.Kind) {
	id := chi.URLParam(r, "id")

	roster, err := h.Units.Members(r.Context(), kind, id)
	if err != nil {
		if errors.Is(err, unitdomain.ErrNotFound) {
			writeError(w, http.StatusNotFound, kind.Title()+" not found")
			return
		}
		h.respondUnhandled(w, string(kind)+"s.members: list failed", err, "id", id)
		return
	}

	response := make([]rosterMemberResponse, 0, len(roster))
	for _, m := range roster {
		response = append(response, toRosterResponse(kind, m))
	}

	writeList(w, len(response), response)
}
