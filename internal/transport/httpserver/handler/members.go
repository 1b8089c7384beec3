package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	memberdomain "church-registry-go/internal/domain/member"
	unitdomain "church-registry-go/internal/domain/unit"
	"github.com/go-chi/chi/v5"
)

type createMemberRequest struct {
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Gender           string  `json:"gender"`
	DateOfBirth      *string `json:"dateOfBirth"`
	Phone            *string `json:"phone"`
	MaritalStatus    string  `json:"maritalStatus"`
	NumberOfChildren *int    `json:"numberOfChildren"`
	Status           string  `json:"status"`
	GroupID          *string `json:"groupId"`
	JumuiaID         *string `json:"jumuiaId"`
}

type updateMemberRequest struct {
	FirstName        *string                     `json:"firstName"`
	LastName         *string                     `json:"lastName"`
	Gender           *string                     `json:"gender"`
	DateOfBirth      memberdomain.OptionalString `json:"dateOfBirth"`
	Phone            memberdomain.OptionalString `json:"phone"`
	MaritalStatus    *string                     `json:"maritalStatus"`
	NumberOfChildren *int                        `json:"numberOfChildren"`
	Status           *string                     `json:"status"`
	GroupID          memberdomain.OptionalString `json:"groupId"`
	JumuiaID         memberdomain.OptionalString `json:"jumuiaId"`
}

type memberResponse struct {
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
	Group            *unitdomain.Ref `json:"group"`
	Jumuia           *unitdomain.Ref `json:"jumuia"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

type memberStatsResponse struct {
	TotalMembers    int64 `json:"totalMembers"`
	ActiveMembers   int64 `json:"activeMembers"`
	InactiveMembers int64 `json:"inactiveMembers"`
	MaleMembers     int64 `json:"maleMembers"`
	FemaleMembers   int64 `json:"femaleMembers"`
	MarriedMembers  int64 `json:"marriedMembers"`
	SingleMembers   int64 `json:"singleMembers"`
}

func toMemberResponse(m memberdomain.Member) memberResponse {
	resp := memberResponse{
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
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Group != nil {
		resp.Group = &unitdomain.Ref{ID: m.Group.ID, Name: m.Group.Name}
	}
	if m.Jumuia != nil {
		resp.Jumuia = &unitdomain.Ref{ID: m.Jumuia.ID, Name: m.Jumuia.Name}
	}
	return resp
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := parsePositiveIntParam(query.Get("page"), defaultPage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid page")
		return
	}
	limit, err := parsePositiveIntParam(query.Get("limit"), defaultLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid limit")
		return
	}

	filter := memberdomain.ListFilter{
		Search:        strings.TrimSpace(query.Get("search")),
		Gender:        strings.TrimSpace(query.Get("gender")),
		MaritalStatus: strings.TrimSpace(query.Get("maritalStatus")),
		JumuiaID:      strings.TrimSpace(query.Get("jumuiaId")),
		GroupID:       strings.TrimSpace(query.Get("groupId")),
		Status:        strings.TrimSpace(query.Get("status")),
		Limit:         limit,
		Offset:        (page - 1) * limit,
	}

	items, total, err := h.Members.List(r.Context(), filter)
	if err != nil {
		h.respondUnhandled(w, "members.list: list failed", err)
		return
	}

	response := make([]memberResponse, 0, len(items))
	for _, m := range items {
		response = append(response, toMemberResponse(m))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	writePage(w, response, len(response), total, totalPages, page)
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.Members.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "Member not found")
			return
		}
		h.respondUnhandled(w, "members.get: get failed", err, "member_id", id)
		return
	}

	writeData(w, http.StatusOK, toMemberResponse(*found))
}

func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" || req.Gender == "" {
		h.log.Warn("members.create: missing required fields")
		writeError(w, http.StatusBadRequest, "Please provide firstName, lastName, and gender")
		return
	}
	if !memberdomain.ValidGender(req.Gender) {
		writeError(w, http.StatusBadRequest, "Invalid gender")
		return
	}
	if req.MaritalStatus != "" && !memberdomain.ValidMaritalStatus(req.MaritalStatus) {
		writeError(w, http.StatusBadRequest, "Invalid maritalStatus")
		return
	}
	if req.Status != "" && !memberdomain.ValidStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}
	if req.NumberOfChildren != nil && *req.NumberOfChildren < 0 {
		writeError(w, http.StatusBadRequest, "numberOfChildren must not be negative")
		return
	}

	var dateOfBirth *time.Time
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		parsed, err := parseDateParam(*req.DateOfBirth)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid dateOfBirth")
			return
		}
		dateOfBirth = parsed
	}

	input := memberdomain.CreateInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Gender:        req.Gender,
		DateOfBirth:   dateOfBirth,
		Phone:         req.Phone,
		MaritalStatus: req.MaritalStatus,
		Status:        req.Status,
		GroupID:       emptyToNil(req.GroupID),
		JumuiaID:      emptyToNil(req.JumuiaID),
	}
	if req.NumberOfChildren != nil {
		input.NumberOfChildren = *req.NumberOfChildren
	}

	created, err := h.Members.Create(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrGroupNotFound):
			h.log.BusinessError("members.create: group not found", err)
			writeError(w, http.StatusBadRequest, "Group not found")
		case errors.Is(err, memberdomain.ErrJumuiaNotFound):
			h.log.BusinessError("members.create: jumuia not found", err)
			writeError(w, http.StatusBadRequest, "Jumuia not found")
		default:
			h.respondUnhandled(w, "members.create: create failed", err)
		}
		return
	}

	h.log.Info("members.create: member created", "member_id", created.ID)
	writeData(w, http.StatusCreated, toMemberResponse(*created))
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) == "" {
		writeError(w, http.StatusBadRequest, "firstName must not be empty")
		return
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) == "" {
		writeError(w, http.StatusBadRequest, "lastName must not be empty")
		return
	}
	if req.Gender != nil && !memberdomain.ValidGender(*req.Gender) {
		writeError(w, http.StatusBadRequest, "Invalid gender")
		return
	}
	if req.MaritalStatus != nil && !memberdomain.ValidMaritalStatus(*req.MaritalStatus) {
		writeError(w, http.StatusBadRequest, "Invalid maritalStatus")
		return
	}
	if req.Status != nil && !memberdomain.ValidStatus(*req.Status) {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}
	if req.NumberOfChildren != nil && *req.NumberOfChildren < 0 {
		writeError(w, http.StatusBadRequest, "numberOfChildren must not be negative")
		return
	}

	dateOfBirth := memberdomain.OptionalDate{Set: req.DateOfBirth.Set}
	if req.DateOfBirth.Set && req.DateOfBirth.Value != nil {
		parsed, err := parseDateParam(*req.DateOfBirth.Value)
		if err != nil || parsed == nil {
			writeError(w, http.StatusBadRequest, "Invalid dateOfBirth")
			return
		}
		dateOfBirth.Value = parsed
	}

	input := memberdomain.UpdateInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Gender:           req.Gender,
		DateOfBirth:      dateOfBirth,
		Phone:            req.Phone,
		MaritalStatus:    req.MaritalStatus,
		NumberOfChildren: req.NumberOfChildren,
		Status:           req.Status,
		GroupID:          req.GroupID,
		JumuiaID:         req.JumuiaID,
	}

	updated, err := h.Members.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, memberdomain.ErrMemberNotFound):
			h.log.BusinessError("members.update: member not found", err, "member_id", id)
			writeError(w, http.StatusNotFound, "Member not found")
		case errors.Is(err, memberdomain.ErrGroupNotFound):
			h.log.BusinessError("members.update: group not found", err, "member_id", id)
			writeError(w, http.StatusBadRequest, "Group not found")
		case errors.Is(err, memberdomain.ErrJumuiaNotFound):
			h.log.BusinessError("members.update: jumuia not found", err, "member_id", id)
			writeError(w, http.StatusBadRequest, "Jumuia not found")
		default:
			h.respondUnhandled(w, "members.update: update failed", err, "member_id", id)
		}
		return
	}

	writeData(w, http.StatusOK, toMemberResponse(*updated))
}

func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Members.Delete(r.Context(), id); err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			h.log.BusinessError("members.delete: member not found", err, "member_id", id)
			writeError(w, http.StatusNotFound, "Member not found")
			return
		}
		h.respondUnhandled(w, "members.delete: delete failed", err, "member_id", id)
		return
	}

	h.log.Warn("members.delete: member deleted", "member_id", id)
	writeMessage(w, http.StatusOK, struct{}{}, "Member deleted successfully")
}

func (h *Handlers) MemberStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Members.Stats(r.Context())
	if err != nil {
		h.respondUnhandled(w, "members.stats: stats failed", err)
		return
	}

	writeData(w, http.StatusOK, memberStatsResponse{
		TotalMembers:    stats.Total,
		ActiveMembers:   stats.Active,
		InactiveMembers: stats.Inactive,
		MaleMembers:     stats.Male,
		FemaleMembers:   stats.Female,
		MarriedMembers:  stats.Married,
		SingleMembers:   stats.Single,
	})
}

func emptyToNil(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	return value
}
