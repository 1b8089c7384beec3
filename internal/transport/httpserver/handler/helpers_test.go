package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"church-registry-go/internal/auth"
	admindomain "church-registry-go/internal/domain/admin"
	memberdomain "church-registry-go/internal/domain/member"
	unitdomain "church-registry-go/internal/domain/unit"
	"church-registry-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router  http.Handler
	admins  *fakeAdminRepo
	members *fakeMemberRepo
	units   *fakeUnitRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	admins := &fakeAdminRepo{byID: map[string]*admindomain.Admin{}}
	members := &fakeMemberRepo{
		byID:   map[string]*memberdomain.Member{},
		groups: map[string]bool{},
		jumu:   map[string]bool{},
	}
	units := &fakeUnitRepo{
		byKind: map[unitdomain.Kind]map[string]*unitdomain.Unit{
			unitdomain.KindGroup:  {},
			unitdomain.KindJumuia: {},
		},
		counts:  map[string]int64{},
		rosters: map[string][]unitdomain.RosterMember{},
	}

	log := logger.New(io.Discard, slog.LevelError, "json")
	handlers := New(
		admindomain.NewService(admins, staticTokens{}),
		memberdomain.NewService(members),
		unitdomain.NewService(units),
		log,
	)

	r := chi.NewRouter()
	r.NotFound(handlers.NotFound)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Post("/auth/login", handlers.Login)
		r.Get("/auth/me", handlers.AuthMe)

		r.Get("/members/stats", handlers.MemberStats)
		r.Get("/members", handlers.ListMembers)
		r.Post("/members", handlers.CreateMember)
		r.Get("/members/{id}", handlers.GetMember)
		r.Put("/members/{id}", handlers.UpdateMember)
		r.Delete("/members/{id}", handlers.DeleteMember)

		r.Get("/groups", handlers.ListGroups)
		r.Post("/groups", handlers.CreateGroup)
		r.Get("/groups/{id}", handlers.GetGroup)
		r.Put("/groups/{id}", handlers.UpdateGroup)
		r.Delete("/groups/{id}", handlers.DeleteGroup)
		r.Get("/groups/{id}/members", handlers.GroupMembers)

		r.Get("/jumuias", handlers.ListJumuias)
		r.Post("/jumuias", handlers.CreateJumuia)
		r.Get("/jumuias/{id}", handlers.GetJumuia)
		r.Put("/jumuias/{id}", handlers.UpdateJumuia)
		r.Delete("/jumuias/{id}", handlers.DeleteJumuia)
		r.Get("/jumuias/{id}/members", handlers.JumuiaMembers)
	})

	return &fixture{router: r, admins: admins, members: members, units: units}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

type staticTokens struct{}

func (staticTokens) Generate(adminID string) (string, error) {
	return "token-for-" + adminID, nil
}

func seedAdmin(t *testing.T, f *fixture, id, email, password string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	f.admins.byID[id] = &admindomain.Admin{
		ID:           id,
		Name:         "Test Admin",
		Email:        email,
		PasswordHash: hash,
	}
}

type fakeAdminRepo struct {
	byID map[string]*admindomain.Admin
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id string) (*admindomain.Admin, error) {
	found, ok := r.byID[id]
	if !ok {
		return nil, admindomain.ErrAdminNotFound
	}
	copied := *found
	return &copied, nil
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*admindomain.Admin, error) {
	for _, found := range r.byID {
		if found.Email == email {
			copied := *found
			return &copied, nil
		}
	}
	return nil, admindomain.ErrAdminNotFound
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *admindomain.Admin) error {
	copied := *admin
	r.byID[admin.ID] = &copied
	return nil
}

type fakeMemberRepo struct {
	byID   map[string]*memberdomain.Member
	groups map[string]bool
	jumu   map[string]bool
}

func (r *fakeMemberRepo) Transaction(_ context.Context, fn func(memberdomain.Repository) error) error {
	return fn(r)
}

func (r *fakeMemberRepo) List(_ context.Context, filter memberdomain.ListFilter) ([]memberdomain.Member, int64, error) {
	matched := make([]memberdomain.Member, 0, len(r.byID))
	for _, m := range r.byID {
		if matchesFilter(*m, filter) {
			matched = append(matched, *m)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func matchesFilter(m memberdomain.Member, filter memberdomain.ListFilter) bool {
	if filter.Gender != "" && m.Gender != filter.Gender {
		return false
	}
	if filter.MaritalStatus != "" && m.MaritalStatus != filter.MaritalStatus {
		return false
	}
	if filter.Status != "" && m.Status != filter.Status {
		return false
	}
	if filter.GroupID != "" && (m.GroupID == nil || *m.GroupID != filter.GroupID) {
		return false
	}
	if filter.JumuiaID != "" && (m.JumuiaID == nil || *m.JumuiaID != filter.JumuiaID) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		phone := ""
		if m.Phone != nil {
			phone = *m.Phone
		}
		haystack := strings.ToLower(m.FirstName + " " + m.LastName + " " + phone)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id string) (*memberdomain.Member, error) {
	found, ok := r.byID[id]
	if !ok {
		return nil, memberdomain.ErrMemberNotFound
	}
	copied := *found
	return &copied, nil
}

func (r *fakeMemberRepo) Create(_ context.Context, member *memberdomain.Member) error {
	copied := *member
	r.byID[member.ID] = &copied
	return nil
}

func (r *fakeMemberRepo) Update(_ context.Context, member *memberdomain.Member) error {
	copied := *member
	r.byID[member.ID] = &copied
	return nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

func (r *fakeMemberRepo) Stats(_ context.Context) (memberdomain.Stats, error) {
	var stats memberdomain.Stats
	for _, m := range r.byID {
		stats.Total++
		switch m.Status {
		case memberdomain.StatusActive:
			stats.Active++
		case memberdomain.StatusInactive:
			stats.Inactive++
		}
		switch m.Gender {
		case memberdomain.GenderMale:
			stats.Male++
		case memberdomain.GenderFemale:
			stats.Female++
		}
		switch m.MaritalStatus {
		case memberdomain.MaritalMarried:
			stats.Married++
		case memberdomain.MaritalSingle:
			stats.Single++
		}
	}
	return stats, nil
}

func (r *fakeMemberRepo) GroupExists(_ context.Context, id string) (bool, error) {
	return r.groups[id], nil
}

func (r *fakeMemberRepo) JumuiaExists(_ context.Context, id string) (bool, error) {
	return r.jumu[id], nil
}

type fakeUnitRepo struct {
	byKind  map[unitdomain.Kind]map[string]*unitdomain.Unit
	counts  map[string]int64
	rosters map[string][]unitdomain.RosterMember
}

func (r *fakeUnitRepo) Transaction(_ context.Context, fn func(unitdomain.Repository) error) error {
	return fn(r)
}

func (r *fakeUnitRepo) List(_ context.Context, kind unitdomain.Kind) ([]unitdomain.UnitWithCount, error) {
	units := make([]unitdomain.UnitWithCount, 0, len(r.byKind[kind]))
	for _, u := range r.byKind[kind] {
		units = append(units, unitdomain.UnitWithCount{Unit: *u, MemberCount: r.counts[u.ID]})
	}
	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })
	return units, nil
}

func (r *fakeUnitRepo) GetByID(_ context.Context, kind unitdomain.Kind, id string) (*unitdomain.Unit, error) {
	found, ok := r.byKind[kind][id]
	if !ok {
		return nil, unitdomain.ErrNotFound
	}
	copied := *found
	return &copied, nil
}

func (r *fakeUnitRepo) GetByName(_ context.Context, kind unitdomain.Kind, name string) (*unitdomain.Unit, error) {
	for _, u := range r.byKind[kind] {
		if u.Name == name {
			copied := *u
			return &copied, nil
		}
	}
	return nil, unitdomain.ErrNotFound
}

func (r *fakeUnitRepo) Create(_ context.Context, kind unitdomain.Kind, u *unitdomain.Unit) error {
	copied := *u
	r.byKind[kind][u.ID] = &copied
	return nil
}

func (r *fakeUnitRepo) UpdateName(_ context.Context, kind unitdomain.Kind, id, name string) error {
	found, ok := r.byKind[kind][id]
	if !ok {
		return unitdomain.ErrNotFound
	}
	found.Name = name
	return nil
}

func (r *fakeUnitRepo) Delete(_ context.Context, kind unitdomain.Kind, id string) error {
	delete(r.byKind[kind], id)
	return nil
}

func (r *fakeUnitRepo) CountMembers(_ context.Context, _ unitdomain.Kind, id string) (int64, error) {
	return r.counts[id], nil
}

func (r *fakeUnitRepo) ListMemberSummaries(_ context.Context, _ unitdomain.Kind, id string) ([]unitdomain.MemberSummary, error) {
	summaries := make([]unitdomain.MemberSummary, 0, len(r.rosters[id]))
	for _, m := range r.rosters[id] {
		summaries = append(summaries, unitdomain.MemberSummary{
			ID:        m.ID,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Gender:    m.Gender,
			Phone:     m.Phone,
			Status:    m.Status,
		})
	}
	return summaries, nil
}

func (r *fakeUnitRepo) ListRoster(_ context.Context, _ unitdomain.Kind, id string) ([]unitdomain.RosterMember, error) {
	return r.rosters[id], nil
}
