package handler

import (
	"net/http"
	"testing"
	"time"

	unitdomain "church-registry-go/internal/domain/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUnit(f *fixture, kind unitdomain.Kind, id, name string) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	f.units.byKind[kind][id] = &unitdomain.Unit{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateGroup(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(t, http.MethodPost, "/api/groups", map[string]string{"name": "Choir"})

	require.Equal(t, http.StatusCreated, recorder.Code)
	data := decodeBody(t, recorder)["data"].(map[string]interface{})
	assert.Equal(t, "Choir", data["name"])
	assert.NotEmpty(t, data["id"])
}

func TestCreateGroupRequiresName(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(t, http.MethodPost, "/api/groups", map[string]string{"name": "   "})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Please provide group name", decodeBody(t, recorder)["error"])
}

func TestCreateJumuiaRequiresName(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(t, http.MethodPost, "/api/jumuias", map[string]string{})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Please provide jumuia name", decodeBody(t, recorder)["error"])
}

func TestCreateGroupDuplicateName(t *testing.T) {
	f := newFixture(t)
	seedUnit(f, unitdomain.KindGroup, "g1", "Choir")

	recorder := f.do(t, http.MethodPost, "/api/groups", map[string]string{"name": "Choir"})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "A group with this name already exists", decodeBody(t, recorder)["error"])
}

func TestListGroups(t *testing.T) {
	f := newFixture(t)
	seedUnit(f, unitdomain.KindGroup, "g1", "Choir")
	seedUnit(f, unitdomain.KindGroup, "g2", "Ushers")
	f.units.counts["g1"] = 4

	recorder := f.do(t, http.MethodGet, "/api/groups", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, float64(2), body["count"])

	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Choir", first["name"])
	assert.Equal(t, float64(4), first["memberCount"])
}

func TestGetGroupWithRoster(t *testing.T) {
	f := newFixture(t)
	seedUnit(f, unitdomain.KindGroup, "g1", "Choir")
	f.units.counts["g1"] = 1
	phone := "+255700000001"
	f.units.rosters["g1"] = []unitdomain.RosterMember{{
		ID:        "m1",
		FirstName: "Amani",
		LastName:  "Mwangi",
		Gender:    "MALE",
		Phone:     &phone,
		Status:    "ACTIVE",
	}}

	recorder := f.do(t, http.MethodGet, "/api/groups/g1", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	data := decodeBody(t, recorder)["data"].(map[string]interface{})
	assert.Equal(t, "Choir", data["name"])
	assert.Equal(t, float64(1), data["memberCount"])

	members, ok := data["members"].([]interface{})
	require.True(t, ok)
	require.Len(t, members, 1)
	assert.Equal(t, "Amani", members[0].(map[string]interface{})["firstName"])
}

func TestGetGroupNotFound(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(t, http.MethodGet, "/api/groups/ghost", nil)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Group not found", decodeBody(t, recorder)["error"])
}

func TestGetJumuiaNotFound(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(t, http.MethodGet, "/api/jumuias/ghost", nil)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Jumuia not found", decodeBody(t, recorder)["error"])
}

func TestUpdateGroup(t *testing.T) {
	f := newFixture(t)
	seedUnit(f, unitdomain.KindGroup, "g1", "Choir")

	recorder := f.do(t, http.MethodPut, "/api/groups/g1", map[string]string{"name": "Main Choir"})

	require.Equal(t, http.StatusOK, recorder.Code)
	data := decodeBody(t, recorder)["data"].(map[string]interface{})
	assert.Equal(t, "Main Choir", data["name"])
}

func TestUpdateGroupKeepOwnName(t *testing.T) {
	f := newFixture(t)
	seedUnit(f, unitdomain.KindGroup, "g1", "Choir")

	recorder := f.do(t, http.MethodPut, "/api/groups/g1", map[string]string{"name": "Choir"})

	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestUpdateGroupNameTaken(t *testing.T) {
	f := newFixture(t)
	seedUnit(f, unitdomain.KindGroup, "g1", "Choir")
	seedUnit(f, unitdomain.KindGroup, "g2", "Ushers")

	recorder := f.do(t, http.MethodPut, "/api/groups/g2", map[string]string{"name": "Choir"})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "A group with this name already exists", decodeBody(t, recorder)["error"])
}

func TestDeleteGroup(t *testing.T) {
	f := newFixture(t)
	seedUnit(f, unitdomain.KindGroup, "g1", "Choir")

	recorder := f.do(t, http.MethodDelete, "/api/groups/g1", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Group deleted successfully", decodeBody(t, recorder)["message"])
	assert.Empty(t, f.units.byKind[unitdomain.KindGroup])
}

func TestDeleteGroupBlockedByMembers(t *testing.T) {
	f := newFixture(t)
	seedUnit(f, unitdomain.KindGroup, "g1", "Choir")
	f.units.counts["g1"] = 1

	recorder := f.do(t, http.MethodDelete, "/api/groups/g1", nil)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Cannot delete group. It has 1 member(s). Please reassign or remove members first.", body["error"])
	assert.Contains(t, f.units.byKind[unitdomain.KindGroup], "g1")
}

func TestDeleteJumuiaBlockedByMembers(t *testing.T) {
	f := newFixture(t)
	seedUnit(f, unitdomain.KindJumuia, "j1", "St. Monica")
	f.units.counts["j1"] = 3

	recorder := f.do(t, http.MethodDelete, "/api/jumuias/j1", nil)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Cannot delete jumuia. It has 3 member(s). Please reassign or remove members first.", decodeBody(t, recorder)["error"])
}

func TestGroupMembersRoster(t *testing.T) {
	f := newFixture(t)
	seedUnit(f, unitdomain.KindGroup, "g1", "Choir")
	f.units.rosters["g1"] = []unitdomain.RosterMember{{
		ID:        "m1",
		FirstName: "Amani",
		LastName:  "Mwangi",
		Gender:    "MALE",
		Status:    "ACTIVE",
		Other:     &unitdomain.Ref{ID: "j1", Name: "St. Monica"},
	}}

	recorder := f.do(t, http.MethodGet, "/api/groups/g1/members", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, float64(1), body["count"])

	data := body["data"].([]interface{})
	member := data[0].(map[string]interface{})
	jumuia, ok := member["jumuia"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "St. Monica", jumuia["name"])
	assert.NotContains(t, member, "group")
}

func TestGroupMembersUnknownGroup(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(t, http.MethodGet, "/api/groups/ghost/members", nil)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Group not found", decodeBody(t, recorder)["error"])
}
