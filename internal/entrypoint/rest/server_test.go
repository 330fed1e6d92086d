package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func createProfile(t *testing.T, s *Server, userName string) profileResponse {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/profiles", fmt.Sprintf(`{"userName":%q}`, userName))
	require.Equal(t, http.StatusCreated, rec.Code)
	var pr profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pr))
	return pr
}

func addPosting(t *testing.T, s *Server, profileID int, text string) postingResponse {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/profiles/%d/postings", profileID), fmt.Sprintf(`{"postingText":%q}`, text))
	require.Equal(t, http.StatusCreated, rec.Code)
	var p postingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestHealthz(t *testing.T) {
	rec := doJSON(t, New(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"ok"}`, rec.Body.String())
}

func TestRequestIDAndCORSHeaders(t *testing.T) {
	s := New()

	rec := doJSON(t, s, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	// Preflight is answered before routing.
	rec = doJSON(t, s, http.MethodOptions, "/api/profiles", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestCreateProfile(t *testing.T) {
	s := New()

	pr := createProfile(t, s, "alice")
	assert.Equal(t, 100, pr.ProfileID)
	assert.Equal(t, "alice", pr.UserName)
	assert.Empty(t, pr.Postings)

	// Duplicate username conflicts.
	rec := doJSON(t, s, http.MethodPost, "/api/profiles", `{"userName":"alice"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Missing/empty username is a client error.
	rec = doJSON(t, s, http.MethodPost, "/api/profiles", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doJSON(t, s, http.MethodPost, "/api/profiles", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProfiles(t *testing.T) {
	s := New()
	createProfile(t, s, "alice")
	createProfile(t, s, "bob")

	rec := doJSON(t, s, http.MethodGet, "/api/profiles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var profiles []profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
	require.Len(t, profiles, 2)
	assert.Equal(t, "alice", profiles[0].UserName)
	assert.Equal(t, "bob", profiles[1].UserName)

	// Filtered by username: single-element list.
	rec = doJSON(t, s, http.MethodGet, "/api/profiles?username=bob", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
	require.Len(t, profiles, 1)
	assert.Equal(t, "bob", profiles[0].UserName)

	// Unknown username: 200 with a null body.
	rec = doJSON(t, s, http.MethodGet, "/api/profiles?username=nobody", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestGetProfile(t *testing.T) {
	s := New()
	pr := createProfile(t, s, "alice")

	rec := doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/profiles/%d", pr.ProfileID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, pr.ProfileID, got.ProfileID)

	rec = doJSON(t, s, http.MethodGet, "/api/profiles/9999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProfile(t *testing.T) {
	s := New()
	pr := createProfile(t, s, "alice")
	addPosting(t, s, pr.ProfileID, "hello")

	// Blocked while postings exist.
	rec := doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/profiles/%d", pr.ProfileID), "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/profiles/%d/postings", pr.ProfileID), "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/profiles/%d", pr.ProfileID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/profiles/%d", pr.ProfileID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostings(t *testing.T) {
	s := New()
	pr := createProfile(t, s, "alice")

	p := addPosting(t, s, pr.ProfileID, "hello")
	assert.Equal(t, 1000, p.PostingID)
	assert.Equal(t, "alice", p.UserName)
	assert.NotEmpty(t, p.Date)
	assert.NotEmpty(t, p.Time)

	rec := doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/profiles/%d/postings", pr.ProfileID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var postings []postingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &postings))
	require.Len(t, postings, 1)
	assert.Equal(t, "hello", postings[0].PostingText)

	// Unknown profile.
	rec = doJSON(t, s, http.MethodGet, "/api/profiles/9999/postings", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSON(t, s, http.MethodPost, "/api/profiles/9999/postings", `{"postingText":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Empty text.
	rec = doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/profiles/%d/postings", pr.ProfileID), `{"postingText":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePosting(t *testing.T) {
	s := New()
	pr := createProfile(t, s, "alice")
	p := addPosting(t, s, pr.ProfileID, "hello")

	rec := doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/profiles/%d/postings/%d", pr.ProfileID, p.PostingID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/profiles/%d/postings/%d", pr.ProfileID, p.PostingID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePosting(t *testing.T) {
	s := New()
	pr := createProfile(t, s, "alice")
	p := addPosting(t, s, pr.ProfileID, "before")

	rec := doJSON(t, s, http.MethodPut, fmt.Sprintf("/api/profiles/%d/postings/%d", pr.ProfileID, p.PostingID), `{"postingText":"after"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/profiles/%d/postings", pr.ProfileID), "")
	var postings []postingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &postings))
	assert.Equal(t, "after", postings[0].PostingText)

	rec = doJSON(t, s, http.MethodPut, fmt.Sprintf("/api/profiles/%d/postings/9999", pr.ProfileID), `{"postingText":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProfileByUsername(t *testing.T) {
	s := New()
	createProfile(t, s, "alice")

	rec := doJSON(t, s, http.MethodGet, "/api/profileByUsername?username=alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var pr profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pr))
	assert.Equal(t, "alice", pr.UserName)

	// Absence is a valid result, not an error.
	rec = doJSON(t, s, http.MethodGet, "/api/profileByUsername?username=nobody", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestAddPostingByUsername(t *testing.T) {
	s := New()
	pr := createProfile(t, s, "alice")

	rec := doJSON(t, s, http.MethodPost, "/api/profileByUsername?username=alice", `{"postingText":"hello"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var p postingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "alice", p.UserName)

	rec = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/profiles/%d/postings", pr.ProfileID), "")
	var postings []postingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &postings))
	assert.Len(t, postings, 1)

	rec = doJSON(t, s, http.MethodPost, "/api/profileByUsername?username=nobody", `{"postingText":"hello"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRenameProfile(t *testing.T) {
	s := New()
	pr := createProfile(t, s, "alice")
	createProfile(t, s, "bob")
	addPosting(t, s, pr.ProfileID, "hello")

	// Taken by a different profile.
	rec := doJSON(t, s, http.MethodPut, "/api/updateUsername?username=alice", `{"newUsername":"bob"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, s, http.MethodPut, "/api/updateUsername?username=alice", `{"newUsername":"alicia"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var renamed profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &renamed))
	assert.Equal(t, pr.ProfileID, renamed.ProfileID)
	assert.Equal(t, "alicia", renamed.UserName)
	require.Len(t, renamed.Postings, 1)
	assert.Equal(t, "alicia", renamed.Postings[0].UserName)

	// The old username no longer resolves.
	rec = doJSON(t, s, http.MethodPut, "/api/updateUsername?username=alice", `{"newUsername":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Invalid replacement name.
	rec = doJSON(t, s, http.MethodPut, "/api/updateUsername?username=alicia", `{"newUsername":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSeedDemoData(t *testing.T) {
	s := New()
	s.SeedDemoData()

	profiles := s.UC.ListProfiles()
	assert.NotEmpty(t, profiles)
	for _, pr := range profiles {
		assert.NotEmpty(t, pr.UserName)
		assert.NotEmpty(t, pr.Postings)
	}
}
