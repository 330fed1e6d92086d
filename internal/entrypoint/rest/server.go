package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"socialapi/internal/domain"
	"socialapi/internal/infrastructure/repository/memstore"
	"socialapi/internal/usecase"
)

type Server struct {
	UC     *usecase.Usecase
	router *mux.Router
}

func New() *Server {
	store := memstore.New()
	uc := &usecase.Usecase{Repo: store}
	s := &Server{UC: uc, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/profiles", s.handleListProfiles).Methods(http.MethodGet)
	api.HandleFunc("/profiles", s.handleCreateProfile).Methods(http.MethodPost)
	api.HandleFunc("/profiles/{profileId:[0-9]+}", s.handleGetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profiles/{profileId:[0-9]+}", s.handleDeleteProfile).Methods(http.MethodDelete)
	api.HandleFunc("/profiles/{profileId:[0-9]+}/postings", s.handleListPostings).Methods(http.MethodGet)
	api.HandleFunc("/profiles/{profileId:[0-9]+}/postings", s.handleAddPosting).Methods(http.MethodPost)
	api.HandleFunc("/profiles/{profileId:[0-9]+}/postings", s.handleDeleteAllPostings).Methods(http.MethodDelete)
	api.HandleFunc("/profiles/{profileId:[0-9]+}/postings/{postingId:[0-9]+}", s.handleDeletePosting).Methods(http.MethodDelete)
	api.HandleFunc("/profiles/{profileId:[0-9]+}/postings/{postingId:[0-9]+}", s.handleUpdatePosting).Methods(http.MethodPut)
	api.HandleFunc("/profileByUsername", s.handleGetProfileByUsername).Methods(http.MethodGet)
	api.HandleFunc("/profileByUsername", s.handleAddPostingByUsername).Methods(http.MethodPost)
	api.HandleFunc("/updateUsername", s.handleRenameProfile).Methods(http.MethodPut)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	w.Header().Set("X-Request-Id", reqID)

	// Browser clients call this API cross-origin.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	start := time.Now()
	defer func() {
		log.Printf("%s %s %s %dms UA=%q", reqID, r.Method, r.URL.Path, time.Since(start).Milliseconds(), r.UserAgent())
	}()
	s.router.ServeHTTP(w, r)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageOnly{Message: "ok"})
}

// GET /api/profiles?username=
// Without the query parameter, every profile. With it, a single-element
// list, or null when the username is unknown.
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		profiles := s.UC.ListProfiles()
		out := make([]profileResponse, 0, len(profiles))
		for _, pr := range profiles {
			out = append(out, toProfileResponse(pr))
		}
		writeJSON(w, http.StatusOK, out)
		return
	}
	pr, err := s.UC.GetProfileByUsername(username)
	if err != nil {
		if usecase.IsNotFound(err) {
			writeJSON(w, http.StatusOK, []profileResponse(nil))
			return
		}
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, []profileResponse{toProfileResponse(pr)})
}

// POST /api/profiles
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MiB
	defer r.Body.Close()

	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Profile creation failed", "Required userName")
		return
	}

	pr, err := s.UC.CreateProfile(req.UserName)
	if err != nil {
		var vErr *domain.ErrValidation
		switch {
		case errors.As(err, &vErr):
			writeBadRequest(w, "Profile creation failed", vErr.Cause)
		case usecase.IsConflict(err):
			writeConflict(w, "Username already taken")
		default:
			writeInternalError(w)
		}
		return
	}
	writeJSON(w, http.StatusCreated, toProfileResponse(pr))
}

// GET /api/profiles/{profileId}
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	pr, err := s.UC.GetProfile(pathID(r, "profileId"))
	if err != nil {
		if usecase.IsNotFound(err) {
			writeNotFound(w, "No profile found")
			return
		}
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(pr))
}

// DELETE /api/profiles/{profileId}
func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.UC.DeleteProfile(pathID(r, "profileId")); err != nil {
		switch {
		case usecase.IsNotFound(err):
			writeNotFound(w, "No profile found")
		case usecase.IsConflict(err):
			writeConflict(w, "Profile still has postings")
		default:
			writeInternalError(w)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/profiles/{profileId}/postings
func (s *Server) handleListPostings(w http.ResponseWriter, r *http.Request) {
	postings, err := s.UC.ListPostings(pathID(r, "profileId"))
	if err != nil {
		if usecase.IsNotFound(err) {
			writeNotFound(w, "No profile found")
			return
		}
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, toPostingResponses(postings))
}

// POST /api/profiles/{profileId}/postings
func (s *Server) handleAddPosting(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	var req postingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Posting creation failed", "Required postingText")
		return
	}

	p, err := s.UC.AddPosting(pathID(r, "profileId"), req.PostingText)
	if err != nil {
		s.writePostingError(w, err, "Posting creation failed")
		return
	}
	writeJSON(w, http.StatusCreated, toPostingResponse(p))
}

// DELETE /api/profiles/{profileId}/postings
func (s *Server) handleDeleteAllPostings(w http.ResponseWriter, r *http.Request) {
	if err := s.UC.DeleteAllPostings(pathID(r, "profileId")); err != nil {
		if usecase.IsNotFound(err) {
			writeNotFound(w, "No profile found")
			return
		}
		writeInternalError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /api/profiles/{profileId}/postings/{postingId}
func (s *Server) handleDeletePosting(w http.ResponseWriter, r *http.Request) {
	if err := s.UC.DeletePosting(pathID(r, "profileId"), pathID(r, "postingId")); err != nil {
		if usecase.IsNotFound(err) {
			writeNotFound(w, "No posting found")
			return
		}
		writeInternalError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /api/profiles/{profileId}/postings/{postingId}
func (s *Server) handleUpdatePosting(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	var req postingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Posting updation failed", "Required postingText")
		return
	}

	_, err := s.UC.UpdatePosting(pathID(r, "profileId"), pathID(r, "postingId"), req.PostingText)
	if err != nil {
		var vErr *domain.ErrValidation
		switch {
		case errors.As(err, &vErr):
			writeBadRequest(w, "Posting updation failed", vErr.Cause)
		case usecase.IsNotFound(err):
			writeNotFound(w, "No posting found")
		default:
			writeInternalError(w)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/profileByUsername?username=
// An unknown username is a valid lookup result: 200 with a null body.
func (s *Server) handleGetProfileByUsername(w http.ResponseWriter, r *http.Request) {
	pr, err := s.UC.GetProfileByUsername(r.URL.Query().Get("username"))
	if err != nil {
		if usecase.IsNotFound(err) {
			writeJSON(w, http.StatusOK, (*profileResponse)(nil))
			return
		}
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(pr))
}

// POST /api/profileByUsername?username=
func (s *Server) handleAddPostingByUsername(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	var req postingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Posting creation failed", "Required postingText")
		return
	}

	p, err := s.UC.AddPostingByUsername(r.URL.Query().Get("username"), req.PostingText)
	if err != nil {
		s.writePostingError(w, err, "Posting creation failed")
		return
	}
	writeJSON(w, http.StatusCreated, toPostingResponse(p))
}

// PUT /api/updateUsername?username=
func (s *Server) handleRenameProfile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Username updation failed", "Required newUsername")
		return
	}

	pr, err := s.UC.RenameProfile(r.URL.Query().Get("username"), req.NewUsername)
	if err != nil {
		var vErr *domain.ErrValidation
		switch {
		case errors.As(err, &vErr):
			writeBadRequest(w, "Username updation failed", vErr.Cause)
		case usecase.IsNotFound(err):
			writeNotFound(w, "No profile found")
		case usecase.IsConflict(err):
			writeConflict(w, "Username already taken")
		default:
			writeInternalError(w)
		}
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(pr))
}

func (s *Server) writePostingError(w http.ResponseWriter, err error, message string) {
	var vErr *domain.ErrValidation
	switch {
	case errors.As(err, &vErr):
		writeBadRequest(w, message, vErr.Cause)
	case usecase.IsNotFound(err):
		writeNotFound(w, "No profile found")
	default:
		writeInternalError(w)
	}
}

// pathID reads a numeric mux path variable. Route patterns restrict the
// vars to digits, so a parse failure cannot reach a handler.
func pathID(r *http.Request, name string) int {
	id, _ := strconv.Atoi(mux.Vars(r)[name])
	return id
}
