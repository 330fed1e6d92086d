package memstore

import (
	"sync"
	"time"

	"socialapi/internal/domain"
)

// Id counters start in distinct ranges so a profile id can never be
// mistaken for a posting id in logs or requests. Neither value is ever
// reused within a process lifetime.
const (
	firstProfileID = 100
	firstPostingID = 1000
)

// Store keeps the whole directory in process memory. It is the single
// consistency boundary: the profile arena, the username index, and the
// global posting index are only ever updated together under mu.
type Store struct {
	mu         sync.RWMutex
	profiles   map[int]*domain.Profile // arena, owns the entities
	byUsername map[string]int          // username -> profile id
	postings   map[int]*domain.Posting // global posting index

	nextProfileID int
	nextPostingID int

	now func() time.Time
}

// New returns an initialized in-memory directory store.
func New() *Store {
	return &Store{
		profiles:      make(map[int]*domain.Profile),
		byUsername:    make(map[string]int),
		postings:      make(map[int]*domain.Posting),
		nextProfileID: firstProfileID,
		nextPostingID: firstPostingID,
		now:           time.Now,
	}
}

func clonePosting(p *domain.Posting) *domain.Posting {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func cloneProfile(pr *domain.Profile) *domain.Profile {
	if pr == nil {
		return nil
	}
	c := *pr
	c.Postings = make([]*domain.Posting, len(pr.Postings))
	for i, p := range pr.Postings {
		c.Postings[i] = clonePosting(p)
	}
	return &c
}

func (s *Store) CreateProfile(userName string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byUsername[userName]; exists {
		return nil, domain.ErrAlreadyExists
	}
	pr := &domain.Profile{
		ProfileID: s.nextProfileID,
		UserName:  userName,
		Postings:  []*domain.Posting{},
	}
	s.nextProfileID++
	s.profiles[pr.ProfileID] = pr
	s.byUsername[pr.UserName] = pr.ProfileID
	return cloneProfile(pr), nil
}

func (s *Store) ProfileByID(profileID int) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pr, ok := s.profiles[profileID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneProfile(pr), nil
}

func (s *Store) ProfileByUsername(userName string) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[userName]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneProfile(s.profiles[id]), nil
}

func (s *Store) Profiles() []*domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Profile, 0, len(s.profiles))
	for id := firstProfileID; id < s.nextProfileID; id++ {
		if pr, ok := s.profiles[id]; ok {
			out = append(out, cloneProfile(pr))
		}
	}
	return out
}

func (s *Store) DeleteProfile(profileID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pr, ok := s.profiles[profileID]
	if !ok {
		return domain.ErrNotFound
	}
	if len(pr.Postings) > 0 {
		return domain.ErrHasPostings
	}
	delete(s.profiles, profileID)
	delete(s.byUsername, pr.UserName)
	return nil
}

func (s *Store) AddPosting(profileID int, text string) (*domain.Posting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pr, ok := s.profiles[profileID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := &domain.Posting{
		PostingID:   s.nextPostingID,
		ProfileID:   pr.ProfileID,
		PostingText: text,
		UserName:    pr.UserName,
		CreatedAt:   s.now(),
	}
	s.nextPostingID++
	s.postings[p.PostingID] = p
	pr.Postings = append(pr.Postings, p)
	return clonePosting(p), nil
}

func (s *Store) Postings(profileID int) ([]*domain.Posting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pr, ok := s.profiles[profileID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]*domain.Posting, len(pr.Postings))
	for i, p := range pr.Postings {
		out[i] = clonePosting(p)
	}
	return out, nil
}

// DeletePosting looks the posting up by its global id only; profileID is
// accepted for interface symmetry but the owner recorded on the posting
// decides which list shrinks.
func (s *Store) DeletePosting(profileID, postingID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.postings[postingID]
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.postings, postingID)
	if owner, ok := s.profiles[p.ProfileID]; ok {
		owner.Postings = removePosting(owner.Postings, postingID)
	}
	return nil
}

func (s *Store) DeleteAllPostings(profileID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pr, ok := s.profiles[profileID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, p := range pr.Postings {
		delete(s.postings, p.PostingID)
	}
	pr.Postings = []*domain.Posting{}
	return nil
}

func (s *Store) UpdatePosting(profileID, postingID int, text string) (*domain.Posting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.postings[postingID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.PostingText = text
	return clonePosting(p), nil
}

func (s *Store) RenameProfile(profileID int, newUserName string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pr, ok := s.profiles[profileID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if id, taken := s.byUsername[newUserName]; taken && id != pr.ProfileID {
		return nil, domain.ErrAlreadyExists
	}
	delete(s.byUsername, pr.UserName)
	pr.UserName = newUserName
	s.byUsername[pr.UserName] = pr.ProfileID
	// Fan the new name out to the denormalized copies.
	for _, p := range pr.Postings {
		p.UserName = newUserName
	}
	return cloneProfile(pr), nil
}

func removePosting(list []*domain.Posting, postingID int) []*domain.Posting {
	for i, p := range list {
		if p.PostingID == postingID {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
