package domain

import "errors"

// DirectoryRepository is the storage contract for profiles and postings.
// Absence and conflict are ordinary results, reported through the
// sentinel errors below and branched on with errors.Is — implementations
// never panic for them.
type DirectoryRepository interface {
	// CreateProfile assigns the next profile id and registers the
	// username. ErrAlreadyExists when the username is taken.
	CreateProfile(userName string) (*Profile, error)

	// ProfileByID returns a snapshot of the profile, postings included.
	ProfileByID(profileID int) (*Profile, error)

	// ProfileByUsername is an exact-match lookup, case-sensitive.
	ProfileByUsername(userName string) (*Profile, error)

	// Profiles returns a snapshot of all profiles in insertion order.
	Profiles() []*Profile

	// DeleteProfile removes an empty profile. ErrHasPostings when the
	// profile still owns postings, ErrNotFound when absent.
	DeleteProfile(profileID int) error

	// AddPosting stamps the creation time, copies the owner's current
	// username onto the posting, and indexes it.
	AddPosting(profileID int, text string) (*Posting, error)

	// Postings returns the profile's postings in insertion order.
	Postings(profileID int) ([]*Posting, error)

	// DeletePosting removes a posting by its global id. The owning
	// profile is resolved from the posting itself; profileID from the
	// request path is not cross-checked.
	DeletePosting(profileID, postingID int) error

	// DeleteAllPostings drains a profile's posting list.
	DeleteAllPostings(profileID int) error

	// UpdatePosting overwrites the posting text in place.
	UpdatePosting(profileID, postingID int, text string) (*Posting, error)

	// RenameProfile swaps the username index entry and propagates the
	// new name onto every posting the profile owns. ErrAlreadyExists
	// when the name belongs to a different profile.
	RenameProfile(profileID int, newUserName string) (*Profile, error)
}

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrHasPostings   = errors.New("profile has postings")
)
