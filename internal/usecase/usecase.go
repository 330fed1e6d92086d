package usecase

import (
	"errors"

	"socialapi/internal/domain"
)

// Usecase orchestrates directory operations over the repository. Input
// validation happens here; identity, uniqueness, and referential
// integrity stay the repository's business. Absence and conflict flow
// through as domain sentinels for the entrypoint layer to map.
type Usecase struct {
	Repo domain.DirectoryRepository
}

// CreateProfile: validate the username, then register it.
func (u *Usecase) CreateProfile(userName string) (*domain.Profile, error) {
	if err := domain.ValidateUserName(userName); err != nil {
		return nil, err
	}
	return u.Repo.CreateProfile(userName)
}

func (u *Usecase) GetProfile(profileID int) (*domain.Profile, error) {
	return u.Repo.ProfileByID(profileID)
}

func (u *Usecase) GetProfileByUsername(userName string) (*domain.Profile, error) {
	return u.Repo.ProfileByUsername(userName)
}

func (u *Usecase) ListProfiles() []*domain.Profile {
	return u.Repo.Profiles()
}

func (u *Usecase) DeleteProfile(profileID int) error {
	return u.Repo.DeleteProfile(profileID)
}

func (u *Usecase) AddPosting(profileID int, text string) (*domain.Posting, error) {
	if err := domain.ValidatePostingText(text); err != nil {
		return nil, err
	}
	return u.Repo.AddPosting(profileID, text)
}

// AddPostingByUsername resolves the owner by exact username, then posts
// on its behalf. An unknown username reads as ErrNotFound, same as an
// unknown profile id.
func (u *Usecase) AddPostingByUsername(userName, text string) (*domain.Posting, error) {
	if err := domain.ValidatePostingText(text); err != nil {
		return nil, err
	}
	pr, err := u.Repo.ProfileByUsername(userName)
	if err != nil {
		return nil, err
	}
	return u.Repo.AddPosting(pr.ProfileID, text)
}

func (u *Usecase) ListPostings(profileID int) ([]*domain.Posting, error) {
	return u.Repo.Postings(profileID)
}

func (u *Usecase) DeletePosting(profileID, postingID int) error {
	return u.Repo.DeletePosting(profileID, postingID)
}

func (u *Usecase) DeleteAllPostings(profileID int) error {
	return u.Repo.DeleteAllPostings(profileID)
}

func (u *Usecase) UpdatePosting(profileID, postingID int, text string) (*domain.Posting, error) {
	if err := domain.ValidatePostingText(text); err != nil {
		return nil, err
	}
	return u.Repo.UpdatePosting(profileID, postingID, text)
}

// RenameProfile addresses the profile by its current username, validates
// the replacement, and lets the repository swap the index entry and fan
// the new name out to the profile's postings.
func (u *Usecase) RenameProfile(userName, newUserName string) (*domain.Profile, error) {
	if err := domain.ValidateUserName(newUserName); err != nil {
		return nil, err
	}
	pr, err := u.Repo.ProfileByUsername(userName)
	if err != nil {
		return nil, err
	}
	return u.Repo.RenameProfile(pr.ProfileID, newUserName)
}

// IsNotFound reports whether err means the referenced entity is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// IsConflict reports whether err means a uniqueness violation or a
// delete blocked by dependent postings.
func IsConflict(err error) bool {
	return errors.Is(err, domain.ErrAlreadyExists) || errors.Is(err, domain.ErrHasPostings)
}
