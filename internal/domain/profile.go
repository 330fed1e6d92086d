package domain

import "time"

// Profile is a named account owning zero or more postings. ProfileID is
// assigned by the store and never changes; UserName is unique across all
// profiles and may be changed via rename.
type Profile struct {
	ProfileID int
	UserName  string
	Postings  []*Posting
}

// Posting is a timestamped text item authored by exactly one profile.
// UserName is a denormalized copy of the owner's username, kept in sync
// by the store when the owner is renamed.
type Posting struct {
	PostingID   int
	ProfileID   int
	PostingText string
	UserName    string
	CreatedAt   time.Time
}

const maxUserNameLen = 64

// ValidateUserName checks a username supplied by a client before it is
// handed to the store. Uniqueness is the store's concern, not ours.
func ValidateUserName(userName string) error {
	if userName == "" {
		return &ErrValidation{Cause: "Required username"}
	}
	if len(userName) > maxUserNameLen {
		return &ErrValidation{Cause: "Username length limit exceeded"}
	}
	if hasControl(userName) {
		return &ErrValidation{Cause: "Username contains invalid characters"}
	}
	return nil
}

// ValidatePostingText checks posting text supplied by a client.
func ValidatePostingText(text string) error {
	if text == "" {
		return &ErrValidation{Cause: "Required posting text"}
	}
	return nil
}

func hasControl(s string) bool {
	for _, r := range s {
		// ASCII control (0x00-0x1F, 0x7F)
		if r < 0x20 || r == 0x7F {
			return true
		}
	}
	return false
}
