package rest

import "socialapi/internal/domain"

// Wire formats. A posting's date and time fields are both derived from
// the single creation instant the store captured.

type profileResponse struct {
	ProfileID int               `json:"profileId"`
	UserName  string            `json:"userName"`
	Postings  []postingResponse `json:"postings"`
}

type postingResponse struct {
	PostingID   int    `json:"postingId"`
	PostingText string `json:"postingText"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	UserName    string `json:"userName"`
}

// 共通レスポンス
type messageOnly struct {
	Message string `json:"message"`
}

type messageWithCause struct {
	Message string `json:"message"`
	Cause   string `json:"cause"`
}

type createProfileRequest struct {
	UserName string `json:"userName"`
}

type postingRequest struct {
	PostingText string `json:"postingText"`
}

type renameRequest struct {
	NewUsername string `json:"newUsername"`
}

func toPostingResponse(p *domain.Posting) postingResponse {
	return postingResponse{
		PostingID:   p.PostingID,
		PostingText: p.PostingText,
		Date:        p.CreatedAt.Format("2006-01-02"),
		Time:        p.CreatedAt.Format("15:04:05"),
		UserName:    p.UserName,
	}
}

func toPostingResponses(ps []*domain.Posting) []postingResponse {
	out := make([]postingResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPostingResponse(p))
	}
	return out
}

func toProfileResponse(pr *domain.Profile) profileResponse {
	return profileResponse{
		ProfileID: pr.ProfileID,
		UserName:  pr.UserName,
		Postings:  toPostingResponses(pr.Postings),
	}
}
