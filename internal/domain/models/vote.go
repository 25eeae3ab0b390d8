package models

import "fmt"

// VoteDirection is the closed set of vote tokens accepted at the API
// boundary. Unknown tokens are rejected before they reach the state
// machine.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// ParseVoteDirection validates a raw vote token.
func ParseVoteDirection(raw string) (VoteDirection, error) {
	switch VoteDirection(raw) {
	case VoteUp, VoteDown:
		return VoteDirection(raw), nil
	default:
		return "", fmt.Errorf("unknown vote direction %q", raw)
	}
}

// VoteCounts is the absolute vote state of an entity after a vote
// transition.
type VoteCounts struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}
