package models

// VoterVote pairs a voter's contact label with the rating they
// submitted
type VoterVote struct {
	// Label is the voter's registry label, or "Unknown" when the
	// voter ID is absent from the registry
	Label string

	// Rating is the submitted rating
	Rating int
}

// PollResults holds the aggregated live statistics for one poll
type PollResults struct {
	// TotalVotes is the number of recorded ratings
	TotalVotes int

	// Average is the arithmetic mean of all ratings, rounded to two
	// decimal places. Zero when there are no votes.
	Average float64

	// Ratings is every recorded rating, sorted ascending
	Ratings []int

	// PerVoter lists each vote with its voter's label, sorted by
	// label then rating
	PerVoter []VoterVote
}
