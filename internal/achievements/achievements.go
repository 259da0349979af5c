// Package achievements holds the static achievement catalog. Definitions
// are configuration, not user data: each one maps a derived activity
// metric to a target, or is granted purely as a badge.
package achievements

// Metric identifies which derived counter an achievement is measured
// against. MetricBadgeOnly marks achievements granted by a discrete event
// (contest win, special recognition) that are evaluated solely from badge
// presence on the profile.
type Metric int

const (
	MetricPostsPublished Metric = iota
	MetricLikesReceived
	MetricCommentsMade
	MetricPoints
	MetricBadgeOnly
)

// Definition describes a single achievement. BadgeName is the exact string
// stored in Profile.Badges when the achievement is granted.
type Definition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Requirement string `json:"requirement"`
	Metric      Metric `json:"-"`
	Target      int    `json:"max_progress"`
}

// BadgeName returns the badge string recorded on a profile when this
// achievement is earned.
func (d Definition) BadgeName() string { return d.Name }

var catalog = []Definition{
	{
		ID:          "first-post",
		Name:        "First Post",
		Description: "Published your first piece of writing",
		Requirement: "Publish 1 post",
		Metric:      MetricPostsPublished,
		Target:      1,
	},
	{
		ID:          "prolific-writer",
		Name:        "Prolific Writer",
		Description: "A dedicated writer with many published works",
		Requirement: "Publish 10 posts",
		Metric:      MetricPostsPublished,
		Target:      10,
	},
	{
		ID:          "rising-star",
		Name:        "Rising Star",
		Description: "Your work is gaining recognition",
		Requirement: "Receive 50 total likes",
		Metric:      MetricLikesReceived,
		Target:      50,
	},
	{
		ID:          "popular-poet",
		Name:        "Popular Poet",
		Description: "Your poetry resonates with many readers",
		Requirement: "Receive 100 total likes",
		Metric:      MetricLikesReceived,
		Target:      100,
	},
	{
		ID:          "conversation-starter",
		Name:        "Conversation Starter",
		Description: "Active in community discussions",
		Requirement: "Make 50 comments",
		Metric:      MetricCommentsMade,
		Target:      50,
	},
	{
		ID:          "contest-winner",
		Name:        "Contest Winner",
		Description: "Won a writing contest",
		Requirement: "Win a contest",
		Metric:      MetricBadgeOnly,
		Target:      1,
	},
	{
		ID:          "community-champion",
		Name:        "Community Champion",
		Description: "A pillar of The Poets Corner community",
		Requirement: "Reach 1000 points",
		Metric:      MetricPoints,
		Target:      1000,
	},
	{
		ID:          "mentor",
		Name:        "Mentor",
		Description: "Helps and guides other writers",
		Requirement: "Special recognition",
		Metric:      MetricBadgeOnly,
		Target:      1,
	},
}

// All returns the ordered achievement catalog. Callers get a copy so the
// catalog itself stays immutable.
func All() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Count returns the number of defined achievements.
func Count() int { return len(catalog) }
