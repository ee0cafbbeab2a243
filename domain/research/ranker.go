package research

import (
	"sort"

	"github.com/kingraph-app/kingraph/domain/people"
	"github.com/kingraph-app/kingraph/internal/config"
)

// Candidate is one scorable record: the person plus the relational facts
// the score needs but the person row alone cannot answer.
type Candidate struct {
	Person               *people.Person `json:"person"`
	HasPlaceholderParent bool           `json:"hasPlaceholderParent"`
}

// Score computes the weighted needs-attention score for one candidate.
// Death-side gaps never count against living people.
func Score(c Candidate, cfg config.ResearchConfig) float64 {
	p := c.Person
	var score float64

	if p.BirthYear == nil || (!p.Living && p.DeathYear == nil) {
		score += cfg.WeightMissingDates
	}
	if p.BirthPlace == nil || (!p.Living && p.DeathPlace == nil) {
		score += cfg.WeightMissingPlaces
	}
	if p.BirthAccuracy.Approximate() || p.DeathAccuracy.Approximate() {
		score += cfg.WeightEstimatedDates
	}
	if c.HasPlaceholderParent {
		score += cfg.WeightPlaceholderParent
	}
	if p.SourceCount < cfg.LowSourceThreshold {
		score += cfg.WeightLowSources
	}
	score += cfg.WeightPriority * float64(p.ResearchPriority)

	return score
}

// Ranked is a scored candidate in queue order.
type Ranked struct {
	Candidate
	Score float64 `json:"score"`
}

// Rank scores every candidate and orders the queue: descending by score,
// ties broken by ascending id so pagination stays deterministic.
func Rank(candidates []Candidate, cfg config.ResearchConfig) []Ranked {
	ranked := make([]Ranked, len(candidates))
	for i, c := range candidates {
		ranked[i] = Ranked{Candidate: c, Score: Score(c, cfg)}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Person.ID < ranked[j].Person.ID
	})
	return ranked
}
