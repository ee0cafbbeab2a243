package research_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kingraph-app/kingraph/domain/people"
	"github.com/kingraph-app/kingraph/domain/research"
	"github.com/kingraph-app/kingraph/internal/config"
	"github.com/kingraph-app/kingraph/internal/testutil"
)

func weights() config.ResearchConfig {
	return config.ResearchConfig{
		WeightMissingDates:      20,
		WeightMissingPlaces:     10,
		WeightEstimatedDates:    10,
		WeightPlaceholderParent: 25,
		WeightLowSources:        15,
		WeightPriority:          2,
		LowSourceThreshold:      2,
	}
}

func documented(id string) *people.Person {
	p := testutil.Person(id)
	year := 1900
	place := "Oslo"
	p.BirthYear = &year
	p.BirthDate = &place
	p.BirthPlace = &place
	p.BirthAccuracy = people.AccuracyExact
	p.DeathYear = &year
	p.DeathPlace = &place
	p.DeathAccuracy = people.AccuracyExact
	p.SourceCount = 5
	return p
}

func TestScoreIndicators(t *testing.T) {
	cfg := weights()

	t.Run("fully documented scores zero", func(t *testing.T) {
		c := research.Candidate{Person: documented("a")}
		assert.Equal(t, 0.0, research.Score(c, cfg))
	})

	t.Run("bare record accumulates every gap weight", func(t *testing.T) {
		// Missing dates, missing places, zero sources.
		c := research.Candidate{Person: testutil.Person("a")}
		assert.Equal(t, 20+10+15.0, research.Score(c, cfg))
	})

	t.Run("living person is not penalized for death gaps", func(t *testing.T) {
		p := documented("a")
		p.DeathYear = nil
		p.DeathPlace = nil
		p.Living = true
		assert.Equal(t, 0.0, research.Score(research.Candidate{Person: p}, cfg))
	})

	t.Run("estimated dates", func(t *testing.T) {
		p := documented("a")
		p.BirthAccuracy = people.AccuracyEstimated
		assert.Equal(t, 10.0, research.Score(research.Candidate{Person: p}, cfg))
	})

	t.Run("placeholder parent", func(t *testing.T) {
		c := research.Candidate{Person: documented("a"), HasPlaceholderParent: true}
		assert.Equal(t, 25.0, research.Score(c, cfg))
	})

	t.Run("low sources", func(t *testing.T) {
		p := documented("a")
		p.SourceCount = 1
		assert.Equal(t, 15.0, research.Score(research.Candidate{Person: p}, cfg))
	})

	t.Run("manual priority scales by its weight", func(t *testing.T) {
		p := documented("a")
		p.ResearchPriority = 7
		assert.Equal(t, 14.0, research.Score(research.Candidate{Person: p}, cfg))
	})
}

func TestRankOrdering(t *testing.T) {
	cfg := weights()

	prio := func(id string, priority int) research.Candidate {
		p := documented(id)
		p.ResearchPriority = priority
		return research.Candidate{Person: p}
	}
	ranked := research.Rank([]research.Candidate{
		prio("b", 5), prio("d", 9), prio("c", 5), prio("a", 1),
	}, cfg)

	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.Person.ID
	}
	// Descending score, equal scores resolved by ascending id.
	assert.Equal(t, []string{"d", "b", "c", "a"}, ids)

	for i := 1; i < len(ranked); i++ {
		prev, cur := ranked[i-1], ranked[i]
		ordered := prev.Score > cur.Score ||
			(prev.Score == cur.Score && prev.Person.ID < cur.Person.ID)
		assert.True(t, ordered, "edge %d out of order", i)
	}
}
