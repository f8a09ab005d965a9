package recommend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neighborfit/internal/dataset"
)

func basePrefs() Preferences {
	return Preferences{Budget: 2500, Walkability: 10, Safety: 10, Nightlife: 10, FamilyFriendly: 10, Transit: 10}
}

func TestAffordabilityWeight(t *testing.T) {
	assert.InDelta(t, 1.0, AffordabilityWeight(0), 1e-12)
	assert.InDelta(t, 0.65, AffordabilityWeight(2500), 1e-12)
	assert.InDelta(t, 0.3, AffordabilityWeight(5000), 1e-12)
	assert.InDelta(t, 0.3, AffordabilityWeight(9000), 1e-12)
}

func TestLifestyleMultipliers(t *testing.T) {
	assert.Equal(t, Multipliers{1, 1, 1, 1, 1, 1}, LifestyleMultipliers("astronaut"))
	assert.Equal(t, Multipliers{1, 1, 1, 1.2, 0.8, 1.1}, LifestyleMultipliers(YoungProfessional))
	assert.Equal(t, Multipliers{1, 1.2, 1, 0.7, 1.3, 1}, LifestyleMultipliers(Family))
	assert.Equal(t, Multipliers{1, 1, 1.4, 1.1, 1, 1.2}, LifestyleMultipliers(Student))
	assert.Equal(t, Multipliers{1.1, 1.3, 1, 0.6, 1, 1}, LifestyleMultipliers(Retiree))
	assert.Equal(t, Multipliers{1.2, 1, 1.1, 1, 1, 1}, LifestyleMultipliers(RemoteWorker))
}

func TestLifestyleKnown(t *testing.T) {
	assert.True(t, Student.Known())
	assert.True(t, Lifestyle("remote-worker").Known())
	assert.False(t, Lifestyle("").Known())
	assert.False(t, Lifestyle("astronaut").Known())
}

func TestScore_CapitolHill(t *testing.T) {
	tb := dataset.LoadNeighborhoods()
	ch, ok := tb.ByName("Capitol Hill")
	require.True(t, ok)

	s := Score(ch, basePrefs())
	// 95 + 75 + 60·0.65 + 90 + 65 + 85 = 449 → 449/6 = 74.83
	assert.Equal(t, 75, s.Overall)
	assert.Equal(t, 39, s.Categories["affordability"])
	assert.Equal(t, 95, s.Categories["walkability"])

	p := basePrefs()
	p.Priorities = []string{"Walkable amenities", "unknown"}
	assert.InDelta(t, 9.5, PriorityBonus(ch, p.Priorities), 1e-12)
	assert.Equal(t, 84, Score(ch, p).Overall)
}

func TestScore_CappedAt100(t *testing.T) {
	ch, _ := dataset.LoadNeighborhoods().ByName("Capitol Hill")
	p := basePrefs()
	p.Priorities = []string{"Low cost of living", "Walkable amenities", "Safe neighborhood", "Good schools", "Nightlife & dining", "Public transportation"}
	p.Lifestyle = YoungProfessional
	assert.Equal(t, 100, Score(ch, p).Overall)
}

func TestConfidence(t *testing.T) {
	p := basePrefs()
	assert.Equal(t, 95, Confidence(p))

	p = Preferences{Budget: 1, Walkability: 5, Safety: 5, Nightlife: 5, FamilyFriendly: 5, Transit: 5}
	assert.Equal(t, 95, Confidence(p)) // 85 + 0 + 10

	p.Walkability, p.Safety = 6, 4
	assert.Equal(t, 95, Confidence(p))
}

func TestReasons_LimitAndBudget(t *testing.T) {
	tb := dataset.LoadNeighborhoods()
	ch, _ := tb.ByName("Capitol Hill")
	p := basePrefs()
	p.Lifestyle = YoungProfessional
	s := Score(ch, p)
	r := Reasons(ch, p, s)
	assert.LessOrEqual(t, len(r), 4)
	assert.Contains(t, r[0], "Excellent walkability")

	gt, _ := tb.ByName("Georgetown")
	p = Preferences{Budget: 1800, Walkability: 2, Safety: 2, Nightlife: 2, FamilyFriendly: 2, Transit: 2}
	r = Reasons(gt, p, Score(gt, p))
	assert.Equal(t, []string{"Within your budget range ($1900/month)"}, r)
}

func TestRank(t *testing.T) {
	tb := dataset.LoadNeighborhoods()
	p := basePrefs()
	p.Lifestyle = Family

	matches, err := Rank(tb, p, 3)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Overall, matches[i].Overall)
	}
	assert.Equal(t, "Green Lake", matches[0].Neighborhood.Name)

	all, err := Rank(tb, p, 0)
	require.NoError(t, err)
	assert.Len(t, all, 8)
}

func TestRank_Invalid(t *testing.T) {
	tb := dataset.LoadNeighborhoods()
	p := basePrefs()
	p.Safety = 11
	_, err := Rank(tb, p, 5)
	assert.ErrorIs(t, err, ErrInvalidPreferences)

	p = basePrefs()
	p.Budget = 0
	_, err = Rank(tb, p, 5)
	assert.ErrorIs(t, err, ErrInvalidPreferences)

	nan := math.NaN()
	for name, mutate := range map[string]func(*Preferences){
		"walkability NaN": func(p *Preferences) { p.Walkability = nan },
		"transit NaN":     func(p *Preferences) { p.Transit = nan },
		"budget NaN":      func(p *Preferences) { p.Budget = nan },
		"budget +Inf":     func(p *Preferences) { p.Budget = math.Inf(1) },
	} {
		p = basePrefs()
		mutate(&p)
		matches, err := Rank(tb, p, 3)
		assert.ErrorIs(t, err, ErrInvalidPreferences, name)
		assert.Nil(t, matches, name)
	}

	_, err = Rank(&dataset.Table{}, basePrefs(), 5)
	assert.ErrorIs(t, err, dataset.ErrEmptyTable)
}
