package dataset

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNeighborhoods(t *testing.T) {
	tb := LoadNeighborhoods()
	require.Equal(t, 8, tb.Len())
	require.NoError(t, Validate(tb))

	want := []string{"Capitol Hill", "Fremont", "Ballard", "Queen Anne", "Georgetown", "Wallingford", "Belltown", "Green Lake"}
	if diff := cmp.Diff(want, tb.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	walk, err := tb.Column("walkability")
	require.NoError(t, err)
	assert.Equal(t, []float64{95, 85, 80, 75, 65, 78, 88, 82}, walk)

	rent, err := tb.Column("average_rent")
	require.NoError(t, err)
	assert.Equal(t, []float64{2800, 2400, 2600, 3200, 1900, 2500, 3000, 2300}, rent)

	for _, r := range tb.Rows {
		assert.Equal(t, -1, r.Cluster)
		assert.Equal(t, "Seattle, WA", r.City)
	}
}

func TestTable_ColumnUnknown(t *testing.T) {
	tb := LoadNeighborhoods()
	_, err := tb.Column("crime")
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = tb.Columns([]string{"safety", "crime"})
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestTable_ColumnIsCopy(t *testing.T) {
	tb := LoadNeighborhoods()
	col, _ := tb.Column("safety")
	col[0] = -5
	again, _ := tb.Column("safety")
	assert.Equal(t, 75.0, again[0])
}

func TestTable_SetClusters(t *testing.T) {
	tb := LoadNeighborhoods()
	assert.ErrorIs(t, tb.SetClusters([]int{0, 1}), ErrColumnLength)

	labels := []int{0, 0, 0, 1, 1, 1, 2, 2}
	require.NoError(t, tb.SetClusters(labels))
	for i, r := range tb.Rows {
		assert.Equal(t, labels[i], r.Cluster)
	}
}

func TestValidate_Errors(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), ErrEmptyTable)
	assert.ErrorIs(t, Validate(&Table{}), ErrEmptyTable)

	tb := LoadNeighborhoods()
	tb.Rows[1].Name = tb.Rows[0].Name
	assert.ErrorIs(t, Validate(tb), ErrDuplicateName)

	tb = LoadNeighborhoods()
	tb.Rows[2].Scores.Nightlife = 120
	assert.ErrorIs(t, Validate(tb), ErrOutOfRange)

	tb = LoadNeighborhoods()
	tb.Rows[3].AverageRent = 0
	assert.ErrorIs(t, Validate(tb), ErrOutOfRange)
}

func TestGenerateUsers_Bounds(t *testing.T) {
	ut, err := GenerateUsers(1000, 42, DefaultPrefDists(), DefaultBudgetDist())
	require.NoError(t, err)
	require.Equal(t, 1000, ut.Len())
	require.NoError(t, ValidateUsers(ut))

	assert.Equal(t, []string{
		"walkability_pref", "safety_pref", "affordability_pref",
		"nightlife_pref", "family_friendly_pref", "transit_pref", "budget",
	}, ut.Columns)

	for _, c := range ut.PrefColumns() {
		col, err := ut.Column(c)
		require.NoError(t, err)
		require.Len(t, col, 1000)
		for _, v := range col {
			require.GreaterOrEqual(t, v, 1.0, c)
			require.LessOrEqual(t, v, 10.0, c)
		}
	}
	budget, _ := ut.Column("budget")
	for _, v := range budget {
		require.GreaterOrEqual(t, v, 1000.0)
		require.LessOrEqual(t, v, 5000.0)
	}
}

func TestGenerateUsers_Reproducible(t *testing.T) {
	a, err := GenerateUsers(200, 42, DefaultPrefDists(), DefaultBudgetDist())
	require.NoError(t, err)
	b, err := GenerateUsers(200, 42, DefaultPrefDists(), DefaultBudgetDist())
	require.NoError(t, err)
	if diff := cmp.Diff(a.Data, b.Data); diff != "" {
		t.Fatalf("same seed produced different tables:\n%s", diff)
	}

	c, err := GenerateUsers(200, 7, DefaultPrefDists(), DefaultBudgetDist())
	require.NoError(t, err)
	assert.NotEqual(t, a.Data["walkability_pref"], c.Data["walkability_pref"])
}

func TestGenerateUsers_Errors(t *testing.T) {
	_, err := GenerateUsers(0, 42, DefaultPrefDists(), DefaultBudgetDist())
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = GenerateUsers(10, 42, DefaultPrefDists()[:3], DefaultBudgetDist())
	assert.ErrorIs(t, err, ErrColumnLength)

	bad := DefaultPrefDists()
	bad[0].Std = 0
	_, err = GenerateUsers(10, 42, bad, DefaultBudgetDist())
	assert.ErrorIs(t, err, ErrOutOfRange)

	b := DefaultBudgetDist()
	b.Min, b.Max = 5000, 1000
	_, err = GenerateUsers(10, 42, DefaultPrefDists(), b)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestUserTable_RowAndWeights(t *testing.T) {
	ut, err := GenerateUsers(5, 1, DefaultPrefDists(), DefaultBudgetDist())
	require.NoError(t, err)

	row := ut.Row(3)
	walk, _ := ut.Column("walkability_pref")
	transit, _ := ut.Column("transit_pref")
	assert.Equal(t, walk[3], row.Prefs[0])
	assert.Equal(t, transit[3], row.Prefs[5])

	w := row.Weights()
	for i := range w {
		assert.InDelta(t, row.Prefs[i]/10, w[i], 1e-12)
	}
}

func TestSample(t *testing.T) {
	idx, err := Sample(1000, 100, 42)
	require.NoError(t, err)
	require.Len(t, idx, 100)

	seen := map[int]bool{}
	for _, i := range idx {
		require.False(t, seen[i], "duplicate index %d", i)
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, 1000)
		seen[i] = true
	}

	again, _ := Sample(1000, 100, 42)
	assert.Equal(t, idx, again)

	_, err = Sample(10, 11, 42)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func names(rows []Neighborhood) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestSearch(t *testing.T) {
	tb := LoadNeighborhoods()
	assert.Equal(t, []string{"Ballard", "Belltown"}, names(Search(tb, "waterFRONT")))
	assert.Equal(t, []string{"Fremont", "Green Lake"}, names(Search(tb, "family")))
	assert.Equal(t, []string{"Capitol Hill"}, names(Search(tb, " hill ")))
	assert.Len(t, Search(tb, ""), 8)
	assert.Empty(t, Search(tb, "tacoma"))

	// solo en la descripción
	assert.Equal(t, []string{"Ballard"}, names(Search(tb, "maritime")))
	assert.Equal(t, []string{"Georgetown"}, names(Search(tb, "food scene")))
}

func TestSortBy(t *testing.T) {
	rows := Search(LoadNeighborhoods(), "")
	require.NoError(t, SortBy(rows, "affordability"))
	assert.Equal(t, []string{"Georgetown", "Green Lake"}, names(rows[:2]))

	require.NoError(t, SortBy(rows, "name"))
	assert.Equal(t, "Ballard", rows[0].Name)
	assert.Equal(t, "Wallingford", rows[7].Name)

	assert.ErrorIs(t, SortBy(rows, "vibes"), ErrUnknownColumn)
}

func TestSortBy_RentCheapestFirst(t *testing.T) {
	for _, key := range []string{"rent", "average_rent"} {
		rows := Search(LoadNeighborhoods(), "")
		require.NoError(t, SortBy(rows, key), key)
		assert.Equal(t, []string{"Georgetown", "Green Lake", "Fremont"}, names(rows[:3]), key)
		assert.Equal(t, "Queen Anne", rows[7].Name, key)
	}

	rows := Search(LoadNeighborhoods(), "")
	require.NoError(t, SortBy(rows, "median_income"))
	assert.Equal(t, "Queen Anne", rows[0].Name)
}
