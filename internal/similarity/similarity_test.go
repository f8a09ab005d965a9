package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neighborfit/internal/dataset"
)

func TestCosineSim(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSim([]float64{1, 2}, []float64{2, 4}), 1e-12)
	assert.InDelta(t, 0.0, CosineSim([]float64{1, 0}, []float64{0, 3}), 1e-12)
	assert.Equal(t, 0.0, CosineSim([]float64{0, 0}, []float64{1, 1}))
}

func TestStrongSetAndJaccard(t *testing.T) {
	tb := dataset.LoadNeighborhoods()
	ch, _ := tb.ByName("Capitol Hill")
	bt, _ := tb.ByName("Belltown")
	gl, _ := tb.ByName("Green Lake")

	chSet := StrongSet(ch)
	assert.Len(t, chSet, 3) // walkability, nightlife, transit
	assert.Contains(t, chSet, "nightlife")

	assert.InDelta(t, 1.0, JaccardSim(chSet, StrongSet(bt)), 1e-12)
	// {walk, night, transit} vs {walk, safety, family}
	assert.InDelta(t, 0.2, JaccardSim(chSet, StrongSet(gl)), 1e-12)
	assert.Equal(t, 0.0, JaccardSim(map[string]struct{}{}, map[string]struct{}{}))
}

func TestTopK(t *testing.T) {
	tb := dataset.LoadNeighborhoods()
	for _, m := range []Metric{Cosine, Jaccard} {
		top, err := TopK(tb, m, 3)
		require.NoError(t, err, m)
		require.Len(t, top, 8)
		for name, nb := range top {
			require.Len(t, nb, 3)
			for i, n := range nb {
				assert.NotEqual(t, name, n.Name)
				if i > 0 {
					assert.GreaterOrEqual(t, nb[i-1].Sim, n.Sim)
				}
			}
		}
	}

	top, err := TopK(tb, Jaccard, 1)
	require.NoError(t, err)
	assert.Equal(t, "Belltown", top["Capitol Hill"][0].Name)

	top, err = TopK(tb, Cosine, 20)
	require.NoError(t, err)
	assert.Len(t, top["Fremont"], 7)
}

func TestTopK_Errors(t *testing.T) {
	tb := dataset.LoadNeighborhoods()
	_, err := TopK(tb, "euclid", 3)
	assert.ErrorIs(t, err, ErrUnknownMetric)
	_, err = TopK(tb, Cosine, 0)
	assert.Error(t, err)
	_, err = TopK(&dataset.Table{}, Cosine, 3)
	assert.ErrorIs(t, err, dataset.ErrEmptyTable)
}
