package fu

import (
	"gotest.tools/assert"
	"math"
	"testing"
)

func Test_NanStats(t *testing.T) {
	a := []float64{3, math.NaN(), 1, math.Inf(1), 2, 4}
	assert.Equal(t, NanMedian(a), 2.5)
	assert.Equal(t, NanMedian([]float64{5, 1, 3}), 3.0)
	assert.Equal(t, NanMean(a), 2.5)
	assert.Equal(t, NanVar(a), 1.25)
	assert.Assert(t, math.IsNaN(NanMedian([]float64{math.NaN()})))
	assert.Assert(t, math.IsNaN(NanMean(nil)))
}

func Test_Helpers(t *testing.T) {
	assert.Equal(t, Fnzi(0, 0, 3, 4), 3)
	assert.Equal(t, Mini(2, 1), 1)
	assert.Equal(t, Maxi(2, 1), 2)
	assert.DeepEqual(t, Flatn([][]float64{{1}, {2, 3}}), []float64{1, 2, 3})
}
