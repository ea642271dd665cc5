package weights

import (
	"gonum.org/v1/gonum/mat"
	"gotest.tools/assert"
	"math"
	"testing"
)

// 4 observed rows and 1 c3k row at 2 channels
func snr() *mat.Dense {
	return mat.NewDense(5, 2, []float64{
		10, 0,
		20, 0,
		30, 0,
		40, 0,
		5, 7,
	})
}

var flagged = []bool{false, false, false, false, true}

func Test_LogFluxWeights(t *testing.T) {
	w := Policy{LogFlux: true, FlagWeight: DefaultFlagWeight}.Bind(snr(), flagged)
	assert.Assert(t, !w.Unweighted())
	r := w.Weights(0, make([]float64, 5), nil)
	// median of 100, 400, 900, 1600 is 650
	assert.DeepEqual(t, r[:4], []float64{100, 400, 900, 1600})
	assert.Assert(t, math.Abs(r[4]-65) < 1e-12)
	// all observed weights are zero, so the median counts as 1
	r = w.Weights(1, make([]float64, 5), r)
	assert.DeepEqual(t, r[:4], []float64{0, 0, 0, 0})
	assert.Assert(t, math.Abs(r[4]-0.1) < 1e-15)
}

func Test_LinearFluxWeights(t *testing.T) {
	w := Policy{FlagWeight: 0.5}.Bind(snr(), flagged)
	r := w.Weights(0, []float64{1, 2, 3, 4, 100}, nil)
	// (snr/flux)^2 is 100 for every observed row
	for i := 0; i < 4; i++ {
		assert.Assert(t, math.Abs(r[i]-100) < 1e-12)
	}
	assert.Assert(t, math.Abs(r[4]-50) < 1e-12)
	// zero flux gives an infinite weight, it is zeroed
	r = w.Weights(0, []float64{0, 2, 3, 4, 1}, r)
	assert.Equal(t, r[0], 0.0)
}

func Test_Unweighted(t *testing.T) {
	assert.Assert(t, Policy{Unweighted: true}.Bind(snr(), flagged).Weights(0, nil, nil) == nil)
	assert.Assert(t, Policy{}.Bind(nil, nil).Weights(0, nil, nil) == nil)
}

func Test_NoFlaggedRows(t *testing.T) {
	w := Policy{LogFlux: true, FlagWeight: 0.1}.Bind(snr(), nil)
	r := w.Weights(0, make([]float64, 5), nil)
	assert.DeepEqual(t, r, []float64{100, 400, 900, 1600, 25})
}

func Test_Sanitize(t *testing.T) {
	flux := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, math.Inf(1)})
	s := mat.NewDense(2, 3, []float64{10, 1e-11, 10, math.NaN(), 10, 10})
	v, bad := Sanitize(flux, s, DefaultSNRThreshold)
	assert.Equal(t, v, 3.0)
	assert.Equal(t, bad, 2)
	assert.Equal(t, flux.At(0, 1), 3.0)
	assert.Equal(t, flux.At(1, 0), 3.0)
	assert.Equal(t, s.At(0, 1), 0.0)
	assert.Equal(t, s.At(1, 0), 0.0)
	// infinite flux with a good snr is left as is
	assert.Assert(t, math.IsInf(flux.At(1, 2), 1))
}
