package library

import (
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
	"gotest.tools/assert"
	"gotest.tools/assert/cmp"
	"math"
	"testing"
)

func schema(t *testing.T) *Schema {
	s, err := NewSchema([]string{Teff, Logg, FeH}, []string{"miles_id"})
	assert.NilError(t, err)
	return s
}

func fixture(t *testing.T, unc bool) *Library {
	s := schema(t)
	ids := []string{"a", "b", "c", "d", "e"}
	table, err := TableFromColumns(s, ids,
		map[string][]float64{
			Teff: {4000, 5000, 5777, 6000, 7000},
			Logg: {1.5, 2.5, 4.4, 4.0, 4.2},
			FeH:  {-1, -0.5, 0, 0.2, 0.4},
		},
		map[string][]string{"miles_id": {"m1", "m2", "m3", "bad", "c3k"}})
	assert.NilError(t, err)
	flux := mat.NewDense(5, 3, []float64{
		1, 2, 3,
		2, 3, 4,
		3, 4, 5,
		4, 5, 6,
		5, 6, math.NaN(),
	})
	d := Data{Wavelengths: []float64{4000, 4001, 4002}, Flux: flux, Labels: table}
	if unc {
		d.Uncertainty = mat.NewDense(5, 3, []float64{
			0.1, 0.1, -1,
			0.1, 0.1, 0.1,
			0.1, 0.1, 0.1,
			0.1, 0.1, 0.1,
			0.1, 0.1, 0.1,
		})
	}
	l, err := New(d)
	assert.NilError(t, err)
	return l
}

func Test_SchemaDerivesLogT(t *testing.T) {
	s := schema(t)
	assert.DeepEqual(t, s.Numeric(), []string{Teff, Logg, FeH, LogT})
	r, err := s.Record("sun", map[string]float64{Teff: 5777}, nil)
	assert.NilError(t, err)
	v, err := r.Value(LogT)
	assert.NilError(t, err)
	assert.Assert(t, math.Abs(v-math.Log10(5777)) < 1e-12)
	_, err = r.Value(FeH)
	var m *MissingLabelError
	assert.Assert(t, xerrors.As(err, &m))
	assert.Equal(t, m.Label, FeH)
}

func Test_RecordConversions(t *testing.T) {
	s := schema(t)
	_, err := s.Record("x", map[string]float64{"mass": 1}, nil)
	var u *UnknownLabelError
	assert.Assert(t, xerrors.As(err, &u))
	r, err := s.Record("x", map[string]float64{Teff: 5000, Logg: 4, FeH: 0.1}, map[string]string{"miles_id": "m"})
	assert.NilError(t, err)
	x, err := r.Flatten([]string{FeH, Logg})
	assert.NilError(t, err)
	assert.DeepEqual(t, x, []float64{0.1, 4})
	assert.Equal(t, len(r.Map()), 4)
	assert.DeepEqual(t, r.Categories(), map[string]string{"miles_id": "m"})
	table, err := NewTable(s, []Record{r})
	assert.NilError(t, err)
	assert.DeepEqual(t, table.Record(0).Map(), r.Map())
}

func Test_NewValidates(t *testing.T) {
	s := schema(t)
	table, err := TableFromColumns(s, []string{"a"}, map[string][]float64{Teff: {5000}, Logg: {4}, FeH: {0}}, nil)
	assert.NilError(t, err)
	_, err = New(Data{Wavelengths: []float64{2, 1}, Flux: mat.NewDense(1, 2, []float64{1, 1}), Labels: table})
	assert.ErrorContains(t, err, "strictly increasing")
	_, err = New(Data{Wavelengths: []float64{1, 2}, Flux: mat.NewDense(2, 2, nil), Labels: table})
	assert.ErrorContains(t, err, "label records")
}

func Test_Sanitize(t *testing.T) {
	l := fixture(t, true)
	assert.Assert(t, l.HasErrors())
	// median of the finite flux values
	assert.Equal(t, l.BadFluxValue(), 4.0)
	assert.Equal(t, l.SNR().At(0, 2), 0.0)
	assert.Equal(t, l.Flux(0)[2], 4.0)
	assert.Equal(t, l.SNR().At(4, 2), 0.0)
	assert.Equal(t, l.Flux(4)[2], 4.0)
	assert.Equal(t, l.SNR().At(0, 0), 10.0)

	l = fixture(t, false)
	assert.Assert(t, !l.HasErrors())
	assert.Equal(t, l.Flux(4)[2], 4.0)
}

func Test_Select(t *testing.T) {
	l := fixture(t, true)
	v := l.Version()
	err := l.Select(Selection{Bounds: map[string]Bound{Teff: {4500, 6500}}}, false)
	assert.NilError(t, err)
	assert.Assert(t, l.Version() != v)
	assert.DeepEqual(t, l.TrainingIndices(), []int{1, 2, 3})

	assert.NilError(t, l.Select(Selection{BadValues: map[string][]string{"miles_id": {"bad"}}}, false))
	assert.DeepEqual(t, l.TrainingIndices(), []int{1, 2})
	assert.Equal(t, l.Len(), 5)

	l.ResetMask()
	assert.Equal(t, l.NTrain(), 5)
}

func Test_SelectBoundsAreOpen(t *testing.T) {
	l := fixture(t, false)
	assert.NilError(t, l.Select(Selection{Bounds: map[string]Bound{Teff: {4000, 7000}}}, false))
	assert.DeepEqual(t, l.TrainingIndices(), []int{1, 2, 3})
}

func Test_SelectInvalid(t *testing.T) {
	l := fixture(t, false)
	var e *InvalidBoundsError
	err := l.Select(Selection{Bounds: map[string]Bound{"mass": {0, 1}}}, false)
	assert.Assert(t, xerrors.As(err, &e))
	assert.Equal(t, e.Label, "mass")
	err = l.Select(Selection{Bounds: map[string]Bound{Teff: {6000, 5000}}}, false)
	assert.Assert(t, xerrors.As(err, &e))
	err = l.Select(Selection{BadValues: map[string][]string{Teff: {"x"}}}, false)
	assert.Assert(t, xerrors.As(err, &e))
	assert.Equal(t, l.NTrain(), 5)
}

func Test_SelectDelete(t *testing.T) {
	l := fixture(t, true)
	assert.NilError(t, l.LeaveOut(0))
	assert.NilError(t, l.Select(Selection{Bounds: map[string]Bound{Teff: {3000, 6500}}}, true))
	assert.Equal(t, l.Len(), 3)
	assert.Equal(t, l.NTrain(), 3)
	assert.DeepEqual(t, l.Labels().IDs(), []string{"b", "c", "d"})
	assert.DeepEqual(t, l.Flux(0), []float64{2, 3, 4})
	r, c := l.SNR().Dims()
	assert.Equal(t, r, 3)
	assert.Equal(t, c, 3)
}

func Test_LeaveOutRestore(t *testing.T) {
	l := fixture(t, false)
	view := l.Training()
	assert.NilError(t, l.LeaveOut(1, 3))
	assert.Equal(t, view.Len(), 3)
	assert.DeepEqual(t, view.Labels().IDs(), []string{"a", "c", "e"})
	rows, _ := view.Flux().Dims()
	assert.Equal(t, rows, 3)
	assert.NilError(t, l.Restore(3))
	assert.DeepEqual(t, view.Indices(), []int{0, 2, 3, 4})
	assert.ErrorContains(t, l.LeaveOut(5), "out of range")
	assert.ErrorContains(t, l.Restore(-1), "out of range")
}

func Test_Renormalize(t *testing.T) {
	l := fixture(t, false)
	assert.NilError(t, l.Renormalize(Logg))
	assert.Assert(t, math.Abs(l.Flux(0)[0]-1/1.5) < 1e-12)
	assert.ErrorContains(t, l.Renormalize(FeH), "can not renormalize")
}

func Test_Points(t *testing.T) {
	l := fixture(t, false)
	assert.NilError(t, l.LeaveOut(0, 1, 2))
	p, err := l.Training().Points([]string{FeH, Logg})
	assert.NilError(t, err)
	assert.DeepEqual(t, p, [][]float64{{0.2, 4.0}, {0.4, 4.2}})
	_, err = l.Training().Points([]string{"mass"})
	assert.Assert(t, cmp.ErrorContains(err, "unknown label"))
}
