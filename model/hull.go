package model

import (
	"go-ml.dev/pkg/psi/library"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
	"math"
)

const hullTolerance = 1e-10

// AllLabels returns every numeric label of the schema as hull dimensions
func AllLabels(s *library.Schema) []string {
	return s.Numeric()
}

/*
InsideHull reports whether labels of r lie in the convex hull of the current
training labels. dims are the hull dimensions, nil means labels used by the
feature terms. It does not require a fit.
*/
func (m *Model) InsideHull(r library.Record, dims []string) (bool, error) {
	if dims == nil {
		dims = m.features.Labels()
	}
	if len(dims) == 0 {
		return false, zorros.Errorf("no hull dimensions")
	}
	p, err := r.Flatten(dims)
	if err != nil {
		var u *library.UnknownLabelError
		if xerrors.As(err, &u) {
			return false, &library.MissingLabelError{Label: u.Label}
		}
		return false, err
	}
	cloud, err := m.lib.Training().Points(dims)
	if err != nil {
		return false, err
	}
	return InsideHull(cloud, p)
}

/*
InsideHull reports whether p is a convex combination of cloud points, that is
whether λ ≥ 0 exists with Σλ = 1 and Σλ·x = p. Dimensions where the cloud is
flat must match exactly and are dropped, the rest are scaled to [0,1].
*/
func InsideHull(cloud [][]float64, p []float64) (bool, error) {
	n := len(cloud)
	if n == 0 {
		return false, nil
	}
	lo := append([]float64(nil), cloud[0]...)
	hi := append([]float64(nil), cloud[0]...)
	for _, x := range cloud[1:] {
		for d, v := range x {
			lo[d] = math.Min(lo[d], v)
			hi[d] = math.Max(hi[d], v)
		}
	}
	var dims []int
	for d := range p {
		span := hi[d] - lo[d]
		if span <= hullTolerance*math.Max(1, math.Abs(hi[d])) {
			if math.Abs(p[d]-lo[d]) > hullTolerance*math.Max(1, math.Abs(lo[d])) {
				return false, nil
			}
			continue
		}
		if p[d] < lo[d] || p[d] > hi[d] {
			return false, nil
		}
		dims = append(dims, d)
	}
	if len(dims) == 0 {
		return true, nil
	}
	if n < len(dims)+1 {
		return false, ErrDegenerateHull
	}

	rows := len(dims) + 1
	a := mat.NewDense(rows, n, nil)
	b := make([]float64, rows)
	for k, d := range dims {
		span := hi[d] - lo[d]
		for i, x := range cloud {
			a.Set(k, i, (x[d]-lo[d])/span)
		}
		b[k] = (p[d] - lo[d]) / span
	}
	for i := 0; i < n; i++ {
		a.Set(rows-1, i, 1)
	}
	b[rows-1] = 1

	_, _, err := lp.Simplex(make([]float64, n), a, b, hullTolerance, nil)
	switch {
	case err == nil:
		return true, nil
	case xerrors.Is(err, lp.ErrInfeasible):
		return false, nil
	case xerrors.Is(err, lp.ErrSingular):
		return false, ErrDegenerateHull
	}
	return false, zorros.Wrapf(err, "hull test failed: %v", err.Error())
}
