/*
Package loo validates a model by leaving training rows out one at a time,
retraining, and predicting the row left out
*/
package loo

import (
	"fmt"
	"go-ml.dev/pkg/psi/fu"
	"go-ml.dev/pkg/psi/library"
	"go-ml.dev/pkg/psi/model"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"
)

/*
Options of a leave-one-out run
*/
type Options struct {
	Indices   []int               // library rows to leave out, all training rows when nil
	Skip      map[string][]string // categorical label -> values never left out, e.g. c3k models
	HullDims  []string            // hull dimensions, feature labels when nil
	Verbose   func(string)        // progress
	Frequency int                 // report progress every Frequency rows, 10 when zero
}

/*
Report is a result of leave-one-out validation
*/
type Report struct {
	Wavelengths []float64
	Indices     []int       // library rows left out
	Observed    [][]float64 // library spectra of rows
	Predicted   [][]float64 // spectra predicted by models trained without rows
	InHull      []bool      // whether a row was inside the hull of the others
}

/*
Run leaves out every candidate row in turn. The mask is restored after each
row, also when training fails, the model fit is stale afterwards.
*/
func Run(m *model.Model, o Options) (*Report, error) {
	lib := m.Library()
	idx, err := candidates(lib, o)
	if err != nil {
		return nil, err
	}
	freq := fu.Fnzi(o.Frequency, 10)
	rep := &Report{
		Wavelengths: lib.Wavelengths(),
		Indices:     idx,
		Observed:    make([][]float64, len(idx)),
		Predicted:   make([][]float64, len(idx)),
		InHull:      make([]bool, len(idx)),
	}
	for i, j := range idx {
		if o.Verbose != nil && i%freq == 0 {
			o.Verbose(fmt.Sprintf("%d of %d", i, len(idx)))
		}
		if err = one(m, j, o.HullDims, rep, i); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

func one(m *model.Model, j int, dims []string, rep *Report, i int) (err error) {
	lib := m.Library()
	rec := lib.Record(j)
	if err = lib.LeaveOut(j); err != nil {
		return
	}
	defer func() {
		if e := lib.Restore(j); e != nil && err == nil {
			err = e
		}
	}()
	if err = m.Train(); err != nil {
		return xerrors.Errorf("leaving out row %d: %w", j, err)
	}
	if rep.Predicted[i], err = m.Predict(rec); err != nil {
		return
	}
	rep.Observed[i] = lib.Flux(j)
	rep.InHull[i], err = m.InsideHull(rec, dims)
	if xerrors.Is(err, model.ErrDegenerateHull) {
		err = nil
	}
	return
}

func candidates(lib *library.Library, o Options) ([]int, error) {
	idx := o.Indices
	if idx == nil {
		idx = lib.TrainingIndices()
	}
	mask := lib.Mask()
	var r []int
	for _, j := range idx {
		if j < 0 || j >= len(mask) {
			return nil, zorros.Errorf("row index %d is out of range [0,%d)", j, len(mask))
		}
		if !mask[j] {
			continue
		}
		rec := lib.Record(j)
		skip := false
		for n, vs := range o.Skip {
			c, err := rec.Category(n)
			if err != nil {
				return nil, err
			}
			for _, v := range vs {
				skip = skip || c == v
			}
		}
		if !skip {
			r = append(r, j)
		}
	}
	return r, nil
}
