package library

import (
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
	"math"
)

/*
Bound is an open interval (Min, Max)
*/
type Bound struct {
	Min, Max float64
}

func (b Bound) Contains(v float64) bool {
	return v > b.Min && v < b.Max
}

/*
Selection restricts the training rows
*/
type Selection struct {
	Bounds    map[string]Bound    // numeric label -> allowed open interval
	BadValues map[string][]string // categorical label -> disallowed values
}

func (l *Library) validate(sel Selection) error {
	s := l.labels.schema
	for n, b := range sel.Bounds {
		if !s.IsNumeric(n) {
			return &InvalidBoundsError{n, "not a numeric label"}
		}
		if math.IsNaN(b.Min) || math.IsNaN(b.Max) || !(b.Min < b.Max) {
			return &InvalidBoundsError{n, "min must be less than max"}
		}
	}
	for n := range sel.BadValues {
		if !s.IsCategorical(n) {
			return &InvalidBoundsError{n, "not a categorical label"}
		}
	}
	return nil
}

/*
Select masks out rows violating any bound or carrying a bad value. Rows
masked out before remain masked out. With delete, every masked out row is
dropped from the library and the mask is reset.
*/
func (l *Library) Select(sel Selection, delete bool) error {
	if err := l.validate(sel); err != nil {
		return err
	}
	for n, b := range sel.Bounds {
		col, _ := l.labels.Float(n)
		for i, v := range col {
			if !b.Contains(v) {
				l.mask[i] = false
			}
		}
	}
	for n, bad := range sel.BadValues {
		col, _ := l.labels.Strings(n)
		set := map[string]bool{}
		for _, v := range bad {
			set[v] = true
		}
		for i, v := range col {
			if set[v] {
				l.mask[i] = false
			}
		}
	}
	l.version++
	if delete {
		l.drop()
	}
	return nil
}

func (l *Library) drop() {
	keep := l.TrainingIndices()
	l.flux = rows(l.flux, keep)
	if l.snr != nil {
		l.snr = rows(l.snr, keep)
	}
	l.labels = l.labels.Subset(keep)
	l.ResetMask()
}

func (l *Library) check(idx []int) error {
	for _, i := range idx {
		if i < 0 || i >= len(l.mask) {
			return zorros.Errorf("row index %d is out of range [0,%d)", i, len(l.mask))
		}
	}
	return nil
}

// LeaveOut masks out library rows idx
func (l *Library) LeaveOut(idx ...int) error {
	if err := l.check(idx); err != nil {
		return err
	}
	for _, i := range idx {
		l.mask[i] = false
	}
	l.version++
	return nil
}

// Restore masks in library rows idx
func (l *Library) Restore(idx ...int) error {
	if err := l.check(idx); err != nil {
		return err
	}
	for _, i := range idx {
		l.mask[i] = true
	}
	l.version++
	return nil
}

// ResetMask includes every row
func (l *Library) ResetMask() {
	l.mask = make([]bool, l.labels.Len())
	for i := range l.mask {
		l.mask[i] = true
	}
	l.version++
}

// Mask returns a copy of the inclusion mask
func (l *Library) Mask() []bool {
	return append([]bool(nil), l.mask...)
}

/*
Version changes every time the mask or the spectra change, a fit made at
another version is stale
*/
func (l *Library) Version() uint64 {
	return l.version
}

// TrainingIndices returns library indices of masked in rows
func (l *Library) TrainingIndices() []int {
	idx := make([]int, 0, len(l.mask))
	for i, m := range l.mask {
		if m {
			idx = append(idx, i)
		}
	}
	return idx
}

func (l *Library) NTrain() int {
	n := 0
	for _, m := range l.mask {
		if m {
			n++
		}
	}
	return n
}

// Training returns the live projection of masked in rows
func (l *Library) Training() View {
	return View{l}
}

/*
View is the training projection of a library. It evaluates the mask on
every call, so it follows later mask changes.
*/
type View struct {
	lib *Library
}

func (v View) Len() int {
	return v.lib.NTrain()
}

func (v View) Indices() []int {
	return v.lib.TrainingIndices()
}

// Labels copies labels of training rows
func (v View) Labels() *Table {
	return v.lib.labels.Subset(v.Indices())
}

// Points returns training label coordinates in names order
func (v View) Points(names []string) ([][]float64, error) {
	return v.Labels().Points(names)
}

// Flux copies training spectra, nil when there are no training rows
func (v View) Flux() *mat.Dense {
	return rows(v.lib.flux, v.Indices())
}

// SNR copies training SNR, nil without uncertainties or training rows
func (v View) SNR() *mat.Dense {
	if v.lib.snr == nil {
		return nil
	}
	return rows(v.lib.snr, v.Indices())
}

// gonum has no empty matrices, no rows is nil
func rows(m *mat.Dense, idx []int) *mat.Dense {
	if m == nil || len(idx) == 0 {
		return nil
	}
	_, w := m.Dims()
	r := mat.NewDense(len(idx), w, nil)
	for k, i := range idx {
		r.SetRow(k, m.RawRowView(i))
	}
	return r
}
