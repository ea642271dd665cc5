package features

import (
	"go-ml.dev/pkg/psi/fu"
	"go-ml.dev/pkg/psi/library"
	"math"
)

/*
Center maps a label to the value subtracted from it before terms are
evaluated. Absent labels are not centered.
*/
type Center map[string]float64

const SolarTeff = 5777.0

// Solar centers labels on solar values
func Solar() Center {
	return Center{
		library.Teff: SolarTeff,
		library.LogT: math.Log10(SolarTeff),
		library.Logg: 4.438,
		library.FeH:  0,
	}
}

/*
Mean centers every label used by set on its mean over src
*/
func Mean(set Set, src Source) (Center, error) {
	c := Center{}
	for _, n := range set.Labels() {
		col, err := src.Float(n)
		if err != nil {
			return nil, err
		}
		c[n] = fu.Mean(col)
	}
	return c, nil
}

// Restrict returns center entries of labels used by set
func (c Center) Restrict(set Set) Center {
	r := Center{}
	for _, n := range set.Labels() {
		if v, ok := c[n]; ok {
			r[n] = v
		}
	}
	return r
}
