/*
Package features builds polynomial design matrices from stellar labels
*/
package features

import (
	"go-ml.dev/pkg/psi/library"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
	"strconv"
	"strings"
)

/*
Term is a product of labels, a label repeated n times is raised to power n
*/
type Term []string

/*
Parse parses a term written as factors joined by `*`, each factor is a label
optionally raised to a positive integer power, e.g. `logt^2*feh`
*/
func Parse(s string) (Term, error) {
	var t Term
	for _, f := range strings.Split(s, "*") {
		f = strings.TrimSpace(f)
		name, pow := f, 1
		if i := strings.IndexByte(f, '^'); i >= 0 {
			p, err := strconv.Atoi(strings.TrimSpace(f[i+1:]))
			if err != nil || p < 1 {
				return nil, zorros.Errorf("bad power in term `%v`", s)
			}
			name, pow = strings.TrimSpace(f[:i]), p
		}
		if name == "" {
			return nil, zorros.Errorf("empty factor in term `%v`", s)
		}
		for k := 0; k < pow; k++ {
			t = append(t, name)
		}
	}
	return t, nil
}

// String writes the term back in the form Parse reads
func (t Term) String() string {
	var b strings.Builder
	for i := 0; i < len(t); {
		j := i
		for j < len(t) && t[j] == t[i] {
			j++
		}
		if b.Len() > 0 {
			b.WriteByte('*')
		}
		b.WriteString(t[i])
		if j-i > 1 {
			b.WriteByte('^')
			b.WriteString(strconv.Itoa(j - i))
		}
		i = j
	}
	return b.String()
}

/*
Set is an ordered list of terms. The design matrix has a bias column
followed by one column per term in this order.
*/
type Set []Term

/*
ParseSet parses every string with Parse
*/
func ParseSet(ss ...string) (Set, error) {
	set := make(Set, len(ss))
	for i, s := range ss {
		t, err := Parse(s)
		if err != nil {
			return nil, err
		}
		set[i] = t
	}
	return set, nil
}

// MustParseSet is ParseSet panicking on error
func MustParseSet(ss ...string) Set {
	set, err := ParseSet(ss...)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return set
}

// Width is the number of design matrix columns
func (s Set) Width() int {
	return len(s) + 1
}

// Labels returns distinct labels used by terms in order of first use
func (s Set) Labels() []string {
	seen := map[string]bool{}
	var r []string
	for _, t := range s {
		for _, n := range t {
			if !seen[n] {
				seen[n] = true
				r = append(r, n)
			}
		}
	}
	return r
}

func (s Set) Strings() []string {
	r := make([]string, len(s))
	for i, t := range s {
		r[i] = t.String()
	}
	return r
}

// Validate checks every term label is a numeric schema label
func (s Set) Validate(schema *library.Schema) error {
	for i, t := range s {
		if len(t) == 0 {
			return zorros.Errorf("term %d is empty", i)
		}
		for _, n := range t {
			if !schema.IsNumeric(n) {
				return &library.UnknownLabelError{Label: n}
			}
		}
	}
	return nil
}

/*
Source is a columnar source of label values, *library.Table for training
and library.Record for prediction
*/
type Source interface {
	Len() int
	Float(name string) ([]float64, error)
}

/*
DesignMatrix returns the Len()×Width() design matrix of src: column 0 is 1,
column k is the product of term k-1 labels centered by center.
*/
func DesignMatrix(set Set, src Source, center Center) (*mat.Dense, error) {
	n := src.Len()
	if n == 0 {
		return nil, zorros.Errorf("no rows to build design matrix")
	}
	cols := map[string][]float64{}
	for _, name := range set.Labels() {
		c, err := src.Float(name)
		if err != nil {
			return nil, err
		}
		if off := center[name]; off != 0 {
			q := make([]float64, n)
			for i, v := range c {
				q[i] = v - off
			}
			c = q
		}
		cols[name] = c
	}
	x := mat.NewDense(n, set.Width(), nil)
	for i := 0; i < n; i++ {
		row := x.RawRowView(i)
		row[0] = 1
		for k, t := range set {
			p := 1.0
			for _, name := range t {
				p *= cols[name][i]
			}
			row[k+1] = p
		}
	}
	return x, nil
}

/*
Row returns the design vector of a single record
*/
func Row(set Set, r library.Record, center Center) ([]float64, error) {
	x, err := DesignMatrix(set, r, center)
	if err != nil {
		return nil, err
	}
	return x.RawRowView(0), nil
}
