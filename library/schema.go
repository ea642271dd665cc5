package library

import (
	"go-ml.dev/pkg/zorros"
	"math"
)

const (
	Teff = "teff"
	LogT = "logt"
	Logg = "logg"
	FeH  = "feh"
)

type derivation struct {
	from string
	f    func(float64) float64
}

// labels computed from other labels when they are not supplied
var derivations = map[string]derivation{
	LogT: {Teff, math.Log10},
}

/*
Schema is a fixed set of numeric and categorical label names
shared by every record of a library
*/
type Schema struct {
	numeric     []string
	categorical []string
	nindex      map[string]int
	cindex      map[string]int
}

/*
NewSchema creates a schema. When teff is declared and logt is not, logt is
appended as a derived numeric label.
*/
func NewSchema(numeric, categorical []string) (*Schema, error) {
	s := &Schema{
		nindex: map[string]int{},
		cindex: map[string]int{},
	}
	add := func(n string, idx map[string]int, names *[]string) error {
		if n == "" {
			return zorros.Errorf("empty label name")
		}
		if _, ok := s.nindex[n]; ok {
			return zorros.Errorf("label `%v` is declared twice", n)
		}
		if _, ok := s.cindex[n]; ok {
			return zorros.Errorf("label `%v` is declared twice", n)
		}
		idx[n] = len(*names)
		*names = append(*names, n)
		return nil
	}
	for _, n := range numeric {
		if err := add(n, s.nindex, &s.numeric); err != nil {
			return nil, err
		}
	}
	for _, n := range categorical {
		if err := add(n, s.cindex, &s.categorical); err != nil {
			return nil, err
		}
	}
	for n, d := range derivations {
		if _, ok := s.nindex[n]; !ok {
			if _, ok := s.nindex[d.from]; ok {
				s.nindex[n] = len(s.numeric)
				s.numeric = append(s.numeric, n)
			}
		}
	}
	return s, nil
}

// Numeric returns numeric label names in schema order
func (s *Schema) Numeric() []string {
	return append([]string(nil), s.numeric...)
}

// Categorical returns categorical label names in schema order
func (s *Schema) Categorical() []string {
	return append([]string(nil), s.categorical...)
}

func (s *Schema) IsNumeric(name string) bool {
	_, ok := s.nindex[name]
	return ok
}

func (s *Schema) IsCategorical(name string) bool {
	_, ok := s.cindex[name]
	return ok
}

/*
Record converts key-value labels into a record. Unknown names fail with
UnknownLabelError. Numeric labels may be omitted; an omitted derived label
is computed from its source when the source is present.
*/
func (s *Schema) Record(id string, values map[string]float64, cats map[string]string) (Record, error) {
	r := Record{
		ID:     id,
		schema: s,
		values: make([]float64, len(s.numeric)),
		has:    make([]bool, len(s.numeric)),
		cats:   make([]string, len(s.categorical)),
	}
	for n, v := range values {
		i, ok := s.nindex[n]
		if !ok {
			return Record{}, &UnknownLabelError{n}
		}
		r.values[i] = v
		r.has[i] = true
	}
	for n, v := range cats {
		i, ok := s.cindex[n]
		if !ok {
			return Record{}, &UnknownLabelError{n}
		}
		r.cats[i] = v
	}
	for n, d := range derivations {
		i, ok := s.nindex[n]
		if !ok || r.has[i] {
			continue
		}
		if j, ok := s.nindex[d.from]; ok && r.has[j] {
			r.values[i] = d.f(r.values[j])
			r.has[i] = true
		}
	}
	return r, nil
}

/*
Record is a single label vector bound to a schema
*/
type Record struct {
	ID     string
	schema *Schema
	values []float64
	has    []bool
	cats   []string
}

func (r Record) Schema() *Schema {
	return r.schema
}

// Has reports whether the record carries a value for numeric label name
func (r Record) Has(name string) bool {
	if r.schema == nil {
		return false
	}
	i, ok := r.schema.nindex[name]
	return ok && r.has[i]
}

func (r Record) Value(name string) (float64, error) {
	if r.schema == nil {
		return 0, &MissingLabelError{name}
	}
	i, ok := r.schema.nindex[name]
	if !ok {
		return 0, &UnknownLabelError{name}
	}
	if !r.has[i] {
		return 0, &MissingLabelError{name}
	}
	return r.values[i], nil
}

func (r Record) Category(name string) (string, error) {
	if r.schema == nil {
		return "", &MissingLabelError{name}
	}
	i, ok := r.schema.cindex[name]
	if !ok {
		return "", &UnknownLabelError{name}
	}
	return r.cats[i], nil
}

// Len is always 1, a record is a single row source of the design matrix
func (r Record) Len() int {
	return 1
}

// Float returns the one-element column of label name
func (r Record) Float(name string) ([]float64, error) {
	v, err := r.Value(name)
	if err != nil {
		return nil, err
	}
	return []float64{v}, nil
}

/*
Flatten returns label values in the order of names
*/
func (r Record) Flatten(names []string) ([]float64, error) {
	x := make([]float64, len(names))
	for i, n := range names {
		v, err := r.Value(n)
		if err != nil {
			return nil, err
		}
		x[i] = v
	}
	return x, nil
}

// Map returns numeric labels present in the record
func (r Record) Map() map[string]float64 {
	m := map[string]float64{}
	if r.schema == nil {
		return m
	}
	for i, n := range r.schema.numeric {
		if r.has[i] {
			m[n] = r.values[i]
		}
	}
	return m
}

// Categories returns categorical labels of the record
func (r Record) Categories() map[string]string {
	m := map[string]string{}
	if r.schema == nil {
		return m
	}
	for i, n := range r.schema.categorical {
		m[n] = r.cats[i]
	}
	return m
}

func (r Record) complete() error {
	for i, n := range r.schema.numeric {
		if !r.has[i] {
			return &MissingLabelError{n}
		}
	}
	return nil
}
