package library

import (
	"go-ml.dev/pkg/zorros"
)

/*
Table is a columnar set of complete label records
*/
type Table struct {
	schema *Schema
	ids    []string
	num    [][]float64
	cat    [][]string
}

/*
NewTable stores records column by column. Every numeric label must be
present in every record.
*/
func NewTable(s *Schema, records []Record) (*Table, error) {
	t := empty(s, len(records))
	for j, r := range records {
		if r.schema != s {
			return nil, zorros.Errorf("record %d belongs to another schema", j)
		}
		if err := r.complete(); err != nil {
			return nil, err
		}
		t.ids[j] = r.ID
		for i := range s.numeric {
			t.num[i][j] = r.values[i]
		}
		for i := range s.categorical {
			t.cat[i][j] = r.cats[i]
		}
	}
	return t, nil
}

/*
TableFromColumns builds a table from named columns. Missing derived columns
are computed, missing categorical columns are empty strings.
*/
func TableFromColumns(s *Schema, ids []string, num map[string][]float64, cat map[string][]string) (*Table, error) {
	n := len(ids)
	t := empty(s, n)
	copy(t.ids, ids)
	for name, col := range num {
		i, ok := s.nindex[name]
		if !ok {
			return nil, &UnknownLabelError{name}
		}
		if len(col) != n {
			return nil, zorros.Errorf("column `%v` has %d values, expected %d", name, len(col), n)
		}
		copy(t.num[i], col)
	}
	for name, col := range cat {
		i, ok := s.cindex[name]
		if !ok {
			return nil, &UnknownLabelError{name}
		}
		if len(col) != n {
			return nil, zorros.Errorf("column `%v` has %d values, expected %d", name, len(col), n)
		}
		copy(t.cat[i], col)
	}
	for i, name := range s.numeric {
		if _, ok := num[name]; ok {
			continue
		}
		d, ok := derivations[name]
		if !ok {
			return nil, &MissingLabelError{name}
		}
		src, ok := num[d.from]
		if !ok {
			return nil, &MissingLabelError{name}
		}
		for j, v := range src {
			t.num[i][j] = d.f(v)
		}
	}
	return t, nil
}

func empty(s *Schema, n int) *Table {
	t := &Table{
		schema: s,
		ids:    make([]string, n),
		num:    make([][]float64, len(s.numeric)),
		cat:    make([][]string, len(s.categorical)),
	}
	for i := range t.num {
		t.num[i] = make([]float64, n)
	}
	for i := range t.cat {
		t.cat[i] = make([]string, n)
	}
	return t
}

func (t *Table) Len() int {
	return len(t.ids)
}

func (t *Table) Schema() *Schema {
	return t.schema
}

func (t *Table) IDs() []string {
	return append([]string(nil), t.ids...)
}

/*
Float returns the column of numeric label name. The slice is shared
with the table and must not be modified.
*/
func (t *Table) Float(name string) ([]float64, error) {
	i, ok := t.schema.nindex[name]
	if !ok {
		return nil, &UnknownLabelError{name}
	}
	return t.num[i], nil
}

/*
Strings returns the column of categorical label name. The slice is shared
with the table and must not be modified.
*/
func (t *Table) Strings(name string) ([]string, error) {
	i, ok := t.schema.cindex[name]
	if !ok {
		return nil, &UnknownLabelError{name}
	}
	return t.cat[i], nil
}

// Record returns row j as a record
func (t *Table) Record(j int) Record {
	s := t.schema
	r := Record{
		ID:     t.ids[j],
		schema: s,
		values: make([]float64, len(s.numeric)),
		has:    make([]bool, len(s.numeric)),
		cats:   make([]string, len(s.categorical)),
	}
	for i := range s.numeric {
		r.values[i] = t.num[i][j]
		r.has[i] = true
	}
	for i := range s.categorical {
		r.cats[i] = t.cat[i][j]
	}
	return r
}

// Subset copies rows idx into a new table
func (t *Table) Subset(idx []int) *Table {
	q := empty(t.schema, len(idx))
	for k, j := range idx {
		q.ids[k] = t.ids[j]
		for i := range q.num {
			q.num[i][k] = t.num[i][j]
		}
		for i := range q.cat {
			q.cat[i][k] = t.cat[i][j]
		}
	}
	return q
}

/*
Points returns an n×len(names) row-major matrix of label values,
the label cloud used by hull tests
*/
func (t *Table) Points(names []string) ([][]float64, error) {
	cols := make([][]float64, len(names))
	for k, n := range names {
		c, err := t.Float(n)
		if err != nil {
			return nil, err
		}
		cols[k] = c
	}
	p := make([][]float64, t.Len())
	for j := range p {
		p[j] = make([]float64, len(names))
		for k := range names {
			p[j][k] = cols[k][j]
		}
	}
	return p, nil
}
