package schema

// ColumnKind is the coarse type family of a canonical column.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInteger
)

type Table struct {
	Name    string
	Columns []*Column
}

type Column struct {
	Name string
	Kind ColumnKind
	IsPK bool
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
