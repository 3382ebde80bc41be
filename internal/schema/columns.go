package schema

// Column describes one read-only table column: Accessor is the key looked up
// in each row's value map, Header the rendered heading.
type Column struct {
	Accessor string
	Header   string
}

// Cols builds a column list from bare accessor strings, using the accessor
// itself as the header.
func Cols(accessors ...string) []Column {
	cols := make([]Column, len(accessors))
	for i, a := range accessors {
		cols[i] = Column{Accessor: a, Header: a}
	}
	return cols
}

// Action is a row-scoped side-effecting button. The table observes no return
// contract from Handler.
type Action struct {
	Label   string
	Handler func(row Values)
}
