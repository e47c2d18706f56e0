package render

// Grid tiles n equally sized surfaces left to right, wrapping after Columns.
type Grid struct {
	Columns, Rows int
}

// NewGrid never returns more columns than surfaces; columns <= 0 means one.
func NewGrid(n, columns int) Grid {
	if columns <= 0 {
		columns = 1
	}
	if n <= 0 {
		return Grid{Columns: columns}
	}
	columns = min(columns, n)
	return Grid{Columns: columns, Rows: (n + columns - 1) / columns}
}

// Slot returns the column and row of surface i.
func (g Grid) Slot(i int) (col, row int) {
	return i % g.Columns, i / g.Columns
}
