/*
Package sparse implements a sparse matrix type for automaton tables
(transition and action tables). Every cell holds up to two int32 values, so
that a single table position can carry both actions of an unresolved
shift/reduce or reduce/reduce conflict.

Cells are stored as sorted COO triplets (row, column, pair).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package sparse

import "fmt"

// DefaultNullValue is the default empty-cell marker (min int32).
const DefaultNullValue = -2147483648

// IntMatrix is a sparse m x n matrix of int32 cells. Construct with
//
//	M := sparse.NewIntMatrix(10, 10, sparse.DefaultNullValue)
//
// Put sets a cell, Append adds a secondary value to a cell, At and PairAt
// read it back. Cells cannot be deleted, but may be overwritten with the
// null value.
type IntMatrix struct {
	cells   []cell
	rows    int
	columns int
	nullval int32
}

type cell struct {
	row, col int
	a, b     int32
}

// NewIntMatrix creates a sparse matrix of the given extent. The last
// argument marks empty cells; use DefaultNullValue unless the value domain
// needs it.
func NewIntMatrix(rows, columns int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		rows:    rows,
		columns: columns,
		nullval: nullValue,
	}
}

// Rows returns the row count.
func (m *IntMatrix) Rows() int { return m.rows }

// Columns returns the column count.
func (m *IntMatrix) Columns() int { return m.columns }

// NullValue returns the empty-cell marker of this matrix.
func (m *IntMatrix) NullValue() int32 { return m.nullval }

// CellCount returns the number of occupied cells.
func (m *IntMatrix) CellCount() int { return len(m.cells) }

// At returns the primary value at (i,j), or the null value.
func (m *IntMatrix) At(i, j int) int32 {
	a, _ := m.PairAt(i, j)
	return a
}

// PairAt returns both values at (i,j); unset slots read as the null value.
func (m *IntMatrix) PairAt(i, j int) (int32, int32) {
	if at, found := m.locate(i, j); found {
		return m.cells[at].a, m.cells[at].b
	}
	return m.nullval, m.nullval
}

// Put sets the cell at (i,j) to a single value, dropping any secondary one.
func (m *IntMatrix) Put(i, j int, value int32) *IntMatrix {
	at, found := m.locate(i, j)
	if found {
		m.cells[at].a, m.cells[at].b = value, m.nullval
		return m
	}
	m.insert(at, cell{row: i, col: j, a: value, b: m.nullval})
	return m
}

// Append adds a value to the cell at (i,j): into the primary slot if the
// cell is empty, into the secondary slot otherwise. A full cell has its
// secondary slot overwritten.
func (m *IntMatrix) Append(i, j int, value int32) *IntMatrix {
	at, found := m.locate(i, j)
	if !found {
		m.insert(at, cell{row: i, col: j, a: value, b: m.nullval})
		return m
	}
	if m.cells[at].a == m.nullval {
		m.cells[at].a = value
	} else {
		m.cells[at].b = value
	}
	return m
}

// locate finds the insertion position for (i,j) in row-major cell order,
// and whether a cell is already stored there.
func (m *IntMatrix) locate(i, j int) (int, bool) {
	lo, hi := 0, len(m.cells)
	for lo < hi {
		mid := (lo + hi) / 2
		c := m.cells[mid]
		if c.row < i || (c.row == i && c.col < j) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	found := lo < len(m.cells) && m.cells[lo].row == i && m.cells[lo].col == j
	return lo, found
}

func (m *IntMatrix) insert(at int, c cell) {
	m.cells = append(m.cells, c)
	copy(m.cells[at+1:], m.cells[at:])
	m.cells[at] = c
}

func (c cell) String() string {
	return fmt.Sprintf("(%d,%d)=[%d,%d]", c.row, c.col, c.a, c.b)
}
