/*
Package sparse implements a simple type for sparse integer matrices.
It is used for the parser tables of clrsim (GOTO-table and ACTION-table).

This implementation uses the COO format (a.k.a. triplet-encoding), with
triplets kept in row-major order. Lookups are binary searches.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The clrsim Authors

*/
package sparse

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// IntMatrix is a type for a sparse matrix of int32 values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value, returns -1
//     v := M.Value(2, 3)             // returns 4711
//     old := M.Set(2, 3, 17)         // overwrite, returns 4711
//     cnt := M.ValueCount()          // returns 1 (one position set)
//     v = M.Value(10, 10)            // returns -1, i.e. the null-value
//
// Setting a position to the null-value removes it.
type IntMatrix struct {
	values  []triplet // sorted by (row, col)
	rowcnt  int
	colcnt  int
	nullval int32
}

type triplet struct {
	row, col int
	value    int32
}

func (t triplet) before(row, col int) bool {
	return t.row < row || (t.row == row && t.col < col)
}

// NewIntMatrix creates a new matrix for int32, size m x n. The 3rd argument is a
// null-value, indicating empty entries (use DefaultNullValue if you haven't
// any specific requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// NullValue returns this matrix' null value.
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of non-null positions.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

func (m *IntMatrix) inRange(i, j int) bool {
	return i >= 0 && i < m.rowcnt && j >= 0 && j < m.colcnt
}

// search returns the insertion index for (i, j) and whether (i, j) is set.
func (m *IntMatrix) search(i, j int) (int, bool) {
	k := sort.Search(len(m.values), func(k int) bool {
		return !m.values[k].before(i, j)
	})
	return k, k < len(m.values) && m.values[k].row == i && m.values[k].col == j
}

// Value returns the value at position (i,j), or the null-value.
func (m *IntMatrix) Value(i, j int) int32 {
	if !m.inRange(i, j) {
		return m.nullval
	}
	if k, found := m.search(i, j); found {
		return m.values[k].value
	}
	return m.nullval
}

// Set sets the value at position (i,j) and returns the value previously
// stored there (possibly the null-value). Positions out of range are ignored.
func (m *IntMatrix) Set(i, j int, value int32) int32 {
	if !m.inRange(i, j) {
		return m.nullval
	}
	k, found := m.search(i, j)
	switch {
	case found && value == m.nullval:
		old := m.values[k].value
		m.values = append(m.values[:k], m.values[k+1:]...)
		return old
	case found:
		old := m.values[k].value
		m.values[k].value = value
		return old
	case value == m.nullval:
		return m.nullval
	}
	m.values = append(m.values, triplet{})
	copy(m.values[k+1:], m.values[k:])
	m.values[k] = triplet{row: i, col: j, value: value}
	return m.nullval
}

// Row calls f for every non-null value of row i, in column order.
func (m *IntMatrix) Row(i int, f func(col int, value int32)) {
	k, _ := m.search(i, 0)
	for ; k < len(m.values) && m.values[k].row == i; k++ {
		f(m.values[k].col, m.values[k].value)
	}
}

// String renders the non-null entries, one row per line. Mainly for
// debugging.
func (m *IntMatrix) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("IntMatrix %dx%d:\n", m.rowcnt, m.colcnt))
	row := -1
	for _, t := range m.values {
		if t.row != row {
			if row >= 0 {
				b.WriteString("\n")
			}
			row = t.row
			b.WriteString(fmt.Sprintf("%4d:", row))
		}
		b.WriteString(fmt.Sprintf(" [%d]=%d", t.col, t.value))
	}
	if row >= 0 {
		b.WriteString("\n")
	}
	return b.String()
}
