package mapper

import (
	"fmt"
	"math"
	"strings"
)

// ScoreMatrix is a value x candidate grid of match scores. Rows are values
// and columns are candidates, both deduplicated preserving first-seen order.
// Cells default to -Inf (no match possible).
//
// Setting a score for an unknown value or candidate appends a new row or
// column; overrides are allowed to introduce candidates that were not part of
// the input.
type ScoreMatrix[V, C comparable] struct {
	values     []V
	candidates []C
	valueIdx   map[V]int
	candIdx    map[C]int
	grid       [][]float64
}

// NewScoreMatrix creates a matrix filled with -Inf. Duplicate values and
// candidates are discarded.
func NewScoreMatrix[V, C comparable](values []V, candidates []C) *ScoreMatrix[V, C] {
	m := &ScoreMatrix[V, C]{
		valueIdx: make(map[V]int, len(values)),
		candIdx:  make(map[C]int, len(candidates)),
	}

	for _, v := range values {
		if _, ok := m.valueIdx[v]; ok {
			continue
		}

		m.valueIdx[v] = len(m.values)
		m.values = append(m.values, v)
	}

	for _, c := range candidates {
		if _, ok := m.candIdx[c]; ok {
			continue
		}

		m.candIdx[c] = len(m.candidates)
		m.candidates = append(m.candidates, c)
	}

	m.grid = make([][]float64, len(m.values))
	for i := range m.grid {
		m.grid[i] = newRow(len(m.candidates))
	}

	return m
}

func newRow(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = math.Inf(-1)
	}

	return row
}

// Values returns the unique values in order.
func (m *ScoreMatrix[V, C]) Values() []V {
	out := make([]V, len(m.values))
	copy(out, m.values)

	return out
}

// Candidates returns the unique candidates in order.
func (m *ScoreMatrix[V, C]) Candidates() []C {
	out := make([]C, len(m.candidates))
	copy(out, m.candidates)

	return out
}

// Size returns the total number of cells.
func (m *ScoreMatrix[V, C]) Size() int {
	return len(m.values) * len(m.candidates)
}

// Score returns the score for (value, candidate). The second return is false
// if either is not part of the matrix.
func (m *ScoreMatrix[V, C]) Score(value V, candidate C) (float64, bool) {
	i, ok := m.valueIdx[value]
	if !ok {
		return 0, false
	}

	j, ok := m.candIdx[candidate]
	if !ok {
		return 0, false
	}

	return m.grid[i][j], true
}

// Set assigns a score, appending a new row or column if value or candidate is
// unknown.
func (m *ScoreMatrix[V, C]) Set(value V, candidate C, score float64) {
	m.grid[m.rowIndex(value)][m.colIndex(candidate)] = score
}

// SetRow assigns a score to every cell in the value's row, appending a new
// row if the value is unknown.
func (m *ScoreMatrix[V, C]) SetRow(value V, score float64) {
	row := m.grid[m.rowIndex(value)]
	for j := range row {
		row[j] = score
	}
}

func (m *ScoreMatrix[V, C]) rowIndex(value V) int {
	i, ok := m.valueIdx[value]
	if !ok {
		i = len(m.values)
		m.valueIdx[value] = i
		m.values = append(m.values, value)
		m.grid = append(m.grid, newRow(len(m.candidates)))
	}

	return i
}

func (m *ScoreMatrix[V, C]) colIndex(candidate C) int {
	j, ok := m.candIdx[candidate]
	if !ok {
		j = len(m.candidates)
		m.candIdx[candidate] = j
		m.candidates = append(m.candidates, candidate)

		for i := range m.grid {
			m.grid[i] = append(m.grid[i], math.Inf(-1))
		}
	}

	return j
}

// FiniteValues returns the values whose rows contain no ±Inf cell, in matrix
// order. These are the values eligible for unmapped reporting: everything
// else was either forced or forbidden.
func (m *ScoreMatrix[V, C]) FiniteValues() []V {
	var out []V

	for i, v := range m.values {
		finite := true

		for _, s := range m.grid[i] {
			if math.IsInf(s, 0) {
				finite = false

				break
			}
		}

		if finite {
			out = append(out, v)
		}
	}

	return out
}

// Records returns one record per cell in row-major order.
func (m *ScoreMatrix[V, C]) Records() []Record[V, C] {
	out := make([]Record[V, C], 0, m.Size())

	for i, v := range m.values {
		for j, c := range m.candidates {
			out = append(out, Record[V, C]{Value: v, Candidate: c, Score: m.grid[i][j]})
		}
	}

	return out
}

// String renders the matrix as a table with values as rows and candidates as
// columns.
func (m *ScoreMatrix[V, C]) String() string {
	header := make([]string, 0, len(m.candidates)+1)
	header = append(header, "v/c")

	for _, c := range m.candidates {
		header = append(header, fmt.Sprint(c))
	}

	rows := make([][]string, 0, len(m.values))
	width := 0

	for _, h := range header {
		width = max(width, len(h))
	}

	for i, v := range m.values {
		row := make([]string, 0, len(m.candidates)+1)
		row = append(row, fmt.Sprint(v))

		for _, s := range m.grid[i] {
			row = append(row, fmt.Sprintf("%.2f", s))
		}

		for _, cell := range row {
			width = max(width, len(cell))
		}

		rows = append(rows, row)
	}

	var sb strings.Builder

	headerCells := make([]string, len(header))
	for i, h := range header {
		headerCells[i] = fmt.Sprintf("%-*s", width, h)
	}

	sb.WriteString(strings.Join(headerCells, " ┃ "))
	sb.WriteByte('\n')

	lineCells := make([]string, len(headerCells))
	for i, h := range headerCells {
		lineCells[i] = strings.Repeat("━", len([]rune(h)))
	}

	sb.WriteString(strings.Join(lineCells, "━╋━"))

	for _, row := range rows {
		sb.WriteByte('\n')

		cells := make([]string, len(row))
		cells[0] = fmt.Sprintf("%-*s", width, row[0])

		for i := 1; i < len(row); i++ {
			cells[i] = fmt.Sprintf("%*s", width, row[i])
		}

		sb.WriteString(strings.Join(cells, " ┃ "))
	}

	return sb.String()
}
