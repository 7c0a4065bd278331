// Package report formats AFK-point results as CSV rows.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"afkfinder/internal/optimize"
)

// Header is the fixed CSV column order.
func Header() []string {
	return []string{
		"type", "afkX", "afkY", "afkZ",
		"netherX", "netherY", "netherZ",
		"placeBlockX", "placeBlockY", "placeBlockZ",
		"totalCovered", "count", "monuments",
	}
}

// afkY is fixed at the midpoint of the monument y-range [39, 61].
const afkY = 50

// Row is one result line: a group type tag, an optimized AFK point, its
// coverage total, and the monument centers it was computed from.
type Row struct {
	Type            string
	X, Z            int
	TotalCovered    int
	MonumentCenters [][2]int
}

// RowFromResult builds a Row from a CoverageOptimizer result, pulling
// monument centers from the group's members under the given center offset.
func RowFromResult(groupType string, centerOffset int, r optimize.Result) Row {
	centers := make([][2]int, len(r.Group.Members))
	for i, m := range r.Group.Members {
		cx, cz := m.Center(centerOffset)
		centers[i] = [2]int{cx, cz}
	}
	return Row{Type: groupType, X: r.X, Z: r.Z, TotalCovered: r.Total, MonumentCenters: centers}
}

// roundDiv8 computes the nether-coordinate projection round(overworld/8).
func roundDiv8(v int) int {
	return int(math.Round(float64(v) / 8))
}

// Fields renders the row in Header's column order.
func (row Row) Fields() []string {
	placeBlockY := afkY - 1
	return []string{
		row.Type,
		strconv.Itoa(row.X), strconv.Itoa(afkY), strconv.Itoa(row.Z),
		strconv.Itoa(roundDiv8(row.X)), strconv.Itoa(roundDiv8(afkY)), strconv.Itoa(roundDiv8(row.Z)),
		strconv.Itoa(row.X), strconv.Itoa(placeBlockY), strconv.Itoa(row.Z),
		strconv.Itoa(row.TotalCovered), strconv.Itoa(len(row.MonumentCenters)),
		formatMonuments(row.MonumentCenters),
	}
}

func formatMonuments(centers [][2]int) string {
	parts := make([]string, len(centers))
	for i, c := range centers {
		parts[i] = fmt.Sprintf("(%d,%d)", c[0], c[1])
	}
	return strings.Join(parts, ";")
}

// WriteCSV writes the header followed by one line per row. encoding/csv
// quotes the monuments field automatically whenever it contains a comma,
// so no hand-rolled quoting logic is needed.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return fmt.Errorf("report: writing header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Fields()); err != nil {
			return fmt.Errorf("report: writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
