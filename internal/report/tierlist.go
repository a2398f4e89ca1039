// Package report renders plain-text views of the guide data for terminals and docs.
package report

import (
	"io"
	"strings"

	"github.com/kapu/wildrift-guide-go/internal/service/guide"
	"github.com/mattn/go-runewidth"
)

// maxCellWidth caps free-text columns; longer values are cut with an ellipsis.
const maxCellWidth = 28

var tierHeader = []string{"Tier", "Champion", "Role", "Difficulty", "Lanes", "Win rate"}

// TierTable lays the tier list out as a markdown table. Cell widths are measured in
// display columns so wide runes line up. Empty tiers are omitted unless keepEmpty is set.
func TierTable(groups []guide.TierGroup, keepEmpty bool) string {
	rows := [][]string{tierHeader}
	for _, g := range groups {
		if len(g.Champions) == 0 {
			if keepEmpty {
				rows = append(rows, []string{g.Tier.String(), "-", "", "", "", ""})
			}
			continue
		}
		for _, c := range g.Champions {
			rows = append(rows, []string{
				g.Tier.String(),
				c.Name,
				c.Role,
				string(c.Difficulty),
				strings.Join(c.Lanes, ", "),
				c.WinRate,
			})
		}
	}
	return renderTable(rows)
}

// WriteTierTable writes TierTable(groups, false) to w.
func WriteTierTable(w io.Writer, groups []guide.TierGroup) error {
	_, err := io.WriteString(w, TierTable(groups, false))
	return err
}

func renderTable(rows [][]string) string {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i := range row {
			row[i] = runewidth.Truncate(row[i], maxCellWidth, "…")
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i, cell := range cells {
			sb.WriteString(" ")
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(rows[0])
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows[1:] {
		writeRow(row)
	}
	return sb.String()
}
