package main

import (
	"fmt"

	"github.com/aslwire/aslmirror/pkg/materialize"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

// newPlainTable creates a table with alternating row styles. Columns after the first
// two are right-aligned, since they hold numbers.
func newPlainTable() *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if row < 0 {
				s = headerRowStyle
				return
			}
			if row%2 == 0 {
				s = oddRowStyle
			} else {
				s = evenRowStyle
			}
			if col < 2 {
				s = s.Align(lipgloss.Left)
			} else {
				s = s.Align(lipgloss.Right)
			}
			return
		})
}

// summaryTable lists the images written per label, followed by the totals.
func summaryTable(report *materialize.Report) *lgtable.Table {
	table := newPlainTable()
	table.Headers("Label", "Folder", "Copied", "Mirrored", "Size")
	for _, l := range report.Labels {
		table.Row(l.Label, l.Folder, humanize.Comma(int64(l.Copied)), humanize.Comma(int64(l.Flipped)),
			humanize.IBytes(uint64(l.Bytes)))
	}
	table.Row("total", fmt.Sprintf("%d folders", len(report.Labels)),
		humanize.Comma(int64(report.Copied())), humanize.Comma(int64(report.Flipped())),
		humanize.IBytes(uint64(report.Bytes())))
	return table
}

func printSummary(report *materialize.Report) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("%s -> %s (%s)", report.SourceDir, report.DestDir, report.Elapsed)))
	fmt.Println(summaryTable(report).Render())
}
