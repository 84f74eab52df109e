package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/graphstat/pkg/pipeline"
	"github.com/matzehuels/graphstat/pkg/search"
	"github.com/matzehuels/graphstat/pkg/stats"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printCounts prints node and edge counts with the cache status on one line.
func printCounts(w io.Writer, nodes, edges int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d nodes", nodes),
		fmt.Sprintf("%d edges", edges),
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Fprintln(w, line+StyleDim.Render(" · ")+statusStyle.Render(status))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStatsText prints the human readable stats summary.
func printStatsText(w io.Writer, source string, s *stats.Stats, cached bool) {
	fmt.Fprintln(w, StyleTitle.Render(source))
	printCounts(w, s.Nodes, s.Edges, cached)
	fmt.Fprintln(w)

	kind := "undirected"
	if s.Directed {
		kind = "directed"
	}
	printKeyValue(w, "kind", kind)
	printKeyValue(w, "diameter", StyleNumber.Render(s.DiameterString()))
	printKeyValue(w, "components", strconv.Itoa(s.Components))
	printKeyValue(w, "max degree", strconv.Itoa(s.MaxDegree))
	printKeyValue(w, "avg degree", strconv.FormatFloat(s.AverageDegree, 'f', 3, 64))
	if s.Ignored > 0 {
		printKeyValue(w, "ignored", StyleWarning.Render(strconv.Itoa(s.Ignored)))
	}
	printKeyValue(w, "method", string(s.Method))
	if s.Method == stats.MethodStrip {
		printKeyValue(w, "core nodes", strconv.Itoa(s.CoreNodes))
	}
	printKeyValue(w, "searches", strconv.Itoa(s.Searches))
	printKeyValue(w, "elapsed", s.Elapsed.Round(time.Microsecond).String())

	if len(s.DegreeHistogram) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, degreeTable(s.DegreeHistogram))
	}
}

// maxHistogramRows bounds the printed degree table. The remaining buckets
// are summed into a final "more" row.
const maxHistogramRows = 12

// degreeTable renders the degree histogram, skipping empty buckets.
func degreeTable(hist []int) string {
	var rows [][]string
	tail := 0
	for d, n := range hist {
		if n == 0 {
			continue
		}
		if len(rows) == maxHistogramRows-1 {
			tail += n
			continue
		}
		rows = append(rows, []string{strconv.Itoa(d), strconv.Itoa(n)})
	}
	if tail > 0 {
		rows = append(rows, []string{"more", strconv.Itoa(tail)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("degree", "nodes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1).Align(lipgloss.Right)
		}).
		Render()
}

// =============================================================================
// Distance Display
// =============================================================================

// printDistanceText prints a distance report. With all set, every reached
// node is listed with its distance.
func printDistanceText(w io.Writer, rep *pipeline.DistanceReport, all bool) {
	printKeyValue(w, "origin", strconv.Itoa(rep.Origin))
	printKeyValue(w, "method", rep.Method)
	printKeyValue(w, "reached", fmt.Sprintf("%d of %d", rep.Reached, len(rep.Distances)))
	printKeyValue(w, "eccentricity", StyleNumber.Render(strconv.Itoa(rep.Eccentricity)))
	printKeyValue(w, "farthest", strconv.Itoa(rep.Farthest))
	if !all {
		return
	}

	fmt.Fprintln(w)
	var b strings.Builder
	for v, d := range rep.Distances {
		if d == search.Unreached {
			continue
		}
		fmt.Fprintf(&b, "%d\t%d\n", v, d)
	}
	fmt.Fprint(w, b.String())
}
