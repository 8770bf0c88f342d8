package output

import (
	"fmt"
	"strings"

	"github.com/smarlhens/riri-node-tools/internal/domain/commands"
	"github.com/smarlhens/riri-node-tools/internal/domain/entities"
)

// RenderPinReports renders one table per manifest plus a summary line.
func RenderPinReports(reports []commands.PinReport, update bool) string {
	var b strings.Builder
	pinned, failed := 0, 0

	for _, report := range reports {
		tbl := NewTable("DEPENDENCY", "SECTION", "FROM", "TO", "STATUS")
		for _, result := range report.Results {
			tbl.Row(pinRow(result)...)
			if result.Changed() {
				pinned++
			}
			if result.Err != nil {
				failed++
			}
		}

		b.WriteString(StyleNoun.Render(report.ManifestPath))
		b.WriteString(StyleDim.Render(" (" + report.PackageManager + ")"))
		b.WriteString("\n")
		if tbl.Empty() {
			b.WriteString(StyleDim.Render("no dependencies") + "\n")
		} else {
			b.WriteString(tbl.String() + "\n")
		}
	}

	verb := "would pin"
	if update {
		verb = "pinned"
	}
	b.WriteString(StyleSummary.Render(
		fmt.Sprintf("%s %d dependencies, %d failed", verb, pinned, failed),
	))
	b.WriteString("\n")
	return b.String()
}

func pinRow(result entities.PinResult) []string {
	entry := result.Entry
	switch {
	case result.Err != nil:
		return []string{
			entry.Name, entry.Section, entry.Range, "",
			StatusStyle(StatusFailed).Render(result.Err.Error()),
		}
	case result.Changed():
		return []string{
			entry.Name, entry.Section, entry.Range, result.Pin.NewVersion,
			StatusStyle(StatusPinned).Render(StatusPinned),
		}
	default:
		return []string{
			entry.Name, entry.Section, entry.Range, entry.Range,
			StatusStyle(StatusUnchanged).Render(StatusUnchanged),
		}
	}
}

// RenderEnginesReports renders one table per manifest (and for the
// lockfile, in dependency mode) plus a summary line.
func RenderEnginesReports(reports []commands.EnginesReport) string {
	var b strings.Builder
	checked, failed := 0, 0

	for _, report := range reports {
		tbl := NewTable("ENGINE", "DEPENDENCY", "REQUIRED", "ACTUAL", "STATUS")
		for _, result := range report.Results {
			tbl.Row(engineRow(result)...)
			checked++
			if !result.Satisfied {
				failed++
			}
		}

		b.WriteString(StyleNoun.Render(report.ManifestPath))
		b.WriteString("\n")
		if tbl.Empty() {
			b.WriteString(StyleDim.Render("no engine constraints") + "\n")
		} else {
			b.WriteString(tbl.String() + "\n")
		}
	}

	b.WriteString(StyleSummary.Render(
		fmt.Sprintf("checked %d constraints, %d not satisfied", checked, failed),
	))
	b.WriteString("\n")
	return b.String()
}

func engineRow(result entities.EngineCheckResult) []string {
	actual := result.Actual
	if actual == "" {
		actual = "?"
	}

	status := StatusStyle(StatusOK).Render(StatusOK)
	if !result.Satisfied {
		status = StatusStyle(StatusViolated).Render(result.Reason)
		if result.Reason == entities.ReasonUnknownActualVersion {
			status = StatusStyle(StatusUnknown).Render(result.Reason)
		}
	}

	return []string{
		result.Constraint.Name,
		result.Dependency,
		result.Constraint.Range,
		actual,
		status,
	}
}
