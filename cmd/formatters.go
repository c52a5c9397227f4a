package cmd

import (
	"fmt"
	"strings"

	"vigil/report"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// CLI output formatters
var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	headerColor  = color.New(color.FgBlue, color.Bold)
)

const reportTimeLayout = "2006-01-02 15:04:05"

// renderText formats a status report for terminal display.
func renderText(rep *report.StatusReport) string {
	var b strings.Builder

	fmt.Fprintln(&b, headerColor.Sprint("=== SYSTEM STATUS REPORT ==="))
	fmt.Fprintf(&b, "Generated: %s\n\n", rep.GeneratedAt.Format(reportTimeLayout))

	fmt.Fprintf(&b, "Registered persons: %d\n", rep.TotalPersons)
	fmt.Fprintf(&b, "Persons at risk:    %d\n", len(rep.AtRisk))
	fmt.Fprintf(&b, "Open incidents:     %d\n", len(rep.OpenIncidents))
	fmt.Fprintf(&b, "Active devices:     %d\n", rep.ActiveDevices)

	if len(rep.AtRisk) > 0 {
		fmt.Fprintf(&b, "\n%s\n", warningColor.Sprint("--- PERSONS AT RISK ---"))
		for _, ar := range rep.AtRisk {
			fmt.Fprintf(&b, "- %s (national id %s)\n", ar.Person.Name, ar.Person.NationalID)
			fmt.Fprintf(&b, "  last contact %s (%.1f hours ago)\n",
				ar.Person.LastContact.Format(reportTimeLayout),
				ar.TimeSinceContact.Hours())
		}
	}

	if len(rep.OpenIncidents) > 0 {
		fmt.Fprintf(&b, "\n%s\n", errorColor.Sprint("--- OPEN INCIDENTS ---"))
		for _, oi := range rep.OpenIncidents {
			fmt.Fprintf(&b, "- %s (%s), ongoing for %.1f hours\n",
				oi.Incident.Region, oi.Incident.Kind, oi.Elapsed.Hours())
			fmt.Fprintf(&b, "  %s\n", oi.Incident.Description)
		}
	}

	return b.String()
}

// renderYAML formats a status report as YAML.
func renderYAML(rep *report.StatusReport) (string, error) {
	out, err := yaml.Marshal(rep)
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	return string(out), nil
}
