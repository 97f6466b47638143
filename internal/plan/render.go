package plan

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"

	"github.com/vk/botplan/internal/diag"
)

var (
	errColor  = color.New(color.FgRed).SprintFunc()
	warnColor = color.New(color.FgYellow).SprintFunc()
)

// RenderTable writes a human-readable report: the apply order, the output
// bindings, and every diagnostic with colorized severity. Identical plans
// render identically.
func RenderTable(w io.Writer, p *Plan) error {
	if len(p.Order) > 0 {
		fmt.Fprintln(w, "Apply plan:")
		table := tablewriter.NewTable(w)
		table.Header("#", "Resource", "State")

		data := make([][]string, len(p.Order))
		for i, id := range p.Order {
			data[i] = []string{fmt.Sprintf("%d", i+1), id, p.States[id].String()}
		}
		if err := table.Bulk(data); err != nil {
			return fmt.Errorf("formatting apply plan: %w", err)
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("rendering apply plan: %w", err)
		}
	}

	if len(p.Outputs) > 0 {
		fmt.Fprintln(w, "Outputs:")
		table := tablewriter.NewTable(w)
		table.Header("Name", "Binds To", "Description")

		data := make([][]string, len(p.Outputs))
		for i, out := range p.Outputs {
			target := out.Target
			if out.Attr != "" {
				target += "." + out.Attr
			}
			data[i] = []string{out.Name, target, out.Description}
		}
		if err := table.Bulk(data); err != nil {
			return fmt.Errorf("formatting outputs: %w", err)
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("rendering outputs: %w", err)
		}
	}

	if len(p.Diagnostics) > 0 {
		fmt.Fprintln(w, "Diagnostics:")
		table := tablewriter.NewTable(w)
		table.Header("Severity", "Resource", "Field", "Message")

		data := make([][]string, len(p.Diagnostics))
		for i, d := range p.Diagnostics {
			severity := d.Severity.String()
			switch d.Severity {
			case diag.SeverityError:
				severity = errColor(severity)
			case diag.SeverityWarning:
				severity = warnColor(severity)
			}
			data[i] = []string{severity, d.Resource, d.Field, d.Message}
		}
		if err := table.Bulk(data); err != nil {
			return fmt.Errorf("formatting diagnostics: %w", err)
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("rendering diagnostics: %w", err)
		}
	}

	return nil
}

// RenderJSON writes the plan as a single JSON document for machine
// consumption.
func RenderJSON(w io.Writer, p *Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	return nil
}
