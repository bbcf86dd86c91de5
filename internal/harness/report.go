package harness

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RenderText writes a human-readable benchmark report. Counter values are
// grouped by thousands for readability; the CSV form stays raw for tools.
func RenderText(w io.Writer, res *RunResult) error {
	p := message.NewPrinter(language.English)

	if _, err := fmt.Fprintf(w, "run %s (plan %s)\n\n", res.RunID, res.PlanName); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tSIZE\tDISTRIBUTION\tREP\tCOMPARISONS\tACCESSES\tTIME(NS)\tMAJORITY")
	for _, row := range res.Rows {
		majority := "-"
		if row.Found {
			majority = fmt.Sprintf("%d", row.Value)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			row.Algorithm,
			p.Sprintf("%d", row.Size),
			row.Distribution,
			row.Rep,
			p.Sprintf("%d", row.Comparisons),
			p.Sprintf("%d", row.Accesses),
			p.Sprintf("%d", row.TimeNs),
			majority,
		)
	}
	return tw.Flush()
}

// RenderScenarioResults writes one PASS/FAIL line per scenario result,
// with mismatch details indented under failures.
func RenderScenarioResults(w io.Writer, results []*Result) error {
	passed := 0
	for _, r := range results {
		if r.Pass {
			passed++
			if _, err := fmt.Fprintf(w, "PASS %s\n", r.Name); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "FAIL %s\n", r.Name); err != nil {
			return err
		}
		for _, msg := range r.Errors {
			if _, err := fmt.Fprintf(w, "  %s\n", msg); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "\n%d/%d scenarios passed\n", passed, len(results))
	return err
}
