package report

import (
	"fmt"
	"io"
	"strings"

	awstype "github.com/avolkov/cloudhygiene/internal/aws"
)

// TextReporter writes a human-readable report.
type TextReporter struct {
	Writer io.Writer
}

// Generate writes the text report.
func (r *TextReporter) Generate(data Data) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s — hygiene scan %s\n", data.Tool, data.Version, data.Timestamp.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "Regions: %s\n\n", strings.Join(data.Config.Regions, ", "))

	if data.Result == nil || len(data.Result.Findings) == 0 {
		b.WriteString("No hygiene findings.\n")
	} else {
		for _, f := range data.Result.Findings {
			b.WriteString(formatFinding(f))
		}
	}

	if data.Result != nil {
		fmt.Fprintf(&b, "\nSummary: %d resources, estimated savings $%.2f/month\n",
			data.Result.Summary.TotalResources, data.Result.Summary.TotalEstimatedSavings)

		for _, e := range data.Result.Errors {
			fmt.Fprintf(&b, "error: %s\n", e)
		}
	}

	_, err := io.WriteString(r.Writer, b.String())
	return err
}

func formatFinding(f awstype.Finding) string {
	age := ""
	if f.AgeDays != nil {
		age = fmt.Sprintf(", %dd old", *f.AgeDays)
	}
	return fmt.Sprintf("  [%s] %s %s (%s%s) $%.2f/month — %s\n",
		f.RiskLevel, f.ResourceType, f.ResourceID, f.Region, age,
		f.EstimatedMonthlyCost, f.RecommendedAction)
}
