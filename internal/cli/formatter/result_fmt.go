package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/coursebin/internal/contract"
)

// FormatValidationResult renders a validation outcome: a verdict line,
// blocking reasons, warnings, and the recommended action.
func FormatValidationResult(r *contract.SafeDeleteValidationResult) string {
	var b strings.Builder

	if r.CanDelete {
		b.WriteString(StyleGreen.Render("✓ Deletable"))
	} else {
		b.WriteString(StyleRed.Render("✗ Blocked"))
	}
	b.WriteString("\n")

	for _, reason := range r.BlockingDependencies {
		b.WriteString(StyleRed.Render("  ● "))
		b.WriteString(StyleFg.Render(reason))
		b.WriteString("\n")
	}
	for _, warning := range r.Warnings {
		b.WriteString(StyleYellow.Render("  ▲ "))
		b.WriteString(StyleFg.Render(warning))
		b.WriteString("\n")
	}

	if r.RecommendedAction != "" && r.RecommendedAction != contract.ActionNone {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  Recommended: %s", r.RecommendedAction)))
		b.WriteString("\n")
	}
	if r.RequiresHardDelete != nil && !*r.RequiresHardDelete {
		b.WriteString(StyleDim.Render("  Soft delete only (retention policy)"))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatDeleteResult renders an execution outcome with its affected entities.
func FormatDeleteResult(r *contract.SafeDeleteResult) string {
	var b strings.Builder

	if r.Success {
		b.WriteString(StyleGreen.Render("✓ "))
		b.WriteString(StyleFg.Render(r.Message))
	} else {
		b.WriteString(StyleRed.Render("✗ "))
		b.WriteString(StyleFg.Render(r.Message))
		if r.ErrorCode != "" {
			b.WriteString(StyleDim.Render(fmt.Sprintf(" [%s]", r.ErrorCode)))
		}
	}
	b.WriteString("\n")

	for _, token := range r.AffectedEntities {
		b.WriteString(StyleDim.Render("  - " + token))
		b.WriteString("\n")
	}

	return b.String()
}
