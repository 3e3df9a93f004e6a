package cli

import (
	"fmt"
	"strings"

	"github.com/xx-template/xx-cli/internal/catalog"
	"github.com/xx-template/xx-cli/internal/ui"
)

const maxDescriptionWidth = 76

// printCatalog writes every template with its description and repository.
func printCatalog(p *ui.Printer, templates []catalog.Template) {
	p.Println(p.Highlight("Available templates:"))
	p.Println()

	width := ui.Width(p.Out(), maxDescriptionWidth+3) - 3
	if width > maxDescriptionWidth {
		width = maxDescriptionWidth
	}

	for _, t := range templates {
		p.Println(p.Accent("📦 " + t.Name))
		p.Println(indent(ui.Wrap(t.Description, width), "   "))
		p.Println(p.Muted("   Repository: " + t.Repository))
		p.Println()
	}
}

// printCatalogSummary writes the compact "name: description" form.
func printCatalogSummary(p *ui.Printer, templates []catalog.Template) {
	p.Warn("Available templates:")
	for _, t := range templates {
		p.Println(p.Accent(fmt.Sprintf("  %s: %s", t.Name, t.Description)))
	}
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
