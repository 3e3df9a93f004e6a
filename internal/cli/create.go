package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xx-template/xx-cli/internal/branding"
	"github.com/xx-template/xx-cli/internal/catalog"
	"github.com/xx-template/xx-cli/internal/config"
	"github.com/xx-template/xx-cli/internal/prompt"
	"github.com/xx-template/xx-cli/internal/scaffold"
	"github.com/xx-template/xx-cli/internal/ui"
)

// Swapped out in tests.
var (
	newCloner   = catalog.NewCloner
	newPrompter = prompt.New
)

var createTemplate string

var createCmd = &cobra.Command{
	Use:   "create [project-name]",
	Short: "Create a new project from template",
	Long: `Create a new project by cloning a starter template into ./<project-name>.

The template's git history is removed and the "name" field of its
package.json is set to the project name. Without --template you are asked to
pick one; without a project name you are asked for it.

Examples:
  ` + branding.CLIName() + ` create
  ` + branding.CLIName() + ` create my-app --template vue-ts
  ` + branding.CLIName() + ` create my-lib -t lib-ts`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createTemplate, "template", "t", "",
		fmt.Sprintf("Template to use (%s)", strings.Join(catalog.Names(), ", ")))
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	p := printer
	pr := newPrompter(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())

	tmpl, err := resolveTemplate(p, pr, createTemplate)
	if err != nil {
		return err
	}

	var projectName string
	if len(args) == 1 {
		projectName = args[0]
	}
	if projectName == "" {
		projectName, err = pr.Input("What is your project name?", func(name string) error {
			return scaffold.ValidateProjectName(".", name)
		})
		if err != nil {
			return reportCreateError(p, projectName, err)
		}
	}

	var progress io.Writer
	if verbose {
		progress = p.Err()
	}
	cloner, err := newCloner(config.CloneMethod(), config.CloneDepth(), progress)
	if err != nil {
		return reportCreateError(p, projectName, err)
	}

	status := startCloneStatus(p.Err(), fmt.Sprintf("Creating %s project...", tmpl.Name), progress != nil)
	result, err := scaffold.New(cloner, scaffold.WithLogger(logger)).Create(cmd.Context(), scaffold.Request{
		ProjectName: projectName,
		Template:    tmpl,
	})
	status.Stop()
	if err != nil {
		return reportCreateError(p, projectName, err)
	}

	printCreateSummary(p, result)
	return nil
}

// startCloneStatus shows what is being created. The spinner is replaced by a
// single line when clone progress is streamed to the same writer.
func startCloneStatus(w io.Writer, description string, streaming bool) *ui.Spinner {
	if streaming {
		return ui.StartStatus(w, description)
	}
	return ui.StartSpinner(w, description)
}

// resolveTemplate returns the template named by the --template flag, or asks
// the user to pick one when the flag is empty.
func resolveTemplate(p *ui.Printer, pr prompt.Prompter, name string) (catalog.Template, error) {
	templates := catalog.Templates()

	if name != "" {
		tmpl, err := scaffold.ResolveTemplate(name)
		if err != nil {
			p.Error("Template %q not found.", name)
			printCatalogSummary(p, templates)
			return catalog.Template{}, reported(err)
		}
		return tmpl, nil
	}

	printCatalog(p, templates)

	choices := make([]string, len(templates))
	for i, t := range templates {
		choices[i] = fmt.Sprintf("%s - %s", t.Name, t.Description)
	}
	idx, err := pr.Select("Which template would you like to use?", choices)
	if err != nil {
		return catalog.Template{}, reportCreateError(p, "", err)
	}
	return templates[idx], nil
}

// reportCreateError prints err in the form matching its class and marks it
// as reported.
func reportCreateError(p *ui.Printer, projectName string, err error) error {
	switch {
	case errors.Is(err, scaffold.ErrProjectExists):
		p.Error("Directory %q already exists", projectName)
	case errors.Is(err, scaffold.ErrProjectNameRequired):
		p.Error("Project name is required")
	case errors.Is(err, scaffold.ErrInvalidProjectName):
		p.Error("%v", err)
	case errors.Is(err, prompt.ErrCancelled):
		p.Error("Cancelled.")
	default:
		p.Error("Error creating project: %v", err)
	}
	return reported(err)
}

func printCreateSummary(p *ui.Printer, result *scaffold.Result) {
	p.Success("✔ %s project created successfully!", result.Template.Name)
	p.Println()
	p.Success("✨ Created project %q using %s template", result.ProjectName, result.Template.Name)

	if result.Manifest != nil && result.Manifest.Version != nil {
		p.Println(p.Muted("   package.json version " + result.Manifest.Version.String()))
	}

	if len(result.Warnings) > 0 {
		p.Println()
		p.Warn("Warnings:")
		for _, w := range result.Warnings {
			p.Warn("  - %s", w)
		}
	}

	p.Println()
	p.Println("Next steps:")
	p.Println(p.Accent("  cd " + result.ProjectName))
	for _, instruction := range result.Template.PostCloneInstructions {
		p.Println(p.Accent("  " + instruction))
	}
}
