package catalog

import (
	"slices"

	"github.com/xx-template/xx-cli/internal/branding"
)

// Template is a named starter project that can be cloned into a new directory.
type Template struct {
	Name        string
	Description string
	Repository  string

	// PostCloneInstructions are shell commands shown to the user, in order,
	// after the project has been created. May be empty.
	PostCloneInstructions []string
}

var templates = []Template{
	{
		Name:        "vue-ts",
		Description: "Vue TypeScript project template for daily development",
		Repository:  branding.TemplateOrgURL() + "/vue-ts.git",
		PostCloneInstructions: []string{
			"npm install",
			"npm run dev",
		},
	},
	{
		Name:        "lib-ts",
		Description: "TypeScript library template for package development",
		Repository:  branding.TemplateOrgURL() + "/lib-ts.git",
		PostCloneInstructions: []string{
			"npm install",
			"npm run build",
		},
	},
}

// Templates returns the catalog in display order.
func Templates() []Template {
	out := make([]Template, len(templates))
	for i, t := range templates {
		t.PostCloneInstructions = slices.Clone(t.PostCloneInstructions)
		out[i] = t
	}
	return out
}

// Lookup returns the template with exactly the given name.
func Lookup(name string) (Template, bool) {
	for _, t := range Templates() {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Names returns the template names in display order.
func Names() []string {
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return names
}
