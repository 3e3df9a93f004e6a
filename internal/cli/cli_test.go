package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xx-template/xx-cli/internal/catalog"
	"github.com/xx-template/xx-cli/internal/scaffold"
	"github.com/xx-template/xx-cli/internal/ui"
)

// fakeCloner writes a fixed file tree into the destination directory.
type fakeCloner struct {
	files map[string]string
	err   error
	calls []string
}

func (f *fakeCloner) Clone(_ context.Context, repoURL, dir string) error {
	f.calls = append(f.calls, repoURL)
	if f.err != nil {
		return f.err
	}
	for name, content := range f.files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// useFakeCloner routes clones through f for the duration of the test.
func useFakeCloner(t *testing.T, f *fakeCloner) {
	t.Helper()
	orig := newCloner
	newCloner = func(string, int, io.Writer) (catalog.Cloner, error) { return f, nil }
	t.Cleanup(func() { newCloner = orig })
}

// resetFlags restores every flag in the tree to its default so runs do not
// leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// prepare points the CLI at workDir with isolated config and the given
// streams. Call it from the test goroutine.
func prepare(t *testing.T, workDir string, in io.Reader, out, errOut io.Writer, args ...string) {
	t.Helper()
	prevDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(workDir))
	t.Cleanup(func() { _ = os.Chdir(prevDir) })
	t.Setenv("XX_CLI_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	resetFlags(rootCmd)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetIn(in)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})
}

// execute runs the CLI inside workDir with stdin as the user's input.
func execute(t *testing.T, workDir, stdin string, args ...string) cmdResult {
	t.Helper()
	var out, errOut bytes.Buffer
	prepare(t, workDir, strings.NewReader(stdin), &out, &errOut, args...)

	err := Execute("1.2.3", "abc123", "2026-01-01")
	return cmdResult{stdout: out.String(), stderr: errOut.String(), err: err}
}

const vueManifest = `{
  "name": "vue-ts",
  "version": "0.1.0",
  "scripts": {
    "dev": "vite"
  },
  "dependencies": {
    "vue": "^3.4.0"
  }
}
`

func TestList_CatalogOrderOnce(t *testing.T) {
	res := execute(t, t.TempDir(), "", "list")
	require.NoError(t, res.err)

	prev := -1
	for _, tmpl := range catalog.Templates() {
		header := "📦 " + tmpl.Name + "\n"
		assert.Equal(t, 1, strings.Count(res.stdout, header), "name %s", tmpl.Name)
		assert.Equal(t, 1, strings.Count(res.stdout, tmpl.Description), "description of %s", tmpl.Name)
		assert.Contains(t, res.stdout, "Repository: "+tmpl.Repository)

		pos := strings.Index(res.stdout, header)
		assert.Greater(t, pos, prev, "templates must appear in catalog order")
		prev = pos
	}
}

func TestList_JSON(t *testing.T) {
	res := execute(t, t.TempDir(), "", "list", "--json")
	require.NoError(t, res.err)

	var entries []listEntry
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &entries))
	require.Len(t, entries, len(catalog.Templates()))
	assert.Equal(t, "vue-ts", entries[0].Name)
	assert.Equal(t, []string{"npm install", "npm run dev"}, entries[0].PostCloneInstructions)
}

func TestCreate_UnknownTemplate(t *testing.T) {
	cloner := &fakeCloner{}
	useFakeCloner(t, cloner)

	res := execute(t, t.TempDir(), "", "create", "my-app", "--template", "react")
	require.Error(t, res.err)

	assert.Contains(t, res.stderr, `Template "react" not found.`)
	assert.Contains(t, res.stdout, "Available templates:")
	for _, tmpl := range catalog.Templates() {
		assert.Contains(t, res.stdout, tmpl.Name+": "+tmpl.Description)
	}
	assert.Empty(t, cloner.calls)
	assert.NotContains(t, res.stderr, "Error: ", "reported errors are not printed twice")
}

func TestCreate_ExistingDirectory(t *testing.T) {
	work := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(work, "my-app"), 0755))
	cloner := &fakeCloner{}
	useFakeCloner(t, cloner)

	res := execute(t, work, "", "create", "my-app", "-t", "vue-ts")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, `Directory "my-app" already exists`)
	assert.Empty(t, cloner.calls, "no clone should be attempted")
}

func TestCreate_WithFlags(t *testing.T) {
	work := t.TempDir()
	cloner := &fakeCloner{files: map[string]string{
		"package.json": vueManifest,
		".git/HEAD":    "ref: refs/heads/main\n",
		"src/App.vue":  "<template></template>\n",
	}}
	useFakeCloner(t, cloner)

	res := execute(t, work, "", "create", "my-app", "--template", "vue-ts")
	require.NoError(t, res.err, res.stderr)

	projectDir := filepath.Join(work, "my-app")
	assert.DirExists(t, projectDir)
	assert.NoDirExists(t, filepath.Join(projectDir, ".git"))

	data, err := os.ReadFile(filepath.Join(projectDir, "package.json"))
	require.NoError(t, err)
	var pkg map[string]any
	require.NoError(t, json.Unmarshal(data, &pkg))
	assert.Equal(t, "my-app", pkg["name"])
	assert.Equal(t, map[string]any{"vue": "^3.4.0"}, pkg["dependencies"])

	assert.Contains(t, res.stdout, "vue-ts project created successfully!")
	assert.Contains(t, res.stdout, `Created project "my-app" using vue-ts template`)
	assert.Contains(t, res.stdout, "package.json version 0.1.0")
	assert.Contains(t, res.stdout, "Next steps:\n  cd my-app\n  npm install\n  npm run dev\n")
}

func TestCreate_SameNameTwice(t *testing.T) {
	work := t.TempDir()
	cloner := &fakeCloner{files: map[string]string{"package.json": vueManifest}}
	useFakeCloner(t, cloner)

	require.NoError(t, execute(t, work, "", "create", "my-app", "-t", "lib-ts").err)

	res := execute(t, work, "", "create", "my-app", "-t", "lib-ts")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "already exists")
	assert.Len(t, cloner.calls, 1)
}

func TestCreate_Interactive(t *testing.T) {
	work := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(work, "taken"), 0755))
	cloner := &fakeCloner{files: map[string]string{"package.json": vueManifest}}
	useFakeCloner(t, cloner)

	// Pick template 2, then an empty name, a taken name, and finally a free one.
	res := execute(t, work, "2\n\ntaken\nmy-lib\n", "create")
	require.NoError(t, res.err, res.stderr)

	assert.Contains(t, res.stdout, "Which template would you like to use?")
	assert.Contains(t, res.stdout, "project name is required")
	assert.Contains(t, res.stdout, "directory already exists")
	assert.Contains(t, res.stdout, `Created project "my-lib" using lib-ts template`)
	assert.Equal(t, []string{"https://github.com/xx-template/lib-ts.git"}, cloner.calls)
	assert.DirExists(t, filepath.Join(work, "my-lib"))
}

func TestCreate_PromptCancelled(t *testing.T) {
	cloner := &fakeCloner{}
	useFakeCloner(t, cloner)

	res := execute(t, t.TempDir(), "", "create", "-t", "vue-ts")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Cancelled.")
	assert.Empty(t, cloner.calls)
}

func TestCreate_CloneFailure(t *testing.T) {
	cloner := &fakeCloner{err: errors.New("repository not found")}
	useFakeCloner(t, cloner)

	res := execute(t, t.TempDir(), "", "create", "my-app", "-t", "vue-ts")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Error creating project: cloning repository: repository not found")
}

func TestCreate_NoPostCloneInstructions(t *testing.T) {
	var out bytes.Buffer
	p := ui.New(&out, &out, ui.ColorNever)

	printCreateSummary(p, &scaffold.Result{
		ProjectName: "bare",
		ProjectDir:  "bare",
		Template: catalog.Template{
			Name:        "bare",
			Description: "No follow-up steps",
			Repository:  "https://example.com/bare.git",
		},
	})

	assert.True(t, strings.HasSuffix(out.String(), "Next steps:\n  cd bare\n"), out.String())
}

func TestCreate_VerboseStreamsProgressWithoutSpinner(t *testing.T) {
	cloner := &fakeCloner{files: map[string]string{"package.json": vueManifest}}
	useFakeCloner(t, cloner)

	res := execute(t, t.TempDir(), "", "--verbose", "create", "my-app", "-t", "vue-ts")
	require.NoError(t, res.err, res.stderr)

	assert.Equal(t, 1, strings.Count(res.stderr, "Creating vue-ts project..."))
	assert.Contains(t, res.stderr, "level=DEBUG")
	assert.Contains(t, res.stderr, "cloning template")
}

func TestVersionFlagAndCommand(t *testing.T) {
	res := execute(t, t.TempDir(), "", "--version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "1.2.3")

	res = execute(t, t.TempDir(), "", "version", "--short")
	require.NoError(t, res.err)
	assert.Equal(t, "1.2.3\n", res.stdout)

	res = execute(t, t.TempDir(), "", "version", "--json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"commit": "abc123"`)
}

func TestVersion_DefaultLineAndExclusiveFlags(t *testing.T) {
	res := execute(t, t.TempDir(), "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "xx-cli 1.2.3 (commit abc123, built 2026-01-01, ")
	assert.Contains(t, res.stdout, runtime.GOOS+"/"+runtime.GOARCH)

	res = execute(t, t.TempDir(), "", "version", "--short", "--json")
	assert.Error(t, res.err)
}

func TestCurrentBuild_KeepsPlaceholdersWithoutBuildInfo(t *testing.T) {
	origVersion, origCommit := buildVersion, buildCommit
	t.Cleanup(func() { buildVersion, buildCommit = origVersion, origCommit })

	buildVersion, buildCommit = "v9.9.9", "feedbeef"
	info := currentBuild()
	assert.Equal(t, "v9.9.9", info.Version, "ldflags values win")
	assert.Equal(t, "feedbeef", info.Commit)
	assert.Equal(t, runtime.Version(), info.Go)

	buildVersion = "dev"
	info = currentBuild()
	assert.NotEmpty(t, info.Version)
	assert.NotEqual(t, "(devel)", info.Version)
}

func TestConfigSetGet(t *testing.T) {
	work := t.TempDir()
	res := execute(t, work, "", "config", "set", "clone.method", "git")
	require.NoError(t, res.err)
	assert.Equal(t, "Set clone.method = git\n", res.stdout)

	res = execute(t, work, "", "config", "set", "clone.method", "svn")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Error: setting config key")
}

func TestUnknownCommandReportsError(t *testing.T) {
	res := execute(t, t.TempDir(), "", "destroy")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Error: unknown command")
}
