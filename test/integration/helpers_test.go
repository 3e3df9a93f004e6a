//go:build integration

package integration_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
	"github.com/xx-template/xx-cli/internal/catalog"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // XX_CLI_HOME, holds config.yaml
	WorkDir string // where projects get created
}

// setupTestEnv creates isolated temp directories and points XX_CLI_HOME at
// one of them so no user config leaks into the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		WorkDir: t.TempDir(),
	}
	t.Setenv("XX_CLI_HOME", env.HomeDir)
	return env
}

// setupTemplateRepo creates a local git repository with one commit holding
// files, and returns a catalog entry pointing at it.
func setupTemplateRepo(t *testing.T, name string, files map[string]string, instructions ...string) catalog.Template {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err, "initializing template repo")
	wt, err := repo.Worktree()
	require.NoError(t, err)

	for rel, content := range files {
		writeFile(t, filepath.Join(dir, rel), content)
		_, err := wt.Add(rel)
		require.NoError(t, err, "staging %s", rel)
	}

	_, err = wt.Commit("initial template", &git.CommitOptions{
		Author: &object.Signature{Name: "template", Email: "template@example.com", When: time.Now()},
	})
	require.NoError(t, err, "committing template")

	return catalog.Template{
		Name:                  name,
		Description:           "Local " + name + " template",
		Repository:            dir,
		PostCloneInstructions: instructions,
	}
}

// requireGit skips the test when the system git binary is unavailable.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// readManifest decodes the package.json in dir.
func readManifest(t *testing.T, dir string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}
