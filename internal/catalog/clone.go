package catalog

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Cloner fetches a repository into dir. dir must not exist yet.
type Cloner interface {
	Clone(ctx context.Context, repoURL, dir string) error
}

// Clone methods understood by NewCloner.
const (
	MethodGoGit = "go-git"
	MethodExec  = "git"
)

// NewCloner returns the cloner for the given method. depth limits the fetched
// history; zero clones everything. progress, if non-nil, receives the remote's
// sideband output.
func NewCloner(method string, depth int, progress io.Writer) (Cloner, error) {
	switch method {
	case MethodGoGit, "":
		return &GoGitCloner{Depth: depth, Progress: progress}, nil
	case MethodExec:
		return &ExecCloner{Depth: depth, Progress: progress}, nil
	default:
		return nil, fmt.Errorf("unknown clone method %q", method)
	}
}

// GoGitCloner clones in-process with go-git. Credentials are whatever the
// transport picks up on its own (e.g. a running ssh-agent).
type GoGitCloner struct {
	Depth    int
	Progress io.Writer
}

// Clone implements Cloner.
func (c *GoGitCloner) Clone(ctx context.Context, repoURL, dir string) error {
	opts := &git.CloneOptions{
		URL:   repoURL,
		Depth: c.Depth,
	}
	if c.Progress != nil {
		opts.Progress = c.Progress
	}
	if _, err := git.PlainCloneContext(ctx, dir, false, opts); err != nil {
		return fmt.Errorf("cloning %s: %w", repoURL, err)
	}
	return nil
}

// ExecCloner shells out to the system git binary, which lets locally
// configured credential helpers and ssh settings apply.
type ExecCloner struct {
	Depth    int
	Progress io.Writer
}

// Clone implements Cloner.
func (c *ExecCloner) Clone(ctx context.Context, repoURL, dir string) error {
	if err := ensureGit(); err != nil {
		return err
	}

	args := []string{"clone"}
	if c.Depth > 0 {
		args = append(args, "--depth="+strconv.Itoa(c.Depth))
	}
	args = append(args, "--", repoURL, dir)

	cmd := exec.CommandContext(ctx, "git", args...)
	var out strings.Builder
	cmd.Stdout = &out
	if c.Progress != nil {
		cmd.Stderr = io.MultiWriter(&out, c.Progress)
	} else {
		cmd.Stderr = &out
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("cloning %s: %w\n%s", repoURL, err, strings.TrimSpace(out.String()))
	}
	return nil
}

// ensureGit checks that git is available on PATH.
func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required but not found in PATH")
	}
	return nil
}
