package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xx-template/xx-cli/internal/catalog"
	"github.com/xx-template/xx-cli/internal/manifest"
)

// vcsDir is the version-control metadata directory removed after cloning.
const vcsDir = ".git"

// Sentinel errors for invalid user input. Callers match them with errors.Is.
var (
	ErrTemplateNotFound    = errors.New("template not found")
	ErrProjectNameRequired = errors.New("project name is required")
	ErrInvalidProjectName  = errors.New("invalid project name")
	ErrProjectExists       = errors.New("directory already exists")
)

// Request describes one scaffold run.
type Request struct {
	ProjectName string
	Template    catalog.Template
}

// Result holds the outcome of a successful scaffold run.
type Result struct {
	ProjectName string
	ProjectDir  string
	Template    catalog.Template
	VCSRemoved  bool
	Manifest    *manifest.Info // nil when the template has no package.json
	Warnings    []string
}

// Scaffolder runs the clone → strip → rewrite sequence.
type Scaffolder struct {
	cloner  catalog.Cloner
	baseDir string
	logger  *slog.Logger
}

// Option configures a Scaffolder.
type Option func(*Scaffolder)

// WithBaseDir sets the directory new projects are created in. Defaults to the
// current working directory.
func WithBaseDir(dir string) Option {
	return func(s *Scaffolder) {
		s.baseDir = dir
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scaffolder) {
		s.logger = l
	}
}

// New creates a Scaffolder that fetches templates with cloner.
func New(cloner catalog.Cloner, opts ...Option) *Scaffolder {
	s := &Scaffolder{
		cloner:  cloner,
		baseDir: ".",
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveTemplate looks up a template by exact name.
func ResolveTemplate(name string) (catalog.Template, error) {
	t, ok := catalog.Lookup(name)
	if !ok {
		return catalog.Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return t, nil
}

// ValidateProjectName checks that name is usable as a new top-level directory
// under baseDir. It is used both as the interactive prompt validator and as
// the pre-clone collision check.
func ValidateProjectName(baseDir, name string) error {
	if name == "" {
		return ErrProjectNameRequired
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w %q: must be a single directory name", ErrInvalidProjectName, name)
	}

	_, err := os.Lstat(filepath.Join(baseDir, name))
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrProjectExists, name)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("checking %s: %w", name, err)
	}
}

// Create clones req.Template into <baseDir>/<req.ProjectName>, removes the
// clone's version-control metadata, and sets the manifest name.
func (s *Scaffolder) Create(ctx context.Context, req Request) (*Result, error) {
	if req.Template.Repository == "" {
		return nil, fmt.Errorf("template %q has no repository", req.Template.Name)
	}
	// Names passed on the command line never went through the prompt
	// validator, so the collision check runs again right before cloning.
	if err := ValidateProjectName(s.baseDir, req.ProjectName); err != nil {
		return nil, err
	}

	projectDir := filepath.Join(s.baseDir, req.ProjectName)
	s.logger.Debug("cloning template",
		"template", req.Template.Name,
		"repository", req.Template.Repository,
		"dir", projectDir)

	if err := s.cloner.Clone(ctx, req.Template.Repository, projectDir); err != nil {
		return nil, fmt.Errorf("cloning repository: %w", err)
	}

	result := &Result{
		ProjectName: req.ProjectName,
		ProjectDir:  projectDir,
		Template:    req.Template,
	}

	removed, err := removeVCSMetadata(projectDir)
	if err != nil {
		return nil, err
	}
	result.VCSRemoved = removed
	s.logger.Debug("version-control metadata", "removed", removed)

	info, warnings, err := rewriteManifest(projectDir, req.ProjectName)
	if err != nil {
		return nil, err
	}
	result.Manifest = info
	result.Warnings = warnings
	if info == nil {
		s.logger.Debug("no manifest found, skipping rewrite", "file", manifest.FileName)
	}

	return result, nil
}

// removeVCSMetadata deletes <dir>/.git recursively. It reports whether the
// directory existed.
func removeVCSMetadata(dir string) (bool, error) {
	path := filepath.Join(dir, vcsDir)
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if err := os.RemoveAll(path); err != nil {
		return false, fmt.Errorf("removing %s: %w", path, err)
	}
	return true, nil
}

// rewriteManifest sets the name in <dir>/package.json when the file exists and
// returns the resulting manifest info plus any schema warnings. A missing
// manifest yields (nil, nil, nil).
func rewriteManifest(dir, name string) (*manifest.Info, []string, error) {
	path := filepath.Join(dir, manifest.FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("checking %s: %w", path, err)
	}

	if err := manifest.SetName(path, name); err != nil {
		return nil, nil, fmt.Errorf("updating manifest: %w", err)
	}

	info, err := manifest.Inspect(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading manifest: %w", err)
	}

	var warnings []string
	valResult, valErr := manifest.ValidateFile(path)
	switch {
	case valErr != nil:
		warnings = append(warnings, fmt.Sprintf("Could not validate %s: %v", manifest.FileName, valErr))
	case !valResult.Valid:
		for _, issue := range valResult.Issues {
			warnings = append(warnings, manifest.FileName+" "+issue.String())
		}
	}

	return info, warnings, nil
}
