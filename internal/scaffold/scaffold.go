// Package scaffold creates new projects from templates: it copies a template
// tree into a destination, substitutes the project name placeholder and
// initializes the result as a fresh git repository.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/opmodel/project/internal/config"
	oerrors "github.com/opmodel/project/internal/errors"
	"github.com/opmodel/project/internal/output"
	"github.com/opmodel/project/internal/registry"
)

// VCS is the version control collaborator used while cloning.
type VCS interface {
	Available() bool
	Init(ctx context.Context, dir string) error
	IsSubmodule(ctx context.Context, root, relPath string) (bool, error)
	SubmoduleUpdate(ctx context.Context, root, relPath string) error
}

// Options describes a single clone.
type Options struct {
	Language    string
	Template    string
	Destination string

	// ProjectName defaults to the last segment of Destination.
	ProjectName string

	// Placeholder defaults to config.DefaultPlaceholder.
	Placeholder string

	// InitRepo runs git init in the new project.
	InitRepo bool

	// InitSubmodules checks out an empty template submodule before copying.
	InitSubmodules bool
}

// Result describes a created project.
type Result struct {
	Template    registry.Template
	ProjectName string

	// Identifier is the value written in place of the placeholder.
	Identifier  string
	Destination string

	// Files are the slash separated paths of every file in the new project.
	Files []string

	// Patched are the files whose contents had the placeholder replaced.
	Patched      []string
	Replacements int
	Renamed      int
	Repository   bool
}

// Scaffolder clones templates from a registry.
type Scaffolder struct {
	registry *registry.Registry
	vcs      VCS
}

// New creates a Scaffolder.
func New(reg *registry.Registry, vcs VCS) *Scaffolder {
	return &Scaffolder{registry: reg, vcs: vcs}
}

// Clone creates a new project as described by opts. Validation failures
// leave the filesystem untouched; a failure after the destination was
// created removes what this call created.
func (s *Scaffolder) Clone(ctx context.Context, opts Options) (*Result, error) {
	if opts.Placeholder == "" {
		opts.Placeholder = config.DefaultPlaceholder
	}

	tmpl, err := s.registry.Resolve(opts.Language, opts.Template)
	if err != nil {
		return nil, err
	}

	dest, err := filepath.Abs(opts.Destination)
	if err != nil {
		return nil, oerrors.NewFilesystemError("resolving destination", opts.Destination, err)
	}

	if err := checkOutsideTemplate(tmpl, dest); err != nil {
		return nil, err
	}

	name, err := ResolveProjectName(dest, opts.ProjectName)
	if err != nil {
		return nil, err
	}

	if err := CheckDestination(dest); err != nil {
		return nil, err
	}

	if opts.InitRepo && !s.vcs.Available() {
		return nil, oerrors.NewVCSError("git init", dest, "",
			errors.New("git executable not found in PATH"))
	}

	if err := s.ensureMaterialized(ctx, tmpl, opts.InitSubmodules); err != nil {
		return nil, err
	}

	output.Debug("cloning template",
		"language", tmpl.Language,
		"template", tmpl.Name,
		"source", tmpl.Path,
		"destination", dest,
		"project", name,
	)

	undo, err := createDestination(dest)
	if err != nil {
		return nil, err
	}

	result, err := s.populate(ctx, tmpl, dest, name, opts)
	if err != nil {
		undo()
		return nil, err
	}
	return result, nil
}

func (s *Scaffolder) populate(ctx context.Context, tmpl registry.Template, dest, name string, opts Options) (*Result, error) {
	var files []string
	err := output.RunWithSpinner(ctx, func() error {
		var copyErr error
		files, copyErr = CopyTree(tmpl.Path, dest)
		return copyErr
	}, output.WithTitle(fmt.Sprintf("Copying %s/%s", tmpl.Language, tmpl.Name)))
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		output.Warn("template has no files", "template", tmpl.Name, "path", tmpl.Path)
	}

	identifier := IdentifierName(name)
	sub, err := Substitute(dest, opts.Placeholder, identifier)
	if err != nil {
		return nil, err
	}

	if sub.Renamed > 0 {
		for i, f := range files {
			files[i] = replaceVisible(f, opts.Placeholder, identifier)
		}
		sort.Strings(files)
	}

	if opts.InitRepo {
		if err := s.vcs.Init(ctx, dest); err != nil {
			return nil, err
		}
	}

	return &Result{
		Template:     tmpl,
		ProjectName:  name,
		Identifier:   identifier,
		Destination:  dest,
		Files:        files,
		Patched:      sub.Files,
		Replacements: sub.Replacements,
		Renamed:      sub.Renamed,
		Repository:   opts.InitRepo,
	}, nil
}

// ensureMaterialized checks out a template that is a registered but not yet
// initialized submodule.
func (s *Scaffolder) ensureMaterialized(ctx context.Context, tmpl registry.Template, initSubmodules bool) error {
	ok, err := tmpl.Materialized()
	if err != nil {
		return oerrors.NewFilesystemError("reading template", tmpl.Path, err)
	}
	if ok || !initSubmodules {
		return nil
	}

	root := s.registry.Root()
	rel, err := filepath.Rel(root, tmpl.Path)
	if err != nil {
		return oerrors.NewFilesystemError("resolving template path", tmpl.Path, err)
	}

	isSub, err := s.vcs.IsSubmodule(ctx, root, rel)
	if err != nil {
		return err
	}
	if !isSub {
		return nil
	}

	output.Info("initializing template submodule", "path", filepath.ToSlash(rel))
	return s.vcs.SubmoduleUpdate(ctx, root, rel)
}

// checkOutsideTemplate rejects a destination at or below the template
// directory, which the copy would otherwise recurse into.
func checkOutsideTemplate(tmpl registry.Template, dest string) error {
	src, err := filepath.Abs(tmpl.Path)
	if err != nil {
		return oerrors.NewFilesystemError("resolving template path", tmpl.Path, err)
	}
	if resolved, err := filepath.EvalSymlinks(src); err == nil {
		src = resolved
	}
	dest = resolveExisting(dest)

	rel, err := filepath.Rel(src, dest)
	if err != nil {
		return nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return oerrors.NewInvalidArgumentsError(
		fmt.Sprintf("destination %s is inside the template %s/%s", dest, tmpl.Language, tmpl.Name),
		"Choose a destination outside the templates repository.",
	)
}

// resolveExisting evaluates symlinks in the longest existing prefix of path.
func resolveExisting(path string) string {
	var rest []string
	for p := path; ; p = filepath.Dir(p) {
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...)
		}
		if filepath.Dir(p) == p {
			return path
		}
		rest = append([]string{filepath.Base(p)}, rest...)
	}
}

// createDestination makes dest and returns a function that removes what was
// created. An existing empty directory is kept and only emptied again.
func createDestination(dest string) (func(), error) {
	// Topmost missing ancestor, so undo also removes created parents.
	created := ""
	for p := dest; ; p = filepath.Dir(p) {
		if _, err := os.Lstat(p); err == nil {
			break
		}
		created = p
		if filepath.Dir(p) == p {
			break
		}
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, oerrors.NewFilesystemError("creating destination", dest, err)
	}

	return func() {
		if created != "" {
			_ = os.RemoveAll(created)
			return
		}
		entries, err := os.ReadDir(dest)
		if err != nil {
			return
		}
		for _, e := range entries {
			_ = os.RemoveAll(filepath.Join(dest, e.Name()))
		}
	}, nil
}

// replaceVisible applies the placeholder substitution to the path
// components Substitute renames, leaving hidden components and everything
// below them as they are.
func replaceVisible(rel, placeholder, value string) string {
	parts := strings.Split(rel, "/")
	for i, p := range parts {
		if strings.HasPrefix(p, ".") {
			break
		}
		parts[i] = strings.ReplaceAll(p, placeholder, value)
	}
	return strings.Join(parts, "/")
}
