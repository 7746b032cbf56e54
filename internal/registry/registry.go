// Package registry discovers project templates on disk.
//
// Templates live at <root>/<language>/<name>. A folder under a language that
// holds nothing but visible directories groups related templates, which are
// then addressed as <group>/<name>. Any file, hidden or not, makes a folder a
// template; a checked out submodule always has its .git entry.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	oerrors "github.com/opmodel/project/internal/errors"
)

// Template is a single template directory.
type Template struct {
	Language string
	Name     string
	Path     string
}

// Materialized reports whether the template directory has any entries.
// An un-initialized git submodule is an empty directory.
func (t Template) Materialized() (bool, error) {
	entries, err := os.ReadDir(t.Path)
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

// Registry resolves templates below a root directory.
type Registry struct {
	root      string
	languages []string
}

// New creates a registry rooted at root that accepts the given languages.
func New(root string, languages []string) *Registry {
	langs := append([]string(nil), languages...)
	sort.Strings(langs)
	return &Registry{root: root, languages: langs}
}

// Root returns the registry root directory.
func (r *Registry) Root() string {
	return r.root
}

// Languages returns the supported languages in sorted order.
func (r *Registry) Languages() []string {
	return append([]string(nil), r.languages...)
}

// IsSupported reports whether language is in the supported set.
func (r *Registry) IsSupported(language string) bool {
	i := sort.SearchStrings(r.languages, language)
	return i < len(r.languages) && r.languages[i] == language
}

func (r *Registry) languageDir(language string) (string, error) {
	if !r.IsSupported(language) {
		return "", oerrors.NewUnknownLanguageError(language, r.languages)
	}

	dir := filepath.Join(r.root, language)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		// A supported language without a folder has no templates to offer.
		return "", &oerrors.DetailError{
			Type:     "unknown language",
			Message:  fmt.Sprintf("unsupported language '%s'", language),
			Location: dir,
			Hint:     "The templates root has no folder for this language; check --root.",
			Cause:    oerrors.ErrUnknownLanguage,
		}
	}

	return dir, nil
}

// List returns the sorted template names available for language.
func (r *Registry) List(language string) ([]string, error) {
	dir, err := r.languageDir(language)
	if err != nil {
		return nil, err
	}

	children, err := visibleDirs(dir)
	if err != nil {
		return nil, oerrors.NewFilesystemError("reading language folder", dir, err)
	}

	var names []string
	for _, child := range children {
		childPath := filepath.Join(dir, child)

		group, err := isGroup(childPath)
		if err != nil {
			return nil, oerrors.NewFilesystemError("reading template folder", childPath, err)
		}
		if !group {
			names = append(names, child)
			continue
		}

		members, err := visibleDirs(childPath)
		if err != nil {
			return nil, oerrors.NewFilesystemError("reading template group", childPath, err)
		}
		for _, m := range members {
			names = append(names, child+"/"+m)
		}
	}

	sort.Strings(names)
	return names, nil
}

// Resolve locates the template called name for language. Only names that
// List reports are accepted: a top-level template or <group>/<name>.
func (r *Registry) Resolve(language, name string) (Template, error) {
	dir, err := r.languageDir(language)
	if err != nil {
		return Template{}, err
	}

	clean := strings.TrimSuffix(filepath.ToSlash(name), "/")
	parts := strings.Split(clean, "/")
	if clean == "" || len(parts) > 2 {
		return Template{}, oerrors.NewTemplateNotFoundError(language, name, "")
	}
	for _, part := range parts {
		if part == "" || part == "." || part == ".." || isHidden(part) {
			return Template{}, oerrors.NewTemplateNotFoundError(language, name, "")
		}
	}

	path := filepath.Join(dir, filepath.FromSlash(clean))
	notFound := oerrors.NewTemplateNotFoundError(language, name, path)

	first := filepath.Join(dir, parts[0])
	if !isDirPath(first) {
		return Template{}, notFound
	}
	group, err := isGroup(first)
	if err != nil {
		return Template{}, oerrors.NewFilesystemError("reading template folder", first, err)
	}

	// A group is never a template itself, and members of a template are
	// plain subdirectories.
	if group != (len(parts) == 2) {
		return Template{}, notFound
	}
	if len(parts) == 2 && !isDirPath(path) {
		return Template{}, notFound
	}

	return Template{Language: language, Name: clean, Path: path}, nil
}

// visibleDirs returns the sorted names of non-hidden subdirectories of dir.
// Symlinks to directories count as directories.
func visibleDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if isHidden(e.Name()) {
			continue
		}
		if entryIsDir(dir, e) {
			names = append(names, e.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}

// isGroup reports whether dir holds at least one subdirectory and nothing
// else: no files and no hidden entries.
func isGroup(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}

	if len(entries) == 0 {
		return false, nil
	}
	for _, e := range entries {
		if isHidden(e.Name()) || !entryIsDir(dir, e) {
			return false, nil
		}
	}
	return true, nil
}

// entryIsDir reports whether e is a directory, following symlinks.
func entryIsDir(dir string, e os.DirEntry) bool {
	if e.Type()&os.ModeSymlink != 0 {
		return isDirPath(filepath.Join(dir, e.Name()))
	}
	return e.IsDir()
}

func isDirPath(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
