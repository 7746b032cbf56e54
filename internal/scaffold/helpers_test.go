package scaffold

import (
	"context"
	"path/filepath"
)

// fakeVCS records calls instead of running git.
type fakeVCS struct {
	missing    bool
	initDirs   []string
	initErr    error
	submodules map[string]bool
	updated    []string
	onUpdate   func(relPath string)
}

func (f *fakeVCS) Available() bool {
	return !f.missing
}

func (f *fakeVCS) Init(_ context.Context, dir string) error {
	f.initDirs = append(f.initDirs, dir)
	return f.initErr
}

func (f *fakeVCS) IsSubmodule(_ context.Context, _, relPath string) (bool, error) {
	return f.submodules[filepath.ToSlash(relPath)], nil
}

func (f *fakeVCS) SubmoduleUpdate(_ context.Context, _, relPath string) error {
	f.updated = append(f.updated, filepath.ToSlash(relPath))
	if f.onUpdate != nil {
		f.onUpdate(relPath)
	}
	return nil
}
