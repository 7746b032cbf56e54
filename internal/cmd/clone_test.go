package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/project/internal/errors"
	"github.com/opmodel/project/internal/scaffold"
)

func TestNewCloneCmd(t *testing.T) {
	c := NewCloneCmd(&GlobalConfig{})

	assert.Equal(t, "clone <language> <template> <destination> [project_name]", c.Use)
	assert.NotEmpty(t, c.Long)
	assert.NotEmpty(t, c.Example)

	for _, name := range []string{"no-git", "no-submodule-init", "placeholder", "tree"} {
		assert.NotNil(t, c.Flags().Lookup(name), name)
	}
}

func TestClone_CreatesProject(t *testing.T) {
	root := newTemplatesRoot(t)
	dest := filepath.Join(t.TempDir(), "my-app")

	stdout, _, err := runRoot(t, "--root", root, "clone", "py3", "cli", dest, "--no-git")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dest, "setup.py"))
	require.NoError(t, err)
	assert.Equal(t, "name='my_app'\n", string(data))
	assert.FileExists(t, filepath.Join(dest, "my_app", "__init__.py"))
	assert.NoDirExists(t, filepath.Join(dest, ".git"))

	assert.Contains(t, stdout, "Created project")
	assert.Contains(t, stdout, "my-app")
	assert.Contains(t, stdout, "setup.py")
	assert.Contains(t, stdout, "name substituted")
}

func TestClone_ExplicitProjectName(t *testing.T) {
	root := newTemplatesRoot(t)
	dest := filepath.Join(t.TempDir(), "out")

	_, _, err := runRoot(t, "--root", root, "clone", "py3", "cli", dest, "widget", "--no-git", "--tree=false")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dest, "setup.py"))
	require.NoError(t, err)
	assert.Equal(t, "name='widget'\n", string(data))
}

func TestClone_GroupedTemplate(t *testing.T) {
	root := newTemplatesRoot(t)
	dest := filepath.Join(t.TempDir(), "viewer")

	_, _, err := runRoot(t, "--root", root, "clone", "cpp", "qt/widgets", dest, "--no-git")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dest, "main.cpp"))
}

func TestClone_InitializesRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	root := newTemplatesRoot(t)
	dest := filepath.Join(t.TempDir(), "repo")

	stdout, _, err := runRoot(t, "--root", root, "clone", "py3", "web", dest)
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(dest, ".git"))
	assert.Contains(t, stdout, "Initialized empty git repository")
}

func TestClone_Errors(t *testing.T) {
	root := newTemplatesRoot(t)

	occupied := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(occupied, "keep.txt"), []byte("keep"), 0o644))

	tests := []struct {
		name     string
		args     []string
		sentinel error
		code     int
	}{
		{
			name:     "unknown language",
			args:     []string{"clone", "rust", "cli", filepath.Join(t.TempDir(), "a")},
			sentinel: oerrors.ErrUnknownLanguage,
			code:     oerrors.ExitUnknownLanguage,
		},
		{
			name:     "template not found",
			args:     []string{"clone", "py3", "nonexistent-template", filepath.Join(t.TempDir(), "out")},
			sentinel: oerrors.ErrTemplateNotFound,
			code:     oerrors.ExitTemplateNotFound,
		},
		{
			name:     "destination exists",
			args:     []string{"clone", "py3", "cli", occupied},
			sentinel: oerrors.ErrDestinationExists,
			code:     oerrors.ExitDestinationExists,
		},
		{
			name:     "missing destination",
			args:     []string{"clone", "py3", "cli"},
			sentinel: oerrors.ErrInvalidArguments,
			code:     oerrors.ExitInvalidArguments,
		},
		{
			name:     "too many args",
			args:     []string{"clone", "py3", "cli", "a", "b", "c"},
			sentinel: oerrors.ErrInvalidArguments,
			code:     oerrors.ExitInvalidArguments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--root", root}, tt.args...)
			args = append(args, "--no-git")

			_, stderr, err := runRoot(t, args...)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.code, oerrors.ExitCodeFromError(err))
			assert.NotEmpty(t, stderr)
		})
	}

	t.Run("failures leave the filesystem untouched", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(occupied, "keep.txt"))
		require.NoError(t, err)
		assert.Equal(t, "keep", string(data))
	})
}

func TestClone_TemplateNotFoundCreatesNothing(t *testing.T) {
	root := newTemplatesRoot(t)
	dest := filepath.Join(t.TempDir(), "out")

	_, _, err := runRoot(t, "--root", root, "clone", "py3", "nonexistent-template", dest)

	require.Error(t, err)
	assert.NoDirExists(t, dest)
}

func TestCloneTreeEntries(t *testing.T) {
	result := &scaffold.Result{
		Files:   []string{"README.md", "setup.py", "src/app.py"},
		Patched: []string{"setup.py"},
	}

	assert.Equal(t, map[string]string{
		"README.md":  "",
		"setup.py":   "name substituted",
		"src/app.py": "",
	}, cloneTreeEntries(result))
}

func TestCompleteCloneArgs(t *testing.T) {
	cfg := &GlobalConfig{}
	complete := completeCloneArgs(cfg)

	names, _ := complete(nil, nil, "")
	assert.Empty(t, names, "no completion before config is loaded")
}

func TestClone_MissingGitFailsBeforeCopying(t *testing.T) {
	root := newTemplatesRoot(t)
	dest := filepath.Join(t.TempDir(), "out")
	t.Setenv("PATH", "")

	_, _, err := runRoot(t, "--root", root, "clone", "py3", "cli", dest)

	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrVCS)
	assert.Equal(t, oerrors.ExitVCSError, oerrors.ExitCodeFromError(err))
	assert.NoDirExists(t, dest)

	_, _, err = runRoot(t, "--root", root, "clone", "rust", "cli", dest)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitUnknownLanguage, oerrors.ExitCodeFromError(err))
}

func TestClone_NestedAndGroupNamesAreNotTemplates(t *testing.T) {
	root := newTemplatesRoot(t)

	for _, name := range []string{"cpp qt", "py3 cli/{%PROJECT_NAME%}"} {
		args := strings.Fields(name)
		dest := filepath.Join(t.TempDir(), "out")

		_, _, err := runRoot(t, "--root", root, "clone", args[0], args[1], dest, "--no-git")

		require.Error(t, err, name)
		assert.Equal(t, oerrors.ExitTemplateNotFound, oerrors.ExitCodeFromError(err), name)
		assert.NoDirExists(t, dest)
	}
}

func TestCloneHelp_ShowsUnderscoreSubstitution(t *testing.T) {
	c := NewCloneCmd(&GlobalConfig{})

	assert.Contains(t, c.Long, "my-app is written as my_app")
}
