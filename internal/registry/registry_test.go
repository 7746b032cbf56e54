package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/project/internal/errors"
	"github.com/opmodel/project/internal/testutil"
)

// newTestRoot builds:
//
//	py3/cli/setup.py
//	py3/cli/src/main.py
//	py3/web/app.py
//	py3/.hidden/x
//	py3/notes.txt
//	py3/services/grpc/main.py
//	py3/services/rest/main.py
//	py3/empty/            (un-initialized submodule)
//	cpp/lib/CMakeLists.txt
func newTestRoot(t *testing.T) string {
	t.Helper()
	return testutil.TemplatesRoot(t, map[string]string{
		"py3/cli/setup.py":          "x",
		"py3/cli/src/main.py":       "x",
		"py3/web/app.py":            "x",
		"py3/.hidden/x":             "x",
		"py3/notes.txt":             "x",
		"py3/services/grpc/main.py": "x",
		"py3/services/rest/main.py": "x",
		"py3/empty/":                "",
		"cpp/lib/CMakeLists.txt":    "x",
	})
}

func TestRegistry_Languages(t *testing.T) {
	reg := New("/tmp", []string{"py3", "cpp"})

	assert.Equal(t, []string{"cpp", "py3"}, reg.Languages())
	assert.True(t, reg.IsSupported("cpp"))
	assert.False(t, reg.IsSupported("rust"))
}

func TestRegistry_List(t *testing.T) {
	reg := New(newTestRoot(t), []string{"cpp", "py3"})

	names, err := reg.List("py3")

	require.NoError(t, err)
	assert.Equal(t, []string{"cli", "empty", "services/grpc", "services/rest", "web"}, names)
}

func TestRegistry_ListIsIdempotent(t *testing.T) {
	reg := New(newTestRoot(t), []string{"cpp", "py3"})

	first, err := reg.List("py3")
	require.NoError(t, err)
	second, err := reg.List("py3")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRegistry_ListUnknownLanguage(t *testing.T) {
	reg := New(newTestRoot(t), []string{"cpp", "py3"})

	_, err := reg.List("rust")

	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrUnknownLanguage))
}

func TestRegistry_ListMissingLanguageFolder(t *testing.T) {
	reg := New(t.TempDir(), []string{"cpp", "py3"})

	_, err := reg.List("cpp")

	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrUnknownLanguage))
}

func TestRegistry_Resolve(t *testing.T) {
	root := newTestRoot(t)
	reg := New(root, []string{"cpp", "py3"})

	tests := []struct {
		name     string
		language string
		template string
		wantPath string
		wantErr  error
	}{
		{"plain template", "py3", "cli", filepath.Join(root, "py3", "cli"), nil},
		{"grouped template", "py3", "services/grpc", filepath.Join(root, "py3", "services", "grpc"), nil},
		{"trailing slash", "cpp", "lib/", filepath.Join(root, "cpp", "lib"), nil},
		{"missing template", "py3", "nonexistent-template", "", oerrors.ErrTemplateNotFound},
		{"file is not a template", "py3", "notes.txt", "", oerrors.ErrTemplateNotFound},
		{"escape attempt", "py3", "../cpp/lib", "", oerrors.ErrTemplateNotFound},
		{"hidden folder", "py3", ".hidden", "", oerrors.ErrTemplateNotFound},
		{"folder inside a template", "py3", "cli/src", "", oerrors.ErrTemplateNotFound},
		{"group is not a template", "py3", "services", "", oerrors.ErrTemplateNotFound},
		{"missing group member", "py3", "services/soap", "", oerrors.ErrTemplateNotFound},
		{"too deep", "py3", "services/grpc/x", "", oerrors.ErrTemplateNotFound},
		{"absolute path", "py3", "/py3/cli", "", oerrors.ErrTemplateNotFound},
		{"empty name", "py3", "", "", oerrors.ErrTemplateNotFound},
		{"unknown language", "rust", "cli", "", oerrors.ErrUnknownLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := reg.Resolve(tt.language, tt.template)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, tmpl.Path)
			assert.Equal(t, tt.language, tmpl.Language)
		})
	}
}

func TestTemplate_Materialized(t *testing.T) {
	reg := New(newTestRoot(t), []string{"py3"})

	cli, err := reg.Resolve("py3", "cli")
	require.NoError(t, err)
	ok, err := cli.Materialized()
	require.NoError(t, err)
	assert.True(t, ok)

	empty, err := reg.Resolve("py3", "empty")
	require.NoError(t, err)
	ok, err = empty.Materialized()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegistry_ListAndResolveAgree(t *testing.T) {
	reg := New(newTestRoot(t), []string{"py3"})

	names, err := reg.List("py3")
	require.NoError(t, err)

	for _, name := range names {
		_, err := reg.Resolve("py3", name)
		assert.NoError(t, err, name)
	}
}

func TestRegistry_TemplateWithReadmeAndSubdirs(t *testing.T) {
	root := testutil.TemplatesRoot(t, map[string]string{
		"py3/cli/README.md":     "# cli",
		"py3/cli/src/main.py":   "",
		"py3/cli/tests/test.py": "",
		"py3/lib/.gitignore":    "*.pyc",
		"py3/lib/src/lib.py":    "",
		"py3/app/.git":          "gitdir: ../../.git/modules/py3/app",
		"py3/app/pkg/app.py":    "",
	})
	reg := New(root, []string{"py3"})

	names, err := reg.List("py3")

	require.NoError(t, err)
	assert.Equal(t, []string{"app", "cli", "lib"}, names)
}

func TestRegistry_SymlinkedGroupMember(t *testing.T) {
	root := testutil.TemplatesRoot(t, map[string]string{
		"shared/grpc/main.py":    "",
		"py3/services/rest/x.py": "",
	})
	target := filepath.Join(root, "shared", "grpc")
	link := filepath.Join(root, "py3", "services", "grpc")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	reg := New(root, []string{"py3"})

	names, err := reg.List("py3")
	require.NoError(t, err)
	assert.Equal(t, []string{"services/grpc", "services/rest"}, names)

	tmpl, err := reg.Resolve("py3", "services/grpc")
	require.NoError(t, err)
	assert.Equal(t, link, tmpl.Path)
}
