package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/opmodel/project/internal/testutil"
)

// isolateConfig keeps tests away from the user's config file and environment.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("PROJECT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PROJECT_ROOT", "")
}

// newTemplatesRoot builds a templates repository:
//
//	py3/cli/setup.py          (contains the placeholder)
//	py3/cli/{%PROJECT_NAME%}/__init__.py
//	py3/web/app.py
//	cpp/qt/widgets/main.cpp
func newTemplatesRoot(t *testing.T) string {
	t.Helper()
	return testutil.TemplatesRoot(t, map[string]string{
		"py3/cli/setup.py":                     "name='{%PROJECT_NAME%}'\n",
		"py3/cli/{%PROJECT_NAME%}/__init__.py": "",
		"py3/web/app.py":                       "print('hi')\n",
		"cpp/qt/widgets/main.cpp":              "int main() {}\n",
	})
}

// runRoot executes the root command in-process and returns its error and
// captured streams.
func runRoot(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	isolateConfig(t)

	root := NewRootCmd()
	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)

	err = Execute(root)
	return outBuf.String(), errBuf.String(), err
}
