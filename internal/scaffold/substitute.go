package scaffold

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	oerrors "github.com/opmodel/project/internal/errors"
	"github.com/opmodel/project/internal/output"
)

// binarySniffLen is how much of a file is checked for NUL bytes.
const binarySniffLen = 8000

// SubstituteResult summarizes a placeholder substitution pass.
type SubstituteResult struct {
	// Files are the slash separated paths, after renaming, of files whose
	// contents changed.
	Files []string

	// Replacements is the number of placeholder occurrences replaced in contents.
	Replacements int

	// Renamed is the number of files and directories renamed.
	Renamed int
}

// Substitute replaces every occurrence of placeholder with value in the
// contents of the regular files below root, then in file and directory names.
// Hidden entries and files that look binary are left untouched.
func Substitute(root, placeholder, value string) (*SubstituteResult, error) {
	result := &SubstituteResult{}
	token := []byte(placeholder)
	var renames []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return oerrors.NewFilesystemError("reading project", path, walkErr)
		}
		if path == root {
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.Contains(d.Name(), placeholder) {
			renames = append(renames, path)
		}

		if !d.Type().IsRegular() {
			return nil
		}

		n, err := substituteFile(path, token, []byte(value))
		if err != nil {
			return oerrors.NewFilesystemError("patching file", path, err)
		}
		if n > 0 {
			rel, _ := filepath.Rel(root, path)
			rel = strings.ReplaceAll(filepath.ToSlash(rel), placeholder, value)
			result.Files = append(result.Files, rel)
			result.Replacements += n
			output.Debug("patched file", "path", rel, "replacements", n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Deepest first, so parents are renamed after their children.
	sort.Slice(renames, func(i, j int) bool {
		return strings.Count(renames[i], string(filepath.Separator)) >
			strings.Count(renames[j], string(filepath.Separator))
	})
	for _, path := range renames {
		dir, base := filepath.Split(path)
		target := filepath.Join(dir, strings.ReplaceAll(base, placeholder, value))
		if _, err := os.Lstat(target); err == nil {
			return nil, oerrors.NewFilesystemError("renaming", target, fs.ErrExist)
		}
		if err := os.Rename(path, target); err != nil {
			return nil, oerrors.NewFilesystemError("renaming", path, err)
		}
		result.Renamed++
	}

	sort.Strings(result.Files)
	return result, nil
}

// substituteFile rewrites path in place and returns the number of replacements.
func substituteFile(path string, token, value []byte) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	if isBinary(data) {
		return 0, nil
	}

	n := bytes.Count(data, token)
	if n == 0 {
		return 0, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(path, bytes.ReplaceAll(data, token, value), info.Mode().Perm()); err != nil {
		return 0, err
	}
	return n, nil
}

func isBinary(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
