package scaffold

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	oerrors "github.com/opmodel/project/internal/errors"
	"github.com/opmodel/project/internal/output"
)

// CopyTree copies the contents of src into dst, which must already exist.
// Every .git entry is skipped so the copy carries no repository or
// submodule linkage. File modes and symlinks are preserved. It returns the
// slash separated relative paths of the copied files and links, sorted.
func CopyTree(src, dst string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return oerrors.NewFilesystemError("reading template", path, walkErr)
		}
		if path == src {
			return nil
		}

		if d.Name() == ".git" {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return oerrors.NewFilesystemError("resolving template path", path, err)
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return oerrors.NewFilesystemError("reading template", path, err)
		}

		switch {
		case info.IsDir():
			if err := os.Mkdir(target, info.Mode().Perm()|0o700); err != nil {
				return oerrors.NewFilesystemError("creating directory", target, err)
			}
		case info.Mode()&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return oerrors.NewFilesystemError("reading symlink", path, err)
			}
			if err := os.Symlink(link, target); err != nil {
				return oerrors.NewFilesystemError("creating symlink", target, err)
			}
			files = append(files, filepath.ToSlash(rel))
		case info.Mode().IsRegular():
			if err := copyFile(path, target, info.Mode().Perm()); err != nil {
				return oerrors.NewFilesystemError("copying file", target, err)
			}
			files = append(files, filepath.ToSlash(rel))
		default:
			output.Debug("skipping special file", "path", path, "mode", info.Mode().String())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
