package scaffold

import (
	"io"
	"os"

	oerrors "github.com/opmodel/project/internal/errors"
)

// CheckDestination succeeds when path does not exist or is an empty
// directory. It never modifies the filesystem.
func CheckDestination(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return oerrors.NewFilesystemError("inspecting destination", path, err)
	}

	if !info.IsDir() {
		return oerrors.NewDestinationExistsError(path)
	}

	empty, err := isEmptyDir(path)
	if err != nil {
		return oerrors.NewFilesystemError("reading destination", path, err)
	}
	if !empty {
		return oerrors.NewDestinationExistsError(path)
	}
	return nil
}

func isEmptyDir(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil {
		if err == io.EOF {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
