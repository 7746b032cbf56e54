// Package git runs the git binary for the few operations the CLI needs:
// initializing a new project repository and checking out template submodules.
package git

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	oerrors "github.com/opmodel/project/internal/errors"
	"github.com/opmodel/project/internal/output"
)

// Client runs git commands.
type Client struct {
	bin string
}

// New returns a Client that runs the git binary found on PATH.
func New() *Client {
	return &Client{bin: "git"}
}

// NewWithBinary returns a Client that runs bin instead of git.
func NewWithBinary(bin string) *Client {
	return &Client{bin: bin}
}

// Available reports whether the git binary can be found.
func (c *Client) Available() bool {
	_, err := exec.LookPath(c.bin)
	return err == nil
}

// Init creates a new, empty repository in dir.
func (c *Client) Init(ctx context.Context, dir string) error {
	_, err := c.run(ctx, dir, "init", "--quiet")
	return err
}

// SubmodulePaths returns the submodule paths registered in root/.gitmodules,
// slash separated. A missing .gitmodules yields no paths.
func (c *Client) SubmodulePaths(ctx context.Context, root string) ([]string, error) {
	if _, err := os.Stat(filepath.Join(root, ".gitmodules")); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, oerrors.NewFilesystemError("reading .gitmodules", root, err)
	}

	out, err := c.run(ctx, root, "config", "--file", ".gitmodules", "--get-regexp", `^submodule\..*\.path$`)
	if err != nil {
		// git config exits 1 when nothing matches.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.SplitN(strings.TrimSpace(scanner.Text()), " ", 2)
		if len(fields) == 2 {
			paths = append(paths, strings.TrimSuffix(fields[1], "/"))
		}
	}
	return paths, nil
}

// IsSubmodule reports whether relPath (relative to root) is a registered submodule.
func (c *Client) IsSubmodule(ctx context.Context, root, relPath string) (bool, error) {
	paths, err := c.SubmodulePaths(ctx, root)
	if err != nil {
		return false, err
	}

	want := filepath.ToSlash(filepath.Clean(relPath))
	for _, p := range paths {
		if p == want {
			return true, nil
		}
	}
	return false, nil
}

// SubmoduleUpdate checks out the submodule at relPath below root.
func (c *Client) SubmoduleUpdate(ctx context.Context, root, relPath string) error {
	_, err := c.run(ctx, root, "submodule", "update", "--init", "--", filepath.ToSlash(relPath))
	return err
}

func (c *Client) run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	command := c.bin + " " + strings.Join(args, " ")
	output.Debug("running git", "command", command, "dir", dir)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, oerrors.NewVCSError(command, dir, string(out), err)
	}
	return out, nil
}
