package version

import (
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
)

// gitVersionRegex matches git version output like "git version 2.43.0".
var gitVersionRegex = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// GitBinaryInfo describes the git installation used for submodules and
// repository initialization.
type GitBinaryInfo struct {
	Version string `json:"version"`
	Path    string `json:"path"`
	Found   bool   `json:"found"`
	Message string `json:"message,omitempty"`
}

// DetectGitBinary finds the git binary and reports its version.
func DetectGitBinary() GitBinaryInfo {
	return detectBinary("git")
}

func detectBinary(name string) GitBinaryInfo {
	path, err := exec.LookPath(name)
	if err != nil {
		return GitBinaryInfo{Message: name + " binary not found in PATH"}
	}

	cmd := exec.Command(path, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return GitBinaryInfo{
			Path:    path,
			Found:   true,
			Message: "failed to get git version: " + err.Error(),
		}
	}

	v, err := extractVersion(out.String())
	if err != nil {
		return GitBinaryInfo{Path: path, Found: true, Message: err.Error()}
	}

	return GitBinaryInfo{Version: v, Path: path, Found: true}
}

// extractVersion extracts the version number from git --version output.
func extractVersion(output string) (string, error) {
	match := gitVersionRegex.FindString(output)
	if match == "" {
		return "", fmt.Errorf("failed to parse git version from output: %q", output)
	}
	return match, nil
}

// String returns a human-readable git binary info string.
func (g GitBinaryInfo) String() string {
	if !g.Found {
		return "Git:\n  Version: not found\n  Path:    -"
	}
	v := g.Version
	if v == "" {
		v = "unknown (" + g.Message + ")"
	}
	return fmt.Sprintf("Git:\n  Version: %s\n  Path:    %s", v, g.Path)
}
