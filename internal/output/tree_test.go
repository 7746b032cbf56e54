package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFileTree_Empty(t *testing.T) {
	assert.Empty(t, RenderFileTree("myapp", nil))
}

func TestRenderFileTree_DirectoriesFirst(t *testing.T) {
	out := RenderFileTree("myapp", map[string]string{
		"setup.py":          "",
		"myapp/__init__.py": "",
		"README.md":         "",
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, lines[0], "myapp/")
	assert.Equal(t, "├── myapp/", lines[1])
	assert.Equal(t, "│   └── __init__.py", lines[2])
	assert.Equal(t, "├── README.md", lines[3])
	assert.Equal(t, "└── setup.py", lines[4])
}

func TestRenderFileTree_Descriptions(t *testing.T) {
	out := RenderFileTree("demo", map[string]string{
		"CMakeLists.txt": "name substituted",
		"src/main.cpp":   "",
	})

	assert.Contains(t, out, "CMakeLists.txt")
	assert.Contains(t, out, "name substituted")
	assert.Contains(t, out, "main.cpp")
}
