package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStyles(t *testing.T) {
	styles := GetStyles()

	assert.True(t, styles.Bold.GetBold())
	assert.Equal(t, ColorDimGray, styles.Muted.GetForeground())
	assert.Equal(t, ColorCyan, styles.Noun.GetForeground())
}

func TestFormatCheckmark(t *testing.T) {
	out := FormatCheckmark("Created project")
	assert.Contains(t, out, "✔")
	assert.Contains(t, out, "Created project")
}

func TestFormatNoun(t *testing.T) {
	assert.Contains(t, FormatNoun("cpp/cli"), "cpp/cli")
}
