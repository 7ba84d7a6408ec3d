package lineregister_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kollektivlab/access/lineregister"
)

func TestParse(t *testing.T) {
	doc := `{
		"lines": {
			"line": [
				{"gid": 9011014001600000, "textColorHTML": "FFFFFF", "backgroundColorHTML": "00394D"},
				{"gid": 9011014001700000, "textColorHTML": "006C93"},
				{"gid": 9011014001800000}
			]
		}
	}`

	reg, err := lineregister.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, reg.Lines, 1)

	line, ok := reg.Colors(9011014001600000)
	require.True(t, ok)
	assert.Equal(t, "#FFFFFF", line.FgColor)
	assert.Equal(t, "#00394D", line.BgColor)

	// Lines without both colors are skipped.
	_, ok = reg.Colors(9011014001700000)
	assert.False(t, ok)
	_, ok = reg.Colors(9011014001800000)
	assert.False(t, ok)
}

func TestParseGarbage(t *testing.T) {
	_, err := lineregister.Parse(strings.NewReader("not json"))
	assert.Error(t, err)
}
