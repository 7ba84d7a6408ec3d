package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kollektivlab/access/model"
)

func TestParseAgencies(t *testing.T) {
	content := `
agency_id,agency_name,agency_url,agency_timezone,agency_lang
17,Västtrafik,https://www.vasttrafik.se,Europe/Stockholm,sv`

	agencies, err := ParseAgencies(strings.NewReader(strings.TrimSpace(content)))
	require.NoError(t, err)
	require.Len(t, agencies, 1)

	assert.Equal(t, model.Agency{
		ID:       17,
		Name:     "Västtrafik",
		URL:      "https://www.vasttrafik.se",
		Timezone: "Europe/Stockholm",
		Lang:     "sv",
	}, agencies[0])
}

func TestParseAgenciesMissingName(t *testing.T) {
	content := `
agency_id,agency_name,agency_url
17,,https://example.com`
	_, err := ParseAgencies(strings.NewReader(strings.TrimSpace(content)))
	assert.Error(t, err)
}
