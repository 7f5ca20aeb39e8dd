package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/entitygen/internal/config"
)

func TestPrintTemplates(t *testing.T) {
	cfg := config.DefaultArchitectureConfig()
	cfg.ServicePackage = "application"
	cfg.Templates = map[string]string{"dto": "templates/dto.java.tmpl"}

	var out bytes.Buffer
	require.NoError(t, printTemplates(&out, cfg))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, []string{"TEMPLATE", "PACKAGE", "SOURCE"}, strings.Fields(lines[0]))

	rows := make(map[string][]string)
	for _, line := range lines[2:] {
		fields := strings.Fields(line)
		rows[fields[0]] = fields[1:]
	}
	assert.Equal(t, []string{"-", "shared"}, rows["accessors.java"])
	assert.Equal(t, []string{"dto", "templates/dto.java.tmpl"}, rows["dto.java"])
	assert.Equal(t, []string{"application", "embedded"}, rows["service.java"])
	assert.Equal(t, []string{"dto.filter", "embedded"}, rows["filter.java"])
}
