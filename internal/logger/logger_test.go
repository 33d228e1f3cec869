package logger

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingKeepsMostRecent(t *testing.T) {
	r := NewRing(3)
	assert.Empty(t, r.Lines())
	for i := 0; i < 5; i++ {
		_, _ = fmt.Fprintf(r, "line %d\n", i)
	}
	assert.Equal(t, []string{"line 2", "line 3", "line 4"}, r.Lines())

	r.Reset()
	assert.Empty(t, r.Lines())
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRing(10)
	log := New("warn", FormatJSON, &buf, ring).Named(ComponentStore)

	log.Info("hidden")
	log.Warn("shown")
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, ComponentStore, entry["component"])

	kept := ring.Lines()
	require.Len(t, kept, 1)
	assert.Contains(t, kept[0], "shown")
}

func TestProductionMapsToWarn(t *testing.T) {
	var buf bytes.Buffer
	log := New(string(ProductionLevel), FormatConsole, &buf, nil)
	log.Info("quiet")
	assert.Empty(t, buf.String())
	log.Error("loud")
	assert.Contains(t, buf.String(), "loud")
	assert.Contains(t, buf.String(), " | ")
}
