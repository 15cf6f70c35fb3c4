package cli

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/msomdec/kennel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDogs_Table(t *testing.T) {
	var buf bytes.Buffer
	err := renderDogs(&buf, outputTable, []domain.Dog{
		{ID: 1, Name: "Rex", Breed: "Lab"},
		{ID: 2, Name: "Fido", Breed: "Poodle"},
	})
	require.NoError(t, err)

	out := buf.String()
	for _, want := range []string{"ID", "NAME", "BREED", "Rex", "Poodle", "(2 rows)"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderDogs_EmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderDogs(&buf, outputJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		level      string
		wantOut    bool
		wantErrOut bool
		wantErr    bool
	}{
		{name: "text", format: "text", level: "info", wantOut: true},
		{name: "json", format: "json", level: "info", wantErrOut: true},
		{name: "multi", format: "multi", level: "debug", wantOut: true, wantErrOut: true},
		{name: "bad level", format: "text", level: "loud", wantErr: true},
		{name: "bad format", format: "xml", level: "info", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			logger, err := newLogger(tt.format, tt.level, &out, &errOut)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			logger.Info("dog created", slog.Int64("id", 1))
			assert.Equal(t, tt.wantOut, strings.Contains(out.String(), "dog created"))
			assert.Equal(t, tt.wantErrOut, strings.Contains(errOut.String(), "dog created"))
		})
	}
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var out bytes.Buffer
	logger, err := newLogger("text", "warn", &out, &out)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
}
