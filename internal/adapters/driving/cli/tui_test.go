package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sentinel/internal/adapters/driving/tui"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
}

func TestTUICmd_Short(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_LongDescribesControls(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "Controls:")
	assert.Contains(t, tuiCmd.Long, "Add / remove subscription")
}

func TestTUICmd_HasScheduleFlag(t *testing.T) {
	flag := tuiCmd.Flags().Lookup("schedule")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestTUICmd_MissingServices(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	reportService = nil

	_, err := execute(t, "tui")
	require.Error(t, err)
	assert.ErrorIs(t, err, tui.ErrMissingReportService)
	assert.Contains(t, err.Error(), "failed to create TUI")
}
