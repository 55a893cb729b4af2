package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sentinel/internal/core/domain"
)

func TestServeCmd_Flags(t *testing.T) {
	addr := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, "a", addr.Shorthand)
	assert.Equal(t, "", addr.DefValue)

	schedule := serveCmd.Flags().Lookup("schedule")
	require.NotNil(t, schedule)
	assert.Equal(t, "false", schedule.DefValue)
}

func TestServeCmd_Long(t *testing.T) {
	assert.Contains(t, serveCmd.Long, "/api/subscriptions")
	assert.Contains(t, serveCmd.Long, "/api/reports")
}

func TestServeCmd_ServicesNotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	reportService = nil

	_, err := execute(t, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "services not configured")
}

func TestServeCmd_ScheduleRequiresToken(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	appConfig.GitHub.Token = ""

	_, err := execute(t, "serve", "--addr", "127.0.0.1:0", "--schedule")
	assert.ErrorIs(t, err, domain.ErrTokenMissing)
}

func TestServeCmd_InvalidAddress(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "serve", "--addr", "not-an-address")
	assert.Error(t, err)
}
