// ABOUTME: Tests for configuration loading, defaults, and validation
// ABOUTME: Covers env var expansion and rejection of invalid settings

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "terraledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
hedera:
  network: mainnet
  operator_id: "0.0.5005"
  operator_key: "302e0201..."
  topic_ttl_seconds: 90
registry:
  topic_id: "0.0.999"
server:
  http_addr: ":9000"
database:
  path: /tmp/terraledger.db
auth:
  jwt_secret: supersecret
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mainnet", cfg.Hedera.Network)
	assert.Equal(t, "0.0.5005", cfg.Hedera.OperatorID)
	assert.Equal(t, 90, cfg.Hedera.TopicTTL)
	assert.Equal(t, "0.0.999", cfg.Registry.TopicID)
	assert.Equal(t, ":9000", cfg.Server.HTTPAddr)
	assert.Equal(t, "supersecret", cfg.Auth.JWTSecret)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/terraledger.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "testnet", cfg.Hedera.Network)
	assert.Equal(t, 60, cfg.Hedera.TopicTTL)
	assert.Equal(t, ":8000", cfg.Server.HTTPAddr)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Empty(t, cfg.Hedera.OperatorID)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_OPERATOR_ID", "0.0.777")

	path := writeConfig(t, `
hedera:
  operator_id: ${TEST_OPERATOR_ID}
database:
  path: /tmp/terraledger.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.777", cfg.Hedera.OperatorID)
}

func TestLoad_UnsetEnvVarExpandsEmpty(t *testing.T) {
	path := writeConfig(t, `
hedera:
  operator_key: ${DEFINITELY_NOT_SET_FOR_TEST}
database:
  path: /tmp/terraledger.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Hedera.OperatorKey)
}

func TestLoad_InvalidNetwork(t *testing.T) {
	path := writeConfig(t, `
hedera:
  network: devnet
database:
  path: /tmp/terraledger.db
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hedera.network")
}

func TestLoad_MissingDatabasePath(t *testing.T) {
	path := writeConfig(t, `
hedera:
  network: testnet
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.path")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
