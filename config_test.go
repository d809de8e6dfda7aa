package thurgood

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/thurgood/service/dao"
	"github.com/viant/thurgood/service/messaging"
)

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	ctx := context.Background()

	var testCases = []struct {
		description string
		yaml        string
		expectErr   bool
		expect      func(t *testing.T, cfg *Config)
	}{
		{
			description: "defaults kept for omitted sections",
			yaml:        "http:\n  addr: \":9090\"\n",
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ":9090", cfg.HTTP.Addr)
				assert.Equal(t, "/api/1", cfg.HTTP.Prefix)
				assert.Equal(t, dao.VendorMemory, cfg.Store.Vendor)
				assert.Equal(t, "jobs", cfg.Queue.Name)
				assert.Equal(t, 100*time.Millisecond, cfg.Queue.RetryDelay())
			},
		},
		{
			description: "fs vendors",
			yaml: `store:
  vendor: fs
  baseURL: /var/lib/thurgood/store
queue:
  vendor: fs
  name: workers
  baseURL: /var/lib/thurgood/queue
provision:
  accountsURL: https://papertrailapp.com/api/v1/distributors/accounts
  loggersURL: https://papertrailapp.com/api/v1/distributors/systems
  user: dist
  password: secret
syslog:
  forward: true
`,
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, dao.VendorFS, cfg.Store.Vendor)
				assert.Equal(t, messaging.VendorFS, cfg.Queue.Vendor)
				assert.Equal(t, "workers", cfg.Queue.Name)
				require.NotNil(t, cfg.Provision)
				assert.Equal(t, "dist", cfg.Provision.User)
				assert.True(t, cfg.Syslog.Forward)
				assert.Equal(t, "udp", cfg.Syslog.Network)
			},
		},
		{description: "fs store without base", yaml: "store:\n  vendor: fs\n", expectErr: true},
		{description: "unknown queue vendor", yaml: "queue:\n  vendor: kafka\n", expectErr: true},
		{description: "incomplete provision", yaml: "provision:\n  user: x\n", expectErr: true},
		{description: "malformed", yaml: "store: [", expectErr: true},
	}

	for i, testCase := range testCases {
		location := filepath.Join(tempDir, "config"+string(rune('a'+i))+".yaml")
		require.NoError(t, os.WriteFile(location, []byte(testCase.yaml), 0o644))
		cfg, err := LoadConfig(ctx, afs.New(), location)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		testCase.expect(t, cfg)
	}

	_, err := LoadConfig(ctx, nil, filepath.Join(tempDir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadServeConfig(t *testing.T) {
	tempDir := t.TempDir()
	ctx := context.Background()
	baseURL := filepath.Join(tempDir, "data")

	var testCases = []struct {
		description string
		yaml        string
		expectErr   bool
	}{
		{description: "fs vendors by default", yaml: "http:\n  addr: \":9090\"\n"},
		{description: "memory queue refused", yaml: "queue:\n  vendor: memory\n", expectErr: true},
	}
	for i, testCase := range testCases {
		location := filepath.Join(tempDir, "serve"+string(rune('a'+i))+".yaml")
		require.NoError(t, os.WriteFile(location, []byte(testCase.yaml), 0o644))
		cfg, err := LoadServeConfig(ctx, afs.New(), location, baseURL)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, dao.VendorFS, cfg.Store.Vendor, testCase.description)
		assert.Equal(t, messaging.VendorFS, cfg.Queue.Vendor, testCase.description)
		assert.Equal(t, ":9090", cfg.HTTP.Addr, testCase.description)
	}

	assert.NoError(t, ServeConfig(baseURL).ValidateServe())
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, DefaultConfig().ValidateServe(), "memory queue cannot serve out of process workers")
}
