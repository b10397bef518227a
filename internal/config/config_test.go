package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SHOP_PASSCODES", "south:2222,north:1111")
	t.Setenv("PRODUCTS", "Mini,Max")
	t.Setenv("AUDIT_BCC", "audit@example.com")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, map[string]string{"north": "1111", "south": "2222"}, cfg.ShopPasscodes)
	assert.Equal(t, []string{"north", "south"}, cfg.Shops)
	assert.Equal(t, []string{"Mini", "Max"}, cfg.Products)
	assert.Equal(t, "audit@example.com", cfg.AuditBCC)
	assert.Equal(t, NotifyDirect, cfg.NotifyMode)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.False(t, cfg.SMTPConfigured())
}

func TestLoadExplicitShops(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SHOP_PASSCODES", "north:1111")
	t.Setenv("SHOPS", "north,south")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"north", "south"}, cfg.Shops)
}

func TestLoadTrimsPaddedLists(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SHOP_PASSCODES", "north:1111, south: 2222")
	t.Setenv("PRODUCTS", "Mini, Max ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"north": "1111", "south": "2222"}, cfg.ShopPasscodes)
	assert.Equal(t, []string{"north", "south"}, cfg.Shops)
	assert.Equal(t, []string{"Mini", "Max"}, cfg.Products)
}

func TestValidate(t *testing.T) {
	base := Config{
		StoreDriver:    StoreMemory,
		NotifyMode:     NotifyDirect,
		SessionBackend: SessionMemory,
		ShopPasscodes:  map[string]string{"north": "1111"},
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "postgres without url", mutate: func(c *Config) { c.StoreDriver = StorePostgres }, wantErr: "DATABASE_URL"},
		{name: "kafka without servers", mutate: func(c *Config) { c.NotifyMode = NotifyKafka }, wantErr: "KAFKA_BOOTSTRAP_SERVERS"},
		{name: "redis without url", mutate: func(c *Config) { c.SessionBackend = SessionRedis }, wantErr: "REDIS_URL"},
		{name: "unknown driver", mutate: func(c *Config) { c.StoreDriver = "sheets" }, wantErr: "STORE_DRIVER"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
