package bootstrap

import (
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/stretchr/testify/assert"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "bloodhub",
		MongoMaxPoolSize: 100,
		MongoMinPoolSize: 10,
		SessionKey:       "0123456789abcdef0123456789abcdef",
		PageLimitMax:     100,
	}
}

func TestValidateConfig(t *testing.T) {
	prod := &config.CoreConfig{Env: "prod"}
	dev := &config.CoreConfig{Env: "dev"}

	tests := []struct {
		name    string
		core    *config.CoreConfig
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid", prod, func(*AppConfig) {}, false},
		{"bad uri", prod, func(c *AppConfig) { c.MongoURI = "postgres://nope" }, true},
		{"empty database", prod, func(c *AppConfig) { c.MongoDatabase = " " }, true},
		{"empty session key", dev, func(c *AppConfig) { c.SessionKey = "" }, true},
		{"short key in prod", prod, func(c *AppConfig) { c.SessionKey = "short" }, true},
		{"short key in dev", dev, func(c *AppConfig) { c.SessionKey = "short" }, false},
		{"min pool above max", prod, func(c *AppConfig) { c.MongoMinPoolSize = 200 }, true},
		{"zero page limit", prod, func(c *AppConfig) { c.PageLimitMax = 0 }, true},
		{"audit modes", prod, func(c *AppConfig) { c.AuditLogAuth, c.AuditLogAdmin = "db", "off" }, false},
		{"bad audit mode", prod, func(c *AppConfig) { c.AuditLogAdmin = "sometimes" }, true},
		{"negative retention", prod, func(c *AppConfig) { c.AuditRetention = -time.Hour }, true},
		{"retention without interval", prod, func(c *AppConfig) { c.AuditRetention = time.Hour }, true},
		{"retention with interval", prod, func(c *AppConfig) { c.AuditRetention, c.AuditPruneInterval = time.Hour, time.Minute }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(tt.core, cfg, testLogger())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList("a, b,,c "))
	assert.Nil(t, splitList(" , "))
}
