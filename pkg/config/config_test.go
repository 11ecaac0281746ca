package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("timecard-service")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "hourbook", cfg.Database.Database)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.NotEmpty(t, cfg.RabbitMQ.URL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HOURBOOK_SERVER_PORT", "9090")
	t.Setenv("HOURBOOK_DATABASE_HOST", "db.internal")
	t.Setenv("HOURBOOK_DATABASE_PASSWORD", "s3cret")

	cfg, err := Load("timecard-service")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "s3cret", cfg.Database.Password)
}

func TestLoadDatabaseURLPopulatesFields(t *testing.T) {
	t.Setenv("HOURBOOK_DATABASE_URL", "postgres://svc:pw@pg.internal:6432/timecards?sslmode=require")

	cfg, err := Load("timecard-service")
	require.NoError(t, err)

	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "svc", cfg.Database.User)
	assert.Equal(t, "pw", cfg.Database.Password)
	assert.Equal(t, "timecards", cfg.Database.Database)
	assert.Equal(t, "require", cfg.Database.SSLMode)
}

func TestLoadWithValidation(t *testing.T) {
	t.Run("development allows defaults", func(t *testing.T) {
		cfg, err := LoadWithValidation("timecard-service")
		require.NoError(t, err)
		assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	})

	t.Run("production rejects localhost database", func(t *testing.T) {
		t.Setenv("HOURBOOK_SERVER_ENVIRONMENT", "production")

		_, err := LoadWithValidation("timecard-service")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HOURBOOK_DATABASE")
	})

	t.Run("production rejects localhost rabbitmq", func(t *testing.T) {
		t.Setenv("HOURBOOK_SERVER_ENVIRONMENT", "production")
		t.Setenv("HOURBOOK_DATABASE_URL", "postgres://svc:pw@pg.internal:5432/timecards?sslmode=require")

		_, err := LoadWithValidation("timecard-service")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HOURBOOK_RABBITMQ_URL")
	})

	t.Run("production accepts full remote config", func(t *testing.T) {
		t.Setenv("HOURBOOK_SERVER_ENVIRONMENT", "production")
		t.Setenv("HOURBOOK_DATABASE_URL", "postgres://svc:pw@pg.internal:5432/timecards?sslmode=require")
		t.Setenv("HOURBOOK_RABBITMQ_URL", "amqp://svc:pw@mq.internal:5672/")

		cfg, err := LoadWithValidation("timecard-service")
		require.NoError(t, err)
		assert.Equal(t, EnvProduction, cfg.Server.Environment)
	})
}

func TestDatabaseConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         DatabaseConfig
		environment string
		wantErr     bool
	}{
		{
			name:        "development allows localhost",
			cfg:         DatabaseConfig{Host: "localhost"},
			environment: EnvDevelopment,
		},
		{
			name:        "production rejects localhost",
			cfg:         DatabaseConfig{Host: "localhost"},
			environment: EnvProduction,
			wantErr:     true,
		},
		{
			name:        "production rejects empty",
			cfg:         DatabaseConfig{},
			environment: EnvProduction,
			wantErr:     true,
		},
		{
			name:        "production accepts url",
			cfg:         DatabaseConfig{URL: "postgres://u:p@pg.internal:5432/d"},
			environment: EnvProduction,
		},
		{
			name:        "staging accepts remote host",
			cfg:         DatabaseConfig{Host: "pg.internal"},
			environment: EnvStaging,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.environment)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
