package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.APIPort)
	assert.Equal(t, 72*time.Hour, cfg.JWTExp)
	assert.Equal(t, "admin_master", cfg.Admin.Name)
	assert.Equal(t, "plain", cfg.PasswordScheme)
	assert.Contains(t, cfg.DBConnStr, "dbname=fintrack_db")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION_HOURS", "1")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("PASSWORD_SCHEME", "bcrypt")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")

	cfg := Load()

	assert.Equal(t, "9000", cfg.APIPort)
	assert.Equal(t, []byte("s3cret"), cfg.JWTKey)
	assert.Equal(t, time.Hour, cfg.JWTExp)
	assert.Equal(t, "root", cfg.Admin.Name)
	assert.Equal(t, "bcrypt", cfg.PasswordScheme)
	assert.Equal(t, 3, cfg.LoginMaxAttempts)
}
