package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("TODO_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TODO_JWT_SECRET", "k")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, 5, cfg.LoginMaxFails)
}

func TestValidate_TokenTTL(t *testing.T) {
	t.Parallel()

	cfg := Config{JWTSecret: "k", TokenTTL: 0}
	require.Error(t, cfg.Validate())

	cfg.TokenTTL = time.Hour
	require.NoError(t, cfg.Validate())
}
