package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MODE", "API_URL", "PROXY_URL", "BACKEND", "TOKEN_STORE", "STATE_HOME", "HTTP_TIMEOUT", "LOG_LEVEL", "DEBUG"} {
		// t.Setenv restores the original value on cleanup.
		t.Setenv("LMS_"+k, "")
		_ = os.Unsetenv("LMS_" + k)
	}
}

func TestConfigLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, ModeProxy, cfg.Mode)
	assert.Equal(t, "http://localhost:5173", cfg.BaseURL)
	assert.Equal(t, BackendHTTP, cfg.Backend)
	assert.Equal(t, TokenStoreSQLite, cfg.TokenStore)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Empty(t, cfg.SessionDBPath())
}

func TestConfigLoad_DirectFromAPIURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("LMS_API_URL", "https://lms.example.ngrok-free.app/")
	t.Setenv("LMS_TOKEN_STORE", "memory")
	t.Setenv("LMS_HTTP_TIMEOUT", "15s")
	t.Setenv("LMS_STATE_HOME", "/tmp/lms")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, ModeDirect, cfg.Mode)
	assert.Equal(t, "https://lms.example.ngrok-free.app", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, filepath.Join("/tmp/lms", "session.db"), cfg.SessionDBPath())
}

func TestLoad_LeavesResolutionToCaller(t *testing.T) {
	clearEnv(t)
	t.Setenv("LMS_MODE", "direct")

	_, err := New()
	require.Error(t, err)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ModeDirect, cfg.Mode)
	assert.Empty(t, cfg.BaseURL)

	cfg.APIURL = "https://override.example"
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "https://override.example", cfg.BaseURL)
}

func TestResolveDefaults(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantURL string
		wantErr bool
	}{
		{name: "proxy explicit", cfg: Config{Mode: ModeProxy, ProxyURL: "http://dev:5173", APIURL: "https://ignored", Backend: BackendHTTP, TokenStore: TokenStoreMemory}, wantURL: "http://dev:5173"},
		{name: "direct without url", cfg: Config{Mode: ModeDirect, Backend: BackendHTTP, TokenStore: TokenStoreMemory}, wantErr: true},
		{name: "unknown mode", cfg: Config{Mode: "tunnel", Backend: BackendHTTP, TokenStore: TokenStoreMemory}, wantErr: true},
		{name: "unknown backend", cfg: Config{Mode: ModeProxy, ProxyURL: "http://dev", Backend: "grpc", TokenStore: TokenStoreMemory}, wantErr: true},
		{name: "unknown token store", cfg: Config{Mode: ModeProxy, ProxyURL: "http://dev", Backend: BackendMemory, TokenStore: "keychain"}, wantErr: true},
		{name: "negative timeout", cfg: Config{Mode: ModeProxy, ProxyURL: "http://dev", Backend: BackendMemory, TokenStore: TokenStoreMemory, HTTPTimeout: -time.Second}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			err := cfg.ResolveDefaults()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantURL, cfg.BaseURL)
		})
	}
}

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting()
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, BackendMemory, cfg.Backend)
}
