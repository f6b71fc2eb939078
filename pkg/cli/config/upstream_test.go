package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/scout/pkg/cli/config"
	"github.com/m-mizutani/scout/pkg/infra/scloud"
)

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upstream.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func defaultUpstream() *config.Upstream {
	return &config.Upstream{
		BaseURL:   scloud.DefaultBaseURL,
		DLBaseURL: scloud.DefaultDLBaseURL,
		UserAgent: scloud.DefaultUserAgent,
		Timeout:   scloud.DefaultTimeout,
		Burst:     1,
	}
}

func noneSet(string) bool { return false }

func TestUpstream_LoadFillsUnsetValues(t *testing.T) {
	cfg := defaultUpstream()
	cfg.ConfigFile = writeTOML(t, `
base_url = "https://mirror.example.com"
dl_base_url = "https://dl.example.com"
user_agent = "scout-test"
timeout = "5s"
rps = 2.5
burst = 4
`)

	gt.NoError(t, cfg.Load(noneSet))
	gt.Value(t, cfg.BaseURL).Equal("https://mirror.example.com")
	gt.Value(t, cfg.DLBaseURL).Equal("https://dl.example.com")
	gt.Value(t, cfg.UserAgent).Equal("scout-test")
	gt.Value(t, cfg.Timeout).Equal(5 * time.Second)
	gt.Value(t, cfg.RPS).Equal(2.5)
	gt.Value(t, cfg.Burst).Equal(4)
}

func TestUpstream_ExplicitFlagsWin(t *testing.T) {
	cfg := defaultUpstream()
	cfg.BaseURL = "https://flag.example.com"
	cfg.ConfigFile = writeTOML(t, `
base_url = "https://mirror.example.com"
user_agent = "scout-test"
`)

	isSet := func(name string) bool { return name == "upstream-base-url" }
	gt.NoError(t, cfg.Load(isSet))
	gt.Value(t, cfg.BaseURL).Equal("https://flag.example.com")
	gt.Value(t, cfg.UserAgent).Equal("scout-test")
	gt.Value(t, cfg.DLBaseURL).Equal(scloud.DefaultDLBaseURL)
}

func TestUpstream_LoadWithoutFile(t *testing.T) {
	cfg := defaultUpstream()
	gt.NoError(t, cfg.Load(noneSet))
	gt.Value(t, cfg).Equal(defaultUpstream())
}

func TestUpstream_LoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") },
		},
		{
			name: "malformed toml",
			path: func(t *testing.T) string { return writeTOML(t, `base_url = `) },
		},
		{
			name: "bad timeout",
			path: func(t *testing.T) string { return writeTOML(t, `timeout = "soon"`) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultUpstream()
			cfg.ConfigFile = tt.path(t)
			gt.Error(t, cfg.Load(noneSet))
		})
	}
}

func TestUpstream_NewClient(t *testing.T) {
	cfg := defaultUpstream()
	cfg.BaseURL = "https://mirror.example.com/"

	client, err := cfg.NewClient()
	gt.NoError(t, err)
	gt.Value(t, client.FileURL("abc123")).Equal("https://mirror.example.com/file/abc123")
	gt.Value(t, client.DownloadURL("abc123")).Equal(scloud.DefaultDLBaseURL + "/dl/abc123")

	cfg.DLBaseURL = "not a url"
	_, err = cfg.NewClient()
	gt.Error(t, err)
}

func TestSentry_DisabledWithoutDSN(t *testing.T) {
	cfg := &config.Sentry{}
	gt.False(t, cfg.Enabled())

	flush, err := cfg.Configure()
	gt.NoError(t, err)
	flush()
}
