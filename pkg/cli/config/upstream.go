package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/scout/pkg/infra/scloud"
)

// Upstream holds configuration of the scraped file-hosting site
type Upstream struct {
	BaseURL    string
	DLBaseURL  string
	UserAgent  string
	Timeout    time.Duration
	RPS        float64
	Burst      int
	ConfigFile string
}

const (
	flagUpstreamBaseURL   = "upstream-base-url"
	flagUpstreamDLBaseURL = "upstream-dl-base-url"
	flagUpstreamUserAgent = "upstream-user-agent"
	flagUpstreamTimeout   = "upstream-timeout"
	flagUpstreamRPS       = "upstream-rps"
	flagUpstreamBurst     = "upstream-burst"
)

// Flags returns CLI flags for upstream configuration
func (c *Upstream) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        flagUpstreamBaseURL,
			Usage:       "Base URL serving search, token and file pages",
			Value:       scloud.DefaultBaseURL,
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("SCOUT_UPSTREAM_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        flagUpstreamDLBaseURL,
			Usage:       "Base URL of the dl link form",
			Value:       scloud.DefaultDLBaseURL,
			Destination: &c.DLBaseURL,
			Sources:     cli.EnvVars("SCOUT_UPSTREAM_DL_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        flagUpstreamUserAgent,
			Usage:       "User-Agent sent to the upstream",
			Value:       scloud.DefaultUserAgent,
			Destination: &c.UserAgent,
			Sources:     cli.EnvVars("SCOUT_UPSTREAM_USER_AGENT"),
		},
		&cli.DurationFlag{
			Name:        flagUpstreamTimeout,
			Usage:       "Timeout of a single upstream request",
			Value:       scloud.DefaultTimeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("SCOUT_UPSTREAM_TIMEOUT"),
		},
		&cli.FloatFlag{
			Name:        flagUpstreamRPS,
			Usage:       "Max upstream requests per second (0 = unlimited)",
			Destination: &c.RPS,
			Sources:     cli.EnvVars("SCOUT_UPSTREAM_RPS"),
		},
		&cli.IntFlag{
			Name:        flagUpstreamBurst,
			Usage:       "Burst size of the upstream rate limit",
			Value:       1,
			Destination: &c.Burst,
			Sources:     cli.EnvVars("SCOUT_UPSTREAM_BURST"),
		},
		&cli.StringFlag{
			Name:        "upstream-config",
			Usage:       "TOML file with upstream settings; explicit flags take precedence",
			Destination: &c.ConfigFile,
			Sources:     cli.EnvVars("SCOUT_UPSTREAM_CONFIG"),
		},
	}
}

type upstreamFile struct {
	BaseURL   string  `toml:"base_url"`
	DLBaseURL string  `toml:"dl_base_url"`
	UserAgent string  `toml:"user_agent"`
	Timeout   string  `toml:"timeout"`
	RPS       float64 `toml:"rps"`
	Burst     int     `toml:"burst"`
}

// Load reads ConfigFile, if any, and applies its values to every setting
// for which isSet reports false.
func (c *Upstream) Load(isSet func(name string) bool) error {
	if c.ConfigFile == "" {
		return nil
	}

	raw, err := os.ReadFile(c.ConfigFile)
	if err != nil {
		return goerr.Wrap(err, "failed to read upstream config", goerr.V("path", c.ConfigFile))
	}

	var file upstreamFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return goerr.Wrap(err, "failed to parse upstream config", goerr.V("path", c.ConfigFile))
	}

	if file.BaseURL != "" && !isSet(flagUpstreamBaseURL) {
		c.BaseURL = file.BaseURL
	}
	if file.DLBaseURL != "" && !isSet(flagUpstreamDLBaseURL) {
		c.DLBaseURL = file.DLBaseURL
	}
	if file.UserAgent != "" && !isSet(flagUpstreamUserAgent) {
		c.UserAgent = file.UserAgent
	}
	if file.Timeout != "" && !isSet(flagUpstreamTimeout) {
		d, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return goerr.Wrap(err, "invalid timeout in upstream config",
				goerr.V("path", c.ConfigFile),
				goerr.V("timeout", file.Timeout),
			)
		}
		c.Timeout = d
	}
	if file.RPS != 0 && !isSet(flagUpstreamRPS) {
		c.RPS = file.RPS
	}
	if file.Burst != 0 && !isSet(flagUpstreamBurst) {
		c.Burst = file.Burst
	}

	return nil
}

// Options converts the configuration into client options
func (c *Upstream) Options() []scloud.Option {
	return []scloud.Option{
		scloud.WithBaseURL(c.BaseURL),
		scloud.WithDownloadBaseURL(c.DLBaseURL),
		scloud.WithUserAgent(c.UserAgent),
		scloud.WithTimeout(c.Timeout),
		scloud.WithRateLimit(c.RPS, c.Burst),
	}
}

// NewClient builds the upstream client from the configuration
func (c *Upstream) NewClient() (*scloud.Client, error) {
	client, err := scloud.New(c.Options()...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create upstream client",
			goerr.V("base_url", c.BaseURL),
			goerr.V("dl_base_url", c.DLBaseURL),
		)
	}
	return client, nil
}
