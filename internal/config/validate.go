package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Client.TokenSecret) < 32 {
		return fmt.Errorf("client.token_secret must be at least 32 characters (got %d)", len(c.Client.TokenSecret))
	}

	if err := c.Analysis.validate(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}

	if err := c.Editor.validate(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	if c.Workspace.IdleTTL <= 0 || c.Workspace.SweepInterval <= 0 {
		return fmt.Errorf("workspace: idle_ttl and sweep_interval must be > 0")
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (a *AnalysisConfig) validate() error {
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) URL (got %q)", a.BaseURL)
	}
	a.BaseURL = strings.TrimRight(a.BaseURL, "/")
	return nil
}

func (e *EditorConfig) validate() error {
	if e.SaveDebounce <= 0 {
		return fmt.Errorf("save_debounce must be > 0 (got %v)", e.SaveDebounce)
	}
	if e.MinAnalyzeWords < 1 {
		return fmt.Errorf("min_analyze_words must be >= 1 (got %d)", e.MinAnalyzeWords)
	}
	if e.MaxSaveRetries < 0 {
		return fmt.Errorf("max_save_retries must be >= 0 (got %d)", e.MaxSaveRetries)
	}
	if e.MaxSaveRetries > 0 && e.SaveRetryDelay <= 0 {
		return fmt.Errorf("save_retry_delay must be > 0 when retries are enabled")
	}
	return nil
}
