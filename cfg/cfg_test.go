package cfg

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	c := Default()
	if c.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q", c.BaseURL)
	}
	if c.PasswordsURL != DefaultPasswordsURL {
		t.Errorf("PasswordsURL = %q", c.PasswordsURL)
	}
	if c.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q", c.UserAgent)
	}
	if c.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", c.Timeout)
	}
	if c.RangeCacheSize != 0 {
		t.Errorf("RangeCacheSize = %d, want cache disabled", c.RangeCacheSize)
	}
	if c.RequestsPerMinute != 0 {
		t.Errorf("RequestsPerMinute = %d, want pacing disabled", c.RequestsPerMinute)
	}
	if err := Validate(c); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HIBP_API_KEY", "test-key")
	t.Setenv("HIBP_USER_AGENT", "my-app/1.0")
	t.Setenv("HIBP_TIMEOUT", "10s")
	t.Setenv("HIBP_RANGE_CACHE_SIZE", "500")
	t.Setenv("HIBP_RPM", "10")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.APIKey.Value() != "test-key" {
		t.Errorf("APIKey = %q", c.APIKey.Value())
	}
	if c.UserAgent != "my-app/1.0" {
		t.Errorf("UserAgent = %q", c.UserAgent)
	}
	if c.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", c.Timeout)
	}
	if c.RangeCacheSize != 500 {
		t.Errorf("RangeCacheSize = %d", c.RangeCacheSize)
	}
	if c.RequestsPerMinute != 10 {
		t.Errorf("RequestsPerMinute = %d", c.RequestsPerMinute)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("HIBP_TIMEOUT", "not-a-duration")
	if _, err := Load(); err == nil {
		t.Error("Load accepted invalid HIBP_TIMEOUT")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Cfg)
	}{
		{"empty user agent", func(c *Cfg) { c.UserAgent = "" }},
		{"zero timeout", func(c *Cfg) { c.Timeout = 0 }},
		{"huge timeout", func(c *Cfg) { c.Timeout = 10 * time.Minute }},
		{"bad base url scheme", func(c *Cfg) { c.BaseURL = "ftp://example.com" }},
		{"base url without host", func(c *Cfg) { c.BaseURL = "https://" }},
		{"negative cache size", func(c *Cfg) { c.RangeCacheSize = -1 }},
		{"cache ttl too short", func(c *Cfg) { c.RangeCacheSize = 10; c.RangeCacheTTL = time.Second }},
		{"negative rpm", func(c *Cfg) { c.RequestsPerMinute = -5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(c)
			if err := Validate(c); err == nil {
				t.Error("Validate accepted invalid config")
			}
		})
	}
}

func TestSecretRedacted(t *testing.T) {
	s := NewSecret("super-secret-key")
	if s.String() != "***REDACTED***" {
		t.Errorf("String() leaked: %q", s.String())
	}
	if s.Value() != "super-secret-key" {
		t.Errorf("Value() = %q", s.Value())
	}
	s.Wipe()
	for _, b := range []byte(s.Value()) {
		if b != 0 {
			t.Fatal("Wipe left residue")
		}
	}
}
