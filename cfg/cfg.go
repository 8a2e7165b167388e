package cfg

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultBaseURL      = "https://haveibeenpwned.com/api/v3"
	DefaultPasswordsURL = "https://api.pwnedpasswords.com"
	DefaultUserAgent    = "hibp-go-client"
	DefaultTimeout      = 30 * time.Second
)

type Secret struct {
	value []byte
}

func NewSecret(s string) Secret {
	return Secret{value: []byte(s)}
}
func (s Secret) Value() string {
	return string(s.value)
}
func (s Secret) Empty() bool {
	return len(s.value) == 0
}
func (s Secret) Wipe() {
	for i := range s.value {
		s.value[i] = 0
	}
}
func (s Secret) String() string {
	return "***REDACTED***"
}

type Cfg struct {
	// APIKey is required for breach/paste/stealer-log/subscription
	// endpoints and unused by the password endpoints.
	APIKey       Secret
	UserAgent    string
	Timeout      time.Duration
	BaseURL      string
	PasswordsURL string
	Environment  string
	LogLevel     string
	// RangeCacheSize > 0 enables an in-process LRU for password range
	// responses. Disabled by default: the client holds no state unless
	// asked to.
	RangeCacheSize int
	RangeCacheTTL  time.Duration
	// RequestsPerMinute > 0 paces outbound calls to the subscription's
	// allowance before they are sent. Never a retry. Disabled by default.
	RequestsPerMinute int
}

// Default returns the configuration an uncustomized client runs with:
// no API key, default user agent, 30s timeout, no cache, no pacing.
func Default() *Cfg {
	return &Cfg{
		UserAgent:     DefaultUserAgent,
		Timeout:       DefaultTimeout,
		BaseURL:       DefaultBaseURL,
		PasswordsURL:  DefaultPasswordsURL,
		Environment:   "production",
		LogLevel:      "info",
		RangeCacheTTL: 30 * time.Minute,
	}
}

func Load() (*Cfg, error) {
	c := Default()
	c.APIKey = NewSecret(getEnv("HIBP_API_KEY", ""))
	c.UserAgent = getEnv("HIBP_USER_AGENT", DefaultUserAgent)
	c.BaseURL = getEnv("HIBP_BASE_URL", DefaultBaseURL)
	c.PasswordsURL = getEnv("HIBP_PASSWORDS_URL", DefaultPasswordsURL)
	c.Environment = getEnv("ENVIRONMENT", "production")
	c.LogLevel = getEnv("LOG_LEVEL", "info")
	var err error
	c.Timeout, err = getDuration("HIBP_TIMEOUT", DefaultTimeout)
	if err != nil {
		return nil, err
	}
	c.RangeCacheSize, err = getInt("HIBP_RANGE_CACHE_SIZE", 0)
	if err != nil {
		return nil, err
	}
	c.RangeCacheTTL, err = getDuration("HIBP_RANGE_CACHE_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	c.RequestsPerMinute, err = getInt("HIBP_RPM", 0)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func Validate(c *Cfg) error {
	if c.UserAgent == "" {
		return errors.New("user agent is required, the API rejects requests without one")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.Timeout > 5*time.Minute {
		return errors.New("timeout cannot exceed 5 minutes")
	}
	for _, u := range []string{c.BaseURL, c.PasswordsURL} {
		parsed, err := url.Parse(u)
		if err != nil {
			return fmt.Errorf("invalid base URL %q: %w", u, err)
		}
		if parsed.Scheme != "https" && parsed.Scheme != "http" {
			return fmt.Errorf("base URL %q must be http(s)", u)
		}
		if parsed.Host == "" {
			return fmt.Errorf("base URL %q has no host", u)
		}
	}
	if c.RangeCacheSize < 0 {
		return errors.New("range cache size cannot be negative")
	}
	if c.RangeCacheSize > 100000 {
		return errors.New("range cache size too large")
	}
	if c.RangeCacheSize > 0 && c.RangeCacheTTL < time.Minute {
		return errors.New("range cache TTL must be at least 1 minute")
	}
	if c.RequestsPerMinute < 0 {
		return errors.New("requests per minute cannot be negative")
	}
	return nil
}

func (c *Cfg) Wipe() {
	c.APIKey.Wipe()
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
func getInt(key string, fallback int) (int, error) {
	s := getEnv(key, "")
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return v, nil
}
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := getEnv(key, "")
	if s == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return v, nil
}
