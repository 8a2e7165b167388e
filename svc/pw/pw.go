package pw

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/crypto/md4"
	"golang.org/x/text/encoding/unicode"

	"hibp/pkg/domain"
	"hibp/svc/cache"
	"hibp/svc/rest"
)

const prefixLen = 5

// Passwords implements the k-Anonymity exposure check: only the first
// five characters of the digest ever leave the process. No API key is
// involved on this endpoint.
type Passwords struct {
	rest  *rest.Client
	cache *cache.RangeLRU
}

func New(c *rest.Client, rangeCache *cache.RangeLRU) *Passwords {
	return &Passwords{rest: c, cache: rangeCache}
}

// Check reports how many times a password appears in the corpus, 0 if
// never. useNTLM selects NTLM digests instead of SHA-1; addPadding asks
// the server to pad the response with decoy entries, which changes
// nothing about the matching below.
func (p *Passwords) Check(ctx context.Context, password string, useNTLM, addPadding bool) (int, error) {
	var digest string
	if useNTLM {
		var err error
		digest, err = NTLMHash(password)
		if err != nil {
			return 0, err
		}
	} else {
		digest = SHA1Hash(password)
	}
	return p.CheckHash(ctx, digest, useNTLM, addPadding)
}

// CheckHash is Check for callers that already hold the full uppercase
// hex digest.
func (p *Passwords) CheckHash(ctx context.Context, digest string, useNTLM, addPadding bool) (int, error) {
	digest = strings.ToUpper(digest)
	if len(digest) <= prefixLen || !isHex(digest) {
		return 0, domain.ErrInvalidRequest.WithMsg("digest must be a full hex hash")
	}
	suffixes, err := p.SearchRange(ctx, digest[:prefixLen], useNTLM, addPadding)
	if err != nil {
		return 0, err
	}
	return suffixes[digest[prefixLen:]], nil
}

// SearchRange fetches every suffix sharing the given 5-hex-character
// prefix, mapped to its exposure count. The prefix is validated before
// any network call; the server would reject anything else with a 400.
func (p *Passwords) SearchRange(ctx context.Context, prefix string, useNTLM, addPadding bool) (map[string]int, error) {
	prefix = strings.ToUpper(prefix)
	if len(prefix) != prefixLen || !isHex(prefix) {
		return nil, domain.ErrInvalidRequest.WithMsg("hash prefix must be exactly 5 hex characters")
	}

	cacheKey := "sha1:" + prefix
	if useNTLM {
		cacheKey = "ntlm:" + prefix
	}
	if p.cache != nil {
		if suffixes, ok := p.cache.Get(cacheKey); ok {
			return maps.Clone(suffixes), nil
		}
	}

	var q url.Values
	if useNTLM {
		q = url.Values{"mode": []string{"ntlm"}}
	}
	var hdr http.Header
	if addPadding {
		hdr = http.Header{"Add-Padding": []string{"true"}}
	}
	body, err := p.rest.GetPasswords(ctx, "range/"+prefix, q, hdr)
	if err != nil {
		return nil, err
	}

	suffixes := parseRange(string(body), addPadding)
	if p.cache != nil {
		p.cache.Set(cacheKey, maps.Clone(suffixes))
	}
	return suffixes, nil
}

// parseRange reads the newline-delimited SUFFIX:COUNT body. Padded
// decoy entries carry a count of 0 and are dropped when padding was
// requested.
func parseRange(body string, padded bool) map[string]int {
	suffixes := make(map[string]int)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		suffix, count, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil {
			continue
		}
		if padded && n == 0 {
			continue
		}
		suffixes[strings.TrimSpace(suffix)] = n
	}
	return suffixes
}

// SHA1Hash returns the uppercase hex SHA-1 digest of a password.
func SHA1Hash(password string) string {
	sum := sha1.Sum([]byte(password))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// NTLMHash returns the uppercase hex MD4 digest of the password's
// UTF-16LE encoding, the format the range API serves in ntlm mode.
func NTLMHash(password string) (string, error) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	encoded, err := enc.String(password)
	if err != nil {
		return "", domain.ErrInvalidRequest.WithMsg("encoding password for NTLM: " + err.Error())
	}
	h := md4.New()
	h.Write([]byte(encoded))
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil))), nil
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'F':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}
