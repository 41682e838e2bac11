// Package fingerprint derives a stable per-browser identity token from request
// metadata. Only the coarsest identifiers are used: the browser family and the
// resolved client address. Finer user-agent details (OS build, minor version)
// vary between requests from the same browser and caused false mismatches, so
// they are deliberately excluded.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

const tokenLength = 12

// Derive computes the identity token from a raw user-agent string and a
// resolved client address. It always returns a value; absent metadata falls
// into an "unknown" bucket, which degrades the anti-sharing guarantee but
// never fails the caller.
func Derive(userAgent, clientIP string) string {
	if clientIP == "" {
		clientIP = "unknown"
	}
	sum := sha256.Sum256([]byte(browserFamily(userAgent) + "_" + clientIP))
	return hex.EncodeToString(sum[:])[:tokenLength]
}

// FromRequest derives the token for an inbound HTTP request, preferring
// forwarding headers over the socket address so the fingerprint survives
// reverse proxies.
func FromRequest(r *http.Request) string {
	return Derive(r.Header.Get("User-Agent"), clientAddr(r))
}

// browserFamily collapses a user-agent string to a coarse family name.
// Edge embeds "Chrome" and Chrome embeds "Safari", so order matters.
func browserFamily(userAgent string) string {
	switch {
	case strings.Contains(userAgent, "Edg"):
		return "Edge"
	case strings.Contains(userAgent, "Chrome"):
		return "Chrome"
	case strings.Contains(userAgent, "Firefox"):
		return "Firefox"
	case strings.Contains(userAgent, "Safari"):
		return "Safari"
	default:
		return "unknown"
	}
}

func clientAddr(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// First address in the chain is the original client
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
