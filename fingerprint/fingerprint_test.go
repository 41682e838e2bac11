package fingerprint_test

import (
	"net/http/httptest"
	"testing"

	"github.com/hirelane/interview-server/fingerprint"
	"github.com/stretchr/testify/require"
)

const (
	chromeUA  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"
	edgeUA    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36 Edg/125.0.0.0"
	firefoxUA = "Mozilla/5.0 (X11; Linux x86_64; rv:126.0) Gecko/20100101 Firefox/126.0"
	safariUA  = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"
)

func TestDeriveStableAcrossRequests(t *testing.T) {
	first := fingerprint.Derive(chromeUA, "203.0.113.7")
	second := fingerprint.Derive(chromeUA, "203.0.113.7")
	require.Equal(t, first, second)
	require.Len(t, first, 12)
}

func TestDeriveIgnoresMinorUserAgentChanges(t *testing.T) {
	// Same browser family + same address must produce the same token even if
	// the full user-agent string differs between requests.
	updatedChrome := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
	require.Equal(t,
		fingerprint.Derive(chromeUA, "203.0.113.7"),
		fingerprint.Derive(updatedChrome, "203.0.113.7"))
}

func TestDeriveDistinguishesBrowsersAndAddresses(t *testing.T) {
	base := fingerprint.Derive(chromeUA, "203.0.113.7")
	require.NotEqual(t, base, fingerprint.Derive(firefoxUA, "203.0.113.7"))
	require.NotEqual(t, base, fingerprint.Derive(safariUA, "203.0.113.7"))
	require.NotEqual(t, base, fingerprint.Derive(edgeUA, "203.0.113.7"))
	require.NotEqual(t, base, fingerprint.Derive(chromeUA, "203.0.113.8"))
}

func TestDeriveAbsentMetadataNeverFails(t *testing.T) {
	token := fingerprint.Derive("", "")
	require.Len(t, token, 12)
	require.Equal(t, token, fingerprint.Derive("", ""))
}

func TestFromRequestPrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("User-Agent", chromeUA)
	r.RemoteAddr = "10.0.0.1:50000"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	require.Equal(t, fingerprint.Derive(chromeUA, "203.0.113.7"), fingerprint.FromRequest(r))
}

func TestFromRequestFallsBackToRemoteAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("User-Agent", firefoxUA)
	r.RemoteAddr = "192.0.2.4:40000"

	require.Equal(t, fingerprint.Derive(firefoxUA, "192.0.2.4"), fingerprint.FromRequest(r))
}
