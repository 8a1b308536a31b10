package engine

import (
	"context"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	UserAgentBot    = "mcp-youtube-intelligence/1.0"
	UserAgentChrome = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// userAgents rotate across outbound YouTube requests. All current desktop
// browsers; the transcript endpoints reject obviously synthetic agents.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.6 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0",
}

// RandomUserAgent picks one of the rotating desktop user agents.
func RandomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

var (
	httpOnce   sync.Once
	httpClient *http.Client

	// YouTube throttles aggressive scrapers hard; stay well under their
	// radar with a small steady request rate.
	youtubeLimiter = rate.NewLimiter(rate.Every(300*time.Millisecond), 3)
)

// HTTPClient returns the shared client. Uses the injected Config client when
// present so tests can stub transport.
func HTTPClient() *http.Client {
	if cfg.HTTPClient != nil {
		return cfg.HTTPClient
	}
	httpOnce.Do(func() {
		timeout := cfg.FetchTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     60 * time.Second,
			},
		}
	})
	return httpClient
}

// WaitYouTube blocks until the YouTube rate limiter admits one request.
func WaitYouTube(ctx context.Context) error {
	return youtubeLimiter.Wait(ctx)
}

// DoYouTube performs a rate-limited, retried request against a YouTube
// endpoint with a browser user agent. Body-less requests only: retries
// clone the request, which cannot replay a consumed body. Callers that
// POST build the request inside their own RetryHTTP closure.
func DoYouTube(ctx context.Context, req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", RandomUserAgent())
	}
	if err := WaitYouTube(ctx); err != nil {
		return nil, err
	}
	return RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		return HTTPClient().Do(req.Clone(ctx))
	})
}
