package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/ferus-web/sanchar/logutil"
	"github.com/ferus-web/sanchar/url"
)

// sharedTransport is reused by every Client so connection pools are shared.
var sharedTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

// Response is the result of a completed fetch.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	URL        string
}

// Client executes GET requests for parsed URLs with retry, per-host circuit
// breaking and per-host rate limiting.
type Client struct {
	cfg        Config
	httpClient *http.Client

	mu       sync.RWMutex
	breakers map[string]*gobreaker.CircuitBreaker
	limiters map[string]*rate.Limiter
}

// New creates a Client from the given config.
func New(cfg Config) *Client {
	metricsEnabled.Store(cfg.EnableMetrics)

	return &Client{
		cfg:      cfg,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
		limiters: make(map[string]*rate.Limiter),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: sharedTransport,
		},
	}
}

// Fetch retrieves the resource a parsed URL points at. The URL's fields are
// trusted as already validated by the parser; Fetch only refuses schemes the
// underlying transport cannot speak.
func (c *Client) Fetch(ctx context.Context, u url.URL) (*Response, error) {
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	if limiter := c.limiterFor(u.Hostname); limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	target := requestTarget(u)
	start := time.Now()

	var resp *Response
	var err error
	if breaker := c.breakerFor(u.Hostname); breaker != nil {
		var out any
		out, err = breaker.Execute(func() (any, error) {
			return c.fetchWithRetry(ctx, target)
		})
		if errors.Is(err, gobreaker.ErrOpenState) {
			err = fmt.Errorf("circuit breaker open for %s: %w", u.Hostname, err)
		}
		if out != nil {
			resp = out.(*Response)
		}
	} else {
		resp, err = c.fetchWithRetry(ctx, target)
	}

	recordFetch(u.Hostname, resp, err, time.Since(start))
	return resp, err
}

// requestTarget rebuilds the wire form of a parsed URL for the transport:
// the inferred port is always explicit, the fragment never leaves the
// client.
func requestTarget(u url.URL) string {
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	b.WriteString(u.Hostname)
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(uint64(u.Port), 10))
	b.WriteByte('/')
	b.WriteString(u.Path)
	if u.Query != "" {
		b.WriteByte('?')
		b.WriteString(u.Query)
	}
	return b.String()
}

// fetchWithRetry performs up to cfg.Retries+1 attempts. 5xx responses and
// transient network errors are retried, anything else is returned as-is.
func (c *Client) fetchWithRetry(ctx context.Context, target string) (*Response, error) {
	attempts := c.cfg.Retries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(attempt-1) * 500 * time.Millisecond
			logutil.Debug("retrying fetch", "url", target, "attempt", attempt, "backoff", backoff)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.doRequest(ctx, target)
		if err != nil {
			lastErr = err
			if !isRetryable(err) {
				return nil, err
			}
			continue
		}

		if resp.StatusCode >= 500 && attempt < attempts {
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("fetch failed after %d attempts: %w", attempts, lastErr)
}

func (c *Client) doRequest(ctx context.Context, target string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	return &Response{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       body,
		URL:        target,
	}, nil
}

// isRetryable classifies transport errors worth another attempt.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := err.Error()
	for _, s := range []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network is unreachable",
		"deadline exceeded",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

func (c *Client) breakerFor(host string) *gobreaker.CircuitBreaker {
	if !c.cfg.EnableBreaker {
		return nil
	}

	c.mu.RLock()
	breaker, ok := c.breakers[host]
	c.mu.RUnlock()
	if ok {
		return breaker
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if breaker, ok := c.breakers[host]; ok {
		return breaker
	}

	settings := gobreaker.Settings{
		Name:        host,
		MaxRequests: 3,
		Interval:    c.cfg.BreakerTimeout,
		Timeout:     c.cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= uint32(c.cfg.BreakerFailures) && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logutil.Warn("circuit breaker state change", "host", name, "from", from.String(), "to", to.String())
			recordBreakerState(name, to)
		},
	}

	breaker = gobreaker.NewCircuitBreaker(settings)
	c.breakers[host] = breaker
	return breaker
}

func (c *Client) limiterFor(host string) *rate.Limiter {
	if c.cfg.RateLimit <= 0 {
		return nil
	}

	c.mu.RLock()
	limiter, ok := c.limiters[host]
	c.mu.RUnlock()
	if ok {
		return limiter
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if limiter, ok := c.limiters[host]; ok {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(c.cfg.RateLimit), c.cfg.RateLimit*2)
	c.limiters[host] = limiter
	return limiter
}
