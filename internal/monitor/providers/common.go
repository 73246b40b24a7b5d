package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/christian-pebl/DataApp-sub010/internal/diag"
)

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// HTTPClientConfig bundles HTTP client and resilience settings.
type HTTPClientConfig struct {
	Client  *http.Client
	Backoff BackoffConfig
}

const (
	maxBodyBytes    = 1 << 20
	errorDetailMax  = 200
	defaultRetries  = 2
	defaultInterval = 500 * time.Millisecond
	defaultMaxWait  = 5 * time.Second
)

var (
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

func defaultBackoff() BackoffConfig {
	return BackoffConfig{
		MaxRetries:      defaultRetries,
		InitialInterval: defaultInterval,
		MaxInterval:     defaultMaxWait,
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// fetchAndLog performs one logical GET against url and decodes the JSON body
// into out. It appends exactly one "pending" step before the request and
// exactly one terminal step after it: "error" on transport failure, non-2xx
// status or undecodable body, "success" otherwise. Retries and the circuit
// breaker operate inside the single logical call and never add extra steps.
func fetchAndLog(ctx context.Context, cfg HTTPClientConfig, cb *gobreaker.CircuitBreaker, url string, log *diag.Log, stepName string, out any) error {
	log.Pending(stepName)

	body, err := doGetWithResilience(ctx, cfg, cb, url, stepName)
	if err != nil {
		var httpErr *UpstreamHTTPError
		if errors.As(err, &httpErr) {
			log.AppendDetails(diag.StatusError,
				fmt.Sprintf("%s: upstream returned HTTP %d", stepName, httpErr.Status),
				truncate(httpErr.Body, errorDetailMax))
		} else {
			log.AppendDetails(diag.StatusError,
				fmt.Sprintf("%s: request failed", stepName),
				truncate(err.Error(), errorDetailMax))
		}
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		log.AppendDetails(diag.StatusError,
			fmt.Sprintf("%s: response is not valid JSON", stepName),
			truncate(err.Error(), errorDetailMax))
		return &UpstreamDataError{Step: stepName, Reason: fmt.Sprintf("decode response: %v", err)}
	}

	log.Success(stepName)
	return nil
}

// doGetWithResilience executes the GET with retries, exponential backoff and a
// circuit breaker. Non-2xx statuses become *UpstreamHTTPError; only 429 and
// 5xx are retried.
func doGetWithResilience(ctx context.Context, cfg HTTPClientConfig, cb *gobreaker.CircuitBreaker, url, stepName string) ([]byte, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}
	backoff := cfg.Backoff
	if backoff.InitialInterval <= 0 {
		backoff = defaultBackoff()
	}

	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		result, err := cb.Execute(func() (interface{}, error) {
			resp, execErr := cfg.Client.Do(req)
			if execErr != nil {
				return nil, execErr
			}
			defer resp.Body.Close()

			body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			if readErr != nil {
				return nil, readErr
			}

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return nil, &UpstreamHTTPError{
					Status: resp.StatusCode,
					Step:   stepName,
					Body:   string(body),
				}
			}
			return body, nil
		})

		if err == nil {
			body, ok := result.([]byte)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return body, nil
		}

		// If circuit is open, propagate immediately.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		// Client-side HTTP errors are terminal; rate limiting and server
		// errors are worth retrying.
		var httpErr *UpstreamHTTPError
		if errors.As(err, &httpErr) && httpErr.Status != http.StatusTooManyRequests && httpErr.Status < 500 {
			return nil, err
		}

		lastErr = err
		if attempt >= backoff.MaxRetries {
			return nil, lastErr
		}

		delay := backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if backoff.MaxInterval > 0 && delay > backoff.MaxInterval {
			delay = backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
			// continue to next attempt
		}

		attempt++
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
