package github

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/m-mizutani/ctxlog"
)

const (
	retryAttempts = 5
	retryDelay    = 1 * time.Second
	retryMaxDelay = 30 * time.Second
	// maxRequestSize bounds buffered request bodies for retry replay
	maxRequestSize = 1 * 1024 * 1024
)

// retryTransport wraps an http.RoundTripper with exponential backoff for
// rate limits and transient server errors
type retryTransport struct {
	base http.RoundTripper
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	logger := ctxlog.From(req.Context())

	var bodyBytes []byte
	if req.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(io.LimitReader(req.Body, maxRequestSize))
		if err != nil {
			return nil, err
		}
		if closeErr := req.Body.Close(); closeErr != nil {
			logger.Debug("Failed to close request body", "error", closeErr)
		}
	}

	var resp *http.Response

	err := retry.Do(
		func() error {
			if bodyBytes != nil {
				req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			}

			var err error
			resp, err = base.RoundTrip(req)
			if err != nil {
				return err
			}

			if retryableStatus(resp) {
				logger.Info("Retrying GitHub API request",
					"status", resp.StatusCode,
					"url", req.URL.String(),
				)
				drainAndClose(resp)
				return &retryableError{statusCode: resp.StatusCode}
			}

			return nil
		},
		retry.Context(req.Context()),
		retry.Attempts(retryAttempts),
		retry.Delay(retryDelay),
		retry.MaxDelay(retryMaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(func(err error) bool {
			var retryErr *retryableError
			return errors.As(err, &retryErr)
		}),
	)
	if err != nil {
		var retryErr *retryableError
		if errors.As(err, &retryErr) {
			return resp, nil
		}
		return nil, err
	}

	return resp, nil
}

// retryableStatus reports whether the response warrants a retry: 429, 5xx,
// or the 403 GitHub uses for exhausted rate limits
func retryableStatus(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if resp.StatusCode >= 500 && resp.StatusCode < 600 {
		return true
	}
	if resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-Ratelimit-Remaining") == "0" {
		return true
	}
	return false
}

// drainAndClose buffers the response body so the final attempt's response
// stays readable for the caller after the connection is released
func drainAndClose(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRequestSize))
	_ = resp.Body.Close()
	if err != nil {
		body = nil
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
}

type retryableError struct {
	statusCode int
}

func (e *retryableError) Error() string {
	return http.StatusText(e.statusCode)
}
