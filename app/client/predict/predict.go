package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"pricebot/app/config"
	"pricebot/app/util/apperr"

	"github.com/samber/do"
)

const maxBodyExcerpt = 512

// Client talks to the TensorFlow-Serving-style prediction endpoint.
type Client struct {
	url            string
	attemptTimeout time.Duration
	policy         RetryPolicy
	httpClient     *http.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	policy := DefaultRetryPolicy()
	policy.MaxRetries = *cfg.Predictor.MaxRetries
	policy.InitialBackoff = time.Duration(cfg.Predictor.BackoffMillis) * time.Millisecond

	return &Client{
		url:            cfg.Predictor.URL,
		attemptTimeout: time.Duration(cfg.Predictor.TimeoutSeconds) * time.Second,
		policy:         policy,
		httpClient:     &http.Client{},
	}, nil
}

// Predict posts the request and returns the full prediction sequence. Which
// element of the sequence is "the" answer is the caller's call.
func (c *Client) Predict(ctx context.Context, req Request) ([]float64, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unknown, "failed to encode request", err)
	}

	var predictions []float64

	err = c.policy.Run(ctx, func() (bool, error) {
		result, retryable, attemptErr := c.attempt(ctx, body)
		if attemptErr != nil {
			if retryable {
				slog.Warn("Prediction attempt failed, will retry",
					"url", c.url,
					"error", attemptErr,
				)
			}

			return retryable, attemptErr
		}

		predictions = result
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return predictions, nil
}

func (c *Client) attempt(ctx context.Context, body []byte) ([]float64, bool, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, false, apperr.Wrap(apperr.Unknown, "failed to build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, true, apperr.Wrap(apperr.TransportFailure, "request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, apperr.Wrap(apperr.TransportFailure, "failed to read response body", err)
	}

	excerpt := respBody
	if len(excerpt) > maxBodyExcerpt {
		excerpt = excerpt[:maxBodyExcerpt]
	}

	switch {
	case resp.StatusCode >= 500:
		detail := fmt.Sprintf("status %d: %s", resp.StatusCode, excerpt)
		return nil, true, apperr.New(apperr.TransportFailure, detail)
	case resp.StatusCode >= 400:
		detail := fmt.Sprintf("status %d: %s", resp.StatusCode, excerpt)
		return nil, false, apperr.New(apperr.ServiceFailure, detail)
	}

	var parsed wireResponse
	if err = json.Unmarshal(respBody, &parsed); err != nil {
		return nil, false, apperr.Wrap(apperr.ServiceFailure, "malformed response body", err)
	}

	if len(parsed.Predictions) == 0 {
		return nil, false, apperr.New(apperr.ServiceFailure, "response contains no predictions")
	}

	return parsed.Predictions, false, nil
}
