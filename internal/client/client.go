// Package client implements the HTTP client for the BookHive marketplace
// API. Reads are retried a bounded number of times with a fixed delay;
// mutations are attempted exactly once and reported back on failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/metrics"
)

// Config holds the client's connection and retry settings.
type Config struct {
	BaseURL     string
	ReadRetries int
	RetryDelay  time.Duration
	Timeout     time.Duration
}

// Client talks to the marketplace API on behalf of one store owner session.
type Client struct {
	baseURL     string
	httpc       *http.Client
	readRetries int
	retryDelay  time.Duration
	m           *metrics.Metrics
	log         *zap.Logger
}

// New creates a marketplace API client.
func New(cfg Config, m *metrics.Metrics, log *zap.Logger) *Client {
	if cfg.ReadRetries < 1 {
		cfg.ReadRetries = 1
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpc:       &http.Client{Timeout: cfg.Timeout},
		readRetries: cfg.ReadRetries,
		retryDelay:  cfg.RetryDelay,
		m:           m,
		log:         log,
	}
}

// apiError is the error envelope returned by the marketplace API.
type apiError struct {
	Error string `json:"error"`
}

// getJSON performs a read with bounded fixed-delay retry. Business-rule
// rejections (4xx) are terminal immediately; only transport failures and
// server errors are retried.
func (c *Client) getJSON(ctx context.Context, op, path string, out interface{}) error {
	var lastErr error

	for attempt := 0; attempt < c.readRetries; attempt++ {
		if attempt > 0 {
			c.m.ReadRetries.Inc()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return &TransportError{Op: op, Err: err}
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			lastErr = &TransportError{Op: op, Err: err}
			c.log.Warn("Read failed, retrying",
				zap.String("operation", op),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = &TransportError{Op: op, Err: readErr}
			continue
		}

		switch {
		case resp.StatusCode >= 500:
			lastErr = &TransportError{Op: op, Err: fmt.Errorf("server error %d", resp.StatusCode)}
			continue
		case resp.StatusCode >= 400:
			return remoteError(op, resp.StatusCode, body)
		}

		if err := json.Unmarshal(body, out); err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	}

	c.log.Error("Read failed after retries",
		zap.String("operation", op),
		zap.Int("attempts", c.readRetries),
		zap.Error(lastErr),
	)
	return lastErr
}

// do performs a mutation exactly once. A failed mutation is reported, never
// resubmitted automatically.
func (c *Client) do(ctx context.Context, op string, req *http.Request, out interface{}) error {
	resp, err := c.httpc.Do(req.WithContext(ctx))
	if err != nil {
		c.m.Mutations.WithLabelValues(op, "transport_error").Inc()
		c.log.Error("Mutation failed", zap.String("operation", op), zap.Error(err))
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.m.Mutations.WithLabelValues(op, "transport_error").Inc()
		return &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode >= 400 {
		c.m.Mutations.WithLabelValues(op, "rejected").Inc()
		rerr := remoteError(op, resp.StatusCode, body)
		c.log.Warn("Mutation rejected",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode),
		)
		return rerr
	}

	c.m.Mutations.WithLabelValues(op, "success").Inc()
	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// postJSON performs a single-attempt JSON mutation.
func (c *Client) postJSON(ctx context.Context, op, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(ctx, op, req, out)
}

func remoteError(op string, status int, body []byte) *RemoteError {
	var envelope apiError
	_ = json.Unmarshal(body, &envelope)
	return &RemoteError{Op: op, StatusCode: status, Message: envelope.Error}
}

// ImageFile is an in-memory image attached to a multipart submission.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// writeImagePart appends one image file to a multipart writer under the
// given field name, preserving its content type.
func writeImagePart(w *multipart.Writer, field string, img ImageFile) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, img.Name))
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(img.Data)
	return err
}

// writeJSONPart appends the listing JSON document to a multipart writer.
func writeJSONPart(w *multipart.Writer, field string, payload interface{}) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, field))
	header.Set("Content-Type", "application/json")

	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	return json.NewEncoder(part).Encode(payload)
}
