package mineru

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ds124wfegd/mineru-extract/internal/entity"
	"github.com/ds124wfegd/mineru-extract/internal/pkg/metrics"
	"github.com/ds124wfegd/mineru-extract/internal/pkg/reqid"
	"github.com/sirupsen/logrus"
)

const parsePath = "/file_parse"

type Client interface {
	ParseFile(ctx context.Context, apiServerURL string, form *Form) (*Response, error)
}

type httpClient struct {
	httpClient *http.Client
}

// NewClient returns a file_parse client. A zero timeout keeps the
// http.Client default of no timeout. Redirects are not followed so that a
// 3xx reply surfaces as an upstream status error.
func NewClient(timeout time.Duration) Client {
	return &httpClient{httpClient: &http.Client{
		Timeout: timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

func ParseURL(apiServerURL string) string {
	return strings.TrimSuffix(apiServerURL, "/") + parsePath
}

// ParseFile sends one POST to <apiServerURL>/file_parse. Statuses of 300 and
// above come back as *entity.UpstreamStatusError.
func (c *httpClient) ParseFile(ctx context.Context, apiServerURL string, form *Form) (*Response, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, err
	}
	sent := body.Len()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, ParseURL(apiServerURL), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create file_parse request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	if id := reqid.FromContext(ctx); id != "" {
		httpReq.Header.Set(reqid.Header, id)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.RecordUpstream(0, time.Since(startTime), sent)
		return nil, fmt.Errorf("request to MinerU failed after %v: %w", time.Since(startTime), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	duration := time.Since(startTime)
	metrics.RecordUpstream(resp.StatusCode, duration, sent)
	if err != nil {
		return nil, fmt.Errorf("failed to read MinerU response body: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"request_id":   reqid.FromContext(ctx),
		"filename":     form.File.Filename,
		"status":       resp.StatusCode,
		"duration":     duration,
		"sent_bytes":   sent,
		"recv_bytes":   len(respBody),
		"content_type": resp.Header.Get("Content-Type"),
	}).Info("MinerU file_parse completed")

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &entity.UpstreamStatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	ct := resp.Header.Get("Content-Type")
	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: ct,
		Kind:        classify(ct, respBody),
		Body:        respBody,
	}, nil
}
