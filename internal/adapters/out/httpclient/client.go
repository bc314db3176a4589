// Package httpclient calls the synchronous collaborators of the fulfillment services over
// HTTP/JSON. Every failure, including a non-2xx answer, is reported as an
// UpstreamUnavailableError naming the collaborator.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fooddelivery/internal/pkg/errs"
)

const DefaultTimeout = 5 * time.Second

type client struct {
	name    string
	baseURL string
	http    *http.Client
}

func newClient(name, baseURL string, timeout time.Duration) client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do sends body as JSON when it is not nil and decodes a 2xx answer into out when out is
// not nil.
func (c client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.NewUpstreamUnavailableError(c.name, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.NewUpstreamUnavailableError(c.name, fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode))
	}

	if out == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.NewUpstreamUnavailableError(c.name, fmt.Errorf("decode %s %s: %w", method, path, err))
	}

	return nil
}
