package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// do performs one HTTP round trip: encode, send, map errors, decode. Every
// request carries the API key and a fresh request id for correlation with
// server-side logs.
func (c *Client) do(ctx context.Context, method, path string, params map[string]any, in, out any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + encodeParams(params)
	}

	var body io.Reader
	if in != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(in); err != nil {
			return fmt.Errorf("rest: failed to encode request body: %w", err)
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("rest: failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("requestId", requestID))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("rest: %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseErrorResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("rest: failed to decode response body: %w", err)
	}
	return nil
}

// encodeParams renders the flat parameter map into a query string. Slice
// values are joined with commas, the remote convention for multi-valued
// filters. Keys are sorted so encoded URLs are stable.
func encodeParams(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		values.Set(k, encodeValue(params[k]))
	}
	return values.Encode()
}

func encodeValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = encodeValue(e)
		}
		return strings.Join(parts, ",")
	case []int:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = strconv.Itoa(e)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", val)
	}
}
