package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const maxErrorBody = 64 << 10

// errorEnvelope is the body upstream sends alongside a non-2xx status.
type errorEnvelope struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
}

// Execute performs a GET on rawURL and decodes a JSON body into T.
//
// bearer, when non-empty, is sent as "Authorization: Bearer <bearer>".
// Every failure is one of ErrUnauthorized, *APIError, *RequestError or
// *DecodeError. Nothing is retried or cached.
func Execute[T any](ctx context.Context, doer Doer, rawURL, bearer string) (T, error) {
	var zero T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return zero, &RequestError{Err: fmt.Errorf("creating request: %w", redact(err))}
	}
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	res, err := doer.Do(req)
	if err != nil {
		return zero, &RequestError{Err: redact(err)}
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxErrorBody))
		return zero, ErrUnauthorized
	case res.StatusCode < 200 || res.StatusCode > 299:
		return zero, &APIError{StatusCode: res.StatusCode, Message: errorMessage(res.Body, res.StatusCode)}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return zero, &RequestError{Err: fmt.Errorf("reading body: %w", err)}
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, &DecodeError{Err: err}
	}
	return out, nil
}

func errorMessage(body io.Reader, status int) string {
	fallback := fmt.Sprintf("unexpected status code: %d", status)
	b, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return fallback
	}
	var env errorEnvelope
	if err := json.Unmarshal(b, &env); err != nil || env.Message == "" {
		return fallback
	}
	return env.Message
}

// redact strips the apiKey query parameter from URLs carried by *url.Error.
func redact(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	return &url.Error{Op: uerr.Op, URL: RedactURL(uerr.URL), Err: uerr.Err}
}

// RedactURL replaces the value of any apiKey query parameter with REDACTED.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if !q.Has("apiKey") {
		return raw
	}
	q.Set("apiKey", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}
