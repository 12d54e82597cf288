package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TokenSource yields the current bearer token, or an empty string when the
// session is logged out.
type TokenSource func() string

type Transport struct {
	baseURL   string
	client    *http.Client
	token     TokenSource
	userAgent string
}

type Option func(*Transport)

func WithHTTPClient(client *http.Client) Option {
	return func(t *Transport) {
		t.client = client
	}
}

func WithTokenSource(source TokenSource) Option {
	return func(t *Transport) {
		t.token = source
	}
}

func WithUserAgent(agent string) Option {
	return func(t *Transport) {
		t.userAgent = agent
	}
}

func NewTransport(baseURL string, opts ...Option) *Transport {
	t := &Transport{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    http.DefaultClient,
		token:     func() string { return "" },
		userAgent: "blueprint-go",
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Do issues one request and decodes the response body into out (when out is
// not nil). Non-2xx responses become RequestError or AuthError with the
// envelope's message attached; transport failures become NetworkError. No
// retries here, reads rely on the transport defaults.
func (t *Transport) Do(ctx context.Context, method, path string, query url.Values, payload any, out any) error {
	endpoint := t.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("unable to encode request body: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("unable to build request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := t.token(); len(token) > 0 {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Debug().Str("method", method).Str("path", path).Msg("Issuing request...")

	resp, err := t.client.Do(req)
	if err != nil {
		return &NetworkError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Path: path, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newStatusError(resp.StatusCode, envelopeMessage(raw), path)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unable to parse response of %s: %v", path, err)
	}
	return nil
}

// envelopeMessage digs the server-supplied message out of an error body. The
// body may be an envelope, a bare {message} object, or not JSON at all.
func envelopeMessage(raw []byte) string {
	var probe struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	if len(probe.Message) > 0 {
		return probe.Message
	}
	return probe.Error
}
