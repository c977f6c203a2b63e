// Package frigate is an HTTP client for a single Frigate NVR instance.
package frigate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config identifies one Frigate instance.
type Config struct {
	ID  string // instance identity, referenced by camera configs
	URL string // base URL, e.g. http://frigate-a:5000
}

type Engine struct {
	cfg Config
	cli *http.Client
}

func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg: cfg,
		cli: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        30,
				MaxIdleConnsPerHost: 30,
				MaxConnsPerHost:     100,
			},
		},
	}
}

// ID returns the instance identity this engine talks to.
func (e *Engine) ID() string { return e.cfg.ID }

// BaseURL returns the instance base URL without a trailing slash.
func (e *Engine) BaseURL() string { return strings.TrimSuffix(e.cfg.URL, "/") }

// Error is a transport or payload-validation failure from the instance.
type Error struct {
	Instance string
	Path     string
	Status   int
	Body     string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("frigate[%s] %s: %s", e.Instance, e.Path, e.Err)
	}
	return fmt.Sprintf("frigate[%s] %s: status %d: %s", e.Instance, e.Path, e.Status, e.Body)
}

func (e *Error) Unwrap() error { return e.Err }

// get issues a GET and decodes the JSON payload into out.
// Usage: e.get(ctx, "/api/events", params, &events)
func (e *Engine) get(ctx context.Context, path string, params url.Values, out any) error {
	u := e.BaseURL() + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &Error{Instance: e.cfg.ID, Path: path, Err: err}
	}
	return e.do(req, path, out)
}

// call issues a bodyless request with an arbitrary method.
func (e *Engine) call(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, e.BaseURL()+path, nil)
	if err != nil {
		return &Error{Instance: e.cfg.ID, Path: path, Err: err}
	}
	return e.do(req, path, out)
}

func (e *Engine) do(req *http.Request, path string, out any) error {
	resp, err := e.cli.Do(req)
	if err != nil {
		return &Error{Instance: e.cfg.ID, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &Error{Instance: e.cfg.ID, Path: path, Status: resp.StatusCode, Body: string(body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Instance: e.cfg.ID, Path: path, Err: fmt.Errorf("decode payload: %w", err)}
	}
	return nil
}
