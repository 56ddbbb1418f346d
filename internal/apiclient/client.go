package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qiniu/x/xlog"
	"github.com/tidwall/gjson"

	"interview-portal/internal/metrics"
	"interview-portal/internal/reqid"
)

// GenericFailure is shown when the API gives no usable message.
const GenericFailure = "Something went wrong. Please try again."

// Result is the uniform outcome of every call: {success, data?, error?}.
// A failed Result is a RequestFailure; callers show Error as a banner.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Status  int    `json:"-"`
}

func failed[T any](status int, msg string) Result[T] {
	return Result[T]{Success: false, Error: msg, Status: status}
}

// Client talks to the scheduling REST API. There are no retries, no
// timeout beyond the caller's context, and no caching.
type Client struct {
	base  string
	http  *http.Client
	token string
	loc   *time.Location
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLocation sets the zone that form date/time fields are read in.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.loc = loc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{},
		loc:  time.UTC,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithToken returns a copy that sends the bearer token on every call.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

type request struct {
	op          string
	method      string
	path        string
	body        io.Reader
	contentType string
}

func jsonRequest(op, method, path string, payload any) (request, error) {
	req := request{op: op, method: method, path: path}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return req, fmt.Errorf("%s: encode: %w", op, err)
		}
		req.body = bytes.NewReader(b)
		req.contentType = "application/json"
	}
	return req, nil
}

// do performs one round trip and folds every outcome into a Result.
func do[T any](ctx context.Context, c *Client, r request) (res Result[T]) {
	rid := reqid.From(ctx)
	if rid == "" {
		rid = uuid.New().String()
	}
	xl := xlog.New(rid)
	start := time.Now()
	defer func() {
		outcome := "ok"
		if !res.Success {
			outcome = "failed"
		}
		metrics.APICalls.WithLabelValues(r.op, outcome).Inc()
		metrics.APICallDuration.WithLabelValues(r.op).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, r.method, c.base+r.path, r.body)
	if err != nil {
		xl.Errorf("%s: build request: %v", r.op, err)
		return failed[T](0, GenericFailure)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(reqid.Header, rid)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		xl.Errorf("%s %s %s: %v", r.op, r.method, r.path, err)
		return failed[T](0, GenericFailure)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		xl.Errorf("%s: read body: %v", r.op, err)
		return failed[T](resp.StatusCode, GenericFailure)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ErrorMessage(body)
		xl.Infof("%s %s %s -> %d: %s", r.op, r.method, r.path, resp.StatusCode, msg)
		return failed[T](resp.StatusCode, msg)
	}

	res = Result[T]{Success: true, Status: resp.StatusCode}
	if len(bytes.TrimSpace(body)) == 0 {
		return res
	}
	if err := json.Unmarshal(body, &res.Data); err != nil {
		xl.Errorf("%s: decode %d body: %v", r.op, resp.StatusCode, err)
		return failed[T](resp.StatusCode, GenericFailure)
	}
	xl.Debugf("%s %s %s -> %d", r.op, r.method, r.path, resp.StatusCode)
	return res
}

// ErrorMessage pulls a human readable message out of an error body:
// "message" first, then "error" (string, or object with a message), then
// GenericFailure.
func ErrorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return GenericFailure
	}
	doc := gjson.ParseBytes(body)
	if m := doc.Get("message"); m.Type == gjson.String && strings.TrimSpace(m.String()) != "" {
		return m.String()
	}
	e := doc.Get("error")
	switch {
	case e.Type == gjson.String && strings.TrimSpace(e.String()) != "":
		return e.String()
	case e.IsObject():
		if m := e.Get("message"); m.Type == gjson.String && m.String() != "" {
			return m.String()
		}
	}
	return GenericFailure
}
