package yadisk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

type requestState int

const (
	stateConstructed requestState = iota
	stateSent
	stateProcessed
	stateFailed
)

var errRequestState = errors.New("request used out of order")

// operation describes one logical API call: what to send and which statuses
// count as success.
type operation struct {
	method      string
	url         string
	params      url.Values
	body        []byte
	contentType string
	success     []int
}

// request is a single logical exchange. It moves from constructed to sent
// (or failed) in send and from sent to processed in process.
type request struct {
	session  *Session
	logger   Logger
	op       operation
	headers  Headers
	timeout  time.Duration
	policy   RetryPolicy
	state    requestState
	status   int
	header   http.Header
	rawBody  []byte
	attempts int
}

// newRequest builds a request for op on session using resolved settings.
// The operation's content type is written before the per-call headers so a
// caller can override it.
func newRequest(session *Session, logger Logger, op operation, st settings) *request {
	var h Headers
	if op.contentType != "" {
		h.Set("Content-Type", op.contentType)
	}
	if len(op.success) == 0 {
		op.success = []int{http.StatusOK}
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &request{
		session: session,
		logger:  logger,
		op:      op,
		headers: h.Merge(st.headers),
		timeout: st.timeout,
		policy:  st.policy,
	}
}

// send drives the exchange through the retry loop.
func (r *request) send(ctx context.Context) error {
	if r.state != stateConstructed {
		return fmt.Errorf("%w: send called twice", errRequestState)
	}
	_, err := Retry(ctx, r.policy, r.logger, func(ctx context.Context, attempt int) (struct{}, error) {
		r.attempts = attempt
		return struct{}{}, r.attempt(ctx)
	})
	if err != nil {
		r.state = stateFailed
		return err
	}
	r.state = stateSent
	return nil
}

// attempt performs one HTTP exchange and classifies a non-success status.
func (r *request) attempt(ctx context.Context) error {
	var body io.Reader
	if r.op.body != nil {
		body = bytes.NewReader(r.op.body)
	}
	r.logger.Debugf("Attempt %d of %d: %s %s", r.attempts, r.policy.MaxRetries+1, r.op.method, r.op.url)
	res, err := r.session.do(ctx, exchange{
		method:  r.op.method,
		url:     r.op.url,
		params:  r.op.params,
		headers: r.headers,
		body:    body,
		timeout: r.timeout,
	})
	if err != nil {
		return err
	}
	defer closeBodySafely(res.Body, r.logger, r.op.method+" response")

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if !slices.Contains(r.op.success, res.StatusCode) {
		return newResponseError(res.StatusCode, res.Header, data)
	}
	r.status = res.StatusCode
	r.header = res.Header
	r.rawBody = data
	return nil
}

// process parses the body as JSON and hands the result to decode. A body
// that is not JSON is passed as nil. Errors from decode are reported as
// ErrInvalidResponse unless they already carry ErrWrongResourceType. A nil
// decode only checks the state.
func (r *request) process(decode func(v any) error) error {
	if r.state != stateSent {
		return fmt.Errorf("%w: process called before a successful send", errRequestState)
	}
	r.state = stateProcessed
	if decode == nil {
		return nil
	}
	if err := decode(parseJSON(r.rawBody)); err != nil {
		if errors.Is(err, ErrInvalidResponse) || errors.Is(err, ErrWrongResourceType) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func parseJSON(data []byte) any {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// decodeInto returns a decoder that maps a parsed JSON value onto dest,
// which must be a pointer. A null body is an invalid response.
func decodeInto(dest any) func(v any) error {
	return func(v any) error {
		if v == nil {
			return fmt.Errorf("%w: empty response body", ErrInvalidResponse)
		}
		return decodeValue(v, dest)
	}
}

func decodeValue(v any, dest any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  dest,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(v)
}

// call builds, sends and processes one operation, decoding the body into
// dest. dest may be nil when the response carries nothing of interest. The
// returned status tells 201 and 202 answers apart.
func (c *Client) call(ctx context.Context, op operation, opts *Options, defs opDefaults, dest any) (int, error) {
	var decode func(v any) error
	if dest != nil {
		decode = decodeInto(dest)
	}
	return c.callDecode(ctx, op, opts, defs, decode)
}

// callDecode is call with a custom decoder.
func (c *Client) callDecode(ctx context.Context, op operation, opts *Options, defs opDefaults, decode func(v any) error) (int, error) {
	st, err := resolve(opts, c.defaults, defs)
	if err != nil {
		return 0, err
	}
	if len(st.opts.Fields) > 0 {
		if op.params == nil {
			op.params = url.Values{}
		}
		op.params.Set("fields", strings.Join(st.opts.Fields, ","))
	}
	req := newRequest(c.sessionFor(st.opts), c.log(), op, st)
	if err := req.send(ctx); err != nil {
		return 0, err
	}
	if err := req.process(decode); err != nil {
		return req.status, err
	}
	return req.status, nil
}

// apiURL joins an endpoint path onto the API root.
func (c *Client) apiURL(endpoint string) string {
	return strings.TrimSuffix(c.baseURL, "/") + "/" + strings.TrimPrefix(endpoint, "/")
}

func jsonBody(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request body: %v", ErrInvalidArgument, err)
	}
	return data, nil
}
