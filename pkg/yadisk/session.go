package yadisk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "yadisk-client/1.0"

// ErrSessionClosed is returned when a closed session is used or closed again.
var ErrSessionClosed = errors.New("session closed")

// Session holds the auth token and default headers shared by every request
// made on behalf of one identity. The header set is read-only after
// construction.
type Session struct {
	token   string
	headers Headers
	client  *http.Client
	logger  Logger

	mu     sync.Mutex
	closed bool
}

// DefaultHeaders returns the header set every session starts with.
func DefaultHeaders(token string) Headers {
	var h Headers
	h.Set("User-Agent", DefaultUserAgent)
	h.Set("Accept-Encoding", "gzip, deflate")
	h.Set("Accept", "*/*")
	h.Set("Connection", "keep-alive")
	if token != "" {
		h.Set("Authorization", "OAuth "+token)
	}
	return h
}

// NewSession creates a session for token. A nil httpClient gets a client
// with its own transport so that Close releases only this session's
// connections.
func NewSession(token string, httpClient *http.Client, logger Logger) *Session {
	if httpClient == nil {
		httpClient = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Session{
		token:   token,
		headers: DefaultHeaders(token),
		client:  httpClient,
		logger:  logger,
	}
}

// Token returns the session's OAuth token.
func (s *Session) Token() string {
	return s.token
}

// Headers returns a copy of the session's default headers.
func (s *Session) Headers() Headers {
	return s.headers.Merge()
}

// Close releases idle connections held by the session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true
	s.client.CloseIdleConnections()
	return nil
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// exchange is the input of one HTTP attempt.
type exchange struct {
	method  string
	url     string
	params  url.Values
	headers Headers
	body    io.Reader
	// size is the body length when known and positive.
	size    int64
	timeout time.Duration
}

// do performs exactly one HTTP exchange. Transport failures come back as
// *TransportError unless ctx itself was cancelled. The returned body is
// decompressed and cancels the attempt's deadline when closed.
func (s *Session) do(ctx context.Context, ex exchange) (*http.Response, error) {
	if s.isClosed() {
		return nil, ErrSessionClosed
	}

	attemptCtx, cancel := ctx, context.CancelFunc(func() {})
	if ex.timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, ex.timeout)
	}

	target := ex.url
	if len(ex.params) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + ex.params.Encode()
	}

	req, err := http.NewRequestWithContext(attemptCtx, ex.method, target, ex.body)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: creating request for %s %s: %v", ErrInvalidArgument, ex.method, target, err)
	}
	if ex.size > 0 {
		req.ContentLength = ex.size
	}
	s.headers.Merge(ex.headers).apply(req)

	s.logger.Debugf("%s %s", ex.method, target)
	res, err := s.client.Do(req)
	if err != nil {
		cancel()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &TransportError{Err: err}
	}

	body, err := decodeContent(res)
	if err != nil {
		closeBodySafely(res.Body, s.logger, ex.method+" "+target)
		cancel()
		return nil, &TransportError{Err: err}
	}
	res.Body = &attemptBody{Reader: body, closer: res.Body, cancel: cancel, ctx: ctx}
	return res, nil
}

// attemptBody ties the lifetime of an attempt's deadline to its body.
type attemptBody struct {
	io.Reader
	closer io.Closer
	cancel context.CancelFunc
	ctx    context.Context
}

func (b *attemptBody) Read(p []byte) (int, error) {
	n, err := b.Reader.Read(p)
	if err != nil && err != io.EOF {
		if b.ctx.Err() != nil {
			return n, b.ctx.Err()
		}
		return n, &TransportError{Err: err}
	}
	return n, err
}

func (b *attemptBody) Close() error {
	err := b.closer.Close()
	b.cancel()
	return err
}

// decodeContent undoes the Content-Encoding the server applied. The
// transport does not do this itself because Accept-Encoding is set
// explicitly.
func decodeContent(res *http.Response) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(res.Header.Get("Content-Encoding"))) {
	case "gzip":
		if res.ContentLength == 0 {
			return res.Body, nil
		}
		return gzip.NewReader(res.Body)
	case "deflate":
		if res.ContentLength == 0 {
			return res.Body, nil
		}
		return zlib.NewReader(res.Body)
	default:
		return res.Body, nil
	}
}
