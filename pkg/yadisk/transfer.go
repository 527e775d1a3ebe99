// Package yadisk (transfer.go) drives uploads and downloads through the
// short-lived, single-use URLs the API hands out. Every attempt fetches a
// fresh URL with retries disabled, then streams the whole payload from the
// position captured at the start of the call.
package yadisk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	rifs "github.com/dsoprea/go-utility/v2/filesystem"
)

// ChunkProducer emits an upload body chunk by chunk. It is invoked afresh
// on every attempt and must produce the same bytes each time.
type ChunkProducer func(ctx context.Context, emit func(chunk []byte) error) error

// Source is the byte source of an upload: a seekable stream, a local path
// opened by the driver, or a chunk producer.
type Source struct {
	stream   io.ReadSeeker
	path     string
	producer ChunkProducer
}

// FromReader uploads from r, starting at its current position. r is never
// closed by the driver.
func FromReader(r io.ReadSeeker) Source {
	return Source{stream: r}
}

// FromPath uploads the local file at path. The driver opens and closes it.
func FromPath(path string) Source {
	return Source{path: path}
}

// FromBytes uploads an in-memory blob.
func FromBytes(data []byte) Source {
	return Source{stream: rifs.NewSeekableBufferWithBytes(data)}
}

// FromProducer uploads whatever p emits.
func FromProducer(p ChunkProducer) Source {
	return Source{producer: p}
}

// open returns the stream for the source and a closer for streams the
// driver owns.
func (s Source) open() (io.ReadSeeker, func() error, error) {
	switch {
	case s.producer != nil:
		return nil, func() error { return nil }, nil
	case s.path != "":
		local, err := SanitizeLocalPath(s.path)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.Open(local)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", s.path, err)
		}
		return f, f.Close, nil
	case s.stream != nil:
		return s.stream, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: upload source is empty", ErrInvalidArgument)
	}
}

// Destination is the byte sink of a download: a seekable writer or a local
// path created by the driver.
type Destination struct {
	stream    io.WriteSeeker
	path      string
	overwrite bool
}

// ToWriter downloads into w, starting at its current position. w is never
// closed by the driver.
func ToWriter(w io.WriteSeeker) Destination {
	return Destination{stream: w}
}

// ToPath downloads into the local file at path. An existing file is
// replaced only when overwrite is set.
func ToPath(path string, overwrite bool) Destination {
	return Destination{path: path, overwrite: overwrite}
}

// NewBuffer returns an empty in-memory destination usable with ToWriter.
func NewBuffer() *rifs.SeekableBuffer {
	return rifs.NewSeekableBuffer()
}

func (d Destination) open() (io.WriteSeeker, func() error, error) {
	switch {
	case d.path != "":
		f, err := CreateLocalFile(d.path, d.overwrite)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	case d.stream != nil:
		return d.stream, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: download destination is empty", ErrInvalidArgument)
	}
}

// linkFunc fetches a fresh transfer URL.
type linkFunc func(ctx context.Context, opts *Options) (string, error)

// staticLink returns a linkFunc that always yields href.
func staticLink(href string) linkFunc {
	return func(context.Context, *Options) (string, error) {
		return href, nil
	}
}

// linkOptions disables retries for the nested link request; the outer loop
// fetches a new URL on every attempt instead.
func linkOptions(o Options, st settings) *Options {
	o.Retries = Ptr(0)
	o.RetryInterval = Ptr(time.Duration(0))
	o.Timeout = Ptr(st.timeout)
	o.Progress = nil
	return &o
}

// transferHeaders disables keep-alive unless the caller asked otherwise,
// since each attempt may hit a different server.
func transferHeaders(st settings) Headers {
	var h Headers
	h.Set("Connection", "close")
	return h.Merge(st.headers)
}

// chunkReader caps every read at size bytes.
type chunkReader struct {
	r    io.Reader
	size int
}

func (c chunkReader) Read(p []byte) (int, error) {
	if len(p) > c.size {
		p = p[:c.size]
	}
	return c.r.Read(p)
}

type resetter interface {
	Reset()
}

// upload runs the two-step exchange under the retry policy.
func (c *Client) upload(ctx context.Context, link linkFunc, src Source, opts *Options) (err error) {
	o := c.options(opts)
	st, err := resolve(&o, c.defaults, uploadDefaults)
	if err != nil {
		return err
	}

	stream, closeSource, err := src.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeSource(); cerr != nil {
			c.log().Warnf("Closing upload source: %v", cerr)
		}
	}()

	var position, size int64
	if stream != nil {
		if position, err = stream.Seek(0, io.SeekCurrent); err != nil {
			return fmt.Errorf("reading source position: %w", err)
		}
		end, err := stream.Seek(0, io.SeekEnd)
		if err != nil {
			return fmt.Errorf("reading source size: %w", err)
		}
		size = end - position
	}

	session := c.sessionFor(o)
	_, err = Retry(ctx, st.policy, c.log(), func(ctx context.Context, attempt int) (struct{}, error) {
		href, err := link(ctx, linkOptions(o, st))
		if err != nil {
			return struct{}{}, err
		}
		if r, ok := o.Progress.(resetter); ok && attempt > 1 {
			r.Reset()
		}
		c.log().Debugf("Upload attempt %d to %s", attempt, href)

		ex := exchange{
			method:  http.MethodPut,
			url:     href,
			headers: transferHeaders(st),
			timeout: st.timeout,
		}
		if stream != nil {
			if _, err := stream.Seek(position, io.SeekStart); err != nil {
				return struct{}{}, fmt.Errorf("rewinding source: %w", err)
			}
			if size > 0 {
				ex.body = c.withProgress(chunkReader{r: io.LimitReader(stream, size), size: UploadChunkSize}, o)
				ex.size = size
			}
			return struct{}{}, c.put(ctx, session, ex)
		}
		return struct{}{}, c.putProduced(ctx, session, ex, src.producer, o)
	})
	return err
}

// put sends one upload attempt and expects 201.
func (c *Client) put(ctx context.Context, session *Session, ex exchange) error {
	res, err := session.do(ctx, ex)
	if err != nil {
		return err
	}
	defer closeBodySafely(res.Body, c.log(), "upload")
	if res.StatusCode != http.StatusCreated {
		return errorFromResponse(res)
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

// putProduced streams a producer's chunks through a pipe. A failure of the
// producer itself is returned as is and is not retried.
func (c *Client) putProduced(ctx context.Context, session *Session, ex exchange, producer ChunkProducer, o Options) error {
	pr, pw := io.Pipe()
	produced := make(chan error, 1)
	go func() {
		err := producer(ctx, func(chunk []byte) error {
			_, err := pw.Write(chunk)
			return err
		})
		_ = pw.CloseWithError(err)
		produced <- err
	}()

	ex.body = c.withProgress(pr, o)
	putErr := c.put(ctx, session, ex)
	_ = pr.CloseWithError(errUploadAborted)
	prodErr := <-produced

	if prodErr != nil && !errors.Is(prodErr, errUploadAborted) && !errors.Is(prodErr, io.ErrClosedPipe) {
		return fmt.Errorf("producing upload body: %w", prodErr)
	}
	return putErr
}

var errUploadAborted = errors.New("upload aborted")

func (c *Client) withProgress(r io.Reader, o Options) io.Reader {
	if o.Progress == nil {
		return r
	}
	return io.TeeReader(r, o.Progress)
}

// download runs the two-step exchange under the retry policy.
func (c *Client) download(ctx context.Context, link linkFunc, dst Destination, opts *Options) (err error) {
	o := c.options(opts)
	st, err := resolve(&o, c.defaults, standardDefaults)
	if err != nil {
		return err
	}

	w, closeDest, err := dst.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeDest(); cerr != nil && err == nil {
			err = fmt.Errorf("closing download destination: %w", cerr)
		}
	}()

	position, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("reading destination position: %w", err)
	}

	session := c.sessionFor(o)
	_, err = Retry(ctx, st.policy, c.log(), func(ctx context.Context, attempt int) (struct{}, error) {
		href, err := link(ctx, linkOptions(o, st))
		if err != nil {
			return struct{}{}, err
		}
		if r, ok := o.Progress.(resetter); ok && attempt > 1 {
			r.Reset()
		}
		c.log().Debugf("Download attempt %d from %s", attempt, href)

		res, err := session.do(ctx, exchange{
			method:  http.MethodGet,
			url:     href,
			headers: transferHeaders(st),
			timeout: st.timeout,
		})
		if err != nil {
			return struct{}{}, err
		}
		defer closeBodySafely(res.Body, c.log(), "download")
		if res.StatusCode != http.StatusOK {
			return struct{}{}, errorFromResponse(res)
		}

		if _, err := w.Seek(position, io.SeekStart); err != nil {
			return struct{}{}, fmt.Errorf("rewinding destination: %w", err)
		}
		if t, ok := w.(interface{ Truncate(int64) error }); ok {
			if err := t.Truncate(position); err != nil {
				return struct{}{}, fmt.Errorf("truncating destination: %w", err)
			}
		}
		return struct{}{}, copyChunks(w, res.Body, o.Progress)
	})
	return err
}

// copyChunks moves src into dst in DownloadChunkSize pieces. Read errors keep
// their transport classification; write errors are local and final.
func copyChunks(dst io.Writer, src io.Reader, progress io.Writer) error {
	buf := make([]byte, DownloadChunkSize)
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return fmt.Errorf("writing chunk: %w", err)
			}
			if progress != nil {
				_, _ = progress.Write(buf[:n])
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
}
