package yadisk

import (
	"fmt"
	"io"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Options carries the per-call settings recognised by every operation.
// Nil pointer fields are unset and fall through to the client defaults,
// then to the operation's own default, then to the package defaults.
type Options struct {
	// Timeout is the deadline of a single attempt. There is no deadline
	// across retries.
	Timeout *time.Duration
	// Headers are added to the session headers, overriding them by
	// case-insensitive name.
	Headers map[string]string
	// Retries is the maximum number of retries. Zero means one attempt.
	Retries *int
	// RetryInterval is the pause between attempts.
	RetryInterval *time.Duration
	// Fields limits the keys returned by the server.
	Fields []string
	// Limit and Offset select a listing window.
	Limit  *int
	Offset int

	Overwrite   bool
	Permanently bool
	ForceAsync  bool
	Sort        string
	MediaType   []string
	PreviewSize string
	PreviewCrop bool
	MD5         string
	// PublicPath selects a resource inside a public folder.
	PublicPath string
	// SavePath and SaveName control where SaveToDisk puts the copy.
	SavePath string
	SaveName string
	// Progress receives a copy of every transferred chunk.
	Progress io.Writer
	// Identity selects which cached session carries the call.
	Identity string
}

// Ptr returns a pointer to v, for filling optional Options fields.
func Ptr[T any](v T) *T {
	return &v
}

// Validate checks that numeric settings are non-negative.
func (o Options) Validate() error {
	err := validation.ValidateStruct(&o,
		validation.Field(&o.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&o.Retries, validation.Min(0)),
		validation.Field(&o.RetryInterval, validation.Min(time.Duration(0))),
		validation.Field(&o.Limit, validation.Min(0)),
		validation.Field(&o.Offset, validation.Min(0)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return nil
}

// opDefaults are the per-operation fallbacks used when neither the call nor
// the client set a value.
type opDefaults struct {
	timeout       time.Duration
	retryInterval time.Duration
}

var standardDefaults = opDefaults{
	timeout:       DefaultTimeout,
	retryInterval: DefaultRetryInterval,
}

var uploadDefaults = opDefaults{
	timeout:       DefaultUploadTimeout,
	retryInterval: DefaultUploadRetryInterval,
}

// settings is the fully resolved form of Options for one call.
type settings struct {
	timeout time.Duration
	policy  RetryPolicy
	headers Headers
	opts    Options
}

// resolve merges per-call options over client defaults and op defaults.
func resolve(call *Options, client Options, op opDefaults) (settings, error) {
	var o Options
	if call != nil {
		o = *call
	}
	if err := o.Validate(); err != nil {
		return settings{}, err
	}

	s := settings{
		timeout: first(op.timeout, o.Timeout, client.Timeout),
		policy: RetryPolicy{
			MaxRetries: first(DefaultRetries, o.Retries, client.Retries),
			Interval:   first(op.retryInterval, o.RetryInterval, client.RetryInterval),
		},
		headers: NewHeaders(client.Headers).Merge(NewHeaders(o.Headers)),
	}
	if o.Fields == nil {
		o.Fields = client.Fields
	}
	if o.Limit == nil {
		o.Limit = client.Limit
	}
	s.opts = o
	return s, nil
}

// first returns the first non-nil value, or fallback.
func first[T any](fallback T, vals ...*T) T {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return fallback
}
