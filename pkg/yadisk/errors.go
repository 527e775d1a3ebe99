// Package yadisk (errors.go) classifies failed API responses into typed errors.
// Every non-success response is turned into exactly one *Error whose Kind is
// chosen by a two-level lookup: the HTTP status picks a group, the server's
// error code picks a specialisation inside that group.
package yadisk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrorKind identifies a classified API error.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindBadRequest
	KindFieldValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindPathNotFound
	KindOperationNotFound
	KindNotAcceptable
	KindConflict
	KindParentNotFound
	KindDirectoryExists
	KindPathExists
	KindMD5Differ
	KindUnsupportedMediaType
	KindLocked
	KindResourceLocked
	KindUploadTrafficLimit
	KindTooManyRequests
	KindInternalServer
	KindBadGateway
	KindUnavailable
	KindGatewayTimeout
	KindInsufficientStorage
)

// Sentinel errors for every kind. A classified *Error matches the sentinel of
// its own kind and the sentinel of its group via errors.Is.
var (
	ErrUnknown              = errors.New("unknown error")
	ErrBadRequest           = errors.New("bad request")
	ErrFieldValidation      = errors.New("field validation error")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrPathNotFound         = errors.New("path not found")
	ErrOperationNotFound    = errors.New("operation not found")
	ErrNotAcceptable        = errors.New("not acceptable")
	ErrConflict             = errors.New("conflict")
	ErrParentNotFound       = errors.New("parent directory not found")
	ErrDirectoryExists      = errors.New("directory already exists")
	ErrPathExists           = errors.New("path already exists")
	ErrMD5Differ            = errors.New("md5 checksum differs")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrLocked               = errors.New("locked")
	ErrResourceLocked       = errors.New("resource locked")
	ErrUploadTrafficLimit   = errors.New("upload traffic limit exceeded")
	ErrTooManyRequests      = errors.New("too many requests")
	ErrInternalServer       = errors.New("internal server error")
	ErrBadGateway           = errors.New("bad gateway")
	ErrUnavailable          = errors.New("service unavailable")
	ErrGatewayTimeout       = errors.New("gateway timeout")
	ErrInsufficientStorage  = errors.New("insufficient storage")
)

// Errors that do not come from a failed HTTP status.
var (
	ErrWrongResourceType = errors.New("wrong resource type")
	ErrInvalidResponse   = errors.New("invalid response")
	ErrInvalidArgument   = errors.New("invalid argument")

	ErrAuthorizationPending  = errors.New("authorization pending")
	ErrAuthorizationDeclined = errors.New("authorization declined")
	ErrTokenExpired          = errors.New("token expired")
)

type kindInfo struct {
	sentinel  error
	group     ErrorKind
	retriable bool
}

var kinds = map[ErrorKind]kindInfo{
	KindUnknown:              {ErrUnknown, KindUnknown, false},
	KindBadRequest:           {ErrBadRequest, KindBadRequest, false},
	KindFieldValidation:      {ErrFieldValidation, KindBadRequest, false},
	KindUnauthorized:         {ErrUnauthorized, KindUnauthorized, false},
	KindForbidden:            {ErrForbidden, KindForbidden, false},
	KindNotFound:             {ErrNotFound, KindNotFound, false},
	KindPathNotFound:         {ErrPathNotFound, KindNotFound, false},
	KindOperationNotFound:    {ErrOperationNotFound, KindNotFound, false},
	KindNotAcceptable:        {ErrNotAcceptable, KindNotAcceptable, false},
	KindConflict:             {ErrConflict, KindConflict, false},
	KindParentNotFound:       {ErrParentNotFound, KindConflict, false},
	KindDirectoryExists:      {ErrDirectoryExists, KindConflict, false},
	KindPathExists:           {ErrPathExists, KindConflict, false},
	KindMD5Differ:            {ErrMD5Differ, KindConflict, false},
	KindUnsupportedMediaType: {ErrUnsupportedMediaType, KindUnsupportedMediaType, false},
	KindLocked:               {ErrLocked, KindLocked, false},
	KindResourceLocked:       {ErrResourceLocked, KindLocked, false},
	KindUploadTrafficLimit:   {ErrUploadTrafficLimit, KindLocked, false},
	KindTooManyRequests:      {ErrTooManyRequests, KindTooManyRequests, true},
	KindInternalServer:       {ErrInternalServer, KindInternalServer, true},
	KindBadGateway:           {ErrBadGateway, KindBadGateway, true},
	KindUnavailable:          {ErrUnavailable, KindUnavailable, true},
	KindGatewayTimeout:       {ErrGatewayTimeout, KindGatewayTimeout, true},
	KindInsufficientStorage:  {ErrInsufficientStorage, KindInsufficientStorage, false},
}

// classification is the status -> (group, error code -> kind) table.
var classification = map[int]struct {
	group ErrorKind
	codes map[string]ErrorKind
}{
	http.StatusBadRequest: {KindBadRequest, map[string]ErrorKind{
		"FieldValidationError": KindFieldValidation,
	}},
	http.StatusUnauthorized: {KindUnauthorized, nil},
	http.StatusForbidden:    {KindForbidden, nil},
	http.StatusNotFound: {KindNotFound, map[string]ErrorKind{
		"DiskNotFoundError":          KindPathNotFound,
		"DiskOperationNotFoundError": KindOperationNotFound,
	}},
	http.StatusNotAcceptable: {KindNotAcceptable, nil},
	http.StatusConflict: {KindConflict, map[string]ErrorKind{
		"DiskPathDoesntExistsError":              KindParentNotFound,
		"DiskPathPointsToExistentDirectoryError": KindDirectoryExists,
		"DiskResourceAlreadyExistsError":         KindPathExists,
		"MD5DifferError":                         KindMD5Differ,
	}},
	http.StatusUnsupportedMediaType: {KindUnsupportedMediaType, nil},
	http.StatusLocked: {KindLocked, map[string]ErrorKind{
		"DiskResourceLockedError":        KindResourceLocked,
		"DiskUploadTrafficLimitExceeded": KindUploadTrafficLimit,
	}},
	http.StatusTooManyRequests:     {KindTooManyRequests, nil},
	http.StatusInternalServerError: {KindInternalServer, nil},
	http.StatusBadGateway:          {KindBadGateway, nil},
	http.StatusServiceUnavailable:  {KindUnavailable, nil},
	http.StatusGatewayTimeout:      {KindGatewayTimeout, nil},
	http.StatusInsufficientStorage: {KindInsufficientStorage, nil},
}

const emptyPlaceholder = "<empty>"

// Error is a classified API error. It keeps the status code and headers of
// the response it came from, never the body.
type Error struct {
	Kind        ErrorKind
	Code        string
	Message     string
	Description string
	StatusCode  int
	Header      http.Header
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s / %s)",
		orPlaceholder(e.Message), orPlaceholder(e.Description), orPlaceholder(e.Code))
}

// Unwrap returns the sentinel for the error's kind.
func (e *Error) Unwrap() error {
	return kinds[e.Kind].sentinel
}

// Is lets a specialised kind also match its group sentinel, so that
// errors.Is(err, ErrNotFound) holds for a path-not-found error.
func (e *Error) Is(target error) bool {
	info := kinds[e.Kind]
	return target == info.sentinel || target == kinds[info.group].sentinel
}

// Retriable reports whether the error belongs to the transient server group.
func (e *Error) Retriable() bool {
	return kinds[e.Kind].retriable
}

// TransportError wraps a failure that happened before a response was received
// (connection refused, reset, per-attempt timeout). It is always retriable.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Retriable always reports true.
func (e *TransportError) Retriable() bool {
	return true
}

// Classify maps a status code and server error code to an error kind. Unknown
// codes fall back to the group kind; unknown statuses produce KindUnknown.
func Classify(status int, code string) ErrorKind {
	entry, ok := classification[status]
	if !ok {
		return KindUnknown
	}
	if kind, ok := entry.codes[code]; ok {
		return kind
	}
	return entry.group
}

type errorPayload struct {
	Error       string `json:"error"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// errorFromResponse reads the error payload from res and builds a classified
// error. The caller still owns and closes the body.
func errorFromResponse(res *http.Response) *Error {
	var data []byte
	if res.Body != nil {
		data, _ = io.ReadAll(res.Body)
	}
	return newResponseError(res.StatusCode, res.Header, data)
}

// newResponseError classifies a failed response. A body that is not a valid
// error payload leaves the text fields empty.
func newResponseError(status int, header http.Header, body []byte) *Error {
	var payload errorPayload
	_ = json.Unmarshal(body, &payload)
	return &Error{
		Kind:        Classify(status, payload.Error),
		Code:        payload.Error,
		Message:     payload.Message,
		Description: payload.Description,
		StatusCode:  status,
		Header:      header.Clone(),
	}
}

// isRetriable reports whether err belongs to the retriable partition.
func isRetriable(err error) bool {
	var r interface{ Retriable() bool }
	if errors.As(err, &r) {
		return r.Retriable()
	}
	return false
}

func orPlaceholder(s string) string {
	if s == "" {
		return emptyPlaceholder
	}
	return s
}

func (k ErrorKind) String() string {
	if info, ok := kinds[k]; ok {
		return info.sentinel.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}
