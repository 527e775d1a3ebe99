package yadisk

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		status int
		code   string
		want   ErrorKind
	}{
		{400, "", KindBadRequest},
		{400, "FieldValidationError", KindFieldValidation},
		{401, "UnauthorizedError", KindUnauthorized},
		{403, "", KindForbidden},
		{404, "", KindNotFound},
		{404, "DiskNotFoundError", KindPathNotFound},
		{404, "DiskOperationNotFoundError", KindOperationNotFound},
		{406, "", KindNotAcceptable},
		{409, "", KindConflict},
		{409, "DiskPathDoesntExistsError", KindParentNotFound},
		{409, "DiskPathPointsToExistentDirectoryError", KindDirectoryExists},
		{409, "DiskResourceAlreadyExistsError", KindPathExists},
		{409, "MD5DifferError", KindMD5Differ},
		{415, "", KindUnsupportedMediaType},
		{423, "", KindLocked},
		{423, "DiskResourceLockedError", KindResourceLocked},
		{423, "DiskUploadTrafficLimitExceeded", KindUploadTrafficLimit},
		{429, "", KindTooManyRequests},
		{500, "", KindInternalServer},
		{502, "", KindBadGateway},
		{503, "", KindUnavailable},
		{504, "", KindGatewayTimeout},
		{507, "", KindInsufficientStorage},
		// Unrecognised codes fall back to the group.
		{404, "SomethingNew", KindNotFound},
		{409, "DiskNotFoundError", KindConflict},
		// Unrecognised statuses are unknown.
		{418, "DiskNotFoundError", KindUnknown},
		{501, "", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.want.String()+"/"+tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.status, tt.code))
		})
	}
}

func TestErrorMatchesKindAndGroup(t *testing.T) {
	err := error(newResponseError(http.StatusNotFound, http.Header{},
		[]byte(`{"error":"DiskNotFoundError","message":"Resource not found.","description":"Resource not found."}`)))

	assert.True(t, errors.Is(err, ErrPathNotFound))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrOperationNotFound))
	assert.False(t, errors.Is(err, ErrConflict))

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "DiskNotFoundError", apiErr.Code)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Resource not found. (Resource not found. / DiskNotFoundError)", apiErr.Error())
}

func TestErrorPlaceholdersForUnparsableBody(t *testing.T) {
	for _, body := range []string{"", "<html>Bad Gateway</html>", `{"message": 5}`} {
		err := newResponseError(http.StatusBadGateway, nil, []byte(body))
		assert.Equal(t, KindBadGateway, err.Kind)
		assert.Equal(t, "<empty> (<empty> / <empty>)", err.Error())
	}
}

func TestErrorKeepsHeadersNotBody(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "3")
	err := newResponseError(http.StatusTooManyRequests, h, []byte(`{"error":"TooManyRequestsError"}`))
	h.Set("Retry-After", "999")

	assert.Equal(t, "3", err.Header.Get("Retry-After"))
	assert.True(t, strings.Contains(err.Error(), "TooManyRequestsError"))
}

func TestRetriablePartition(t *testing.T) {
	retriable := map[int]bool{429: true, 500: true, 502: true, 503: true, 504: true}
	for _, status := range []int{400, 401, 403, 404, 406, 409, 415, 423, 429, 500, 502, 503, 504, 507, 418} {
		err := newResponseError(status, nil, nil)
		assert.Equal(t, retriable[status], err.Retriable(), "status %d", status)
		assert.Equal(t, retriable[status], isRetriable(err), "status %d", status)
	}

	assert.True(t, isRetriable(&TransportError{Err: errors.New("connection reset")}))
	assert.False(t, isRetriable(ErrInvalidResponse))
	assert.False(t, isRetriable(errors.New("plain")))
}
