// Package yadisk (utils.go) holds small helpers shared by the operations.
package yadisk

import (
	"io"
	"net/url"
	"strconv"
	"strings"
)

// closeBodySafely closes an HTTP response body and logs any error.
// This is intended for use in defer statements where error handling is not critical.
func closeBodySafely(body io.Closer, logger Logger, operation string) {
	if err := body.Close(); err != nil {
		logger.Warnf("Failed to close %s body: %v", operation, err)
	}
}

// pathParams returns query parameters carrying a schema-qualified path.
func pathParams(path, schema string) url.Values {
	q := url.Values{}
	q.Set("path", EnsurePathHasSchema(path, schema))
	return q
}

// setBool writes key=true only when v is set.
func setBool(q url.Values, key string, v bool) {
	if v {
		q.Set(key, "true")
	}
}

// setString writes key=v only when v is non-empty.
func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

// setWindow writes limit and offset for single-page requests.
func setWindow(q url.Values, o Options) {
	if o.Limit != nil {
		q.Set("limit", strconv.Itoa(*o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
}

// setPreview writes preview parameters shared by metadata requests.
func setPreview(q url.Values, o Options) {
	setString(q, "preview_size", o.PreviewSize)
	setBool(q, "preview_crop", o.PreviewCrop)
	setString(q, "sort", o.Sort)
}

// setMediaType joins media types into the comma-separated form the API takes.
func setMediaType(q url.Values, types []string) {
	if len(types) > 0 {
		q.Set("media_type", strings.Join(types, ","))
	}
}
