package yadisk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// GetDiskInfo returns quota and owner information.
func (c *Client) GetDiskInfo(ctx context.Context, opts *Options) (Disk, error) {
	o := c.options(opts)
	var disk Disk
	op := operation{method: http.MethodGet, url: c.apiURL("")}
	if _, err := c.call(ctx, op, &o, standardDefaults, &disk); err != nil {
		return Disk{}, err
	}
	return disk, nil
}

// GetOperationStatus returns the status of an asynchronous operation.
// idOrLink may be a bare id or a full operation link.
func (c *Client) GetOperationStatus(ctx context.Context, idOrLink string, opts *Options) (string, error) {
	o := c.options(opts)
	id := idOrLink
	if IsOperationLink(idOrLink) {
		id = operationIDFromLink(idOrLink)
	}

	var status OperationStatus
	op := operation{method: http.MethodGet, url: c.apiURL("operations/" + url.PathEscape(strings.TrimSpace(id)))}
	if _, err := c.call(ctx, op, &o, standardDefaults, &status); err != nil {
		return "", err
	}
	return status.Status, nil
}

// CheckToken reports whether token (or the client's token when empty) is
// accepted by the API. It looks up a made-up operation id: an invalid token
// gets unauthorized, a valid one gets operation-not-found. Other failures
// are returned as errors.
func (c *Client) CheckToken(ctx context.Context, token string, opts *Options) (bool, error) {
	if token == "" {
		token = c.Token()
	}
	o := c.options(opts)
	st, err := resolve(&o, c.defaults, standardDefaults)
	if err != nil {
		return false, err
	}

	op := operation{method: http.MethodGet, url: c.apiURL("operations/" + checkTokenOperationID)}
	req := newRequest(c.SessionForToken(token, o.Identity), c.log(), op, st)
	err = req.send(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrUnauthorized):
		return false, nil
	case errors.Is(err, ErrOperationNotFound):
		return true, nil
	default:
		return false, err
	}
}
