// Package yadisk (resources.go) implements operations on resources stored on
// Disk. Each is a thin mapping from arguments to one request through the
// shared pipeline.
package yadisk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var asyncAnswer = []int{http.StatusCreated, http.StatusAccepted}

// GetMeta returns the metadata of the resource at path. For a directory the
// first page of children is embedded; use Listdir to walk all of them.
//
// Example:
//
//	res, err := client.GetMeta(ctx, "/Documents", nil)
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Type, res.Modified)
func (c *Client) GetMeta(ctx context.Context, path string, opts *Options) (Resource, error) {
	o := c.options(opts)
	q := pathParams(path, SchemaDisk)
	setWindow(q, o)
	setPreview(q, o)

	var res Resource
	op := operation{method: http.MethodGet, url: c.apiURL("resources"), params: q}
	if _, err := c.call(ctx, op, &o, standardDefaults, &res); err != nil {
		return Resource{}, err
	}
	return res, nil
}

// Exists reports whether path exists. Only a path-not-found answer counts as
// absence; other failures are returned.
func (c *Client) Exists(ctx context.Context, path string, opts *Options) (bool, error) {
	return exists(func() error {
		_, err := c.GetMeta(ctx, path, typeOnly(opts))
		return err
	})
}

// GetType returns "file" or "dir" for path.
func (c *Client) GetType(ctx context.Context, path string, opts *Options) (string, error) {
	res, err := c.GetMeta(ctx, path, typeOnly(opts))
	if err != nil {
		return "", err
	}
	return res.Type, nil
}

// IsFile reports whether path is a file. A missing path is not a file.
func (c *Client) IsFile(ctx context.Context, path string, opts *Options) (bool, error) {
	return isType(ResourceTypeFile, func() (string, error) { return c.GetType(ctx, path, opts) })
}

// IsDir reports whether path is a directory. A missing path is not a
// directory.
func (c *Client) IsDir(ctx context.Context, path string, opts *Options) (bool, error) {
	return isType(ResourceTypeDir, func() (string, error) { return c.GetType(ctx, path, opts) })
}

// Listdir returns a cursor over the children of the directory at path.
// Nothing is fetched until the cursor is advanced. Listing a file fails with
// ErrWrongResourceType.
//
// Example:
//
//	items := client.Listdir("/Photos", &yadisk.Options{Limit: yadisk.Ptr(100)})
//	for {
//		item, err := items.Next(ctx)
//		if errors.Is(err, yadisk.ErrNoMoreItems) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		fmt.Println(item.Name)
//	}
func (c *Client) Listdir(path string, opts *Options) *Listing[Resource] {
	o := c.options(opts)
	q := pathParams(path, SchemaDisk)
	setPreview(q, o)
	return newListing(o.Offset, c.dirPages("resources", q, &o))
}

// Mkdir creates a directory at path.
func (c *Client) Mkdir(ctx context.Context, path string, opts *Options) (Link, error) {
	o := c.options(opts)
	var link Link
	op := operation{
		method:  http.MethodPut,
		url:     c.apiURL("resources"),
		params:  pathParams(path, SchemaDisk),
		success: []int{http.StatusCreated},
	}
	if _, err := c.call(ctx, op, &o, standardDefaults, &link); err != nil {
		return Link{}, err
	}
	return link, nil
}

// Remove deletes path, to the trash unless Options.Permanently is set. A
// non-nil link is returned when the server answered with an operation.
func (c *Client) Remove(ctx context.Context, path string, opts *Options) (*Link, error) {
	o := c.options(opts)
	q := pathParams(path, SchemaDisk)
	setBool(q, "permanently", o.Permanently)
	setBool(q, "force_async", o.ForceAsync)
	setString(q, "md5", o.MD5)
	return c.maybeOperation(ctx, operation{
		method:  http.MethodDelete,
		url:     c.apiURL("resources"),
		params:  q,
		success: []int{http.StatusNoContent, http.StatusAccepted},
	}, &o)
}

// Copy copies src to dst. The link points at the new resource, or at an
// operation when the copy runs asynchronously.
func (c *Client) Copy(ctx context.Context, src, dst string, opts *Options) (Link, error) {
	return c.relocate(ctx, "resources/copy", src, dst, opts)
}

// Move moves src to dst.
func (c *Client) Move(ctx context.Context, src, dst string, opts *Options) (Link, error) {
	return c.relocate(ctx, "resources/move", src, dst, opts)
}

// Rename gives the resource at path a new name inside the same directory.
// The name is validated locally and a bad one is never sent.
func (c *Client) Rename(ctx context.Context, path, newName string, opts *Options) (Link, error) {
	if err := ValidateFileName(newName); err != nil {
		return Link{}, err
	}
	full := EnsurePathHasSchema(path, SchemaDisk)
	parent := parentPath(strings.TrimSuffix(full, "/"))
	dst := strings.TrimSuffix(parent, "/") + "/" + newName
	return c.Move(ctx, full, dst, opts)
}

func (c *Client) relocate(ctx context.Context, endpoint, src, dst string, opts *Options) (Link, error) {
	o := c.options(opts)
	q := url.Values{}
	q.Set("from", EnsurePathHasSchema(src, SchemaDisk))
	q.Set("path", EnsurePathHasSchema(dst, SchemaDisk))
	setBool(q, "overwrite", o.Overwrite)
	setBool(q, "force_async", o.ForceAsync)

	var link Link
	op := operation{method: http.MethodPost, url: c.apiURL(endpoint), params: q, success: asyncAnswer}
	if _, err := c.call(ctx, op, &o, standardDefaults, &link); err != nil {
		return Link{}, err
	}
	return link, nil
}

// Patch replaces the custom properties of path. A nil value removes a key.
func (c *Client) Patch(ctx context.Context, path string, props map[string]any, opts *Options) (Resource, error) {
	o := c.options(opts)
	body, err := jsonBody(ResourcePatch{CustomProperties: props})
	if err != nil {
		return Resource{}, err
	}
	var res Resource
	op := operation{
		method:      http.MethodPatch,
		url:         c.apiURL("resources"),
		params:      pathParams(path, SchemaDisk),
		body:        body,
		contentType: "application/json",
	}
	if _, err := c.call(ctx, op, &o, standardDefaults, &res); err != nil {
		return Resource{}, err
	}
	return res, nil
}

// GetFiles returns a cursor over every file on Disk, flattened. Without
// Options.Limit it keeps reading pages until a short one arrives.
func (c *Client) GetFiles(opts *Options) *Listing[Resource] {
	o := c.options(opts)
	q := url.Values{}
	setMediaType(q, o.MediaType)
	setPreview(q, o)
	return newListing(o.Offset, c.flatPages("resources/files", q, &o))
}

// GetLastUploaded returns the most recently uploaded files.
func (c *Client) GetLastUploaded(ctx context.Context, opts *Options) ([]Resource, error) {
	o := c.options(opts)
	q := url.Values{}
	setWindow(q, Options{Limit: o.Limit})
	setMediaType(q, o.MediaType)
	setString(q, "preview_size", o.PreviewSize)
	setBool(q, "preview_crop", o.PreviewCrop)

	var res FilesResourceList
	op := operation{method: http.MethodGet, url: c.apiURL("resources/last-uploaded"), params: q}
	if _, err := c.call(ctx, op, &o, standardDefaults, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

// UploadURL asks the server to fetch sourceURL into path. The answer is
// always an operation link.
func (c *Client) UploadURL(ctx context.Context, sourceURL, path string, opts *Options) (Link, error) {
	o := c.options(opts)
	q := pathParams(path, SchemaDisk)
	q.Set("url", sourceURL)

	var link Link
	op := operation{method: http.MethodPost, url: c.apiURL("resources/upload"), params: q, success: []int{http.StatusAccepted}}
	if _, err := c.call(ctx, op, &o, standardDefaults, &link); err != nil {
		return Link{}, err
	}
	return link, nil
}

// GetUploadLink returns a single-use URL that accepts a PUT of path's
// content.
func (c *Client) GetUploadLink(ctx context.Context, path string, opts *Options) (string, error) {
	o := c.options(opts)
	q := pathParams(path, SchemaDisk)
	setBool(q, "overwrite", o.Overwrite)

	var link UploadLink
	op := operation{method: http.MethodGet, url: c.apiURL("resources/upload"), params: q}
	if _, err := c.call(ctx, op, &o, standardDefaults, &link); err != nil {
		return "", err
	}
	if link.Href == "" {
		return "", fmt.Errorf("%w: upload link has no href", ErrInvalidResponse)
	}
	return link.Href, nil
}

// GetDownloadLink returns a single-use URL serving path's content.
func (c *Client) GetDownloadLink(ctx context.Context, path string, opts *Options) (string, error) {
	return c.getLink(ctx, "resources/download", pathParams(path, SchemaDisk), opts)
}

func (c *Client) getLink(ctx context.Context, endpoint string, q url.Values, opts *Options) (string, error) {
	o := c.options(opts)
	var link Link
	op := operation{method: http.MethodGet, url: c.apiURL(endpoint), params: q}
	if _, err := c.call(ctx, op, &o, standardDefaults, &link); err != nil {
		return "", err
	}
	if link.Href == "" {
		return "", fmt.Errorf("%w: link has no href", ErrInvalidResponse)
	}
	return link.Href, nil
}

// Upload stores src at path. Each attempt asks for a new upload URL.
//
// Example:
//
//	err := client.Upload(ctx, yadisk.FromPath("report.pdf"), "/Documents/report.pdf",
//		&yadisk.Options{Overwrite: true})
func (c *Client) Upload(ctx context.Context, src Source, path string, opts *Options) error {
	return c.upload(ctx, func(ctx context.Context, o *Options) (string, error) {
		return c.GetUploadLink(ctx, path, o)
	}, src, opts)
}

// UploadByLink sends src to an upload URL obtained earlier. The same URL is
// reused across attempts.
func (c *Client) UploadByLink(ctx context.Context, src Source, link string, opts *Options) error {
	return c.upload(ctx, staticLink(link), src, opts)
}

// Download writes the content of path into dst. Each attempt asks for a new
// download URL.
func (c *Client) Download(ctx context.Context, path string, dst Destination, opts *Options) error {
	return c.download(ctx, func(ctx context.Context, o *Options) (string, error) {
		return c.GetDownloadLink(ctx, path, o)
	}, dst, opts)
}

// DownloadByLink writes the content behind a download URL into dst.
func (c *Client) DownloadByLink(ctx context.Context, link string, dst Destination, opts *Options) error {
	return c.download(ctx, staticLink(link), dst, opts)
}

// maybeOperation runs op and returns a link only for 202 answers.
func (c *Client) maybeOperation(ctx context.Context, op operation, o *Options) (*Link, error) {
	var link Link
	status, err := c.callDecode(ctx, op, o, standardDefaults, func(v any) error {
		if v == nil {
			return nil
		}
		return decodeValue(v, &link)
	})
	if err != nil {
		return nil, err
	}
	if status == http.StatusAccepted {
		return &link, nil
	}
	return nil, nil
}

func typeOnly(opts *Options) *Options {
	var o Options
	if opts != nil {
		o = *opts
	}
	o.Fields = []string{"type"}
	o.Limit = Ptr(0)
	return &o
}

func exists(probe func() error) (bool, error) {
	err := probe()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrPathNotFound):
		return false, nil
	default:
		return false, err
	}
}

func isType(want string, get func() (string, error)) (bool, error) {
	typ, err := get()
	if errors.Is(err, ErrPathNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return typ == want, nil
}
