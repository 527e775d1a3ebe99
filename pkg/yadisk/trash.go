package yadisk

import (
	"context"
	"net/http"
	"net/url"
)

// GetTrashMeta returns the metadata of a resource in the trash.
func (c *Client) GetTrashMeta(ctx context.Context, path string, opts *Options) (Resource, error) {
	o := c.options(opts)
	q := pathParams(path, SchemaTrash)
	setWindow(q, o)
	setPreview(q, o)

	var res Resource
	op := operation{method: http.MethodGet, url: c.apiURL("trash/resources"), params: q}
	if _, err := c.call(ctx, op, &o, standardDefaults, &res); err != nil {
		return Resource{}, err
	}
	return res, nil
}

// TrashExists reports whether path exists in the trash.
func (c *Client) TrashExists(ctx context.Context, path string, opts *Options) (bool, error) {
	return exists(func() error {
		_, err := c.GetTrashMeta(ctx, path, typeOnly(opts))
		return err
	})
}

// GetTrashType returns the type of a trashed resource.
func (c *Client) GetTrashType(ctx context.Context, path string, opts *Options) (string, error) {
	res, err := c.GetTrashMeta(ctx, path, typeOnly(opts))
	if err != nil {
		return "", err
	}
	return res.Type, nil
}

// IsTrashFile reports whether a trashed resource is a file.
func (c *Client) IsTrashFile(ctx context.Context, path string, opts *Options) (bool, error) {
	return isType(ResourceTypeFile, func() (string, error) { return c.GetTrashType(ctx, path, opts) })
}

// IsTrashDir reports whether a trashed resource is a directory.
func (c *Client) IsTrashDir(ctx context.Context, path string, opts *Options) (bool, error) {
	return isType(ResourceTypeDir, func() (string, error) { return c.GetTrashType(ctx, path, opts) })
}

// TrashListdir returns a cursor over a trashed directory. Use "trash:/" for
// the trash root.
func (c *Client) TrashListdir(path string, opts *Options) *Listing[Resource] {
	o := c.options(opts)
	q := pathParams(path, SchemaTrash)
	setPreview(q, o)
	return newListing(o.Offset, c.dirPages("trash/resources", q, &o))
}

// RemoveTrash deletes path from the trash for good. An empty path empties
// the whole trash.
func (c *Client) RemoveTrash(ctx context.Context, path string, opts *Options) (*Link, error) {
	o := c.options(opts)
	q := url.Values{}
	if path != "" {
		q = pathParams(path, SchemaTrash)
	}
	setBool(q, "force_async", o.ForceAsync)
	return c.maybeOperation(ctx, operation{
		method:  http.MethodDelete,
		url:     c.apiURL("trash/resources"),
		params:  q,
		success: []int{http.StatusNoContent, http.StatusAccepted},
	}, &o)
}

// RestoreTrash moves a trashed resource back to its original location, or
// under Options.SaveName when set.
func (c *Client) RestoreTrash(ctx context.Context, path string, opts *Options) (Link, error) {
	o := c.options(opts)
	q := pathParams(path, SchemaTrash)
	setString(q, "name", o.SaveName)
	setBool(q, "overwrite", o.Overwrite)
	setBool(q, "force_async", o.ForceAsync)

	var link Link
	op := operation{method: http.MethodPut, url: c.apiURL("trash/resources/restore"), params: q, success: asyncAnswer}
	if _, err := c.call(ctx, op, &o, standardDefaults, &link); err != nil {
		return Link{}, err
	}
	return link, nil
}
