// Package yadisk (public.go) covers publishing resources and reading
// resources shared by public key or URL.
package yadisk

import (
	"context"
	"net/http"
	"net/url"
)

// Publish makes path available by public link. The returned link points at
// the resource; read its PublicURL with GetMeta.
func (c *Client) Publish(ctx context.Context, path string, opts *Options) (Link, error) {
	return c.putLink(ctx, "resources/publish", pathParams(path, SchemaDisk), opts)
}

// Unpublish revokes the public link of path.
func (c *Client) Unpublish(ctx context.Context, path string, opts *Options) (Link, error) {
	return c.putLink(ctx, "resources/unpublish", pathParams(path, SchemaDisk), opts)
}

func (c *Client) putLink(ctx context.Context, endpoint string, q url.Values, opts *Options) (Link, error) {
	o := c.options(opts)
	var link Link
	op := operation{method: http.MethodPut, url: c.apiURL(endpoint), params: q}
	if _, err := c.call(ctx, op, &o, standardDefaults, &link); err != nil {
		return Link{}, err
	}
	return link, nil
}

func publicParams(publicKey string, o Options) url.Values {
	q := url.Values{}
	q.Set("public_key", publicKey)
	setString(q, "path", o.PublicPath)
	return q
}

// GetPublicMeta returns the metadata of a public resource. publicKey may be
// the key or the full public URL.
func (c *Client) GetPublicMeta(ctx context.Context, publicKey string, opts *Options) (Resource, error) {
	o := c.options(opts)
	q := publicParams(publicKey, o)
	setWindow(q, o)
	setPreview(q, o)

	var res Resource
	op := operation{method: http.MethodGet, url: c.apiURL("public/resources"), params: q}
	if _, err := c.call(ctx, op, &o, standardDefaults, &res); err != nil {
		return Resource{}, err
	}
	return res, nil
}

// PublicExists reports whether a public resource exists.
func (c *Client) PublicExists(ctx context.Context, publicKey string, opts *Options) (bool, error) {
	return exists(func() error {
		_, err := c.GetPublicMeta(ctx, publicKey, typeOnly(opts))
		return err
	})
}

// GetPublicType returns the type of a public resource.
func (c *Client) GetPublicType(ctx context.Context, publicKey string, opts *Options) (string, error) {
	res, err := c.GetPublicMeta(ctx, publicKey, typeOnly(opts))
	if err != nil {
		return "", err
	}
	return res.Type, nil
}

// IsPublicFile reports whether a public resource is a file.
func (c *Client) IsPublicFile(ctx context.Context, publicKey string, opts *Options) (bool, error) {
	return isType(ResourceTypeFile, func() (string, error) { return c.GetPublicType(ctx, publicKey, opts) })
}

// IsPublicDir reports whether a public resource is a directory.
func (c *Client) IsPublicDir(ctx context.Context, publicKey string, opts *Options) (bool, error) {
	return isType(ResourceTypeDir, func() (string, error) { return c.GetPublicType(ctx, publicKey, opts) })
}

// PublicListdir returns a cursor over a public directory.
func (c *Client) PublicListdir(publicKey string, opts *Options) *Listing[Resource] {
	o := c.options(opts)
	q := publicParams(publicKey, o)
	setPreview(q, o)
	return newListing(o.Offset, c.dirPages("public/resources", q, &o))
}

// GetPublicResources returns one page of resources the user has published.
func (c *Client) GetPublicResources(ctx context.Context, opts *Options) (PublicResourcesList, error) {
	o := c.options(opts)
	q := url.Values{}
	setWindow(q, o)
	setString(q, "preview_size", o.PreviewSize)
	setBool(q, "preview_crop", o.PreviewCrop)
	if len(o.MediaType) == 1 {
		q.Set("type", o.MediaType[0])
	}

	var res PublicResourcesList
	op := operation{method: http.MethodGet, url: c.apiURL("resources/public"), params: q}
	if _, err := c.call(ctx, op, &o, standardDefaults, &res); err != nil {
		return PublicResourcesList{}, err
	}
	return res, nil
}

// SaveToDisk copies a public resource into the user's Downloads folder, or
// into Options.SavePath under Options.SaveName.
func (c *Client) SaveToDisk(ctx context.Context, publicKey string, opts *Options) (Link, error) {
	o := c.options(opts)
	q := publicParams(publicKey, o)
	setString(q, "name", o.SaveName)
	if o.SavePath != "" {
		q.Set("save_path", EnsurePathHasSchema(o.SavePath, SchemaDisk))
	}
	setBool(q, "force_async", o.ForceAsync)

	var link Link
	op := operation{method: http.MethodPost, url: c.apiURL("public/resources/save-to-disk"), params: q, success: asyncAnswer}
	if _, err := c.call(ctx, op, &o, standardDefaults, &link); err != nil {
		return Link{}, err
	}
	return link, nil
}

// GetPublicDownloadLink returns a single-use URL for a public resource.
func (c *Client) GetPublicDownloadLink(ctx context.Context, publicKey string, opts *Options) (string, error) {
	return c.getLink(ctx, "public/resources/download", publicParams(publicKey, c.options(opts)), opts)
}

// DownloadPublic writes a public resource into dst.
func (c *Client) DownloadPublic(ctx context.Context, publicKey string, dst Destination, opts *Options) error {
	return c.download(ctx, func(ctx context.Context, o *Options) (string, error) {
		return c.GetPublicDownloadLink(ctx, publicKey, o)
	}, dst, opts)
}
