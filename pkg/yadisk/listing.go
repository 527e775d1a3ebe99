package yadisk

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ErrNoMoreItems is returned by Listing.Next once the listing is exhausted.
var ErrNoMoreItems = errors.New("no more items in listing")

// listingFields are always requested so that trimming fields never breaks
// page bookkeeping.
var listingFields = []string{
	"type",
	"_embedded",
	"_embedded.offset",
	"_embedded.limit",
	"_embedded.total",
	"_embedded.items",
}

// page is one fetched window of a listing.
type page[T any] struct {
	items      []T
	nextOffset int
	more       bool
}

type pageFunc[T any] func(ctx context.Context, offset int) (page[T], error)

// Listing is a forward-only cursor over a paginated collection. Pages are
// fetched lazily; HasNext is the only place a fetch happens. A Listing is
// not safe for concurrent use and cannot be restarted.
type Listing[T any] struct {
	fetch   pageFunc[T]
	offset  int
	items   []T
	pos     int
	started bool
	more    bool
	err     error
	pages   int
}

func newListing[T any](offset int, fetch pageFunc[T]) *Listing[T] {
	return &Listing[T]{fetch: fetch, offset: offset}
}

// HasNext reports whether another item is available, fetching the next page
// when the current one is used up. A fetch error is sticky.
func (l *Listing[T]) HasNext(ctx context.Context) (bool, error) {
	for {
		if l.err != nil {
			return false, l.err
		}
		if l.pos < len(l.items) {
			return true, nil
		}
		if l.started && !l.more {
			return false, nil
		}
		p, err := l.fetch(ctx, l.offset)
		if err != nil {
			l.err = err
			return false, err
		}
		l.started = true
		l.pages++
		l.items, l.pos = p.items, 0
		l.more = p.more
		l.offset = p.nextOffset
	}
}

// Next returns the next item, or ErrNoMoreItems when the listing is done.
func (l *Listing[T]) Next(ctx context.Context) (T, error) {
	var zero T
	ok, err := l.HasNext(ctx)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, ErrNoMoreItems
	}
	item := l.items[l.pos]
	l.pos++
	return item, nil
}

// All drains the listing into a slice.
func (l *Listing[T]) All(ctx context.Context) ([]T, error) {
	var out []T
	for {
		item, err := l.Next(ctx)
		if errors.Is(err, ErrNoMoreItems) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, item)
	}
}

// Items yields every remaining item. Iteration stops after the first error,
// which is yielded with a zero item.
func (l *Listing[T]) Items(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, err := l.Next(ctx)
			if errors.Is(err, ErrNoMoreItems) {
				return
			}
			if !yield(item, err) || err != nil {
				return
			}
		}
	}
}

// PagesFetched returns how many pages have been requested so far.
func (l *Listing[T]) PagesFetched() int {
	return l.pages
}

// dirPages returns a page function that walks the embedded children of the
// directory at endpoint. Requested fields are nested under the item level
// and merged with the structural fields.
func (c *Client) dirPages(endpoint string, params url.Values, opts *Options) pageFunc[Resource] {
	o := c.options(opts)
	limit := DefaultListingLimit
	if o.Limit != nil {
		limit = *o.Limit
	}
	fields := make([]string, 0, len(o.Fields)+len(listingFields))
	for _, f := range o.Fields {
		fields = append(fields, "_embedded.items."+f)
	}
	fields = append(fields, listingFields...)
	o.Fields = fields

	return func(ctx context.Context, offset int) (page[Resource], error) {
		q := url.Values{}
		for k, v := range params {
			q[k] = v
		}
		q.Set("limit", strconv.Itoa(limit))
		q.Set("offset", strconv.Itoa(offset))

		var res Resource
		op := operation{method: http.MethodGet, url: c.apiURL(endpoint), params: q}
		if _, err := c.callDecode(ctx, op, &o, standardDefaults, decodeDirectory(&res)); err != nil {
			return page[Resource]{}, err
		}
		emb := res.Embedded
		next := emb.Offset + emb.Limit
		return page[Resource]{
			items:      emb.Items,
			nextOffset: next,
			more:       emb.Limit > 0 && next < emb.Total,
		}, nil
	}
}

// decodeDirectory checks that v is a directory carrying a complete embedded
// page before decoding it into dest.
func decodeDirectory(dest *Resource) func(v any) error {
	return func(v any) error {
		obj, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: expected a resource object", ErrInvalidResponse)
		}
		typ, _ := obj["type"].(string)
		if typ == "" {
			return fmt.Errorf("%w: missing field type", ErrInvalidResponse)
		}
		if typ == ResourceTypeFile {
			return fmt.Errorf("%w: %s is a file, expected a directory", ErrWrongResourceType, obj["path"])
		}
		emb, ok := obj["_embedded"].(map[string]any)
		if !ok {
			return fmt.Errorf("%w: missing field _embedded", ErrInvalidResponse)
		}
		var missing []string
		for _, key := range []string{"items", "offset", "limit", "total"} {
			if _, ok := emb[key]; !ok {
				missing = append(missing, "_embedded."+key)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: missing fields %s", ErrInvalidResponse, strings.Join(missing, ", "))
		}
		return decodeValue(v, dest)
	}
}

// flatPages returns a page function for flat file lists. With an explicit
// limit a single page is fetched; otherwise pages of filesPageLimit are read
// until a short page comes back.
func (c *Client) flatPages(endpoint string, params url.Values, opts *Options) pageFunc[Resource] {
	o := c.options(opts)
	limit, single := filesPageLimit, false
	if o.Limit != nil {
		limit, single = *o.Limit, true
	}
	if len(o.Fields) > 0 {
		fields := make([]string, 0, len(o.Fields))
		for _, f := range o.Fields {
			fields = append(fields, "items."+f)
		}
		o.Fields = fields
	}

	return func(ctx context.Context, offset int) (page[Resource], error) {
		q := url.Values{}
		for k, v := range params {
			q[k] = v
		}
		q.Set("limit", strconv.Itoa(limit))
		q.Set("offset", strconv.Itoa(offset))

		var res FilesResourceList
		op := operation{method: http.MethodGet, url: c.apiURL(endpoint), params: q}
		if _, err := c.call(ctx, op, &o, standardDefaults, &res); err != nil {
			return page[Resource]{}, err
		}
		return page[Resource]{
			items:      res.Items,
			nextOffset: offset + len(res.Items),
			more:       !single && len(res.Items) == limit && limit > 0,
		}, nil
	}
}
