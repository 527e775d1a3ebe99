package yadisk

import (
	"net/http"
	"sort"
	"strings"
)

// Headers is a case-insensitive header set. Keys compare by their lowercase
// form and Names reports the casing of the most recent write. On the wire
// every name is sent in canonical form, so an override always replaces the
// value net/http would otherwise add itself (User-Agent, Accept-Encoding).
type Headers struct {
	entries map[string]headerEntry
}

type headerEntry struct {
	name  string
	value string
}

// NewHeaders builds a header set from m. Iteration order of m does not
// matter unless two keys differ only in case, in which case the result is
// unspecified; use Set for ordered writes.
func NewHeaders(m map[string]string) Headers {
	var h Headers
	for k, v := range m {
		h.Set(k, v)
	}
	return h
}

// Set stores value under name, replacing any key equal to name ignoring case.
func (h *Headers) Set(name, value string) {
	if h.entries == nil {
		h.entries = make(map[string]headerEntry)
	}
	h.entries[strings.ToLower(name)] = headerEntry{name: name, value: value}
}

// Get returns the value stored under name, ignoring case.
func (h Headers) Get(name string) (string, bool) {
	e, ok := h.entries[strings.ToLower(name)]
	return e.value, ok
}

// Del removes name, ignoring case.
func (h *Headers) Del(name string) {
	delete(h.entries, strings.ToLower(name))
}

// Len returns the number of distinct headers.
func (h Headers) Len() int {
	return len(h.entries)
}

// Merge returns a new set holding h overlaid with every later set in order.
func (h Headers) Merge(others ...Headers) Headers {
	out := Headers{entries: make(map[string]headerEntry, len(h.entries))}
	for k, e := range h.entries {
		out.entries[k] = e
	}
	for _, o := range others {
		for k, e := range o.entries {
			out.entries[k] = e
		}
	}
	return out
}

// Names returns the wire names in sorted order.
func (h Headers) Names() []string {
	names := make([]string, 0, len(h.entries))
	for _, e := range h.entries {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}

// apply writes the set onto req under canonical keys. A
// "Connection: close" value also disables keep-alive on the request.
func (h Headers) apply(req *http.Request) {
	for _, e := range h.entries {
		req.Header.Set(e.name, e.value)
		if strings.EqualFold(e.name, "Connection") && strings.EqualFold(e.value, "close") {
			req.Close = true
		}
	}
}
