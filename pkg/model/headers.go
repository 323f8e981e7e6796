package model

import "net/http"

// Header is one custom HTTP header attached to a repository.
type Header struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Headers is an ordered header list whose names are unique.
// Names are compared case-insensitively, as HTTP does.
type Headers []Header

// Get returns the value of the named header.
func (h Headers) Get(name string) (string, bool) {
	key := http.CanonicalHeaderKey(name)
	for _, hdr := range h {
		if http.CanonicalHeaderKey(hdr.Name) == key {
			return hdr.Value, true
		}
	}
	return "", false
}

// Set replaces the named header in place, or appends it when absent.
func (h *Headers) Set(name, value string) {
	key := http.CanonicalHeaderKey(name)
	for i, hdr := range *h {
		if http.CanonicalHeaderKey(hdr.Name) == key {
			(*h)[i].Value = value
			return
		}
	}
	*h = append(*h, Header{Name: name, Value: value})
}

// Len returns the number of headers.
func (h Headers) Len() int {
	return len(h)
}

// Clone returns an independent copy of h.
func (h Headers) Clone() Headers {
	if h == nil {
		return nil
	}
	out := make(Headers, len(h))
	copy(out, h)
	return out
}
