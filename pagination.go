package passaporteweb

import (
	"net/url"
	"strconv"
	"strings"
)

// PageSet is the navigable pagination metadata derived from a list response's
// Link header. Page numbers are 1-based; 0 means the service advertised no
// such page. A PageSet is produced fresh per list call and retained by
// nothing.
type PageSet struct {
	Limit int
	First int
	Prev  int
	Next  int
	Last  int
}

// HasNext reports whether a next page exists.
func (p PageSet) HasNext() bool { return p.Next != 0 }

// HasPrev reports whether a previous page exists.
func (p PageSet) HasPrev() bool { return p.Prev != 0 }

// parsePageSet extracts page references from an RFC 5988 Link header value:
// comma-separated `<url>; rel="name"` entries whose URLs carry a `page` query
// parameter. Pagination is advisory metadata, so a missing or malformed
// header yields an empty set with the given limit — never an error.
func parsePageSet(header string, limit int) PageSet {
	set := PageSet{Limit: limit}
	if header == "" {
		return set
	}

	for _, entry := range strings.Split(header, ",") {
		target, rel := parseLinkEntry(entry)
		if target == "" || rel == "" {
			continue
		}
		u, err := url.Parse(target)
		if err != nil {
			continue
		}
		page, err := strconv.Atoi(u.Query().Get("page"))
		if err != nil || page < 1 {
			continue
		}
		switch rel {
		case "first":
			set.First = page
		case "prev":
			set.Prev = page
		case "next":
			set.Next = page
		case "last":
			set.Last = page
		}
	}
	return set
}

// parseLinkEntry splits a single `<url>; rel="name"` entry into its URL and
// relation name. Returns empty strings for entries that do not follow the
// form.
func parseLinkEntry(entry string) (target, rel string) {
	parts := strings.Split(entry, ";")
	if len(parts) < 2 {
		return "", ""
	}

	target = strings.TrimSpace(parts[0])
	if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
		return "", ""
	}
	target = target[1 : len(target)-1]

	for _, param := range parts[1:] {
		param = strings.TrimSpace(param)
		val, ok := strings.CutPrefix(param, "rel=")
		if !ok {
			continue
		}
		return target, strings.Trim(val, `"`)
	}
	return "", ""
}
