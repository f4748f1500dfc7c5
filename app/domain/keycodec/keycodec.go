// Package keycodec maps cache keys to the upstream requests they were
// populated from, and back. Client-facing code only ever constructs keys;
// the refresh scheduler has to invert them, so any change to an encode
// helper must be mirrored in Decode or the refresher silently stops
// covering that resource.
package keycodec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Kind string

const (
	KindStatus          Kind = "status"
	KindFederationsList Kind = "federations-list"
	KindRecords         Kind = "records"
	KindRankings        Kind = "rankings"
	KindFederation      Kind = "federation"
	KindMeet            Kind = "meet"
	KindUser            Kind = "user"
)

type FetchMode string

const (
	FetchHTML FetchMode = "html"
	FetchJSON FetchMode = "json"
)

// Housekeeping keys that live in the same store but do not describe an
// upstream resource. The refresher skips them silently.
const (
	InternalHostnameKey     = "hostname"
	InternalGlobalStatusKey = "global-status"
)

var (
	// ErrInternalKey marks a housekeeping key that must be skipped.
	ErrInternalKey = errors.New("internal cache key")
	// ErrInvalidKey marks a key that matched a known shape but carries
	// malformed parameters.
	ErrInvalidKey = errors.New("invalid cache key")
	// ErrUnknownKey marks a key no matcher recognizes.
	ErrUnknownKey = errors.New("unknown cache key")
)

// Descriptor is the structured form of a cache key: the upstream path it
// maps to, how to fetch it, and the decoded parameters so a caller can
// reuse the typed fetchers instead of re-parsing the path.
type Descriptor struct {
	Kind Kind
	Mode FetchMode
	Path string

	Filter     string
	Page       int
	PerPage    int
	Federation string
	Year       string
	MeetCode   string
	Username   string
}

type matcher func(key string) (*Descriptor, error, bool)

// Matchers are tried in priority order; some prefixes overlap, so the
// order is load-bearing.
var matchers = []matcher{
	matchInternal,
	matchExact,
	matchRecordsFiltered,
	matchRankingsPlain,
	matchRankingsFiltered,
	matchFederation,
	matchMeet,
	matchUser,
}

// Decode resolves a cache key into a Descriptor. It returns ErrInternalKey
// for housekeeping keys, ErrInvalidKey for malformed parameters and
// ErrUnknownKey when nothing matches. It never panics: a bad key must not
// abort a refresh run.
func Decode(key string) (*Descriptor, error) {
	for _, match := range matchers {
		desc, err, ok := match(key)
		if ok {
			return desc, err
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

func matchInternal(key string) (*Descriptor, error, bool) {
	if key == InternalHostnameKey || key == InternalGlobalStatusKey {
		return nil, fmt.Errorf("%w: %q", ErrInternalKey, key), true
	}
	return nil, nil, false
}

func matchExact(key string) (*Descriptor, error, bool) {
	switch key {
	case "status":
		return &Descriptor{Kind: KindStatus, Mode: FetchHTML, Path: "/status"}, nil, true
	case "federations-list":
		return &Descriptor{Kind: KindFederationsList, Mode: FetchHTML, Path: "/mlist"}, nil, true
	case "records":
		return &Descriptor{Kind: KindRecords, Mode: FetchHTML, Path: "/records"}, nil, true
	}
	return nil, nil, false
}

func matchRecordsFiltered(key string) (*Descriptor, error, bool) {
	rest, found := strings.CutPrefix(key, "records/")
	if !found || rest == "" {
		return nil, nil, false
	}
	return &Descriptor{
		Kind:   KindRecords,
		Mode:   FetchHTML,
		Path:   "/records/" + rest,
		Filter: rest,
	}, nil, true
}

func matchRankingsPlain(key string) (*Descriptor, error, bool) {
	rest, found := strings.CutPrefix(key, "rankings-")
	if !found {
		return nil, nil, false
	}
	page, perPage, err := parsePageSuffix(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidKey, key, err), true
	}
	return rankingsDescriptor("", page, perPage), nil, true
}

func matchRankingsFiltered(key string) (*Descriptor, error, bool) {
	rest, found := strings.CutPrefix(key, "rankings/")
	if !found || rest == "" {
		return nil, nil, false
	}
	// The filter path may itself contain hyphens; the page/perPage pair is
	// always the final two hyphen-delimited segments.
	idx := strings.LastIndex(rest, "-")
	if idx <= 0 {
		return nil, fmt.Errorf("%w: %q: missing page suffix", ErrInvalidKey, key), true
	}
	idx = strings.LastIndex(rest[:idx], "-")
	if idx <= 0 {
		return nil, fmt.Errorf("%w: %q: missing page suffix", ErrInvalidKey, key), true
	}
	filter := rest[:idx]
	page, perPage, err := parsePageSuffix(rest[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidKey, key, err), true
	}
	return rankingsDescriptor(filter, page, perPage), nil, true
}

func matchFederation(key string) (*Descriptor, error, bool) {
	rest, found := strings.CutPrefix(key, "federation-")
	if !found || rest == "" {
		return nil, nil, false
	}
	name, year := splitFederationYear(rest)
	path := "/mlist/" + name
	if year != "" {
		path += "/" + year
	}
	return &Descriptor{
		Kind:       KindFederation,
		Mode:       FetchHTML,
		Path:       path,
		Federation: name,
		Year:       year,
	}, nil, true
}

func matchMeet(key string) (*Descriptor, error, bool) {
	code, found := strings.CutPrefix(key, "meet-")
	if !found || code == "" {
		return nil, nil, false
	}
	return &Descriptor{
		Kind:     KindMeet,
		Mode:     FetchHTML,
		Path:     "/m/" + code,
		MeetCode: code,
	}, nil, true
}

func matchUser(key string) (*Descriptor, error, bool) {
	username, found := strings.CutPrefix(key, "user-")
	if !found || username == "" {
		return nil, nil, false
	}
	return &Descriptor{
		Kind:     KindUser,
		Mode:     FetchHTML,
		Path:     "/u/" + username,
		Username: username,
	}, nil, true
}

// splitFederationYear splits "<name>[-<year>]" on the last hyphen, but only
// when the trailing segment is exactly 4 digits. Anything else is part of
// the name: federation-uspa-123 is the federation "uspa-123", not uspa in
// year 123.
func splitFederationYear(rest string) (name string, year string) {
	idx := strings.LastIndex(rest, "-")
	if idx < 0 {
		return rest, ""
	}
	tail := rest[idx+1:]
	if len(tail) == 4 && isDigits(tail) {
		return rest[:idx], tail
	}
	return rest, ""
}

func parsePageSuffix(rest string) (page int, perPage int, err error) {
	parts := strings.Split(rest, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected <page>-<perPage>, got %q", rest)
	}
	page, err = strconv.Atoi(parts[0])
	if err != nil || page < 0 {
		return 0, 0, fmt.Errorf("bad page %q", parts[0])
	}
	perPage, err = strconv.Atoi(parts[1])
	if err != nil || perPage < 0 {
		return 0, 0, fmt.Errorf("bad perPage %q", parts[1])
	}
	return page, perPage, nil
}

func rankingsDescriptor(filter string, page int, perPage int) *Descriptor {
	start := 0
	if page > 1 {
		start = (page - 1) * perPage
	}
	end := start + perPage
	path := "/rankings"
	if filter != "" {
		path += "/" + filter
	}
	path += fmt.Sprintf("?start=%d&end=%d&lang=en&units=lbs", start, end)
	return &Descriptor{
		Kind:    KindRankings,
		Mode:    FetchJSON,
		Path:    path,
		Filter:  filter,
		Page:    page,
		PerPage: perPage,
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
