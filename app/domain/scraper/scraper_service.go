package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/openpl-dev/powerlifting-api/app/domain/keycodec"
	"github.com/openpl-dev/powerlifting-api/app/utils/httpclients/openpowerlifting"
	"github.com/openpl-dev/powerlifting-api/config/environment_variables"
)

// ErrMissingContent marks a page whose expected structure is gone, e.g. a
// markup change upstream. It is a per-key refresh failure, never a crash.
var ErrMissingContent = errors.New("expected content missing from upstream page")

// Service normalizes upstream HTML and JSON into typed records.
type Service struct {
	client *openpowerlifting.Client
}

func NewService(client *openpowerlifting.Client) *Service {
	return &Service{client: client}
}

// TTLFor returns the cache lifetime for a resource kind. Rankings pages are
// short-lived; everything else holds for the default TTL.
func TTLFor(kind keycodec.Kind) time.Duration {
	envs := environment_variables.EnvironmentVariables
	if kind == keycodec.KindRankings {
		return time.Duration(envs.RANKINGS_CACHE_TTL_SECONDS) * time.Second
	}
	return time.Duration(envs.CACHE_TTL_SECONDS) * time.Second
}

func (s *Service) FetchStatus(ctx context.Context) (*StatusReport, error) {
	doc, err := s.fetchDocument(ctx, "/status")
	if err != nil {
		return nil, err
	}
	text := doc.Find(".text-content").First()
	if text.Length() == 0 {
		return nil, fmt.Errorf("%w: status page text-content block", ErrMissingContent)
	}
	return &StatusReport{
		Summary:     strings.TrimSpace(text.Text()),
		Federations: TableToRows(doc.Find("table").First()),
	}, nil
}

func (s *Service) FetchFederations(ctx context.Context) (*FederationList, error) {
	doc, err := s.fetchDocument(ctx, "/mlist")
	if err != nil {
		return nil, err
	}
	list := &FederationList{Federations: []Federation{}}
	seen := map[string]bool{}
	doc.Find(`a[href^="/mlist/"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		code := strings.Trim(strings.TrimPrefix(href, "/mlist/"), "/")
		if code == "" || seen[code] {
			return
		}
		seen[code] = true
		list.Federations = append(list.Federations, Federation{
			Code: code,
			Name: strings.TrimSpace(a.Text()),
		})
	})
	return list, nil
}

func (s *Service) FetchFederationMeets(ctx context.Context, name string, year string) (*FederationMeets, error) {
	path := "/mlist/" + name
	if year != "" {
		path += "/" + year
	}
	doc, err := s.fetchDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	return &FederationMeets{
		Federation: name,
		Year:       year,
		Meets:      TableToRows(doc.Find("table").First()),
	}, nil
}

func (s *Service) FetchRecords(ctx context.Context, filter string) (*RecordSet, error) {
	path := "/records"
	if filter != "" {
		path += "/" + filter
	}
	doc, err := s.fetchDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	set := &RecordSet{Filter: filter, Categories: []RecordCategory{}}
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		title := strings.TrimSpace(table.PrevFiltered("h2, h3").First().Text())
		if title == "" {
			title = strings.TrimSpace(table.Find("caption").First().Text())
		}
		set.Categories = append(set.Categories, RecordCategory{
			Title:   title,
			Records: TableToRows(table),
		})
	})
	return set, nil
}

func (s *Service) FetchRankings(ctx context.Context, filter string, page int, perPage int) (*RankingsPage, error) {
	start, end := BuildPaginationQuery(page, perPage)
	path := "/rankings"
	if filter != "" {
		path += "/" + filter
	}
	path += fmt.Sprintf("?start=%d&end=%d&lang=en&units=lbs", start, end)

	var resp rankingsResponse
	if err := s.client.FetchJSON(ctx, path, &resp); err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		entry, err := entryFromRow(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return &RankingsPage{
		Entries:    entries,
		Pagination: CalculatePagination(resp.TotalLength, page, perPage),
	}, nil
}

func (s *Service) FetchMeet(ctx context.Context, code string) (*Meet, error) {
	doc, err := s.fetchDocument(ctx, "/m/"+code)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		return nil, fmt.Errorf("%w: meet page title", ErrMissingContent)
	}
	return &Meet{
		Code:    code,
		Title:   title,
		Results: TableToRows(doc.Find("table").First()),
	}, nil
}

func (s *Service) FetchLifter(ctx context.Context, username string) (*Lifter, error) {
	doc, err := s.fetchDocument(ctx, "/u/"+username)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(doc.Find("h1").First().Text())
	if name == "" {
		return nil, fmt.Errorf("%w: lifter page name", ErrMissingContent)
	}
	return &Lifter{
		Username:     username,
		Name:         name,
		Competitions: TableToRows(doc.Find("table").First()),
	}, nil
}

// FetchForDescriptor re-fetches the resource a decoded cache key describes
// and returns the serialized payload exactly as a request-triggered cache
// write would have stored it. The refresh scheduler is its only caller.
func (s *Service) FetchForDescriptor(ctx context.Context, desc *keycodec.Descriptor) (string, error) {
	var (
		data any
		err  error
	)
	switch desc.Kind {
	case keycodec.KindStatus:
		data, err = s.FetchStatus(ctx)
	case keycodec.KindFederationsList:
		data, err = s.FetchFederations(ctx)
	case keycodec.KindRecords:
		data, err = s.FetchRecords(ctx, desc.Filter)
	case keycodec.KindRankings:
		data, err = s.FetchRankings(ctx, desc.Filter, desc.Page, desc.PerPage)
	case keycodec.KindFederation:
		data, err = s.FetchFederationMeets(ctx, desc.Federation, desc.Year)
	case keycodec.KindMeet:
		data, err = s.FetchMeet(ctx, desc.MeetCode)
	case keycodec.KindUser:
		data, err = s.FetchLifter(ctx, desc.Username)
	default:
		return "", fmt.Errorf("no fetcher for kind %q", desc.Kind)
	}
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *Service) fetchDocument(ctx context.Context, path string) (*goquery.Document, error) {
	html, err := s.client.FetchHTML(ctx, path)
	if err != nil {
		return nil, err
	}
	return ParseDocument(html)
}
