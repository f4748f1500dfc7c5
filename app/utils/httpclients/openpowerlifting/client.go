package openpowerlifting

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openpl-dev/powerlifting-api/app/utils/httpclients"
	"github.com/openpl-dev/powerlifting-api/config/environment_variables"
	"resty.dev/v3"
)

// FetchError is returned for any non-2xx upstream response. A 404 is an
// expected outcome for unknown meet codes, usernames and the like; callers
// translate it to "no data" rather than an internal error.
type FetchError struct {
	StatusCode int
	Path       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("upstream returned %d for %s", e.StatusCode, e.Path)
}

// IsNotFound reports whether err is a FetchError carrying a 404.
func IsNotFound(err error) bool {
	fe, ok := err.(*FetchError)
	return ok && fe.StatusCode == http.StatusNotFound
}

// Client wraps the two upstream surfaces: the HTML site and the JSON
// rankings API. Upstream varies units by cookie, so the cookie is pinned.
type Client struct {
	site *resty.Client
	api  *resty.Client
}

func NewClient() *Client {
	envs := environment_variables.EnvironmentVariables
	return NewClientWithBaseURLs(envs.UPSTREAM_BASE_URL, envs.UPSTREAM_API_URL)
}

func NewClientWithBaseURLs(siteURL string, apiURL string) *Client {
	unitsCookie := &http.Cookie{Name: "units", Value: "lbs"}
	site := httpclients.NewClient("OpenPowerliftingSite").
		SetBaseURL(siteURL).
		SetCookie(unitsCookie)
	api := httpclients.NewClient("OpenPowerliftingAPI").
		SetBaseURL(apiURL).
		SetCookie(unitsCookie).
		SetHeader("Accept", "application/json")
	return &Client{site: site, api: api}
}

// FetchHTML issues a GET against the HTML site and returns the raw body.
func (c *Client) FetchHTML(ctx context.Context, path string) (string, error) {
	resp, err := c.site.R().SetContext(ctx).Get(path)
	if err != nil {
		return "", err
	}
	if !resp.IsSuccess() {
		return "", &FetchError{StatusCode: resp.StatusCode(), Path: path}
	}
	return resp.String(), nil
}

// FetchJSON issues a GET against the JSON API and unmarshals the body into
// the given target.
func (c *Client) FetchJSON(ctx context.Context, path string, into any) error {
	resp, err := c.api.R().SetContext(ctx).SetResult(into).Get(path)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return &FetchError{StatusCode: resp.StatusCode(), Path: path}
	}
	return nil
}
