package stats

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openpl-dev/powerlifting-api/app/domain/cachestore"
	"github.com/openpl-dev/powerlifting-api/app/domain/keycodec"
	"github.com/openpl-dev/powerlifting-api/app/domain/scraper"
	"github.com/openpl-dev/powerlifting-api/app/interfaces/http/responses"
	"github.com/openpl-dev/powerlifting-api/config/environment_variables"
)

// StatsRoute serves the cached upstream data: status, federations,
// records, rankings, meets and lifter pages.
type StatsRoute struct {
	store          cachestore.Store
	scraperService *scraper.Service
}

func NewStatsRoute(store cachestore.Store, scraperService *scraper.Service) *StatsRoute {
	return &StatsRoute{
		store:          store,
		scraperService: scraperService,
	}
}

func (route *StatsRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/status", route.GetStatus)
	router.GET("/federations", route.GetFederations)
	router.GET("/federations/:name", route.GetFederationMeets)
	router.GET("/records/*filter", route.GetRecords)
	router.GET("/rankings/*filter", route.GetRankings)
	router.GET("/meets/*code", route.GetMeet)
	router.GET("/lifters/:username", route.GetLifter)
}

// respondCached serves a cached payload, falling back to a live fetch on a
// miss. A nil result means neither the cache nor upstream could produce
// the resource.
func respondCached[T any](c *gin.Context, store cachestore.Store, key string, ttl time.Duration, fetch func(context.Context) (*T, error)) {
	result := scraper.WithCache(c.Request.Context(), store, key, ttl, fetch)
	if result.Data == nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Code:  "a1d9f3b0-62c7-4e8a-b5d4-19f0c8e72a36",
			Error: "resource unavailable",
		})
		return
	}
	if result.Cached {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.JSON(http.StatusOK, result.Data)
}

// GetStatus godoc
// @Summary     Upstream data status
// @Description Returns the upstream project status report, including per-federation scrape health.
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} scraper.StatusReport
// @Router      /v1/status [get]
func (route *StatsRoute) GetStatus(c *gin.Context) {
	respondCached(c, route.store, keycodec.StatusKey(), scraper.TTLFor(keycodec.KindStatus), route.scraperService.FetchStatus)
}

// GetFederations godoc
// @Summary     List federations
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} scraper.FederationList
// @Router      /v1/federations [get]
func (route *StatsRoute) GetFederations(c *gin.Context) {
	respondCached(c, route.store, keycodec.FederationsListKey(), scraper.TTLFor(keycodec.KindFederationsList), route.scraperService.FetchFederations)
}

// GetFederationMeets godoc
// @Summary     Meets for one federation
// @Description Returns the meet list for a federation, optionally narrowed to a year.
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Param       name path string true "federation name"
// @Param       year query string false "four digit year"
// @Success     200 {object} scraper.FederationMeets
// @Router      /v1/federations/{name} [get]
func (route *StatsRoute) GetFederationMeets(c *gin.Context) {
	name := c.Param("name")
	year := c.Query("year")
	if year != "" && !isYear(year) {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "0c3b8f61-7d42-4a95-8e1f-b6a250d9c714",
			Error: "year must be four digits",
		})
		return
	}
	key := keycodec.FederationKey(name, year)
	respondCached(c, route.store, key, scraper.TTLFor(keycodec.KindFederation), func(ctx context.Context) (*scraper.FederationMeets, error) {
		return route.scraperService.FetchFederationMeets(ctx, name, year)
	})
}

// GetRecords godoc
// @Summary     Record tables
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Param       filter path string false "slash separated record filter"
// @Success     200 {object} scraper.RecordSet
// @Router      /v1/records/{filter} [get]
func (route *StatsRoute) GetRecords(c *gin.Context) {
	filter := strings.Trim(c.Param("filter"), "/")
	key := keycodec.RecordsKey(filter)
	respondCached(c, route.store, key, scraper.TTLFor(keycodec.KindRecords), func(ctx context.Context) (*scraper.RecordSet, error) {
		return route.scraperService.FetchRecords(ctx, filter)
	})
}

// GetRankings godoc
// @Summary     Paginated rankings
// @Description Returns one page of the upstream rankings, optionally filtered.
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Param       filter   path  string false "slash separated rankings filter"
// @Param       page     query int    false "page number, starting at 1"
// @Param       per_page query int    false "page size"
// @Success     200 {object} scraper.RankingsPage
// @Router      /v1/rankings/{filter} [get]
func (route *StatsRoute) GetRankings(c *gin.Context) {
	filter := strings.Trim(c.Param("filter"), "/")
	page := parsePositiveInt(c.Query("page"), 1)
	perPage := parsePositiveInt(c.Query("per_page"), environment_variables.EnvironmentVariables.DEFAULT_PER_PAGE)
	if perPage > environment_variables.EnvironmentVariables.MAX_PER_PAGE {
		perPage = environment_variables.EnvironmentVariables.MAX_PER_PAGE
	}
	key := keycodec.RankingsKey(filter, page, perPage)
	respondCached(c, route.store, key, scraper.TTLFor(keycodec.KindRankings), func(ctx context.Context) (*scraper.RankingsPage, error) {
		return route.scraperService.FetchRankings(ctx, filter, page, perPage)
	})
}

// GetMeet godoc
// @Summary     Single meet results
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Param       code path string true "meet code"
// @Success     200 {object} scraper.Meet
// @Router      /v1/meets/{code} [get]
func (route *StatsRoute) GetMeet(c *gin.Context) {
	code := strings.Trim(c.Param("code"), "/")
	if code == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "5a7e92d4-1b38-4c60-af59-83e7d2b1c094",
			Error: "meet code required",
		})
		return
	}
	key := keycodec.MeetKey(code)
	respondCached(c, route.store, key, scraper.TTLFor(keycodec.KindMeet), func(ctx context.Context) (*scraper.Meet, error) {
		return route.scraperService.FetchMeet(ctx, code)
	})
}

// GetLifter godoc
// @Summary     Lifter competition history
// @Tags        stats
// @Produce     json
// @Security    BearerAuth
// @Param       username path string true "lifter username"
// @Success     200 {object} scraper.Lifter
// @Router      /v1/lifters/{username} [get]
func (route *StatsRoute) GetLifter(c *gin.Context) {
	username := c.Param("username")
	key := keycodec.UserKey(username)
	respondCached(c, route.store, key, scraper.TTLFor(keycodec.KindUser), func(ctx context.Context) (*scraper.Lifter, error) {
		return route.scraperService.FetchLifter(ctx, username)
	})
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
