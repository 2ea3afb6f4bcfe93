package transport

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/roster/internal/domain"
)

const (
	// PageParam is the query parameter selecting a page
	PageParam = "page"

	// PagesHeader declares the total number of pages
	PagesHeader = "X-Pagination-Pages"
)

// LastPageNumber requests page 1 of route and reads the page count header.
// A missing or malformed header means a single page.
func LastPageNumber(ctx context.Context, t Transport, route string) (domain.Result[int], error) {
	resp, err := t.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   route,
		Query:  pageQuery(1),
	})
	if err != nil {
		return classifyFailure[int](err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Failure[int](KindForStatus(resp.StatusCode)), nil
	}
	return domain.Success(parsePageCount(resp.Header.Get(PagesHeader))), nil
}

// FetchLastPage resolves the last page of route and returns its items.
// It always costs two round trips: the upstream only reports the page
// count on a page response, and the newest items live on the last page.
func FetchLastPage[V any](ctx context.Context, t Transport, route string) (domain.Result[V], error) {
	pages, err := LastPageNumber(ctx, t, route)
	if err != nil {
		return domain.Result[V]{}, err
	}
	last, ok := pages.Value()
	if !ok {
		return domain.MapFailure[V](pages), nil
	}

	return Get[V](ctx, t, route, pageQuery(last))
}

func pageQuery(page int) url.Values {
	query := url.Values{}
	query.Set(PageParam, strconv.Itoa(page))
	return query
}

func parsePageCount(header string) int {
	n, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
