// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the page size used when the caller does not send ?limit=.
const DefaultLimit = 10

// DefaultMaxLimit caps ?limit= when no explicit maximum is configured.
const DefaultMaxLimit = 100

// MaxPage bounds ?page= so Skip stays far from overflow. Pages past the
// data are empty, so the cap changes no real result.
const MaxPage = 1_000_000

// Params is a clamped page/limit pair. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// Parse reads ?page= and ?limit= from the request and clamps them to
// 1 <= page <= MaxPage and 1 <= limit <= maxLimit. Missing or non-numeric
// values fall back to page 1 and DefaultLimit. A maxLimit < 1 means DefaultMaxLimit.
func Parse(r *http.Request, maxLimit int) Params {
	return Clamp(atoiOr(query.Get(r, "page"), 1), atoiOr(query.Get(r, "limit"), DefaultLimit), maxLimit)
}

// Clamp normalizes an arbitrary page/limit pair.
func Clamp(page, limit, maxLimit int) Params {
	if maxLimit < 1 {
		maxLimit = DefaultMaxLimit
	}
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Skip is the number of documents before the first row of this page.
func (p Params) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// TotalPages returns ceil(total/limit), or 0 when limit is not positive.
func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
