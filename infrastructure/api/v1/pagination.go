// Package v1 provides the v1 API routes.
package v1

import (
	"net/http"
	"strconv"

	"github.com/unifly-app/unifly/domain/document"
)

const maxPageLimit = 1000

// ParsePage reads skip and limit query parameters. Invalid or negative
// values fall back to zero (no skip, no limit); limit is capped.
func ParsePage(r *http.Request) document.Page {
	page := document.Page{}

	if v := r.URL.Query().Get("skip"); v != "" {
		if skip, err := strconv.ParseInt(v, 10, 64); err == nil && skip > 0 {
			page.Skip = skip
		}
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.ParseInt(v, 10, 64); err == nil && limit > 0 {
			if limit > maxPageLimit {
				limit = maxPageLimit
			}
			page.Limit = limit
		}
	}

	return page
}
