package http

import (
	"net/http"
	"strconv"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/pagination"
)

// queryString returns nil when the parameter is absent or empty
func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// queryPage reads page and limit; unparsable values fall back to the defaults
func queryPage(r *http.Request) pagination.Params {
	var p pagination.Params
	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil {
			p.Page = v
		}
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil {
			p.Limit = v
		}
	}
	return p
}
