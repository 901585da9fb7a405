package http

import (
	"net/http"
	"strconv"

	apperrors "gatherly/pkg/errors"
)

// ExtractLimitOffset reads the limit and offset query parameters. Both are
// optional; absent values come back as zero, and the services apply their
// own pagination defaults.
func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + limitStr)
		}
		limit = parsed
	}

	var offset int64
	if offsetStr := query.Get("offset"); offsetStr != "" {
		parsed, err := strconv.ParseInt(offsetStr, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + offsetStr)
		}
		offset = parsed
	}

	return limit, offset, nil
}
