package handlers

import (
	"strconv"
	"strings"

	"todoapi/internal/store"
)

const maxPageLimit = 200

// parseListQueryParams reads optional limit/offset values. Missing or
// invalid values leave the list unbounded.
func parseListQueryParams(rawLimit string, rawOffset string) store.Page {
	page := store.Page{}
	if parsedLimit, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && parsedLimit > 0 {
		page.Limit = parsedLimit
	}
	if page.Limit > maxPageLimit {
		page.Limit = maxPageLimit
	}

	if parsedOffset, err := strconv.Atoi(strings.TrimSpace(rawOffset)); err == nil && parsedOffset >= 0 {
		page.Offset = parsedOffset
	}

	return page
}
