package handlers

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"dayboard/internal/money"
)

var errInvalidAmount = errors.New("invalid amount")
var errInvalidDate = errors.New("invalid date")

func parseAmountMinor(raw string) (int64, error) {
	amount, err := money.ParsePositiveMinor(raw)
	if err != nil {
		return 0, errInvalidAmount
	}
	return amount, nil
}

// parseDate accepts YYYY-MM-DD in the server's local zone. An empty value
// falls back to fallback's calendar day.
func parseDate(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	date, err := time.ParseInLocation("2006-01-02", raw, fallback.Location())
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return date, nil
}

// parseIDList splits a comma-separated filter, dropping empty segments. The
// second return reports whether the parameter was supplied at all: present
// but empty means an explicitly empty selection, absent means no filter.
func parseIDList(query url.Values, key string) ([]string, bool) {
	raw, present := query[key]
	if !present {
		return nil, false
	}
	ids := make([]string, 0)
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				ids = append(ids, part)
			}
		}
	}
	return ids, true
}
