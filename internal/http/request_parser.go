package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"fintrack/internal/core"
)

const (
	ownerHeader = "X-Owner"
	dateLayout  = "2006-01-02"

	// maxBodyBytes caps JSON request bodies. Receipt uploads have their own
	// multipart limit.
	maxBodyBytes = 1 << 20
)

var (
	errMissingOwner = errors.New("missing owner: set the X-Owner header or the owner query parameter")
	errBadID        = errors.New("invalid record id")
)

// requestOwner resolves the owner scope of a request. The header wins over
// the query parameter so proxies can pin it.
func requestOwner(r *http.Request) (string, error) {
	owner := strings.TrimSpace(r.Header.Get(ownerHeader))
	if owner == "" {
		owner = strings.TrimSpace(r.URL.Query().Get("owner"))
	}
	owner = sanitizeInput(owner)
	if owner == "" {
		return "", errMissingOwner
	}
	return owner, nil
}

// pathID reads the {id} path segment as a positive int64.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

// decodeJSON decodes a bounded request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	return nil
}

// parseAmount converts a decimal string like "12.34" to money. Amounts travel
// as strings so client float formatting never changes the stored cents.
func parseAmount(s string) (core.Money, error) {
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return core.Money{}, fmt.Errorf("amount %q: %w", s, err)
	}
	return core.Money{Cents: cents}, nil
}

// parseOptionalAmount is parseAmount for fields where zero is a valid value,
// such as a budget limit or a paid-off balance.
func parseOptionalAmount(s string) (core.Money, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || isZeroAmount(trimmed) {
		return core.Money{}, nil
	}
	return parseAmount(s)
}

func isZeroAmount(s string) bool {
	seenDigit := false
	for _, r := range s {
		switch {
		case r == '0':
			seenDigit = true
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return seenDigit
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want %s", s, dateLayout)
	}
	return t, nil
}

// parseAsOf reads the optional as_of query parameter. The bool reports
// whether the caller pinned an explicit instant; default-time responses are
// the only ones worth caching.
func parseAsOf(r *http.Request) (time.Time, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("as_of"))
	if raw == "" {
		return time.Now(), false, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("as_of %q: want %s or RFC 3339", raw, dateLayout)
	}
	return t, true, nil
}

// sanitizeInput strips control characters from free-form string input.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
