package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	repos "eduweb/internal/domain/repositories/catalog"
)

// ParseJSON decodes JSON from the request body into the given destination.
// It limits the request body size to prevent abuse and provides clear error messages.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	// Limit request body to 10MB (requires w for proper 413 response)
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// PathID parses the named path segment as a positive int64 id.
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// QueryInt parses an optional integer query parameter, returning def when
// absent or malformed.
func QueryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// QueryBool reports whether the query parameter carries a truthy value.
// "true" and "1" are truthy, everything else (including absence) is false.
func QueryBool(r *http.Request, name string) bool {
	raw := r.URL.Query().Get(name)
	return raw == "true" || raw == "1"
}

// QueryBoolFilter parses an optional tri-state boolean filter: nil when the
// parameter is absent or malformed.
func QueryBoolFilter(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	switch raw {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	default:
		return nil
	}
}

// QueryInt64Filter parses an optional int64 filter: nil when absent or
// malformed.
func QueryInt64Filter(r *http.Request, name string) *int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// QueryStringFilter parses an optional string filter: nil when absent.
func QueryStringFilter(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}

// ListOptionsFromQuery extracts the shared pagination and ordering
// parameters. Range normalization happens in ListOptions.ApplyDefaults, down
// in the repository.
func ListOptionsFromQuery(r *http.Request) repos.ListOptions {
	return repos.ListOptions{
		Limit:     QueryInt(r, "limit", 0),
		Offset:    QueryInt(r, "offset", 0),
		OrderBy:   r.URL.Query().Get("order_by"),
		Ascending: r.URL.Query().Get("order_direction") == "asc",
	}
}
