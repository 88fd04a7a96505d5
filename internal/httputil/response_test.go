package httputil

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestRespondList(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		limit       int
		offset      int
		wantHasMore bool
	}{
		{name: "first page of many", total: 120, limit: 50, offset: 0, wantHasMore: true},
		{name: "middle page", total: 120, limit: 50, offset: 50, wantHasMore: true},
		{name: "last page", total: 120, limit: 50, offset: 100, wantHasMore: false},
		{name: "exact fit", total: 50, limit: 50, offset: 0, wantHasMore: false},
		{name: "empty result", total: 0, limit: 50, offset: 0, wantHasMore: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondList(w, []string{"a"}, tt.total, tt.limit, tt.offset)

			if w.Code != 200 {
				t.Fatalf("status = %d, want 200", w.Code)
			}

			var resp struct {
				Data       []string   `json:"data"`
				Pagination Pagination `json:"pagination"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp.Pagination.Total != tt.total || resp.Pagination.Limit != tt.limit || resp.Pagination.Offset != tt.offset {
				t.Errorf("pagination = %+v", resp.Pagination)
			}
			if resp.Pagination.HasMore != tt.wantHasMore {
				t.Errorf("has_more = %v, want %v", resp.Pagination.HasMore, tt.wantHasMore)
			}
		})
	}
}

func TestRespondErrorProblemDetail(t *testing.T) {
	w := httptest.NewRecorder()
	RespondErrorWithExtras(w, 409, "course with this slug already exists", map[string]interface{}{
		"resource_type": "course",
		"existing_id":   float64(12),
	})

	if w.Code != 409 {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != float64(409) {
		t.Errorf("status field = %v", body["status"])
	}
	// Extras surface at the top level, not nested.
	if body["resource_type"] != "course" || body["existing_id"] != float64(12) {
		t.Errorf("extras = %v", body)
	}
}

func TestPathID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int64
		wantErr bool
	}{
		{name: "valid", value: "42", want: 42},
		{name: "zero", value: "0", wantErr: true},
		{name: "negative", value: "-3", wantErr: true},
		{name: "garbage", value: "abc", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/courses/x", nil)
			r.SetPathValue("id", tt.value)

			got, err := PathID(r, "id")
			if tt.wantErr {
				if err == nil {
					t.Errorf("PathID() = %d, expected error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("PathID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("PathID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestListOptionsFromQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/courses?limit=20&offset=40&order_by=title&order_direction=asc", nil)
	opts := ListOptionsFromQuery(r)

	if opts.Limit != 20 || opts.Offset != 40 {
		t.Errorf("opts = %+v", opts)
	}
	if opts.OrderBy != "title" || !opts.Ascending {
		t.Errorf("ordering = %q asc=%v", opts.OrderBy, opts.Ascending)
	}

	r = httptest.NewRequest("GET", "/api/courses?order_direction=desc", nil)
	if opts := ListOptionsFromQuery(r); opts.Ascending {
		t.Error("desc should not be ascending")
	}
}

func TestQueryFilters(t *testing.T) {
	r := httptest.NewRequest("GET", "/?a=true&b=false&c=junk&d=7&e=x", nil)

	if v := QueryBoolFilter(r, "a"); v == nil || !*v {
		t.Errorf("a = %v, want true", v)
	}
	if v := QueryBoolFilter(r, "b"); v == nil || *v {
		t.Errorf("b = %v, want false", v)
	}
	if v := QueryBoolFilter(r, "c"); v != nil {
		t.Errorf("c = %v, want nil", v)
	}
	if v := QueryBoolFilter(r, "missing"); v != nil {
		t.Errorf("missing = %v, want nil", v)
	}

	if v := QueryInt64Filter(r, "d"); v == nil || *v != 7 {
		t.Errorf("d = %v, want 7", v)
	}
	if v := QueryInt64Filter(r, "e"); v != nil {
		t.Errorf("e = %v, want nil", v)
	}
}
