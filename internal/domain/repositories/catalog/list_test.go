package catalog

import "testing"

func TestListOptionsApplyDefaults(t *testing.T) {
	tests := []struct {
		name       string
		opts       ListOptions
		wantLimit  int
		wantOffset int
	}{
		{name: "zero values", opts: ListOptions{}, wantLimit: 50, wantOffset: 0},
		{name: "negative limit", opts: ListOptions{Limit: -1}, wantLimit: 50},
		{name: "over cap", opts: ListOptions{Limit: 500}, wantLimit: 100},
		{name: "at cap", opts: ListOptions{Limit: 100}, wantLimit: 100},
		{name: "negative offset", opts: ListOptions{Limit: 10, Offset: -5}, wantLimit: 10, wantOffset: 0},
		{name: "unchanged", opts: ListOptions{Limit: 25, Offset: 75}, wantLimit: 25, wantOffset: 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.ApplyDefaults()
			if opts.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", opts.Limit, tt.wantLimit)
			}
			if opts.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", opts.Offset, tt.wantOffset)
			}
		})
	}
}
