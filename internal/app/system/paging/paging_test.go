package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		maxLimit int
		want     Params
	}{
		{"defaults", "/users", 100, Params{Page: 1, Limit: DefaultLimit}},
		{"explicit values", "/users?page=3&limit=25", 100, Params{Page: 3, Limit: 25}},
		{"page zero clamps to one", "/users?page=0", 100, Params{Page: 1, Limit: DefaultLimit}},
		{"negative page clamps to one", "/users?page=-4", 100, Params{Page: 1, Limit: DefaultLimit}},
		{"limit zero clamps to one", "/users?limit=0", 100, Params{Page: 1, Limit: 1}},
		{"limit above max clamps", "/users?limit=5000", 100, Params{Page: 1, Limit: 100}},
		{"non-numeric falls back", "/users?page=abc&limit=xyz", 100, Params{Page: 1, Limit: DefaultLimit}},
		{"unset max uses default max", "/users?limit=1000", 0, Params{Page: 1, Limit: DefaultMaxLimit}},
		{"huge page clamps to max page", "/users?page=9223372036854775807&limit=10", 100, Params{Page: MaxPage, Limit: 10}},
		{"page just past max clamps", "/users?page=1000001", 100, Params{Page: MaxPage, Limit: DefaultLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			got := Parse(r, tt.maxLimit)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.target, got, tt.want)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	tests := []struct {
		p    Params
		want int64
	}{
		{Params{Page: 1, Limit: 10}, 0},
		{Params{Page: 2, Limit: 10}, 10},
		{Params{Page: 5, Limit: 3}, 12},
	}
	for _, tt := range tests {
		if got := tt.p.Skip(); got != tt.want {
			t.Errorf("%+v.Skip() = %d, want %d", tt.p, got, tt.want)
		}
	}
}

// Any request, however large its page, yields a non-negative skip.
func TestParse_SkipNeverNegative(t *testing.T) {
	for _, target := range []string{
		"/users?page=9223372036854775807&limit=100",
		"/users?page=922337203685477580&limit=10",
		"/users?page=2147483648&limit=100",
	} {
		p := Parse(httptest.NewRequest("GET", target, nil), 100)
		if skip := p.Skip(); skip < 0 {
			t.Errorf("Parse(%q).Skip() = %d, want >= 0", target, skip)
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 3, 9},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}
