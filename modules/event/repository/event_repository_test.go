package repository

import (
	"strings"
	"testing"
)

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		tags        []string
		wantArgs    []any
		wantILIKEs  int
		wantExists  int
	}{
		{
			name:       "no filters lists public events",
			wantArgs:   []any{},
			wantILIKEs: 0,
			wantExists: 0,
		},
		{
			name:       "substring query wraps pattern and hits every text column",
			query:      "conf",
			wantArgs:   []any{"%conf%"},
			wantILIKEs: 5,
			wantExists: 0,
		},
		{
			name:       "one clause per tag",
			tags:       []string{"music", "tech"},
			wantArgs:   []any{"music", "tech"},
			wantILIKEs: 2,
			wantExists: 2,
		},
		{
			name:       "query and tags combine",
			query:      "conf",
			tags:       []string{"tech"},
			wantArgs:   []any{"%conf%", "tech"},
			wantILIKEs: 6,
			wantExists: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sqlQuery, args := buildSearchQuery(tt.query, tt.tags)

			if len(args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tt.wantArgs)
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("args[%d] = %v, want %v", i, args[i], tt.wantArgs[i])
				}
			}

			if got := strings.Count(sqlQuery, "ILIKE"); got != tt.wantILIKEs {
				t.Errorf("ILIKE count = %d, want %d", got, tt.wantILIKEs)
			}
			if got := strings.Count(sqlQuery, "EXISTS"); got != tt.wantExists {
				t.Errorf("EXISTS count = %d, want %d", got, tt.wantExists)
			}
			if !strings.Contains(sqlQuery, "e.is_public") {
				t.Error("query does not restrict to public events")
			}
			if !strings.HasSuffix(sqlQuery, "ORDER BY e.starts_at") {
				t.Error("query is not ordered by starts_at")
			}
		})
	}
}

func TestBuildSearchQueryPlaceholderNumbering(t *testing.T) {
	sqlQuery, _ := buildSearchQuery("conf", []string{"music", "tech"})

	for _, placeholder := range []string{"$1", "$2", "$3"} {
		if !strings.Contains(sqlQuery, placeholder) {
			t.Errorf("query is missing placeholder %s", placeholder)
		}
	}
	if strings.Contains(sqlQuery, "$4") {
		t.Error("query numbers more placeholders than it has arguments")
	}
}
