package query_test

import (
	"reflect"
	"testing"

	"github.com/JaimeStill/curator/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "triage_entries", "t").
		Project("id", "id").
		Project("campaign", "campaign").
		Project("source_path", "sourcePath")
}

func ptr(s string) *string { return &s }

func TestProjectionMapFrom(t *testing.T) {
	p := testProjection()
	got := p.From()
	want := "public.triage_entries t"
	if got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	got := p.Columns()
	want := "t.id, t.campaign, t.source_path"
	if got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumnLookup(t *testing.T) {
	p := testProjection()

	tests := []struct {
		name     string
		viewName string
		want     string
	}{
		{"mapped field", "campaign", "t.campaign"},
		{"mapped camel", "sourcePath", "t.source_path"},
		{"unmapped passthrough", "unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	tests := []struct {
		name     string
		build    func() (string, []any)
		wantSQL  string
		wantArgs []any
	}{
		{
			name: "no conditions",
			build: func() (string, []any) {
				return query.NewBuilder(testProjection()).Build()
			},
			wantSQL: "SELECT t.id, t.campaign, t.source_path FROM public.triage_entries t",
		},
		{
			name: "equality condition with default sort",
			build: func() (string, []any) {
				return query.
					NewBuilder(testProjection(), query.SortField{Field: "sourcePath"}).
					WhereEquals("campaign", ptr("acme")).
					Build()
			},
			wantSQL:  "SELECT t.id, t.campaign, t.source_path FROM public.triage_entries t WHERE t.campaign = $1 ORDER BY t.source_path ASC",
			wantArgs: []any{ptr("acme")},
		},
		{
			name: "nil equality is a no-op",
			build: func() (string, []any) {
				var campaign *string
				return query.
					NewBuilder(testProjection()).
					WhereEquals("campaign", campaign).
					Build()
			},
			wantSQL: "SELECT t.id, t.campaign, t.source_path FROM public.triage_entries t",
		},
		{
			name: "contains and equals number parameters in order",
			build: func() (string, []any) {
				return query.
					NewBuilder(testProjection()).
					WhereContains("sourcePath", ptr("pitch")).
					WhereEquals("campaign", ptr("acme")).
					Build()
			},
			wantSQL:  "SELECT t.id, t.campaign, t.source_path FROM public.triage_entries t WHERE t.source_path ILIKE $1 AND t.campaign = $2",
			wantArgs: []any{"%pitch%", ptr("acme")},
		},
		{
			name: "explicit order overrides default",
			build: func() (string, []any) {
				return query.
					NewBuilder(testProjection(), query.SortField{Field: "sourcePath"}).
					OrderByFields([]query.SortField{{Field: "campaign", Descending: true}}).
					Build()
			},
			wantSQL: "SELECT t.id, t.campaign, t.source_path FROM public.triage_entries t ORDER BY t.campaign DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotArgs := tt.build()
			if gotSQL != tt.wantSQL {
				t.Errorf("sql = %q, want %q", gotSQL, tt.wantSQL)
			}
			if tt.wantArgs == nil {
				if len(gotArgs) != 0 {
					t.Errorf("args = %v, want none", gotArgs)
				}
				return
			}
			if !reflect.DeepEqual(gotArgs, tt.wantArgs) {
				t.Errorf("args = %v, want %v", gotArgs, tt.wantArgs)
			}
		})
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("id", 42)

	want := "SELECT t.id, t.campaign, t.source_path FROM public.triage_entries t WHERE t.id = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != 42 {
		t.Errorf("args = %v, want [42]", args)
	}
}
