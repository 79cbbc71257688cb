package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/rajivgeraev/flippy-motors/internal/models"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func mockSource(t *testing.T) *StubSource {
	t.Helper()
	src, err := NewMockSource()
	if err != nil {
		t.Fatalf("NewMockSource: %v", err)
	}
	return src
}

func ids(vs []models.Vehicle) []int64 {
	out := make([]int64, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.ID)
	}
	return out
}

func TestStubFilters(t *testing.T) {
	src := mockSource(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		filters models.SearchFilters
		want    []int64
	}{
		{"brand substring", models.SearchFilters{Brand: "toyo"}, []int64{11, 10, 1}},
		{"query over title", models.SearchFilters{Query: "vf"}, []int64{9, 3}},
		{"body type", models.SearchFilters{BodyType: "SUV"}, []int64{9, 3, 2}},
		{"year and price bounds", models.SearchFilters{YearMin: intPtr(2022), PriceMax: int64Ptr(1000000000)}, []int64{9, 7}},
		{"mileage", models.SearchFilters{MileageMax: intPtr(10000)}, []int64{12, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := src.Search(ctx, tt.filters)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			got := ids(page.Results)
			if len(got) != len(tt.want) {
				t.Fatalf("ids = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ids = %v, want %v", got, tt.want)
				}
			}
			if page.Origin != OriginStub {
				t.Errorf("Origin = %q", page.Origin)
			}
		})
	}
}

func TestStubSortKeepsMissingLast(t *testing.T) {
	page, err := mockSource(t).Search(context.Background(), models.SearchFilters{
		Brand: "Honda", SortBy: "price", SortOrder: "asc",
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	got := ids(page.Results)
	if len(got) != 2 || got[0] != 2 || got[1] != 12 {
		t.Fatalf("ids = %v, want [2 12]", got)
	}
}

func TestStubPagination(t *testing.T) {
	src := mockSource(t)
	page, err := src.Search(context.Background(), models.SearchFilters{Page: intPtr(3), PageSize: intPtr(5)})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total != 12 || page.TotalPages != 3 || len(page.Results) != 2 {
		t.Fatalf("page = total %d pages %d results %d", page.Total, page.TotalPages, len(page.Results))
	}
	if err := page.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	beyond, _ := src.Search(context.Background(), models.SearchFilters{Page: intPtr(9), PageSize: intPtr(5)})
	if len(beyond.Results) != 0 || beyond.Total != 12 {
		t.Fatalf("page beyond the end = %+v", beyond.SearchResponse)
	}
}

type failingSource struct{ err error }

func (f failingSource) Search(context.Context, models.SearchFilters) (*Page, error) {
	return nil, f.err
}

func TestFallbackSource(t *testing.T) {
	src := &FallbackSource{Primary: failingSource{errors.New("connection refused")}, Fallback: mockSource(t)}
	page, err := src.Search(context.Background(), models.SearchFilters{PageSize: intPtr(8)})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Origin != OriginStub || len(page.Results) != 8 {
		t.Fatalf("fallback page = origin %q, %d results", page.Origin, len(page.Results))
	}

	cancelled := &FallbackSource{Primary: failingSource{context.Canceled}, Fallback: mockSource(t)}
	if _, err := cancelled.Search(context.Background(), models.SearchFilters{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled search err = %v, want Canceled", err)
	}

	noFallback := &FallbackSource{Primary: failingSource{errors.New("down")}}
	if _, err := noFallback.Search(context.Background(), models.SearchFilters{}); err == nil {
		t.Fatal("missing fallback must surface the error")
	}
}

type fakeSearcher struct{}

func (fakeSearcher) Search(_ context.Context, f models.SearchFilters) (*models.SearchResponse, error) {
	return &models.SearchResponse{Results: []models.Vehicle{{ID: 99}}, Total: 1, Page: 1, PageSize: 20, TotalPages: 1}, nil
}

func TestLiveSource(t *testing.T) {
	page, err := NewLiveSource(fakeSearcher{}).Search(context.Background(), models.SearchFilters{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Origin != OriginLive || page.Results[0].ID != 99 {
		t.Fatalf("page = %+v", page)
	}
}

func TestStubPageBeyondResults(t *testing.T) {
	src := mockSource(t)
	ctx := context.Background()

	for _, n := range []int{3, 922337203685477581} {
		page, err := src.Search(ctx, models.SearchFilters{Page: intPtr(n), PageSize: intPtr(10)})
		if err != nil {
			t.Fatalf("page %d: Search: %v", n, err)
		}
		if len(page.Results) != 0 || page.Total != 12 {
			t.Errorf("page %d: results = %d, total = %d", n, len(page.Results), page.Total)
		}
	}
}

type fixedSearcher struct {
	resp models.SearchResponse
}

func (s fixedSearcher) Search(context.Context, models.SearchFilters) (*models.SearchResponse, error) {
	return &s.resp, nil
}

func TestLiveSourceKeepsInconsistentPage(t *testing.T) {
	resp := models.SearchResponse{
		Results:  []models.Vehicle{{ID: 1}, {ID: 2}},
		Total:    1,
		PageSize: 20,
	}
	if resp.Validate() == nil {
		t.Fatal("total below result count must fail validation")
	}

	page, err := NewLiveSource(fixedSearcher{resp: resp}).Search(context.Background(), models.SearchFilters{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Origin != OriginLive || len(page.Results) != 2 {
		t.Errorf("page = %+v", page)
	}
}
