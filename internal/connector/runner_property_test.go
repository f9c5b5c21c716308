package connector

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"sudomock-connector/internal/domain"
	"sudomock-connector/internal/providers/sudomock"
)

// TestListPaginationProperty verifies that the pagination loop issues
// pages until one comes back short, collecting every record exactly once,
// for arbitrary listing sizes.
func TestListPaginationProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("returnAll collects every record with minimal pages", prop.ForAll(
		func(total int) bool {
			var requests int
			api := &stubAPI{
				list: func(ctx context.Context, query sudomock.ListQuery) (*sudomock.MockupPage, error) {
					requests++
					remaining := total - query.Offset
					if remaining < 0 {
						remaining = 0
					}
					count := query.Limit
					if remaining < count {
						count = remaining
					}
					mockups := make([]map[string]any, count)
					for i := range mockups {
						mockups[i] = map[string]any{"offset": query.Offset + i}
					}
					return &sudomock.MockupPage{Mockups: mockups}, nil
				},
			}
			runner := newTestRunner(api)
			results, err := runner.Run(context.Background(), domain.OpListTemplates,
				[]Item{{"returnAll": true}}, RunOptions{})
			if err != nil {
				return false
			}
			if len(results) != total {
				return false
			}
			// The loop stops at the first short page. An exact multiple of
			// the page size therefore needs one trailing empty page.
			wantRequests := total/listTemplatesPageSize + 1
			return requests == wantRequests
		},
		gen.IntRange(0, 450),
	))

	properties.Property("without returnAll exactly one page is requested", prop.ForAll(
		func(limit int, total int) bool {
			var requests int
			api := &stubAPI{
				list: func(ctx context.Context, query sudomock.ListQuery) (*sudomock.MockupPage, error) {
					requests++
					count := query.Limit
					if total < count {
						count = total
					}
					mockups := make([]map[string]any, count)
					for i := range mockups {
						mockups[i] = map[string]any{"offset": i}
					}
					return &sudomock.MockupPage{Mockups: mockups}, nil
				},
			}
			runner := newTestRunner(api)
			results, err := runner.Run(context.Background(), domain.OpListTemplates,
				[]Item{{"returnAll": false, "limit": limit}}, RunOptions{})
			if err != nil {
				return false
			}
			if requests != 1 {
				return false
			}
			want := total
			if limit < want {
				want = limit
			}
			return len(results) == want
		},
		gen.IntRange(1, 100),
		gen.IntRange(0, 300),
	))

	properties.TestingRun(t)
}
