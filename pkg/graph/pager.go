package graph

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
)

// Page is one page of a Graph collection. An empty NextLink means the
// collection is exhausted.
type Page[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"@odata.nextLink"`
}

// newListPager walks a Graph collection by following @odata.nextLink until
// the service stops returning one. All three paginated endpoints (audit
// records, risky users, risk detections) go through here; only the element
// type differs. The pager always starts from the first page.
func newListPager[T any](c *Client, firstURL string) *runtime.Pager[Page[T]] {
	return runtime.NewPager(runtime.PagingHandler[Page[T]]{
		More: func(p Page[T]) bool {
			return p.NextLink != ""
		},
		Fetcher: func(ctx context.Context, current *Page[T]) (Page[T], error) {
			url := firstURL
			if current != nil && current.NextLink != "" {
				url = current.NextLink
			}
			var page Page[T]
			if err := c.get(ctx, url, &page); err != nil {
				return Page[T]{}, err
			}
			return page, nil
		},
	})
}
