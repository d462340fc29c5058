package requests

import (
	"context"

	"ghsearch/internal/domain"
	"ghsearch/internal/stream"
)

// Merge interleaves request streams in arrival order
func Merge(ctx context.Context, sources ...stream.Stream[domain.RequestDescriptor]) stream.Stream[domain.RequestDescriptor] {
	return stream.Merge(ctx, sources...)
}
