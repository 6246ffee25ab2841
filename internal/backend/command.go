package backend

import (
	"context"

	"github.com/personavault/vaultshell/internal/bridge"
)

// OpFetchData is the operation identifier the result view invokes.
const OpFetchData = "get_data_from_fastapi"

// Register binds f to OpFetchData on reg.
func Register(reg *bridge.Registry, f TextFetcher) {
	reg.Register(OpFetchData, func(ctx context.Context) (string, error) {
		return f.FetchText(ctx)
	})
}
