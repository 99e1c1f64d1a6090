package commands

import "context"

// cmdContext is the context commands run API calls under. The pipeline's
// request timeout bounds each call; commands themselves do not cancel.
func cmdContext() context.Context {
	return context.Background()
}
