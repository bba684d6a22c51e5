package actions

import (
	"context"
	"fmt"

	"github.com/footprint-tools/routeshell/internal/dispatchers"
)

// Version prints "<name>, version <version>".
func Version(deps Deps) dispatchers.Handler {
	return dispatchers.HandlerFunc(func(_ context.Context, req *dispatchers.Request) int {
		req.Console.WriteLine(fmt.Sprintf("%s, version %s", deps.AppName, deps.Version))
		return 0
	})
}
