package tree

import (
	"go.uber.org/fx"
)

// Module provides tree domain dependencies.
var Module = fx.Module("tree",
	fx.Provide(
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
