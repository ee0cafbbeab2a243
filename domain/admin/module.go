package admin

import (
	"go.uber.org/fx"
)

// Module provides admin dependencies.
var Module = fx.Module("admin",
	fx.Provide(
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
