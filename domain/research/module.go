package research

import (
	"go.uber.org/fx"
)

// Module provides research domain dependencies.
var Module = fx.Module("research",
	fx.Provide(
		NewRepository,
		fx.Annotate(
			func(r *Repository) Source { return r },
			fx.As(new(Source)),
		),
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
