package people

import (
	"go.uber.org/fx"
)

// Module provides people domain dependencies. The repository doubles as the
// Store used by tree traversals and as the Lister behind the listing endpoint.
var Module = fx.Module("people",
	fx.Provide(
		NewRepository,
		fx.Annotate(
			func(r *Repository) Store { return r },
			fx.As(new(Store)),
		),
		fx.Annotate(
			func(r *Repository) Lister { return r },
			fx.As(new(Lister)),
		),
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
