package studios

import (
	"go.uber.org/fx"
)

// Module provides the studios domain. The store, label, scene, movie, image,
// index and hook ports are bound by their owning modules.
var Module = fx.Module("studios",
	fx.Provide(NewRepository),
	fx.Provide(func(r *Repository) StudioStore { return r }),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)
