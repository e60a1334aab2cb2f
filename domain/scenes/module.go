package scenes

import (
	"go.uber.org/fx"

	"github.com/reelkeep/reelkeep-core/domain/studios"
)

// Module provides the scenes domain and binds its repository to the studio
// engine's scene port.
var Module = fx.Module("scenes",
	fx.Provide(NewRepository),
	fx.Provide(func(r *Repository) studios.SceneStore { return r }),
)
