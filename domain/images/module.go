package images

import (
	"go.uber.org/fx"

	"github.com/reelkeep/reelkeep-core/domain/studios"
)

// Module provides the images domain.
var Module = fx.Module("images",
	fx.Provide(NewRepository),
	fx.Provide(func(r *Repository) studios.ImageStore { return r }),
)
