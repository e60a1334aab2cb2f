package labels

import (
	"go.uber.org/fx"

	"github.com/reelkeep/reelkeep-core/domain/studios"
)

// Module provides the labels domain and binds its repository to the studio
// engine's label ports.
var Module = fx.Module("labels",
	fx.Provide(NewRepository),
	fx.Provide(func(r *Repository) studios.LabelStore { return r }),
	fx.Provide(func(r *Repository) studios.LabelledItemStore { return r }),
)
