package movies

import (
	"go.uber.org/fx"

	"github.com/reelkeep/reelkeep-core/domain/studios"
)

// Module provides the movies domain.
var Module = fx.Module("movies",
	fx.Provide(NewRepository),
	fx.Provide(func(r *Repository) studios.MovieStore { return r }),
)
