package search

import (
	"go.uber.org/fx"

	"github.com/reelkeep/reelkeep-core/domain/studios"
)

// Module provides the search index, its repair queue and the query surface.
var Module = fx.Module("search",
	fx.Provide(
		NewRepository,
		NewRepairQueue,
		NewService,
		NewHandler,
	),
	fx.Provide(func(r *Repository) studios.SearchIndex { return r }),
	fx.Provide(func(q *RepairQueue) studios.IndexRepair { return q }),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(RegisterRepairWorker),
)
