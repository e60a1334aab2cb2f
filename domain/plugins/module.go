package plugins

import (
	"go.uber.org/fx"

	"github.com/reelkeep/reelkeep-core/domain/studios"
)

// Module provides the rule-pack labeling hook.
var Module = fx.Module("plugins",
	fx.Provide(NewEngine),
	fx.Provide(func(e *Engine) studios.LabelHook { return e }),
)
