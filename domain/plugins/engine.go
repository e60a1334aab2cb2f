package plugins

import (
	"context"
	"log/slog"

	"github.com/reelkeep/reelkeep-core/domain/labels"
	"github.com/reelkeep/reelkeep-core/domain/studios"
	"github.com/reelkeep/reelkeep-core/internal/config"
	"github.com/reelkeep/reelkeep-core/pkg/logger"
)

// LabelEnsurer resolves label names to ids, creating missing labels.
type LabelEnsurer interface {
	EnsureByNames(ctx context.Context, names []string) ([]string, error)
}

// Engine runs the rule pack as the studio labeling hook. With no rules file
// configured it is a passthrough: the input studio and labels come back
// unchanged.
type Engine struct {
	pack   *RulePack
	labels LabelEnsurer
	log    *slog.Logger
}

// NewEngine loads the rule pack named by PLUGIN_RULES_PATH. An unset path
// yields a passthrough engine; a broken rules file fails startup.
func NewEngine(cfg *config.Config, repo *labels.Repository, log *slog.Logger) (*Engine, error) {
	log = log.With(logger.Scope("plugins"))

	e := &Engine{labels: repo, log: log}
	if cfg.Plugins.RulesPath == "" {
		log.Info("no labeling rules configured, hook is a passthrough")
		return e, nil
	}

	pack, err := LoadRulePack(cfg.Plugins.RulesPath)
	if err != nil {
		return nil, err
	}

	e.pack = pack
	log.Info("labeling rules loaded",
		slog.String("path", cfg.Plugins.RulesPath),
		slog.Int("rules", len(pack.Rules)))

	return e, nil
}

// Invoke applies the rule pack to the studio and returns the studio and the
// label set to persist: the input ids plus any rule-contributed labels,
// resolved to ids by name.
func (e *Engine) Invoke(ctx context.Context, hookName string, studio *studios.Studio, labelIDs []string) (*studios.Studio, []string, error) {
	if e.pack == nil {
		return studio, labelIDs, nil
	}

	names := e.pack.Apply(hookName, studio.MatchTerms())
	if len(names) == 0 {
		return studio, labelIDs, nil
	}

	extra, err := e.labels.EnsureByNames(ctx, names)
	if err != nil {
		return nil, nil, err
	}

	merged := studios.DedupeLabelIDs(append(append([]string{}, labelIDs...), extra...))

	e.log.Debug("rules contributed labels",
		slog.String("hook", hookName),
		slog.String("studio", studio.Name),
		slog.Int("added", len(merged)-len(studios.DedupeLabelIDs(labelIDs))))

	return studio, merged, nil
}
