// Package plugins implements the pluggable labeling hook as a YAML rule
// pack: declarative rules matched against a studio's name and aliases that
// contribute extra labels at create time or on explicit re-runs.
package plugins

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule is one labeling rule. Exactly one of Contains or Pattern should be
// set; a rule with both uses Pattern. Hooks limits the rule to specific hook
// names; empty means the rule applies to every hook.
type Rule struct {
	Name     string   `yaml:"name"`
	Contains string   `yaml:"contains"`
	Pattern  string   `yaml:"pattern"`
	Labels   []string `yaml:"labels"`
	Hooks    []string `yaml:"hooks"`

	re *regexp.Regexp
}

// RulePack is the parsed rules file.
type RulePack struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRulePack reads and compiles a YAML rules file.
func LoadRulePack(path string) (*RulePack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var pack RulePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	for i := range pack.Rules {
		r := &pack.Rules[i]
		if r.Pattern != "" {
			re, err := regexp.Compile("(?i)" + r.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %q: compile pattern: %w", r.Name, err)
			}
			r.re = re
		} else if r.Contains == "" {
			return nil, fmt.Errorf("rule %q: needs contains or pattern", r.Name)
		}
		if len(r.Labels) == 0 {
			return nil, fmt.Errorf("rule %q: needs at least one label", r.Name)
		}
	}

	return &pack, nil
}

// matches reports whether the rule fires for any of the given terms.
func (r *Rule) matches(terms []string) bool {
	for _, term := range terms {
		if r.re != nil {
			if r.re.MatchString(term) {
				return true
			}
			continue
		}
		if strings.Contains(strings.ToLower(term), strings.ToLower(r.Contains)) {
			return true
		}
	}
	return false
}

// appliesTo reports whether the rule is active for the hook name.
func (r *Rule) appliesTo(hookName string) bool {
	if len(r.Hooks) == 0 {
		return true
	}
	for _, h := range r.Hooks {
		if h == hookName {
			return true
		}
	}
	return false
}

// Apply returns the label names contributed by the pack for the given hook
// and match terms, deduplicated in rule order.
func (p *RulePack) Apply(hookName string, terms []string) []string {
	var names []string
	seen := make(map[string]bool)
	for i := range p.Rules {
		r := &p.Rules[i]
		if !r.appliesTo(hookName) || !r.matches(terms) {
			continue
		}
		for _, name := range r.Labels {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
