// Package widgetpolicy picks scaffolding widgets for fields from a rule file.
package widgetpolicy

import (
	"fmt"
	"regexp"
	"strings"
)

type WidgetPolicy struct {
	Version int          `yaml:"version" json:"version"`
	Rules   []PolicyRule `yaml:"rules" json:"rules"`
}

// PolicyRule applies Widget and Config when When matches. Rules are tried
// in order and the first match wins.
type PolicyRule struct {
	ID     string         `yaml:"id" json:"id"`
	When   RuleWhen       `yaml:"when" json:"when"`
	Widget string         `yaml:"widget" json:"widget"`
	Config map[string]any `yaml:"config" json:"config"`
}

type RuleWhen struct {
	Kinds     []string `yaml:"kinds" json:"kinds"`
	LengthMin *int     `yaml:"length_min" json:"length_min"`
	LengthMax *int     `yaml:"length_max" json:"length_max"`
	NameRegex string   `yaml:"name_regex" json:"name_regex"`

	rx *regexp.Regexp
}

// Normalize lower-cases kinds and compiles name patterns.
func (p *WidgetPolicy) Normalize() error {
	for i := range p.Rules {
		r := &p.Rules[i]
		r.Widget = strings.TrimSpace(r.Widget)
		for j, k := range r.When.Kinds {
			r.When.Kinds[j] = strings.ToLower(strings.TrimSpace(k))
		}
		r.When.rx = nil
		if r.When.NameRegex != "" {
			rx, err := regexp.Compile(r.When.NameRegex)
			if err != nil {
				return fmt.Errorf("rule %q: bad name_regex: %w", r.ID, err)
			}
			r.When.rx = rx
		}
	}
	return nil
}
