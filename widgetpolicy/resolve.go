package widgetpolicy

import "strings"

// Ctx describes the field a widget is resolved for.
type Ctx struct {
	Kind   string
	Name   string
	Length *int
}

// Resolve returns the widget of the first matching rule. widget is empty
// when nothing matches or the matched widget is not known.
func (p *WidgetPolicy) Resolve(ctx Ctx, known func(string) bool) (widget string, cfg map[string]any) {
	for _, r := range p.Rules {
		if match(r.When, ctx) {
			if known != nil && !known(r.Widget) {
				return "", nil
			}
			return r.Widget, renderConfig(r.Config, ctx)
		}
	}
	return "", nil
}

// Suggest lists the widgets of every matching rule, without duplicates.
func (p *WidgetPolicy) Suggest(ctx Ctx) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range p.Rules {
		if match(r.When, ctx) && !seen[r.Widget] {
			out = append(out, r.Widget)
			seen[r.Widget] = true
		}
	}
	return out
}

func match(w RuleWhen, c Ctx) bool {
	if len(w.Kinds) > 0 {
		found := false
		k := strings.ToLower(c.Kind)
		for _, x := range w.Kinds {
			if x == k {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if w.LengthMin != nil && (c.Length == nil || *c.Length < *w.LengthMin) {
		return false
	}
	if w.LengthMax != nil && (c.Length != nil && *c.Length > *w.LengthMax) {
		return false
	}
	if w.rx != nil && !w.rx.MatchString(c.Name) {
		return false
	}
	return true
}
