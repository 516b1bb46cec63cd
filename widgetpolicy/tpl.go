package widgetpolicy

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// renderConfig expands string values as templates over the field context.
// Values that fail to parse are kept verbatim.
func renderConfig(in map[string]any, ctx Ctx) map[string]any {
	if in == nil {
		return nil
	}
	out := map[string]any{}
	fm := template.FuncMap{
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"or": func(a, b any) any {
			if s, ok := a.(string); ok && s == "" {
				return b
			}
			if a == nil {
				return b
			}
			return a
		},
		"eq": func(a, b any) bool { return fmt.Sprint(a) == fmt.Sprint(b) },
	}
	length := 0
	if ctx.Length != nil {
		length = *ctx.Length
	}
	for k, v := range in {
		s, ok := v.(string)
		if !ok {
			out[k] = v
			continue
		}
		tpl, err := template.New("cfg").Funcs(fm).Parse(s)
		if err != nil {
			out[k] = v
			continue
		}
		var buf bytes.Buffer
		if err := tpl.Execute(&buf, map[string]any{
			"Kind":   ctx.Kind,
			"Name":   ctx.Name,
			"Length": length,
		}); err != nil {
			out[k] = v
			continue
		}
		out[k] = buf.String()
	}
	return out
}
