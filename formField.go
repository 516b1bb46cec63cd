package dbfield

import (
	"github.com/go-openapi/inflect"
)

// Form field input types.
const (
	FormFieldText     = "text"
	FormFieldNumeric  = "numeric"
	FormFieldCheckbox = "checkbox"
	FormFieldDropdown = "dropdown"
	FormFieldDatetime = "datetime"
)

type FormFieldOption struct {
	Value string `json:"value"`
	Title string `json:"title"`
}

// FormField describes one scaffolded input widget.
type FormField struct {
	Type      string            `json:"type"`
	Name      string            `json:"name"`
	Title     string            `json:"title"`
	Value     any               `json:"value,omitempty"`
	MaxLength int               `json:"maxLength,omitempty"`
	Widget    string            `json:"widget"`
	Options   []FormFieldOption `json:"options,omitempty"`
	Config    map[string]any    `json:"config,omitempty"`
}

// WidgetResolver picks a widget for a scaffolded field. An empty widget
// keeps the default.
type WidgetResolver interface {
	ResolveWidget(kind, column string, length int) (widget string, config map[string]any)
}

var defaultWidgets = map[string]string{
	FormFieldText:     "text-input",
	FormFieldNumeric:  "number-input",
	FormFieldCheckbox: "checkbox",
	FormFieldDropdown: "select",
	FormFieldDatetime: "datetime-input",
}

func newFormField(typ, name, title string) *FormField {
	if title == "" {
		title = inflect.Titleize(name)
	}
	return &FormField{
		Type:   typ,
		Name:   name,
		Title:  title,
		Widget: defaultWidgets[typ],
	}
}

// NewTextField builds a text input. An empty title is derived from name.
func NewTextField(name, title string) *FormField {
	return newFormField(FormFieldText, name, title)
}

func NewNumericField(name, title string) *FormField {
	return newFormField(FormFieldNumeric, name, title)
}

func NewCheckboxField(name, title string) *FormField {
	return newFormField(FormFieldCheckbox, name, title)
}

func NewDropdownField(name, title string) *FormField {
	return newFormField(FormFieldDropdown, name, title)
}

func NewDatetimeField(name, title string) *FormField {
	return newFormField(FormFieldDatetime, name, title)
}

// applyResolver lets r override the widget and merge its config.
func applyResolver(ff *FormField, f IDBField, r WidgetResolver) {
	if r == nil {
		return
	}
	widget, cfg := r.ResolveWidget(f.Kind().String(), f.Name(), ff.MaxLength)
	if widget == "" {
		return
	}
	ff.Widget = widget
	if len(cfg) == 0 {
		return
	}
	if ff.Config == nil {
		ff.Config = make(map[string]any, len(cfg))
	}
	for k, v := range cfg {
		ff.Config[k] = v
	}
}
