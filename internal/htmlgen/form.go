package htmlgen

import "strings"

// SelectOption is one entry of a select control. Options keep their given
// order; maps would shuffle them.
type SelectOption struct {
	Value string
	Label string
}

func Input(inputType, name, value string, attrs Attrs) string {
	merged := mergeAttrs(attrs, Attrs{
		"type":  inputType,
		"name":  name,
		"value": value,
	})
	return Element("input", merged, "")
}

func TextInput(name, value string, attrs Attrs) string {
	return Input("text", name, value, attrs)
}

func HiddenInput(name, value string) string {
	return Input("hidden", name, value, nil)
}

func Checkbox(name string, checked bool, attrs Attrs) string {
	merged := mergeAttrs(attrs, Attrs{
		"type":  "checkbox",
		"name":  name,
		"value": "1",
	})
	if checked {
		merged["checked"] = "checked"
	}
	return Element("input", merged, "")
}

func Label(forID, text string, attrs Attrs) string {
	merged := mergeAttrs(attrs, Attrs{"for": forID})
	return Element("label", merged, text)
}

func Textarea(name, value string, attrs Attrs) string {
	merged := mergeAttrs(attrs, Attrs{"name": name})
	return Element("textarea", merged, value)
}

func Select(name string, options []SelectOption, selected string, attrs Attrs) string {
	var b strings.Builder
	for _, opt := range options {
		optAttrs := Attrs{"value": opt.Value}
		if opt.Value == selected {
			optAttrs["selected"] = "selected"
		}
		b.WriteString(Element("option", optAttrs, opt.Label))
	}
	merged := mergeAttrs(attrs, Attrs{"name": name})
	return ElementRaw("select", merged, b.String())
}
