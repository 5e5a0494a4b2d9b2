package htmlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElement(t *testing.T) {
	t.Run("escapes content and attributes", func(t *testing.T) {
		got := Element("div", Attrs{"class": `a"b`}, "<script>")
		assert.Equal(t, `<div class="a&#34;b">&lt;script&gt;</div>`, got)
	})

	t.Run("attributes render sorted", func(t *testing.T) {
		got := Div(Attrs{"id": "x", "class": "y"}, "hi")
		assert.Equal(t, `<div class="y" id="x">hi</div>`, got)
	})

	t.Run("void elements self-close", func(t *testing.T) {
		got := Element("br", nil, "")
		assert.Equal(t, "<br />", got)
	})

	t.Run("anchor escapes href", func(t *testing.T) {
		got := Anchor("/p?a=1&b=2", "link", nil)
		assert.Equal(t, `<a href="/p?a=1&amp;b=2">link</a>`, got)
	})
}

func TestFormHelpers(t *testing.T) {
	t.Run("text input", func(t *testing.T) {
		got := TextInput("title", "Hello", Attrs{"id": "title-field"})
		assert.Equal(t, `<input id="title-field" name="title" type="text" value="Hello" />`, got)
	})

	t.Run("checkbox checked", func(t *testing.T) {
		got := Checkbox("published", true, nil)
		assert.Equal(t, `<input checked="checked" name="published" type="checkbox" value="1" />`, got)
	})

	t.Run("checkbox unchecked has no checked attribute", func(t *testing.T) {
		got := Checkbox("published", false, nil)
		assert.Equal(t, `<input name="published" type="checkbox" value="1" />`, got)
	})

	t.Run("select keeps option order and marks selection", func(t *testing.T) {
		got := Select("status", []SelectOption{
			{Value: "draft", Label: "Draft"},
			{Value: "publish", Label: "Published"},
		}, "publish", nil)
		assert.Equal(t,
			`<select name="status"><option value="draft">Draft</option><option selected="selected" value="publish">Published</option></select>`,
			got)
	})

	t.Run("textarea escapes its value", func(t *testing.T) {
		got := Textarea("body", "a <b> c", nil)
		assert.Equal(t, `<textarea name="body">a &lt;b&gt; c</textarea>`, got)
	})
}
