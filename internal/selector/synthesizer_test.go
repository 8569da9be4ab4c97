package selector

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_EmptyInput(t *testing.T) {
	_, err := Synthesize("")
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = Synthesize("   \n\t  ")
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestSynthesize_TestIDAttributes(t *testing.T) {
	res, err := Synthesize(`<input id="user" data-testid="user-input" placeholder="Enter name">`)
	require.NoError(t, err)

	assert.Contains(t, res.TestID, `input[data-testid="user-input"]`)
	assert.NotContains(t, res.TestID, NoTestIDSentinel)
	assert.Contains(t, res.CSS, `input[data-testid="user-input"]`)
	assert.Contains(t, res.XPath, `//input[@data-testid='user-input']`)
}

func TestSynthesize_AllTestIDAttributeNames(t *testing.T) {
	res, err := Synthesize(`<button data-testid="a" data-cy="b" data-qa="c" data-test="d">Go</button>`)
	require.NoError(t, err)

	assert.Equal(t, []string{
		`button[data-testid="a"]`,
		`button[data-cy="b"]`,
		`button[data-qa="c"]`,
		`button[data-test="d"]`,
	}, res.TestID)
}

func TestSynthesize_TestIDSentinel(t *testing.T) {
	res, err := Synthesize(`<div id="plain">Hi</div>`)
	require.NoError(t, err)

	assert.Equal(t, []string{NoTestIDSentinel}, res.TestID)
}

func TestSynthesize_IDRule(t *testing.T) {
	res, err := Synthesize(`<input id="user" type="text">`)
	require.NoError(t, err)

	assert.Contains(t, res.XPath, `//input[@id='user']`)
	assert.Contains(t, res.CSS, `input#user`)
}

func TestSynthesize_LabelForAssociation(t *testing.T) {
	res, err := Synthesize(`<label for="em">Email</label><input id="em">`)
	require.NoError(t, err)

	assert.Contains(t, res.XPath, `//input[@id=//label[normalize-space(text())='Email']/@for]`)
}

func TestSynthesize_LabelPrecedingSibling(t *testing.T) {
	res, err := Synthesize(`<div><label>Phone</label><input type="tel"></div>`)
	require.NoError(t, err)

	assert.Contains(t, res.XPath, `//label[normalize-space(text())='Phone']/following-sibling::input`)
}

func TestSynthesize_LabelEnclosing(t *testing.T) {
	res, err := Synthesize(`<label>Email<input type="text"></label>`)
	require.NoError(t, err)

	assert.Contains(t, res.XPath, `//label[normalize-space(text())='Email']//input`)
	assert.Contains(t, res.CSS, `label:has(input)`)
}

func TestSynthesize_LabelRulesOnlyForFormFields(t *testing.T) {
	res, err := Synthesize(`<label>Note<span>х</span></label>`)
	require.NoError(t, err)

	for _, x := range res.XPath {
		assert.NotContains(t, x, "label[normalize-space")
	}
}

func TestSynthesize_TextContent(t *testing.T) {
	res, err := Synthesize(`<button>Submit</button>`)
	require.NoError(t, err)

	assert.Contains(t, res.XPath, `//button[normalize-space(text())='Submit']`)
	assert.Contains(t, res.XPath, `//button[contains(text(), 'Submit')]`)
}

func TestSynthesize_TextWithDoubleQuotes(t *testing.T) {
	res, err := Synthesize(`<div>Hello "World"</div>`)
	require.NoError(t, err)

	// Без одинарных кавычек достаточно обернуть в одинарные, concat не нужен.
	assert.Contains(t, res.XPath, `//div[normalize-space(text())='Hello "World"']`)
}

func TestSynthesize_TextWithBothQuoteKinds(t *testing.T) {
	res, err := Synthesize(`<button>It's "ok"</button>`)
	require.NoError(t, err)

	assert.Contains(t, res.XPath, `//button[normalize-space(text())=concat('It', "'", 's "ok"')]`)
}

func TestSynthesize_TextRuleSkipsNonLeaf(t *testing.T) {
	res, err := Synthesize(`<div><span>Hi</span></div>`)
	require.NoError(t, err)

	assert.NotContains(t, res.XPath, `//div[normalize-space(text())='Hi']`)
	assert.Contains(t, res.XPath, `//span[normalize-space(text())='Hi']`)
}

func TestSynthesize_TextRuleSkipsLongText(t *testing.T) {
	long := strings.Repeat("слово ", 20)
	res, err := Synthesize("<p>" + long + "</p>")
	require.NoError(t, err)

	for _, x := range res.XPath {
		assert.NotContains(t, x, "normalize-space")
	}
}

func TestSynthesize_TextRuleCollapsesWhitespace(t *testing.T) {
	res, err := Synthesize("<span>  Hello \n  World  </span>")
	require.NoError(t, err)

	assert.Contains(t, res.XPath, `//span[normalize-space(text())='Hello World']`)
}

func TestSynthesize_StableAttributes(t *testing.T) {
	res, err := Synthesize(`<input name="q" placeholder="Search" type="text">`)
	require.NoError(t, err)

	assert.Contains(t, res.XPath, `//input[@name='q']`)
	assert.Contains(t, res.XPath, `//input[@placeholder='Search']`)
	assert.Contains(t, res.XPath, `//input[@type='text']`)
	assert.Contains(t, res.CSS, `input[name="q"]`)
	assert.Contains(t, res.CSS, `input[placeholder="Search"]`)
}

func TestSynthesize_AbsoluteFallbackPath(t *testing.T) {
	res, err := Synthesize(`<div><section><input type="text"></section><section><input type="text"></section></div>`)
	require.NoError(t, err)

	assert.Contains(t, res.XPath, `/html/body/div[1]/section[1]/input[1]`)
	assert.Contains(t, res.XPath, `/html/body/div[1]/section[2]/input[1]`)
}

func TestSynthesize_AbsoluteFallbackShortCircuitsOnAncestorID(t *testing.T) {
	res, err := Synthesize(`<div id="form-area"><section><button>Go</button></section></div>`)
	require.NoError(t, err)

	assert.Contains(t, res.XPath, `//*[@id='form-area']/section[1]/button[1]`)
}

func TestSynthesize_AbsoluteFallbackOnlyForInteractiveTags(t *testing.T) {
	res, err := Synthesize(`<div><span>txt</span></div>`)
	require.NoError(t, err)

	for _, x := range res.XPath {
		assert.False(t, strings.HasPrefix(x, "/html/"), "не ожидался позиционный путь: %s", x)
	}
}

func TestSynthesize_StructuralTagsSkipped(t *testing.T) {
	res, err := Synthesize(`<html><head><title>t</title></head><body><p id="a">Hi</p></body></html>`)
	require.NoError(t, err)

	all := append(append([]string{}, res.XPath...), res.CSS...)
	for _, s := range all {
		assert.False(t, strings.HasPrefix(s, "//html["), s)
		assert.False(t, strings.HasPrefix(s, "//head["), s)
		assert.False(t, strings.HasPrefix(s, "//body["), s)
		assert.False(t, strings.HasPrefix(s, "//title["), s)
	}
	assert.Contains(t, res.XPath, `//p[@id='a']`)
}

func TestSynthesize_ElementCap(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 150; i++ {
		fmt.Fprintf(&b, `<div id="el%d">x</div>`, i)
	}
	res, err := Synthesize(b.String())
	require.NoError(t, err)

	// Лимит считает все элементы в порядке документа, включая каркас
	// html/head/body, который создаёт парсер: просматриваются div 1..97.
	assert.Contains(t, res.XPath, `//div[@id='el1']`)
	assert.Contains(t, res.XPath, `//div[@id='el97']`)
	assert.NotContains(t, res.XPath, `//div[@id='el98']`)
	assert.NotContains(t, res.XPath, `//div[@id='el150']`)
}

func TestSynthesize_Deduplication(t *testing.T) {
	res, err := Synthesize(`<input name="a"><input name="a"><input name="a">`)
	require.NoError(t, err)

	for _, list := range [][]string{res.XPath, res.CSS, res.TestID} {
		seen := make(map[string]int)
		for _, s := range list {
			seen[s]++
			assert.Equal(t, 1, seen[s], "дубликат: %s", s)
		}
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	markup := `<form><label for="em">Email</label><input id="em" data-testid="email" name="email">
		<button data-cy="send">Send</button></form>`

	first, err := Synthesize(markup)
	require.NoError(t, err)
	second, err := Synthesize(markup)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSynthesize_MultipleRulesPerElement(t *testing.T) {
	res, err := Synthesize(`<input id="q" data-testid="search" name="q" placeholder="Найти">`)
	require.NoError(t, err)

	// Один элемент даёт кандидатов сразу по нескольким правилам.
	assert.Contains(t, res.XPath, `//input[@data-testid='search']`)
	assert.Contains(t, res.XPath, `//input[@id='q']`)
	assert.Contains(t, res.XPath, `//input[@name='q']`)
	assert.Contains(t, res.XPath, `//*[@id='q']`)
	assert.Contains(t, res.CSS, `input#q`)
}
