// Package selector генерирует кандидатов локаторов (XPath, CSS, test-id)
// по HTML-фрагменту. Правила применяются каскадом в фиксированном порядке
// приоритета, каждое правило независимо добавляет кандидатов.
package selector

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var (
	// ErrEmptyInput возвращается для пустого или состоящего из пробелов ввода.
	ErrEmptyInput = errors.New("пустой ввод: нет HTML для анализа")
	// ErrUnparsable возвращается, если парсер не смог разобрать разметку.
	ErrUnparsable = errors.New("не удалось разобрать HTML")
)

// NoTestIDSentinel подставляется в категорию test-id, если ни один элемент
// не содержит test-id атрибутов.
const NoTestIDSentinel = "No test ID attributes found (data-testid, data-cy, data-qa, data-test)"

// maxElements ограничивает число просматриваемых элементов.
const maxElements = 100

// maxTextLength ограничивает длину текста для текстовых XPath (правило 4).
const maxTextLength = 50

var testIDAttrs = []string{"data-testid", "data-cy", "data-qa", "data-test"}

var stableAttrs = []string{"name", "placeholder", "type", "role", "aria-label", "alt", "href", "src"}

// skipTags — каркасные теги документа, для которых селекторы не генерируются.
var skipTags = map[string]bool{
	"html":   true,
	"head":   true,
	"body":   true,
	"script": true,
	"style":  true,
	"meta":   true,
	"title":  true,
}

// textTags — теги, для которых строятся текстовые XPath.
var textTags = map[string]bool{
	"button": true,
	"a":      true,
	"div":    true,
	"span":   true,
	"h1":     true,
	"h2":     true,
	"h3":     true,
	"p":      true,
	"legend": true,
}

// formTags — теги полей форм, для которых ищется связанный label.
var formTags = map[string]bool{
	"input":    true,
	"textarea": true,
	"select":   true,
}

// fallbackTags — теги, для которых строится абсолютный позиционный XPath.
var fallbackTags = map[string]bool{
	"input":    true,
	"button":   true,
	"a":        true,
	"select":   true,
	"textarea": true,
}

// ResultSet содержит три упорядоченных списка кандидатов без дубликатов.
type ResultSet struct {
	XPath  []string `json:"xpath"`
	CSS    []string `json:"css"`
	TestID []string `json:"testId"`
}

// bucket — append-only список с дедупликацией по первому вхождению.
type bucket struct {
	items []string
	seen  map[string]bool
}

func newBucket() *bucket {
	return &bucket{seen: make(map[string]bool)}
}

func (b *bucket) add(s string) {
	if b.seen[s] {
		return
	}
	b.seen[s] = true
	b.items = append(b.items, s)
}

// Synthesize разбирает разметку и возвращает кандидатов локаторов по всем
// правилам каскада. Повторный вызов с той же разметкой даёт идентичный результат.
func Synthesize(markup string) (*ResultSet, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, ErrEmptyInput
	}

	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}

	elements := collectElements(doc)
	labelFor := indexLabels(elements)

	xp := newBucket()
	css := newBucket()
	testID := newBucket()

	inspected := 0
	for _, el := range elements {
		if inspected >= maxElements {
			break
		}
		inspected++

		if skipTags[el.Data] {
			continue
		}
		applyRules(el, labelFor, xp, css, testID)
	}

	if len(testID.items) == 0 {
		testID.items = []string{NoTestIDSentinel}
	}

	return &ResultSet{
		XPath:  xp.items,
		CSS:    css.items,
		TestID: testID.items,
	}, nil
}

// applyRules применяет каскад правил к одному элементу. Правила не
// исключают друг друга: элемент может дать кандидатов в несколько категорий.
func applyRules(el *html.Node, labelFor map[string]string, xp, css, testID *bucket) {
	tag := el.Data

	// Правило 1: test-id атрибуты — самый надёжный уровень.
	for _, attr := range testIDAttrs {
		v := attrVal(el, attr)
		if v == "" {
			continue
		}
		xp.add(fmt.Sprintf("//%s[@%s=%s]", tag, attr, xpathLiteral(v)))
		sel := fmt.Sprintf("%s[%s=%s]", tag, attr, cssAttrValue(v))
		css.add(sel)
		testID.add(sel)
	}

	// Правило 2: идентификатор.
	id := attrVal(el, "id")
	if id != "" {
		xp.add(fmt.Sprintf("//%s[@id=%s]", tag, xpathLiteral(id)))
		css.add(tag + "#" + cssIdent(id))
	}

	// Правило 3: связь поля формы с label.
	if formTags[tag] {
		if id != "" {
			if text := labelFor[id]; text != "" {
				xp.add(fmt.Sprintf("//%s[@id=//label[normalize-space(text())=%s]/@for]", tag, xpathLiteral(text)))
			}
		}
		if text := enclosingLabelText(el); text != "" {
			xp.add(fmt.Sprintf("//label[normalize-space(text())=%s]//%s", xpathLiteral(text), tag))
			css.add(fmt.Sprintf("label:has(%s)", tag))
		}
		if text := precedingLabelText(el); text != "" {
			xp.add(fmt.Sprintf("//label[normalize-space(text())=%s]/following-sibling::%s", xpathLiteral(text), tag))
		}
	}

	// Правило 4: текстовое содержимое листовых элементов.
	if textTags[tag] && isLeaf(el) {
		text := collapseSpace(textContent(el))
		if text != "" && utf8.RuneCountInString(text) < maxTextLength {
			lit := xpathLiteral(text)
			xp.add(fmt.Sprintf("//%s[normalize-space(text())=%s]", tag, lit))
			xp.add(fmt.Sprintf("//%s[contains(text(), %s)]", tag, lit))
		}
	}

	// Правило 5: стабильные атрибуты.
	for _, attr := range stableAttrs {
		v := attrVal(el, attr)
		if v == "" {
			continue
		}
		xp.add(fmt.Sprintf("//%s[@%s=%s]", tag, attr, xpathLiteral(v)))
		css.add(fmt.Sprintf("%s[%s=%s]", tag, attr, cssAttrValue(v)))
	}

	// Правило 6: абсолютный позиционный XPath как запасной вариант.
	if fallbackTags[tag] {
		if p := absolutePath(el); p != "" {
			xp.add(p)
		}
	}
}

// collectElements возвращает все элементы дерева в порядке документа (pre-order).
func collectElements(doc *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

// indexLabels строит индекс label[for] -> нормализованный текст label.
// При повторении for побеждает первый label в порядке документа.
func indexLabels(elements []*html.Node) map[string]string {
	index := make(map[string]string)
	for _, el := range elements {
		if el.Data != "label" {
			continue
		}
		forID := attrVal(el, "for")
		if forID == "" {
			continue
		}
		text := collapseSpace(textContent(el))
		if text == "" {
			continue
		}
		if _, ok := index[forID]; !ok {
			index[forID] = text
		}
	}
	return index
}

// enclosingLabelText возвращает текст ближайшего label-предка, если он есть.
func enclosingLabelText(el *html.Node) string {
	for p := el.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			break
		}
		if p.Data == "label" {
			return collapseSpace(textContent(p))
		}
	}
	return ""
}

// precedingLabelText возвращает текст label, стоящего непосредственно перед элементом.
func precedingLabelText(el *html.Node) string {
	for sib := el.PrevSibling; sib != nil; sib = sib.PrevSibling {
		if sib.Type != html.ElementNode {
			continue
		}
		if sib.Data == "label" {
			return collapseSpace(textContent(sib))
		}
		return ""
	}
	return ""
}

func attrVal(el *html.Node, key string) string {
	for _, a := range el.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// isLeaf сообщает, что у элемента нет дочерних элементов (текст допускается).
func isLeaf(el *html.Node) bool {
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return false
		}
	}
	return true
}

func textContent(el *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(el)
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
