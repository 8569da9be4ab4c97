package selector

import (
	"fmt"

	"golang.org/x/net/html"
)

// absolutePath строит абсолютный позиционный XPath до элемента.
// Обрывается на первом предке с id (//*[@id='...']) или на каркасе
// документа (/html, /html/body). Неожиданная форма дерева даёт пустую
// строку — элемент просто не получает запасного кандидата.
func absolutePath(el *html.Node) string {
	if el == nil || el.Type != html.ElementNode {
		return ""
	}

	switch el.Data {
	case "html":
		return "/html"
	case "body":
		return "/html/body"
	}

	if id := attrVal(el, "id"); id != "" {
		return "//*[@id='" + id + "']"
	}

	index := 1
	for sib := el.PrevSibling; sib != nil; sib = sib.PrevSibling {
		if sib.Type == html.ElementNode && sib.Data == el.Data {
			index++
		}
	}

	parent := absolutePath(el.Parent)
	if parent == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s[%d]", parent, el.Data, index)
}
