package selector

import (
	"fmt"
	"strings"
)

// xpathLiteral оборачивает значение в XPath-литерал.
// Если есть и одинарные, и двойные кавычки — собирает concat() из сегментов.
func xpathLiteral(value string) string {
	if !strings.Contains(value, "'") {
		return "'" + value + "'"
	}
	if !strings.Contains(value, `"`) {
		return `"` + value + `"`
	}

	parts := strings.Split(value, "'")
	var b strings.Builder
	b.WriteString("concat(")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(`, "'", `)
		}
		b.WriteString("'" + part + "'")
	}
	b.WriteString(")")
	return b.String()
}

// cssAttrValue экранирует значение атрибута для CSS-селектора и оборачивает в кавычки.
func cssAttrValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return `"` + value + `"`
}

// cssIdent экранирует произвольную строку как CSS-идентификатор (как CSS.escape).
func cssIdent(value string) string {
	var b strings.Builder
	pos := 0
	for _, r := range value {
		switch {
		case r == 0:
			b.WriteRune('�')
		case pos == 0 && r >= '0' && r <= '9':
			fmt.Fprintf(&b, `\3%c `, r)
		case pos == 1 && r >= '0' && r <= '9' && strings.HasPrefix(value, "-"):
			fmt.Fprintf(&b, `\3%c `, r)
		case pos == 0 && r == '-' && len(value) == 1:
			b.WriteString(`\-`)
		case r >= 0x80 || r == '-' || r == '_' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteRune(r)
		default:
			b.WriteRune('\\')
			b.WriteRune(r)
		}
		pos++
	}
	return b.String()
}
