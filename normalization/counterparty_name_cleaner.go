package normalization

import (
	"regexp"
	"strings"
)

// defaultLegalForms известные ОПФ в порядке проверки. Применяется первая найденная по списку.
var defaultLegalForms = [...]string{
	"ТОО",
	"ИП",
	"ПК",
	"АО",
	"ООО",
	"ЧП",
	"Частный нотариус",
	"ТДО",
	"КТ",
}

// DefaultLegalForms возвращает копию списка ОПФ по умолчанию
func DefaultLegalForms() []string {
	forms := make([]string, len(defaultLegalForms))
	copy(forms, defaultLegalForms[:])
	return forms
}

type legalFormPattern struct {
	form  string
	regex *regexp.Regexp
}

// LegalFormNormalizer переносит ОПФ из названия контрагента в его начало
type LegalFormNormalizer struct {
	patterns []legalFormPattern
}

// NewLegalFormNormalizer создает нормализатор для списка ОПФ.
// Без аргументов используется DefaultLegalForms.
func NewLegalFormNormalizer(forms ...string) *LegalFormNormalizer {
	if len(forms) == 0 {
		forms = defaultLegalForms[:]
	}

	n := &LegalFormNormalizer{patterns: make([]legalFormPattern, 0, len(forms))}
	for _, form := range forms {
		if form == "" {
			continue
		}
		// ОПФ должна стоять отдельным словом, отделенным пробелами
		n.patterns = append(n.patterns, legalFormPattern{
			form:  form,
			regex: regexp.MustCompile(`(?:^| )` + regexp.QuoteMeta(form) + `(?: |$)`),
		})
	}
	return n
}

// Normalize возвращает название с ОПФ в начале: "Ромашка ТОО" -> "ТОО Ромашка".
// Названия без известной ОПФ возвращаются без изменений.
func (n *LegalFormNormalizer) Normalize(name string) string {
	for _, p := range n.patterns {
		loc := p.regex.FindStringIndex(name)
		if loc == nil {
			continue
		}

		rest := removeLegalForm(name, loc, p.form)
		if rest == "" {
			return p.form
		}
		return p.form + " " + rest
	}
	return name
}

// FindLegalForm возвращает первую по списку ОПФ, найденную в названии
func (n *LegalFormNormalizer) FindLegalForm(name string) (string, bool) {
	for _, p := range n.patterns {
		if p.regex.MatchString(name) {
			return p.form, true
		}
	}
	return "", false
}

// removeLegalForm вырезает ОПФ вместе с пробелом перед ней,
// а если ОПФ стоит в начале строки, то вместе с пробелом после нее
func removeLegalForm(name string, loc []int, form string) string {
	start := loc[0]
	if strings.HasPrefix(name[start:loc[1]], " ") {
		start++
	}
	end := start + len(form)

	switch {
	case start > 0:
		return name[:start-1] + name[end:]
	case end < len(name):
		return name[end+1:]
	default:
		return ""
	}
}
