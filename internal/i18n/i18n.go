// Package i18n holds the phrase table shown by the admin extension.
package i18n

import (
	_ "embed"
	"fmt"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is used whenever a locale has no entry
const DefaultLocale = "en"

//go:embed translations.yaml
var defaultTranslations []byte

// Strings is the phrase set of one locale
type Strings struct {
	Hello string `yaml:"hello"`
}

// Table maps locale codes to phrase sets. It is never modified after Load.
type Table struct {
	entries map[string]Strings
}

// Default loads the embedded translations
func Default() (*Table, error) {
	return Load(defaultTranslations)
}

// Load parses a YAML document of the form `<locale>: {hello: ...}`
func Load(data []byte) (*Table, error) {
	raw := map[string]Strings{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse translations: %w", err)
	}
	entries := make(map[string]Strings, len(raw))
	for code, s := range raw {
		entries[canonical(code)] = s
	}
	if _, ok := entries[DefaultLocale]; !ok {
		return nil, fmt.Errorf("translations must contain %q", DefaultLocale)
	}
	return &Table{entries: entries}, nil
}

// Lookup returns the phrases for locale, or the English phrases when the locale has no entry
func (t *Table) Lookup(locale string) Strings {
	if s, ok := t.entries[canonical(locale)]; ok {
		return s
	}
	return t.entries[DefaultLocale]
}

// Greeting is the title line each mode renders, e.g. "Bonjour!"
func (t *Table) Greeting(locale string) string {
	return t.Lookup(locale).Hello + "!"
}

// Locales lists the codes present in the table
func (t *Table) Locales() []string {
	out := make([]string, 0, len(t.entries))
	for code := range t.entries {
		out = append(out, code)
	}
	return out
}

// canonical normalises case and separators ("FR" -> "fr", "pt_br" -> "pt-BR").
// Unparseable input is returned as-is and simply misses the table.
func canonical(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	return tag.String()
}
