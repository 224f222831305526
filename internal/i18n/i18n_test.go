package i18n

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreeting(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	tests := []struct {
		locale string
		want   string
	}{
		{"fr", "Bonjour!"},
		{"FR", "Bonjour!"},
		{"de", "Guten Tag!"},
		{"en", "Hello!"},
		{"es", "Hello!"},
		{"fr-CA", "Hello!"},
		{"", "Hello!"},
		{"not a locale", "Hello!"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Greeting(tt.locale))
		})
	}
}

func TestLoadRequiresEnglish(t *testing.T) {
	_, err := Load([]byte("fr:\n  hello: Bonjour\n"))
	assert.Error(t, err)
}

func TestLoadCanonicalisesCodes(t *testing.T) {
	table, err := Load([]byte("EN:\n  hello: Hi\npt_br:\n  hello: Olá\n"))
	require.NoError(t, err)

	locales := table.Locales()
	sort.Strings(locales)
	if diff := cmp.Diff([]string{"en", "pt-BR"}, locales); diff != "" {
		t.Errorf("locales mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Olá", table.Lookup("pt-BR").Hello)
}
