package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"latin with punctuation", "Vasil Levski House-Museum", "vasil-levski-house-museum"},
		{"cyrillic", "Христо Ботев", "hristo-botev"},
		{"cyrillic with digraphs", "Къща на Щастието", "kashta-na-shtastieto"},
		{"multiple separators", "Ivan   Vazov -- House", "ivan-vazov-house"},
		{"leading and trailing junk", "  (Sofia)  ", "sofia"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestTransliterateCyrillic(t *testing.T) {
	assert.Equal(t, "Vasil Levski", TransliterateCyrillic("Васил Левски"))
	assert.Equal(t, "Zheravna", TransliterateCyrillic("Жеравна"))
	// Non-Cyrillic runes pass through untouched.
	assert.Equal(t, "Café 42", TransliterateCyrillic("Café 42"))
}
