package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// GenerateSlug derives a URL-safe identifier from a display name.
// "Vasil Levski House-Museum" → "vasil-levski-house-museum"
// "Христо Ботев" → "hristo-botev"
func GenerateSlug(input string) string {
	lower := strings.ToLower(TransliterateCyrillic(input))
	hyphenated := slugInvalidChars.ReplaceAllString(lower, "-")
	return strings.Trim(hyphenated, "-")
}

// TransliterateCyrillic maps Bulgarian Cyrillic to Latin using the official
// streamlined transliteration system. Non-Cyrillic runes pass through.
func TransliterateCyrillic(input string) string {
	mappings := map[rune]string{
		'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
		'е': "e", 'ж': "zh", 'з': "z", 'и': "i", 'й': "y",
		'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o",
		'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
		'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh",
		'щ': "sht", 'ъ': "a", 'ь': "y", 'ю': "yu", 'я': "ya",

		'А': "A", 'Б': "B", 'В': "V", 'Г': "G", 'Д': "D",
		'Е': "E", 'Ж': "Zh", 'З': "Z", 'И': "I", 'Й': "Y",
		'К': "K", 'Л': "L", 'М': "M", 'Н': "N", 'О': "O",
		'П': "P", 'Р': "R", 'С': "S", 'Т': "T", 'У': "U",
		'Ф': "F", 'Х': "H", 'Ц': "Ts", 'Ч': "Ch", 'Ш': "Sh",
		'Щ': "Sht", 'Ъ': "A", 'Ь': "Y", 'Ю': "Yu", 'Я': "Ya",
	}

	var b strings.Builder
	b.Grow(len(input))

	for _, r := range input {
		if replacement, ok := mappings[r]; ok {
			b.WriteString(replacement)
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}
