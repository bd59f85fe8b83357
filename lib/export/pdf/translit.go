package pdfexport

import "strings"

var translitMap = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e", 'ж': "zh",
	'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o",
	'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts",
	'ч': "ch", 'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu",
	'я': "ya",
}

// Translit транслитерация для встроенных шрифтов pdf без кириллицы
func Translit(s string) string {
	b := strings.Builder{}
	for _, r := range s {
		lower := []rune(strings.ToLower(string(r)))[0]
		latin, ok := translitMap[lower]
		if !ok {
			if r > 0xFF {
				b.WriteRune('?')
			} else {
				b.WriteRune(r)
			}
			continue
		}
		if lower != r && latin != "" {
			latin = strings.ToUpper(latin[:1]) + latin[1:]
		}
		b.WriteString(latin)
	}
	return b.String()
}
