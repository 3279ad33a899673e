package nutrition

import (
	"regexp"
	"strings"
	"unicode"
)

// Character classes follow Unicode semantics: models answer with no-break
// spaces, non-Latin unit words and non-ASCII digits.
const (
	uSpace = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`
	uWord  = `[\p{L}\p{N}_]`
	uDigit = `\p{Nd}`
)

// reTemplate matches the five labelled lines in order. The first label accepts
// "Food", "Dish" and "Fish" because models sometimes misread the word.
var reTemplate = regexp.MustCompile(`(?is)` +
	`(?:Food|Dish|Fish) Image Name:` + uSpace + `*(.*?)` + uSpace + `*\n` +
	uSpace + `*Weight \(grams\):` + uSpace + `*(` + uDigit + `+-?` + uDigit + `*)` + uSpace + `*\n` +
	uSpace + `*Calories:` + uSpace + `*([` + uDigit + `-]+(?:` + uSpace + `*per serving|` + uSpace + `*` + uWord + `+)?)` + uSpace + `*\n` +
	uSpace + `*Protein:` + uSpace + `*(` + uDigit + `+\.*` + uDigit + `*)` + uSpace + `*\n` +
	uSpace + `*Fat:` + uSpace + `*(` + uDigit + `+\.*` + uDigit + `*)`)

const (
	perServing = "per serving"
	perPortion = " per portion"
)

// Parse extracts a Record from free model text. Anything short of a full
// five-field match is ErrExtraction; there are no partial records.
func Parse(text string) (Record, error) {
	m := reTemplate.FindStringSubmatch(text)
	if m == nil {
		return Record{}, ErrExtraction
	}

	name := strings.ToLower(strings.TrimSpace(m[1]))
	// plain deletion, the leftover space is kept
	name = strings.ReplaceAll(name, "fillets", "")

	calories := strings.TrimSpace(m[3])
	if !strings.Contains(calories, perServing) {
		calories += perPortion
	}

	return Record{
		FoodName: TitleCase(name),
		Weight:   strings.TrimSpace(m[2]),
		Calories: calories,
		Protein:  strings.TrimSpace(m[4]),
		Fat:      strings.TrimSpace(m[5]),
	}, nil
}

// TitleCase upper-cases the first cased letter of every word and lower-cases
// the rest. A word starts after any rune that is not a cased letter, so
// "o'neil" becomes "O'Neil" and "3rd" becomes "3Rd".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				r = unicode.ToLower(r)
			}
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				r = unicode.ToTitle(r)
			}
			prevCased = true
		default:
			prevCased = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
