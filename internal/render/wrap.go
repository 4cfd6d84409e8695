package render

import "strings"

// WrapText greedily wraps text to maxWidth using the supplied width
// metric. A single word wider than maxWidth is hard-broken at character
// boundaries so no line ever exceeds the budget.
func WrapText(text string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	current := ""

	for _, word := range strings.Fields(text) {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if measure(test) <= maxWidth {
			current = test
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		if measure(word) > maxWidth {
			part := ""
			for _, ch := range word {
				t := part + string(ch)
				if measure(t) > maxWidth {
					if part != "" {
						lines = append(lines, part)
					}
					part = string(ch)
				} else {
					part = t
				}
			}
			if part != "" {
				lines = append(lines, part)
			}
			current = ""
		} else {
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
