package domain

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const placeholderSVG = `<svg xmlns='http://www.w3.org/2000/svg' width='220' height='330'>
    <rect width='100%%' height='100%%' fill='#333'/>
    <text x='50%%' y='50%%' dominant-baseline='middle' text-anchor='middle'
      font-family='Arial' font-size='48' fill='#fff'>%s</text>
  </svg>`

// PlaceholderPoster builds an SVG data URI showing the initials of the first
// two words of title, or "N/A" when there is no title.
func PlaceholderPoster(title string) string {
	svg := fmt.Sprintf(placeholderSVG, Initials(title))
	return "data:image/svg+xml;utf8," + strings.ReplaceAll(url.QueryEscape(svg), "+", "%20")
}

func Initials(title string) string {
	if title == "" {
		return NoPoster
	}

	words := strings.Split(title, " ")
	if len(words) > 2 {
		words = words[:2]
	}

	var b strings.Builder
	for _, w := range words {
		if r, _ := utf8.DecodeRuneInString(w); r != utf8.RuneError {
			b.WriteRune(r)
		}
	}
	return b.String()
}
