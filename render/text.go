package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Text writes the card as a block of terminal output
func Text(w io.Writer, card Card) error {
	// a Caser keeps state between calls and is not safe to share
	titleCase := cases.Title(language.English)
	header := fmt.Sprintf("Weather for %s:", card.Title)
	lines := []string{
		header,
		strings.Repeat("-", utf8.RuneCountInString(header)),
		fmt.Sprintf("Conditions:  %s (%s)", titleCase.String(card.Description), card.Category),
		fmt.Sprintf("Temperature: %s", card.Temperature),
		fmt.Sprintf("Feels Like:  %s", card.FeelsLike),
		fmt.Sprintf("Humidity:    %s", card.Humidity),
		fmt.Sprintf("Wind Speed:  %s", card.Wind),
	}
	if len(card.Forecast) > 0 {
		days := make([]string, 0, len(card.Forecast))
		for _, day := range card.Forecast {
			days = append(days, fmt.Sprintf("%s %s", day.Weekday, day.Temperature))
		}
		lines = append(lines, fmt.Sprintf("Forecast:    %s", strings.Join(days, " | ")))
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
