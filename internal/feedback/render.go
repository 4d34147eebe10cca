package feedback

import (
	"strings"

	"github.com/mitchellh/colorstring"
)

// Emoji renders the feedback as coloured squares.
func (f Feedback) Emoji() string {
	replacer := strings.NewReplacer("b", "⬜", "y", "🟨", "g", "🟩")
	return replacer.Replace(f.String())
}

var tiles = [...]string{
	Black:  "[_dark_gray_][white]",
	Yellow: "[_yellow_][black]",
	Green:  "[_green_][black]",
}

// ColoredWord displays a word with coloured backgrounds based on the
// feedback it received.
func (f Feedback) ColoredWord(word string) string {
	if len(word) != Length {
		return word
	}

	var result strings.Builder
	for i := 0; i < Length; i++ {
		result.WriteString(tiles[f[i]])
		result.WriteByte(word[i])
		result.WriteString(" [reset]")
	}
	return colorstring.Color(result.String())
}
