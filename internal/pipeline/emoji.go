package pipeline

import "strings"

// emojiBlocks: emoticons, symbols & pictographs, transport & map symbols,
// regional flag indicators.
var emojiBlocks = [][2]rune{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
}

func stripEmoji(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if isEmoji(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isEmoji(r rune) bool {
	for _, b := range emojiBlocks {
		if r >= b[0] && r <= b[1] {
			return true
		}
	}
	return false
}
