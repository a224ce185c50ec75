package shape

// Emoji classification for grapheme clusters. A cluster flagged as emoji
// erases atomically on backspace, while non-emoji clusters give up their
// combining marks one codepoint at a time.

// IsEmojiCluster reports whether a grapheme cluster renders as emoji:
// a default-emoji-presentation character, a text-presentation character
// forced to emoji by U+FE0F, a regional indicator flag pair, or a keycap
// or ZWJ sequence.
func IsEmojiCluster(cluster []rune) bool {
	if len(cluster) == 0 {
		return false
	}
	first := cluster[0]

	if isEmojiPresentation(first) {
		return true
	}
	if isRegionalIndicator(first) {
		return true
	}
	for _, r := range cluster[1:] {
		// VS-16 forces emoji presentation; ZWJ and the combining keycap
		// only occur inside emoji sequences.
		if r == 0xFE0F || r == 0x200D || r == 0x20E3 {
			return true
		}
	}
	return false
}

// isEmojiPresentation reports Emoji_Presentation=Yes characters: those
// that display as emoji without a variation selector.
func isEmojiPresentation(r rune) bool {
	switch {
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F300 && r <= 0x1F5FF: // misc symbols and pictographs
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport and map symbols
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // supplemental symbols
		return true
	case r >= 0x1FA00 && r <= 0x1FAFF: // symbols extended-A/B
		return true
	case r >= 0x1F3FB && r <= 0x1F3FF: // skin tone modifiers
		return true
	case r >= 0x2614 && r <= 0x2615: // umbrella, hot beverage
		return true
	case r >= 0x26F2 && r <= 0x26F5, r >= 0x26FA && r <= 0x26FD:
		return true
	case r == 0x2693 || r == 0x26A1 || r == 0x26CE:
		return true
	default:
		return false
	}
}

// isRegionalIndicator reports the regional indicator symbols A-Z; a pair
// of them forms a flag emoji.
func isRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}
