package chat

import (
	"slices"
	"strings"
)

var imageVerbs = []string{
	"skicka", "visa", "generera", "skapa", "ta", "rita", "gör",
	"send", "show", "generate", "create", "take", "draw", "make",
}

// imageNouns lists every accepted inflection; words match exactly.
var imageNouns = []string{
	"bild", "bilden", "bilder", "bilderna",
	"foto", "fotot", "foton", "fotona",
	"selfie", "selfien", "selfies",
	"picture", "pictures", "pic", "pics",
	"photo", "photos", "image", "images",
}

var imagePhrases = []string{
	"hur ser du ut",
	"får jag se dig",
	"kan jag se dig",
	"what do you look like",
	"let me see you",
	"can i see you",
	"show yourself",
	"show me yourself",
}

// IsAskingForImage reports whether text asks the companion for a picture.
func IsAskingForImage(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return false
	}
	for _, phrase := range imagePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r == 'å' || r == 'ä' || r == 'ö')
	})
	hasVerb, hasNoun := false, false
	for _, w := range words {
		hasVerb = hasVerb || slices.Contains(imageVerbs, w)
		hasNoun = hasNoun || slices.Contains(imageNouns, w)
	}
	return hasVerb && hasNoun
}
