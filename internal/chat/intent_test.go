package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAskingForImage(t *testing.T) {
	yes := []string{
		"Skicka en bild",
		"kan du visa ett foto på dig?",
		"Send me a pic",
		"show me a photo of you",
		"Hur ser du ut?",
		"Can I see you",
		"ta en selfie!",
		"skicka fler bilder",
		"make some pictures of us",
	}
	for _, text := range yes {
		assert.True(t, IsAskingForImage(text), text)
	}

	no := []string{
		"",
		"Hej, hur mår du?",
		"I like this picture frame",
		"visa mig vägen",
		"what are you doing",
		"ska vi ta en picknick?",
		"make your pick",
		"take me to the picnic",
		"visa mig fotografens namn",
	}
	for _, text := range no {
		assert.False(t, IsAskingForImage(text), text)
	}
}
