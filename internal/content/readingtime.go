package content

import (
	"fmt"
	"math"
	"time"
	"unicode"
)

// DefaultWordsPerMinute is the reading speed used when none is configured.
const DefaultWordsPerMinute = 300

// ReadingTime estimates how long a body takes to read.
type ReadingTime struct {
	Text    string        `json:"text"`
	Minutes float64       `json:"minutes"`
	Time    time.Duration `json:"time"`
	Words   int           `json:"words"`
}

// EstimateReadingTime counts the words of text and converts them at wpm
// words per minute. A non-positive wpm uses DefaultWordsPerMinute.
func EstimateReadingTime(text string, wpm int) ReadingTime {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}

	words := CountWords(text)
	minutes := float64(words) / float64(wpm)
	// Round to hundredths first so 2.0000001 does not read as 3 minutes.
	shown := math.Ceil(math.Round(minutes*100) / 100)

	return ReadingTime{
		Text:    fmt.Sprintf("%d min read", int(shown)),
		Minutes: minutes,
		Time:    time.Duration(minutes * float64(time.Minute)),
		Words:   words,
	}
}

// CountWords counts runs of letters, digits and joining punctuation as
// words. Each CJK ideograph, kana or hangul syllable counts as a word.
func CountWords(text string) int {
	words := 0
	inWord := false
	for _, r := range text {
		switch {
		case isCJK(r):
			words++
			inWord = false
		case unicode.IsLetter(r) || unicode.IsDigit(r) || (inWord && isJoiner(r)):
			if !inWord {
				words++
				inWord = true
			}
		default:
			inWord = false
		}
	}
	return words
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

func isJoiner(r rune) bool {
	return r == '\'' || r == '’' || r == '-' || r == '_'
}
