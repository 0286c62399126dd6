package diary

// Emotion is a mood tag offered by the emotion selector.
type Emotion struct {
	Emoji string
	Name  string
}

var Emotions = []Emotion{
	{"😊", "happy"},
	{"😔", "sad"},
	{"😡", "angry"},
	{"😌", "calm"},
	{"🥰", "loved"},
	{"😰", "anxious"},
	{"😴", "tired"},
	{"🤔", "thoughtful"},
}

// DefaultEmotion is used when the writer picks none.
const DefaultEmotion = "😊"

// EmotionName returns the name for an emoji, or the emoji itself when unknown.
func EmotionName(emoji string) string {
	for _, e := range Emotions {
		if e.Emoji == emoji {
			return e.Name
		}
	}
	return emoji
}

// LookupEmotion accepts either an emoji or a name.
func LookupEmotion(s string) (Emotion, bool) {
	for _, e := range Emotions {
		if e.Emoji == s || e.Name == s {
			return e, true
		}
	}
	return Emotion{}, false
}
