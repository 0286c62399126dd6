package diary

// Type is the closed set of entry kinds.
type Type string

const (
	TypeDaily     Type = "daily"
	TypeEmotion   Type = "emotion"
	TypeGratitude Type = "gratitude"
	TypePeriod    Type = "period"
	TypeSchedule  Type = "schedule"
)

type typeInfo struct {
	label  string
	emoji  string
	prompt string
}

var typeTable = map[Type]typeInfo{
	TypeDaily:     {"Daily diary", "📝", "What was memorable today?"},
	TypeEmotion:   {"Emotion diary", "😊", "How are you feeling right now?"},
	TypeGratitude: {"Gratitude diary", "🙏", "Three things you were grateful for today"},
	TypePeriod:    {"Period diary", "🌸", "How is your condition today?"},
	TypeSchedule:  {"Schedule", "📅", "What do you need to do today?"},
}

// AllTypes in display order.
var AllTypes = []Type{TypeDaily, TypeEmotion, TypeGratitude, TypePeriod, TypeSchedule}

// ParseType accepts a type name; the second result reports whether it is known.
func ParseType(s string) (Type, bool) {
	t := Type(s)
	return t, t.Valid()
}

func (t Type) Valid() bool {
	_, ok := typeTable[t]
	return ok
}

func (t Type) Label() string {
	if i, ok := typeTable[t]; ok {
		return i.label
	}
	return string(t)
}

func (t Type) Emoji() string {
	if i, ok := typeTable[t]; ok {
		return i.emoji
	}
	return "•"
}

// Prompt is the writing hint shown on the write screen.
func (t Type) Prompt() string {
	return typeTable[t].prompt
}

// TypesFor returns the types offered to a user. The period diary is only
// offered to female profiles.
func TypesFor(gender string) []Type {
	out := make([]Type, 0, len(AllTypes))
	for _, t := range AllTypes {
		if t == TypePeriod && gender != "female" {
			continue
		}
		out = append(out, t)
	}
	return out
}
