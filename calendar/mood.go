package calendar

// Moods is the fixed set the entry form offers.
var Moods = []string{"😊", "😌", "😔", "😤", "💪"}

// moodGradients maps each mood emoji to its decorative background.
var moodGradients = map[string]string{
	"😊": "linear-gradient(135deg, #ffecd2, #fcb69f)",
	"😌": "linear-gradient(135deg, #a1c4fd, #c2e9fb)",
	"😔": "linear-gradient(135deg, #d4fc79, #96e6a1)",
	"😤": "linear-gradient(135deg, #f5576c, #f093fb)",
	"💪": "linear-gradient(135deg, #43e97b, #38f9d7)",
}

// DefaultGradient is used for absent or unmapped moods.
const DefaultGradient = "linear-gradient(135deg, #dbe6f6, #c5796d)"

// MoodGradient returns the deterministic gradient for a mood.
func MoodGradient(mood string) string {
	if g, ok := moodGradients[mood]; ok {
		return g
	}
	return DefaultGradient
}

// ValidMood reports whether the mood is one of the fixed enumeration.
func ValidMood(mood string) bool {
	_, ok := moodGradients[mood]
	return ok
}
