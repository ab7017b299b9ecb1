package count

// Mood is the character state shown for a day's count. Fewer counts is
// better: the counter tracks a habit the user wants to break.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodWorried Mood = "worried"
	MoodSad     Mood = "sad"
	MoodVerySad Mood = "very_sad"
)

// MoodFor maps a day's count to a Mood. Negative counts read as zero.
func MoodFor(n int) Mood {
	switch {
	case n <= 0:
		return MoodHappy
	case n <= 3:
		return MoodNeutral
	case n <= 7:
		return MoodWorried
	case n <= 12:
		return MoodSad
	default:
		return MoodVerySad
	}
}

// Message returns a short line for the mood.
func (m Mood) Message() string {
	switch m {
	case MoodHappy:
		return "Doing great today!"
	case MoodNeutral:
		return "Not bad, I guess?"
	case MoodWorried:
		return "Getting a little worried..."
	case MoodSad:
		return "Are you okay?"
	case MoodVerySad:
		return "I can't stop worrying..."
	default:
		return ""
	}
}
