package audio

// SoundType represents different sound effects
type SoundType int

const (
	SoundChime SoundType = iota // Merge of two equal bodies
	SoundThud                   // Hard floor impact
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundChime:
		return "chime"
	case SoundThud:
		return "thud"
	default:
		return "unknown"
	}
}
