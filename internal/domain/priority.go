package domain

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ParsePriority falls back to normal for anything but "high".
func ParsePriority(s string) Priority {
	if Priority(s) == PriorityHigh {
		return PriorityHigh
	}
	return PriorityNormal
}
