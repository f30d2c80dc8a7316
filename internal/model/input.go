package model

// Button is the pointer button of a click
type Button string

const (
	ButtonLeft  Button = "left"  // Uncover
	ButtonRight Button = "right" // Toggle mark
)

// ParseButton validates a button name
func ParseButton(s string) (Button, error) {
	switch Button(s) {
	case ButtonLeft, ButtonRight:
		return Button(s), nil
	default:
		return "", ErrInvalidButton
	}
}
