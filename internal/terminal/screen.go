package terminal

import "io"

// Screen control sequences.
const (
	ClearScreen = "\x1b[2J"
	CursorHome  = "\x1b[H"
	ShowCursor  = "\x1b[?25h"
)

// Screen redraws a full-screen report on a terminal.
type Screen struct {
	Out io.Writer
}

// NewScreen creates a Screen writing to out.
func NewScreen(out io.Writer) *Screen {
	return &Screen{Out: out}
}

// Clear erases the screen and moves the cursor to the top-left corner.
func (s *Screen) Clear() error {
	_, err := io.WriteString(s.Out, ClearScreen+CursorHome)
	return err
}

// Show clears the screen and prints content followed by a newline.
func (s *Screen) Show(content string) error {
	_, err := io.WriteString(s.Out, ClearScreen+CursorHome+content+"\n")
	return err
}
