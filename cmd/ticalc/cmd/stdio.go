package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/go-ticore/internal/program"
)

// stdIO is a minimal console-backed implementation of the §6 I/O
// collaborator, wired into `ticalc run --program` so a program's Disp/
// Output/Input/Pause statements have somewhere to go when run outside an
// embedding application.
type stdIO struct {
	reader *bufio.Reader
}

func newStdIO() *stdIO {
	return &stdIO{reader: bufio.NewReader(os.Stdin)}
}

var _ program.IO = (*stdIO)(nil)

func (s *stdIO) Display(text string) { fmt.Println(text) }

func (s *stdIO) Output(row, col int, text string) {
	fmt.Printf("[%d,%d] %s\n", row, col, text)
}

func (s *stdIO) Input(prompt string) (string, error) {
	if prompt != "" {
		fmt.Print(prompt + " ")
	}
	line, err := s.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return trimNewline(line), nil
}

func (s *stdIO) Pause(text string) error {
	if text != "" {
		fmt.Println(text)
	}
	fmt.Print("Press Enter to continue...")
	_, err := s.reader.ReadString('\n')
	return err
}

func (s *stdIO) GetKey() (int, error) { return 0, nil }

func (s *stdIO) ClearHome() {}

func (s *stdIO) ShowMenu(title string, items []program.MenuItem) (string, error) {
	fmt.Println(title)
	for i, it := range items {
		fmt.Printf("%d: %s\n", i+1, it.Label.String())
	}
	line, err := s.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	var idx int
	if _, err := fmt.Sscanf(trimNewline(line), "%d", &idx); err == nil && idx >= 1 && idx <= len(items) {
		return items[idx-1].Target, nil
	}
	return "", nil
}

func (s *stdIO) DrawLine(x1, y1, x2, y2 float64) {
	fmt.Printf("line (%g,%g)-(%g,%g)\n", x1, y1, x2, y2)
}

func (s *stdIO) DrawCircle(x, y, r float64) {
	fmt.Printf("circle (%g,%g) r=%g\n", x, y, r)
}

func (s *stdIO) DrawText(row, col int, text string) {
	fmt.Printf("text [%d,%d] %s\n", row, col, text)
}

func (s *stdIO) PlotPoint(x, y float64, on bool) {
	fmt.Printf("point (%g,%g) on=%v\n", x, y, on)
}

func (s *stdIO) ClearDraw() {}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
