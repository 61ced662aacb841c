package program

// IO is the §6 "I/O collaborator (interpreter-facing)" capability set.
// Every operation may suspend; the interpreter calls these synchronously
// from the caller's perspective (§4.8: "suspend on calls to an injected
// I/O collaborator"), since the core itself has no goroutine/channel
// concurrency of its own (§5).
type IO interface {
	Display(text string)
	Output(row, col int, text string)
	Input(prompt string) (string, error)
	Pause(text string) error
	GetKey() (int, error)
	ClearHome()
	ShowMenu(title string, items []MenuItem) (string, error)
	DrawLine(x1, y1, x2, y2 float64)
	DrawCircle(x, y, r float64)
	DrawText(row, col int, text string)
	PlotPoint(x, y float64, on bool)
	ClearDraw()
}

// NoopIO is the default collaborator for an interpreter run headless: every
// operation is a no-op returning the defaults named in §6 ("0", 0, empty
// target").
type NoopIO struct{}

func (NoopIO) Display(string)             {}
func (NoopIO) Output(int, int, string)    {}
func (NoopIO) Input(string) (string, error) { return "0", nil }
func (NoopIO) Pause(string) error         { return nil }
func (NoopIO) GetKey() (int, error)       { return 0, nil }
func (NoopIO) ClearHome()                 {}
func (NoopIO) ShowMenu(string, []MenuItem) (string, error) { return "", nil }
func (NoopIO) DrawLine(float64, float64, float64, float64) {}
func (NoopIO) DrawCircle(float64, float64, float64)        {}
func (NoopIO) DrawText(int, int, string)                   {}
func (NoopIO) PlotPoint(float64, float64, bool)            {}
func (NoopIO) ClearDraw()                                  {}

var _ IO = NoopIO{}
