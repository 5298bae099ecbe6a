package engine

// Capture is an Engine that records every play in memory. It backs scene
// tests and the render command's dry-run mode.
type Capture struct {
	Plays  []CapturedPlay
	Closed bool
}

// CapturedPlay is one recorded Play call.
type CapturedPlay struct {
	Frame   Frame
	RunTime float64
}

// NewCapture returns an empty capture engine.
func NewCapture() *Capture { return &Capture{} }

func (c *Capture) Play(f Frame, runTime float64) error {
	c.Plays = append(c.Plays, CapturedPlay{Frame: f, RunTime: runTime})
	return nil
}

func (c *Capture) Close() error {
	c.Closed = true
	return nil
}
