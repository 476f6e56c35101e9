package render

import "github.com/matzehuels/lewis/pkg/layout"

// Kind names a drawing command.
type Kind string

const (
	KindLine   Kind = "line"
	KindCircle Kind = "circle"
	KindLabel  Kind = "label"
)

// Command is one recorded drawing command.
type Command struct {
	Kind   Kind           `json:"type"`
	Points []layout.Point `json:"points"`
	Shift  float64        `json:"shift,omitempty"`
	Fill   string         `json:"fill,omitempty"`
	Text   string         `json:"text,omitempty"`
}

// Recorder is a [Sink] that keeps every command.
type Recorder struct {
	Window   Window
	Commands []Command
}

func (r *Recorder) Begin(w Window) {
	r.Window = w
	r.Commands = r.Commands[:0]
}

func (r *Recorder) Line(a, b layout.Point, shift float64) {
	r.Commands = append(r.Commands, Command{Kind: KindLine, Points: []layout.Point{a, b}, Shift: shift})
}

func (r *Recorder) Circle(p layout.Point, fill string) {
	r.Commands = append(r.Commands, Command{Kind: KindCircle, Points: []layout.Point{p}, Fill: fill})
}

func (r *Recorder) Label(text string, p layout.Point) {
	r.Commands = append(r.Commands, Command{Kind: KindLabel, Points: []layout.Point{p}, Text: text})
}

// Count returns the number of recorded commands of kind k.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, c := range r.Commands {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// Noop is a [Sink] that discards every command.
type Noop struct{}

func (Noop) Begin(Window)                      {}
func (Noop) Line(_, _ layout.Point, _ float64) {}
func (Noop) Circle(layout.Point, string)       {}
func (Noop) Label(string, layout.Point)        {}

var (
	_ Sink = (*Recorder)(nil)
	_ Sink = Noop{}
)
