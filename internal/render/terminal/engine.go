package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/umbra/internal/logging"
	"chosenoffset.com/umbra/internal/render"
)

// holdTicks is how long a key counts as held after a press. Terminals report
// presses and repeats but never releases.
const holdTicks = 8

// Input implements render.InputManager from terminal key events.
type Input struct {
	held map[render.Key]int
	just map[render.Key]bool
}

// NewInput creates an input manager with nothing pressed.
func NewInput() *Input {
	return &Input{
		held: make(map[render.Key]int),
		just: make(map[render.Key]bool),
	}
}

// Press records a key press or repeat.
func (in *Input) Press(key render.Key) {
	if in.held[key] == 0 {
		in.just[key] = true
	}
	in.held[key] = holdTicks
}

// EndTick ages held keys and forgets fresh presses.
func (in *Input) EndTick() {
	clear(in.just)
	for k, n := range in.held {
		if n <= 1 {
			delete(in.held, k)
			continue
		}
		in.held[k] = n - 1
	}
}

// IsKeyPressed returns whether the key was pressed recently enough to count as held.
func (in *Input) IsKeyPressed(key render.Key) bool {
	return in.held[key] > 0
}

// IsKeyJustPressed returns whether the key was pressed since the last tick.
func (in *Input) IsKeyJustPressed(key render.Key) bool {
	return in.just[key]
}

// HandleKey translates a tcell key event and reports whether it mapped to a key.
func (in *Input) HandleKey(ev *tcell.EventKey) bool {
	key, ok := keyFromEvent(ev)
	if ok {
		in.Press(key)
	}
	return ok
}

func keyFromEvent(ev *tcell.EventKey) (render.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return render.KeyUp, true
	case tcell.KeyDown:
		return render.KeyDown, true
	case tcell.KeyLeft:
		return render.KeyLeft, true
	case tcell.KeyRight:
		return render.KeyRight, true
	case tcell.KeyEscape:
		return render.KeyEscape, true
	case tcell.KeyRune:
		return keyFromRune(ev.Rune())
	}
	return 0, false
}

func keyFromRune(r rune) (render.Key, bool) {
	switch r {
	case 'w', 'W':
		return render.KeyW, true
	case 'a', 'A':
		return render.KeyA, true
	case 's', 'S':
		return render.KeyS, true
	case 'd', 'D':
		return render.KeyD, true
	case 'p', 'P':
		return render.KeyP, true
	case 'r', 'R':
		return render.KeyR, true
	case 'q', 'Q':
		return render.KeyEscape, true
	}
	return 0, false
}

// Engine implements render.Engine on a tcell screen. The screen must already
// be initialized; RunGame finalizes it on return.
type Engine struct {
	screen tcell.Screen
	input  *Input
	canvas *Canvas
	tick   time.Duration
}

// NewEngine creates an engine that ticks tps times per second.
func NewEngine(screen tcell.Screen, input *Input, tps int) *Engine {
	return &Engine{
		screen: screen,
		input:  input,
		canvas: NewCanvas(screen.Size()),
		tick:   time.Second / time.Duration(tps),
	}
}

// SetWindowSize is a no-op: the terminal decides its size.
func (e *Engine) SetWindowSize(width, height int) {}

// SetWindowTitle sets the terminal title where supported.
func (e *Engine) SetWindowTitle(title string) {
	e.screen.SetTitle(title)
}

// SetWindowResizable is a no-op: terminals are always resizable.
func (e *Engine) SetWindowResizable(resizable bool) {}

// RunGame runs the game loop until the game returns an error or the user
// presses Ctrl-C.
func (e *Engine) RunGame(game render.Game) error {
	defer e.screen.Fini()

	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(e.screen, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				e.input.HandleKey(ev)
			case *tcell.EventResize:
				e.screen.Sync()
				logging.Logger().Debug("terminal resized")
			}

		case <-ticker.C:
			if err := e.Frame(game); err != nil {
				return err
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done is
// closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Frame runs one update and draw and shows the result.
func (e *Engine) Frame(game render.Game) error {
	w, h := game.Layout(e.screen.Size())
	e.canvas.Resize(w, h)

	err := game.Update()
	e.input.EndTick()
	if err != nil {
		return err
	}

	game.Draw(e.canvas)
	e.canvas.Flush(e.screen)
	e.screen.Show()
	return nil
}
