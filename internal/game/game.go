// Package game draws the valentine window with ebiten and maps keyboard and
// mouse input onto the surface handlers.
package game

import (
	"errors"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/valentine/internal/config"
	"github.com/iburimskiy/valentine/internal/ui"
	"github.com/iburimskiy/valentine/internal/valentine"
)

// Meter reports what the track is currently playing. *music.Track satisfies it.
type Meter interface {
	Level() float64
	Position() time.Duration
	Loaded() bool
}

// Prompt asks for a name, starting from the current one.
type Prompt func(current string) (string, error)

// Game is the ebiten.Game of the valentine window.
type Game struct {
	surface *valentine.Surface
	meter   Meter
	prompt  Prompt
	log     *slog.Logger
	layout  ui.Layout

	// input edge detection
	runes   []rune
	pressed ui.Button
	hovered ui.Button

	// viz
	level  float64
	texts  map[string]*ebiten.Image
	input  liveText
	status liveText
}

// New creates the window game around a surface. meter and prompt may be nil.
func New(surface *valentine.Surface, meter Meter, prompt Prompt, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{
		surface: surface,
		meter:   meter,
		prompt:  prompt,
		log:     logger,
		layout:  ui.NewLayout(config.WindowWidth, config.WindowHeight),
		texts:   make(map[string]*ebiten.Image),
	}
}

func (g *Game) Update() error {
	if g.surface.Closed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.handleKeys()
	g.handleMouse()
	g.updateLevel()

	g.surface.Advance(time.Second / config.TPS)
	return nil
}

func (g *Game) handleKeys() {
	phase := g.surface.Phase()
	keys := ui.Keys{
		Ctrl:  ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta),
		Enter: inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter),
		M:     inpututil.IsKeyJustPressed(ebiten.KeyM),
		F2:    inpututil.IsKeyJustPressed(ebiten.KeyF2),
	}

	g.runes = ebiten.AppendInputChars(g.runes[:0])
	if ui.AcceptsText(phase, keys) {
		if len(g.runes) > 0 {
			g.surface.Type(g.runes...)
		}
		if ui.Repeat(inpututil.KeyPressDuration(ebiten.KeyBackspace)) {
			g.surface.Backspace()
		}
	}

	for _, a := range ui.KeyActions(phase, keys) {
		g.perform(a)
	}
}

func (g *Game) perform(a ui.Action) {
	switch a {
	case ui.ActionSubmit:
		g.surface.Submit()
	case ui.ActionReset:
		if g.surface.Reset() {
			g.dropLineCache()
		}
	case ui.ActionPrompt:
		g.askName()
	case ui.ActionMusic:
		g.surface.ToggleMusic()
	}
}

func (g *Game) handleMouse() {
	mouseX, mouseY := ebiten.CursorPosition()
	g.hovered, _ = g.layout.ButtonAt(g.surface.Phase(), mouseX, mouseY)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pressed = g.hovered
	}
	if !inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		return
	}
	clicked := g.pressed
	g.pressed = ui.Button{}
	if clicked.Action == ui.ActionNone || clicked != g.hovered {
		return
	}
	g.perform(clicked.Action)
}

// askName opens the native prompt. It blocks the game loop while open, which
// also freezes the surface clock.
func (g *Game) askName() {
	if g.prompt == nil {
		return
	}
	name, err := g.prompt(g.surface.Name())
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			g.log.Warn("name prompt failed", slog.String("error", err.Error()))
		}
		return
	}
	g.surface.SetName(name)
}

// updateLevel smooths the music level so the hearts swell without jitter.
func (g *Game) updateLevel() {
	target := 0.0
	if g.meter != nil && g.surface.Playing() {
		target = g.meter.Level()
	}
	g.level = config.SmoothingFactor*g.level + (1-config.SmoothingFactor)*target
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Close tears the surface down and cancels its timers. It runs after the
// game loop has exited, so cached images are dropped without deallocating.
func (g *Game) Close() {
	g.surface.Teardown()
	clear(g.texts)
	g.input = liveText{}
	g.status = liveText{}
}
