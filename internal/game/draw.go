package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/valentine/internal/config"
	"github.com/iburimskiy/valentine/internal/greeting"
	"github.com/iburimskiy/valentine/internal/ui"
)

var (
	colorPink50  = color.RGBA{R: 253, G: 242, B: 248, A: 255}
	colorPink200 = color.RGBA{R: 251, G: 207, B: 232, A: 255}
	colorPink500 = color.RGBA{R: 236, G: 72, B: 153, A: 255}
	colorPink600 = color.RGBA{R: 219, G: 39, B: 119, A: 255}
	colorCard    = color.RGBA{R: 255, G: 255, B: 255, A: 205}
	colorGray400 = color.RGBA{R: 156, G: 163, B: 175, A: 255}
	colorGray700 = color.RGBA{R: 55, G: 65, B: 81, A: 255}
	colorGray800 = color.RGBA{R: 31, G: 41, B: 55, A: 255}
	colorWhite   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	labelSubmit  = "Send Valentine ❤️"
	labelReset   = "Send Another Valentine ❤️"
	labelTitle   = "✨ Welcome! ✨"
	labelPrompt  = "Please enter your name:"
	placeholder  = "Your name"
	lineSpacing  = 28
	lineSlide    = 10
	cursorPeriod = 1.0 // seconds per blink cycle
)

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)
	g.drawHearts(screen)
	g.drawCard(screen)
	g.drawMusicButton(screen)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	t := g.surface.Now().Seconds()
	for y := 0; y < config.WindowHeight; y += 4 {
		ratio := float64(y) / float64(config.WindowHeight)
		shade := 6 * math.Sin(t*0.3+ratio*math.Pi)
		c := color.RGBA{
			R: colorPink50.R,
			G: uint8(float64(colorPink50.G) - 8*ratio + shade),
			B: uint8(float64(colorPink50.B) - 4*ratio + shade/2),
			A: 255,
		}
		vector.DrawFilledRect(screen, 0, float32(y), config.WindowWidth, 4, c, false)
	}
}

func (g *Game) drawHearts(screen *ebiten.Image) {
	now := g.surface.Now()
	pulse := ui.Pulse(now, g.level)

	for _, p := range g.surface.Hearts() {
		shape := ui.PlaceHeart(p, now, config.WindowWidth, config.WindowHeight, pulse)

		// Slight hue spread so hearts of different sizes read apart.
		r, gv, b := ui.HSVToRGB(330+(p.Scale-1)*20, 0.69, 0.93)
		clr := color.RGBA{R: r, G: gv, B: b, A: uint8(255 * shape.Alpha)}

		for _, c := range shape.Lobes {
			vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(c.R), clr, true)
		}
		for _, row := range shape.Rows {
			vector.DrawFilledRect(screen, float32(row.X), float32(row.Y), float32(row.W), float32(row.H), clr, true)
		}
	}
}

func (g *Game) drawCard(screen *ebiten.Image) {
	card := g.layout.Card
	fillRect(screen, card, colorCard)
	vector.StrokeRect(screen, float32(card.X), float32(card.Y), float32(card.W), float32(card.H), 2, colorPink200, false)

	if g.surface.Phase() == greeting.CollectingInput {
		g.drawForm(screen)
		return
	}

	now := g.surface.Now()
	for i, line := range g.surface.Revealed() {
		alpha := ui.FadeAlpha(line.RevealedAt, now)
		y := card.Y + 30 + float64(i*lineSpacing) + (1-alpha)*lineSlide
		g.drawText(screen, line.Text, card.CenterX(), y, 1, colorGray800, alpha)
	}
	if g.surface.CanReset() {
		g.drawButton(screen, g.layout.Reset, labelReset)
	}
}

func (g *Game) drawForm(screen *ebiten.Image) {
	l := g.layout
	g.drawText(screen, labelTitle, l.Card.CenterX(), l.Card.Y+24, 2, colorPink600, 1)
	g.drawText(screen, labelPrompt, l.Card.CenterX(), l.Card.Y+84, 1, colorGray700, 1)

	fillRect(screen, l.Input, colorWhite)
	vector.StrokeRect(screen, float32(l.Input.X), float32(l.Input.Y), float32(l.Input.W), float32(l.Input.H), 1, colorPink500, false)

	textY := l.Input.Y + (l.Input.H-ui.GlyphHeight)/2
	name := g.surface.Name()
	if name == "" {
		g.drawTextAt(screen, placeholder, l.Input.X+8, textY, colorGray400)
	} else {
		shown := ui.Tail(ui.Printable(name), l.InputChars()-1)
		if math.Mod(g.surface.Now().Seconds(), cursorPeriod) < cursorPeriod/2 {
			shown += "_"
		}
		img := g.input.render(shown, l.InputChars())
		drawImageAt(screen, img, l.Input.X+8, textY, colorGray800)
	}

	g.drawButton(screen, l.Prompt, "...")
	g.drawButton(screen, l.Submit, labelSubmit)
}

func (g *Game) drawButton(screen *ebiten.Image, r ui.Rect, label string) {
	// Button background
	var bg color.Color
	switch {
	case g.pressed.Rect == r && g.hovered.Rect == r:
		bg = color.RGBA{R: 190, G: 24, B: 93, A: 255} // Pressed
	case g.hovered.Rect == r:
		bg = colorPink600 // Hovered
	default:
		bg = colorPink500 // Normal
	}
	fillRect(screen, r, bg)

	textY := r.Y + (r.H-ui.GlyphHeight)/2
	g.drawText(screen, label, r.CenterX(), textY, 1, colorWhite, 1)
}

func (g *Game) drawMusicButton(screen *ebiten.Image) {
	r := g.layout.Music
	cx, cy := r.CenterX(), r.Y+r.H/2
	radius := float32(r.W / 2)

	bg := colorWhite
	if g.hovered.Rect == r {
		bg = colorPink50
	}
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), radius, bg, true)
	vector.StrokeCircle(screen, float32(cx), float32(cy), radius, 2, colorPink500, true)

	label := "OFF"
	if g.surface.Playing() {
		label = "ON"
	}
	g.drawText(screen, label, cx, cy-ui.GlyphHeight/2, 1, colorPink500, 1)

	if !g.surface.Playing() || g.meter == nil {
		return
	}
	status := "..."
	if g.meter.Loaded() {
		status = ui.FormatDuration(g.meter.Position())
	}
	x := r.X - float64(ui.TextWidth(status)) - 8
	drawImageAt(screen, g.status.render(status, 8), x, cy-ui.GlyphHeight/2, colorPink600)
}

func fillRect(screen *ebiten.Image, r ui.Rect, clr color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

// textImage renders s once with the debug font and caches it.
func (g *Game) textImage(s string) *ebiten.Image {
	s = ui.Printable(s)
	if img, ok := g.texts[s]; ok {
		return img
	}
	img := ebiten.NewImage(max(ui.TextWidth(s), 1)+1, ui.GlyphHeight+1)
	ebitenutil.DebugPrint(img, s)
	g.texts[s] = img
	return img
}

// drawText draws s centered on cx, tinted and faded.
func (g *Game) drawText(screen *ebiten.Image, s string, cx, y, scale float64, clr color.Color, alpha float64) {
	img := g.textImage(s)
	w := float64(img.Bounds().Dx()) * scale

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(math.Round(cx-w/2), math.Round(y))
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(img, op)
}

// drawTextAt draws s with its left edge at x.
func (g *Game) drawTextAt(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	drawImageAt(screen, g.textImage(s), x, y, clr)
}

func drawImageAt(screen, img *ebiten.Image, x, y float64, clr color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(math.Round(x), math.Round(y))
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(img, op)
}

// liveText is a single image for text that changes often, such as the name
// being typed. It is redrawn in place instead of going through the cache.
type liveText struct {
	img  *ebiten.Image
	text string
}

// render returns s drawn on an image wide enough for chars glyphs. The image
// grows if a longer string arrives.
func (t *liveText) render(s string, chars int) *ebiten.Image {
	w := ui.BoxWidth(s, chars)
	if t.img == nil || t.img.Bounds().Dx() < w {
		if t.img != nil {
			t.img.Deallocate()
		}
		t.img = ebiten.NewImage(w, ui.GlyphHeight+1)
		t.text = ""
	} else if s == t.text {
		return t.img
	}
	t.img.Clear()
	ebitenutil.DebugPrint(t.img, s)
	t.text = s
	return t.img
}

// dropLineCache releases cached text images; they are rebuilt on demand.
func (g *Game) dropLineCache() {
	for s, img := range g.texts {
		img.Deallocate()
		delete(g.texts, s)
	}
}
