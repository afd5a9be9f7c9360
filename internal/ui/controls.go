package ui

import "github.com/iburimskiy/valentine/internal/greeting"

// Action is what a control or key does to the surface.
type Action int

const (
	ActionNone Action = iota
	ActionSubmit
	ActionReset
	ActionPrompt
	ActionMusic
)

// Button is a clickable control.
type Button struct {
	Rect
	Action Action
}

// Buttons returns the controls shown in the given phase. The reset control
// only exists once the greeting is complete.
func (l Layout) Buttons(phase greeting.Phase) []Button {
	music := Button{Rect: l.Music, Action: ActionMusic}
	switch phase {
	case greeting.CollectingInput:
		return []Button{
			{Rect: l.Submit, Action: ActionSubmit},
			{Rect: l.Prompt, Action: ActionPrompt},
			music,
		}
	case greeting.Complete:
		return []Button{{Rect: l.Reset, Action: ActionReset}, music}
	default:
		return []Button{music}
	}
}

// ButtonAt returns the control under the cursor, if any.
func (l Layout) ButtonAt(phase greeting.Phase, x, y int) (Button, bool) {
	for _, b := range l.Buttons(phase) {
		if b.Contains(x, y) {
			return b, true
		}
	}
	return Button{}, false
}

// Keys is the keyboard state of one frame.
type Keys struct {
	Ctrl  bool // Control or Meta held
	Enter bool // Enter just pressed
	M     bool // M just pressed
	F2    bool // F2 just pressed
}

// AcceptsText reports whether typed characters go to the name field.
func AcceptsText(phase greeting.Phase, k Keys) bool {
	return phase == greeting.CollectingInput && !k.Ctrl
}

// KeyActions maps one frame of keys onto actions, in the order to apply them.
// Enter submits while collecting input and starts over once complete.
func KeyActions(phase greeting.Phase, k Keys) []Action {
	var out []Action
	if k.Enter {
		switch phase {
		case greeting.CollectingInput:
			out = append(out, ActionSubmit)
		case greeting.Complete:
			out = append(out, ActionReset)
		}
	}
	if k.Ctrl && k.M {
		out = append(out, ActionMusic)
	}
	if k.F2 && phase == greeting.CollectingInput {
		out = append(out, ActionPrompt)
	}
	return out
}
