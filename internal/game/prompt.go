package game

import "github.com/ncruces/zenity"

// NativePrompt asks for the name with a desktop entry dialog.
func NativePrompt(current string) (string, error) {
	return zenity.Entry("Please enter your name:",
		zenity.Title("Send Valentine"),
		zenity.EntryText(current),
	)
}
