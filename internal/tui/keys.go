package tui

import "github.com/gdamore/tcell/v2"

// Action is a host command decoded from a key press.
type Action int

const (
	ActNone Action = iota
	ActLeft
	ActRight
	ActPause
	ActRestart
	ActMenu
	ActConfirm
	ActQuit
)

func (a Action) String() string {
	switch a {
	case ActLeft:
		return "left"
	case ActRight:
		return "right"
	case ActPause:
		return "pause"
	case ActRestart:
		return "restart"
	case ActMenu:
		return "menu"
	case ActConfirm:
		return "confirm"
	case ActQuit:
		return "quit"
	}
	return "none"
}

// Letter keys also accept their position on the Russian ЙЦУКЕН layout.
var runeActions = map[rune]Action{
	'a': ActLeft, 'A': ActLeft, 'h': ActLeft, 'ф': ActLeft, 'Ф': ActLeft,
	'd': ActRight, 'D': ActRight, 'l': ActRight, 'в': ActRight, 'В': ActRight,
	'p': ActPause, 'P': ActPause, ' ': ActPause, 'з': ActPause, 'З': ActPause,
	'r': ActRestart, 'R': ActRestart, 'к': ActRestart, 'К': ActRestart,
	'm': ActMenu, 'M': ActMenu, 'ь': ActMenu, 'Ь': ActMenu,
	'q': ActQuit, 'Q': ActQuit, 'й': ActQuit, 'Й': ActQuit,
}

// MapKey decodes a key and its rune.
func MapKey(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyLeft:
		return ActLeft
	case tcell.KeyRight:
		return ActRight
	case tcell.KeyEnter:
		return ActConfirm
	case tcell.KeyEscape:
		return ActPause
	case tcell.KeyCtrlC:
		return ActQuit
	case tcell.KeyRune:
		return runeActions[r]
	}
	return ActNone
}

func KeyAction(ev *tcell.EventKey) Action {
	return MapKey(ev.Key(), ev.Rune())
}

// TapPosition converts a mouse column into the tap coordinates expected by
// Engine.RequestLaneAt.
func TapPosition(col, cols int) (x, width int) {
	return col * TapScale, cols * TapScale
}
