// Package keycode defines the closed set of physical keys the remapping
// engine understands, plus the conversions to and from the Linux evdev wire
// codes. The enumeration never grows at runtime: drivers translate OS scan
// codes at the boundary, the core only ever sees a KeyCode.
package keycode

// KeyCode identifies a physical (or synthetic output) key. The zero value,
// Unknown, is what FromEvdev returns for an evdev code outside the table; it
// must not be used as a mapping target.
type KeyCode uint16

const (
	Unknown KeyCode = iota

	// Letters
	A
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z

	// Top-row digits
	Num0
	Num1
	Num2
	Num3
	Num4
	Num5
	Num6
	Num7
	Num8
	Num9

	// Function keys
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
	F21
	F22
	F23
	F24

	// The eight physical modifiers
	LShift
	RShift
	LCtrl
	RCtrl
	LAlt
	RAlt
	LMeta
	RMeta

	// Editing / whitespace
	Escape
	Enter
	Backspace
	Tab
	Space
	CapsLock
	NumLock
	ScrollLock
	PrintScreen
	Pause
	Insert
	Delete
	Home
	End
	PageUp
	PageDown

	// Arrows
	Left
	Right
	Up
	Down

	// Punctuation
	LeftBracket
	RightBracket
	Backslash
	Semicolon
	Quote
	Comma
	Period
	Slash
	Grave
	Minus
	Equal

	// Numpad
	Numpad0
	Numpad1
	Numpad2
	Numpad3
	Numpad4
	Numpad5
	Numpad6
	Numpad7
	Numpad8
	Numpad9
	NumpadDivide
	NumpadMultiply
	NumpadSubtract
	NumpadAdd
	NumpadEnter
	NumpadDecimal

	// Media / system / browser / application extras
	Mute
	VolumeDown
	VolumeUp
	MediaPlayPause
	MediaStop
	MediaPrevious
	MediaNext
	Power
	Sleep
	Wake
	BrowserBack
	BrowserForward
	BrowserRefresh
	BrowserStop
	BrowserSearch
	BrowserFavorites
	BrowserHome
	AppMail
	AppCalculator
	AppMyComputer
	Menu
	Help
	Select
	Execute
	Undo
	Redo
	Cut
	Copy
	Paste
	Find

	// JIS (Japanese) keys
	Zenkaku
	Katakana
	Hiragana
	Henkan
	Muhenkan
	Yen
	Ro
	KatakanaHiragana

	// Hangul (Korean) keys
	Hangeul
	Hanja

	// ISO/European
	Iso102nd

	// keyCodeCount marks the end of the enumeration; not a valid key itself.
	keyCodeCount
)

var names = map[KeyCode]string{
	Unknown: "Unknown",
	A: "A", B: "B", C: "C", D: "D", E: "E", F: "F", G: "G", H: "H", I: "I",
	J: "J", K: "K", L: "L", M: "M", N: "N", O: "O", P: "P", Q: "Q", R: "R",
	S: "S", T: "T", U: "U", V: "V", W: "W", X: "X", Y: "Y", Z: "Z",
	Num0: "Num0", Num1: "Num1", Num2: "Num2", Num3: "Num3", Num4: "Num4",
	Num5: "Num5", Num6: "Num6", Num7: "Num7", Num8: "Num8", Num9: "Num9",
	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6", F7: "F7",
	F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12", F13: "F13",
	F14: "F14", F15: "F15", F16: "F16", F17: "F17", F18: "F18", F19: "F19",
	F20: "F20", F21: "F21", F22: "F22", F23: "F23", F24: "F24",
	LShift: "LShift", RShift: "RShift", LCtrl: "LCtrl", RCtrl: "RCtrl",
	LAlt: "LAlt", RAlt: "RAlt", LMeta: "LMeta", RMeta: "RMeta",
	Escape: "Escape", Enter: "Enter", Backspace: "Backspace", Tab: "Tab",
	Space: "Space", CapsLock: "CapsLock", NumLock: "NumLock",
	ScrollLock: "ScrollLock", PrintScreen: "PrintScreen", Pause: "Pause",
	Insert: "Insert", Delete: "Delete", Home: "Home", End: "End",
	PageUp: "PageUp", PageDown: "PageDown",
	Left: "Left", Right: "Right", Up: "Up", Down: "Down",
	LeftBracket: "LeftBracket", RightBracket: "RightBracket",
	Backslash: "Backslash", Semicolon: "Semicolon", Quote: "Quote",
	Comma: "Comma", Period: "Period", Slash: "Slash", Grave: "Grave",
	Minus: "Minus", Equal: "Equal",
	Numpad0: "Numpad0", Numpad1: "Numpad1", Numpad2: "Numpad2",
	Numpad3: "Numpad3", Numpad4: "Numpad4", Numpad5: "Numpad5",
	Numpad6: "Numpad6", Numpad7: "Numpad7", Numpad8: "Numpad8",
	Numpad9: "Numpad9", NumpadDivide: "NumpadDivide",
	NumpadMultiply: "NumpadMultiply", NumpadSubtract: "NumpadSubtract",
	NumpadAdd: "NumpadAdd", NumpadEnter: "NumpadEnter",
	NumpadDecimal: "NumpadDecimal",
	Mute: "Mute", VolumeDown: "VolumeDown", VolumeUp: "VolumeUp",
	MediaPlayPause: "MediaPlayPause", MediaStop: "MediaStop",
	MediaPrevious: "MediaPrevious", MediaNext: "MediaNext",
	Power: "Power", Sleep: "Sleep", Wake: "Wake",
	BrowserBack: "BrowserBack", BrowserForward: "BrowserForward",
	BrowserRefresh: "BrowserRefresh", BrowserStop: "BrowserStop",
	BrowserSearch: "BrowserSearch", BrowserFavorites: "BrowserFavorites",
	BrowserHome: "BrowserHome",
	AppMail: "AppMail", AppCalculator: "AppCalculator",
	AppMyComputer: "AppMyComputer",
	Menu: "Menu", Help: "Help", Select: "Select", Execute: "Execute",
	Undo: "Undo", Redo: "Redo", Cut: "Cut", Copy: "Copy", Paste: "Paste",
	Find: "Find",
	Zenkaku: "Zenkaku", Katakana: "Katakana", Hiragana: "Hiragana",
	Henkan: "Henkan", Muhenkan: "Muhenkan", Yen: "Yen", Ro: "Ro",
	KatakanaHiragana: "KatakanaHiragana",
	Hangeul:          "Hangeul", Hanja: "Hanja",
	Iso102nd: "Iso102nd",
}

// String renders the key's canonical name, or "KeyCode(?)" for anything
// outside the closed enumeration.
func (k KeyCode) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return "KeyCode(?)"
}

// IsPhysicalModifier reports whether k is one of the eight hardware
// modifier keys. Custom modifier IDs (ModifierID in package mapping) are a
// distinct concept and are never physical modifiers.
func (k KeyCode) IsPhysicalModifier() bool {
	switch k {
	case LShift, RShift, LCtrl, RCtrl, LAlt, RAlt, LMeta, RMeta:
		return true
	default:
		return false
	}
}

// Valid reports whether k falls inside the closed enumeration.
func (k KeyCode) Valid() bool {
	return k > Unknown && k < keyCodeCount
}
