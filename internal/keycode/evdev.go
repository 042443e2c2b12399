package keycode

import evdev "github.com/gvalkov/golang-evdev"

// evdevToKeyCode and its inverse are the only place the core-adjacent driver
// layer is allowed to construct a KeyCode from a raw integer. Unknown scan
// codes translate to Unknown, which callers must treat as passthrough
// (§4.1 / §4.6.3 of the remapping engine contract).
var evdevToKeyCode = map[uint16]KeyCode{
	evdev.KEY_A: A, evdev.KEY_B: B, evdev.KEY_C: C, evdev.KEY_D: D,
	evdev.KEY_E: E, evdev.KEY_F: F, evdev.KEY_G: G, evdev.KEY_H: H,
	evdev.KEY_I: I, evdev.KEY_J: J, evdev.KEY_K: K, evdev.KEY_L: L,
	evdev.KEY_M: M, evdev.KEY_N: N, evdev.KEY_O: O, evdev.KEY_P: P,
	evdev.KEY_Q: Q, evdev.KEY_R: R, evdev.KEY_S: S, evdev.KEY_T: T,
	evdev.KEY_U: U, evdev.KEY_V: V, evdev.KEY_W: W, evdev.KEY_X: X,
	evdev.KEY_Y: Y, evdev.KEY_Z: Z,

	evdev.KEY_1: Num1, evdev.KEY_2: Num2, evdev.KEY_3: Num3,
	evdev.KEY_4: Num4, evdev.KEY_5: Num5, evdev.KEY_6: Num6,
	evdev.KEY_7: Num7, evdev.KEY_8: Num8, evdev.KEY_9: Num9,
	evdev.KEY_0: Num0,

	evdev.KEY_F1: F1, evdev.KEY_F2: F2, evdev.KEY_F3: F3, evdev.KEY_F4: F4,
	evdev.KEY_F5: F5, evdev.KEY_F6: F6, evdev.KEY_F7: F7, evdev.KEY_F8: F8,
	evdev.KEY_F9: F9, evdev.KEY_F10: F10, evdev.KEY_F11: F11, evdev.KEY_F12: F12,
	evdev.KEY_F13: F13, evdev.KEY_F14: F14, evdev.KEY_F15: F15, evdev.KEY_F16: F16,
	evdev.KEY_F17: F17, evdev.KEY_F18: F18, evdev.KEY_F19: F19, evdev.KEY_F20: F20,
	evdev.KEY_F21: F21, evdev.KEY_F22: F22, evdev.KEY_F23: F23, evdev.KEY_F24: F24,

	evdev.KEY_LEFTSHIFT: LShift, evdev.KEY_RIGHTSHIFT: RShift,
	evdev.KEY_LEFTCTRL: LCtrl, evdev.KEY_RIGHTCTRL: RCtrl,
	evdev.KEY_LEFTALT: LAlt, evdev.KEY_RIGHTALT: RAlt,
	evdev.KEY_LEFTMETA: LMeta, evdev.KEY_RIGHTMETA: RMeta,

	evdev.KEY_ESC: Escape, evdev.KEY_ENTER: Enter,
	evdev.KEY_BACKSPACE: Backspace, evdev.KEY_TAB: Tab, evdev.KEY_SPACE: Space,
	evdev.KEY_CAPSLOCK: CapsLock, evdev.KEY_NUMLOCK: NumLock,
	evdev.KEY_SCROLLLOCK: ScrollLock, evdev.KEY_SYSRQ: PrintScreen,
	evdev.KEY_PAUSE: Pause, evdev.KEY_INSERT: Insert, evdev.KEY_DELETE: Delete,
	evdev.KEY_HOME: Home, evdev.KEY_END: End,
	evdev.KEY_PAGEUP: PageUp, evdev.KEY_PAGEDOWN: PageDown,

	evdev.KEY_LEFT: Left, evdev.KEY_RIGHT: Right, evdev.KEY_UP: Up, evdev.KEY_DOWN: Down,

	evdev.KEY_LEFTBRACE: LeftBracket, evdev.KEY_RIGHTBRACE: RightBracket,
	evdev.KEY_BACKSLASH: Backslash, evdev.KEY_SEMICOLON: Semicolon,
	evdev.KEY_APOSTROPHE: Quote, evdev.KEY_COMMA: Comma, evdev.KEY_DOT: Period,
	evdev.KEY_SLASH: Slash, evdev.KEY_GRAVE: Grave, evdev.KEY_MINUS: Minus,
	evdev.KEY_EQUAL: Equal,

	evdev.KEY_KP0: Numpad0, evdev.KEY_KP1: Numpad1, evdev.KEY_KP2: Numpad2,
	evdev.KEY_KP3: Numpad3, evdev.KEY_KP4: Numpad4, evdev.KEY_KP5: Numpad5,
	evdev.KEY_KP6: Numpad6, evdev.KEY_KP7: Numpad7, evdev.KEY_KP8: Numpad8,
	evdev.KEY_KP9: Numpad9,
	evdev.KEY_KPSLASH: NumpadDivide, evdev.KEY_KPASTERISK: NumpadMultiply,
	evdev.KEY_KPMINUS: NumpadSubtract, evdev.KEY_KPPLUS: NumpadAdd,
	evdev.KEY_KPENTER: NumpadEnter, evdev.KEY_KPDOT: NumpadDecimal,

	evdev.KEY_MUTE: Mute, evdev.KEY_VOLUMEDOWN: VolumeDown, evdev.KEY_VOLUMEUP: VolumeUp,
	evdev.KEY_PLAYPAUSE: MediaPlayPause, evdev.KEY_STOPCD: MediaStop,
	evdev.KEY_PREVIOUSSONG: MediaPrevious, evdev.KEY_NEXTSONG: MediaNext,
	evdev.KEY_POWER: Power, evdev.KEY_SLEEP: Sleep, evdev.KEY_WAKEUP: Wake,

	evdev.KEY_BACK: BrowserBack, evdev.KEY_FORWARD: BrowserForward,
	evdev.KEY_REFRESH: BrowserRefresh, evdev.KEY_STOP: BrowserStop,
	evdev.KEY_SEARCH: BrowserSearch, evdev.KEY_BOOKMARKS: BrowserFavorites,
	evdev.KEY_HOMEPAGE: BrowserHome,

	evdev.KEY_MAIL: AppMail, evdev.KEY_CALC: AppCalculator,
	evdev.KEY_COMPUTER: AppMyComputer,

	evdev.KEY_MENU: Menu, evdev.KEY_HELP: Help, evdev.KEY_SELECT: Select,
	evdev.KEY_OPEN: Execute, evdev.KEY_UNDO: Undo, evdev.KEY_REDO: Redo,
	evdev.KEY_CUT: Cut, evdev.KEY_COPY: Copy, evdev.KEY_PASTE: Paste,
	evdev.KEY_FIND: Find,

	evdev.KEY_ZENKAKUHANKAKU: Zenkaku, evdev.KEY_KATAKANA: Katakana,
	evdev.KEY_HIRAGANA: Hiragana, evdev.KEY_HENKAN: Henkan,
	evdev.KEY_MUHENKAN: Muhenkan, evdev.KEY_YEN: Yen, evdev.KEY_RO: Ro,
	evdev.KEY_KATAKANAHIRAGANA: KatakanaHiragana,

	evdev.KEY_HANGEUL: Hangeul, evdev.KEY_HANJA: Hanja,

	evdev.KEY_102ND: Iso102nd,
}

var keyCodeToEvdev map[KeyCode]uint16

func init() {
	keyCodeToEvdev = make(map[KeyCode]uint16, len(evdevToKeyCode))
	for code, kc := range evdevToKeyCode {
		keyCodeToEvdev[kc] = code
	}
}

// FromEvdev translates a raw Linux evdev key code into a KeyCode. An unknown
// scan code returns (Unknown, false); the driver must then pass the physical
// event through unmodified rather than invent a mapping for it.
func FromEvdev(code uint16) (KeyCode, bool) {
	kc, ok := evdevToKeyCode[code]
	return kc, ok
}

// ToEvdev is the inverse of FromEvdev. uinput shares evdev's numeric key
// code space, so the same table drives synthetic-event injection.
func ToEvdev(k KeyCode) (uint16, bool) {
	code, ok := keyCodeToEvdev[k]
	return code, ok
}
