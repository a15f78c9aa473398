package keyseq

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// KeyType identifies a non-printable key. It is a direct alias of
// tcell's key type so callers can hand us tcell.EventKey.Key() values
// without any translation layer.
type KeyType = tcell.Key

// Key name constants, re-exported under the names this package has
// historically used so existing keymap configuration strings keep
// working regardless of which terminal backend is wired underneath.
const (
	KeyF1     = tcell.KeyF1
	KeyF2     = tcell.KeyF2
	KeyF3     = tcell.KeyF3
	KeyF4     = tcell.KeyF4
	KeyF5     = tcell.KeyF5
	KeyF6     = tcell.KeyF6
	KeyF7     = tcell.KeyF7
	KeyF8     = tcell.KeyF8
	KeyF9     = tcell.KeyF9
	KeyF10    = tcell.KeyF10
	KeyF11    = tcell.KeyF11
	KeyF12    = tcell.KeyF12
	KeyInsert = tcell.KeyInsert
	KeyDelete = tcell.KeyDelete
	KeyHome   = tcell.KeyHome
	KeyEnd    = tcell.KeyEnd
	KeyPgup   = tcell.KeyPgUp
	KeyPgdn   = tcell.KeyPgDn

	KeyArrowUp    = tcell.KeyUp
	KeyArrowDown  = tcell.KeyDown
	KeyArrowLeft  = tcell.KeyLeft
	KeyArrowRight = tcell.KeyRight

	KeyBackspace  = tcell.KeyBackspace
	KeyBackspace2 = tcell.KeyBackspace2
	KeyTab        = tcell.KeyTab
	KeyEnter      = tcell.KeyEnter
	KeyEsc        = tcell.KeyEscape
	KeySpace      = tcell.KeyRune // carries Ch == ' '

	KeyCtrlTilde      = tcell.KeyCtrlSpace
	KeyCtrl2          = tcell.KeyCtrlSpace
	KeyCtrlSpace      = tcell.KeyCtrlSpace
	KeyCtrlA          = tcell.KeyCtrlA
	KeyCtrlB          = tcell.KeyCtrlB
	KeyCtrlC          = tcell.KeyCtrlC
	KeyCtrlD          = tcell.KeyCtrlD
	KeyCtrlE          = tcell.KeyCtrlE
	KeyCtrlF          = tcell.KeyCtrlF
	KeyCtrlG          = tcell.KeyCtrlG
	KeyCtrlH          = tcell.KeyCtrlH
	KeyCtrlI          = tcell.KeyCtrlI
	KeyCtrlJ          = tcell.KeyCtrlJ
	KeyCtrlK          = tcell.KeyCtrlK
	KeyCtrlL          = tcell.KeyCtrlL
	KeyCtrlM          = tcell.KeyCtrlM
	KeyCtrlN          = tcell.KeyCtrlN
	KeyCtrlO          = tcell.KeyCtrlO
	KeyCtrlP          = tcell.KeyCtrlP
	KeyCtrlQ          = tcell.KeyCtrlQ
	KeyCtrlR          = tcell.KeyCtrlR
	KeyCtrlS          = tcell.KeyCtrlS
	KeyCtrlT          = tcell.KeyCtrlT
	KeyCtrlU          = tcell.KeyCtrlU
	KeyCtrlV          = tcell.KeyCtrlV
	KeyCtrlW          = tcell.KeyCtrlW
	KeyCtrlX          = tcell.KeyCtrlX
	KeyCtrlY          = tcell.KeyCtrlY
	KeyCtrlZ          = tcell.KeyCtrlZ
	KeyCtrlLsqBracket = tcell.KeyCtrlLeftSq
	KeyCtrl3          = tcell.KeyCtrlLeftSq
	KeyCtrl4          = tcell.KeyCtrlBackslash
	KeyCtrlBackslash  = tcell.KeyCtrlBackslash
	KeyCtrl5          = tcell.KeyCtrlRightSq
	KeyCtrlRsqBracket = tcell.KeyCtrlRightSq
	KeyCtrl6          = tcell.KeyCtrlCarat
	KeyCtrl7          = tcell.KeyCtrlUnderscore
	KeyCtrlSlash      = tcell.KeyCtrlUnderscore
	KeyCtrlUnderscore = tcell.KeyCtrlUnderscore
	KeyCtrl8          = tcell.KeyDEL

	MouseLeft   = tcell.KeyMAX + 1
	MouseMiddle = tcell.KeyMAX + 2
	MouseRight  = tcell.KeyMAX + 3
)

// stringToKey and keyToString translate between the human readable
// names used in keymap configuration and the underlying KeyType.
var stringToKey = map[string]KeyType{}
var keyToString = map[KeyType]string{}

func mapkey(n string, k KeyType) {
	stringToKey[n] = k
	keyToString[k] = n
}

func init() {
	for i, n := range []string{"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12"} {
		mapkey(n, KeyType(int(tcell.KeyF1)+i))
	}

	mapkey("Insert", KeyInsert)
	mapkey("Delete", KeyDelete)
	mapkey("Home", KeyHome)
	mapkey("End", KeyEnd)
	mapkey("Pgup", KeyPgup)
	mapkey("Pgdn", KeyPgdn)
	mapkey("ArrowUp", KeyArrowUp)
	mapkey("ArrowDown", KeyArrowDown)
	mapkey("ArrowLeft", KeyArrowLeft)
	mapkey("ArrowRight", KeyArrowRight)

	mapkey("MouseLeft", MouseLeft)
	mapkey("MouseMiddle", MouseMiddle)
	mapkey("MouseRight", MouseRight)

	ctrlLetters := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
		"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z"}
	for i, n := range ctrlLetters {
		mapkey(fmt.Sprintf("C-%s", n), KeyType(int(tcell.KeyCtrlA)+i))
	}
	mapkey("C-~", KeyCtrlTilde)
	mapkey("C-2", KeyCtrl2)
	mapkey("C-Space", KeyCtrlSpace)
	mapkey("C-[", KeyCtrlLsqBracket)
	mapkey("C-3", KeyCtrl3)
	mapkey("C-4", KeyCtrl4)
	mapkey("C-\\", KeyCtrlBackslash)
	mapkey("C-5", KeyCtrl5)
	mapkey("C-]", KeyCtrlRsqBracket)
	mapkey("C-6", KeyCtrl6)
	mapkey("C-7", KeyCtrl7)
	mapkey("C-/", KeyCtrlSlash)
	mapkey("C-_", KeyCtrlUnderscore)
	mapkey("C-8", KeyCtrl8)

	mapkey("BS", KeyBackspace)
	mapkey("Tab", KeyTab)
	mapkey("Enter", KeyEnter)
	mapkey("Esc", KeyEsc)
	mapkey("Space", KeySpace)
	mapkey("BS2", KeyBackspace2)
}

// ToKeyList parses a comma separated key sequence specification such as
// "C-x,C-s" into a KeyList.
func ToKeyList(ksk string) (KeyList, error) {
	list := KeyList{}
	for _, term := range strings.Split(ksk, ",") {
		term = strings.TrimSpace(term)

		k, m, ch, err := ToKey(term)
		if err != nil {
			return list, errors.Wrapf(err, "failed to convert '%s'", term)
		}

		list = append(list, Key{m, k, ch})
	}
	return list, nil
}

// ToKey parses a single key name such as "C-S-M-Home" into its key
// value, accumulated modifier flags, and (for bare runes) the rune
// itself. Names that map directly to a single KeyType (e.g. "C-a")
// are resolved atomically before any prefix stripping is attempted,
// so that Ctrl-letter combinations keep their dedicated key codes
// instead of being split into modifier + base key.
func ToKey(key string) (k KeyType, modifier ModifierKey, ch rune, err error) {
	modifier = ModNone

	for {
		if v, ok := stringToKey[key]; ok {
			k = v
			return
		}

		switch {
		case strings.HasPrefix(key, "M-"):
			modifier |= ModAlt
			key = key[2:]
		case strings.HasPrefix(key, "C-"):
			modifier |= ModCtrl
			key = key[2:]
		case strings.HasPrefix(key, "S-"):
			modifier |= ModShift
			key = key[2:]
		default:
			r, _ := utf8.DecodeRuneInString(key)
			if r != utf8.RuneError {
				ch = r
				return
			}
			err = errors.Errorf("no such key %s", key)
			return
		}
	}
}

// KeyEventToString returns a human readable name for the given key
// event components, e.g. "C-x" or "M-v".
func KeyEventToString(k KeyType, ch rune, mod ModifierKey) (string, error) {
	var s string
	if k == 0 && ch != 0 {
		s = string([]rune{ch})
	} else {
		var ok bool
		s, ok = keyToString[k]
		if !ok {
			return "", errors.Errorf("no such key %#v", k)
		}

		switch s {
		case "ArrowUp":
			s = "^"
		case "ArrowDown":
			s = "v"
		case "ArrowLeft":
			s = "<"
		case "ArrowRight":
			s = ">"
		}
	}

	var prefix string
	if mod&ModCtrl != 0 {
		prefix += "C-"
	}
	if mod&ModShift != 0 {
		prefix += "S-"
	}
	if mod&ModAlt != 0 {
		prefix += "M-"
	}

	return prefix + s, nil
}
