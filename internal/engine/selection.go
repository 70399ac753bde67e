package engine

// Mode identifies the interaction context: browsing one of the two name
// lists, or entering a secret for a pending connect.
type Mode int

const (
	ModeBrowseVPN Mode = iota
	ModeBrowseWiFi
	ModeSecretEntry
)

// String returns a human-readable mode label.
func (m Mode) String() string {
	switch m {
	case ModeBrowseVPN:
		return "vpn"
	case ModeBrowseWiFi:
		return "wifi"
	case ModeSecretEntry:
		return "secret"
	default:
		return "unknown"
	}
}

// Event is a discrete input consumed by the selection machine.
type Event interface{ isEvent() }

type (
	// ModeToggle switches between the VPN and Wi-Fi browse lists.
	ModeToggle struct{}
	// CursorDown moves the cursor forward, wrapping at the end.
	CursorDown struct{}
	// CursorUp moves the cursor backward, wrapping at the start.
	CursorUp struct{}
	// Confirm opens secret entry on the item under the cursor, or commits
	// the pending secret when already entering one.
	Confirm struct{}
	// Cancel abandons secret entry and returns to the originating list.
	Cancel struct{}
	// CharInput appends one character to the secret buffer.
	CharInput struct{ Rune rune }
	// Backspace removes the last character of the secret buffer.
	Backspace struct{}
	// Disconnect requests teardown of the highlighted tunnel (VPN list only).
	Disconnect struct{}
	// Refresh requests a re-fetch of both name lists.
	Refresh struct{}
)

func (ModeToggle) isEvent() {}
func (CursorDown) isEvent() {}
func (CursorUp) isEvent()   {}
func (Confirm) isEvent()    {}
func (Cancel) isEvent()     {}
func (CharInput) isEvent()  {}
func (Backspace) isEvent()  {}
func (Disconnect) isEvent() {}
func (Refresh) isEvent()    {}

// Action is an external effect requested by the machine. The caller hands
// actions to the action sink; the machine itself performs no I/O.
type Action interface{ isAction() }

type (
	// SubmitSecret carries a committed secret for the captured target.
	SubmitSecret struct {
		From   Mode
		Target string
		Secret string
	}
	// RequestDisconnect asks the sink to tear down the named tunnel.
	RequestDisconnect struct{ Name string }
	// RequestRefresh asks the owner to re-fetch both name lists.
	RequestRefresh struct{}
)

func (SubmitSecret) isAction()      {}
func (RequestDisconnect) isAction() {}
func (RequestRefresh) isAction()    {}

// Selection is the three-mode interaction state machine. A single mode
// value plus the secret-entry payload (originating mode, captured target,
// buffer) makes illegal combinations - like moving a browse cursor while
// editing a secret - structurally unreachable.
type Selection struct {
	mode   Mode
	cursor int

	// Secret-entry payload; meaningful only while mode == ModeSecretEntry.
	from   Mode
	target string
	secret []rune
}

// NewSelection starts in the VPN browse list with the cursor at 0.
func NewSelection() *Selection {
	return &Selection{mode: ModeBrowseVPN}
}

// Mode returns the current interaction mode.
func (s *Selection) Mode() Mode { return s.mode }

// Cursor returns the current cursor index into the active browse list.
func (s *Selection) Cursor() int { return s.cursor }

// Target returns the name captured when secret entry began.
func (s *Selection) Target() string { return s.target }

// SecretLen returns the number of characters buffered, for masked display.
// The buffer's contents are only ever surfaced whole, inside SubmitSecret.
func (s *Selection) SecretLen() int { return len(s.secret) }

// browseLen returns the active list length for the current browse context.
func (s *Selection) browseLen(vpns, wifis []string) int {
	if s.mode == ModeBrowseWiFi || (s.mode == ModeSecretEntry && s.from == ModeBrowseWiFi) {
		return len(wifis)
	}
	return len(vpns)
}

// ClampCursor re-bounds the cursor after the underlying list may have
// changed length (external refresh). An empty list parks the cursor at 0.
func (s *Selection) ClampCursor(vpns, wifis []string) {
	n := s.browseLen(vpns, wifis)
	if n == 0 || s.cursor >= n {
		s.cursor = 0
	}
}

// Handle applies one event against the current lists and returns the
// requested external action, or nil. Events that make no sense in the
// current mode are silently ignored.
func (s *Selection) Handle(ev Event, vpns, wifis []string) Action {
	if s.mode == ModeSecretEntry {
		return s.handleSecretEntry(ev)
	}
	return s.handleBrowse(ev, vpns, wifis)
}

func (s *Selection) handleBrowse(ev Event, vpns, wifis []string) Action {
	list := vpns
	if s.mode == ModeBrowseWiFi {
		list = wifis
	}

	switch ev.(type) {
	case ModeToggle:
		if s.mode == ModeBrowseVPN {
			s.mode = ModeBrowseWiFi
		} else {
			s.mode = ModeBrowseVPN
		}
		s.cursor = 0

	case CursorDown:
		if len(list) > 0 {
			s.cursor = (s.cursor + 1) % len(list)
		}

	case CursorUp:
		if len(list) > 0 {
			s.cursor = (s.cursor - 1 + len(list)) % len(list)
		}

	case Confirm:
		if len(list) == 0 || s.cursor >= len(list) {
			return nil
		}
		s.from = s.mode
		s.target = list[s.cursor]
		s.secret = nil
		s.mode = ModeSecretEntry

	case Disconnect:
		if s.mode == ModeBrowseVPN && len(list) > 0 && s.cursor < len(list) {
			return RequestDisconnect{Name: list[s.cursor]}
		}

	case Refresh:
		return RequestRefresh{}
	}

	return nil
}

func (s *Selection) handleSecretEntry(ev Event) Action {
	switch ev := ev.(type) {
	case Confirm:
		action := SubmitSecret{
			From:   s.from,
			Target: s.target,
			Secret: string(s.secret),
		}
		s.leaveSecretEntry()
		return action

	case Cancel:
		s.leaveSecretEntry()

	case CharInput:
		s.secret = append(s.secret, ev.Rune)

	case Backspace:
		if len(s.secret) > 0 {
			s.secret = s.secret[:len(s.secret)-1]
		}
	}

	return nil
}

// leaveSecretEntry returns to the originating browse mode and clears the
// buffer. The cursor is untouched: the highlighted item stays put.
func (s *Selection) leaveSecretEntry() {
	s.mode = s.from
	s.target = ""
	s.secret = nil
}
