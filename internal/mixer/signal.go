package mixer

// SharedSignal is a multi-party readiness rendezvous. Each party marks
// itself ready with Signal; Signaled reports whether every party has fired
// since the last Reset. The coordinator uses it to hold back mixing until
// both sources have contributed in the current epoch, and to detect that a
// signaling party is the first of a fresh epoch.
//
// Signal is idempotent per party between resets. SharedSignal performs no
// internal locking; it is guarded by its owner's mutex together with the
// buffers it gates.
type SharedSignal struct {
	fired []bool
}

// NewSharedSignal creates a signal for the given number of parties.
func NewSharedSignal(parties int) *SharedSignal {
	return &SharedSignal{fired: make([]bool, parties)}
}

// Signal marks the party as having fired in the current epoch.
func (s *SharedSignal) Signal(party int) {
	s.fired[party] = true
}

// Signaled reports whether all parties have fired since the last Reset.
func (s *SharedSignal) Signaled() bool {
	for _, f := range s.fired {
		if !f {
			return false
		}
	}
	return true
}

// Reset clears every party's flag, starting a new epoch.
func (s *SharedSignal) Reset() {
	for i := range s.fired {
		s.fired[i] = false
	}
}
