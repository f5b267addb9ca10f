package domain

// CallPhase is the state of the signaling machine for one user pair.
// Transitions only move along idle -> ringing -> connected -> ended -> idle.
type CallPhase int

const (
	CallIdle CallPhase = iota
	CallRinging
	CallConnected
	CallEnded
)

func (p CallPhase) String() string {
	switch p {
	case CallIdle:
		return "idle"
	case CallRinging:
		return "ringing"
	case CallConnected:
		return "connected"
	case CallEnded:
		return "ended"
	}
	return "unknown"
}

// PairKey identifies the unordered pair of users a call belongs to.
// NewPairKey normalizes the order so (A,B) and (B,A) map to the same key.
type PairKey struct {
	Low, High UserID
}

func NewPairKey(a, b UserID) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{Low: a, High: b}
}

// Other returns the participant of the pair that is not userID.
func (k PairKey) Other(userID UserID) UserID {
	if k.Low == userID {
		return k.High
	}
	return k.Low
}

// Has reports whether userID participates in the pair.
func (k PairKey) Has(userID UserID) bool {
	return k.Low == userID || k.High == userID
}
