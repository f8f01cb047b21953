package feed

// State is the lifecycle of the single logical feed connection.
type State int

const (
	Idle State = iota
	Connecting
	Connected
	Disconnected
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	}
	return "unknown"
}
