package pairing

// State is the pairing state of the device.
type State uint8

const (
	// StateUnpaired means no owner is on record.
	StateUnpaired State = iota

	// StatePaired means an owner is on record.
	StatePaired
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnpaired:
		return "UNPAIRED"
	case StatePaired:
		return "PAIRED"
	default:
		return "UNKNOWN"
	}
}

// Decision is the outcome of evaluating a connection.
type Decision uint8

const (
	// DecisionPaired means the peer became the owner.
	DecisionPaired Decision = iota + 1

	// DecisionPairedUncommitted means the peer was let in as the first
	// owner but the owner record could not be written.
	DecisionPairedUncommitted

	// DecisionOwner means the owner reconnected.
	DecisionOwner

	// DecisionRejected means the peer is not the owner and was disconnected.
	DecisionRejected

	// DecisionStorageFault means the owner could not be read and the
	// connection was left alone.
	DecisionStorageFault
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case DecisionPaired:
		return "PAIRED"
	case DecisionPairedUncommitted:
		return "PAIRED_UNCOMMITTED"
	case DecisionOwner:
		return "OWNER"
	case DecisionRejected:
		return "REJECTED"
	case DecisionStorageFault:
		return "STORAGE_FAULT"
	default:
		return "UNKNOWN"
	}
}

// Allowed reports whether the authority left the connection up.
func (d Decision) Allowed() bool {
	return d != DecisionRejected
}

// Stats counts decisions since the authority was created.
type Stats struct {
	Paired            uint64
	PairedUncommitted uint64
	Owner             uint64
	Rejected          uint64
	StorageFaults     uint64
	Disconnects       uint64
}
