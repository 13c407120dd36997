package resource

// State tracks where a resource instance is in its persistence lifecycle.
//
// Transitions:
//
//	Transient → Persisted   successful create
//	Persisted → Persisted   successful update or in-place mutation
//	Persisted → Destroyed   successful deletion
//
// A failed call never advances state; the instance stays exactly where it was
// before the attempt. Destroyed is terminal.
type State uint8

const (
	// Transient is the initial state of a locally constructed instance.
	Transient State = iota
	// Persisted means the instance mirrors a record held by the remote service.
	Persisted
	// Destroyed means the remote record has been deleted.
	Destroyed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Transient:
		return "transient"
	case Persisted:
		return "persisted"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}
