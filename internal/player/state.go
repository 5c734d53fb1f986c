package player

// State is where an output stands with its loaded media.
//
//	Stopped --Load--> Paused --Play--> Playing
//	Playing --Pause--> Paused
//	Playing --end of media--> Stopped
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

var stateNames = [...]string{
	Stopped: "stopped",
	Playing: "playing",
	Paused:  "paused",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Loaded reports whether media is loaded, playing or not.
func (s State) Loaded() bool {
	return s != Stopped
}
