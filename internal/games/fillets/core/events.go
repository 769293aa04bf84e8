package core

// Notifier receives the audible and visible events of a room.
// The room never depends on what a notifier does with them.
type Notifier interface {
	// Impact is raised once per round with the heaviest weight that
	// landed during it.
	Impact(w Weight)
	Died(model int, cause DeathCause)
	Out(model int)
	// Complete is raised once, when the level goal is first met.
	Complete()
}

// NopNotifier ignores every event.
type NopNotifier struct{}

func (NopNotifier) Impact(Weight)        {}
func (NopNotifier) Died(int, DeathCause) {}
func (NopNotifier) Out(int)              {}
func (NopNotifier) Complete()            {}

var _ Notifier = NopNotifier{}
