package core

// ModelState is the observable state of one model.
type ModelState struct {
	Index    int
	Kind     Kind
	Loc      Coord
	Alive    bool
	Out      bool
	LookLeft bool
	Action   string
	Death    DeathCause
}

// Snapshot is the observable state of a room. Two rooms that went through
// the same moves have equal snapshots.
type Snapshot struct {
	Models   []ModelState
	Field    string
	Moves    string
	Complete bool
}

// Snapshot captures the current state of the room.
func (r *Room) Snapshot() Snapshot {
	s := Snapshot{
		Models:   make([]ModelState, 0, len(r.field.models)),
		Field:    r.field.String(),
		Moves:    r.Moves(),
		Complete: r.complete,
	}
	for _, m := range r.field.models {
		s.Models = append(s.Models, ModelState{
			Index:    m.index,
			Kind:     m.kind,
			Loc:      m.loc,
			Alive:    m.alive,
			Out:      m.out,
			LookLeft: m.lookLeft,
			Action:   m.Action(),
			Death:    m.death,
		})
	}
	return s
}
