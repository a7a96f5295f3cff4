package journal

import (
	"github.com/myrjola/soverain/internal/models"
)

// Snapshot is the exported state of a Store used to carry it in a web session.
//
// It is encoded as JSON rather than gob because gob drops pointers to zero values, which would turn a linked score
// of 0 into an unscored reflection.
type Snapshot struct {
	Profiles []models.Profile `json:"profiles"`
}

// Snapshot copies the store state. Profiles are ordered by name.
func (s *Store) Snapshot() Snapshot {
	snapshot := Snapshot{Profiles: make([]models.Profile, 0, len(s.profiles))}
	for _, name := range s.Names() {
		snapshot.Profiles = append(snapshot.Profiles, *s.profiles[name])
	}
	return snapshot
}

// Restore rebuilds a Store from a snapshot.
func Restore(snapshot Snapshot) *Store {
	s := NewStore()
	for i := range snapshot.Profiles {
		p := snapshot.Profiles[i]
		s.profiles[p.Name] = &p
	}
	return s
}
