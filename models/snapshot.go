package models

// SnapshotVersion is the schema version written with every snapshot.
// Snapshots carrying any other version are ignored at startup.
const SnapshotVersion = 0

// SnapshotState is the wire form of [Persisted]. Absent user and token are
// written as JSON null.
type SnapshotState struct {
	User            *User   `json:"user"`
	IsAuthenticated bool    `json:"isAuthenticated"`
	Token           *string `json:"token"`
}

// Snapshot is the durable value stored under the session slot key.
type Snapshot struct {
	State   SnapshotState `json:"state"`
	Version int           `json:"version"`
}

// NewSnapshot wraps p in the current snapshot schema.
func NewSnapshot(p Persisted) Snapshot {
	s := Snapshot{
		State: SnapshotState{
			IsAuthenticated: p.IsAuthenticated,
		},
		Version: SnapshotVersion,
	}
	if p.User != nil {
		u := p.User.Clone()
		s.State.User = &u
	}
	if p.Token != "" {
		token := p.Token
		s.State.Token = &token
	}
	return s
}

// Persisted unwraps the snapshot. It does not check consistency.
func (s Snapshot) Persisted() Persisted {
	p := Persisted{IsAuthenticated: s.State.IsAuthenticated}
	if s.State.User != nil {
		u := s.State.User.Clone()
		p.User = &u
	}
	if s.State.Token != nil {
		p.Token = *s.State.Token
	}
	return p
}
