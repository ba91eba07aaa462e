package model

// Snapshot is the persisted runtime state. Catalog data is never part of it.
type Snapshot struct {
	Roster   []string           `json:"roster"`
	Records  map[string]*Record `json:"records"`
	Config   Config             `json:"config"`
	Override *Override          `json:"override,omitempty"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Roster:  append([]string(nil), s.Roster...),
		Records: make(map[string]*Record, len(s.Records)),
		Config:  s.Config,
	}
	for name, rec := range s.Records {
		out.Records[name] = rec.Clone()
	}
	if s.Override != nil {
		o := *s.Override
		out.Override = &o
	}
	return out
}
