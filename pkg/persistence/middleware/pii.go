package middleware

import (
	"github.com/aretw0/talentscout/internal/logging"
	"github.com/aretw0/talentscout/pkg/domain"
)

// DefaultPIIFields are the answers that identify a candidate.
var DefaultPIIFields = []domain.Field{
	domain.FieldFullName,
	domain.FieldEmail,
	domain.FieldPhone,
	domain.FieldLocation,
}

// MaskSnapshot returns a copy of snap with the given fields replaced by a mask,
// for display in operator tools. The masked copy keeps the cursor and flags
// and is still a valid snapshot, but restoring it would lose the answers.
func MaskSnapshot(snap *domain.Snapshot, fields ...domain.Field) *domain.Snapshot {
	if len(fields) == 0 {
		fields = DefaultPIIFields
	}
	masked := make(map[domain.Field]bool, len(fields))
	for _, f := range fields {
		masked[f] = true
	}

	out := snap.Clone()
	out.Record = domain.Record{}
	for i := 0; i < domain.FieldCount; i++ {
		f := domain.Field(i)
		if !snap.Record.Has(f) {
			continue
		}
		if f == domain.FieldTechStack {
			techs, _ := snap.Record.TechStack()
			if masked[f] {
				techs = []string{logging.Redacted}
			}
			_ = out.Record.CommitTechStack(techs)
			continue
		}
		v, _ := snap.Record.Get(f)
		if masked[f] {
			v = logging.Redacted
		}
		_ = out.Record.Commit(f, v)
	}
	return out
}
