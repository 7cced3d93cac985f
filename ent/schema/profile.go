package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Profile captures the full learner state (sets, mastery, settings) at a
// point in time. The latest row is the live document; older rows are
// retained as restore points.
type Profile struct {
	ent.Schema
}

func (Profile) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Comment("Event sequence number at the time of the save"),
		field.Time("timestamp").
			Default(time.Now).
			Comment("When the profile was saved"),
		field.JSON("data", map[string]any{}).
			Comment("Full profile document as JSON"),
	}
}

func (Profile) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
		index.Fields("sequence"),
	}
}
