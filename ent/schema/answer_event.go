package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single answer within a study session.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("set_id").
			NotEmpty().
			Comment("The card set"),
		field.String("card_id").
			NotEmpty().
			Comment("The card this question was for"),
		field.String("mode").
			NotEmpty().
			Comment("flashcard, memorise, or test"),
		field.String("prompt").
			NotEmpty().
			Comment("The prompt shown"),
		field.String("correct_answer").
			NotEmpty().
			Comment("The canonical correct answer"),
		field.String("given_answer").
			Default("").
			Comment("What the learner entered or picked; empty for a skip or flashcard rating"),
		field.Bool("correct").
			Comment("Whether the answer was correct"),
		field.Int("time_ms").
			Default(0).
			Comment("Milliseconds to answer"),
		field.String("question_kind").
			NotEmpty().
			Comment("flip, choice, or typed"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("set_id"),
		index.Fields("card_id"),
		index.Fields("correct"),
	}
}
