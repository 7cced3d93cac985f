// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/rsinha/flashdown/ent/answerevent"
	"github.com/rsinha/flashdown/ent/llmrequestevent"
	"github.com/rsinha/flashdown/ent/profile"
	"github.com/rsinha/flashdown/ent/schema"
	"github.com/rsinha/flashdown/ent/sessionevent"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	answereventMixin := schema.AnswerEvent{}.Mixin()
	answereventMixinFields0 := answereventMixin[0].Fields()
	_ = answereventMixinFields0
	answereventFields := schema.AnswerEvent{}.Fields()
	_ = answereventFields
	// answereventDescTimestamp is the schema descriptor for timestamp field.
	answereventDescTimestamp := answereventMixinFields0[1].Descriptor()
	// answerevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	answerevent.DefaultTimestamp = answereventDescTimestamp.Default.(func() time.Time)
	// answereventDescSessionID is the schema descriptor for session_id field.
	answereventDescSessionID := answereventFields[0].Descriptor()
	// answerevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	answerevent.SessionIDValidator = answereventDescSessionID.Validators[0].(func(string) error)
	// answereventDescSetID is the schema descriptor for set_id field.
	answereventDescSetID := answereventFields[1].Descriptor()
	// answerevent.SetIDValidator is a validator for the "set_id" field. It is called by the builders before save.
	answerevent.SetIDValidator = answereventDescSetID.Validators[0].(func(string) error)
	// answereventDescCardID is the schema descriptor for card_id field.
	answereventDescCardID := answereventFields[2].Descriptor()
	// answerevent.CardIDValidator is a validator for the "card_id" field. It is called by the builders before save.
	answerevent.CardIDValidator = answereventDescCardID.Validators[0].(func(string) error)
	// answereventDescMode is the schema descriptor for mode field.
	answereventDescMode := answereventFields[3].Descriptor()
	// answerevent.ModeValidator is a validator for the "mode" field. It is called by the builders before save.
	answerevent.ModeValidator = answereventDescMode.Validators[0].(func(string) error)
	// answereventDescPrompt is the schema descriptor for prompt field.
	answereventDescPrompt := answereventFields[4].Descriptor()
	// answerevent.PromptValidator is a validator for the "prompt" field. It is called by the builders before save.
	answerevent.PromptValidator = answereventDescPrompt.Validators[0].(func(string) error)
	// answereventDescCorrectAnswer is the schema descriptor for correct_answer field.
	answereventDescCorrectAnswer := answereventFields[5].Descriptor()
	// answerevent.CorrectAnswerValidator is a validator for the "correct_answer" field. It is called by the builders before save.
	answerevent.CorrectAnswerValidator = answereventDescCorrectAnswer.Validators[0].(func(string) error)
	// answereventDescGivenAnswer is the schema descriptor for given_answer field.
	answereventDescGivenAnswer := answereventFields[6].Descriptor()
	// answerevent.DefaultGivenAnswer holds the default value on creation for the given_answer field.
	answerevent.DefaultGivenAnswer = answereventDescGivenAnswer.Default.(string)
	// answereventDescTimeMs is the schema descriptor for time_ms field.
	answereventDescTimeMs := answereventFields[8].Descriptor()
	// answerevent.DefaultTimeMs holds the default value on creation for the time_ms field.
	answerevent.DefaultTimeMs = answereventDescTimeMs.Default.(int)
	// answereventDescQuestionKind is the schema descriptor for question_kind field.
	answereventDescQuestionKind := answereventFields[9].Descriptor()
	// answerevent.QuestionKindValidator is a validator for the "question_kind" field. It is called by the builders before save.
	answerevent.QuestionKindValidator = answereventDescQuestionKind.Validators[0].(func(string) error)
	llmrequesteventMixin := schema.LLMRequestEvent{}.Mixin()
	llmrequesteventMixinFields0 := llmrequesteventMixin[0].Fields()
	_ = llmrequesteventMixinFields0
	llmrequesteventFields := schema.LLMRequestEvent{}.Fields()
	_ = llmrequesteventFields
	// llmrequesteventDescTimestamp is the schema descriptor for timestamp field.
	llmrequesteventDescTimestamp := llmrequesteventMixinFields0[1].Descriptor()
	// llmrequestevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	llmrequestevent.DefaultTimestamp = llmrequesteventDescTimestamp.Default.(func() time.Time)
	// llmrequesteventDescInputTokens is the schema descriptor for input_tokens field.
	llmrequesteventDescInputTokens := llmrequesteventFields[3].Descriptor()
	// llmrequestevent.DefaultInputTokens holds the default value on creation for the input_tokens field.
	llmrequestevent.DefaultInputTokens = llmrequesteventDescInputTokens.Default.(int)
	// llmrequesteventDescOutputTokens is the schema descriptor for output_tokens field.
	llmrequesteventDescOutputTokens := llmrequesteventFields[4].Descriptor()
	// llmrequestevent.DefaultOutputTokens holds the default value on creation for the output_tokens field.
	llmrequestevent.DefaultOutputTokens = llmrequesteventDescOutputTokens.Default.(int)
	// llmrequesteventDescLatencyMs is the schema descriptor for latency_ms field.
	llmrequesteventDescLatencyMs := llmrequesteventFields[5].Descriptor()
	// llmrequestevent.DefaultLatencyMs holds the default value on creation for the latency_ms field.
	llmrequestevent.DefaultLatencyMs = llmrequesteventDescLatencyMs.Default.(int64)
	// llmrequesteventDescErrorMessage is the schema descriptor for error_message field.
	llmrequesteventDescErrorMessage := llmrequesteventFields[7].Descriptor()
	// llmrequestevent.DefaultErrorMessage holds the default value on creation for the error_message field.
	llmrequestevent.DefaultErrorMessage = llmrequesteventDescErrorMessage.Default.(string)
	// llmrequesteventDescRequestBody is the schema descriptor for request_body field.
	llmrequesteventDescRequestBody := llmrequesteventFields[8].Descriptor()
	// llmrequestevent.DefaultRequestBody holds the default value on creation for the request_body field.
	llmrequestevent.DefaultRequestBody = llmrequesteventDescRequestBody.Default.(string)
	// llmrequesteventDescResponseBody is the schema descriptor for response_body field.
	llmrequesteventDescResponseBody := llmrequesteventFields[9].Descriptor()
	// llmrequestevent.DefaultResponseBody holds the default value on creation for the response_body field.
	llmrequestevent.DefaultResponseBody = llmrequesteventDescResponseBody.Default.(string)
	profileFields := schema.Profile{}.Fields()
	_ = profileFields
	// profileDescTimestamp is the schema descriptor for timestamp field.
	profileDescTimestamp := profileFields[1].Descriptor()
	// profile.DefaultTimestamp holds the default value on creation for the timestamp field.
	profile.DefaultTimestamp = profileDescTimestamp.Default.(func() time.Time)
	sessioneventMixin := schema.SessionEvent{}.Mixin()
	sessioneventMixinFields0 := sessioneventMixin[0].Fields()
	_ = sessioneventMixinFields0
	sessioneventFields := schema.SessionEvent{}.Fields()
	_ = sessioneventFields
	// sessioneventDescTimestamp is the schema descriptor for timestamp field.
	sessioneventDescTimestamp := sessioneventMixinFields0[1].Descriptor()
	// sessionevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	sessionevent.DefaultTimestamp = sessioneventDescTimestamp.Default.(func() time.Time)
	// sessioneventDescSessionID is the schema descriptor for session_id field.
	sessioneventDescSessionID := sessioneventFields[0].Descriptor()
	// sessionevent.SessionIDValidator is a validator for the "session_id" field. It is called by the builders before save.
	sessionevent.SessionIDValidator = sessioneventDescSessionID.Validators[0].(func(string) error)
	// sessioneventDescSetID is the schema descriptor for set_id field.
	sessioneventDescSetID := sessioneventFields[1].Descriptor()
	// sessionevent.SetIDValidator is a validator for the "set_id" field. It is called by the builders before save.
	sessionevent.SetIDValidator = sessioneventDescSetID.Validators[0].(func(string) error)
	// sessioneventDescMode is the schema descriptor for mode field.
	sessioneventDescMode := sessioneventFields[2].Descriptor()
	// sessionevent.ModeValidator is a validator for the "mode" field. It is called by the builders before save.
	sessionevent.ModeValidator = sessioneventDescMode.Validators[0].(func(string) error)
	// sessioneventDescAction is the schema descriptor for action field.
	sessioneventDescAction := sessioneventFields[3].Descriptor()
	// sessionevent.ActionValidator is a validator for the "action" field. It is called by the builders before save.
	sessionevent.ActionValidator = sessioneventDescAction.Validators[0].(func(string) error)
	// sessioneventDescCardsSeen is the schema descriptor for cards_seen field.
	sessioneventDescCardsSeen := sessioneventFields[4].Descriptor()
	// sessionevent.DefaultCardsSeen holds the default value on creation for the cards_seen field.
	sessionevent.DefaultCardsSeen = sessioneventDescCardsSeen.Default.(int)
	// sessioneventDescCorrectAnswers is the schema descriptor for correct_answers field.
	sessioneventDescCorrectAnswers := sessioneventFields[5].Descriptor()
	// sessionevent.DefaultCorrectAnswers holds the default value on creation for the correct_answers field.
	sessionevent.DefaultCorrectAnswers = sessioneventDescCorrectAnswers.Default.(int)
	// sessioneventDescDurationSecs is the schema descriptor for duration_secs field.
	sessioneventDescDurationSecs := sessioneventFields[6].Descriptor()
	// sessionevent.DefaultDurationSecs holds the default value on creation for the duration_secs field.
	sessionevent.DefaultDurationSecs = sessioneventDescDurationSecs.Default.(int)
}
