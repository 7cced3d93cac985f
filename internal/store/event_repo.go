package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rsinha/flashdown/ent"
	"github.com/rsinha/flashdown/ent/answerevent"
	"github.com/rsinha/flashdown/ent/llmrequestevent"
)

// eventRepo implements EventRepo backed by ent and the global sequence counter.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.SessionEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetSetID(data.SetID).
		SetMode(data.Mode).
		SetAction(data.Action).
		SetCardsSeen(data.CardsSeen).
		SetCorrectAnswers(data.CorrectAnswers).
		SetDurationSecs(data.DurationSecs).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.AnswerEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetSetID(data.SetID).
		SetCardID(data.CardID).
		SetMode(data.Mode).
		SetPrompt(data.Prompt).
		SetCorrectAnswer(data.CorrectAnswer).
		SetGivenAnswer(data.GivenAnswer).
		SetCorrect(data.Correct).
		SetTimeMs(data.TimeMs).
		SetQuestionKind(data.QuestionKind).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.LLMRequestEvent.Create().
		SetSequence(seqNum).
		SetProvider(data.Provider).
		SetModel(data.Model).
		SetPurpose(data.Purpose).
		SetInputTokens(data.InputTokens).
		SetOutputTokens(data.OutputTokens).
		SetLatencyMs(data.LatencyMs).
		SetSuccess(data.Success).
		SetErrorMessage(data.ErrorMessage).
		SetRequestBody(data.RequestBody).
		SetResponseBody(data.ResponseBody).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) LastStudied(ctx context.Context, setID string) (time.Time, error) {
	ae, err := r.client.AnswerEvent.Query().
		Where(answerevent.SetID(setID)).
		Order(ent.Desc(answerevent.FieldTimestamp)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("query last studied: %w", err)
	}
	return ae.Timestamp, nil
}

func (r *eventRepo) SetAccuracy(ctx context.Context, setID string) ([]CardAccuracy, error) {
	events, err := r.client.AnswerEvent.Query().
		Where(answerevent.SetID(setID)).
		Order(ent.Asc(answerevent.FieldSequence)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query set accuracy: %w", err)
	}

	byCard := make(map[string]*CardAccuracy)
	var order []string
	for _, e := range events {
		acc, ok := byCard[e.CardID]
		if !ok {
			acc = &CardAccuracy{CardID: e.CardID}
			byCard[e.CardID] = acc
			order = append(order, e.CardID)
		}
		acc.Answered++
		if e.Correct {
			acc.Correct++
		}
	}

	out := make([]CardAccuracy, 0, len(order))
	for _, id := range order {
		out = append(out, *byCard[id])
	}
	return out, nil
}

func (r *eventRepo) RecentMisses(ctx context.Context, setID string, lastN int) ([]string, error) {
	events, err := r.client.AnswerEvent.Query().
		Where(
			answerevent.SetID(setID),
			answerevent.Correct(false),
		).
		Order(ent.Desc(answerevent.FieldSequence)).
		Limit(lastN).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query recent misses: %w", err)
	}

	// Newest last.
	out := make([]string, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		out = append(out, events[i].CardID)
	}
	return out, nil
}

func (r *eventRepo) LLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	q := r.client.LLMRequestEvent.Query().
		Order(ent.Desc(llmrequestevent.FieldSequence))

	if opts.After > 0 {
		q = q.Where(llmrequestevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		q = q.Where(llmrequestevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		q = q.Where(llmrequestevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		q = q.Where(llmrequestevent.TimestampLTE(opts.To))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	events, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query LLM request events: %w", err)
	}

	out := make([]LLMRequestEventRecord, 0, len(events))
	for _, e := range events {
		out = append(out, LLMRequestEventRecord{
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
			LLMRequestEventData: LLMRequestEventData{
				Provider:     e.Provider,
				Model:        e.Model,
				Purpose:      e.Purpose,
				InputTokens:  e.InputTokens,
				OutputTokens: e.OutputTokens,
				LatencyMs:    e.LatencyMs,
				Success:      e.Success,
				ErrorMessage: e.ErrorMessage,
				RequestBody:  e.RequestBody,
				ResponseBody: e.ResponseBody,
			},
		})
	}
	return out, nil
}
