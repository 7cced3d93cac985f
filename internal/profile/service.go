package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rsinha/flashdown/internal/mastery"
	"github.com/rsinha/flashdown/internal/store"
)

// Service loads and saves the learner profile and gives study sessions
// synchronous access to mastery records. Persistence failures are logged
// and swallowed so a flaky disk never interrupts a study session.
type Service struct {
	repo    store.ProfileRepo
	profile *Profile
}

// NewService creates a Service around an already loaded profile.
func NewService(repo store.ProfileRepo, p *Profile) *Service {
	return &Service{repo: repo, profile: p}
}

// Load reads the latest profile row, or creates a fresh profile seeded
// with the starter set on first run.
func Load(ctx context.Context, repo store.ProfileRepo) (*Service, error) {
	row, err := repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	if row == nil {
		p := NewProfile()
		p.AddSet(StarterSet())
		svc := NewService(repo, p)
		if err := svc.Save(ctx); err != nil {
			return nil, err
		}
		return svc, nil
	}

	p, err := decodeProfile(row.Data)
	if err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return NewService(repo, p), nil
}

// Profile returns the live profile.
func (s *Service) Profile() *Profile {
	return s.profile
}

// Save writes the whole profile document as a new row.
func (s *Service) Save(ctx context.Context) error {
	doc, err := encodeProfile(s.profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	row := &store.ProfileRow{
		Timestamp: time.Now().UTC(),
		Data:      doc,
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	// Best effort. Old rows are only restore points.
	if err := s.repo.Prune(ctx, 10); err != nil {
		fmt.Fprintf(os.Stderr, "warning: prune profile rows: %v\n", err)
	}
	return nil
}

// Mastery returns the persisted record for a card.
// Implements study.MasteryStore.
func (s *Service) Mastery(setID, cardID string) (mastery.Record, bool) {
	records, ok := s.profile.Mastery[setID]
	if !ok {
		return mastery.Record{}, false
	}
	rec, ok := records[cardID]
	return rec, ok
}

// PutMastery updates the record for a card in the live profile.
// Implements study.MasteryStore.
func (s *Service) PutMastery(setID, cardID string, rec mastery.Record) {
	records, ok := s.profile.Mastery[setID]
	if !ok {
		records = make(map[string]mastery.Record)
		s.profile.Mastery[setID] = records
	}
	records[cardID] = rec
}

// RecordStudy advances the daily streak and persists the profile.
func (s *Service) RecordStudy(ctx context.Context, now time.Time) {
	s.profile.Streak = s.profile.Streak.Studied(now)
	if err := s.Save(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

func encodeProfile(p *Profile) (store.ProfileDocument, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return store.ProfileDocument{}, err
	}
	var body map[string]any
	if err := json.Unmarshal(b, &body); err != nil {
		return store.ProfileDocument{}, err
	}
	return store.ProfileDocument{Version: Version, Body: body}, nil
}

func decodeProfile(doc store.ProfileDocument) (*Profile, error) {
	b, err := json.Marshal(doc.Body)
	if err != nil {
		return nil, err
	}
	p := NewProfile()
	if err := json.Unmarshal(b, p); err != nil {
		return nil, err
	}
	if p.Mastery == nil {
		p.Mastery = make(map[string]map[string]mastery.Record)
	}
	return p, nil
}
