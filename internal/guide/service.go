package guide

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rsinha/flashdown/internal/llm"
)

// Service generates study guides asynchronously.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	pending *Guide
	err     error
	ready   bool
}

// NewService creates a guide generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// RequestGuide starts async guide generation. Only one guide is in-flight
// at a time. New requests replace pending ones.
func (s *Service) RequestGuide(ctx context.Context, input GuideInput) {
	go func() {
		g, err := s.generate(ctx, input)
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pending = g
		s.err = err
		s.ready = true
	}()
}

// ConsumeGuide returns the pending guide if one is ready.
// Returns (nil, false) if no guide is ready yet or generation failed.
// After consumption, the pending slot is cleared.
func (s *Service) ConsumeGuide() (*Guide, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready || s.pending == nil {
		return nil, false
	}
	g := s.pending
	s.pending = nil
	s.ready = false
	s.err = nil
	return g, true
}

// Err returns and clears the error from a failed generation, or nil when
// nothing has failed since the last call.
func (s *Service) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready || s.pending != nil {
		return nil
	}
	err := s.err
	s.err = nil
	s.ready = false
	return err
}

type guideOutput struct {
	Title    string `json:"title"`
	Overview string `json:"overview"`
	Sections []struct {
		Heading     string   `json:"heading"`
		Explanation string   `json:"explanation"`
		Terms       []string `json:"terms"`
	} `json:"sections"`
	Tips []string `json:"tips"`
}

func (s *Service) generate(ctx context.Context, input GuideInput) (*Guide, error) {
	ctx = llm.WithPurpose(ctx, "study-guide")

	userMsg := buildGuideUserMessage(input, s.cfg)

	req := llm.Request{
		System: guideSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      GuideSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("guide generation: %w", err)
	}

	var out guideOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse guide response: %w", err)
	}

	g := &Guide{
		SetID:    input.SetID,
		Title:    out.Title,
		Overview: out.Overview,
		Tips:     out.Tips,
	}
	for _, sec := range out.Sections {
		g.Sections = append(g.Sections, Section{
			Heading:     sec.Heading,
			Explanation: sec.Explanation,
			Terms:       sec.Terms,
		})
	}
	return g, nil
}
