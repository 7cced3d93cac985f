package profile

import (
	"github.com/rsinha/flashdown/internal/deck"
	"github.com/rsinha/flashdown/internal/mastery"
	"github.com/rsinha/flashdown/internal/study"
)

// Version is the profile document version, bumped on breaking layout
// changes.
const Version = 1

// Profile is the whole learner state: card sets, per-card mastery,
// study streak, and settings. It persists as a single JSON document.
type Profile struct {
	Sets     []deck.StudySet                      `json:"sets"`
	Mastery  map[string]map[string]mastery.Record `json:"mastery"` // setID -> cardID -> record
	Streak   mastery.StreakStats                  `json:"streak"`
	Settings study.Config                         `json:"settings"`
}

// NewProfile returns an empty profile with default settings.
func NewProfile() *Profile {
	return &Profile{
		Mastery:  make(map[string]map[string]mastery.Record),
		Settings: study.DefaultConfig(),
	}
}

// SetByID returns the set with the given ID, or nil.
func (p *Profile) SetByID(id string) *deck.StudySet {
	for i := range p.Sets {
		if p.Sets[i].ID == id {
			return &p.Sets[i]
		}
	}
	return nil
}

// AddSet appends a set to the profile.
func (p *Profile) AddSet(set deck.StudySet) {
	p.Sets = append(p.Sets, set)
}

// DeleteSet removes a set and its mastery records.
// Returns false if no set with that ID exists.
func (p *Profile) DeleteSet(id string) bool {
	for i := range p.Sets {
		if p.Sets[i].ID == id {
			p.Sets = append(p.Sets[:i], p.Sets[i+1:]...)
			delete(p.Mastery, id)
			return true
		}
	}
	return false
}

// SetProgress returns the average mastery across a set's cards, 0-100.
// Cards with no record count as zero.
func (p *Profile) SetProgress(setID string) int {
	set := p.SetByID(setID)
	if set == nil || len(set.Cards) == 0 {
		return 0
	}
	records := p.Mastery[setID]
	total := 0
	for _, c := range set.Cards {
		total += records[c.ID].Mastery
	}
	return total / len(set.Cards)
}
