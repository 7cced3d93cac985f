package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rsinha/flashdown/ent"
	"github.com/rsinha/flashdown/ent/profile"
)

// profileRepo implements ProfileRepo using the ent client.
type profileRepo struct {
	client *ent.Client
}

func (r *profileRepo) Save(ctx context.Context, row *ProfileRow) error {
	dataMap, err := documentToMap(row.Data)
	if err != nil {
		return fmt.Errorf("marshal profile data: %w", err)
	}

	_, err = r.client.Profile.Create().
		SetSequence(row.Sequence).
		SetTimestamp(row.Timestamp).
		SetData(dataMap).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *profileRepo) Latest(ctx context.Context) (*ProfileRow, error) {
	p, err := r.client.Profile.Query().
		Order(ent.Desc(profile.FieldTimestamp)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest profile: %w", err)
	}
	return entProfileToRow(p)
}

func (r *profileRepo) Prune(ctx context.Context, keep int) error {
	// Find the timestamp threshold: the row just past the keep window.
	rows, err := r.client.Profile.Query().
		Order(ent.Desc(profile.FieldTimestamp)).
		Offset(keep).
		Limit(1).
		All(ctx)
	if err != nil {
		return fmt.Errorf("query profiles for prune: %w", err)
	}
	if len(rows) == 0 {
		return nil // fewer than keep rows exist
	}

	threshold := rows[0].Timestamp
	_, err = r.client.Profile.Delete().
		Where(profile.TimestampLTE(threshold)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("prune profiles: %w", err)
	}
	return nil
}

// documentToMap converts a ProfileDocument to map[string]any for ent JSON storage.
func documentToMap(doc ProfileDocument) (map[string]any, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// entProfileToRow converts an ent Profile to a store ProfileRow.
func entProfileToRow(p *ent.Profile) (*ProfileRow, error) {
	b, err := json.Marshal(p.Data)
	if err != nil {
		return nil, fmt.Errorf("marshal ent data: %w", err)
	}
	var doc ProfileDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal profile data: %w", err)
	}
	return &ProfileRow{
		ID:        p.ID,
		Sequence:  p.Sequence,
		Timestamp: p.Timestamp,
		Data:      doc,
	}, nil
}
