package application

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"bluetec-catalog/internal/domain"
)

// snapshot is the session mirror layout:
//
//	{"timestamp": <epoch-ms>, "cache": [[fingerprint, entry], ...]}
type snapshot struct {
	Timestamp int64          `json:"timestamp"`
	Cache     []snapshotPair `json:"cache"`
}

type snapshotPair struct {
	Fingerprint domain.Fingerprint
	Entry       domain.CacheEntry
}

func (p snapshotPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Fingerprint, p.Entry})
}

func (p *snapshotPair) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("cache pair: want 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.Fingerprint); err != nil {
		return fmt.Errorf("cache pair key: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Entry); err != nil {
		return fmt.Errorf("cache pair entry: %w", err)
	}
	return nil
}

func encodeSnapshot(at time.Time, entries map[domain.Fingerprint]domain.CacheEntry) ([]byte, error) {
	s := snapshot{Timestamp: at.UnixMilli(), Cache: make([]snapshotPair, 0, len(entries))}
	for fp, e := range entries {
		s.Cache = append(s.Cache, snapshotPair{Fingerprint: fp, Entry: e})
	}
	sort.Slice(s.Cache, func(i, j int) bool { return s.Cache[i].Fingerprint < s.Cache[j].Fingerprint })
	return json.Marshal(s)
}

func decodeSnapshot(b []byte) (time.Time, map[domain.Fingerprint]domain.CacheEntry, error) {
	var s snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return time.Time{}, nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if s.Timestamp <= 0 {
		return time.Time{}, nil, fmt.Errorf("%w: missing timestamp", ErrCorruptSnapshot)
	}
	out := make(map[domain.Fingerprint]domain.CacheEntry, len(s.Cache))
	for _, p := range s.Cache {
		out[p.Fingerprint] = p.Entry
	}
	return time.UnixMilli(s.Timestamp), out, nil
}
