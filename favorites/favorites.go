// Package favorites keeps the user's favorite deals, keyed by deal uuid,
// in a durable key-value slot.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lmittmann/tint"

	"github.com/M0ricette/lego/storage"
)

// Key is the storage slot holding the JSON array of favorite uuids.
const Key = "favorites"

// Store is the in-memory favorites set mirrored to storage after each change.
// It is not safe for concurrent use.
type Store struct {
	kv     storage.KV
	ids    map[string]struct{}
	logger *slog.Logger
}

// Load reads the favorites slot once. A missing or unreadable value yields
// an empty set; the failure is logged, not returned.
func Load(ctx context.Context, kv storage.KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{kv: kv, ids: map[string]struct{}{}, logger: logger}
	if kv == nil {
		return s
	}

	raw, ok, err := kv.Get(ctx, Key)
	if err != nil {
		logger.WarnContext(ctx, "read favorites", tint.Err(err))
		return s
	}
	if !ok {
		return s
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		logger.WarnContext(ctx, "decode favorites, starting empty", tint.Err(err))
		return s
	}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

// IsFavorite reports whether uuid is in the set.
func (s *Store) IsFavorite(uuid string) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[uuid]
	return ok
}

// Toggle adds uuid when absent and removes it when present, then persists
// the whole set. It returns the new membership. The in-memory set keeps the
// change even if persisting fails.
func (s *Store) Toggle(ctx context.Context, uuid string) (bool, error) {
	uuid = strings.TrimSpace(uuid)
	if s == nil || uuid == "" {
		return false, fmt.Errorf("toggle favorite: empty id")
	}

	member := !s.IsFavorite(uuid)
	if member {
		s.add(uuid)
	} else {
		s.remove(uuid)
	}

	if err := s.persist(ctx); err != nil {
		return member, err
	}
	s.logger.DebugContext(ctx, "favorite toggled",
		slog.String("uuid", uuid),
		slog.Bool("favorite", member),
	)
	return member, nil
}

// IDs returns the favorite uuids in ascending order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

func (s *Store) add(uuid string) {
	uuid = strings.TrimSpace(uuid)
	if uuid == "" {
		return
	}
	s.ids[uuid] = struct{}{}
}

func (s *Store) remove(uuid string) {
	delete(s.ids, uuid)
}

// persist writes the sorted set so equal sets always store equal bytes.
func (s *Store) persist(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	body, err := json.Marshal(s.IDs())
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := s.kv.Set(ctx, Key, body); err != nil {
		return fmt.Errorf("persist favorites: %w", err)
	}
	return nil
}
