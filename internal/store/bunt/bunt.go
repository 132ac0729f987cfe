package bunt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hireai/waitlist-manager/internal/dependency"
	"github.com/tidwall/buntdb"
)

// Config configures the embedded store. An empty path keeps data in memory.
type Config struct {
	Path string `mapstructure:"path"`
}

// BuntStore is a dependency.Repository backed by a single buntdb file.
// buntdb runs one writable transaction at a time, so every check-then-write
// below is atomic.
type BuntStore struct {
	db *buntdb.DB
}

func New(c *Config) (*BuntStore, error) {
	path := c.Path
	if path == "" {
		path = ":memory:"
	}
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open buntdb %s: %w", path, err)
	}
	return &BuntStore{db: db}, nil
}

func (s *BuntStore) Waitlist() dependency.Waitlist {
	return &waitlistStore{BuntStore: s}
}

func (s *BuntStore) Admin() dependency.Admin {
	return &adminStore{BuntStore: s}
}

func (s *BuntStore) Mail() dependency.Mail {
	return &mailStore{BuntStore: s}
}

func (s *BuntStore) Now() time.Time {
	return time.Now().UTC()
}

func (s *BuntStore) Ping(ctx context.Context) error {
	return s.db.View(func(tx *buntdb.Tx) error {
		_, err := tx.Len()
		return err
	})
}

func (s *BuntStore) Close() {
	_ = s.db.Close()
}

func getJSON(tx *buntdb.Tx, key string, v any) (bool, error) {
	val, err := tx.Get(key)
	if errors.Is(err, buntdb.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), v); err != nil {
		return false, fmt.Errorf("can't decode %s: %w", key, err)
	}
	return true, nil
}

func setJSON(tx *buntdb.Tx, key string, v any) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("can't encode %s: %w", key, err)
	}
	_, _, err = tx.Set(key, string(bs), nil)
	return err
}

func exists(tx *buntdb.Tx, key string) (bool, error) {
	_, err := tx.Get(key)
	if errors.Is(err, buntdb.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
