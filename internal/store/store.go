// Package store persists meal records and schedule bands in a single JSON
// container file.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/faizmokh/sugarlog/internal/files"
	"github.com/faizmokh/sugarlog/internal/record"
	"github.com/faizmokh/sugarlog/internal/schedule"
)

// Store holds the records and bands of one container file in memory. Every
// mutation rewrites the whole file; the in-memory state only changes once the
// write succeeded. Store does no locking: callers serialize mutations.
type Store struct {
	path    string
	logger  *zap.Logger
	entropy io.Reader

	records     []record.Record
	bands       []schedule.Band
	extra       map[string]json.RawMessage
	configExtra map[string]json.RawMessage
}

// New returns an empty store bound to path. Call Load to read the file.
func New(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		path:    path,
		logger:  logger,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		bands:   schedule.Defaults(),
	}
}

// Open creates a store for path and loads it.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	s := New(path, logger)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the container file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the container. A missing or empty file yields no records and
// the default bands; nothing is written until the first mutation.
func (s *Store) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := files.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		data = nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.records = nil
		s.bands = schedule.Defaults()
		s.extra = nil
		s.configExtra = nil
		s.logger.Info("initialized empty store", zap.String("path", s.path))
		return nil
	}

	c, err := decodeContainer(data)
	if err != nil {
		return &files.StorageError{Op: "decode", Path: s.path, Err: err}
	}
	for i := range c.records {
		c.records[i].ID = s.newID()
	}
	if !c.hasBands {
		c.bands = schedule.Defaults()
	}

	s.records = c.records
	s.bands = c.bands
	s.extra = c.extra
	s.configExtra = c.configExtra

	s.logger.Info("loaded store",
		zap.String("path", s.path),
		zap.Int("records", len(s.records)),
		zap.Int("bands", len(s.bands)),
	)
	return nil
}

// Save writes the current state back to disk.
func (s *Store) Save(ctx context.Context) error {
	return s.persist(ctx, s.records, s.bands)
}

// All returns a copy of the records in insertion order.
func (s *Store) All() []record.Record {
	out := make([]record.Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// Len reports how many records the store holds.
func (s *Store) Len() int {
	return len(s.records)
}

// Append validates r, assigns it an identity and persists it. On a
// validation or storage error the store is left unchanged.
func (s *Store) Append(ctx context.Context, r record.Record) (record.Record, error) {
	if err := record.Validate(r); err != nil {
		return record.Record{}, err
	}

	r = r.Clone()
	r.ID = s.newID()

	next := make([]record.Record, 0, len(s.records)+1)
	next = append(next, s.records...)
	next = append(next, r)

	if err := s.persist(ctx, next, s.bands); err != nil {
		return record.Record{}, err
	}
	s.records = next

	s.logger.Info("appended record",
		zap.String("id", r.ID),
		zap.String("date", r.Date),
		zap.Int("records", len(s.records)),
	)
	return r.Clone(), nil
}

// RemoveMany deletes every record whose identity is in ids and returns how
// many were removed. Unknown identities are ignored.
func (s *Store) RemoveMany(ctx context.Context, ids []string) (int, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	next := make([]record.Record, 0, len(s.records))
	for _, r := range s.records {
		if _, ok := drop[r.ID]; ok {
			continue
		}
		next = append(next, r)
	}

	removed := len(s.records) - len(next)
	if removed == 0 {
		return 0, nil
	}
	if err := s.persist(ctx, next, s.bands); err != nil {
		return 0, err
	}
	s.records = next

	s.logger.Info("removed records", zap.Int("removed", removed), zap.Int("records", len(s.records)))
	return removed, nil
}

// Bands returns the configured schedule bands sorted by start time.
func (s *Store) Bands() []schedule.Band {
	return append([]schedule.Band(nil), s.bands...)
}

// SaveBands validates and persists a new band set. Overlaps are returned in
// the report and logged, they never block the save.
func (s *Store) SaveBands(ctx context.Context, bands []schedule.Band) (schedule.Report, error) {
	report, err := schedule.Validate(bands)
	if err != nil {
		return schedule.Report{}, err
	}
	if err := s.persist(ctx, s.records, report.Bands); err != nil {
		return schedule.Report{}, err
	}
	s.bands = report.Bands

	for _, o := range report.Overlaps {
		s.logger.Warn("schedule bands overlap",
			zap.String("earlier", o.Earlier.Name),
			zap.String("later", o.Later.Name),
		)
	}
	return report, nil
}

// ResetBands restores the default bands.
func (s *Store) ResetBands(ctx context.Context) error {
	_, err := s.SaveBands(ctx, schedule.Defaults())
	return err
}

func (s *Store) persist(ctx context.Context, records []record.Record, bands []schedule.Band) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeContainer(container{
		records:     records,
		bands:       bands,
		extra:       s.extra,
		configExtra: s.configExtra,
	})
	if err != nil {
		return &files.StorageError{Op: "encode", Path: s.path, Err: err}
	}
	if err := files.WriteFileAtomic(s.path, data); err != nil {
		s.logger.Error("persist store failed", zap.String("path", s.path), zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func sortBands(bands []schedule.Band) {
	sort.SliceStable(bands, func(i, j int) bool {
		if bands[i].Start != bands[j].Start {
			return bands[i].Start < bands[j].Start
		}
		return bands[i].Name < bands[j].Name
	})
}
