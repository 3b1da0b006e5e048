package repositories

import (
	"econ-lab/domain"
	"econ-lab/errors"
	stderrors "errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type ISnapshotRepository interface {
	SaveSnapshot(cfg domain.SessionConfig, at time.Time) (uuid.UUID, error)
	GetSnapshot(id uuid.UUID) (Snapshot, error)
	ListSnapshots(configName string, limit *int) ([]Snapshot, error)
}

// Snapshot records the resolved session config a session was launched
// with, so later changes to the settings file do not rewrite history.
type Snapshot struct {
	ID     uuid.UUID            `yaml:"id"`
	At     time.Time            `yaml:"at"`
	Config domain.SessionConfig `yaml:"config"`
}

type SnapshotRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewSnapshotRepository(db *badger.DB, log *slog.Logger) SnapshotRepository {
	return SnapshotRepository{db: db, log: log}
}

// snapshotKey is "snapshot:{config}:{timestamp_padded}:{uuid}". The sign bit
// of the timestamp is flipped so times before 1970 sort first, and the
// 20-digit padding keeps a prefix scan in chronological order.
func snapshotKey(name string, at time.Time, id uuid.UUID) string {
	return fmt.Sprintf("snapshot:%s:%020d:%s", name, uint64(at.UnixNano())^(1<<63), id)
}

func snapshotIndexKey(id uuid.UUID) string {
	return "idx:snapshot:" + id.String()
}

func (r SnapshotRepository) SaveSnapshot(cfg domain.SessionConfig, at time.Time) (uuid.UUID, error) {
	snapshot := Snapshot{ID: uuid.New(), At: at.UTC(), Config: cfg}
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal failed: %w", err)
	}
	key := snapshotKey(cfg.Name, snapshot.At, snapshot.ID)
	err = r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), data); err != nil {
			return err
		}
		return txn.Set([]byte(snapshotIndexKey(snapshot.ID)), []byte(key))
	})
	if err != nil {
		return uuid.Nil, err
	}
	r.log.Debug("Session config snapshot stored", "id", snapshot.ID, "config", cfg.Name)
	return snapshot.ID, nil
}

func (r SnapshotRepository) GetSnapshot(id uuid.UUID) (Snapshot, error) {
	var snapshot Snapshot
	err := r.db.View(func(txn *badger.Txn) error {
		idx, err := txn.Get([]byte(snapshotIndexKey(id)))
		if err != nil {
			return err
		}
		key, err := idx.ValueCopy(nil)
		if err != nil {
			return err
		}
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return yaml.Unmarshal(val, &snapshot)
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return Snapshot{}, fmt.Errorf("%w: %s", errors.ErrSnapshotNotFound, id)
	}
	return snapshot, err
}

// ListSnapshots returns the snapshots of one session config, newest first,
// at most limit of them when limit is set.
func (r SnapshotRepository) ListSnapshots(configName string, limit *int) ([]Snapshot, error) {
	var snapshots []Snapshot
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("snapshot:%s:", configName))
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// In reverse mode, seek past the last key of the prefix.
		seekKey := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit != nil && len(snapshots) >= *limit {
				break
			}
			err := it.Item().Value(func(val []byte) error {
				var s Snapshot
				if err := yaml.Unmarshal(val, &s); err != nil {
					r.log.Warn("Skipping unreadable snapshot", "key", string(it.Item().Key()), "error", err)
					return nil
				}
				snapshots = append(snapshots, s)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return snapshots, err
}

// encodeSnapshot stores the config as YAML, the format it was read from, so
// extra keys come back with the type they were declared with.
func encodeSnapshot(snapshot Snapshot) ([]byte, error) {
	if snapshot.Config.Extra != nil {
		extra := make(map[string]any, len(snapshot.Config.Extra))
		for k, v := range snapshot.Config.Extra {
			extra[k] = tagFloats(v)
		}
		snapshot.Config.Extra = extra
	}
	return yaml.Marshal(snapshot)
}

// wholeFloat is written with an explicit !!float tag: yaml.v3 prints 2.0 as
// "2", which would otherwise decode as an int.
type wholeFloat float64

func (f wholeFloat) MarshalYAML() (any, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v, nil
	}
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!float",
		Value: strconv.FormatFloat(v, 'g', -1, 64),
	}, nil
}

func tagFloats(v any) any {
	switch v := v.(type) {
	case float64:
		return wholeFloat(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = tagFloats(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = tagFloats(e)
		}
		return out
	}
	return v
}
