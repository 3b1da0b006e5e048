package repositories

import (
	"econ-lab/domain"
	"econ-lab/errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func trustConfig(fee float64) domain.SessionConfig {
	return domain.SessionConfig{
		Name:                      "trust",
		DisplayName:               "Trust Game",
		AppSequence:               []string{"trust"},
		NumDemoParticipants:       2,
		RealWorldCurrencyPerPoint: 1,
		ParticipationFee:          fee,
	}
}

func Test_Save_And_Get_Snapshot(t *testing.T) {
	req := require.New(t)
	repository := NewSnapshotRepository(openDB(t), slog.Default())
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	id, err := repository.SaveSnapshot(trustConfig(0), at)
	req.NoError(err)

	snapshot, err := repository.GetSnapshot(id)
	req.NoError(err)
	req.Equal(id, snapshot.ID)
	req.True(at.Equal(snapshot.At))
	req.Equal(trustConfig(0), snapshot.Config)
}

func Test_Snapshot_Keeps_Extra_Value_Types(t *testing.T) {
	req := require.New(t)
	repository := NewSnapshotRepository(openDB(t), slog.Default())
	cfg := trustConfig(0)
	cfg.Extra = map[string]any{
		"multiplier":       2,
		"endowment":        10.0,
		"share":            0.5,
		"use_browser_bots": false,
		"treatment":        "high",
		"rounds":           []any{1, 2.0, "three"},
		"payment":          map[string]any{"bonus": 1.0, "cap": 5},
	}

	id, err := repository.SaveSnapshot(cfg, time.Now())
	req.NoError(err)

	snapshot, err := repository.GetSnapshot(id)
	req.NoError(err)
	req.Equal(cfg, snapshot.Config)
	req.IsType(0, snapshot.Config.Extra["multiplier"])
	req.IsType(0.0, snapshot.Config.Extra["endowment"])
}

func Test_List_Snapshots_Orders_Times_Before_1970(t *testing.T) {
	req := require.New(t)
	repository := NewSnapshotRepository(openDB(t), slog.Default())

	_, err := repository.SaveSnapshot(trustConfig(1), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	req.NoError(err)
	_, err = repository.SaveSnapshot(trustConfig(0), time.Date(1969, 7, 20, 20, 17, 0, 0, time.UTC))
	req.NoError(err)

	all, err := repository.ListSnapshots("trust", nil)
	req.NoError(err)
	fees := lo.Map(all, func(s Snapshot, _ int) float64 { return s.Config.ParticipationFee })
	req.Equal([]float64{1, 0}, fees)
}

func Test_Get_Unknown_Snapshot(t *testing.T) {
	repository := NewSnapshotRepository(openDB(t), slog.Default())

	_, err := repository.GetSnapshot(uuid.New())
	require.ErrorIs(t, err, errors.ErrSnapshotNotFound)
}

func Test_List_Snapshots_Newest_First_With_Limit(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repository := NewSnapshotRepository(db, slog.Default())
	at := time.Now().UTC()

	for i := 0; i < 3; i++ {
		_, err := repository.SaveSnapshot(trustConfig(float64(i)), at.Add(time.Duration(i)*time.Minute))
		req.NoError(err)
	}
	other := trustConfig(0)
	other.Name = "honesty"
	_, err := repository.SaveSnapshot(other, at)
	req.NoError(err)

	all, err := repository.ListSnapshots("trust", nil)
	req.NoError(err)
	req.Len(all, 3)
	fees := lo.Map(all, func(s Snapshot, _ int) float64 { return s.Config.ParticipationFee })
	req.Equal([]float64{2, 1, 0}, fees)

	limited, err := repository.ListSnapshots("trust", lo.ToPtr(2))
	req.NoError(err)
	req.Len(limited, 2)

	honesty, err := repository.ListSnapshots("honesty", nil)
	req.NoError(err)
	req.Len(honesty, 1)
}
