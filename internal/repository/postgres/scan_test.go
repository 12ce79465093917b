package postgres

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows отдаёт заранее заданные строки; scanErrAt - номер строки с ошибкой
type fakeRows struct {
	rows      []shopDistanceRow
	pos       int
	scanErrAt int
	err       error
}

func (f *fakeRows) Next() bool {
	if f.pos >= len(f.rows) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeRows) StructScan(dest interface{}) error {
	if f.pos == f.scanErrAt {
		return errors.New("cannot scan NULL into float64")
	}
	*dest.(*shopDistanceRow) = f.rows[f.pos-1]
	return nil
}

func (f *fakeRows) Err() error {
	return f.err
}

func distanceRow(name string, km float64) shopDistanceRow {
	return shopDistanceRow{
		shopRow:    shopRow{ID: uuid.New(), Name: name},
		DistanceKm: km,
	}
}

func TestScanNearby(t *testing.T) {
	t.Run("reads all rows", func(t *testing.T) {
		rows := &fakeRows{rows: []shopDistanceRow{
			distanceRow("Taito Station Shibuya", 0.4),
			distanceRow("GiGO Akihabara", 7.8),
		}}

		shops, err := scanNearby(rows)
		require.NoError(t, err)
		require.Len(t, shops, 2)
		assert.Equal(t, "Taito Station Shibuya", shops[0].Name)
		assert.Equal(t, 7.8, shops[1].DistanceKm)
		assert.Equal(t, []string{}, shops[1].Games)
	})

	t.Run("scan error fails whole result", func(t *testing.T) {
		rows := &fakeRows{
			rows: []shopDistanceRow{
				distanceRow("Taito Station Shibuya", 0.4),
				distanceRow("GiGO Akihabara", 7.8),
				distanceRow("Round1 Osaka", 400),
			},
			scanErrAt: 2,
		}

		shops, err := scanNearby(rows)
		assert.Error(t, err)
		assert.Nil(t, shops)
	})

	t.Run("iteration error", func(t *testing.T) {
		rows := &fakeRows{
			rows: []shopDistanceRow{distanceRow("Taito Station Shibuya", 0.4)},
			err:  errors.New("connection reset"),
		}

		shops, err := scanNearby(rows)
		assert.Error(t, err)
		assert.Nil(t, shops)
	})

	t.Run("empty", func(t *testing.T) {
		shops, err := scanNearby(&fakeRows{})
		require.NoError(t, err)
		assert.Empty(t, shops)
		assert.NotNil(t, shops)
	})
}
