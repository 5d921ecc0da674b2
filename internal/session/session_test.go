package session

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/agent-tracker/internal/tracker"
)

func testDataset(t *testing.T) *tracker.Dataset {
	t.Helper()
	ds, err := tracker.Ingest([]byte("Agent name,Date,Processed Lots,Target Lots\nA,01/05/2024,1,1\n"), tracker.FormatCSV)
	require.NoError(t, err)
	return ds
}

func TestStoreEmpty(t *testing.T) {
	s := NewStore()
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestStoreReplace(t *testing.T) {
	s := NewStore()
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	first := s.Replace(testDataset(t), "may.csv")
	_, err := uuid.Parse(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "may.csv", first.FileName)
	assert.Equal(t, fixed, first.UploadedAt)

	second := s.Replace(testDataset(t), "june.csv")
	assert.NotEqual(t, first.ID, second.ID)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, cur.ID)
	assert.Equal(t, "june.csv", cur.FileName)
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Replace(testDataset(t), "may.csv")
	s.Clear()

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	ds := testDataset(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Replace(ds, "x.csv")
		}()
		go func() {
			defer wg.Done()
			if e, ok := s.Current(); ok {
				assert.NotNil(t, e.Dataset)
			}
		}()
	}
	wg.Wait()

	_, ok := s.Current()
	assert.True(t, ok)
}
