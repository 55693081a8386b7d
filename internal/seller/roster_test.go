package seller

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader serves pre-built sets keyed by path.
type fakeLoader struct {
	sets map[string][]string
	errs map[string]error
}

func (l *fakeLoader) Load(ctx context.Context, path string) (IDSet, error) {
	if err, ok := l.errs[path]; ok {
		return nil, err
	}
	set := NewMapIDSet(len(l.sets[path])).(*mapIDSet)
	for _, id := range l.sets[path] {
		set.Add(id)
	}
	return set, nil
}

func TestNewRoster_SingleFile(t *testing.T) {
	loader := &fakeLoader{
		sets: map[string][]string{
			"roster-a.gz": {"seller-1", "seller-2"},
		},
	}

	roster, err := NewRoster(context.Background(), &RosterConfig{
		FilePaths: []string{"roster-a.gz"},
	}, loader, zerolog.Nop())

	require.NoError(t, err)
	defer roster.Close()

	assert.Equal(t, 2, roster.Size())
	assert.True(t, roster.Contains("seller-1"))
	assert.True(t, roster.Contains("seller-2"))
	assert.False(t, roster.Contains("seller-3"))
}

func TestNewRoster_UnionOfMultipleFiles(t *testing.T) {
	loader := &fakeLoader{
		sets: map[string][]string{
			"roster-a.gz": {"seller-1", "seller-2"},
			"roster-b.gz": {"seller-3"},
			"roster-c.gz": {"seller-4", "seller-5"},
		},
	}

	roster, err := NewRoster(context.Background(), &RosterConfig{
		FilePaths: []string{"roster-a.gz", "roster-b.gz", "roster-c.gz"},
	}, loader, zerolog.Nop())

	require.NoError(t, err)
	defer roster.Close()

	assert.Equal(t, 5, roster.Size())
	for _, id := range []string{"seller-1", "seller-2", "seller-3", "seller-4", "seller-5"} {
		assert.True(t, roster.Contains(id), "expected %s on the roster", id)
	}
	assert.False(t, roster.Contains("seller-99"))
}

func TestNewRoster_LoadFailureFailsInitialisation(t *testing.T) {
	loader := &fakeLoader{
		sets: map[string][]string{
			"good.gz": {"seller-1"},
		},
		errs: map[string]error{
			"bad.gz": errors.New("corrupt gzip stream"),
		},
	}

	roster, err := NewRoster(context.Background(), &RosterConfig{
		FilePaths: []string{"good.gz", "bad.gz"},
	}, loader, zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, roster)
	assert.Contains(t, err.Error(), "bad.gz")
}

func TestNewRoster_NilConfigUsesDefaults(t *testing.T) {
	loader := &fakeLoader{
		sets: map[string][]string{
			"data/sellers/roster.gz": {"seller-1"},
		},
	}

	roster, err := NewRoster(context.Background(), nil, loader, zerolog.Nop())

	require.NoError(t, err)
	defer roster.Close()

	assert.True(t, roster.Contains("seller-1"))
}

func TestRoster_ContainsAfterClose(t *testing.T) {
	loader := &fakeLoader{
		sets: map[string][]string{
			"roster.gz": {"seller-1"},
		},
	}

	roster, err := NewRoster(context.Background(), &RosterConfig{
		FilePaths: []string{"roster.gz"},
	}, loader, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, roster.Close())
	assert.False(t, roster.Contains("seller-1"))
	assert.Equal(t, 0, roster.Size())
}
