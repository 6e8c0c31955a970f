package cache

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-eix/log"
	"go-eix/pkg"
	"go-eix/version"
)

// stubBackend serves records from memory and fails the categories listed
// in broken.
type stubBackend struct {
	cats   []string
	recs   map[string][]pkg.Record
	broken map[string]error
	catErr error
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Categories() ([]string, error) {
	if s.catErr != nil {
		return nil, s.catErr
	}
	return s.cats, nil
}

func (s *stubBackend) ReadCategory(name string) ([]pkg.Record, error) {
	if err := s.broken[name]; err != nil {
		return nil, &BackendError{Backend: "stub", Category: name, Err: err}
	}
	return s.recs[name], nil
}

func TestCollector_MD5Repo(t *testing.T) {
	repo := setupMD5Repo(t)
	b, err := New(MethodMD5, repo, Options{})
	require.NoError(t, err)

	tree := pkg.NewTree()
	idx := tree.AddOverlay(repo, "gentoo")

	stats, err := (&Collector{}).Collect(tree, idx, b)
	require.NoError(t, err)

	assert.Equal(t, CollectStats{Categories: 3, Records: 4}, stats)
	assert.Equal(t, 3, tree.PackageCount())
	assert.Equal(t, 4, tree.VersionCount())

	python := tree.FindPackage("dev-lang", "python")
	require.NotNil(t, python)
	assert.Equal(t, "3.12.1_p1", python.Best().String())
	assert.True(t, python.Find("3.12.1_p1").Restrict.Has(pkg.RestrictTest))
}

func TestCollector_RejectsBadVersions(t *testing.T) {
	b := &stubBackend{
		cats: []string{"app-misc"},
		recs: map[string][]pkg.Record{
			"app-misc": {
				{Category: "app-misc", Name: "good", Version: "1.0"},
				{Category: "app-misc", Name: "junk", Version: "1.0foo"},
				{Category: "app-misc", Name: "broken", Version: "1..0"},
			},
		},
	}

	t.Run("strict", func(t *testing.T) {
		logger := log.NewMemoryLogger()
		tree := pkg.NewTree()
		tree.AddOverlay("/repo", "")

		stats, err := (&Collector{Logger: logger}).Collect(tree, 0, b)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Records)
		assert.Equal(t, 2, stats.Rejected)
		assert.Equal(t, 2, logger.CountByLevel(log.LevelWarn))
		assert.True(t, logger.HasMessage("app-misc/junk-1.0foo"))
	})

	t.Run("accept garbage", func(t *testing.T) {
		tree := pkg.NewTree()
		tree.AddOverlay("/repo", "")

		c := &Collector{Parser: version.Parser{AcceptGarbage: true}}
		stats, err := c.Collect(tree, 0, b)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Records)
		assert.Equal(t, 1, stats.Rejected)
		require.NotNil(t, tree.FindPackage("app-misc", "junk"))
	})
}

func TestCollector_AggregatesFailures(t *testing.T) {
	errDisk := errors.New("input/output error")
	b := &stubBackend{
		cats: []string{"a-cat", "b-cat", "c-cat"},
		recs: map[string][]pkg.Record{
			"b-cat": {{Category: "b-cat", Name: "ok", Version: "2"}},
		},
		broken: map[string]error{"a-cat": errDisk, "c-cat": errDisk},
	}

	tree := pkg.NewTree()
	tree.AddOverlay("/repo", "")
	stats, err := (&Collector{}).Collect(tree, 0, b)

	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.ErrorIs(t, err, errDisk)

	assert.Equal(t, 2, stats.Failed)
	assert.Equal(t, 1, stats.Categories)
	assert.NotNil(t, tree.FindPackage("b-cat", "ok"), "healthy categories are still collected")
}

func TestCollector_CategoryListFailure(t *testing.T) {
	errList := errors.New("no categories")
	b := &stubBackend{catErr: errList}

	_, err := (&Collector{}).Collect(pkg.NewTree(), 0, b)
	assert.ErrorIs(t, err, errList)
}

func TestCollector_OverlayRange(t *testing.T) {
	b := &stubBackend{
		cats: []string{"app-misc"},
		recs: map[string][]pkg.Record{"app-misc": {{Category: "app-misc", Name: "x", Version: "1"}}},
	}

	// no overlay registered at index 3
	stats, err := (&Collector{}).Collect(pkg.NewTree(), 3, b)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Rejected)
}

func TestCollectStats_Add(t *testing.T) {
	s := CollectStats{Categories: 1, Records: 2}
	s.Add(CollectStats{Categories: 2, Failed: 1, Records: 3, Rejected: 4})
	assert.Equal(t, CollectStats{Categories: 3, Failed: 1, Records: 5, Rejected: 4}, s)
}
