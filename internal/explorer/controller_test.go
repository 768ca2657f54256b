package explorer

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/naka-gawa/gsoc-explorer/internal/domain"
	"github.com/naka-gawa/gsoc-explorer/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discard = log.New(io.Discard, "", 0)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, f domain.Filter) ([]domain.Repository, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func filterFor(lang string) domain.Filter {
	f := domain.DefaultFilter()
	f.Language = lang
	return f
}

func reposNamed(names ...string) []domain.Repository {
	repos := make([]domain.Repository, 0, len(names))
	for _, n := range names {
		repos = append(repos, domain.Repository{FullName: n})
	}
	return repos
}

func TestController_DebouncesRapidChanges(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything).Return(reposNamed("o/go"), nil)

	ctrl := NewController(context.Background(), fetcher, domain.DefaultFilter(), 30*time.Millisecond, discard, nil)
	defer ctrl.Close()

	ctrl.SetFilter(filterFor("Rust"))
	ctrl.SetFilter(filterFor("Python"))
	ctrl.SetFilter(filterFor("Go"))

	assert.Eventually(t, func() bool {
		s := ctrl.Snapshot()
		return !s.IsLoading && len(s.Repositories) == 1
	}, time.Second, 5*time.Millisecond)
	// Give any wrongly scheduled timers a chance to fire.
	time.Sleep(100 * time.Millisecond)

	fetcher.AssertNumberOfCalls(t, "Fetch", 1)
	fetcher.AssertCalled(t, "Fetch", mock.Anything, filterFor("Go"))
}

func TestController_MissingToken(t *testing.T) {
	aggregator := usecase.NewAggregator(nil, discard)
	ctrl := NewController(context.Background(), aggregator, domain.DefaultFilter(), time.Hour, discard, nil)
	defer ctrl.Close()

	ctrl.Refresh()

	s := ctrl.Snapshot()
	assert.Equal(t, "GitHub token is not configured. Please check your environment variables.", s.Error)
	assert.Empty(t, s.Repositories)
	assert.False(t, s.IsLoading)
}

func TestController_ReplacesResults(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, filterFor("Go")).Return(reposNamed("o/a", "o/b"), nil).Once()
	fetcher.On("Fetch", mock.Anything, filterFor("Go")).Return(nil, errors.New("Failed to fetch repositories: boom")).Once()
	fetcher.On("Fetch", mock.Anything, filterFor("Go")).Return(reposNamed("o/c"), nil).Once()

	ctrl := NewController(context.Background(), fetcher, filterFor("Go"), time.Hour, discard, nil)
	defer ctrl.Close()

	ctrl.Refresh()
	assert.Len(t, ctrl.Snapshot().Repositories, 2)

	ctrl.Refresh()
	s := ctrl.Snapshot()
	assert.Empty(t, s.Repositories)
	assert.Equal(t, "Failed to fetch repositories: boom", s.Error)

	ctrl.Refresh()
	s = ctrl.Snapshot()
	assert.Equal(t, reposNamed("o/c"), s.Repositories)
	assert.Empty(t, s.Error)
	fetcher.AssertExpectations(t)
}

func TestController_DiscardsStaleResults(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, filterFor("Slow")).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(reposNamed("o/stale"), nil)
	fetcher.On("Fetch", mock.Anything, filterFor("Fast")).Return(reposNamed("o/fresh"), nil)

	ctrl := NewController(context.Background(), fetcher, filterFor("Slow"), time.Hour, discard, nil)
	defer ctrl.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ctrl.Refresh()
	}()
	<-started

	ctrl.SetFilter(filterFor("Fast"))
	ctrl.Refresh()
	assert.Equal(t, reposNamed("o/fresh"), ctrl.Snapshot().Repositories)
	assert.False(t, ctrl.Snapshot().IsLoading)

	close(release)
	wg.Wait()

	s := ctrl.Snapshot()
	assert.Equal(t, reposNamed("o/fresh"), s.Repositories)
	assert.Equal(t, filterFor("Fast"), s.Filter)
}

func TestController_NotifiesLoadingTransitions(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything).Return(reposNamed("o/a"), nil)

	var mu sync.Mutex
	var loading []bool
	onChange := func(s State) {
		mu.Lock()
		defer mu.Unlock()
		loading = append(loading, s.IsLoading)
	}

	ctrl := NewController(context.Background(), fetcher, domain.DefaultFilter(), time.Hour, discard, onChange)
	defer ctrl.Close()
	ctrl.Update(func(f *domain.Filter) { f.GSOCOnly = true })
	ctrl.Refresh()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []bool{true, false}, loading)
	assert.True(t, ctrl.Snapshot().Filter.GSOCOnly)
}

func TestController_ManualRefreshCancelsPendingFetch(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, filterFor("Go")).Return(reposNamed("o/go"), nil)

	ctrl := NewController(context.Background(), fetcher, domain.DefaultFilter(), 50*time.Millisecond, discard, nil)
	defer ctrl.Close()

	ctrl.SetFilter(filterFor("Go"))
	ctrl.Refresh()
	assert.Equal(t, reposNamed("o/go"), ctrl.Snapshot().Repositories)

	// Wait well past the settle delay.
	time.Sleep(150 * time.Millisecond)
	fetcher.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestController_DeliversNewestStateLast(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything).Return(reposNamed("o/a"), nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	var delivered []State
	first := true
	onChange := func(s State) {
		mu.Lock()
		block := first
		first = false
		mu.Unlock()
		if block {
			close(entered)
			<-release
		}
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, s)
	}

	ctrl := NewController(context.Background(), fetcher, domain.DefaultFilter(), time.Hour, discard, onChange)
	defer ctrl.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ctrl.Refresh()
	}()
	<-entered

	// The first loading snapshot is stuck in onChange while a newer fetch settles.
	ctrl.Refresh()
	assert.False(t, ctrl.Snapshot().IsLoading)

	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, delivered)
	last := delivered[len(delivered)-1]
	assert.False(t, last.IsLoading)
	assert.Equal(t, reposNamed("o/a"), last.Repositories)
	assert.Equal(t, ctrl.Snapshot(), last)
}
