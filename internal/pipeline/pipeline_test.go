package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/kumorigo/amedas-etl/internal/domain"
	"github.com/kumorigo/amedas-etl/internal/observability"
	"github.com/kumorigo/amedas-etl/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockExtractor struct {
	mu      sync.Mutex
	batches [][]domain.RawMessage
}

func (m *mockExtractor) ExtractBatch(ctx context.Context, _ int) ([]domain.RawMessage, error) {
	m.mu.Lock()
	if len(m.batches) > 0 {
		batch := m.batches[0]
		m.batches = m.batches[1:]
		m.mu.Unlock()
		return batch, nil
	}
	m.mu.Unlock()

	// Block until cancelled to simulate waiting for messages.
	<-ctx.Done()
	return nil, ctx.Err()
}

type failingExtractor struct {
	calls int
}

func (f *failingExtractor) ExtractBatch(ctx context.Context, _ int) ([]domain.RawMessage, error) {
	f.calls++
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return nil, errors.New("broker unavailable")
}

type mockTransformer struct {
	err error
}

func (m *mockTransformer) Transform(_ context.Context, raw domain.RawMessage) (domain.ObservationEvent, error) {
	if m.err != nil {
		return domain.ObservationEvent{}, m.err
	}
	return domain.ObservationEvent{
		ID:      string(raw.Key),
		Station: string(raw.Key),
	}, nil
}

type mockLoader struct {
	mu     sync.Mutex
	err    error
	loaded []domain.ObservationEvent
}

func (m *mockLoader) LoadBatch(_ context.Context, events []domain.ObservationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.loaded = append(m.loaded, events...)
	return nil
}

func (m *mockLoader) events() []domain.ObservationEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ObservationEvent(nil), m.loaded...)
}

func newTestMetrics() *observability.Metrics {
	// Fresh, unregistered metrics avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

func makeRawMessage(station string, commit func(ctx context.Context) error) domain.RawMessage {
	return domain.RawMessage{
		Key:    []byte(station),
		Value:  []byte(`{}`),
		Topic:  "raw-amedas-observations",
		Commit: commit,
	}
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	ext := &mockExtractor{batches: [][]domain.RawMessage{
		{makeRawMessage("44132", nil), makeRawMessage("11016", nil)},
	}}
	tfm := &mockTransformer{}
	ldr := &mockLoader{}

	p := pipeline.New(ext, tfm, ldr, slog.Default(), newTestMetrics(), 50)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)

	events := ldr.events()
	require.Len(t, events, 2)
	assert.Equal(t, "44132", events[0].Station)
	assert.Equal(t, "11016", events[1].Station)
	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ext := &mockExtractor{} // no batches, will block
	p := pipeline.New(ext, &mockTransformer{}, &mockLoader{}, slog.Default(), newTestMetrics(), 50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_TransformErrorSkipsAndCommits(t *testing.T) {
	committed := 0
	commit := func(_ context.Context) error {
		committed++
		return nil
	}

	ext := &mockExtractor{batches: [][]domain.RawMessage{
		{makeRawMessage("44132", commit)},
	}}
	tfm := &mockTransformer{err: errors.New("bad point file")}
	ldr := &mockLoader{}

	p := pipeline.New(ext, tfm, ldr, slog.Default(), newTestMetrics(), 50)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.events())
	// Poison messages are committed so they are not redelivered forever.
	assert.Equal(t, 1, committed)
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_LoadErrorLeavesOffsetsUncommitted(t *testing.T) {
	committed := 0
	commit := func(_ context.Context) error {
		committed++
		return nil
	}

	ext := &mockExtractor{batches: [][]domain.RawMessage{
		{makeRawMessage("44132", commit)},
	}}
	ldr := &mockLoader{err: errors.New("sink down")}

	p := pipeline.New(ext, &mockTransformer{}, ldr, slog.Default(), newTestMetrics(), 50)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, committed)
}

func TestPipeline_Run_CommitsAfterLoad(t *testing.T) {
	commitCalled := false
	commit := func(_ context.Context) error {
		commitCalled = true
		return nil
	}

	ext := &mockExtractor{batches: [][]domain.RawMessage{
		{makeRawMessage("44132", commit)},
	}}
	ldr := &mockLoader{}

	p := pipeline.New(ext, &mockTransformer{}, ldr, slog.Default(), newTestMetrics(), 50)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.True(t, commitCalled)
}

func TestPipeline_Run_ExtractErrorBacksOff(t *testing.T) {
	ext := &failingExtractor{}
	p := pipeline.New(ext, &mockTransformer{}, &mockLoader{}, slog.Default(), newTestMetrics(), 50)

	ctx, cancel := context.WithTimeout(context.Background(), 700*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := p.Run(ctx)
	require.NoError(t, err)

	// 200ms + 400ms backoff fits two retries inside the deadline; a tight
	// loop would rack up thousands of calls.
	assert.LessOrEqual(t, ext.calls, 4)
	assert.GreaterOrEqual(t, time.Since(start), 600*time.Millisecond)
}

func TestMultiLoader_StopsAtFirstError(t *testing.T) {
	first := &mockLoader{}
	second := &mockLoader{err: errors.New("mysql down")}
	third := &mockLoader{}

	ml := pipeline.MultiLoader{first, second, third}
	err := ml.LoadBatch(context.Background(), []domain.ObservationEvent{{ID: "x"}})
	require.Error(t, err)
	assert.Len(t, first.events(), 1)
	assert.Empty(t, third.events())
}
