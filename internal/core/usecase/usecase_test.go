package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"invest-project/internal/core/domain"
	"invest-project/internal/core/proforma"
	"invest-project/internal/core/rentindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeListingSource struct {
	records []domain.PropertyRecord
	err     error
}

func (s *fakeListingSource) FetchProperties(ctx context.Context) ([]domain.PropertyRecord, error) {
	return s.records, s.err
}

type fakeAnalysisQueue struct {
	enqueued []domain.PropertyRecord
	failFor  string // property_id, на котором очередь отдаёт ошибку
}

func (q *fakeAnalysisQueue) Enqueue(ctx context.Context, record domain.PropertyRecord) error {
	if record.PropertyID == q.failFor {
		return fmt.Errorf("queue unavailable")
	}
	q.enqueued = append(q.enqueued, record)
	return nil
}

type fakeProFormaQueue struct {
	enqueued []domain.ProFormaRecord
	err      error
}

func (q *fakeProFormaQueue) Enqueue(ctx context.Context, record domain.ProFormaRecord) error {
	if q.err != nil {
		return q.err
	}
	q.enqueued = append(q.enqueued, record)
	return nil
}

type fakeLastRunRepo struct {
	setKey  string
	setTime time.Time
}

func (r *fakeLastRunRepo) GetLastRunTimestamp(ctx context.Context, datasetName string) (time.Time, error) {
	return time.Time{}, nil
}

func (r *fakeLastRunRepo) SetLastRunTimestamp(ctx context.Context, datasetName string, t time.Time) error {
	r.setKey = datasetName
	r.setTime = t
	return nil
}

type fakeStorage struct {
	saved []domain.ProFormaRecord
	err   error
}

func (s *fakeStorage) Save(ctx context.Context, record domain.ProFormaRecord) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, record)
	return nil
}

func TestEnqueuePropertiesUseCase(t *testing.T) {
	source := &fakeListingSource{records: []domain.PropertyRecord{
		{PropertyID: "P1"},
		{PropertyID: "P2"},
		{PropertyID: "P3"},
	}}
	queue := &fakeAnalysisQueue{failFor: "P2"}
	lastRun := &fakeLastRunRepo{}

	uc := NewEnqueuePropertiesUseCase(source, queue, lastRun, "csv")
	require.NoError(t, uc.Execute(context.Background()))

	// Ошибка очереди на одной записи не останавливает прогон.
	require.Len(t, queue.enqueued, 2)
	assert.Equal(t, "P1", queue.enqueued[0].PropertyID)
	assert.Equal(t, "P3", queue.enqueued[1].PropertyID)

	assert.Equal(t, "listings_ingest_csv", lastRun.setKey)
	assert.False(t, lastRun.setTime.IsZero())
}

func TestEnqueuePropertiesUseCaseSourceError(t *testing.T) {
	source := &fakeListingSource{err: fmt.Errorf("file not found")}
	queue := &fakeAnalysisQueue{}
	lastRun := &fakeLastRunRepo{}

	uc := NewEnqueuePropertiesUseCase(source, queue, lastRun, "csv")
	err := uc.Execute(context.Background())
	require.Error(t, err)
	assert.Empty(t, queue.enqueued)
	assert.Empty(t, lastRun.setKey) // время прогона не фиксируется
}

func newTestEngine() *proforma.Engine {
	ix := rentindex.Build([]string{"2024-07"}, []rentindex.Row{
		{Zip: "10001", State: "NY", Values: map[string]float64{"2024-07": 3000}},
	})
	return proforma.NewEngine(ix, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC))
}

func TestAnalyzePropertyUseCase(t *testing.T) {
	queue := &fakeProFormaQueue{}
	uc := NewAnalyzePropertyUseCase(newTestEngine(), queue)

	rec := domain.PropertyRecord{
		PropertyID: "P1",
		ZipCode:    "10001",
		State:      "NY",
		Beds:       2,
		FullBaths:  2,
		Sqft:       1200,
		YearBuilt:  2015,
		Style:      domain.StyleCondo,
		ListPrice:  500000,
	}
	require.NoError(t, uc.Execute(context.Background(), rec))

	require.Len(t, queue.enqueued, 1)
	assert.True(t, queue.enqueued[0].HasEstimate)
	assert.Greater(t, queue.enqueued[0].MonthlyRent, 0.0)
}

func TestAnalyzePropertyUseCasePublishesNoEstimate(t *testing.T) {
	queue := &fakeProFormaQueue{}
	uc := NewAnalyzePropertyUseCase(newTestEngine(), queue)

	// Неразрешимая локация: результат без оценки всё равно публикуется.
	rec := domain.PropertyRecord{PropertyID: "P2", ZipCode: "", State: "ZZ"}
	require.NoError(t, uc.Execute(context.Background(), rec))

	require.Len(t, queue.enqueued, 1)
	assert.False(t, queue.enqueued[0].HasEstimate)
	assert.Equal(t, "P2", queue.enqueued[0].PropertyID)
}

func TestAnalyzePropertyUseCaseQueueError(t *testing.T) {
	queue := &fakeProFormaQueue{err: fmt.Errorf("broker down")}
	uc := NewAnalyzePropertyUseCase(newTestEngine(), queue)

	err := uc.Execute(context.Background(), domain.PropertyRecord{PropertyID: "P1", ZipCode: "10001", State: "NY", ListPrice: 1})
	assert.Error(t, err)
}

func TestSaveProFormaUseCase(t *testing.T) {
	storage := &fakeStorage{}
	uc := NewSaveProFormaUseCase(storage)

	record := domain.ProFormaRecord{PropertyID: "P1"}
	require.NoError(t, uc.Execute(context.Background(), record))
	require.Len(t, storage.saved, 1)
	assert.Equal(t, "P1", storage.saved[0].PropertyID)

	storage.err = fmt.Errorf("db down")
	err := uc.Execute(context.Background(), record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "P1")
}
