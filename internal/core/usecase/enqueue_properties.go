package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"invest-project/internal/core/port"
)

const listingsDatasetName = "listings_ingest"

// EnqueuePropertiesUseCase инкапсулирует логику чтения таблицы
// листингов и постановки каждой записи в очередь задач анализа.
type EnqueuePropertiesUseCase struct {
	source      port.ListingSourcePort
	queue       port.AnalysisQueuePort
	lastRunRepo port.LastRunRepositoryPort
	sourceName  string // имя источника, например, "csv"
}

// NewEnqueuePropertiesUseCase создает новый экземпляр use case.
func NewEnqueuePropertiesUseCase(
	source port.ListingSourcePort,
	queue port.AnalysisQueuePort,
	lastRun port.LastRunRepositoryPort,
	sourceName string,
) *EnqueuePropertiesUseCase {
	return &EnqueuePropertiesUseCase{
		source:      source,
		queue:       queue,
		lastRunRepo: lastRun,
		sourceName:  sourceName,
	}
}

// Execute запускает процесс чтения листингов и постановки их в очередь.
func (uc *EnqueuePropertiesUseCase) Execute(ctx context.Context) error {
	log.Printf("EnqueuePropertiesUseCase: Starting to fetch listings from source '%s'\n", uc.sourceName)

	records, err := uc.source.FetchProperties(ctx)
	if err != nil {
		return fmt.Errorf("use case: error fetching listings from source '%s': %w", uc.sourceName, err)
	}

	enqueued := 0
	for _, record := range records {
		if err := uc.queue.Enqueue(ctx, record); err != nil {
			// Плохая очередь для одной записи не должна останавливать
			// весь прогон: пропускаем запись и идём дальше.
			log.Printf("EnqueuePropertiesUseCase: Error enqueuing property %s: %v. Skipping.\n", record.PropertyID, err)
			continue
		}
		enqueued++
	}

	// Фиксируем время загрузки набора, чтобы по нему можно было
	// отличить свежий прогон от устаревшего.
	datasetKey := fmt.Sprintf("%s_%s", listingsDatasetName, uc.sourceName)
	if enqueued > 0 {
		now := time.Now().UTC()
		if err := uc.lastRunRepo.SetLastRunTimestamp(ctx, datasetKey, now); err != nil {
			log.Printf("EnqueuePropertiesUseCase: Error setting last run timestamp for '%s': %v\n", datasetKey, err)
		}
	}

	log.Printf("EnqueuePropertiesUseCase: Finished. Listings read: %d, enqueued: %d\n", len(records), enqueued)
	return nil
}
