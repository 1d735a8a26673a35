package usecase

import (
	"context"
	"fmt"
	"log"

	"invest-project/internal/core/domain"
	"invest-project/internal/core/port"
	"invest-project/internal/core/proforma"
)

// AnalyzePropertyUseCase инкапсулирует обработку одного листинга:
// расчёт про-формы движком и отправку результата в следующую очередь.
type AnalyzePropertyUseCase struct {
	engine      *proforma.Engine
	resultQueue port.ProFormaQueuePort
}

// NewAnalyzePropertyUseCase создает новый экземпляр use case.
func NewAnalyzePropertyUseCase(
	engine *proforma.Engine,
	queue port.ProFormaQueuePort,
) *AnalyzePropertyUseCase {
	return &AnalyzePropertyUseCase{
		engine:      engine,
		resultQueue: queue,
	}
}

// Execute выполняет основную логику use case.
func (uc *AnalyzePropertyUseCase) Execute(ctx context.Context, record domain.PropertyRecord) error {
	pf := uc.engine.Analyze(record)

	if !pf.HasEstimate {
		// Запись без оценки всё равно уходит в хранилище: в витрине
		// должен быть виден каждый входной листинг.
		log.Printf("AnalyzePropertyUseCase: No rent estimate for property %s (zip %s, state %s)\n",
			record.PropertyID, record.ZipCode, record.State)
	}

	if err := uc.resultQueue.Enqueue(ctx, pf); err != nil {
		return fmt.Errorf("failed to enqueue pro-forma for property %s: %w", record.PropertyID, err)
	}

	return nil
}
