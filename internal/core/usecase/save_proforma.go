package usecase

import (
	"context"
	"fmt"
	"log"

	"invest-project/internal/core/domain"
	"invest-project/internal/core/port"
)

// SaveProFormaUseCase инкапсулирует логику сохранения ProFormaRecord.
type SaveProFormaUseCase struct {
	storage port.ProFormaStoragePort
}

// NewSaveProFormaUseCase создает новый экземпляр use case.
func NewSaveProFormaUseCase(storage port.ProFormaStoragePort) *SaveProFormaUseCase {
	return &SaveProFormaUseCase{
		storage: storage,
	}
}

// Execute сохраняет запись, используя порт хранилища.
func (uc *SaveProFormaUseCase) Execute(ctx context.Context, record domain.ProFormaRecord) error {
	if err := uc.storage.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save pro-forma for property %s: %w", record.PropertyID, err)
	}

	log.Printf("SaveProFormaUseCase: Successfully saved pro-forma for property %s\n", record.PropertyID)
	return nil
}
