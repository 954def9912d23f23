//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory/delivery/http"
	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory/domain"
	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory/repository"
	"github.com/CCP-Proyecto/ccp-experimento/internal/inventory/usecase/command"
)

// ProvideInventoryRepository provides the traced inventory repository
func ProvideInventoryRepository(db *gorm.DB) domain.InventoryRepository {
	return repository.NewGormInventoryRepositoryWithTracing(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideInventoryRepository,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher command.AdjustmentPublisher) (*http.InventoryHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewInventoryHandler,
	)
	return nil, nil
}
