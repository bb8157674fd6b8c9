package di

import (
	"treasure_backend/internal/feature/target/domain/catalog"
	"treasure_backend/internal/feature/validation/usecase"
	"treasure_backend/internal/platform/config"
	"treasure_backend/internal/platform/imageprep"
)

// NewValidationUsecase assembles the validation engine around an already wrapped describer.
func NewValidationUsecase(d usecase.Describer, cat *catalog.Catalog, cfg *config.Config) usecase.Validator {
	preparer := imageprep.NewPreparer(cfg.Image.MaxDimension, cfg.Image.JPEGQuality)
	return usecase.NewValidationUsecase(d, preparer, cat, usecase.Config{
		Timeout: cfg.Describer.Timeout,
		Locale:  cfg.Locale,
	})
}
