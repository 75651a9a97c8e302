package usecase

import (
	"context"

	"beneficiary-registry/internal/converter"
	"beneficiary-registry/internal/delivery/dto"
	"beneficiary-registry/internal/domain/entity"
	"beneficiary-registry/internal/domain/repository"
	"beneficiary-registry/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LookupUsecase interface {
	List(ctx context.Context, table entity.LookupTable) ([]dto.LookupResponse, error)
}

type lookupUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	lookupRepo repository.LookupRepository
	cache      *service.LookupCache
}

func NewLookupUsecase(db *gorm.DB, log *logrus.Logger, lookupRepo repository.LookupRepository, cache *service.LookupCache) LookupUsecase {
	return &lookupUsecase{
		db:         db,
		log:        log,
		lookupRepo: lookupRepo,
		cache:      cache,
	}
}

// List returns the options of a lookup table sorted by label, served from the
// cache when possible.
func (u *lookupUsecase) List(ctx context.Context, table entity.LookupTable) ([]dto.LookupResponse, error) {
	options, ok := u.cache.Get(ctx, table)
	if !ok {
		var err error
		options, err = u.lookupRepo.FindAll(u.db.WithContext(ctx), table)
		if err != nil {
			u.log.Warnf("Failed to find %s options: %+v", table.Name, err)
			return nil, err
		}
		u.cache.Set(ctx, table, options)
	}

	return converter.LookupOptionsToResponses(table, options), nil
}
