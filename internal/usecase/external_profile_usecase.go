package usecase

import (
	"context"

	"health-program-registry/internal/converter"
	"health-program-registry/internal/delivery/dto"
	"health-program-registry/internal/domain/repository"
	"health-program-registry/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ExternalProfileUsecase interface {
	GetClientProfile(ctx context.Context, clientID uuid.UUID) (*dto.ExternalClientProfile, error)
}

type externalProfileUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	clientRepo   repository.ClientRepository
	profileCache *service.ProfileCacheService
}

func NewExternalProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clientRepo repository.ClientRepository,
	profileCache *service.ProfileCacheService,
) ExternalProfileUsecase {
	return &externalProfileUsecase{
		db:           db,
		log:          log,
		clientRepo:   clientRepo,
		profileCache: profileCache,
	}
}

// GetClientProfile returns the data-minimized projection of a client and its
// program history, served from the cache when a fresh copy exists.
func (u *externalProfileUsecase) GetClientProfile(ctx context.Context, clientID uuid.UUID) (*dto.ExternalClientProfile, error) {
	if cached := u.profileCache.Get(ctx, clientID); cached != nil {
		return cached, nil
	}

	client, err := u.clientRepo.FindByIDWithEnrollments(u.db.WithContext(ctx), clientID)
	if err != nil {
		u.log.Warnf("Failed to find client %s: %+v", clientID, err)
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}

	profile := converter.ClientToExternalProfile(client)
	u.profileCache.Set(ctx, clientID, profile)

	return profile, nil
}
