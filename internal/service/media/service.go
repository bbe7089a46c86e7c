package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"kejani-backend/internal/config"
	"kejani-backend/internal/domain"
	"kejani-backend/internal/repository"
)

type Service interface {
	Upload(ctx context.Context, userID uuid.UUID, propertyID *uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Media, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Media, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.Media, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error
}

type service struct {
	mediaRepo   repository.MediaRepository
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(mediaRepo repository.MediaRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		mediaRepo:   mediaRepo,
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *service) Upload(ctx context.Context, userID uuid.UUID, propertyID *uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Media, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: only image uploads are accepted, got %s", domain.ErrInvalidEntity, mimeType)
	}

	mediaID := uuid.New()
	storagePath := fmt.Sprintf("properties/%s/%s", time.Now().Format("2006/01"), mediaID.String())

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	media := &domain.Media{
		ID:          mediaID,
		PropertyID:  propertyID,
		UploadedBy:  userID,
		FileName:    fileName,
		FileSize:    fileSize,
		MimeType:    mimeType,
		StoragePath: storagePath,
		URL:         s.publicURL(storagePath),
	}

	if err := s.mediaRepo.Create(ctx, media); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	return media, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Media, error) {
	return s.mediaRepo.GetByID(ctx, id)
}

func (s *service) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.Media, error) {
	return s.mediaRepo.ListByProperty(ctx, propertyID)
}

func (s *service) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if media == nil {
		return nil
	}
	if actor == nil || (media.UploadedBy != actor.ID && !actor.HasRole("admin")) {
		return domain.ErrUnauthorized
	}

	if err := s.mediaRepo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, media.StoragePath, minio.RemoveObjectOptions{})
	return nil
}

func (s *service) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}
