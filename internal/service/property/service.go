package property

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"kejani-backend/internal/domain"
	"kejani-backend/internal/pkg/cache"
	"kejani-backend/internal/repository"
	"kejani-backend/internal/service/email"
)

// Notifier is poked whenever a mutation may have changed a badge count.
type Notifier interface {
	Poke()
}

// Service is the only sanctioned write path for properties. Every state
// transition, cache invalidation and change-feed publication funnels
// through here.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	GetOwnerContact(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.OwnerContact, error)
	List(ctx context.Context, filter domain.PropertyFilter, pageSize int, cursor string) (domain.CursorPage[domain.Property], error)
	Search(ctx context.Context, term string, filter domain.PropertyFilter) ([]domain.Property, error)
	Featured(ctx context.Context, limit int) ([]domain.Property, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Property, error)
	PendingVerifications(ctx context.Context, verifier *domain.User) ([]domain.Property, error)

	Create(ctx context.Context, ownerID uuid.UUID, input domain.CreatePropertyInput) (*domain.Property, error)
	CreateFeatured(ctx context.Context, actor *domain.User, ownerID uuid.UUID, input domain.CreatePropertyInput) (*domain.Property, error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdatePropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error
	Verify(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Property, error)
	Reject(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Property, error)

	SetNotifier(n Notifier)
}

type service struct {
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository
	auditRepo    repository.AuditLogRepository
	feed         repository.PropertyFeed
	cache        *cache.Cache
	emailSvc     email.Service
	notifier     Notifier
}

func NewService(
	propertyRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	feed repository.PropertyFeed,
	c *cache.Cache,
	emailSvc email.Service,
) Service {
	return &service{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		feed:         feed,
		cache:        c,
		emailSvc:     emailSvc,
	}
}

func (s *service) SetNotifier(n Notifier) {
	s.notifier = n
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	key := cache.DetailKey(id.String())
	var cached domain.Property
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if property == nil {
		return nil, domain.ErrPropertyNotFound
	}

	_ = s.cache.Set(ctx, key, property)
	return property, nil
}

func (s *service) GetOwnerContact(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.OwnerContact, error) {
	if actor == nil || !actor.HasRole("agent") {
		return nil, domain.ErrUnauthorized
	}
	contact, err := s.propertyRepo.GetOwnerContact(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if contact == nil {
		return nil, domain.ErrPropertyNotFound
	}
	return contact, nil
}

func (s *service) List(ctx context.Context, filter domain.PropertyFilter, pageSize int, cursor string) (domain.CursorPage[domain.Property], error) {
	var page domain.CursorPage[domain.Property]

	if err := filter.Validate(); err != nil {
		return page, err
	}
	decoded, err := domain.DecodeCursor(cursor)
	if err != nil {
		return page, err
	}
	pageSize = domain.ClampPageSize(pageSize)

	fields := filter.Fields()
	fields["page_size"] = strconv.Itoa(pageSize)
	if cursor != "" {
		fields["cursor"] = cursor
	}
	key := s.cache.NamespacedKey(ctx, cache.NamespaceList, fields)
	if hit, err := s.cache.Get(ctx, key, &page); err == nil && hit {
		return page, nil
	}

	items, hasMore, err := s.propertyRepo.List(ctx, filter, pageSize, decoded)
	if err != nil {
		return page, storeErr(err)
	}

	page = domain.CursorPage[domain.Property]{Items: items, HasMore: hasMore}
	if hasMore && len(items) > 0 {
		last := items[len(items)-1]
		next := domain.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
		page.NextCursor = &next
	}

	_ = s.cache.Set(ctx, key, page)
	return page, nil
}

func (s *service) Search(ctx context.Context, term string, filter domain.PropertyFilter) ([]domain.Property, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	fields := filter.Fields()
	fields["term"] = term
	key := s.cache.NamespacedKey(ctx, cache.NamespaceSearch, fields)
	var cached []domain.Property
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	results, err := s.propertyRepo.Search(ctx, term, filter, domain.MaxPageSize)
	if err != nil {
		return nil, storeErr(err)
	}

	_ = s.cache.Set(ctx, key, results)
	return results, nil
}

func (s *service) Featured(ctx context.Context, limit int) ([]domain.Property, error) {
	if limit < 1 {
		limit = 6
	}

	key := s.cache.NamespacedKey(ctx, cache.NamespaceFeatured, map[string]string{"limit": strconv.Itoa(limit)})
	var cached []domain.Property
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	results, err := s.propertyRepo.Featured(ctx, limit)
	if err != nil {
		return nil, storeErr(err)
	}

	_ = s.cache.Set(ctx, key, results)
	return results, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Property, error) {
	key := s.cache.NamespacedKey(ctx, cache.NamespaceOwner, map[string]string{"owner": ownerID.String()})
	var cached []domain.Property
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	results, err := s.propertyRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, storeErr(err)
	}

	_ = s.cache.Set(ctx, key, results)
	return results, nil
}

// PendingVerifications computes the verification-request view for the
// verifier: pending submissions in their region. Admins with no region
// see the full pending queue.
func (s *service) PendingVerifications(ctx context.Context, verifier *domain.User) ([]domain.Property, error) {
	if verifier == nil || !verifier.HasRole("agent") {
		return nil, domain.ErrUnauthorized
	}

	var (
		results []domain.Property
		err     error
	)
	if verifier.Region != nil && *verifier.Region != "" {
		results, err = s.propertyRepo.PendingByRegion(ctx, *verifier.Region)
	} else {
		results, err = s.propertyRepo.PendingByRegion(ctx, "")
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input domain.CreatePropertyInput) (*domain.Property, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("%w: home owner id is required", domain.ErrInvalidEntity)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	property := newProperty(ownerID, input)
	property.VerificationStatus = domain.StatusPending
	property.IsVerified = false

	if err := s.propertyRepo.Create(ctx, property, input.OwnerContact); err != nil {
		return nil, storeErr(err)
	}

	s.afterWrite(ctx, ownerID, "CREATE", property, nil, domain.PropertyChange{
		Type:       domain.ChangeAdded,
		PropertyID: property.ID,
		Property:   property,
	})
	s.poke()
	return property, nil
}

// CreateFeatured is the trusted admin shortcut: the listing goes straight
// to verified, attributed to the acting admin.
func (s *service) CreateFeatured(ctx context.Context, actor *domain.User, ownerID uuid.UUID, input domain.CreatePropertyInput) (*domain.Property, error) {
	if actor == nil || !actor.HasRole("admin") {
		return nil, domain.ErrUnauthorized
	}
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("%w: home owner id is required", domain.ErrInvalidEntity)
	}
	if actor.ID == ownerID {
		return nil, domain.ErrSelfVerification
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	property := newProperty(ownerID, input)
	property.VerificationStatus = domain.StatusVerified
	property.IsVerified = true
	property.VerifiedBy = &actor.ID
	property.VerificationDate = &now

	if err := s.propertyRepo.Create(ctx, property, input.OwnerContact); err != nil {
		return nil, storeErr(err)
	}

	s.afterWrite(ctx, actor.ID, "CREATE_FEATURED", property, nil, domain.PropertyChange{
		Type:       domain.ChangeAdded,
		PropertyID: property.ID,
		Property:   property,
	})
	return property, nil
}

func (s *service) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdatePropertyInput) (*domain.Property, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if property == nil {
		return nil, domain.ErrPropertyNotFound
	}
	if actor == nil || (actor.ID != property.HomeOwnerID && !actor.HasRole("admin")) {
		return nil, domain.ErrUnauthorized
	}

	oldProperty := *property
	if !input.Apply(property) {
		return property, nil
	}

	if err := s.propertyRepo.Update(ctx, property); err != nil {
		return nil, storeErr(err)
	}

	_ = s.cache.Delete(ctx, cache.DetailKey(id.String()))
	s.afterWrite(ctx, actor.ID, "UPDATE", property, &oldProperty, domain.PropertyChange{
		Type:       domain.ChangeModified,
		PropertyID: property.ID,
		Property:   property,
	})
	return property, nil
}

func (s *service) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if property == nil {
		return domain.ErrPropertyNotFound
	}
	if actor == nil || (actor.ID != property.HomeOwnerID && !actor.HasRole("admin")) {
		return domain.ErrUnauthorized
	}

	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		return storeErr(err)
	}

	// Detail entry is purged outright, not left to go stale.
	_ = s.cache.Delete(ctx, cache.DetailKey(id.String()))
	s.afterWrite(ctx, actor.ID, "DELETE", property, property, domain.PropertyChange{
		Type:       domain.ChangeRemoved,
		PropertyID: id,
	})
	s.poke()
	return nil
}

func (s *service) Verify(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Property, error) {
	return s.decide(ctx, actor, id, domain.StatusVerified)
}

func (s *service) Reject(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.Property, error) {
	return s.decide(ctx, actor, id, domain.StatusRejected)
}

func (s *service) decide(ctx context.Context, actor *domain.User, id uuid.UUID, status domain.VerificationStatus) (*domain.Property, error) {
	if actor == nil || !actor.HasRole("agent") {
		return nil, domain.ErrUnauthorized
	}

	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if property == nil {
		return nil, domain.ErrPropertyNotFound
	}
	if actor.ID == property.HomeOwnerID {
		return nil, domain.ErrSelfVerification
	}
	if property.VerificationStatus.IsTerminal() {
		return nil, domain.ErrAlreadyTerminal
	}

	oldProperty := *property
	var verifiedAt *time.Time
	if status == domain.StatusVerified {
		now := time.Now().UTC()
		verifiedAt = &now
	}

	// Conditional write: only a pending row transitions. A lost race
	// surfaces as AlreadyTerminal rather than a silent overwrite.
	applied, err := s.propertyRepo.SetVerification(ctx, id, status, actor.ID, verifiedAt)
	if err != nil {
		return nil, storeErr(err)
	}
	if !applied {
		current, err := s.propertyRepo.GetByID(ctx, id)
		if err != nil {
			return nil, storeErr(err)
		}
		if current == nil {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, domain.ErrAlreadyTerminal
	}

	property.VerificationStatus = status
	property.IsVerified = status == domain.StatusVerified
	property.VerifiedBy = &actor.ID
	property.VerificationDate = verifiedAt
	property.UpdatedAt = time.Now().UTC()

	action := "VERIFY"
	if status == domain.StatusRejected {
		action = "REJECT"
	}
	s.afterWrite(ctx, actor.ID, action, property, &oldProperty, domain.PropertyChange{
		Type:       domain.ChangeModified,
		PropertyID: property.ID,
		Property:   property,
	})
	s.poke()
	s.notifyOwner(property, status)
	return property, nil
}

func newProperty(ownerID uuid.UUID, input domain.CreatePropertyInput) *domain.Property {
	availability := input.Availability
	if availability == "" {
		availability = domain.Available
	}
	return &domain.Property{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		Location:     input.Location,
		Region:       input.Region,
		Town:         input.Town,
		Price:        input.Price,
		PropertyType: input.PropertyType,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		Area:         input.Area,
		StayDuration: input.StayDuration,
		Features:     pq.StringArray(input.Features),
		Images:       pq.StringArray(input.Images),
		HomeOwnerID:  ownerID,
		Availability: availability,
	}
}

// afterWrite runs the post-acknowledgment steps shared by every
// mutation: audit entry, listing-cache invalidation, feed publication.
func (s *service) afterWrite(ctx context.Context, actorID uuid.UUID, action string, property, old *domain.Property, change domain.PropertyChange) {
	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     actorID,
		Action:     action,
		EntityType: "PROPERTY",
		EntityID:   property.ID,
		OldValue:   old,
		NewValue:   change.Property,
	})

	if err := s.cache.Invalidate(ctx, cache.ListingNamespaces...); err != nil {
		log.Printf("property service: cache invalidation failed: %v", err)
	}

	if s.feed != nil {
		if err := s.feed.Publish(ctx, change); err != nil {
			log.Printf("property service: feed publish failed: %v", err)
		}
	}
}

func (s *service) poke() {
	if s.notifier != nil {
		s.notifier.Poke()
	}
}

func (s *service) notifyOwner(property *domain.Property, status domain.VerificationStatus) {
	if s.emailSvc == nil {
		return
	}
	go func() {
		ctx := context.Background()
		owner, err := s.userRepo.GetByID(ctx, property.HomeOwnerID)
		if err != nil || owner == nil {
			return
		}
		if err := s.emailSvc.SendVerificationDecision(ctx, owner.Email, owner.FullName, property.Title, string(status)); err != nil {
			log.Printf("property service: decision email failed: %v", err)
		}
	}()
}
