package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/models"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
)

// maxRentalSlots caps how many contiguous half hours one booking may span.
const maxRentalSlots = 6

type rentalStore interface {
	Create(ctx context.Context, exec sqlx.ExtContext, rental *models.Rental) error
	FindByID(ctx context.Context, id string) (*models.Rental, error)
	MarkCancelled(ctx context.Context, exec sqlx.ExtContext, id string, reason *string, cancelledAt time.Time) error
	List(ctx context.Context, query models.RentalFilter) ([]models.RentalDetail, error)
	ListElapsedReserved(ctx context.Context, today time.Time, nowClock string) ([]models.Rental, error)
	MarkCompleted(ctx context.Context, exec sqlx.ExtContext, id string) (bool, error)
}

type rentalSlotStore interface {
	FindForRental(ctx context.Context, courtID string, date time.Time, startTimes []string) ([]models.Slot, error)
	FindByID(ctx context.Context, id string) (*models.Slot, error)
	ClaimForRental(ctx context.Context, exec sqlx.ExtContext, slotID string) (bool, error)
	ReleaseRented(ctx context.Context, exec sqlx.ExtContext, slotID string) (bool, error)
}

type rentalMemberReader interface {
	FindByID(ctx context.Context, id string) (*models.Member, error)
}

// RentalService books contiguous slot blocks for members and manages the
// rental lifecycle.
type RentalService struct {
	rentals   rentalStore
	slots     rentalSlotStore
	members   rentalMemberReader
	tx        txProvider
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewRentalService wires rental dependencies.
func NewRentalService(
	rentals rentalStore,
	slots rentalSlotStore,
	members rentalMemberReader,
	tx txProvider,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *RentalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RentalService{
		rentals:   rentals,
		slots:     slots,
		members:   members,
		tx:        tx,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Reserve books the requested slots for a member. The block must be 1 to 6
// slots, all on the same court and date, strictly contiguous and currently
// free. The whole booking succeeds or fails as a unit.
func (s *RentalService) Reserve(ctx context.Context, req dto.ReserveRentalRequest) ([]models.Rental, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid rental request")
	}
	if len(req.Slots) > maxRentalSlots {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("a rental may span at most %d slots", maxRentalSlots))
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD")
	}

	member, err := s.members.FindByID(ctx, req.MemberID)
	if err != nil {
		return nil, mapLookupError(err, "member not found")
	}
	if member.Status != models.MemberActive {
		return nil, appErrors.Clone(appErrors.ErrConflict, "member is not active")
	}

	requested := make([]dto.RentalSlotRequest, len(req.Slots))
	copy(requested, req.Slots)
	sort.Slice(requested, func(i, j int) bool { return requested[i].StartTime < requested[j].StartTime })
	startTimes := make([]string, 0, len(requested))
	for i, candidate := range requested {
		start, end, err := models.ValidateClockWindow(candidate.StartTime, candidate.EndTime)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
		if end-start != slotHalfHour {
			return nil, appErrors.Clone(appErrors.ErrValidation, "each slot must span exactly 30 minutes")
		}
		if i > 0 && requested[i-1].EndTime != candidate.StartTime {
			return nil, appErrors.Clone(appErrors.ErrConflict, "requested slots must be contiguous")
		}
		startTimes = append(startTimes, candidate.StartTime)
	}

	found, err := s.slots.FindForRental(ctx, req.CourtID, date, startTimes)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load requested slots")
	}
	if len(found) != len(requested) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "one or more requested slots do not exist")
	}
	for _, slot := range found {
		if slot.State != models.SlotFree {
			return nil, appErrors.Clone(appErrors.ErrConflict,
				fmt.Sprintf("slot %s is not available", slot.StartTime))
		}
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "begin reservation")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rentals := make([]models.Rental, 0, len(found))
	for _, slot := range found {
		claimed, claimErr := s.slots.ClaimForRental(ctx, tx, slot.ID)
		if claimErr != nil {
			err = appErrors.Wrap(claimErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "claim slot")
			return nil, err
		}
		if !claimed {
			err = appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("slot %s was just taken", slot.StartTime))
			return nil, err
		}
		rental := models.Rental{MemberID: req.MemberID, SlotID: slot.ID}
		if createErr := s.rentals.Create(ctx, tx, &rental); createErr != nil {
			err = appErrors.Wrap(createErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create rental")
			return nil, err
		}
		rentals = append(rentals, rental)
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "commit reservation")
		return nil, err
	}

	s.metrics.AddRentalsReserved(len(rentals))
	if cacheErr := s.cache.Invalidate(ctx, "slots:*"); cacheErr != nil {
		s.logger.Warn("slot cache invalidation failed", zap.Error(cacheErr))
	}
	s.logger.Info("rental reserved",
		zap.String("member_id", req.MemberID),
		zap.String("court_id", req.CourtID),
		zap.String("date", req.Date),
		zap.Int("slots", len(rentals)),
	)
	return rentals, nil
}

// Cancel flips a reserved rental to cancelled and frees its slot. Rentals
// that already left the reserved state cannot be cancelled again.
func (s *RentalService) Cancel(ctx context.Context, rentalID string, req dto.CancelRentalRequest) (*models.Rental, error) {
	rental, err := s.rentals.FindByID(ctx, rentalID)
	if err != nil {
		return nil, mapLookupError(err, "rental not found")
	}
	if rental.State == models.RentalCancelled {
		return nil, appErrors.Clone(appErrors.ErrConflict, "rental is already cancelled")
	}
	if rental.State != models.RentalReserved {
		return nil, appErrors.Clone(appErrors.ErrConflict, "only reserved rentals can be cancelled")
	}

	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}
	cancelledAt := s.now().UTC()

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "begin cancellation")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.rentals.MarkCancelled(ctx, tx, rentalID, reason, cancelledAt); err != nil {
		err = mapLookupError(err, "rental not found")
		return nil, err
	}
	released, releaseErr := s.slots.ReleaseRented(ctx, tx, rental.SlotID)
	if releaseErr != nil {
		err = appErrors.Wrap(releaseErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "release slot")
		return nil, err
	}
	if !released {
		s.logger.Warn("cancelled rental slot was not in rented state", zap.String("slot_id", rental.SlotID))
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "commit cancellation")
		return nil, err
	}

	rental.State = models.RentalCancelled
	rental.CancelReason = reason
	rental.CancelledAt = &cancelledAt

	s.metrics.IncRentalCancelled()
	if cacheErr := s.cache.Invalidate(ctx, "slots:*"); cacheErr != nil {
		s.logger.Warn("slot cache invalidation failed", zap.Error(cacheErr))
	}
	s.logger.Info("rental cancelled", zap.String("rental_id", rentalID))
	return rental, nil
}

// Get loads one rental.
func (s *RentalService) Get(ctx context.Context, rentalID string) (*models.Rental, error) {
	rental, err := s.rentals.FindByID(ctx, rentalID)
	if err != nil {
		return nil, mapLookupError(err, "rental not found")
	}
	return rental, nil
}

// List returns rental details, optionally filtered by member and state.
func (s *RentalService) List(ctx context.Context, query dto.RentalQuery) ([]models.RentalDetail, error) {
	filter := models.RentalFilter{MemberID: query.MemberID}
	if query.State != "" {
		state, err := models.ParseRentalState(query.State)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
		}
		filter.State = state
	}
	details, err := s.rentals.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list rentals")
	}
	return details, nil
}

// CompleteElapsed closes reserved rentals whose slot end time already passed.
// It is invoked periodically by the background sweep.
func (s *RentalService) CompleteElapsed(ctx context.Context) (int, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	nowClock := models.FormatClock(now.Hour()*60 + now.Minute())

	elapsed, err := s.rentals.ListElapsedReserved(ctx, today, nowClock)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list elapsed rentals")
	}
	completed := 0
	for _, rental := range elapsed {
		done, markErr := s.rentals.MarkCompleted(ctx, nil, rental.ID)
		if markErr != nil {
			s.logger.Warn("rental completion failed", zap.String("rental_id", rental.ID), zap.Error(markErr))
			continue
		}
		if done {
			completed++
		}
	}
	s.metrics.AddRentalsCompleted(completed)
	if completed > 0 {
		s.logger.Info("rental sweep completed rentals", zap.Int("count", completed))
	}
	return completed, nil
}
