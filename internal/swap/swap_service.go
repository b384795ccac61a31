package swap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-teamplanner/internal/employee"
	"go-teamplanner/internal/notification"
	"go-teamplanner/internal/shift"
	"go-teamplanner/internal/shared/contextutil"
	swaperrors "go-teamplanner/internal/swap/errors"
)

//go:generate mockgen -source=swap_service.go -destination=mock/swap_service_mock.go -package=mock
type Service interface {
	Request(ctx context.Context, companyID, requesterID string, req CreateSwapRequest) (SwapResponse, error)
	GetAll(ctx context.Context, companyID string) ([]SwapResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SwapResponse, error)
	Approve(ctx context.Context, companyID, deciderID, id string, req DecideSwapRequest) (SwapResponse, error)
	Reject(ctx context.Context, companyID, deciderID, id string, req DecideSwapRequest) (SwapResponse, error)
	Cancel(ctx context.Context, companyID, requesterID, id string) (SwapResponse, error)
}

// EmployeeDirectory resolves swap participants and their addresses.
type EmployeeDirectory interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	shifts    shift.Repository
	employees EmployeeDirectory
	notifier  notification.Dispatcher
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	shifts shift.Repository,
	employees EmployeeDirectory,
	notifier notification.Dispatcher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("swap.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("swap.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		shifts:    shifts,
		employees: employees,
		notifier:  notifier,
		logger:    l,
	}
}

func (s *service) Request(
	ctx context.Context,
	companyID, requesterID string,
	req CreateSwapRequest,
) (SwapResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("swap request received",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("shift_id", req.ShiftID),
	)

	sh, err := s.shifts.FindByIDAndCompany(ctx, companyID, req.ShiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SwapResponse{}, swaperrors.ErrShiftNotEligible
		}
		s.logger.Error("swap request shift lookup failed", zap.Error(err))
		return SwapResponse{}, err
	}
	if sh.Status == shift.StatusCancelled {
		return SwapResponse{}, swaperrors.ErrShiftNotEligible
	}
	if sh.EmployeeID.String() == req.TargetEmployeeID {
		return SwapResponse{}, swaperrors.ErrSelfSwap
	}

	target, err := s.employees.FindByIDAndCompany(ctx, companyID, req.TargetEmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SwapResponse{}, swaperrors.ErrTargetNotInCompany
		}
		s.logger.Error("swap request target lookup failed", zap.Error(err))
		return SwapResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("swap request begin tx failed", zap.Error(err))
		return SwapResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pending, err := qtx.HasPendingSwapForShift(ctx, companyID, req.ShiftID)
	if err != nil {
		s.logger.Error("swap request pending check failed", zap.Error(err))
		return SwapResponse{}, err
	}
	if pending {
		return SwapResponse{}, swaperrors.ErrDuplicateSwap
	}

	sr := &SwapRequest{
		ID:               uuid.New(),
		CompanyID:        uuid.MustParse(companyID),
		ShiftID:          sh.ID,
		RequesterID:      uuid.MustParse(requesterID),
		TargetEmployeeID: target.ID,
		Status:           StatusPending,
		Reason:           req.Reason,
	}

	if err := qtx.Create(ctx, sr); err != nil {
		s.logger.Error("swap request persist failed", zap.Error(err))
		return SwapResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("swap request commit failed", zap.Error(err))
		return SwapResponse{}, err
	}

	s.notifySwap(ctx, companyID, target, sr, notification.KindSwapRequested,
		"Shift swap requested",
		fmt.Sprintf("You have been asked to take over the shift on %s from %s to %s.",
			sh.StartAt.Format("Mon, 02 Jan 2006"),
			sh.StartAt.Format("15:04"),
			sh.EndAt.Format("15:04"),
		),
	)

	s.logger.Info("swap request created",
		zap.String("request_id", rid),
		zap.String("swap_id", sr.ID.String()),
	)

	return mapToResponse(*sr), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]SwapResponse, error) {
	swaps, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all swaps failed", zap.Error(err))
		return nil, err
	}
	res := make([]SwapResponse, len(swaps))
	for i, sr := range swaps {
		res[i] = mapToResponse(sr)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SwapResponse, error) {
	sr, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SwapResponse{}, swaperrors.ErrSwapNotFound
		}
		s.logger.Error("get swap by id failed", zap.Error(err))
		return SwapResponse{}, err
	}
	return mapToResponse(*sr), nil
}

// Approve reassigns the shift to the target employee in the same transaction
// that flips the swap status, so a leave approval reading either row sees a
// consistent picture.
func (s *service) Approve(
	ctx context.Context,
	companyID, deciderID, id string,
	req DecideSwapRequest,
) (SwapResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve swap begin tx failed", zap.Error(err))
		return SwapResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sr, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SwapResponse{}, swaperrors.ErrSwapNotFound
		}
		s.logger.Error("approve swap fetch failed", zap.Error(err))
		return SwapResponse{}, err
	}
	if sr.Status != StatusPending {
		return SwapResponse{}, swaperrors.ErrSwapNotPending
	}

	shiftTx := s.shifts.WithTx(tx)
	sh, err := shiftTx.FindByIDAndCompany(ctx, companyID, sr.ShiftID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SwapResponse{}, swaperrors.ErrShiftNotEligible
		}
		s.logger.Error("approve swap shift fetch failed", zap.Error(err))
		return SwapResponse{}, err
	}
	if sh.Status == shift.StatusCancelled {
		return SwapResponse{}, swaperrors.ErrShiftNotEligible
	}

	sh.EmployeeID = sr.TargetEmployeeID
	if err := shiftTx.Update(ctx, sh); err != nil {
		s.logger.Error("approve swap reassign shift failed", zap.Error(err))
		return SwapResponse{}, err
	}

	if err := s.decide(ctx, qtx, sr, deciderID, StatusApproved, req.Note); err != nil {
		return SwapResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve swap commit failed", zap.Error(err))
		return SwapResponse{}, err
	}

	if requester, lookupErr := s.employees.FindByIDAndCompany(ctx, companyID, sr.RequesterID.String()); lookupErr == nil {
		s.notifySwap(ctx, companyID, requester, sr, notification.KindSwapApproved,
			"Shift swap approved",
			fmt.Sprintf("Your swap request for the shift on %s was approved.",
				sh.StartAt.Format("Mon, 02 Jan 2006")),
		)
	}

	s.logger.Info("swap approved",
		zap.String("swap_id", id),
		zap.String("shift_id", sr.ShiftID.String()),
	)

	return mapToResponse(*sr), nil
}

func (s *service) Reject(
	ctx context.Context,
	companyID, deciderID, id string,
	req DecideSwapRequest,
) (SwapResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject swap begin tx failed", zap.Error(err))
		return SwapResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sr, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SwapResponse{}, swaperrors.ErrSwapNotFound
		}
		s.logger.Error("reject swap fetch failed", zap.Error(err))
		return SwapResponse{}, err
	}
	if sr.Status != StatusPending {
		return SwapResponse{}, swaperrors.ErrSwapNotPending
	}

	if err := s.decide(ctx, qtx, sr, deciderID, StatusRejected, req.Note); err != nil {
		return SwapResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reject swap commit failed", zap.Error(err))
		return SwapResponse{}, err
	}

	if requester, lookupErr := s.employees.FindByIDAndCompany(ctx, companyID, sr.RequesterID.String()); lookupErr == nil {
		s.notifySwap(ctx, companyID, requester, sr, notification.KindSwapRejected,
			"Shift swap rejected",
			"Your shift swap request was rejected.",
		)
	}

	s.logger.Info("swap rejected", zap.String("swap_id", id))

	return mapToResponse(*sr), nil
}

func (s *service) Cancel(ctx context.Context, companyID, requesterID, id string) (SwapResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel swap begin tx failed", zap.Error(err))
		return SwapResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sr, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SwapResponse{}, swaperrors.ErrSwapNotFound
		}
		s.logger.Error("cancel swap fetch failed", zap.Error(err))
		return SwapResponse{}, err
	}
	if sr.Status != StatusPending {
		return SwapResponse{}, swaperrors.ErrSwapNotPending
	}
	if sr.RequesterID.String() != requesterID {
		return SwapResponse{}, swaperrors.ErrSwapNotFound
	}

	if err := s.decide(ctx, qtx, sr, requesterID, StatusCancelled, ""); err != nil {
		return SwapResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel swap commit failed", zap.Error(err))
		return SwapResponse{}, err
	}

	s.logger.Info("swap cancelled", zap.String("swap_id", id))

	return mapToResponse(*sr), nil
}

func (s *service) decide(ctx context.Context, repo Repository, sr *SwapRequest, deciderID, status, note string) error {
	decidedAt := time.Now().UTC()
	decider := uuid.MustParse(deciderID)
	sr.Status = status
	sr.DecisionNote = note
	sr.DecidedBy = &decider
	sr.DecidedAt = &decidedAt

	if err := repo.Update(ctx, sr); err != nil {
		s.logger.Error("swap decision persist failed",
			zap.String("swap_id", sr.ID.String()),
			zap.String("status", status),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) notifySwap(
	ctx context.Context,
	companyID string,
	recipient *employee.Employee,
	sr *SwapRequest,
	kind notification.Kind,
	title, message string,
) {
	if s.notifier == nil {
		return
	}

	swapID := sr.ID.String()
	shiftID := sr.ShiftID.String()
	in := notification.NotifyInput{
		Recipient: notification.Recipient{
			UserID: recipient.ID.String(),
			Email:  recipient.Email,
		},
		Kind:      kind,
		Title:     title,
		Message:   message,
		ShiftID:   &shiftID,
		SwapID:    &swapID,
		ActionURL: "/swaps/" + swapID,
		Email: &notification.EmailContent{
			Subject:  title,
			TextBody: message,
		},
	}

	if _, err := s.notifier.Notify(ctx, companyID, in); err != nil {
		s.logger.Warn("swap notification rejected",
			zap.String("swap_id", swapID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

func mapToResponse(sr SwapRequest) SwapResponse {
	resp := SwapResponse{
		ID:               sr.ID.String(),
		ShiftID:          sr.ShiftID.String(),
		RequesterID:      sr.RequesterID.String(),
		TargetEmployeeID: sr.TargetEmployeeID.String(),
		Status:           sr.Status,
		Reason:           sr.Reason,
		DecisionNote:     sr.DecisionNote,
		CreatedAt:        sr.CreatedAt.Format(time.RFC3339),
	}
	if sr.DecidedBy != nil {
		v := sr.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if sr.DecidedAt != nil {
		v := sr.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}
