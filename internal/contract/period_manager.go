package contract

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	contracterrors "github.com/Vietanh2703/BASMS-BE-sub001/internal/contract/errors"
)

// PeriodManager maintains the append-only contract-period history. At most
// one period per contract is current at any time, and period numbers are
// contiguous from 1 in creation order.
//
// The single-document import path only ever records initial periods; the
// renewal transition exists for the separate renewal workflow and must keep
// the same invariant.
type PeriodManager struct {
	repo   Repository
	logger *zap.Logger
}

func NewPeriodManager(repo Repository, logger ...*zap.Logger) *PeriodManager {
	l := zap.L().Named("contract.periods")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contract.periods")
	}
	return &PeriodManager{repo: repo, logger: l}
}

// WithTx binds the manager to an open transaction.
func (m *PeriodManager) WithTx(tx *gorm.DB) *PeriodManager {
	return &PeriodManager{repo: m.repo.WithTx(tx), logger: m.logger}
}

// Record applies one import (or renewal) to the period history:
//   - no period yet: insert period #1, type initial, current
//   - isRenewal: demote the current period, insert #previous+1, type renewal
//   - dates differ, not a renewal: correct the current period in place
//   - dates unchanged: no write at all
func (m *PeriodManager) Record(
	ctx context.Context,
	contractID uuid.UUID,
	startDate, endDate time.Time,
	isRenewal bool,
) (*ContractPeriod, error) {
	current, err := m.repo.FindCurrentPeriod(ctx, contractID.String())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return m.recordInitial(ctx, contractID, startDate, endDate, isRenewal)
	}

	if isRenewal {
		return m.recordRenewal(ctx, current, startDate, endDate)
	}

	if current.StartDate.Equal(startDate) && current.EndDate.Equal(endDate) {
		return current, nil
	}

	// In-place correction keeps the row and its number.
	current.StartDate = startDate
	current.EndDate = endDate
	if err := m.repo.UpdatePeriod(ctx, current); err != nil {
		return nil, err
	}
	m.logger.Info("contract period corrected",
		zap.String("contract_id", contractID.String()),
		zap.Int("period_number", current.PeriodNumber),
	)
	return current, nil
}

func (m *PeriodManager) recordInitial(
	ctx context.Context,
	contractID uuid.UUID,
	startDate, endDate time.Time,
	isRenewal bool,
) (*ContractPeriod, error) {
	if isRenewal {
		// A renewal needs something to renew.
		return nil, contracterrors.ErrNoCurrentPeriod
	}

	period := &ContractPeriod{
		ID:           uuid.New(),
		ContractID:   contractID,
		PeriodNumber: 1,
		Type:         PeriodInitial,
		StartDate:    startDate,
		EndDate:      endDate,
		IsCurrent:    true,
	}
	if err := m.repo.CreatePeriod(ctx, period); err != nil {
		return nil, err
	}
	m.logger.Info("initial contract period created",
		zap.String("contract_id", contractID.String()),
	)
	return period, nil
}

func (m *PeriodManager) recordRenewal(
	ctx context.Context,
	current *ContractPeriod,
	startDate, endDate time.Time,
) (*ContractPeriod, error) {
	current.IsCurrent = false
	if err := m.repo.UpdatePeriod(ctx, current); err != nil {
		return nil, err
	}

	// Next number from the row count, not the demoted row, so the sequence
	// stays contiguous at 1..N.
	count, err := m.repo.CountPeriods(ctx, current.ContractID.String())
	if err != nil {
		return nil, err
	}

	next := &ContractPeriod{
		ID:           uuid.New(),
		ContractID:   current.ContractID,
		PeriodNumber: int(count) + 1,
		Type:         PeriodRenewal,
		StartDate:    startDate,
		EndDate:      endDate,
		IsCurrent:    true,
	}
	if err := m.repo.CreatePeriod(ctx, next); err != nil {
		return nil, err
	}
	m.logger.Info("contract period renewed",
		zap.String("contract_id", current.ContractID.String()),
		zap.Int("period_number", next.PeriodNumber),
	)
	return next, nil
}
