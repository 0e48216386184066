package contract

import (
	"context"

	"gorm.io/gorm"
)

// Repository persists the contract entity graph. WithTx returns a repository
// bound to an open transaction; the import orchestrator owns the transaction
// boundary.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindCustomerByIdentity(ctx context.Context, identityUserID string) (*Customer, error)
	FindCustomerByName(ctx context.Context, name string) (*Customer, error)
	CreateCustomer(ctx context.Context, c *Customer) error
	UpdateCustomer(ctx context.Context, c *Customer) error

	CreateContract(ctx context.Context, c *Contract) error
	CreateLocation(ctx context.Context, l *Location) error
	CreateContractLocation(ctx context.Context, cl *ContractLocation) error
	CreateShiftTemplate(ctx context.Context, s *ShiftTemplate) error
	CreateWorkingConditions(ctx context.Context, w *WorkingConditions) error
	CreateSyncLog(ctx context.Context, s *SyncLog) error

	FindCurrentPeriod(ctx context.Context, contractID string) (*ContractPeriod, error)
	CountPeriods(ctx context.Context, contractID string) (int64, error)
	CreatePeriod(ctx context.Context, p *ContractPeriod) error
	UpdatePeriod(ctx context.Context, p *ContractPeriod) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) FindCustomerByIdentity(ctx context.Context, identityUserID string) (*Customer, error) {
	var c Customer
	err := r.db.WithContext(ctx).
		First(&c, "identity_user_id = ?", identityUserID).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindCustomerByName(ctx context.Context, name string) (*Customer, error) {
	var c Customer
	err := r.db.WithContext(ctx).
		First(&c, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) CreateCustomer(ctx context.Context, c *Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) UpdateCustomer(ctx context.Context, c *Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) CreateContract(ctx context.Context, c *Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) CreateLocation(ctx context.Context, l *Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) CreateContractLocation(ctx context.Context, cl *ContractLocation) error {
	return r.db.WithContext(ctx).Create(cl).Error
}

func (r *repository) CreateShiftTemplate(ctx context.Context, s *ShiftTemplate) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) CreateWorkingConditions(ctx context.Context, w *WorkingConditions) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) CreateSyncLog(ctx context.Context, s *SyncLog) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindCurrentPeriod(ctx context.Context, contractID string) (*ContractPeriod, error) {
	var p ContractPeriod
	err := r.db.WithContext(ctx).
		First(&p, "contract_id = ? AND is_current = true", contractID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) CountPeriods(ctx context.Context, contractID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&ContractPeriod{}).
		Where("contract_id = ?", contractID).
		Count(&n).Error
	return n, err
}

func (r *repository) CreatePeriod(ctx context.Context, p *ContractPeriod) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) UpdatePeriod(ctx context.Context, p *ContractPeriod) error {
	return r.db.WithContext(ctx).Save(p).Error
}
