package contract

import (
	"time"

	"github.com/google/uuid"
)

// Contract types by term length.
const (
	TypeOneDay    = "one_day"
	TypeWeekly    = "weekly"
	TypeMonthly   = "monthly"
	TypeShortTerm = "short_term"
	TypeLongTerm  = "long_term"
)

// Service scopes.
const (
	ScopeEvent      = "event"
	ScopeShiftBased = "shift_based"
	ScopeFullTime   = "full_time"
)

// Imported contracts always start as drafts; activation is a human decision.
const StatusDraft = "draft"

// Period types for the versioned period history.
const (
	PeriodInitial = "initial"
	PeriodRenewal = "renewal"
)

// DefaultGeofenceRadiusMeters is the fixed presence-validation tolerance
// attached to every created location.
const DefaultGeofenceRadiusMeters = 100

type Customer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"index"`
	ContactName    string
	ContactTitle   string
	Address        string
	Phone          string
	Email          string
	IdentityUserID *string `gorm:"index"` // linked external identity, when provisioned
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Contract struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID          uuid.UUID `gorm:"type:uuid;index"`
	ContractNumber      string    `gorm:"uniqueIndex:uq_contract_number"`
	Title               string
	Type                string
	ServiceScope        string
	StartDate           time.Time
	EndDate             time.Time
	DurationMonths      int
	CoverageType        string
	IsRenewable         bool
	AutoRenewal         bool
	AutoGenerateShifts  bool
	GenerateAdvanceDays int
	Status              string
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Location struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID            uuid.UUID `gorm:"type:uuid;index"`
	Code                  string    `gorm:"uniqueIndex"`
	Name                  string
	Address               string
	Latitude              *float64
	Longitude             *float64
	GeofenceRadiusMeters  int
	MinimumGuardsRequired int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type ContractLocation struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractID     uuid.UUID `gorm:"type:uuid;index"`
	LocationID     uuid.UUID `gorm:"type:uuid;index"`
	GuardsRequired int
	CoverageType   string
	IsPrimary      bool
	Priority       int
	CreatedAt      time.Time
}

type ShiftTemplate struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractID        uuid.UUID `gorm:"type:uuid;index"`
	Name              string
	StartTime         string // HH:MM
	EndTime           string
	DurationHours     float64
	Monday            bool
	Tuesday           bool
	Wednesday         bool
	Thursday          bool
	Friday            bool
	Saturday          bool
	Sunday            bool
	AppliesOnHolidays bool
	CreatedAt         time.Time
}

type WorkingConditions struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractID       uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	OvertimeMaxHours *int
	OvertimeRate     *float64
	NightShiftStart  *string
	NightShiftEnd    *string
	SleepTimeRatio   *float64
	MinRestHours     *int
	AnnualLeaveDays  *int
	SickLeaveDays    *int
	MealAllowance    *int64
	UniformAllowance *int64
	ViolationPolicy  *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ContractPeriod rows are append-only: renewals demote the current row and
// insert the next number, corrections mutate dates in place.
type ContractPeriod struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractID   uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_contract_period_number,priority:1"`
	PeriodNumber int       `gorm:"uniqueIndex:uq_contract_period_number,priority:2"`
	Type         string
	StartDate    time.Time
	EndDate      time.Time
	IsCurrent    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SyncLog records an established identity link for the account-sync audit
// trail.
type SyncLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID     uuid.UUID `gorm:"type:uuid;index"`
	IdentityUserID string
	Action         string
	CreatedAt      time.Time
}
