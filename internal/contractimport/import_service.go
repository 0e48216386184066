package contractimport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Vietanh2703/BASMS-BE-sub001/internal/address"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/contract"
	contracterrors "github.com/Vietanh2703/BASMS-BE-sub001/internal/contract/errors"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/events"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/extraction"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/filestore"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/geocoding"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/identity"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/notification"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/shared/apperror"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/shared/contextutil"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/shared/counter"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/textextract"
)

// Counter types for generated business identifiers.
const (
	contractNumberCounter = "contract_number"
	locationCodeCounter   = "location_code"
)

// defaultTermMonths applies when the document carries no end date.
const defaultTermMonths = 12

// Geocoder resolves a parsed address to coordinates. A nil result with a nil
// error means every strategy was exhausted; the import continues without
// coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, comp address.Components) (*geocoding.Coordinates, error)
}

type Service interface {
	Import(ctx context.Context, req ImportRequest) (ImportResult, error)
}

type service struct {
	db          *gorm.DB
	repo        contract.Repository
	counter     counter.Repository
	periods     *contract.PeriodManager
	extractor   textextract.Extractor
	geocoder    Geocoder
	provisioner identity.Provisioner
	mailer      notification.Mailer
	publisher   EventPublisher
	files       filestore.Store
	logger      *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo contract.Repository,
	counterRepo counter.Repository,
	periods *contract.PeriodManager,
	extractor textextract.Extractor,
	geocoder Geocoder,
	provisioner identity.Provisioner,
	mailer notification.Mailer,
	publisher EventPublisher,
	files filestore.Store,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("contractimport.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contractimport.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		counter:     counterRepo,
		periods:     periods,
		extractor:   extractor,
		geocoder:    geocoder,
		provisioner: provisioner,
		mailer:      mailer,
		publisher:   publisher,
		files:       files,
		logger:      l,
	}
}

// Import runs the full pipeline for one uploaded document. Hard failures
// (unreadable file, empty text, no customer name, transaction error) return a
// result with Success=false and nothing persisted. Everything after the
// commit is best effort and can only add warnings.
func (s *service) Import(ctx context.Context, req ImportRequest) (ImportResult, error) {
	rid := contextutil.GetRequestID(ctx)
	if req.InitiatedBy == "" {
		req.InitiatedBy = contextutil.GetUserID(ctx)
	}
	s.logger.Info("contract import requested",
		zap.String("request_id", rid),
		zap.String("file_name", req.FileName),
	)

	var warnings []string

	format, err := textextract.FormatFromFilename(req.FileName)
	if err != nil {
		return failResult(err, "", nil), nil
	}

	if s.files != nil {
		objectName := fmt.Sprintf("contracts/%s/%s", time.Now().UTC().Format("2006/01"), req.FileName)
		upErr := s.files.Upload(ctx, objectName, bytes.NewReader(req.Data), int64(len(req.Data)), req.ContentType)
		if upErr != nil {
			s.logger.Warn("original document not archived", zap.Error(upErr))
			warnings = append(warnings, "original document could not be archived")
		}
	}

	text, err := s.extractor.ExtractText(ctx, bytes.NewReader(req.Data), format)
	if err != nil {
		return failResult(err, "", warnings), nil
	}
	if strings.TrimSpace(text) == "" {
		return failResult(contracterrors.ErrEmptyDocumentText, "", warnings), nil
	}

	ext := extraction.ExtractAll(text)
	if req.ContractNumber != "" {
		ext.ContractNumber = req.ContractNumber
	}
	if req.CustomerEmail != "" {
		ext.CustomerEmail = req.CustomerEmail
	}
	if ext.CustomerName == "" {
		return failResult(contracterrors.ErrCustomerNameMissing, text, warnings), nil
	}

	classification := contract.Classify(text, ext.StartDate, ext.EndDate)

	identityUserID, password := s.provisionIdentity(ctx, ext, &warnings)

	if ext.GuardCount == 0 {
		warnings = append(warnings, "guard count not found; no location created")
	}
	if len(ext.Shifts) == 0 {
		warnings = append(warnings, "no shift schedules found in the document")
	}

	var coords *geocoding.Coordinates
	siteAddress := ext.LocationAddress
	if siteAddress == "" {
		siteAddress = ext.CustomerAddress
	}
	if ext.GuardCount > 0 && siteAddress != "" {
		coords, err = s.geocoder.Resolve(ctx, address.Parse(siteAddress))
		if err != nil {
			return failResult(err, text, warnings), nil
		}
		if coords == nil {
			warnings = append(warnings, "address could not be geocoded; location saved without coordinates")
		}
	}

	var (
		cust   *contract.Customer
		ctr    *contract.Contract
		loc    *contract.Location
		period *contract.ContractPeriod
		shiftN int
	)

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		periods := s.periods.WithTx(tx)

		var err error
		cust, err = s.resolveCustomer(ctx, repo, ext, identityUserID)
		if err != nil {
			return err
		}

		ctr, err = s.createContract(ctx, repo, ext, classification, cust, req.InitiatedBy, &warnings)
		if err != nil {
			return err
		}

		period, err = periods.Record(ctx, ctr.ID, ctr.StartDate, ctr.EndDate, false)
		if err != nil {
			return err
		}

		if ext.GuardCount > 0 {
			loc, err = s.createLocation(ctx, repo, ext, cust, ctr, siteAddress, coords)
			if err != nil {
				return err
			}
		}

		shiftN, err = s.createShiftTemplates(ctx, repo, ext, ctr)
		if err != nil {
			return err
		}

		return s.createWorkingConditions(ctx, repo, ext, ctr)
	})
	if txErr != nil {
		return failResult(contract.MapRepositoryError(txErr), text, warnings), nil
	}

	confidence := contract.ConfidenceScore(
		ext.ContractNumber, ext.CustomerName,
		ext.StartDate, ext.EndDate,
		ext.GuardCount, len(ext.Shifts),
	)

	s.sendCredentials(ctx, ext, identityUserID, password, &warnings)
	s.publishImported(ctx, rid, ctr, cust, confidence, &warnings)

	s.logger.Info("contract import committed",
		zap.String("request_id", rid),
		zap.String("contract_id", ctr.ID.String()),
		zap.String("contract_number", ctr.ContractNumber),
		zap.Int("confidence", confidence),
	)

	result := ImportResult{
		Success:            true,
		ContractID:         ctr.ID.String(),
		CustomerID:         cust.ID.String(),
		ContractNumber:     ctr.ContractNumber,
		CustomerName:       cust.Name,
		GuardsRequired:     ext.GuardCount,
		ShiftTemplateCount: shiftN,
		PeriodNumber:       period.PeriodNumber,
		RawText:            text,
		Warnings:           warnings,
		Confidence:         confidence,
	}
	if loc != nil {
		result.LocationID = loc.ID.String()
	}
	return result, nil
}

// provisionIdentity asks the identity collaborator for a customer account
// when the document carries an email. Failure never blocks the import.
func (s *service) provisionIdentity(
	ctx context.Context,
	ext extraction.Extraction,
	warnings *[]string,
) (string, string) {
	if ext.CustomerEmail == "" {
		return "", ""
	}

	password, err := identity.GeneratePassword()
	if err != nil {
		s.logger.Warn("password generation failed", zap.Error(err))
		*warnings = append(*warnings, "customer account could not be provisioned")
		return "", ""
	}

	res, err := s.provisioner.Provision(ctx, identity.ProvisionRequest{
		Email:        ext.CustomerEmail,
		Password:     password,
		FullName:     ext.ContactName,
		Phone:        ext.CustomerPhone,
		Address:      ext.CustomerAddress,
		RoleName:     "customer",
		AuthProvider: "local",
	})
	if err != nil {
		s.logger.Warn("identity provisioning failed",
			zap.String("email", ext.CustomerEmail),
			zap.Error(err),
		)
		*warnings = append(*warnings, "customer account could not be provisioned")
		return "", ""
	}
	return res.UserID, password
}

// resolveCustomer finds the customer by identity link first, then by exact
// name, creating one when neither matches. An existing customer picked up by
// name gets the fresh identity link recorded in place.
func (s *service) resolveCustomer(
	ctx context.Context,
	repo contract.Repository,
	ext extraction.Extraction,
	identityUserID string,
) (*contract.Customer, error) {
	if identityUserID != "" {
		cust, err := repo.FindCustomerByIdentity(ctx, identityUserID)
		if err == nil {
			return cust, nil
		}
		if !isNotFound(err) {
			return nil, err
		}
	}

	cust, err := repo.FindCustomerByName(ctx, ext.CustomerName)
	if err == nil {
		if identityUserID != "" && cust.IdentityUserID == nil {
			cust.IdentityUserID = &identityUserID
			if ext.ContactName != "" {
				cust.ContactName = ext.ContactName
				cust.ContactTitle = ext.ContactTitle
			}
			if err := repo.UpdateCustomer(ctx, cust); err != nil {
				return nil, err
			}
			if err := repo.CreateSyncLog(ctx, &contract.SyncLog{
				ID:             uuid.New(),
				CustomerID:     cust.ID,
				IdentityUserID: identityUserID,
				Action:         "identity_linked",
			}); err != nil {
				return nil, err
			}
		}
		return cust, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	cust = &contract.Customer{
		ID:           uuid.New(),
		Name:         ext.CustomerName,
		ContactName:  ext.ContactName,
		ContactTitle: ext.ContactTitle,
		Address:      ext.CustomerAddress,
		Phone:        ext.CustomerPhone,
		Email:        ext.CustomerEmail,
	}
	if identityUserID != "" {
		cust.IdentityUserID = &identityUserID
	}
	if err := repo.CreateCustomer(ctx, cust); err != nil {
		return nil, err
	}
	if identityUserID != "" {
		if err := repo.CreateSyncLog(ctx, &contract.SyncLog{
			ID:             uuid.New(),
			CustomerID:     cust.ID,
			IdentityUserID: identityUserID,
			Action:         "identity_linked",
		}); err != nil {
			return nil, err
		}
	}
	return cust, nil
}

func (s *service) createContract(
	ctx context.Context,
	repo contract.Repository,
	ext extraction.Extraction,
	cls contract.Classification,
	cust *contract.Customer,
	createdBy string,
	warnings *[]string,
) (*contract.Contract, error) {
	number := ext.ContractNumber
	if number == "" {
		seq, err := s.counter.GetNextValue(ctx, contractNumberCounter)
		if err != nil {
			return nil, err
		}
		number = fmt.Sprintf("HD-%d-%06d", time.Now().Year(), seq)
		*warnings = append(*warnings, "contract number not found in document; generated "+number)
	}

	start := time.Now().Truncate(24 * time.Hour)
	if ext.StartDate != nil {
		start = *ext.StartDate
	} else {
		*warnings = append(*warnings, "start date not found; defaulted to today")
	}
	end := start.AddDate(0, defaultTermMonths, 0)
	if ext.EndDate != nil {
		end = *ext.EndDate
	} else {
		*warnings = append(*warnings, "end date not found; defaulted to start date + 12 months")
	}

	ctr := &contract.Contract{
		ID:                  uuid.New(),
		CustomerID:          cust.ID,
		ContractNumber:      number,
		Title:               "Hợp đồng dịch vụ bảo vệ - " + cust.Name,
		Type:                cls.Type,
		ServiceScope:        cls.ServiceScope,
		StartDate:           start,
		EndDate:             end,
		DurationMonths:      cls.DurationMonths,
		CoverageType:        ext.CoverageType,
		IsRenewable:         cls.IsRenewable,
		AutoRenewal:         cls.AutoRenewal,
		AutoGenerateShifts:  cls.AutoGenerateShifts,
		GenerateAdvanceDays: cls.GenerateAdvanceDays,
		Status:              contract.StatusDraft,
		CreatedBy:           createdBy,
	}
	if err := repo.CreateContract(ctx, ctr); err != nil {
		return nil, err
	}
	return ctr, nil
}

func (s *service) createLocation(
	ctx context.Context,
	repo contract.Repository,
	ext extraction.Extraction,
	cust *contract.Customer,
	ctr *contract.Contract,
	siteAddress string,
	coords *geocoding.Coordinates,
) (*contract.Location, error) {
	seq, err := s.counter.GetNextValue(ctx, locationCodeCounter)
	if err != nil {
		return nil, err
	}

	name := ext.LocationName
	if name == "" {
		name = "Mục tiêu " + cust.Name
	}

	loc := &contract.Location{
		ID:                    uuid.New(),
		CustomerID:            cust.ID,
		Code:                  fmt.Sprintf("LOC-%06d", seq),
		Name:                  name,
		Address:               siteAddress,
		GeofenceRadiusMeters:  contract.DefaultGeofenceRadiusMeters,
		MinimumGuardsRequired: ext.GuardCount,
	}
	if coords != nil {
		loc.Latitude = &coords.Latitude
		loc.Longitude = &coords.Longitude
	}
	if err := repo.CreateLocation(ctx, loc); err != nil {
		return nil, err
	}

	cl := &contract.ContractLocation{
		ID:             uuid.New(),
		ContractID:     ctr.ID,
		LocationID:     loc.ID,
		GuardsRequired: ext.GuardCount,
		CoverageType:   ext.CoverageType,
		IsPrimary:      true,
		Priority:       1,
	}
	if err := repo.CreateContractLocation(ctx, cl); err != nil {
		return nil, err
	}
	return loc, nil
}

// Vietnamese display names for normalized shift labels.
var shiftNames = map[string]string{
	"morning":   "Ca sáng",
	"noon":      "Ca trưa",
	"afternoon": "Ca chiều",
	"evening":   "Ca tối",
	"night":     "Ca đêm",
	"weekend":   "Ca cuối tuần",
}

func (s *service) createShiftTemplates(
	ctx context.Context,
	repo contract.Repository,
	ext extraction.Extraction,
	ctr *contract.Contract,
) (int, error) {
	weekend := ext.WeekendWork != nil && *ext.WeekendWork
	holidays := ext.HolidayWork != nil && *ext.HolidayWork

	created := 0
	for _, block := range ext.Shifts {
		if block.StartTime == "" && block.EndTime == "" {
			continue
		}

		name, ok := shiftNames[block.Label]
		if !ok {
			name = "Ca " + block.Label
		}

		tpl := &contract.ShiftTemplate{
			ID:                uuid.New(),
			ContractID:        ctr.ID,
			Name:              name,
			StartTime:         block.StartTime,
			EndTime:           block.EndTime,
			DurationHours:     shiftDurationHours(block),
			AppliesOnHolidays: holidays,
		}
		if block.Label == "weekend" {
			tpl.Saturday = true
			tpl.Sunday = true
		} else {
			tpl.Monday = true
			tpl.Tuesday = true
			tpl.Wednesday = true
			tpl.Thursday = true
			tpl.Friday = true
			tpl.Saturday = weekend
			tpl.Sunday = weekend
		}
		if err := repo.CreateShiftTemplate(ctx, tpl); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *service) createWorkingConditions(
	ctx context.Context,
	repo contract.Repository,
	ext extraction.Extraction,
	ctr *contract.Contract,
) error {
	cond := ext.Conditions
	return repo.CreateWorkingConditions(ctx, &contract.WorkingConditions{
		ID:               uuid.New(),
		ContractID:       ctr.ID,
		OvertimeMaxHours: cond.OvertimeMaxHours,
		OvertimeRate:     cond.OvertimeRate,
		NightShiftStart:  cond.NightShiftStart,
		NightShiftEnd:    cond.NightShiftEnd,
		SleepTimeRatio:   cond.SleepTimeRatio,
		MinRestHours:     cond.MinRestHours,
		AnnualLeaveDays:  cond.AnnualLeaveDays,
		SickLeaveDays:    cond.SickLeaveDays,
		MealAllowance:    cond.MealAllowance,
		UniformAllowance: cond.UniformAllowance,
		ViolationPolicy:  cond.ViolationPolicy,
	})
}

func (s *service) sendCredentials(
	ctx context.Context,
	ext extraction.Extraction,
	identityUserID, password string,
	warnings *[]string,
) {
	if identityUserID == "" {
		return
	}
	err := s.mailer.SendTemplate(ctx, ext.CustomerEmail, events.TemplateLoginCredentials, map[string]string{
		"full_name": ext.ContactName,
		"email":     ext.CustomerEmail,
		"password":  password,
	})
	if err != nil {
		s.logger.Warn("credentials email not queued",
			zap.String("email", ext.CustomerEmail),
			zap.Error(err),
		)
		*warnings = append(*warnings, "login credentials email could not be sent")
	}
}

func (s *service) publishImported(
	ctx context.Context,
	rid string,
	ctr *contract.Contract,
	cust *contract.Customer,
	confidence int,
	warnings *[]string,
) {
	err := s.publisher.PublishContractImported(ctx, events.ContractImportedEvent{
		EventType:      "contract.imported",
		RequestID:      rid,
		ContractID:     ctr.ID.String(),
		CustomerID:     cust.ID.String(),
		ContractNumber: ctr.ContractNumber,
		Confidence:     confidence,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("contract imported event not published",
			zap.String("contract_id", ctr.ID.String()),
			zap.Error(err),
		)
		*warnings = append(*warnings, "downstream sync event could not be published")
	}
}

func shiftDurationHours(block extraction.ShiftBlock) float64 {
	start, okS := minutesOfDay(block.StartTime)
	end, okE := minutesOfDay(block.EndTime)
	if !okS || !okE {
		return 0
	}
	if end <= start {
		end += 24 * 60
	}
	return float64(end-start) / 60
}

func minutesOfDay(clock string) (int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return h*60 + m, true
}

func failResult(err error, rawText string, warnings []string) ImportResult {
	msg := err.Error()
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	return ImportResult{
		Success:      false,
		ErrorMessage: msg,
		RawText:      rawText,
		Warnings:     warnings,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
