package contractimport_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Vietanh2703/BASMS-BE-sub001/internal/address"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/contract"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/contractimport"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/events"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/geocoding"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/identity"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/shared/contextutil"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/textextract"
)

const sampleDocument = `
CỘNG HÒA XÃ HỘI CHỦ NGHĨA VIỆT NAM
HỢP ĐỒNG DỊCH VỤ BẢO VỆ
Số: HD-2025/0042-BV

BÊN B: CÔNG TY TNHH SẢN XUẤT THƯƠNG MẠI MINH PHÁT
Địa chỉ: 215 Lê Văn Sỹ, Phường 13, Quận 3, TP. Hồ Chí Minh
Điện thoại: 028.3931.4455
Email: lienhe@minhphat.vn
Đại diện: Ông Trần Văn Minh
Chức vụ: Giám đốc

ĐIỀU 1: MỤC TIÊU VÀ PHẠM VI BẢO VỆ
Mục tiêu bảo vệ: Nhà máy Minh Phát
Địa chỉ: 215 Lê Văn Sỹ, Phường 13, Quận 3, TP.HCM
Bên A bố trí 3 nhân viên bảo vệ làm việc 24/7 tại mục tiêu,
làm việc các ngày lễ và cả thứ 7 và chủ nhật.

ĐIỀU 2: CA LÀM VIỆC
Ca sáng: 08:00 - 17:00
Ca đêm: 22:00 - 06:00

ĐIỀU 5: THỜI HẠN HỢP ĐỒNG
Hợp đồng có hiệu lực từ ngày 01/03/2025 đến hết ngày 28/02/2026.
`

type fakeRepo struct {
	customers         []*contract.Customer
	updatedCustomers  []*contract.Customer
	contracts         []*contract.Contract
	locations         []*contract.Location
	contractLocations []*contract.ContractLocation
	shiftTemplates    []*contract.ShiftTemplate
	conditions        []*contract.WorkingConditions
	syncLogs          []*contract.SyncLog
	periods           []*contract.ContractPeriod
}

func (f *fakeRepo) WithTx(*gorm.DB) contract.Repository { return f }

func (f *fakeRepo) FindCustomerByIdentity(_ context.Context, identityUserID string) (*contract.Customer, error) {
	for _, c := range f.customers {
		if c.IdentityUserID != nil && *c.IdentityUserID == identityUserID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindCustomerByName(_ context.Context, name string) (*contract.Customer, error) {
	for _, c := range f.customers {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateCustomer(_ context.Context, c *contract.Customer) error {
	f.customers = append(f.customers, c)
	return nil
}

func (f *fakeRepo) UpdateCustomer(_ context.Context, c *contract.Customer) error {
	f.updatedCustomers = append(f.updatedCustomers, c)
	return nil
}

func (f *fakeRepo) CreateContract(_ context.Context, c *contract.Contract) error {
	f.contracts = append(f.contracts, c)
	return nil
}

func (f *fakeRepo) CreateLocation(_ context.Context, l *contract.Location) error {
	f.locations = append(f.locations, l)
	return nil
}

func (f *fakeRepo) CreateContractLocation(_ context.Context, cl *contract.ContractLocation) error {
	f.contractLocations = append(f.contractLocations, cl)
	return nil
}

func (f *fakeRepo) CreateShiftTemplate(_ context.Context, s *contract.ShiftTemplate) error {
	f.shiftTemplates = append(f.shiftTemplates, s)
	return nil
}

func (f *fakeRepo) CreateWorkingConditions(_ context.Context, w *contract.WorkingConditions) error {
	f.conditions = append(f.conditions, w)
	return nil
}

func (f *fakeRepo) CreateSyncLog(_ context.Context, s *contract.SyncLog) error {
	f.syncLogs = append(f.syncLogs, s)
	return nil
}

func (f *fakeRepo) FindCurrentPeriod(_ context.Context, contractID string) (*contract.ContractPeriod, error) {
	for _, p := range f.periods {
		if p.ContractID.String() == contractID && p.IsCurrent {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CountPeriods(_ context.Context, contractID string) (int64, error) {
	var n int64
	for _, p := range f.periods {
		if p.ContractID.String() == contractID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CreatePeriod(_ context.Context, p *contract.ContractPeriod) error {
	f.periods = append(f.periods, p)
	return nil
}

func (f *fakeRepo) UpdatePeriod(_ context.Context, p *contract.ContractPeriod) error {
	for i, existing := range f.periods {
		if existing.ID == p.ID {
			f.periods[i] = p
		}
	}
	return nil
}

type fakeCounter struct {
	next  int64
	calls []string
}

func (f *fakeCounter) GetNextValue(_ context.Context, counterType string) (int64, error) {
	f.calls = append(f.calls, counterType)
	return f.next, nil
}

type fakeGeocoder struct {
	coords *geocoding.Coordinates
	err    error
	calls  []address.Components
}

func (f *fakeGeocoder) Resolve(_ context.Context, comp address.Components) (*geocoding.Coordinates, error) {
	f.calls = append(f.calls, comp)
	return f.coords, f.err
}

type fakeProvisioner struct {
	result *identity.ProvisionResult
	err    error
	calls  []identity.ProvisionRequest
}

func (f *fakeProvisioner) Provision(_ context.Context, req identity.ProvisionRequest) (*identity.ProvisionResult, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type sentMail struct {
	to       string
	template string
	params   map[string]string
}

type fakeMailer struct {
	err  error
	sent []sentMail
}

func (f *fakeMailer) SendTemplate(_ context.Context, to, template string, params map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, template: template, params: params})
	return nil
}

type fakePublisher struct {
	err       error
	published []events.ContractImportedEvent
}

func (f *fakePublisher) PublishContractImported(_ context.Context, event events.ContractImportedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

type importDeps struct {
	sqlMock     sqlmock.Sqlmock
	repo        *fakeRepo
	counter     *fakeCounter
	geocoder    *fakeGeocoder
	provisioner *fakeProvisioner
	mailer      *fakeMailer
	publisher   *fakePublisher
	service     contractimport.Service
}

func setupImportTest(t *testing.T) *importDeps {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	assert.NoError(t, err)

	repo := &fakeRepo{}
	counterRepo := &fakeCounter{next: 7}
	geocoder := &fakeGeocoder{coords: &geocoding.Coordinates{Latitude: 10.7845, Longitude: 106.6822}}
	provisioner := &fakeProvisioner{result: &identity.ProvisionResult{UserID: "idn-42"}}
	mailer := &fakeMailer{}
	publisher := &fakePublisher{}

	svc := contractimport.NewService(
		gdb, repo, counterRepo,
		contract.NewPeriodManager(repo),
		textextract.PlainText{},
		geocoder, provisioner, mailer, publisher,
		nil,
	)

	return &importDeps{
		sqlMock:     sqlMock,
		repo:        repo,
		counter:     counterRepo,
		geocoder:    geocoder,
		provisioner: provisioner,
		mailer:      mailer,
		publisher:   publisher,
		service:     svc,
	}
}

func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func importReq(name, text string) contractimport.ImportRequest {
	return contractimport.ImportRequest{
		FileName:    name,
		Data:        []byte(text),
		ContentType: "text/plain",
		InitiatedBy: "ops-1",
	}
}

func TestImport_FullDocument(t *testing.T) {
	deps := setupImportTest(t)
	expectTx(deps.sqlMock, true)

	result, err := deps.service.Import(context.Background(), importReq("hopdong.txt", sampleDocument))
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 100, result.Confidence)
	assert.Equal(t, "HD-2025/0042-BV", result.ContractNumber)
	assert.Equal(t, "Công ty TNHH SẢN XUẤT THƯƠNG MẠI MINH PHÁT", result.CustomerName)
	assert.Equal(t, 3, result.GuardsRequired)
	assert.Equal(t, 2, result.ShiftTemplateCount)
	assert.Equal(t, 1, result.PeriodNumber)
	assert.Equal(t, sampleDocument, result.RawText)

	if assert.Len(t, deps.repo.contracts, 1) {
		ctr := deps.repo.contracts[0]
		assert.Equal(t, contract.StatusDraft, ctr.Status)
		assert.Equal(t, contract.TypeLongTerm, ctr.Type)
		assert.Equal(t, "round_clock", ctr.CoverageType)
		assert.Equal(t, "ops-1", ctr.CreatedBy)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), ctr.StartDate)
		assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), ctr.EndDate)
	}

	if assert.Len(t, deps.repo.periods, 1) {
		p := deps.repo.periods[0]
		assert.Equal(t, 1, p.PeriodNumber)
		assert.Equal(t, contract.PeriodInitial, p.Type)
		assert.True(t, p.IsCurrent)
	}

	if assert.Len(t, deps.repo.locations, 1) {
		loc := deps.repo.locations[0]
		assert.Equal(t, "LOC-000007", loc.Code)
		assert.Equal(t, "Nhà máy Minh Phát", loc.Name)
		assert.Equal(t, 3, loc.MinimumGuardsRequired)
		assert.Equal(t, contract.DefaultGeofenceRadiusMeters, loc.GeofenceRadiusMeters)
		if assert.NotNil(t, loc.Latitude) {
			assert.InDelta(t, 10.7845, *loc.Latitude, 1e-9)
		}
	}
	if assert.Len(t, deps.repo.contractLocations, 1) {
		cl := deps.repo.contractLocations[0]
		assert.Equal(t, 3, cl.GuardsRequired)
		assert.True(t, cl.IsPrimary)
	}

	if assert.Len(t, deps.repo.shiftTemplates, 2) {
		morning := deps.repo.shiftTemplates[0]
		assert.Equal(t, "Ca sáng", morning.Name)
		assert.Equal(t, "08:00", morning.StartTime)
		assert.InDelta(t, 9.0, morning.DurationHours, 1e-9)
		assert.True(t, morning.Monday)
		// Weekend cue in the document turns Saturday and Sunday on.
		assert.True(t, morning.Saturday)
		assert.True(t, morning.Sunday)
		assert.True(t, morning.AppliesOnHolidays)

		night := deps.repo.shiftTemplates[1]
		assert.Equal(t, "Ca đêm", night.Name)
		assert.Equal(t, "22:00", night.StartTime)
		assert.Equal(t, "06:00", night.EndTime)
		// Crosses midnight: 22:00 to 06:00 is eight hours, not negative.
		assert.InDelta(t, 8.0, night.DurationHours, 1e-9)
	}

	assert.Len(t, deps.repo.conditions, 1)

	// Email present: identity provisioned, credentials mailed, link logged.
	if assert.Len(t, deps.provisioner.calls, 1) {
		assert.Equal(t, "lienhe@minhphat.vn", deps.provisioner.calls[0].Email)
		assert.NotEmpty(t, deps.provisioner.calls[0].Password)
	}
	if assert.Len(t, deps.repo.customers, 1) {
		cust := deps.repo.customers[0]
		if assert.NotNil(t, cust.IdentityUserID) {
			assert.Equal(t, "idn-42", *cust.IdentityUserID)
		}
	}
	assert.Len(t, deps.repo.syncLogs, 1)
	if assert.Len(t, deps.mailer.sent, 1) {
		assert.Equal(t, "lienhe@minhphat.vn", deps.mailer.sent[0].to)
		assert.Equal(t, events.TemplateLoginCredentials, deps.mailer.sent[0].template)
		assert.NotEmpty(t, deps.mailer.sent[0].params["password"])
	}

	if assert.Len(t, deps.publisher.published, 1) {
		assert.Equal(t, "HD-2025/0042-BV", deps.publisher.published[0].ContractNumber)
		assert.Equal(t, 100, deps.publisher.published[0].Confidence)
	}

	// Contract number was in the document; only the location code was minted.
	assert.Equal(t, []string{"location_code"}, deps.counter.calls)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestImport_GeneratedNumberAndDefaultDates(t *testing.T) {
	deps := setupImportTest(t)
	expectTx(deps.sqlMock, true)

	text := "BÊN B: CÔNG TY TNHH AN PHÚ\n"
	result, err := deps.service.Import(context.Background(), importReq("hopdong.txt", text))
	assert.NoError(t, err)
	assert.True(t, result.Success)

	wantNumber := fmt.Sprintf("HD-%d-000007", time.Now().Year())
	assert.Equal(t, wantNumber, result.ContractNumber)
	assert.Equal(t, []string{"contract_number"}, deps.counter.calls)

	if assert.Len(t, deps.repo.contracts, 1) {
		ctr := deps.repo.contracts[0]
		assert.Equal(t, ctr.StartDate.AddDate(0, 12, 0), ctr.EndDate)
	}

	// No guards extracted: no location and no geocoding call.
	assert.Empty(t, deps.repo.locations)
	assert.Empty(t, deps.geocoder.calls)

	// Number, start date and end date were defaulted; the absent guard count
	// and shift lines are reported too.
	assert.Len(t, result.Warnings, 5)
	assert.Contains(t, result.Warnings, "guard count not found; no location created")
	assert.Contains(t, result.Warnings, "no shift schedules found in the document")
	assert.Equal(t, 20, result.Confidence)

	// No email in the document: nothing provisioned, nothing mailed.
	assert.Empty(t, deps.provisioner.calls)
	assert.Empty(t, deps.mailer.sent)
}

func TestImport_MissingCustomerNameWritesNothing(t *testing.T) {
	deps := setupImportTest(t)

	result, err := deps.service.Import(context.Background(),
		importReq("hopdong.txt", "tài liệu không chứa tên khách hàng nào"))
	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.ErrorMessage)
	assert.NotEmpty(t, result.RawText)

	assert.Empty(t, deps.repo.customers)
	assert.Empty(t, deps.repo.contracts)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestImport_EmptyDocument(t *testing.T) {
	deps := setupImportTest(t)

	result, err := deps.service.Import(context.Background(), importReq("hopdong.txt", "   \n  "))
	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Empty(t, deps.repo.contracts)
}

func TestImport_UnsupportedFormat(t *testing.T) {
	deps := setupImportTest(t)

	result, err := deps.service.Import(context.Background(), importReq("scan.png", sampleDocument))
	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Empty(t, deps.repo.contracts)
}

func TestImport_GeocodeExhaustionKeepsLocation(t *testing.T) {
	deps := setupImportTest(t)
	deps.geocoder.coords = nil
	expectTx(deps.sqlMock, true)

	result, err := deps.service.Import(context.Background(), importReq("hopdong.txt", sampleDocument))
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Warnings, "address could not be geocoded; location saved without coordinates")

	if assert.Len(t, deps.repo.locations, 1) {
		assert.Nil(t, deps.repo.locations[0].Latitude)
		assert.Nil(t, deps.repo.locations[0].Longitude)
		assert.Equal(t, 3, deps.repo.locations[0].MinimumGuardsRequired)
	}
}

func TestImport_ProvisioningFailureIsWarningOnly(t *testing.T) {
	deps := setupImportTest(t)
	deps.provisioner.err = errors.New("identity service down")
	expectTx(deps.sqlMock, true)

	result, err := deps.service.Import(context.Background(), importReq("hopdong.txt", sampleDocument))
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Warnings, "customer account could not be provisioned")

	if assert.Len(t, deps.repo.customers, 1) {
		assert.Nil(t, deps.repo.customers[0].IdentityUserID)
	}
	assert.Empty(t, deps.repo.syncLogs)
	assert.Empty(t, deps.mailer.sent)
}

func TestImport_LinksExistingCustomer(t *testing.T) {
	deps := setupImportTest(t)
	existing := &contract.Customer{
		ID:   uuid.New(),
		Name: "Công ty TNHH SẢN XUẤT THƯƠNG MẠI MINH PHÁT",
	}
	deps.repo.customers = append(deps.repo.customers, existing)
	expectTx(deps.sqlMock, true)

	result, err := deps.service.Import(context.Background(), importReq("hopdong.txt", sampleDocument))
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, existing.ID.String(), result.CustomerID)

	// Matched by name: no second customer row, identity linked in place.
	assert.Len(t, deps.repo.customers, 1)
	if assert.Len(t, deps.repo.updatedCustomers, 1) {
		if assert.NotNil(t, deps.repo.updatedCustomers[0].IdentityUserID) {
			assert.Equal(t, "idn-42", *deps.repo.updatedCustomers[0].IdentityUserID)
		}
	}
	if assert.Len(t, deps.repo.syncLogs, 1) {
		assert.Equal(t, "identity_linked", deps.repo.syncLogs[0].Action)
	}
}

func TestImport_OperatorOverridesWin(t *testing.T) {
	deps := setupImportTest(t)
	expectTx(deps.sqlMock, true)

	req := importReq("hopdong.txt", sampleDocument)
	req.ContractNumber = "HD-2026-000113"
	req.CustomerEmail = "kh@anphu.vn"

	result, err := deps.service.Import(context.Background(), req)
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "HD-2026-000113", result.ContractNumber)

	// The override replaces the extracted email everywhere downstream.
	if assert.Len(t, deps.provisioner.calls, 1) {
		assert.Equal(t, "kh@anphu.vn", deps.provisioner.calls[0].Email)
	}
	if assert.Len(t, deps.mailer.sent, 1) {
		assert.Equal(t, "kh@anphu.vn", deps.mailer.sent[0].to)
	}
	// The number came from the operator, not the sequence.
	assert.NotContains(t, deps.counter.calls, "contract_number")
}

func TestImport_InitiatorFallsBackToContext(t *testing.T) {
	deps := setupImportTest(t)
	expectTx(deps.sqlMock, true)

	req := importReq("hopdong.txt", sampleDocument)
	req.InitiatedBy = ""
	ctx := contextutil.WithUserID(context.Background(), "ops-9")

	result, err := deps.service.Import(ctx, req)
	assert.NoError(t, err)
	assert.True(t, result.Success)
	if assert.Len(t, deps.repo.contracts, 1) {
		assert.Equal(t, "ops-9", deps.repo.contracts[0].CreatedBy)
	}
}

func TestImport_PublishFailureIsWarningOnly(t *testing.T) {
	deps := setupImportTest(t)
	deps.publisher.err = errors.New("broker unreachable")
	expectTx(deps.sqlMock, true)

	result, err := deps.service.Import(context.Background(), importReq("hopdong.txt", sampleDocument))
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Warnings, "downstream sync event could not be published")
	assert.Len(t, deps.repo.contracts, 1)
}
