package services

import (
	"fmt"
	"time"

	"tripdesk_backend/internal/models"
	"tripdesk_backend/internal/repositories"
)

// In-memory repository fakes. Executor arguments are ignored; the fake
// transaction manager snapshots and restores state instead.

type fakeShiftRepo struct {
	shifts  map[int64]*models.Shift
	breaks  map[int64]*models.Break
	nextID  int64
	deleted map[int64]bool
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{
		shifts:  make(map[int64]*models.Shift),
		breaks:  make(map[int64]*models.Break),
		deleted: make(map[int64]bool),
	}
}

func (f *fakeShiftRepo) CreateShift(_ repositories.SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	if shift.EndTime == nil {
		for id, s := range f.shifts {
			if !f.deleted[id] && s.UserID == shift.UserID && s.EndTime == nil {
				return nil, fmt.Errorf("%w: user %d already has an in-progress shift", repositories.ErrDuplicateKey, shift.UserID)
			}
		}
	}
	f.nextID++
	stored := *shift
	stored.ID = f.nextID
	f.shifts[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (f *fakeShiftRepo) GetShiftByID(id int64) (*models.Shift, error) {
	shift, ok := f.shifts[id]
	if !ok || f.deleted[id] {
		return nil, repositories.ErrNotFound
	}
	result := *shift
	breaks, _ := f.GetBreaksByShiftID(id)
	result.Breaks = breaks
	return &result, nil
}

func (f *fakeShiftRepo) GetOpenShiftByUserID(userID int64) (*models.Shift, error) {
	for id, s := range f.shifts {
		if !f.deleted[id] && s.UserID == userID && s.EndTime == nil {
			result := *s
			return &result, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeShiftRepo) CountShiftsStartedBetween(userID int64, from, to time.Time) (int, error) {
	count := 0
	for id, s := range f.shifts {
		if !f.deleted[id] && s.UserID == userID && !s.StartTime.Before(from) && s.StartTime.Before(to) {
			count++
		}
	}
	return count, nil
}

func (f *fakeShiftRepo) GetShifts(filters models.ShiftFilters) ([]models.Shift, int, error) {
	var result []models.Shift
	for id, s := range f.shifts {
		if f.deleted[id] {
			continue
		}
		if filters.UserID != nil && s.UserID != *filters.UserID {
			continue
		}
		if filters.StartDate != nil && s.StartTime.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && !s.StartTime.Before(*filters.EndDate) {
			continue
		}
		result = append(result, *s)
	}
	return result, len(result), nil
}

func (f *fakeShiftRepo) UpdateShift(_ repositories.SQLExecutor, shift *models.Shift) (*models.Shift, error) {
	if _, ok := f.shifts[shift.ID]; !ok || f.deleted[shift.ID] {
		return nil, repositories.ErrNotFound
	}
	stored := *shift
	f.shifts[shift.ID] = &stored
	result := stored
	return &result, nil
}

func (f *fakeShiftRepo) EndShift(_ repositories.SQLExecutor, shiftID int64, endTime time.Time) error {
	shift, ok := f.shifts[shiftID]
	if !ok || f.deleted[shiftID] || shift.EndTime != nil {
		return repositories.ErrNotFound
	}
	end := endTime
	shift.EndTime = &end
	return nil
}

func (f *fakeShiftRepo) AddBreakSeconds(_ repositories.SQLExecutor, shiftID int64, seconds int64) error {
	shift, ok := f.shifts[shiftID]
	if !ok || f.deleted[shiftID] {
		return repositories.ErrNotFound
	}
	shift.BreakSeconds += seconds
	return nil
}

func (f *fakeShiftRepo) DeleteShift(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.shifts[id]; !ok || f.deleted[id] {
		return repositories.ErrNotFound
	}
	f.deleted[id] = true
	return nil
}

func (f *fakeShiftRepo) ListOpenShiftsStartedBefore(cutoff time.Time) ([]models.Shift, error) {
	var result []models.Shift
	for id, s := range f.shifts {
		if !f.deleted[id] && s.EndTime == nil && s.StartTime.Before(cutoff) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (f *fakeShiftRepo) CreateBreak(_ repositories.SQLExecutor, brk *models.Break) (*models.Break, error) {
	for _, b := range f.breaks {
		if b.ShiftID == brk.ShiftID && b.EndTime == nil {
			return nil, fmt.Errorf("%w: shift %d already has an open break", repositories.ErrDuplicateKey, brk.ShiftID)
		}
	}
	f.nextID++
	stored := *brk
	stored.ID = f.nextID
	f.breaks[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (f *fakeShiftRepo) GetBreakByID(id int64) (*models.Break, error) {
	brk, ok := f.breaks[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	result := *brk
	return &result, nil
}

func (f *fakeShiftRepo) GetOpenBreakByShiftID(shiftID int64) (*models.Break, error) {
	for _, b := range f.breaks {
		if b.ShiftID == shiftID && b.EndTime == nil {
			result := *b
			return &result, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeShiftRepo) CloseBreak(_ repositories.SQLExecutor, breakID int64, endTime time.Time) error {
	brk, ok := f.breaks[breakID]
	if !ok || brk.EndTime != nil {
		return repositories.ErrNotFound
	}
	end := endTime
	brk.EndTime = &end
	return nil
}

func (f *fakeShiftRepo) GetBreaksByShiftID(shiftID int64) ([]models.Break, error) {
	var result []models.Break
	for _, b := range f.breaks {
		if b.ShiftID == shiftID {
			result = append(result, *b)
		}
	}
	return result, nil
}

type fakeLeaveRepo struct {
	leaves  map[int64]*models.LeaveRequest
	nextID  int64
	deleted map[int64]bool
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{
		leaves:  make(map[int64]*models.LeaveRequest),
		deleted: make(map[int64]bool),
	}
}

func (f *fakeLeaveRepo) CreateLeave(_ repositories.SQLExecutor, leave *models.LeaveRequest) (*models.LeaveRequest, error) {
	f.nextID++
	stored := *leave
	stored.ID = f.nextID
	f.leaves[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (f *fakeLeaveRepo) GetLeaveByID(id int64) (*models.LeaveRequest, error) {
	leave, ok := f.leaves[id]
	if !ok || f.deleted[id] {
		return nil, repositories.ErrNotFound
	}
	result := *leave
	return &result, nil
}

func (f *fakeLeaveRepo) GetLeaves(filters models.LeaveFilters) ([]models.LeaveRequest, int, error) {
	var result []models.LeaveRequest
	for id, l := range f.leaves {
		if f.deleted[id] {
			continue
		}
		if filters.UserID != nil && l.UserID != *filters.UserID {
			continue
		}
		if filters.Status != nil && l.Status != *filters.Status {
			continue
		}
		result = append(result, *l)
	}
	return result, len(result), nil
}

func (f *fakeLeaveRepo) UpdateLeaveReview(_ repositories.SQLExecutor, id int64, status string, reviewerID int64) error {
	leave, ok := f.leaves[id]
	if !ok || f.deleted[id] || leave.Status != string(models.LeaveStatusPending) {
		return repositories.ErrNotFound
	}
	leave.Status = status
	leave.ReviewerID = &reviewerID
	return nil
}

func (f *fakeLeaveRepo) DeleteLeave(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.leaves[id]; !ok || f.deleted[id] {
		return repositories.ErrNotFound
	}
	f.deleted[id] = true
	return nil
}

func (f *fakeLeaveRepo) GetApprovedLeavesInRange(userID int64, from, to string) ([]models.LeaveRequest, error) {
	var result []models.LeaveRequest
	for id, l := range f.leaves {
		if f.deleted[id] || l.UserID != userID || l.Status != string(models.LeaveStatusApproved) {
			continue
		}
		if l.LeaveDate >= from && l.LeaveDate <= to {
			result = append(result, *l)
		}
	}
	return result, nil
}

type fakeSettingRepo struct {
	rows map[string]*models.ApplicationSetting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{rows: make(map[string]*models.ApplicationSetting)}
}

func (f *fakeSettingRepo) set(key, value string) {
	v := value
	f.rows[key] = &models.ApplicationSetting{SettingKey: key, SettingValue: &v}
}

func (f *fakeSettingRepo) GetSettings() ([]models.ApplicationSetting, error) {
	var result []models.ApplicationSetting
	for _, row := range f.rows {
		result = append(result, *row)
	}
	return result, nil
}

func (f *fakeSettingRepo) GetSettingByKey(key string) (*models.ApplicationSetting, error) {
	row, ok := f.rows[key]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	result := *row
	return &result, nil
}

func (f *fakeSettingRepo) UpsertSetting(_ repositories.SQLExecutor, setting *models.ApplicationSetting) (*models.ApplicationSetting, error) {
	stored := *setting
	f.rows[setting.SettingKey] = &stored
	result := stored
	return &result, nil
}

func (f *fakeSettingRepo) DeleteSetting(_ repositories.SQLExecutor, key string) error {
	if _, ok := f.rows[key]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.rows, key)
	return nil
}

type fakeReservationRepo struct {
	customers    map[int64]*models.Customer
	suppliers    map[int64]*models.Supplier
	bookings     map[models.BookingType]map[int64]any
	reservations map[int64]*models.Reservation
	deleted      map[string]bool // "kind:id"
	nextID       int64
	failBooking  bool // force CreateBooking to fail, for rollback tests
}

func newFakeReservationRepo() *fakeReservationRepo {
	bookings := make(map[models.BookingType]map[int64]any)
	return &fakeReservationRepo{
		customers:    make(map[int64]*models.Customer),
		suppliers:    make(map[int64]*models.Supplier),
		bookings:     bookings,
		reservations: make(map[int64]*models.Reservation),
		deleted:      make(map[string]bool),
	}
}

func (f *fakeReservationRepo) CreateCustomer(_ repositories.SQLExecutor, customer *models.Customer) (*models.Customer, error) {
	f.nextID++
	stored := *customer
	stored.ID = f.nextID
	f.customers[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (f *fakeReservationRepo) GetCustomerByID(id int64) (*models.Customer, error) {
	customer, ok := f.customers[id]
	if !ok || f.deleted[fmt.Sprintf("customer:%d", id)] {
		return nil, repositories.ErrNotFound
	}
	result := *customer
	return &result, nil
}

func (f *fakeReservationRepo) CreateSupplier(_ repositories.SQLExecutor, supplier *models.Supplier) (*models.Supplier, error) {
	f.nextID++
	stored := *supplier
	stored.ID = f.nextID
	if stored.PaymentStatus == "" {
		stored.PaymentStatus = models.SupplierPaymentUnpaid
	}
	f.suppliers[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (f *fakeReservationRepo) GetSupplierByID(id int64) (*models.Supplier, error) {
	supplier, ok := f.suppliers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	result := *supplier
	return &result, nil
}

func (f *fakeReservationRepo) CreateBooking(_ repositories.SQLExecutor, bookingType models.BookingType, booking any) (int64, error) {
	if f.failBooking {
		return 0, repositories.ErrDatabaseError
	}
	f.nextID++
	if f.bookings[bookingType] == nil {
		f.bookings[bookingType] = make(map[int64]any)
	}
	f.bookings[bookingType][f.nextID] = booking
	return f.nextID, nil
}

func (f *fakeReservationRepo) GetBooking(bookingType models.BookingType, id int64) (any, error) {
	byID, ok := f.bookings[bookingType]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	booking, ok := byID[id]
	if !ok || f.deleted[fmt.Sprintf("%s:%d", bookingType, id)] {
		return nil, repositories.ErrNotFound
	}
	return booking, nil
}

func (f *fakeReservationRepo) UpdateBooking(_ repositories.SQLExecutor, bookingType models.BookingType, booking any) error {
	return nil // bookings are stored by pointer, merges are already visible
}

func (f *fakeReservationRepo) CreateReservation(_ repositories.SQLExecutor, reservation *models.Reservation) (*models.Reservation, error) {
	f.nextID++
	stored := *reservation
	stored.ID = f.nextID
	f.reservations[stored.ID] = &stored
	result := stored
	return &result, nil
}

func (f *fakeReservationRepo) GetReservationByID(id int64) (*models.Reservation, error) {
	reservation, ok := f.reservations[id]
	if !ok || f.deleted[fmt.Sprintf("reservation:%d", id)] {
		return nil, repositories.ErrNotFound
	}
	result := *reservation
	booking, err := f.GetBooking(models.BookingType(result.BookingType), result.BookingID)
	if err == nil {
		result.Booking = booking
	}
	if customer, custErr := f.GetCustomerByID(result.CustomerID); custErr == nil {
		result.Customer = customer
	}
	return &result, nil
}

func (f *fakeReservationRepo) GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error) {
	var result []models.Reservation
	for id, r := range f.reservations {
		if f.deleted[fmt.Sprintf("reservation:%d", id)] {
			continue
		}
		if filters.BookingType != nil && *filters.BookingType != "" && r.BookingType != *filters.BookingType {
			continue
		}
		if filters.Status != nil && *filters.Status != "" && r.Status != *filters.Status {
			continue
		}
		result = append(result, *r)
	}
	return result, len(result), nil
}

func (f *fakeReservationRepo) UpdateReservation(_ repositories.SQLExecutor, reservation *models.Reservation) (*models.Reservation, error) {
	if _, ok := f.reservations[reservation.ID]; !ok || f.deleted[fmt.Sprintf("reservation:%d", reservation.ID)] {
		return nil, repositories.ErrNotFound
	}
	stored := *reservation
	f.reservations[reservation.ID] = &stored
	result := stored
	return &result, nil
}

func (f *fakeReservationRepo) DeleteReservationCascade(_ repositories.SQLExecutor, reservation *models.Reservation) error {
	key := fmt.Sprintf("reservation:%d", reservation.ID)
	if _, ok := f.reservations[reservation.ID]; !ok || f.deleted[key] {
		return repositories.ErrNotFound
	}
	f.deleted[key] = true
	f.deleted[fmt.Sprintf("%s:%d", reservation.BookingType, reservation.BookingID)] = true
	f.deleted[fmt.Sprintf("customer:%d", reservation.CustomerID)] = true
	return nil
}

// fakeTxManager snapshots the reservation repo before the function runs and
// restores it when the function fails, mimicking a rollback.
type fakeTxManager struct {
	repo *fakeReservationRepo
}

func (m *fakeTxManager) WithinTransaction(fn func(tx repositories.SQLExecutor) error) error {
	snapshot := m.repo.snapshot()
	if err := fn(nil); err != nil {
		m.repo.restore(snapshot)
		return err
	}
	return nil
}

type repoSnapshot struct {
	customers    map[int64]*models.Customer
	suppliers    map[int64]*models.Supplier
	bookings     map[models.BookingType]map[int64]any
	reservations map[int64]*models.Reservation
	deleted      map[string]bool
	nextID       int64
}

func (f *fakeReservationRepo) snapshot() repoSnapshot {
	s := repoSnapshot{
		customers:    make(map[int64]*models.Customer, len(f.customers)),
		suppliers:    make(map[int64]*models.Supplier, len(f.suppliers)),
		bookings:     make(map[models.BookingType]map[int64]any, len(f.bookings)),
		reservations: make(map[int64]*models.Reservation, len(f.reservations)),
		deleted:      make(map[string]bool, len(f.deleted)),
		nextID:       f.nextID,
	}
	for k, v := range f.customers {
		s.customers[k] = v
	}
	for k, v := range f.suppliers {
		s.suppliers[k] = v
	}
	for t, byID := range f.bookings {
		inner := make(map[int64]any, len(byID))
		for k, v := range byID {
			inner[k] = v
		}
		s.bookings[t] = inner
	}
	for k, v := range f.reservations {
		s.reservations[k] = v
	}
	for k, v := range f.deleted {
		s.deleted[k] = v
	}
	return s
}

func (f *fakeReservationRepo) restore(s repoSnapshot) {
	f.customers = s.customers
	f.suppliers = s.suppliers
	f.bookings = s.bookings
	f.reservations = s.reservations
	f.deleted = s.deleted
	f.nextID = s.nextID
}
