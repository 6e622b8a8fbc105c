package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tripdesk_backend/internal/models"

	"github.com/lib/pq"
)

// ReservationRepository defines the interface for reservation, customer,
// supplier, and booking-variant database operations. Booking variants are
// addressed generically through their type tag; the concrete value passed in
// and returned is one of the models variant structs.
type ReservationRepository interface {
	// Customer and supplier
	CreateCustomer(executor SQLExecutor, customer *models.Customer) (*models.Customer, error)
	GetCustomerByID(id int64) (*models.Customer, error)
	CreateSupplier(executor SQLExecutor, supplier *models.Supplier) (*models.Supplier, error)
	GetSupplierByID(id int64) (*models.Supplier, error)

	// Booking variants
	CreateBooking(executor SQLExecutor, bookingType models.BookingType, booking any) (int64, error)
	GetBooking(bookingType models.BookingType, id int64) (any, error)
	UpdateBooking(executor SQLExecutor, bookingType models.BookingType, booking any) error

	// Reservation wrapper
	CreateReservation(executor SQLExecutor, reservation *models.Reservation) (*models.Reservation, error)
	GetReservationByID(id int64) (*models.Reservation, error)
	GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error)
	UpdateReservation(executor SQLExecutor, reservation *models.Reservation) (*models.Reservation, error)
	DeleteReservationCascade(executor SQLExecutor, reservation *models.Reservation) error
}

type reservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository(db *sql.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// --- Customer and supplier ---

func (r *reservationRepository) CreateCustomer(executor SQLExecutor, customer *models.Customer) (*models.Customer, error) {
	query := `INSERT INTO customers (full_name, phone_number, created_at, updated_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	customer.CreatedAt = currentTime
	customer.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		customer.FullName, customer.PhoneNumber, customer.CreatedAt, customer.UpdatedAt,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating customer: %v", ErrDatabaseError, err)
	}
	return customer, nil
}

func (r *reservationRepository) GetCustomerByID(id int64) (*models.Customer, error) {
	customer := &models.Customer{}
	query := `SELECT id, full_name, phone_number, created_at, updated_at
	          FROM customers WHERE id = $1 AND deleted_at IS NULL`
	err := r.db.QueryRow(query, id).Scan(
		&customer.ID, &customer.FullName, &customer.PhoneNumber, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: fetching customer ID %d: %v", ErrDatabaseError, id, err)
	}
	return customer, nil
}

func (r *reservationRepository) CreateSupplier(executor SQLExecutor, supplier *models.Supplier) (*models.Supplier, error) {
	query := `INSERT INTO suppliers (name, phone_number, payment_status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	supplier.CreatedAt = currentTime
	supplier.UpdatedAt = currentTime
	if supplier.PaymentStatus == "" {
		supplier.PaymentStatus = models.SupplierPaymentUnpaid
	}

	err := executor.QueryRow(query,
		supplier.Name, supplier.PhoneNumber, supplier.PaymentStatus,
		supplier.CreatedAt, supplier.UpdatedAt,
	).Scan(&supplier.ID, &supplier.CreatedAt, &supplier.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: creating supplier: %v", ErrDatabaseError, err)
	}
	return supplier, nil
}

func (r *reservationRepository) GetSupplierByID(id int64) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	query := `SELECT id, name, phone_number, payment_status, created_at, updated_at
	          FROM suppliers WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&supplier.ID, &supplier.Name, &supplier.PhoneNumber, &supplier.PaymentStatus,
		&supplier.CreatedAt, &supplier.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: fetching supplier ID %d: %v", ErrDatabaseError, id, err)
	}
	return supplier, nil
}

// --- Booking variants ---

// CreateBooking inserts the concrete booking record for the given type tag and
// returns the new row ID. The booking argument must be the matching variant
// struct pointer.
func (r *reservationRepository) CreateBooking(executor SQLExecutor, bookingType models.BookingType, booking any) (int64, error) {
	currentTime := time.Now()
	var id int64
	var err error

	switch bookingType {
	case models.BookingTypeFlight:
		f := booking.(*models.Flight)
		err = executor.QueryRow(
			`INSERT INTO flights (airline, flight_number, origin, destination, departure_date, return_date, passenger_count, pnr, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`,
			f.Airline, f.FlightNumber, f.Origin, f.Destination, f.DepartureDate, f.ReturnDate,
			f.PassengerCount, f.PNR, f.Status, currentTime, currentTime,
		).Scan(&id)
	case models.BookingTypeHotel:
		h := booking.(*models.Hotel)
		err = executor.QueryRow(
			`INSERT INTO hotels (hotel_name, city, check_in, check_out, room_count, guest_count, board_basis, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
			h.HotelName, h.City, h.CheckIn, h.CheckOut, h.RoomCount, h.GuestCount, h.BoardBasis,
			h.Status, currentTime, currentTime,
		).Scan(&id)
	case models.BookingTypeCruise:
		cr := booking.(*models.Cruise)
		err = executor.QueryRow(
			`INSERT INTO cruises (cruise_line, ship_name, departure_port, departure_date, nights, cabin_type, passenger_count, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
			cr.CruiseLine, cr.ShipName, cr.DeparturePort, cr.DepartureDate, cr.Nights, cr.CabinType,
			cr.PassengerCount, cr.Status, currentTime, currentTime,
		).Scan(&id)
	case models.BookingTypeVisa:
		v := booking.(*models.Visa)
		err = executor.QueryRow(
			`INSERT INTO visas (country, visa_type, application_date, travel_date, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			v.Country, v.VisaType, v.ApplicationDate, v.TravelDate, v.Status, currentTime, currentTime,
		).Scan(&id)
	case models.BookingTypeInsurance:
		ins := booking.(*models.Insurance)
		err = executor.QueryRow(
			`INSERT INTO insurances (provider, policy_type, start_date, end_date, traveler_count, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
			ins.Provider, ins.PolicyType, ins.StartDate, ins.EndDate, ins.TravelerCount,
			ins.Status, currentTime, currentTime,
		).Scan(&id)
	case models.BookingTypeTicket:
		t := booking.(*models.Ticket)
		err = executor.QueryRow(
			`INSERT INTO tickets (title, travel_date, quantity, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			t.Title, t.TravelDate, t.Quantity, t.Status, currentTime, currentTime,
		).Scan(&id)
	case models.BookingTypeTransportation:
		tr := booking.(*models.Transportation)
		err = executor.QueryRow(
			`INSERT INTO transportations (transport_type, pickup_location, dropoff_location, pickup_time, vehicle_type, passenger_count, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
			tr.TransportType, tr.PickupLocation, tr.DropoffLocation, tr.PickupTime, tr.VehicleType,
			tr.PassengerCount, tr.Status, currentTime, currentTime,
		).Scan(&id)
	case models.BookingTypeAppointment:
		a := booking.(*models.Appointment)
		err = executor.QueryRow(
			`INSERT INTO appointments (subject, appointment_date, location, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			a.Subject, a.AppointmentDate, a.Location, a.Status, currentTime, currentTime,
		).Scan(&id)
	default:
		return 0, fmt.Errorf("%w: unknown booking type %q", ErrDatabaseError, bookingType)
	}

	if err != nil {
		return 0, fmt.Errorf("%w: creating %s booking: %v", ErrDatabaseError, bookingType, err)
	}
	return id, nil
}

// GetBooking fetches the concrete booking record for the given type tag.
func (r *reservationRepository) GetBooking(bookingType models.BookingType, id int64) (any, error) {
	var err error
	var booking any

	switch bookingType {
	case models.BookingTypeFlight:
		f := &models.Flight{}
		var flightNumber, returnDate, pnr sql.NullString
		err = r.db.QueryRow(
			`SELECT id, airline, flight_number, origin, destination, to_char(departure_date, 'YYYY-MM-DD'),
			        to_char(return_date, 'YYYY-MM-DD'), passenger_count, pnr, status, created_at, updated_at
			 FROM flights WHERE id = $1 AND deleted_at IS NULL`, id,
		).Scan(&f.ID, &f.Airline, &flightNumber, &f.Origin, &f.Destination, &f.DepartureDate,
			&returnDate, &f.PassengerCount, &pnr, &f.Status, &f.CreatedAt, &f.UpdatedAt)
		if flightNumber.Valid {
			f.FlightNumber = &flightNumber.String
		}
		if returnDate.Valid {
			f.ReturnDate = &returnDate.String
		}
		if pnr.Valid {
			f.PNR = &pnr.String
		}
		booking = f
	case models.BookingTypeHotel:
		h := &models.Hotel{}
		var boardBasis sql.NullString
		err = r.db.QueryRow(
			`SELECT id, hotel_name, city, to_char(check_in, 'YYYY-MM-DD'), to_char(check_out, 'YYYY-MM-DD'),
			        room_count, guest_count, board_basis, status, created_at, updated_at
			 FROM hotels WHERE id = $1 AND deleted_at IS NULL`, id,
		).Scan(&h.ID, &h.HotelName, &h.City, &h.CheckIn, &h.CheckOut,
			&h.RoomCount, &h.GuestCount, &boardBasis, &h.Status, &h.CreatedAt, &h.UpdatedAt)
		if boardBasis.Valid {
			h.BoardBasis = &boardBasis.String
		}
		booking = h
	case models.BookingTypeCruise:
		cr := &models.Cruise{}
		var shipName, cabinType sql.NullString
		err = r.db.QueryRow(
			`SELECT id, cruise_line, ship_name, departure_port, to_char(departure_date, 'YYYY-MM-DD'),
			        nights, cabin_type, passenger_count, status, created_at, updated_at
			 FROM cruises WHERE id = $1 AND deleted_at IS NULL`, id,
		).Scan(&cr.ID, &cr.CruiseLine, &shipName, &cr.DeparturePort, &cr.DepartureDate,
			&cr.Nights, &cabinType, &cr.PassengerCount, &cr.Status, &cr.CreatedAt, &cr.UpdatedAt)
		if shipName.Valid {
			cr.ShipName = &shipName.String
		}
		if cabinType.Valid {
			cr.CabinType = &cabinType.String
		}
		booking = cr
	case models.BookingTypeVisa:
		v := &models.Visa{}
		var travelDate sql.NullString
		err = r.db.QueryRow(
			`SELECT id, country, visa_type, to_char(application_date, 'YYYY-MM-DD'),
			        to_char(travel_date, 'YYYY-MM-DD'), status, created_at, updated_at
			 FROM visas WHERE id = $1 AND deleted_at IS NULL`, id,
		).Scan(&v.ID, &v.Country, &v.VisaType, &v.ApplicationDate, &travelDate, &v.Status, &v.CreatedAt, &v.UpdatedAt)
		if travelDate.Valid {
			v.TravelDate = &travelDate.String
		}
		booking = v
	case models.BookingTypeInsurance:
		ins := &models.Insurance{}
		err = r.db.QueryRow(
			`SELECT id, provider, policy_type, to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
			        traveler_count, status, created_at, updated_at
			 FROM insurances WHERE id = $1 AND deleted_at IS NULL`, id,
		).Scan(&ins.ID, &ins.Provider, &ins.PolicyType, &ins.StartDate, &ins.EndDate,
			&ins.TravelerCount, &ins.Status, &ins.CreatedAt, &ins.UpdatedAt)
		booking = ins
	case models.BookingTypeTicket:
		t := &models.Ticket{}
		err = r.db.QueryRow(
			`SELECT id, title, to_char(travel_date, 'YYYY-MM-DD'), quantity, status, created_at, updated_at
			 FROM tickets WHERE id = $1 AND deleted_at IS NULL`, id,
		).Scan(&t.ID, &t.Title, &t.TravelDate, &t.Quantity, &t.Status, &t.CreatedAt, &t.UpdatedAt)
		booking = t
	case models.BookingTypeTransportation:
		tr := &models.Transportation{}
		var vehicleType sql.NullString
		err = r.db.QueryRow(
			`SELECT id, transport_type, pickup_location, dropoff_location, pickup_time, vehicle_type,
			        passenger_count, status, created_at, updated_at
			 FROM transportations WHERE id = $1 AND deleted_at IS NULL`, id,
		).Scan(&tr.ID, &tr.TransportType, &tr.PickupLocation, &tr.DropoffLocation, &tr.PickupTime,
			&vehicleType, &tr.PassengerCount, &tr.Status, &tr.CreatedAt, &tr.UpdatedAt)
		if vehicleType.Valid {
			tr.VehicleType = &vehicleType.String
		}
		booking = tr
	case models.BookingTypeAppointment:
		a := &models.Appointment{}
		var location sql.NullString
		err = r.db.QueryRow(
			`SELECT id, subject, appointment_date, location, status, created_at, updated_at
			 FROM appointments WHERE id = $1 AND deleted_at IS NULL`, id,
		).Scan(&a.ID, &a.Subject, &a.AppointmentDate, &location, &a.Status, &a.CreatedAt, &a.UpdatedAt)
		if location.Valid {
			a.Location = &location.String
		}
		booking = a
	default:
		return nil, fmt.Errorf("%w: unknown booking type %q", ErrDatabaseError, bookingType)
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: fetching %s booking ID %d: %v", ErrDatabaseError, bookingType, id, err)
	}
	return booking, nil
}

// UpdateBooking writes all mutable fields of the concrete booking record. The
// service layer is responsible for merging partial payloads onto the loaded
// record before calling this.
func (r *reservationRepository) UpdateBooking(executor SQLExecutor, bookingType models.BookingType, booking any) error {
	currentTime := time.Now()
	var result sql.Result
	var err error

	switch bookingType {
	case models.BookingTypeFlight:
		f := booking.(*models.Flight)
		result, err = executor.Exec(
			`UPDATE flights SET airline = $1, flight_number = $2, origin = $3, destination = $4,
			        departure_date = $5, return_date = $6, passenger_count = $7, pnr = $8, status = $9, updated_at = $10
			 WHERE id = $11 AND deleted_at IS NULL`,
			f.Airline, f.FlightNumber, f.Origin, f.Destination, f.DepartureDate, f.ReturnDate,
			f.PassengerCount, f.PNR, f.Status, currentTime, f.ID,
		)
	case models.BookingTypeHotel:
		h := booking.(*models.Hotel)
		result, err = executor.Exec(
			`UPDATE hotels SET hotel_name = $1, city = $2, check_in = $3, check_out = $4,
			        room_count = $5, guest_count = $6, board_basis = $7, status = $8, updated_at = $9
			 WHERE id = $10 AND deleted_at IS NULL`,
			h.HotelName, h.City, h.CheckIn, h.CheckOut, h.RoomCount, h.GuestCount, h.BoardBasis,
			h.Status, currentTime, h.ID,
		)
	case models.BookingTypeCruise:
		cr := booking.(*models.Cruise)
		result, err = executor.Exec(
			`UPDATE cruises SET cruise_line = $1, ship_name = $2, departure_port = $3, departure_date = $4,
			        nights = $5, cabin_type = $6, passenger_count = $7, status = $8, updated_at = $9
			 WHERE id = $10 AND deleted_at IS NULL`,
			cr.CruiseLine, cr.ShipName, cr.DeparturePort, cr.DepartureDate, cr.Nights, cr.CabinType,
			cr.PassengerCount, cr.Status, currentTime, cr.ID,
		)
	case models.BookingTypeVisa:
		v := booking.(*models.Visa)
		result, err = executor.Exec(
			`UPDATE visas SET country = $1, visa_type = $2, application_date = $3, travel_date = $4,
			        status = $5, updated_at = $6
			 WHERE id = $7 AND deleted_at IS NULL`,
			v.Country, v.VisaType, v.ApplicationDate, v.TravelDate, v.Status, currentTime, v.ID,
		)
	case models.BookingTypeInsurance:
		ins := booking.(*models.Insurance)
		result, err = executor.Exec(
			`UPDATE insurances SET provider = $1, policy_type = $2, start_date = $3, end_date = $4,
			        traveler_count = $5, status = $6, updated_at = $7
			 WHERE id = $8 AND deleted_at IS NULL`,
			ins.Provider, ins.PolicyType, ins.StartDate, ins.EndDate, ins.TravelerCount,
			ins.Status, currentTime, ins.ID,
		)
	case models.BookingTypeTicket:
		t := booking.(*models.Ticket)
		result, err = executor.Exec(
			`UPDATE tickets SET title = $1, travel_date = $2, quantity = $3, status = $4, updated_at = $5
			 WHERE id = $6 AND deleted_at IS NULL`,
			t.Title, t.TravelDate, t.Quantity, t.Status, currentTime, t.ID,
		)
	case models.BookingTypeTransportation:
		tr := booking.(*models.Transportation)
		result, err = executor.Exec(
			`UPDATE transportations SET transport_type = $1, pickup_location = $2, dropoff_location = $3,
			        pickup_time = $4, vehicle_type = $5, passenger_count = $6, status = $7, updated_at = $8
			 WHERE id = $9 AND deleted_at IS NULL`,
			tr.TransportType, tr.PickupLocation, tr.DropoffLocation, tr.PickupTime, tr.VehicleType,
			tr.PassengerCount, tr.Status, currentTime, tr.ID,
		)
	case models.BookingTypeAppointment:
		a := booking.(*models.Appointment)
		result, err = executor.Exec(
			`UPDATE appointments SET subject = $1, appointment_date = $2, location = $3, status = $4, updated_at = $5
			 WHERE id = $6 AND deleted_at IS NULL`,
			a.Subject, a.AppointmentDate, a.Location, a.Status, currentTime, a.ID,
		)
	default:
		return fmt.Errorf("%w: unknown booking type %q", ErrDatabaseError, bookingType)
	}

	if err != nil {
		return fmt.Errorf("%w: updating %s booking: %v", ErrDatabaseError, bookingType, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Reservation wrapper ---

func (r *reservationRepository) CreateReservation(executor SQLExecutor, reservation *models.Reservation) (*models.Reservation, error) {
	query := `INSERT INTO reservations
	            (reference, customer_id, supplier_id, booking_type, booking_id, status, sell_price, cost, fees, net_profit, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	reservation.CreatedAt = currentTime
	reservation.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		reservation.Reference, reservation.CustomerID, reservation.SupplierID,
		reservation.BookingType, reservation.BookingID, reservation.Status,
		reservation.SellPrice, reservation.Cost, reservation.Fees, reservation.NetProfit,
		reservation.Notes, reservation.CreatedAt, reservation.UpdatedAt,
	).Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return nil, fmt.Errorf("%w: creating reservation: %v", ErrDatabaseError, err)
	}
	return reservation, nil
}

const selectReservationFields = `
	rs.id, rs.reference, rs.customer_id, rs.supplier_id, rs.booking_type, rs.booking_id, rs.status,
	rs.sell_price, rs.cost, rs.fees, rs.net_profit, rs.notes, rs.created_at, rs.updated_at,
	COALESCE(c.full_name, ''), COALESCE(c.phone_number, ''),
	COALESCE(sp.name, ''), sp.phone_number, COALESCE(sp.payment_status, '')
`
const reservationJoins = `
	FROM reservations rs
	JOIN customers c ON rs.customer_id = c.id
	LEFT JOIN suppliers sp ON rs.supplier_id = sp.id
`

func scanReservationRow(row scanner, isList bool) (*models.Reservation, int, error) {
	var reservation models.Reservation
	var supplierID sql.NullInt64
	var notes sql.NullString
	var customerName, customerPhone sql.NullString
	var supplierName, supplierPhone, supplierPayment sql.NullString
	var totalCount int

	scanDest := []interface{}{
		&reservation.ID, &reservation.Reference, &reservation.CustomerID, &supplierID,
		&reservation.BookingType, &reservation.BookingID, &reservation.Status,
		&reservation.SellPrice, &reservation.Cost, &reservation.Fees, &reservation.NetProfit,
		&notes, &reservation.CreatedAt, &reservation.UpdatedAt,
		&customerName, &customerPhone,
		&supplierName, &supplierPhone, &supplierPayment,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning reservation: %v", ErrDatabaseError, err)
	}

	if notes.Valid {
		reservation.Notes = &notes.String
	}
	reservation.Customer = &models.Customer{
		ID:          reservation.CustomerID,
		FullName:    customerName.String,
		PhoneNumber: customerPhone.String,
	}
	if supplierID.Valid {
		reservation.SupplierID = &supplierID.Int64
		supplier := &models.Supplier{ID: supplierID.Int64, Name: supplierName.String, PaymentStatus: supplierPayment.String}
		if supplierPhone.Valid {
			supplier.PhoneNumber = &supplierPhone.String
		}
		reservation.Supplier = supplier
	}
	return &reservation, totalCount, nil
}

func (r *reservationRepository) GetReservationByID(id int64) (*models.Reservation, error) {
	query := "SELECT " + selectReservationFields + reservationJoins + " WHERE rs.id = $1 AND rs.deleted_at IS NULL"
	reservation, _, err := scanReservationRow(r.db.QueryRow(query, id), false)
	if err != nil {
		return nil, err
	}
	booking, err := r.GetBooking(models.BookingType(reservation.BookingType), reservation.BookingID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	reservation.Booking = booking
	return reservation, nil
}

func (r *reservationRepository) GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error) {
	reservations := []models.Reservation{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectReservationFields + ", COUNT(*) OVER() as total_count " + reservationJoins)

	conditions := []string{"rs.deleted_at IS NULL"}
	var args []interface{}
	argCount := 1

	if filters.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("rs.customer_id = $%d", argCount))
		args = append(args, *filters.CustomerID)
		argCount++
	}
	if filters.BookingType != nil && *filters.BookingType != "" {
		conditions = append(conditions, fmt.Sprintf("rs.booking_type = $%d", argCount))
		args = append(args, *filters.BookingType)
		argCount++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("rs.status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}

	queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	queryBuilder.WriteString(" ORDER BY rs.created_at DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying reservations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		reservation, scannedTotalCount, scanErr := scanReservationRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		reservations = append(reservations, *reservation)
		totalCount = scannedTotalCount
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating reservation rows: %v", ErrDatabaseError, err)
	}

	for i := range reservations {
		booking, bookingErr := r.GetBooking(models.BookingType(reservations[i].BookingType), reservations[i].BookingID)
		if bookingErr != nil && !errors.Is(bookingErr, ErrNotFound) {
			return nil, 0, bookingErr
		}
		reservations[i].Booking = booking
	}
	return reservations, totalCount, nil
}

func (r *reservationRepository) UpdateReservation(executor SQLExecutor, reservation *models.Reservation) (*models.Reservation, error) {
	query := `UPDATE reservations SET
	            supplier_id = $1, status = $2, sell_price = $3, cost = $4, fees = $5, net_profit = $6, notes = $7, updated_at = $8
	          WHERE id = $9 AND deleted_at IS NULL
	          RETURNING updated_at`
	reservation.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		reservation.SupplierID, reservation.Status, reservation.SellPrice, reservation.Cost,
		reservation.Fees, reservation.NetProfit, reservation.Notes, reservation.UpdatedAt, reservation.ID,
	).Scan(&reservation.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating reservation ID %d: %v", ErrDatabaseError, reservation.ID, err)
	}
	return reservation, nil
}

// variantTables maps type tags to their table names for the soft-delete cascade.
var variantTables = map[models.BookingType]string{
	models.BookingTypeFlight:         "flights",
	models.BookingTypeHotel:          "hotels",
	models.BookingTypeCruise:         "cruises",
	models.BookingTypeVisa:           "visas",
	models.BookingTypeInsurance:      "insurances",
	models.BookingTypeTicket:         "tickets",
	models.BookingTypeTransportation: "transportations",
	models.BookingTypeAppointment:    "appointments",
}

// DeleteReservationCascade soft-deletes the reservation, its concrete booking
// record, and its customer in one pass. Callers run it inside a transaction.
func (r *reservationRepository) DeleteReservationCascade(executor SQLExecutor, reservation *models.Reservation) error {
	currentTime := time.Now()

	result, err := executor.Exec(
		`UPDATE reservations SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		currentTime, reservation.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: deleting reservation ID %d: %v", ErrDatabaseError, reservation.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}

	table, ok := variantTables[models.BookingType(reservation.BookingType)]
	if !ok {
		return fmt.Errorf("%w: unknown booking type %q", ErrDatabaseError, reservation.BookingType)
	}
	if _, err := executor.Exec(
		fmt.Sprintf(`UPDATE %s SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`, table),
		currentTime, reservation.BookingID,
	); err != nil {
		return fmt.Errorf("%w: deleting %s booking ID %d: %v", ErrDatabaseError, reservation.BookingType, reservation.BookingID, err)
	}

	if _, err := executor.Exec(
		`UPDATE customers SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		currentTime, reservation.CustomerID,
	); err != nil {
		return fmt.Errorf("%w: deleting customer ID %d: %v", ErrDatabaseError, reservation.CustomerID, err)
	}
	return nil
}
