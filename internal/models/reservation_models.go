package models

import "time"

// BookingType identifies which concrete booking record a reservation wraps.
type BookingType string

const (
	BookingTypeFlight         BookingType = "flight"
	BookingTypeHotel          BookingType = "hotel"
	BookingTypeCruise         BookingType = "cruise"
	BookingTypeVisa           BookingType = "visa"
	BookingTypeInsurance      BookingType = "insurance"
	BookingTypeTicket         BookingType = "ticket"
	BookingTypeTransportation BookingType = "transportation"
	BookingTypeAppointment    BookingType = "appointment"
)

// IsValidBookingType checks if the provided tag is one of the eight known variants.
func IsValidBookingType(t string) bool {
	switch BookingType(t) {
	case BookingTypeFlight, BookingTypeHotel, BookingTypeCruise, BookingTypeVisa,
		BookingTypeInsurance, BookingTypeTicket, BookingTypeTransportation, BookingTypeAppointment:
		return true
	default:
		return false
	}
}

// IsSupplierBearing reports whether the variant carries a supplier record.
func (t BookingType) IsSupplierBearing() bool {
	switch t {
	case BookingTypeFlight, BookingTypeHotel, BookingTypeCruise, BookingTypeTicket, BookingTypeTransportation:
		return true
	default:
		return false
	}
}

// ReservationStatus defines the lifecycle of the reservation wrapper itself.
type ReservationStatus string

const (
	ReservationStatusHold      ReservationStatus = "Hold"
	ReservationStatusIssued    ReservationStatus = "Issued"
	ReservationStatusCancelled ReservationStatus = "Cancelled"
)

// IsValidReservationStatus checks if the provided status string is a valid ReservationStatus.
func IsValidReservationStatus(status string) bool {
	switch ReservationStatus(status) {
	case ReservationStatusHold, ReservationStatusIssued, ReservationStatusCancelled:
		return true
	default:
		return false
	}
}

// Customer is the person the reservation is sold to.
type Customer struct {
	ID          int64     `json:"id" db:"id"`
	FullName    string    `json:"full_name" db:"full_name"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// SupplierPaymentStatus values for suppliers.payment_status.
const (
	SupplierPaymentUnpaid  = "Unpaid"
	SupplierPaymentPartial = "Partial"
	SupplierPaymentPaid    = "Paid"
)

// IsValidSupplierPaymentStatus checks a suppliers.payment_status value.
func IsValidSupplierPaymentStatus(status string) bool {
	switch status {
	case SupplierPaymentUnpaid, SupplierPaymentPartial, SupplierPaymentPaid:
		return true
	default:
		return false
	}
}

// Supplier is the vendor the booking is purchased from. Only the
// supplier-bearing variants reference one.
type Supplier struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	PhoneNumber   *string   `json:"phone_number,omitempty" db:"phone_number"`
	PaymentStatus string    `json:"payment_status" db:"payment_status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Reservation is the financial/customer wrapper around exactly one concrete
// booking record, referenced via BookingType + BookingID.
type Reservation struct {
	ID          int64     `json:"id" db:"id"`
	Reference   string    `json:"reference" db:"reference"`
	CustomerID  int64     `json:"customer_id" db:"customer_id"`
	SupplierID  *int64    `json:"supplier_id,omitempty" db:"supplier_id"`
	BookingType string    `json:"booking_type" db:"booking_type"`
	BookingID   int64     `json:"booking_id" db:"booking_id"`
	Status      string    `json:"status" db:"status"`
	SellPrice   float64   `json:"sell_price" db:"sell_price"`
	Cost        float64   `json:"cost" db:"cost"`
	Fees        float64   `json:"fees" db:"fees"`
	NetProfit   float64   `json:"net_profit" db:"net_profit"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	Customer    *Customer `json:"customer,omitempty"` // For joining with Customer details
	Supplier    *Supplier `json:"supplier,omitempty"` // For joining with Supplier details
	Booking     any       `json:"booking,omitempty"`  // The concrete variant record
}

// ReservationFilters defines the available filters for querying reservations.
type ReservationFilters struct {
	CustomerID  *int64  `form:"customer_id"`
	BookingType *string `form:"type"`
	Status      *string `form:"status"`
	Page        int     `form:"page"`
	PageSize    int     `form:"page_size"`
}

// --- Booking variants ---

// FlightStatus values. New flights always start Pending.
const (
	FlightStatusPending   = "Pending"
	FlightStatusTicketed  = "Ticketed"
	FlightStatusCancelled = "Cancelled"
)

// IsValidFlightStatus checks a flights.status value.
func IsValidFlightStatus(status string) bool {
	switch status {
	case FlightStatusPending, FlightStatusTicketed, FlightStatusCancelled:
		return true
	default:
		return false
	}
}

// Flight is an air booking.
type Flight struct {
	ID             int64     `json:"id" db:"id"`
	Airline        string    `json:"airline" db:"airline"`
	FlightNumber   *string   `json:"flight_number,omitempty" db:"flight_number"`
	Origin         string    `json:"origin" db:"origin"`
	Destination    string    `json:"destination" db:"destination"`
	DepartureDate  string    `json:"departure_date" db:"departure_date"` // YYYY-MM-DD
	ReturnDate     *string   `json:"return_date,omitempty" db:"return_date"`
	PassengerCount int       `json:"passenger_count" db:"passenger_count"`
	PNR            *string   `json:"pnr,omitempty" db:"pnr"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// HotelStatus values.
const (
	HotelStatusTentative = "Tentative"
	HotelStatusConfirmed = "Confirmed"
	HotelStatusCancelled = "Cancelled"
)

// IsValidHotelStatus checks a hotels.status value.
func IsValidHotelStatus(status string) bool {
	switch status {
	case HotelStatusTentative, HotelStatusConfirmed, HotelStatusCancelled:
		return true
	default:
		return false
	}
}

// Hotel is an accommodation booking.
type Hotel struct {
	ID         int64     `json:"id" db:"id"`
	HotelName  string    `json:"hotel_name" db:"hotel_name"`
	City       string    `json:"city" db:"city"`
	CheckIn    string    `json:"check_in" db:"check_in"`   // YYYY-MM-DD
	CheckOut   string    `json:"check_out" db:"check_out"` // YYYY-MM-DD
	RoomCount  int       `json:"room_count" db:"room_count"`
	GuestCount int       `json:"guest_count" db:"guest_count"`
	BoardBasis *string   `json:"board_basis,omitempty" db:"board_basis"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CruiseStatus values, the same lifecycle as hotels.
const (
	CruiseStatusTentative = "Tentative"
	CruiseStatusConfirmed = "Confirmed"
	CruiseStatusCancelled = "Cancelled"
)

// IsValidCruiseStatus checks a cruises.status value.
func IsValidCruiseStatus(status string) bool {
	switch status {
	case CruiseStatusTentative, CruiseStatusConfirmed, CruiseStatusCancelled:
		return true
	default:
		return false
	}
}

// Cruise is a cruise booking.
type Cruise struct {
	ID             int64     `json:"id" db:"id"`
	CruiseLine     string    `json:"cruise_line" db:"cruise_line"`
	ShipName       *string   `json:"ship_name,omitempty" db:"ship_name"`
	DeparturePort  string    `json:"departure_port" db:"departure_port"`
	DepartureDate  string    `json:"departure_date" db:"departure_date"` // YYYY-MM-DD
	Nights         int       `json:"nights" db:"nights"`
	CabinType      *string   `json:"cabin_type,omitempty" db:"cabin_type"`
	PassengerCount int       `json:"passenger_count" db:"passenger_count"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// VisaStatus values.
const (
	VisaStatusPreparing = "Preparing"
	VisaStatusSubmitted = "Submitted"
	VisaStatusIssued    = "Issued"
	VisaStatusRejected  = "Rejected"
)

// IsValidVisaStatus checks a visas.status value.
func IsValidVisaStatus(status string) bool {
	switch status {
	case VisaStatusPreparing, VisaStatusSubmitted, VisaStatusIssued, VisaStatusRejected:
		return true
	default:
		return false
	}
}

// Visa is a visa application handled on behalf of a customer.
type Visa struct {
	ID              int64     `json:"id" db:"id"`
	Country         string    `json:"country" db:"country"`
	VisaType        string    `json:"visa_type" db:"visa_type"`
	ApplicationDate string    `json:"application_date" db:"application_date"` // YYYY-MM-DD
	TravelDate      *string   `json:"travel_date,omitempty" db:"travel_date"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// InsuranceStatus values.
const (
	InsuranceStatusQuoted    = "Quoted"
	InsuranceStatusActive    = "Active"
	InsuranceStatusCancelled = "Cancelled"
)

// IsValidInsuranceStatus checks an insurances.status value.
func IsValidInsuranceStatus(status string) bool {
	switch status {
	case InsuranceStatusQuoted, InsuranceStatusActive, InsuranceStatusCancelled:
		return true
	default:
		return false
	}
}

// Insurance is a travel insurance policy.
type Insurance struct {
	ID            int64     `json:"id" db:"id"`
	Provider      string    `json:"provider" db:"provider"`
	PolicyType    string    `json:"policy_type" db:"policy_type"`
	StartDate     string    `json:"start_date" db:"start_date"` // YYYY-MM-DD
	EndDate       string    `json:"end_date" db:"end_date"`     // YYYY-MM-DD
	TravelerCount int       `json:"traveler_count" db:"traveler_count"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// TicketStatus values. New tickets always start Pending.
const (
	TicketStatusPending   = "Pending"
	TicketStatusIssued    = "Issued"
	TicketStatusCancelled = "Cancelled"
)

// IsValidTicketStatus checks a tickets.status value.
func IsValidTicketStatus(status string) bool {
	switch status {
	case TicketStatusPending, TicketStatusIssued, TicketStatusCancelled:
		return true
	default:
		return false
	}
}

// Ticket is a generic admission or rail ticket booking.
type Ticket struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	TravelDate string    `json:"travel_date" db:"travel_date"` // YYYY-MM-DD
	Quantity   int       `json:"quantity" db:"quantity"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// TransportationStatus values.
const (
	TransportationStatusScheduled = "Scheduled"
	TransportationStatusCompleted = "Completed"
	TransportationStatusCancelled = "Cancelled"
)

// IsValidTransportationStatus checks a transportations.status value.
func IsValidTransportationStatus(status string) bool {
	switch status {
	case TransportationStatusScheduled, TransportationStatusCompleted, TransportationStatusCancelled:
		return true
	default:
		return false
	}
}

// Transportation is a ground transfer booking.
type Transportation struct {
	ID              int64     `json:"id" db:"id"`
	TransportType   string    `json:"transport_type" db:"transport_type"`
	PickupLocation  string    `json:"pickup_location" db:"pickup_location"`
	DropoffLocation string    `json:"dropoff_location" db:"dropoff_location"`
	PickupTime      time.Time `json:"pickup_time" db:"pickup_time"`
	VehicleType     *string   `json:"vehicle_type,omitempty" db:"vehicle_type"`
	PassengerCount  int       `json:"passenger_count" db:"passenger_count"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// AppointmentStatus values, the same lifecycle as transportations.
const (
	AppointmentStatusScheduled = "Scheduled"
	AppointmentStatusCompleted = "Completed"
	AppointmentStatusCancelled = "Cancelled"
)

// IsValidAppointmentStatus checks an appointments.status value.
func IsValidAppointmentStatus(status string) bool {
	switch status {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	default:
		return false
	}
}

// Appointment is a consultation or office appointment booking.
type Appointment struct {
	ID              int64     `json:"id" db:"id"`
	Subject         string    `json:"subject" db:"subject"`
	AppointmentDate time.Time `json:"appointment_date" db:"appointment_date"`
	Location        *string   `json:"location,omitempty" db:"location"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
