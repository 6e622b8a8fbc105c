package services

import (
	"errors"
	"fmt"
	"time"

	"tripdesk_backend/internal/models"
	"tripdesk_backend/internal/repositories"
	"tripdesk_backend/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrInvalidBookingType    = errors.New("invalid booking type")
	ErrBookingPayloadMissing = errors.New("booking payload missing for the given booking type")
	ErrBookingTypeMismatch   = errors.New("booking payload does not match the reservation's booking type")
	ErrSupplierRequired      = errors.New("supplier is required for this booking type")
)

// --- Create payloads ---

// CustomerPayload carries the person the reservation is sold to.
type CustomerPayload struct {
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// SupplierPayload carries the vendor for supplier-bearing booking types.
type SupplierPayload struct {
	Name          string  `json:"name" binding:"required"`
	PhoneNumber   *string `json:"phone_number"`
	PaymentStatus string  `json:"payment_status" binding:"omitempty,oneof=Unpaid Partial Paid"`
}

type FlightPayload struct {
	Airline        string  `json:"airline" binding:"required"`
	FlightNumber   *string `json:"flight_number"`
	Origin         string  `json:"origin" binding:"required"`
	Destination    string  `json:"destination" binding:"required"`
	DepartureDate  string  `json:"departure_date" binding:"required,datetime=2006-01-02"`
	ReturnDate     *string `json:"return_date" binding:"omitempty,datetime=2006-01-02"`
	PassengerCount int     `json:"passenger_count" binding:"required,gte=1"`
	PNR            *string `json:"pnr"`
}

type HotelPayload struct {
	HotelName  string  `json:"hotel_name" binding:"required"`
	City       string  `json:"city" binding:"required"`
	CheckIn    string  `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut   string  `json:"check_out" binding:"required,datetime=2006-01-02"`
	RoomCount  int     `json:"room_count" binding:"required,gte=1"`
	GuestCount int     `json:"guest_count" binding:"required,gte=1"`
	BoardBasis *string `json:"board_basis"`
	Status     string  `json:"status" binding:"omitempty,oneof=Tentative Confirmed Cancelled"`
}

type CruisePayload struct {
	CruiseLine     string  `json:"cruise_line" binding:"required"`
	ShipName       *string `json:"ship_name"`
	DeparturePort  string  `json:"departure_port" binding:"required"`
	DepartureDate  string  `json:"departure_date" binding:"required,datetime=2006-01-02"`
	Nights         int     `json:"nights" binding:"required,gte=1"`
	CabinType      *string `json:"cabin_type"`
	PassengerCount int     `json:"passenger_count" binding:"required,gte=1"`
	Status         string  `json:"status" binding:"omitempty,oneof=Tentative Confirmed Cancelled"`
}

type VisaPayload struct {
	Country         string  `json:"country" binding:"required"`
	VisaType        string  `json:"visa_type" binding:"required"`
	ApplicationDate string  `json:"application_date" binding:"required,datetime=2006-01-02"`
	TravelDate      *string `json:"travel_date" binding:"omitempty,datetime=2006-01-02"`
	Status          string  `json:"status" binding:"omitempty,oneof=Preparing Submitted Issued Rejected"`
}

type InsurancePayload struct {
	Provider      string `json:"provider" binding:"required"`
	PolicyType    string `json:"policy_type" binding:"required"`
	StartDate     string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date" binding:"required,datetime=2006-01-02"`
	TravelerCount int    `json:"traveler_count" binding:"required,gte=1"`
	Status        string `json:"status" binding:"omitempty,oneof=Quoted Active Cancelled"`
}

type TicketPayload struct {
	Title      string `json:"title" binding:"required"`
	TravelDate string `json:"travel_date" binding:"required,datetime=2006-01-02"`
	Quantity   int    `json:"quantity" binding:"required,gte=1"`
}

type TransportationPayload struct {
	TransportType   string    `json:"transport_type" binding:"required"`
	PickupLocation  string    `json:"pickup_location" binding:"required"`
	DropoffLocation string    `json:"dropoff_location" binding:"required"`
	PickupTime      time.Time `json:"pickup_time" binding:"required"`
	VehicleType     *string   `json:"vehicle_type"`
	PassengerCount  int       `json:"passenger_count" binding:"required,gte=1"`
	Status          string    `json:"status" binding:"omitempty,oneof=Scheduled Completed Cancelled"`
}

type AppointmentPayload struct {
	Subject         string    `json:"subject" binding:"required"`
	AppointmentDate time.Time `json:"appointment_date" binding:"required"`
	Location        *string   `json:"location"`
	Status          string    `json:"status" binding:"omitempty,oneof=Scheduled Completed Cancelled"`
}

// CreateReservationRequest is the full create payload. Exactly one of the
// variant fields must be set, matching BookingType.
type CreateReservationRequest struct {
	Customer    CustomerPayload  `json:"customer" binding:"required"`
	Supplier    *SupplierPayload `json:"supplier"`
	BookingType string           `json:"booking_type" binding:"required"`

	Flight         *FlightPayload         `json:"flight"`
	Hotel          *HotelPayload          `json:"hotel"`
	Cruise         *CruisePayload         `json:"cruise"`
	Visa           *VisaPayload           `json:"visa"`
	Insurance      *InsurancePayload      `json:"insurance"`
	Ticket         *TicketPayload         `json:"ticket"`
	Transportation *TransportationPayload `json:"transportation"`
	Appointment    *AppointmentPayload    `json:"appointment"`

	SellPrice *float64 `json:"sell_price" binding:"required,gte=0"`
	Cost      *float64 `json:"cost" binding:"required,gte=0"`
	Fees      *float64 `json:"fees" binding:"omitempty,gte=0"`
	NetProfit *float64 `json:"net_profit"`
	Notes     *string  `json:"notes"`
}

// --- Patch payloads ---

type FlightPatch struct {
	Airline        *string `json:"airline"`
	FlightNumber   *string `json:"flight_number"`
	Origin         *string `json:"origin"`
	Destination    *string `json:"destination"`
	DepartureDate  *string `json:"departure_date" binding:"omitempty,datetime=2006-01-02"`
	ReturnDate     *string `json:"return_date" binding:"omitempty,datetime=2006-01-02"`
	PassengerCount *int    `json:"passenger_count" binding:"omitempty,gte=1"`
	PNR            *string `json:"pnr"`
	Status         *string `json:"status" binding:"omitempty,oneof=Pending Ticketed Cancelled"`
}

type HotelPatch struct {
	HotelName  *string `json:"hotel_name"`
	City       *string `json:"city"`
	CheckIn    *string `json:"check_in" binding:"omitempty,datetime=2006-01-02"`
	CheckOut   *string `json:"check_out" binding:"omitempty,datetime=2006-01-02"`
	RoomCount  *int    `json:"room_count" binding:"omitempty,gte=1"`
	GuestCount *int    `json:"guest_count" binding:"omitempty,gte=1"`
	BoardBasis *string `json:"board_basis"`
	Status     *string `json:"status" binding:"omitempty,oneof=Tentative Confirmed Cancelled"`
}

type CruisePatch struct {
	CruiseLine     *string `json:"cruise_line"`
	ShipName       *string `json:"ship_name"`
	DeparturePort  *string `json:"departure_port"`
	DepartureDate  *string `json:"departure_date" binding:"omitempty,datetime=2006-01-02"`
	Nights         *int    `json:"nights" binding:"omitempty,gte=1"`
	CabinType      *string `json:"cabin_type"`
	PassengerCount *int    `json:"passenger_count" binding:"omitempty,gte=1"`
	Status         *string `json:"status" binding:"omitempty,oneof=Tentative Confirmed Cancelled"`
}

type VisaPatch struct {
	Country         *string `json:"country"`
	VisaType        *string `json:"visa_type"`
	ApplicationDate *string `json:"application_date" binding:"omitempty,datetime=2006-01-02"`
	TravelDate      *string `json:"travel_date" binding:"omitempty,datetime=2006-01-02"`
	Status          *string `json:"status" binding:"omitempty,oneof=Preparing Submitted Issued Rejected"`
}

type InsurancePatch struct {
	Provider      *string `json:"provider"`
	PolicyType    *string `json:"policy_type"`
	StartDate     *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate       *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	TravelerCount *int    `json:"traveler_count" binding:"omitempty,gte=1"`
	Status        *string `json:"status" binding:"omitempty,oneof=Quoted Active Cancelled"`
}

type TicketPatch struct {
	Title      *string `json:"title"`
	TravelDate *string `json:"travel_date" binding:"omitempty,datetime=2006-01-02"`
	Quantity   *int    `json:"quantity" binding:"omitempty,gte=1"`
	Status     *string `json:"status" binding:"omitempty,oneof=Pending Issued Cancelled"`
}

type TransportationPatch struct {
	TransportType   *string    `json:"transport_type"`
	PickupLocation  *string    `json:"pickup_location"`
	DropoffLocation *string    `json:"dropoff_location"`
	PickupTime      *time.Time `json:"pickup_time"`
	VehicleType     *string    `json:"vehicle_type"`
	PassengerCount  *int       `json:"passenger_count" binding:"omitempty,gte=1"`
	Status          *string    `json:"status" binding:"omitempty,oneof=Scheduled Completed Cancelled"`
}

type AppointmentPatch struct {
	Subject         *string    `json:"subject"`
	AppointmentDate *time.Time `json:"appointment_date"`
	Location        *string    `json:"location"`
	Status          *string    `json:"status" binding:"omitempty,oneof=Scheduled Completed Cancelled"`
}

// UpdateReservationRequest is the partial update payload. Absent fields keep
// their stored values. At most one variant patch may be set and it must match
// the reservation's booking type.
type UpdateReservationRequest struct {
	Status    *string  `json:"status" binding:"omitempty,oneof=Hold Issued Cancelled"`
	SellPrice *float64 `json:"sell_price" binding:"omitempty,gte=0"`
	Cost      *float64 `json:"cost" binding:"omitempty,gte=0"`
	Fees      *float64 `json:"fees" binding:"omitempty,gte=0"`
	NetProfit *float64 `json:"net_profit"`
	Notes     *string  `json:"notes"`

	Flight         *FlightPatch         `json:"flight"`
	Hotel          *HotelPatch          `json:"hotel"`
	Cruise         *CruisePatch         `json:"cruise"`
	Visa           *VisaPatch           `json:"visa"`
	Insurance      *InsurancePatch      `json:"insurance"`
	Ticket         *TicketPatch         `json:"ticket"`
	Transportation *TransportationPatch `json:"transportation"`
	Appointment    *AppointmentPatch    `json:"appointment"`
}

// ReservationService manages the reservation wrapper and its polymorphic
// booking variants.
type ReservationService interface {
	CreateReservation(req CreateReservationRequest) (*models.Reservation, error)
	GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error)
	GetReservationByID(reservationID int64) (*models.Reservation, error)
	UpdateReservation(reservationID int64, req UpdateReservationRequest) (*models.Reservation, error)
	DeleteReservation(reservationID int64) error
}

type reservationService struct {
	reservationRepo repositories.ReservationRepository
	txManager       repositories.TxManager
}

// NewReservationService creates a new instance of ReservationService.
func NewReservationService(rr repositories.ReservationRepository, tm repositories.TxManager) ReservationService {
	return &reservationService{reservationRepo: rr, txManager: tm}
}

// CreateReservation runs the whole create sequence in one transaction:
// customer, then concrete booking, then supplier when the variant carries one,
// then the reservation row. A failure at any step leaves no orphan rows.
// The reservation always starts on Hold; Flight and Ticket bookings always
// start Pending regardless of payload.
func (s *reservationService) CreateReservation(req CreateReservationRequest) (*models.Reservation, error) {
	if !models.IsValidBookingType(req.BookingType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBookingType, req.BookingType)
	}
	bookingType := models.BookingType(req.BookingType)

	booking, err := buildBooking(bookingType, &req)
	if err != nil {
		return nil, err
	}

	if bookingType.IsSupplierBearing() && req.Supplier == nil {
		return nil, fmt.Errorf("%w: %s", ErrSupplierRequired, bookingType)
	}

	fees := 0.0
	if req.Fees != nil {
		fees = *req.Fees
	}
	netProfit := *req.SellPrice - *req.Cost - fees
	if req.NetProfit != nil {
		netProfit = *req.NetProfit
	}

	var reservationID int64
	err = s.txManager.WithinTransaction(func(tx repositories.SQLExecutor) error {
		customer, txErr := s.reservationRepo.CreateCustomer(tx, &models.Customer{
			FullName:    req.Customer.FullName,
			PhoneNumber: req.Customer.PhoneNumber,
		})
		if txErr != nil {
			return txErr
		}

		bookingID, txErr := s.reservationRepo.CreateBooking(tx, bookingType, booking)
		if txErr != nil {
			return txErr
		}

		var supplierID *int64
		if bookingType.IsSupplierBearing() {
			supplier, supErr := s.reservationRepo.CreateSupplier(tx, &models.Supplier{
				Name:          req.Supplier.Name,
				PhoneNumber:   req.Supplier.PhoneNumber,
				PaymentStatus: req.Supplier.PaymentStatus,
			})
			if supErr != nil {
				return supErr
			}
			supplierID = &supplier.ID
		}

		reservation := &models.Reservation{
			Reference:   uuid.NewString(),
			CustomerID:  customer.ID,
			SupplierID:  supplierID,
			BookingType: string(bookingType),
			BookingID:   bookingID,
			Status:      string(models.ReservationStatusHold),
			SellPrice:   *req.SellPrice,
			Cost:        *req.Cost,
			Fees:        fees,
			NetProfit:   netProfit,
			Notes:       req.Notes,
		}
		created, txErr := s.reservationRepo.CreateReservation(tx, reservation)
		if txErr != nil {
			return txErr
		}
		reservationID = created.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("reservation created", map[string]interface{}{
		"reservation_id": reservationID,
		"booking_type":   string(bookingType),
	})
	return s.reservationRepo.GetReservationByID(reservationID)
}

func (s *reservationService) GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error) {
	if filters.BookingType != nil && *filters.BookingType != "" && !models.IsValidBookingType(*filters.BookingType) {
		return nil, 0, fmt.Errorf("%w: %q", ErrInvalidBookingType, *filters.BookingType)
	}
	return s.reservationRepo.GetReservations(filters)
}

func (s *reservationService) GetReservationByID(reservationID int64) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return reservation, nil
}

// UpdateReservation merges the supplied fields onto the stored reservation and
// its booking record. Net profit is recomputed from the effective sell, cost,
// and fees whenever any of the three changes, unless an explicit net profit
// override is part of the same request.
func (s *reservationService) UpdateReservation(reservationID int64, req UpdateReservationRequest) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	bookingType := models.BookingType(reservation.BookingType)

	patched, hasPatch, err := applyBookingPatch(bookingType, reservation.Booking, &req)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		reservation.Status = *req.Status
	}
	financialsChanged := req.SellPrice != nil || req.Cost != nil || req.Fees != nil
	if req.SellPrice != nil {
		reservation.SellPrice = *req.SellPrice
	}
	if req.Cost != nil {
		reservation.Cost = *req.Cost
	}
	if req.Fees != nil {
		reservation.Fees = *req.Fees
	}
	if req.NetProfit != nil {
		reservation.NetProfit = *req.NetProfit
	} else if financialsChanged {
		reservation.NetProfit = reservation.SellPrice - reservation.Cost - reservation.Fees
	}
	if req.Notes != nil {
		reservation.Notes = req.Notes
	}

	err = s.txManager.WithinTransaction(func(tx repositories.SQLExecutor) error {
		if hasPatch {
			if txErr := s.reservationRepo.UpdateBooking(tx, bookingType, patched); txErr != nil {
				return txErr
			}
		}
		_, txErr := s.reservationRepo.UpdateReservation(tx, reservation)
		return txErr
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return s.reservationRepo.GetReservationByID(reservationID)
}

// DeleteReservation soft-deletes the reservation together with its booking
// record and customer.
func (s *reservationService) DeleteReservation(reservationID int64) error {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReservationNotFound
		}
		return err
	}

	err = s.txManager.WithinTransaction(func(tx repositories.SQLExecutor) error {
		return s.reservationRepo.DeleteReservationCascade(tx, reservation)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReservationNotFound
		}
		return err
	}
	utils.LogInfo("reservation deleted", map[string]interface{}{"reservation_id": reservationID})
	return nil
}

// buildBooking turns the matching create payload into a variant model with a
// normalized initial status.
func buildBooking(bookingType models.BookingType, req *CreateReservationRequest) (any, error) {
	switch bookingType {
	case models.BookingTypeFlight:
		if req.Flight == nil {
			return nil, fmt.Errorf("%w: flight", ErrBookingPayloadMissing)
		}
		p := req.Flight
		return &models.Flight{
			Airline:        p.Airline,
			FlightNumber:   p.FlightNumber,
			Origin:         p.Origin,
			Destination:    p.Destination,
			DepartureDate:  p.DepartureDate,
			ReturnDate:     p.ReturnDate,
			PassengerCount: p.PassengerCount,
			PNR:            p.PNR,
			Status:         models.FlightStatusPending,
		}, nil
	case models.BookingTypeHotel:
		if req.Hotel == nil {
			return nil, fmt.Errorf("%w: hotel", ErrBookingPayloadMissing)
		}
		p := req.Hotel
		status := p.Status
		if status == "" {
			status = models.HotelStatusTentative
		}
		return &models.Hotel{
			HotelName:  p.HotelName,
			City:       p.City,
			CheckIn:    p.CheckIn,
			CheckOut:   p.CheckOut,
			RoomCount:  p.RoomCount,
			GuestCount: p.GuestCount,
			BoardBasis: p.BoardBasis,
			Status:     status,
		}, nil
	case models.BookingTypeCruise:
		if req.Cruise == nil {
			return nil, fmt.Errorf("%w: cruise", ErrBookingPayloadMissing)
		}
		p := req.Cruise
		status := p.Status
		if status == "" {
			status = models.CruiseStatusTentative
		}
		return &models.Cruise{
			CruiseLine:     p.CruiseLine,
			ShipName:       p.ShipName,
			DeparturePort:  p.DeparturePort,
			DepartureDate:  p.DepartureDate,
			Nights:         p.Nights,
			CabinType:      p.CabinType,
			PassengerCount: p.PassengerCount,
			Status:         status,
		}, nil
	case models.BookingTypeVisa:
		if req.Visa == nil {
			return nil, fmt.Errorf("%w: visa", ErrBookingPayloadMissing)
		}
		p := req.Visa
		status := p.Status
		if status == "" {
			status = models.VisaStatusPreparing
		}
		return &models.Visa{
			Country:         p.Country,
			VisaType:        p.VisaType,
			ApplicationDate: p.ApplicationDate,
			TravelDate:      p.TravelDate,
			Status:          status,
		}, nil
	case models.BookingTypeInsurance:
		if req.Insurance == nil {
			return nil, fmt.Errorf("%w: insurance", ErrBookingPayloadMissing)
		}
		p := req.Insurance
		status := p.Status
		if status == "" {
			status = models.InsuranceStatusQuoted
		}
		return &models.Insurance{
			Provider:      p.Provider,
			PolicyType:    p.PolicyType,
			StartDate:     p.StartDate,
			EndDate:       p.EndDate,
			TravelerCount: p.TravelerCount,
			Status:        status,
		}, nil
	case models.BookingTypeTicket:
		if req.Ticket == nil {
			return nil, fmt.Errorf("%w: ticket", ErrBookingPayloadMissing)
		}
		p := req.Ticket
		return &models.Ticket{
			Title:      p.Title,
			TravelDate: p.TravelDate,
			Quantity:   p.Quantity,
			Status:     models.TicketStatusPending,
		}, nil
	case models.BookingTypeTransportation:
		if req.Transportation == nil {
			return nil, fmt.Errorf("%w: transportation", ErrBookingPayloadMissing)
		}
		p := req.Transportation
		status := p.Status
		if status == "" {
			status = models.TransportationStatusScheduled
		}
		return &models.Transportation{
			TransportType:   p.TransportType,
			PickupLocation:  p.PickupLocation,
			DropoffLocation: p.DropoffLocation,
			PickupTime:      p.PickupTime,
			VehicleType:     p.VehicleType,
			PassengerCount:  p.PassengerCount,
			Status:          status,
		}, nil
	case models.BookingTypeAppointment:
		if req.Appointment == nil {
			return nil, fmt.Errorf("%w: appointment", ErrBookingPayloadMissing)
		}
		p := req.Appointment
		status := p.Status
		if status == "" {
			status = models.AppointmentStatusScheduled
		}
		return &models.Appointment{
			Subject:         p.Subject,
			AppointmentDate: p.AppointmentDate,
			Location:        p.Location,
			Status:          status,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidBookingType, bookingType)
	}
}

// applyBookingPatch merges the request's variant patch onto the loaded booking
// record. It reports whether any patch was supplied and rejects a patch for a
// different variant than the reservation wraps.
func applyBookingPatch(bookingType models.BookingType, booking any, req *UpdateReservationRequest) (any, bool, error) {
	supplied := map[models.BookingType]bool{
		models.BookingTypeFlight:         req.Flight != nil,
		models.BookingTypeHotel:          req.Hotel != nil,
		models.BookingTypeCruise:         req.Cruise != nil,
		models.BookingTypeVisa:           req.Visa != nil,
		models.BookingTypeInsurance:      req.Insurance != nil,
		models.BookingTypeTicket:         req.Ticket != nil,
		models.BookingTypeTransportation: req.Transportation != nil,
		models.BookingTypeAppointment:    req.Appointment != nil,
	}
	for t, has := range supplied {
		if has && t != bookingType {
			return nil, false, fmt.Errorf("%w: got %s payload for a %s reservation", ErrBookingTypeMismatch, t, bookingType)
		}
	}
	if !supplied[bookingType] {
		return booking, false, nil
	}
	if booking == nil {
		return nil, false, ErrReservationNotFound
	}

	switch bookingType {
	case models.BookingTypeFlight:
		f := booking.(*models.Flight)
		p := req.Flight
		setString(&f.Airline, p.Airline)
		setStringPtr(&f.FlightNumber, p.FlightNumber)
		setString(&f.Origin, p.Origin)
		setString(&f.Destination, p.Destination)
		setString(&f.DepartureDate, p.DepartureDate)
		setStringPtr(&f.ReturnDate, p.ReturnDate)
		setInt(&f.PassengerCount, p.PassengerCount)
		setStringPtr(&f.PNR, p.PNR)
		setString(&f.Status, p.Status)
		return f, true, nil
	case models.BookingTypeHotel:
		h := booking.(*models.Hotel)
		p := req.Hotel
		setString(&h.HotelName, p.HotelName)
		setString(&h.City, p.City)
		setString(&h.CheckIn, p.CheckIn)
		setString(&h.CheckOut, p.CheckOut)
		setInt(&h.RoomCount, p.RoomCount)
		setInt(&h.GuestCount, p.GuestCount)
		setStringPtr(&h.BoardBasis, p.BoardBasis)
		setString(&h.Status, p.Status)
		return h, true, nil
	case models.BookingTypeCruise:
		cr := booking.(*models.Cruise)
		p := req.Cruise
		setString(&cr.CruiseLine, p.CruiseLine)
		setStringPtr(&cr.ShipName, p.ShipName)
		setString(&cr.DeparturePort, p.DeparturePort)
		setString(&cr.DepartureDate, p.DepartureDate)
		setInt(&cr.Nights, p.Nights)
		setStringPtr(&cr.CabinType, p.CabinType)
		setInt(&cr.PassengerCount, p.PassengerCount)
		setString(&cr.Status, p.Status)
		return cr, true, nil
	case models.BookingTypeVisa:
		v := booking.(*models.Visa)
		p := req.Visa
		setString(&v.Country, p.Country)
		setString(&v.VisaType, p.VisaType)
		setString(&v.ApplicationDate, p.ApplicationDate)
		setStringPtr(&v.TravelDate, p.TravelDate)
		setString(&v.Status, p.Status)
		return v, true, nil
	case models.BookingTypeInsurance:
		ins := booking.(*models.Insurance)
		p := req.Insurance
		setString(&ins.Provider, p.Provider)
		setString(&ins.PolicyType, p.PolicyType)
		setString(&ins.StartDate, p.StartDate)
		setString(&ins.EndDate, p.EndDate)
		setInt(&ins.TravelerCount, p.TravelerCount)
		setString(&ins.Status, p.Status)
		return ins, true, nil
	case models.BookingTypeTicket:
		t := booking.(*models.Ticket)
		p := req.Ticket
		setString(&t.Title, p.Title)
		setString(&t.TravelDate, p.TravelDate)
		setInt(&t.Quantity, p.Quantity)
		setString(&t.Status, p.Status)
		return t, true, nil
	case models.BookingTypeTransportation:
		tr := booking.(*models.Transportation)
		p := req.Transportation
		setString(&tr.TransportType, p.TransportType)
		setString(&tr.PickupLocation, p.PickupLocation)
		setString(&tr.DropoffLocation, p.DropoffLocation)
		if p.PickupTime != nil {
			tr.PickupTime = *p.PickupTime
		}
		setStringPtr(&tr.VehicleType, p.VehicleType)
		setInt(&tr.PassengerCount, p.PassengerCount)
		setString(&tr.Status, p.Status)
		return tr, true, nil
	case models.BookingTypeAppointment:
		a := booking.(*models.Appointment)
		p := req.Appointment
		setString(&a.Subject, p.Subject)
		if p.AppointmentDate != nil {
			a.AppointmentDate = *p.AppointmentDate
		}
		setStringPtr(&a.Location, p.Location)
		setString(&a.Status, p.Status)
		return a, true, nil
	}
	return booking, false, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setStringPtr(dst **string, src *string) {
	if src != nil {
		*dst = src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
