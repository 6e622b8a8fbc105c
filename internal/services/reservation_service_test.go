package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk_backend/internal/models"
	"tripdesk_backend/internal/repositories"
)

func newTestReservationService() (*reservationService, *fakeReservationRepo) {
	repo := newFakeReservationRepo()
	svc := &reservationService{
		reservationRepo: repo,
		txManager:       &fakeTxManager{repo: repo},
	}
	return svc, repo
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
func intPtr(v int) *int           { return &v }

func flightCreateRequest() CreateReservationRequest {
	return CreateReservationRequest{
		Customer:    CustomerPayload{FullName: "Aigerim Bekova", PhoneNumber: "+77011234567"},
		Supplier:    &SupplierPayload{Name: "Skyway Consolidator"},
		BookingType: string(models.BookingTypeFlight),
		Flight: &FlightPayload{
			Airline:        "Air Astana",
			Origin:         "ALA",
			Destination:    "IST",
			DepartureDate:  "2025-06-01",
			PassengerCount: 2,
		},
		SellPrice: floatPtr(1200),
		Cost:      floatPtr(900),
		Fees:      floatPtr(50),
	}
}

func TestCreateReservationNormalizesStatuses(t *testing.T) {
	svc, _ := newTestReservationService()

	req := flightCreateRequest()
	created, err := svc.CreateReservation(req)
	require.NoError(t, err)

	assert.Equal(t, string(models.ReservationStatusHold), created.Status)
	assert.NotEmpty(t, created.Reference)
	require.NotNil(t, created.Booking)
	flight, ok := created.Booking.(*models.Flight)
	require.True(t, ok)
	assert.Equal(t, models.FlightStatusPending, flight.Status)
	require.NotNil(t, created.SupplierID)
	require.NotNil(t, created.Customer)
	assert.Equal(t, "Aigerim Bekova", created.Customer.FullName)
}

func TestCreateReservationComputesNetProfit(t *testing.T) {
	svc, _ := newTestReservationService()

	created, err := svc.CreateReservation(flightCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, 250.0, created.NetProfit) // 1200 - 900 - 50

	override := flightCreateRequest()
	override.NetProfit = floatPtr(300)
	created, err = svc.CreateReservation(override)
	require.NoError(t, err)
	assert.Equal(t, 300.0, created.NetProfit)

	noFees := flightCreateRequest()
	noFees.Fees = nil
	created, err = svc.CreateReservation(noFees)
	require.NoError(t, err)
	assert.Equal(t, 0.0, created.Fees)
	assert.Equal(t, 300.0, created.NetProfit) // 1200 - 900
}

func TestCreateReservationDefaultsVariantStatuses(t *testing.T) {
	svc, _ := newTestReservationService()

	cruiseReq := CreateReservationRequest{
		Customer:    CustomerPayload{FullName: "Aruzhan Serik", PhoneNumber: "+77015550001"},
		Supplier:    &SupplierPayload{Name: "Blue Wave Cruises"},
		BookingType: string(models.BookingTypeCruise),
		Cruise: &CruisePayload{
			CruiseLine:     "MSC",
			DeparturePort:  "Barcelona",
			DepartureDate:  "2025-07-01",
			Nights:         7,
			PassengerCount: 2,
		},
		SellPrice: floatPtr(3000),
		Cost:      floatPtr(2400),
	}
	created, err := svc.CreateReservation(cruiseReq)
	require.NoError(t, err)
	cruise, ok := created.Booking.(*models.Cruise)
	require.True(t, ok)
	assert.Equal(t, models.CruiseStatusTentative, cruise.Status)

	appointmentReq := CreateReservationRequest{
		Customer:    CustomerPayload{FullName: "Marat Ali", PhoneNumber: "+77019990001"},
		BookingType: string(models.BookingTypeAppointment),
		Appointment: &AppointmentPayload{
			Subject:         "document review",
			AppointmentDate: time.Date(2025, 7, 3, 11, 0, 0, 0, time.UTC),
		},
		SellPrice: floatPtr(50),
		Cost:      floatPtr(0),
	}
	created, err = svc.CreateReservation(appointmentReq)
	require.NoError(t, err)
	appointment, ok := created.Booking.(*models.Appointment)
	require.True(t, ok)
	assert.Equal(t, models.AppointmentStatusScheduled, appointment.Status)
}

func TestCreateReservationRequiresSupplierForSupplierBearingTypes(t *testing.T) {
	svc, _ := newTestReservationService()

	req := flightCreateRequest()
	req.Supplier = nil
	_, err := svc.CreateReservation(req)
	assert.ErrorIs(t, err, ErrSupplierRequired)

	// Visa carries no supplier, so none is required.
	visaReq := CreateReservationRequest{
		Customer:    CustomerPayload{FullName: "Dias Omarov", PhoneNumber: "+77017654321"},
		BookingType: string(models.BookingTypeVisa),
		Visa: &VisaPayload{
			Country:         "USA",
			VisaType:        "B1/B2",
			ApplicationDate: "2025-05-10",
		},
		SellPrice: floatPtr(400),
		Cost:      floatPtr(160),
	}
	created, err := svc.CreateReservation(visaReq)
	require.NoError(t, err)
	assert.Nil(t, created.SupplierID)
	visa, ok := created.Booking.(*models.Visa)
	require.True(t, ok)
	assert.Equal(t, models.VisaStatusPreparing, visa.Status)
}

func TestCreateReservationRejectsBadPayloads(t *testing.T) {
	svc, _ := newTestReservationService()

	req := flightCreateRequest()
	req.BookingType = "yacht"
	_, err := svc.CreateReservation(req)
	assert.ErrorIs(t, err, ErrInvalidBookingType)

	req = flightCreateRequest()
	req.Flight = nil
	_, err = svc.CreateReservation(req)
	assert.ErrorIs(t, err, ErrBookingPayloadMissing)
}

func TestCreateReservationRollsBackOnFailure(t *testing.T) {
	svc, repo := newTestReservationService()
	repo.failBooking = true

	_, err := svc.CreateReservation(flightCreateRequest())
	require.ErrorIs(t, err, repositories.ErrDatabaseError)

	// The customer created before the failing booking insert is gone too.
	assert.Empty(t, repo.customers)
	assert.Empty(t, repo.reservations)
}

func TestUpdateReservationRecomputesNetProfit(t *testing.T) {
	svc, _ := newTestReservationService()

	created, err := svc.CreateReservation(flightCreateRequest())
	require.NoError(t, err)

	// Changing cost alone recomputes from the effective values.
	updated, err := svc.UpdateReservation(created.ID, UpdateReservationRequest{Cost: floatPtr(800)})
	require.NoError(t, err)
	assert.Equal(t, 350.0, updated.NetProfit) // 1200 - 800 - 50

	// An explicit override in the same request wins over the recompute.
	updated, err = svc.UpdateReservation(created.ID, UpdateReservationRequest{
		SellPrice: floatPtr(1300),
		NetProfit: floatPtr(111),
	})
	require.NoError(t, err)
	assert.Equal(t, 111.0, updated.NetProfit)

	// Touching neither sell, cost, nor fees keeps the stored net profit.
	updated, err = svc.UpdateReservation(created.ID, UpdateReservationRequest{
		Status: strPtr(string(models.ReservationStatusIssued)),
	})
	require.NoError(t, err)
	assert.Equal(t, 111.0, updated.NetProfit)
	assert.Equal(t, string(models.ReservationStatusIssued), updated.Status)
}

func TestUpdateReservationPatchesBookingFields(t *testing.T) {
	svc, _ := newTestReservationService()

	created, err := svc.CreateReservation(flightCreateRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateReservation(created.ID, UpdateReservationRequest{
		Flight: &FlightPatch{
			PNR:            strPtr("ABC123"),
			PassengerCount: intPtr(3),
			Status:         strPtr(models.FlightStatusTicketed),
		},
	})
	require.NoError(t, err)

	flight, ok := updated.Booking.(*models.Flight)
	require.True(t, ok)
	require.NotNil(t, flight.PNR)
	assert.Equal(t, "ABC123", *flight.PNR)
	assert.Equal(t, 3, flight.PassengerCount)
	assert.Equal(t, models.FlightStatusTicketed, flight.Status)
	// Untouched fields keep their stored values.
	assert.Equal(t, "Air Astana", flight.Airline)
}

func TestUpdateReservationRejectsMismatchedPatch(t *testing.T) {
	svc, _ := newTestReservationService()

	created, err := svc.CreateReservation(flightCreateRequest())
	require.NoError(t, err)

	_, err = svc.UpdateReservation(created.ID, UpdateReservationRequest{
		Hotel: &HotelPatch{City: strPtr("Antalya")},
	})
	assert.ErrorIs(t, err, ErrBookingTypeMismatch)

	_, err = svc.UpdateReservation(9999, UpdateReservationRequest{})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestDeleteReservationCascades(t *testing.T) {
	svc, repo := newTestReservationService()

	created, err := svc.CreateReservation(flightCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReservation(created.ID))

	_, err = svc.GetReservationByID(created.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	_, err = repo.GetBooking(models.BookingTypeFlight, created.BookingID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.GetCustomerByID(created.CustomerID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteReservation(created.ID), ErrReservationNotFound)
}

func TestGetReservationsValidatesTypeFilter(t *testing.T) {
	svc, _ := newTestReservationService()

	_, err := svc.CreateReservation(flightCreateRequest())
	require.NoError(t, err)

	appointmentReq := CreateReservationRequest{
		Customer:    CustomerPayload{FullName: "Marat Ali", PhoneNumber: "+77019990001"},
		BookingType: string(models.BookingTypeAppointment),
		Appointment: &AppointmentPayload{
			Subject:         "visa interview prep",
			AppointmentDate: time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC),
		},
		SellPrice: floatPtr(50),
		Cost:      floatPtr(0),
	}
	_, err = svc.CreateReservation(appointmentReq)
	require.NoError(t, err)

	flightType := string(models.BookingTypeFlight)
	reservations, total, err := svc.GetReservations(models.ReservationFilters{BookingType: &flightType})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, reservations, 1)
	assert.Equal(t, flightType, reservations[0].BookingType)

	badType := "yacht"
	_, _, err = svc.GetReservations(models.ReservationFilters{BookingType: &badType})
	assert.ErrorIs(t, err, ErrInvalidBookingType)
}
