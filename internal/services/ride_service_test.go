package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campusride/carpool-backend/internal/apperrors"
	"github.com/campusride/carpool-backend/internal/database"
	"github.com/campusride/carpool-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRideService(t *testing.T) (*RideService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := &database.PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}
	rideRepo := database.NewRideRepository(store)
	vehicleRepo := database.NewVehicleRepository(store)
	return NewRideService(rideRepo, vehicleRepo, newTestLogger()), mock
}

func expectVehicleFetch(mock sqlmock.Sqlmock, vehicleID, ownerID uuid.UUID) {
	mock.ExpectQuery(`SELECT id, owner_id, plate_no, model, seat_count, created_at`).
		WithArgs(vehicleID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "owner_id", "plate_no", "model", "seat_count", "created_at",
		}).AddRow(vehicleID.String(), ownerID.String(), "WP CAB-1234", "Toyota Aqua", 4, time.Now()))
}

func TestCreateRide(t *testing.T) {
	svc, mock := newRideService(t)

	driverID := uuid.New()
	vehicleID := uuid.New()

	validReq := func() *models.CreateRideRequest {
		return &models.CreateRideRequest{
			VehicleID:    vehicleID,
			Source:       "Campus North Gate",
			Destination:  "Central Station",
			RideDate:     "2026-09-15",
			RideTime:     "08:30",
			SeatsOffered: 3,
		}
	}

	t.Run("Success", func(t *testing.T) {
		expectVehicleFetch(mock, vehicleID, driverID)
		mock.ExpectQuery(`INSERT INTO rides`).
			WithArgs(sqlmock.AnyArg(), driverID, vehicleID, "Campus North Gate",
				"Central Station", sqlmock.AnyArg(), "08:30", 3).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		ride, err := svc.CreateRide(driverID, validReq())
		require.NoError(t, err)
		assert.Equal(t, driverID, ride.DriverID)
		assert.Equal(t, 3, ride.SeatsOffered)
		assert.NotEqual(t, uuid.Nil, ride.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Zero Seats", func(t *testing.T) {
		req := validReq()
		req.SeatsOffered = 0

		ride, err := svc.CreateRide(driverID, req)
		assert.Nil(t, ride)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("Bad Date Format", func(t *testing.T) {
		req := validReq()
		req.RideDate = "15-09-2026"

		ride, err := svc.CreateRide(driverID, req)
		assert.Nil(t, ride)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("Vehicle Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, owner_id, plate_no, model, seat_count, created_at`).
			WithArgs(vehicleID).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "owner_id", "plate_no", "model", "seat_count", "created_at",
			}))

		ride, err := svc.CreateRide(driverID, validReq())
		assert.Nil(t, ride)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		assert.Contains(t, err.Error(), "vehicle not found")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Vehicle Owned By Someone Else", func(t *testing.T) {
		expectVehicleFetch(mock, vehicleID, uuid.New())

		ride, err := svc.CreateRide(driverID, validReq())
		assert.Nil(t, ride)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		assert.Contains(t, err.Error(), "not owned by you")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListOpenRides(t *testing.T) {
	svc, mock := newRideService(t)

	rideColumns := []string{
		"id", "driver_id", "vehicle_id", "source", "destination",
		"ride_date", "ride_time", "seats_offered", "created_at",
		"driver_email", "vehicle_model", "vehicle_plate",
	}

	t.Run("No Filters", func(t *testing.T) {
		mock.ExpectQuery(`SELECT r.id, r.driver_id`).
			WillReturnRows(sqlmock.NewRows(rideColumns).AddRow(
				uuid.New().String(), uuid.New().String(), uuid.New().String(),
				"Campus North Gate", "Central Station",
				time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), "08:30", 3, time.Now(),
				"driver@campus.edu", "Toyota Aqua", "WP CAB-1234",
			))

		rides, err := svc.ListOpenRides(models.RideFilter{})
		require.NoError(t, err)
		require.Len(t, rides, 1)
		assert.Equal(t, "driver@campus.edu", rides[0].DriverEmail)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("All Filters", func(t *testing.T) {
		mock.ExpectQuery(`SELECT r.id, r.driver_id`).
			WithArgs("%Campus%", "%Station%", "2026-09-15").
			WillReturnRows(sqlmock.NewRows(rideColumns))

		rides, err := svc.ListOpenRides(models.RideFilter{
			Source:      "Campus",
			Destination: "Station",
			Date:        "2026-09-15",
		})
		require.NoError(t, err)
		assert.Empty(t, rides)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Bad Date Filter", func(t *testing.T) {
		rides, err := svc.ListOpenRides(models.RideFilter{Date: "next tuesday"})
		assert.Nil(t, rides)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})
}

func TestDeleteRide(t *testing.T) {
	svc, mock := newRideService(t)

	t.Run("Success", func(t *testing.T) {
		rideID := uuid.New()
		driverID := uuid.New()

		mock.ExpectQuery(`SELECT driver_id FROM rides`).
			WithArgs(rideID).
			WillReturnRows(sqlmock.NewRows([]string{"driver_id"}).AddRow(driverID.String()))
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM ride_requests`).
			WithArgs(rideID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM ride_participations`).
			WithArgs(rideID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM rides`).
			WithArgs(rideID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := svc.DeleteRide(rideID, driverID)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Owner", func(t *testing.T) {
		rideID := uuid.New()

		mock.ExpectQuery(`SELECT driver_id FROM rides`).
			WithArgs(rideID).
			WillReturnRows(sqlmock.NewRows([]string{"driver_id"}).AddRow(uuid.New().String()))

		err := svc.DeleteRide(rideID, uuid.New())
		assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ride Not Found", func(t *testing.T) {
		rideID := uuid.New()

		mock.ExpectQuery(`SELECT driver_id FROM rides`).
			WithArgs(rideID).
			WillReturnRows(sqlmock.NewRows([]string{"driver_id"}))

		err := svc.DeleteRide(rideID, uuid.New())
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Deleted", func(t *testing.T) {
		rideID := uuid.New()
		driverID := uuid.New()

		mock.ExpectQuery(`SELECT driver_id FROM rides`).
			WithArgs(rideID).
			WillReturnRows(sqlmock.NewRows([]string{"driver_id"}).AddRow(driverID.String()))
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM ride_requests`).
			WithArgs(rideID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM ride_participations`).
			WithArgs(rideID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM rides`).
			WithArgs(rideID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := svc.DeleteRide(rideID, driverID)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
