package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/calmind-app/calmind-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAppointmentUpdateTerminalStatusRejected(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewAppointmentService(gdb)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns()).
			AddRow(id, "2024-06-01", "09:00:00", "10:00:00", models.StatusCompleted,
				"", nil, uuid.New(), uuid.New(), time.Now(), time.Now()))

	status := models.StatusWaiting
	_, err := svc.Update(id, UpdateAppointmentFields{Status: &status})
	require.ErrorIs(t, err, ErrTerminalStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentUpdateSameTerminalStatusIsNoopChange(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewAppointmentService(gdb)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns()).
			AddRow(id, "2024-06-01", "09:00:00", "10:00:00", models.StatusCanceled,
				"", nil, uuid.New(), uuid.New(), time.Now(), time.Now()))
	mock.ExpectExec(`UPDATE "appointments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Re-sending the stored status is not a transition.
	status := models.StatusCanceled
	note := "rescheduled externally"
	appointment, err := svc.Update(id, UpdateAppointmentFields{Status: &status, Note: &note})
	require.NoError(t, err)
	require.Equal(t, models.StatusCanceled, appointment.Status)
	require.Equal(t, "rescheduled externally", appointment.Note)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCreateUnknownPatient(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewAppointmentService(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := svc.Create(CreateAppointmentFields{
		Date:           "2024-06-01",
		StartTime:      "09:00",
		EndTime:        "10:00",
		PatientID:      uuid.New(),
		PsychologistID: uuid.New(),
	})
	require.ErrorIs(t, err, ErrPatientNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCreateRejectsMalformedTime(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewAppointmentService(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "psychologists" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Create(CreateAppointmentFields{
		Date:           "2024-06-01",
		StartTime:      "9 o'clock",
		EndTime:        "10:00",
		PatientID:      uuid.New(),
		PsychologistID: uuid.New(),
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentDeleteNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewAppointmentService(gdb)

	mock.ExpectExec(`DELETE FROM "appointments" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Delete(uuid.New())
	require.ErrorIs(t, err, ErrAppointmentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentByPsychologistChecksExistence(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewAppointmentService(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "psychologists" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := svc.ByPsychologist(uuid.New())
	require.ErrorIs(t, err, ErrPsychologistNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
