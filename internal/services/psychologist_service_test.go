package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/calmind-app/calmind-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var jakarta = time.FixedZone("WIB", 7*3600)

func TestCancelWithNoteOverwritesNote(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewPsychologistService(gdb, jakarta)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns()).
			AddRow(id, "2024-06-01", "09:00:00", "10:00:00", models.StatusWaiting,
				"old note", nil, uuid.New(), uuid.New(), time.Now(), time.Now()))
	mock.ExpectExec(`UPDATE "appointments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	note := "patient requested reschedule"
	appointment, err := svc.Cancel(id, &note)
	require.NoError(t, err)
	require.Equal(t, models.StatusCanceled, appointment.Status)
	require.Equal(t, "patient requested reschedule", appointment.Note)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelNilNoteKeepsStoredNote(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewPsychologistService(gdb, jakarta)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns()).
			AddRow(id, "2024-06-01", "09:00:00", "10:00:00", models.StatusWaiting,
				"keep me", nil, uuid.New(), uuid.New(), time.Now(), time.Now()))
	mock.ExpectExec(`UPDATE "appointments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	appointment, err := svc.Cancel(id, nil)
	require.NoError(t, err)
	require.Equal(t, models.StatusCanceled, appointment.Status)
	require.Equal(t, "keep me", appointment.Note)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptUnknownAppointment(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewPsychologistService(gdb, jakarta)

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns()))

	_, err := svc.Accept(uuid.New())
	require.ErrorIs(t, err, ErrAppointmentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDetailOtherPsychologistForbidden(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewPsychologistService(gdb, jakarta)

	id := uuid.New()
	owner := uuid.New()
	requester := uuid.New()

	// Only the appointment row is loaded; the patient and analyzer queries
	// must never run for a foreign appointment.
	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns()).
			AddRow(id, "2024-06-01", "09:00:00", "10:00:00", models.StatusWaiting,
				"", nil, uuid.New(), owner, time.Now(), time.Now()))

	_, _, err := svc.Detail(id, requester)
	require.ErrorIs(t, err, ErrForbidden)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActivePatientsAppliesTimeTransitions(t *testing.T) {
	gdb, mock := newMockDB(t)

	// 09:30 in the clinic zone on the appointment day.
	now := time.Date(2024, 6, 1, 9, 30, 0, 0, jakarta)
	svc := NewPsychologistService(gdb, jakarta).WithClock(func() time.Time { return now })

	psychologistID := uuid.New()
	patientID := uuid.New()
	userID := uuid.New()
	started := uuid.New()  // waiting, window already open
	finished := uuid.New() // waiting, window already closed

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE psychologist_id = \$1 AND status IN`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns()).
			AddRow(started, "2024-06-01", "09:00:00", "11:00:00", models.StatusWaiting,
				"", nil, patientID, psychologistID, time.Now(), time.Now()).
			AddRow(finished, "2024-06-01", "07:00:00", "08:00:00", models.StatusWaiting,
				"", nil, patientID, psychologistID, time.Now(), time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(patientID, userID))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "firstname", "lastname"}).
			AddRow(userID, "Dewi", "Santoso"))

	mock.ExpectExec(`UPDATE "appointments" SET "status"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "appointments" SET "status"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	appointments, err := svc.ActivePatients(psychologistID)
	require.NoError(t, err)
	require.Len(t, appointments, 2)
	require.Equal(t, models.StatusOngoing, appointments[0].Status)
	require.Equal(t, models.StatusCompleted, appointments[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultationsAggregates(t *testing.T) {
	gdb, mock := newMockDB(t)

	now := time.Date(2024, 6, 1, 10, 0, 0, 0, jakarta)
	svc := NewPsychologistService(gdb, jakarta).WithClock(func() time.Time { return now })

	psychologistID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE psychologist_id = \$1 AND status IN`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns()))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "appointments" WHERE psychologist_id = \$1 AND created_at >=`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "appointments" WHERE psychologist_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "appointments" WHERE psychologist_id = \$1 AND status = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	for month := 1; month <= 12; month++ {
		mock.ExpectQuery(`SELECT count\(DISTINCT\("patient_id"\)\) FROM "appointments"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(month)))
	}

	summary, err := svc.Consultations(psychologistID)
	require.NoError(t, err)
	require.Empty(t, summary.Appointments)
	require.EqualValues(t, 3, summary.TotalWeeklyConsultation)
	require.EqualValues(t, 42, summary.TotalConsultation)
	require.EqualValues(t, 2, summary.TodayOngoingConsultation)
	require.Len(t, summary.MonthlyPatientCount, 12)
	require.EqualValues(t, 1, summary.MonthlyPatientCount["January"])
	require.EqualValues(t, 12, summary.MonthlyPatientCount["December"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyMarksPsychologistVerified(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewPsychologistService(gdb, jakarta)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "psychologists" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "is_verified"}).
			AddRow(id, uuid.New(), false))
	mock.ExpectExec(`UPDATE "psychologists" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	psychologist, err := svc.Verify(id)
	require.NoError(t, err)
	require.True(t, psychologist.IsVerified)
	require.NoError(t, mock.ExpectationsWereMet())
}
