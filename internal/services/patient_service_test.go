package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPatientGetNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewPatientService(gdb)

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}))

	_, err := svc.Get(uuid.New())
	require.ErrorIs(t, err, ErrPatientNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientUpdateRejectsTakenEmail(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewPatientService(gdb)

	patientID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(patientID, userID))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1 AND id <> \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	email := "taken@example.com"
	_, err := svc.Update(patientID, UpdatePatientFields{Email: &email})
	require.ErrorIs(t, err, ErrEmailTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientUpdateAllowsOwnEmail(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewPatientService(gdb)

	patientID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(patientID, userID))
	// The caller's own user row is excluded from the uniqueness check.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1 AND id <> \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(userID, "old@example.com"))
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	email := "old@example.com"
	patient, err := svc.Update(patientID, UpdatePatientFields{Email: &email})
	require.NoError(t, err)
	require.Equal(t, "old@example.com", patient.User.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientUpdateHashesPassword(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewPatientService(gdb)

	patientID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(patientID, userID))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "password"}).AddRow(userID, "oldhash"))
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	password := "new-secret-123"
	patient, err := svc.Update(patientID, UpdatePatientFields{Password: &password})
	require.NoError(t, err)
	require.NotEqual(t, password, patient.User.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(patient.User.Password), []byte(password)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientDeleteRemovesLinkedUser(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewPatientService(gdb)

	patientID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(patientID, userID))
	// Deleting the user row is enough; patient, appointments and analyzer
	// records cascade at the database level.
	mock.ExpectExec(`DELETE FROM "users" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.Delete(patientID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifiedPsychologistsFiltersUnverified(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewPatientService(gdb)

	id := uuid.New()
	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "psychologists" WHERE is_verified = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "is_verified"}).
			AddRow(id, userID, true))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "firstname"}).AddRow(userID, "Rina"))

	psychologists, err := svc.VerifiedPsychologists()
	require.NoError(t, err)
	require.Len(t, psychologists, 1)
	require.True(t, psychologists[0].IsVerified)
	require.Equal(t, "Rina", psychologists[0].User.Firstname)
	require.NoError(t, mock.ExpectationsWereMet())
}
