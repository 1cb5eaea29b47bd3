package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuslibrary/internal/clock"
	"campuslibrary/internal/models"
)

type attendanceFixture struct {
	svc     AttendanceService
	users   *fakeUserRepo
	records *fakeAttendanceRepo
	student *models.User
}

func newAttendanceFixture(t *testing.T, clk clock.Clock) *attendanceFixture {
	t.Helper()
	users := newFakeUserRepo()
	records := newFakeAttendanceRepo()
	student := users.add(models.User{
		Role:      models.UserRoleStudent,
		FirstName: "Liza",
		LastName:  "Cruz",
		Email:     "liza@example.com",
		IDNumber:  "2021-00042",
	})
	return &attendanceFixture{
		svc:     NewAttendanceService(fakeTx{}, clk, users, records),
		users:   users,
		records: records,
		student: student,
	}
}

// steppingClock advances a fixed amount on every read so successive check-ins
// on the same day are ordered.
type steppingClock struct {
	current time.Time
	step    time.Duration
}

func (c *steppingClock) Now() time.Time {
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

func TestCheckInOutAlternates(t *testing.T) {
	clk := &steppingClock{current: testNow, step: time.Minute}
	f := newAttendanceFixture(t, clk)

	// First call of the day: a new open record.
	first, checkedIn, err := f.svc.CheckInOut(f.student.ID, "morning")
	require.NoError(t, err)
	assert.True(t, checkedIn)
	assert.Nil(t, first.CheckOut)
	assert.Equal(t, "morning", first.Notes)

	// Second call closes that same record.
	second, checkedIn, err := f.svc.CheckInOut(f.student.ID, "")
	require.NoError(t, err)
	assert.False(t, checkedIn)
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.CheckOut)

	// Third call starts a fresh cycle.
	third, checkedIn, err := f.svc.CheckInOut(f.student.ID, "")
	require.NoError(t, err)
	assert.True(t, checkedIn)
	assert.NotEqual(t, first.ID, third.ID)
	assert.Nil(t, third.CheckOut)

	count, _ := f.records.Count(nil)
	assert.EqualValues(t, 2, count)
}

func TestCheckInOutUnknownUser(t *testing.T) {
	f := newAttendanceFixture(t, clock.Fixed{Instant: testNow})
	_, _, err := f.svc.CheckInOut(999, "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCheckStudentNotFound(t *testing.T) {
	f := newAttendanceFixture(t, clock.Fixed{Instant: testNow})
	_, err := f.svc.CheckStudent("no-such-id")
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestCheckStudentIgnoresNonStudents(t *testing.T) {
	f := newAttendanceFixture(t, clock.Fixed{Instant: testNow})
	f.users.add(models.User{Role: models.UserRoleAdmin, Email: "admin@example.com", IDNumber: "ADMIN-1"})

	_, err := f.svc.CheckStudent("ADMIN-1")
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestCheckStudentFreshDay(t *testing.T) {
	f := newAttendanceFixture(t, clock.Fixed{Instant: testNow})

	result, err := f.svc.CheckStudent(f.student.IDNumber)
	require.NoError(t, err)

	assert.Equal(t, StatusReadyForCheckin, result.Status)
	assert.Equal(t, f.student.ID, result.Student.ID)
	assert.Nil(t, result.Attendance)
	assert.Nil(t, result.LastAttendance)

	// A fresh-day scan must not create anything.
	count, _ := f.records.Count(nil)
	assert.Zero(t, count)
}

func TestCheckStudentAutoClosesOpenRecord(t *testing.T) {
	clk := &steppingClock{current: testNow, step: time.Minute}
	f := newAttendanceFixture(t, clk)

	open, checkedIn, err := f.svc.CheckInOut(f.student.ID, "")
	require.NoError(t, err)
	require.True(t, checkedIn)

	// The scan finds the open record, closes it, and reports the transition.
	result, err := f.svc.CheckStudent(f.student.IDNumber)
	require.NoError(t, err)

	assert.Equal(t, StatusReadyForCheckout, result.Status)
	require.NotNil(t, result.Attendance)
	assert.Equal(t, open.ID, result.Attendance.ID)
	assert.NotNil(t, result.Attendance.CheckOut)

	stored, _ := f.records.GetByID(nil, open.ID)
	assert.NotNil(t, stored.CheckOut)
}

func TestCheckStudentAfterClosedCycle(t *testing.T) {
	clk := &steppingClock{current: testNow, step: time.Minute}
	f := newAttendanceFixture(t, clk)

	_, _, err := f.svc.CheckInOut(f.student.ID, "")
	require.NoError(t, err)
	closed, _, err := f.svc.CheckInOut(f.student.ID, "")
	require.NoError(t, err)

	result, err := f.svc.CheckStudent(f.student.IDNumber)
	require.NoError(t, err)

	assert.Equal(t, StatusReadyForCheckin, result.Status)
	require.NotNil(t, result.LastAttendance)
	assert.Equal(t, closed.ID, result.LastAttendance.ID)
}

func TestAttendanceCRUD(t *testing.T) {
	f := newAttendanceFixture(t, clock.Fixed{Instant: testNow})

	checkOut := testNow.Add(2 * time.Hour)
	record, err := f.svc.CreateAttendance(f.student.ID, testNow, testNow, nil, "manual entry")
	require.NoError(t, err)
	assert.Equal(t, "manual entry", record.Notes)

	fetched, err := f.svc.GetAttendance(record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, fetched.ID)

	updated, err := f.svc.UpdateAttendance(record.ID, testNow, testNow, &checkOut, "corrected")
	require.NoError(t, err)
	assert.Equal(t, "corrected", updated.Notes)
	require.NotNil(t, updated.CheckOut)

	require.NoError(t, f.svc.DeleteAttendance(record.ID))
	_, err = f.svc.GetAttendance(record.ID)
	assert.ErrorIs(t, err, ErrAttendanceNotFound)
}

func TestCreateAttendanceUnknownUser(t *testing.T) {
	f := newAttendanceFixture(t, clock.Fixed{Instant: testNow})
	_, err := f.svc.CreateAttendance(999, testNow, testNow, nil, "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
