package services

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yit/registration/internal/app/models"
	"github.com/yit/registration/internal/app/repositories"
	"github.com/yit/registration/internal/pkg/apperrors"
	"github.com/yit/registration/internal/store"
)

type registrationFixture struct {
	store   store.Store
	repos   *repositories.Repositories
	service *RegistrationService
}

func newRegistrationFixture(t *testing.T) *registrationFixture {
	t.Helper()
	st := store.NewMemoryStore()
	repos := repositories.NewRepositories(st)
	service := NewRegistrationService(
		repos.RegistrationRepository,
		repos.CourseRepository,
		repos.StudentRepository,
		zerolog.Nop(),
	)
	return &registrationFixture{store: st, repos: repos, service: service}
}

func (f *registrationFixture) createStudent(t *testing.T, name string) *models.Student {
	t.Helper()
	student, err := f.repos.StudentRepository.Create(context.Background(), &models.Student{
		StudentID:         "YIT2024001",
		Name:              name,
		Email:             name + "@yituniversity.edu",
		Department:        "Computer Science",
		Semester:          3,
		RegisteredCourses: []string{},
	})
	require.NoError(t, err)
	return student
}

func (f *registrationFixture) createCourse(t *testing.T, code, slot string, semester, seats int) *models.Course {
	t.Helper()
	course, err := f.repos.CourseRepository.Create(context.Background(), &models.Course{
		CourseCode:     code,
		CourseName:     "Course " + code,
		Department:     "Computer Science",
		Credits:        4,
		Semester:       semester,
		TotalSeats:     seats,
		AvailableSeats: seats,
		Slot:           slot,
	})
	require.NoError(t, err)
	return course
}

func (f *registrationFixture) courseSeats(t *testing.T, id string) int {
	t.Helper()
	course, err := f.repos.CourseRepository.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, course)
	return course.AvailableSeats
}

func TestRegisterSuccess(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "rahul")
	course := f.createCourse(t, "CS201-S3", "A", 3, 30)

	view, err := f.service.Register(ctx, student.ID, course.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusRegistered, view.Status)
	assert.Equal(t, course.Semester, view.Semester)
	require.NotNil(t, view.Student)
	assert.Equal(t, student.Name, view.Student.Name)
	require.NotNil(t, view.Course)
	assert.Equal(t, course.CourseCode, view.Course.CourseCode)
	assert.NotEmpty(t, view.RegistrationDate)

	assert.Equal(t, 29, f.courseSeats(t, course.ID))

	updated, err := f.repos.StudentRepository.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{course.ID}, updated.RegisteredCourses)
}

func TestRegisterUnknownStudent(t *testing.T) {
	f := newRegistrationFixture(t)
	course := f.createCourse(t, "CS201-S3", "A", 3, 30)

	_, err := f.service.Register(context.Background(), "missing", course.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestRegisterUnknownCourse(t *testing.T) {
	f := newRegistrationFixture(t)
	student := f.createStudent(t, "rahul")

	_, err := f.service.Register(context.Background(), student.ID, "missing")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestRegisterFullCourseCreatesNothing(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "rahul")
	course := f.createCourse(t, "CS201-S3", "A", 3, 0)

	_, err := f.service.Register(ctx, student.ID, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrNoSeatsAvailable)

	count, err := f.repos.RegistrationRepository.CountActiveByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, 0, f.courseSeats(t, course.ID))
}

func TestRegisterTwiceConflicts(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "rahul")
	course := f.createCourse(t, "CS201-S3", "A", 3, 30)

	_, err := f.service.Register(ctx, student.ID, course.ID)
	require.NoError(t, err)

	_, err = f.service.Register(ctx, student.ID, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)

	// The failed attempt must not consume a seat
	assert.Equal(t, 29, f.courseSeats(t, course.ID))
}

func TestRegisterSlotConflict(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "rahul")
	first := f.createCourse(t, "CS201-S3", "A", 3, 30)
	sameSlot := f.createCourse(t, "EE201-S3", "A", 3, 30)

	_, err := f.service.Register(ctx, student.ID, first.ID)
	require.NoError(t, err)

	_, err = f.service.Register(ctx, student.ID, sameSlot.ID)
	assert.ErrorIs(t, err, apperrors.ErrSlotConflict)
	assert.Equal(t, 30, f.courseSeats(t, sameSlot.ID))
}

func TestRegisterSameSlotDifferentSemester(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "rahul")
	first := f.createCourse(t, "CS201-S3", "A", 3, 30)
	otherSemester := f.createCourse(t, "CS201-S4", "A", 4, 30)

	_, err := f.service.Register(ctx, student.ID, first.ID)
	require.NoError(t, err)

	_, err = f.service.Register(ctx, student.ID, otherSemester.ID)
	assert.NoError(t, err)
}

func TestLastSeatGoesToOneStudent(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	first := f.createStudent(t, "rahul")
	second := f.createStudent(t, "sneha")
	course := f.createCourse(t, "CS201-S3", "A", 3, 1)

	_, err := f.service.Register(ctx, first.ID, course.ID)
	require.NoError(t, err)

	_, err = f.service.Register(ctx, second.ID, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrNoSeatsAvailable)
	assert.Equal(t, 0, f.courseSeats(t, course.ID))
}

func TestConcurrentRegistrationsNeverOversellSeats(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	course := f.createCourse(t, "CS201-S3", "A", 3, 5)

	const attempts = 20
	students := make([]*models.Student, attempts)
	for i := range students {
		students[i] = f.createStudent(t, "student")
	}

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := range students {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Register(ctx, students[i].ID, course.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, apperrors.ErrNoSeatsAvailable)
		}
	}
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 0, f.courseSeats(t, course.ID))

	active, err := f.repos.RegistrationRepository.CountActiveByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, active)
}

func TestDropRestoresSeatAndKeepsRecord(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "rahul")
	course := f.createCourse(t, "CS201-S3", "A", 3, 30)

	_, err := f.service.Register(ctx, student.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, f.service.Drop(ctx, student.ID, course.ID))

	assert.Equal(t, 30, f.courseSeats(t, course.ID))

	active, err := f.repos.RegistrationRepository.FindActive(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Nil(t, active)

	// The dropped record survives in the log
	all, err := f.repos.RegistrationRepository.ListAllActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	updated, err := f.repos.StudentRepository.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.RegisteredCourses)
}

func TestDropWithoutActiveRegistration(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "rahul")
	course := f.createCourse(t, "CS201-S3", "A", 3, 30)

	err := f.service.Drop(ctx, student.ID, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrRegistrationNotFound)
}

func TestDropTwiceFailsSecondTime(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "rahul")
	course := f.createCourse(t, "CS201-S3", "A", 3, 30)

	_, err := f.service.Register(ctx, student.ID, course.ID)
	require.NoError(t, err)
	require.NoError(t, f.service.Drop(ctx, student.ID, course.ID))

	err = f.service.Drop(ctx, student.ID, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrRegistrationNotFound)
	assert.Equal(t, 30, f.courseSeats(t, course.ID))
}

func TestDropNeverRaisesSeatsAboveTotal(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "rahul")
	course := f.createCourse(t, "CS201-S3", "A", 3, 30)

	_, err := f.service.Register(ctx, student.ID, course.ID)
	require.NoError(t, err)

	// Simulate an out-of-band seat correction back to full capacity
	require.NoError(t, f.repos.CourseRepository.SetAvailableSeats(ctx, course.ID, 30))

	require.NoError(t, f.service.Drop(ctx, student.ID, course.ID))
	assert.Equal(t, 30, f.courseSeats(t, course.ID))
}

func TestReRegisterAfterDrop(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "rahul")
	course := f.createCourse(t, "CS201-S3", "A", 3, 30)

	_, err := f.service.Register(ctx, student.ID, course.ID)
	require.NoError(t, err)
	require.NoError(t, f.service.Drop(ctx, student.ID, course.ID))

	view, err := f.service.Register(ctx, student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRegistered, view.Status)
	assert.Equal(t, 29, f.courseSeats(t, course.ID))

	// Both the dropped and the new registration remain in the log
	active, err := f.repos.RegistrationRepository.ListActiveByStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	// The log itself holds two distinct records, the first flipped to
	// dropped, the second registered
	records, err := f.store.Collection(store.CollectionRegistrations).
		FindAll(ctx, store.NewQuery().Eq("student", student.ID))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.NotEqual(t, records[0]["id"], records[1]["id"])
	assert.Equal(t, string(models.StatusDropped), records[0]["status"])
	assert.Equal(t, string(models.StatusRegistered), records[1]["status"])
}

func TestListActiveForStudentSkipsDeletedCourses(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "rahul")
	kept := f.createCourse(t, "CS201-S3", "A", 3, 30)
	doomed := f.createCourse(t, "EE201-S3", "B", 3, 30)

	_, err := f.service.Register(ctx, student.ID, kept.ID)
	require.NoError(t, err)
	_, err = f.service.Register(ctx, student.ID, doomed.ID)
	require.NoError(t, err)

	_, err = f.repos.CourseRepository.Delete(ctx, doomed.ID)
	require.NoError(t, err)

	views, err := f.service.ListActiveForStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, kept.CourseCode, views[0].Course.CourseCode)
}

func TestListActiveForStudentUnknownStudent(t *testing.T) {
	f := newRegistrationFixture(t)

	_, err := f.service.ListActiveForStudent(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestListAllActiveIncludesStudentEmail(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	student := f.createStudent(t, "rahul")
	course := f.createCourse(t, "CS201-S3", "A", 3, 30)

	_, err := f.service.Register(ctx, student.ID, course.ID)
	require.NoError(t, err)

	views, err := f.service.ListAllActive(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Student)
	assert.Equal(t, student.Email, views[0].Student.Email)
}
