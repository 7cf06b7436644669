// Package seed populates the store with a small sample campus so the API is
// usable immediately after first start.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yit/registration/internal/app/models"
	"github.com/yit/registration/internal/app/repositories"
	"github.com/yit/registration/internal/pkg/auth"
	"github.com/yit/registration/internal/store"
)

var facultyNames = []string{
	"Dr. Rajesh Kumar",
	"Dr. Priya Sharma",
	"Dr. Amit Patel",
	"Dr. Sneha Reddy",
	"Dr. Vikram Singh",
	"Dr. Anjali Desai",
	"Dr. Ravi Menon",
	"Dr. Kavita Nair",
	"Dr. Sanjay Iyer",
	"Dr. Meera Joshi",
	"Dr. Arjun Malhotra",
	"Dr. Divya Rao",
}

var studentNames = []string{
	"Rahul Verma", "Sneha Gupta", "Arjun Mehta", "Priya Shah",
	"Vikram Agarwal", "Ananya Reddy", "Karan Malhotra", "Isha Patel",
}

var (
	departments = []string{"Computer Science", "Electronics", "Mechanical", "Civil", "Electrical"}
	slots       = []string{"A", "B", "C", "D", "E", "F"}
	days        = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	times       = []string{
		"9:00 AM - 10:00 AM", "10:00 AM - 11:00 AM", "11:00 AM - 12:00 PM",
		"2:00 PM - 3:00 PM", "3:00 PM - 4:00 PM", "4:00 PM - 5:00 PM",
	}
)

type courseTemplate struct {
	code      string
	name      string
	credits   int
	semesters []int
}

var courseCatalog = []courseTemplate{
	{"CS101", "Introduction to Programming", 3, []int{1, 2}},
	{"CS201", "Data Structures and Algorithms", 4, []int{3, 4}},
	{"CS301", "Database Management Systems", 4, []int{5, 6}},
	{"CS401", "Machine Learning", 4, []int{7, 8}},
	{"CS302", "Computer Networks", 3, []int{5, 6}},
	{"CS402", "Software Engineering", 4, []int{7, 8}},
	{"EE101", "Basic Electronics", 3, []int{1, 2}},
	{"EE201", "Digital Electronics", 4, []int{3, 4}},
	{"ME101", "Engineering Mechanics", 3, []int{1, 2}},
	{"ME201", "Thermodynamics", 4, []int{3, 4}},
	{"CE101", "Engineering Drawing", 2, []int{1, 2}},
	{"CE201", "Structural Analysis", 4, []int{3, 4}},
}

// Run wipes all collections and recreates the sample data. Default
// credentials are student1@yituniversity.edu / student123 and
// faculty1@yituniversity.edu / faculty123.
func Run(ctx context.Context, st store.Store, repos *repositories.Repositories, logger zerolog.Logger) error {
	logger.Info().Msg("Seeding sample data")

	for _, name := range []string{
		store.CollectionStudents,
		store.CollectionFaculty,
		store.CollectionCourses,
		store.CollectionRegistrations,
	} {
		if _, err := st.Collection(name).DeleteMany(ctx, store.NewQuery()); err != nil {
			return fmt.Errorf("failed to clear collection %s: %w", name, err)
		}
	}

	facultyHash, err := auth.HashPassword("faculty123")
	if err != nil {
		return err
	}
	studentHash, err := auth.HashPassword("student123")
	if err != nil {
		return err
	}

	designations := []string{"Professor", "Associate Professor", "Assistant Professor"}
	facultyList := make([]*models.Faculty, 0, len(facultyNames))
	for i, name := range facultyNames {
		member, err := repos.FacultyRepository.Create(ctx, &models.Faculty{
			FacultyID:   fmt.Sprintf("FAC%d", 2024001+i),
			Name:        name,
			Email:       fmt.Sprintf("faculty%d@yituniversity.edu", i+1),
			Password:    facultyHash,
			Department:  departments[i%len(departments)],
			Designation: designations[i%len(designations)],
			Phone:       randomPhone(),
			Courses:     []string{},
		})
		if err != nil {
			return fmt.Errorf("failed to create faculty %s: %w", name, err)
		}
		facultyList = append(facultyList, member)
	}

	for i, name := range studentNames {
		_, err := repos.StudentRepository.Create(ctx, &models.Student{
			StudentID:         fmt.Sprintf("YIT%d", 2024001+i),
			Name:              name,
			Email:             fmt.Sprintf("student%d@yituniversity.edu", i+1),
			Password:          studentHash,
			Department:        departments[i%len(departments)],
			Semester:          i%8 + 1,
			Phone:             randomPhone(),
			RegisteredCourses: []string{},
		})
		if err != nil {
			return fmt.Errorf("failed to create student %s: %w", name, err)
		}
	}

	courseCount := 0
	for _, tmpl := range courseCatalog {
		dept := departmentForCode(tmpl.code)

		var deptFaculty []*models.Faculty
		for _, member := range facultyList {
			if member.Department == dept {
				deptFaculty = append(deptFaculty, member)
			}
		}
		if len(deptFaculty) == 0 {
			continue
		}

		for _, semester := range tmpl.semesters {
			owner := deptFaculty[rand.Intn(len(deptFaculty))]

			scheduleDays := []string{days[rand.Intn(len(days))]}
			if rand.Intn(2) == 0 {
				scheduleDays = append(scheduleDays, days[rand.Intn(len(days))])
			}

			totalSeats := 30 + rand.Intn(20)
			course, err := repos.CourseRepository.Create(ctx, &models.Course{
				CourseCode:     fmt.Sprintf("%s-S%d", tmpl.code, semester),
				CourseName:     tmpl.name,
				Department:     dept,
				Credits:        tmpl.credits,
				Semester:       semester,
				Faculty:        owner.ID,
				FacultyName:    owner.Name,
				TotalSeats:     totalSeats,
				AvailableSeats: totalSeats,
				Slot:           slots[rand.Intn(len(slots))],
				Schedule: models.Schedule{
					Days: scheduleDays,
					Time: times[rand.Intn(len(times))],
				},
				Description: fmt.Sprintf("This course covers fundamental concepts of %s.", strings.ToLower(tmpl.name)),
			})
			if err != nil {
				return fmt.Errorf("failed to create course %s: %w", tmpl.code, err)
			}

			owner.Courses = append(owner.Courses, course.ID)
			if err := repos.FacultyRepository.SetCourses(ctx, owner.ID, owner.Courses); err != nil {
				return fmt.Errorf("failed to link course to faculty: %w", err)
			}
			courseCount++
		}
	}

	logger.Info().
		Int("faculty", len(facultyList)).
		Int("students", len(studentNames)).
		Int("courses", courseCount).
		Msg("Sample data created")

	return nil
}

func departmentForCode(code string) string {
	switch {
	case strings.HasPrefix(code, "CS"):
		return "Computer Science"
	case strings.HasPrefix(code, "EE"):
		return "Electronics"
	case strings.HasPrefix(code, "ME"):
		return "Mechanical"
	case strings.HasPrefix(code, "CE"):
		return "Civil"
	default:
		return "Electrical"
	}
}

func randomPhone() string {
	return fmt.Sprintf("+91 9%09d", rand.Intn(1000000000))
}
