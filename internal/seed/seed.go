package seed

import (
	"fmt"

	"coursehub/internal/middleware"
	"coursehub/internal/models"

	"gorm.io/gorm"
)

// Options controls how much data the seeder creates.
type Options struct {
	Teachers int
	Students int
	Courses  int
	FastHash bool
	DryRun   bool
	// Seed fixes the faker for reproducible data; 0 picks a random seed.
	Seed int64
}

// Result lists what a seeding run created.
type Result struct {
	Teachers []*models.User
	Students []*models.User
	Courses  []*models.Course
	Likes    int
	Ratings  int
}

// Seeder populates a database with demo courses and engagement.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
}

// ClearAll removes every row the application owns, children first.
func (s *Seeder) ClearAll() error {
	tables := []any{&models.Like{}, &models.Rating{}, &models.Comment{}, &models.Feedback{}, &models.Course{}, &models.User{}}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
				return fmt.Errorf("clear %T: %w", table, err)
			}
		}
		return nil
	})
}

// Run creates teachers, students and courses, then has every student
// engage with a random subset of courses.
func (s *Seeder) Run() (*Result, error) {
	res := &Result{}
	f := s.factory

	for i := 0; i < s.opts.Teachers; i++ {
		u, err := f.CreateUser(models.RoleTeacher)
		if err != nil {
			return nil, fmt.Errorf("create teacher: %w", err)
		}
		res.Teachers = append(res.Teachers, u)
	}
	for i := 0; i < s.opts.Students; i++ {
		u, err := f.CreateUser(models.RoleStudent)
		if err != nil {
			return nil, fmt.Errorf("create student: %w", err)
		}
		res.Students = append(res.Students, u)
	}
	if len(res.Teachers) == 0 {
		return res, nil
	}

	for i := 0; i < s.opts.Courses; i++ {
		teacher := res.Teachers[i%len(res.Teachers)]
		c, err := f.CreateCourse(teacher)
		if err != nil {
			return nil, fmt.Errorf("create course: %w", err)
		}
		res.Courses = append(res.Courses, c)
	}

	for _, student := range res.Students {
		for _, course := range res.Courses {
			if err := s.engage(student, course, res); err != nil {
				return nil, err
			}
		}
	}

	middleware.Logger.Info("seeding complete",
		"teachers", len(res.Teachers),
		"students", len(res.Students),
		"courses", len(res.Courses),
		"likes", res.Likes,
		"ratings", res.Ratings,
	)
	return res, nil
}

// engage creates at most one like and one rating per (student, course) pair,
// matching the unique indexes.
func (s *Seeder) engage(student *models.User, course *models.Course, res *Result) error {
	faker := s.factory.faker
	if faker.Number(1, 100) <= 60 {
		if _, err := s.factory.CreateLike(student, course); err != nil {
			return fmt.Errorf("create like: %w", err)
		}
		res.Likes++
	}
	if faker.Number(1, 100) <= 40 {
		if _, err := s.factory.CreateRating(student, course); err != nil {
			return fmt.Errorf("create rating: %w", err)
		}
		res.Ratings++
	}
	if faker.Number(1, 100) <= 25 {
		if _, err := s.factory.CreateComment(student, course); err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
	}
	if faker.Number(1, 100) <= 10 {
		if _, err := s.factory.CreateFeedback(student, course); err != nil {
			return fmt.Errorf("create feedback: %w", err)
		}
	}
	return nil
}
