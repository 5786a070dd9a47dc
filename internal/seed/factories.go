// Package seed creates demo data for development databases and tests.
package seed

import (
	"fmt"
	"strings"

	"coursehub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account can log in with.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db     *gorm.DB
	faker  *gofakeit.Faker
	opts   Options
	hashed string
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a Factory bound to db. A zero opts.Seed gives random data.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	return &Factory{db: db, faker: gofakeit.New(opts.Seed), opts: opts, nextID: 1000}
}

// password hashes DefaultPassword once per factory. FastHash drops to the
// minimum cost so large seeds stay fast while logins still work.
func (f *Factory) password() (string, error) {
	if f.hashed == "" {
		cost := bcrypt.DefaultCost
		if f.opts.FastHash {
			cost = bcrypt.MinCost
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
		if err != nil {
			return "", err
		}
		f.hashed = string(hashed)
	}
	return f.hashed, nil
}

// CreateUser persists a user with the given role. Overrides run before saving.
func (f *Factory) CreateUser(role string, overrides ...func(*models.User)) (*models.User, error) {
	password, err := f.password()
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     f.faker.Name(),
		Email:    strings.ToLower(fmt.Sprintf("%s.%d@%s", f.faker.Username(), f.faker.Number(100, 99999), f.faker.DomainName())),
		Password: password,
		Role:     role,
	}
	for _, override := range overrides {
		override(user)
	}
	return user, f.persist(user, &user.ID)
}

// CreateCourse persists a course taught by teacher.
func (f *Factory) CreateCourse(teacher *models.User, overrides ...func(*models.Course)) (*models.Course, error) {
	course := &models.Course{
		Title:       strings.TrimSuffix(f.faker.HipsterSentence(4), "."),
		Description: f.faker.Sentence(12),
		Content:     f.faker.Paragraph(2, 4, 12, "\n\n"),
		TeacherID:   teacher.ID,
	}
	for _, override := range overrides {
		override(course)
	}
	return course, f.persist(course, &course.ID)
}

// CreateComment persists a comment by user on course.
func (f *Factory) CreateComment(user *models.User, course *models.Course) (*models.Comment, error) {
	comment := &models.Comment{Comment: f.faker.Sentence(f.faker.Number(4, 20)), UserID: user.ID, CourseID: course.ID}
	return comment, f.persist(comment, &comment.ID)
}

// CreateFeedback persists a feedback note by user on course.
func (f *Factory) CreateFeedback(user *models.User, course *models.Course) (*models.Feedback, error) {
	feedback := &models.Feedback{Comment: f.faker.Sentence(f.faker.Number(6, 24)), UserID: user.ID, CourseID: course.ID}
	return feedback, f.persist(feedback, &feedback.ID)
}

// CreateLike persists a like. Callers keep (user, course) pairs unique.
func (f *Factory) CreateLike(user *models.User, course *models.Course) (*models.Like, error) {
	like := &models.Like{UserID: user.ID, CourseID: course.ID, Liked: true}
	return like, f.persist(like, &like.ID)
}

// CreateRating persists a rating with a random score. Callers keep (user, course) pairs unique.
func (f *Factory) CreateRating(user *models.User, course *models.Course) (*models.Rating, error) {
	rating := &models.Rating{
		UserID:   user.ID,
		CourseID: course.ID,
		Value:    f.faker.Number(models.MinRating, models.MaxRating),
	}
	return rating, f.persist(rating, &rating.ID)
}

func (f *Factory) persist(value any, id *uint) error {
	if f.opts.DryRun {
		f.nextID++
		*id = f.nextID
		return nil
	}
	return f.db.Create(value).Error
}
