// Package seed provides helpers to create development and demo data.
// Not intended for production databases.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"openboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with generated users, posts, comments,
// and likes.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll deletes all seeded data in dependency order.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.Like{}, &models.Comment{}, &models.Post{}, &models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// Run seeds users, posts, comments, and likes per the options.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	posts, err := s.seedPosts(users, opts.NumPosts)
	if err != nil {
		return err
	}
	if err := s.seedComments(users, posts); err != nil {
		return err
	}
	if err := s.seedLikes(users, posts); err != nil {
		return err
	}

	log.Printf("Seeded %d users and %d posts", len(users), len(posts))
	return nil
}

// seedUsers creates n users with a shared demo password.
func (s *Seeder) seedUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: string(hashed),
			Nickname: fmt.Sprintf("%s%d", gofakeit.Username(), i),
		}
		if s.rand.Intn(3) == 0 {
			user.AvatarURL = fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID())
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedPosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rand.Intn(len(users))]
		post := &models.Post{
			Title:   gofakeit.Sentence(5),
			Content: gofakeit.Paragraph(1, 3, 5, "\n"),
			UserID:  author.ID,
		}
		if s.rand.Intn(4) == 0 {
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
		}
		// realistic created_at spread over the past 90 days
		daysBack := s.rand.Intn(90)
		hoursBack := s.rand.Intn(24)
		post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("creating post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) seedComments(users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		for i := 0; i < s.rand.Intn(5); i++ {
			author := users[s.rand.Intn(len(users))]
			comment := &models.Comment{
				Content: gofakeit.Sentence(10),
				UserID:  author.ID,
				PostID:  post.ID,
			}
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
		}
	}
	return nil
}

// seedLikes gives each post likes from a random subset of users. The
// composite primary key keeps the subset deduplicated.
func (s *Seeder) seedLikes(users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		count := s.rand.Intn(len(users)/2 + 1)
		perm := s.rand.Perm(len(users))
		for _, idx := range perm[:count] {
			like := &models.Like{UserID: users[idx].ID, PostID: post.ID}
			if err := s.db.Create(like).Error; err != nil {
				return fmt.Errorf("creating like: %w", err)
			}
		}
	}
	return nil
}
