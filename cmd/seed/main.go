// Command main runs the database seeder for CourseHub.
package main

import (
	"flag"
	"log"

	"coursehub/internal/config"
	"coursehub/internal/database"
	"coursehub/internal/seed"
)

func main() {
	teachers := flag.Int("teachers", 5, "Number of teachers to create")
	students := flag.Int("students", 50, "Number of students to create")
	courses := flag.Int("courses", 20, "Number of courses to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fast := flag.Bool("fast", false, "Hash passwords at minimum bcrypt cost")
	randSeed := flag.Int64("seed", 0, "Faker seed for reproducible data (0 = random)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{
		Teachers: *teachers,
		Students: *students,
		Courses:  *courses,
		FastHash: *fast,
		Seed:     *randSeed,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if _, err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
