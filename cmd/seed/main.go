package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/brianstm/kevii-gym-booking-app/internal/bookings"
	"github.com/brianstm/kevii-gym-booking-app/internal/shared/config"
	"github.com/brianstm/kevii-gym-booking-app/internal/shared/database"
	"github.com/brianstm/kevii-gym-booking-app/internal/timegrid"
	"github.com/brianstm/kevii-gym-booking-app/internal/users"
	"github.com/joho/godotenv"
)

type Seeder struct {
	db  *database.DB
	cfg *config.Config
}

func main() {
	fmt.Println("🌱 Starting KEVII Gym Database Seeder...")

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, cfg: cfg}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates tables in dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"users",
	}

	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	seededUsers, err := s.seedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	fmt.Printf("  👤 Seeded %d users\n", len(seededUsers))

	count, err := s.seedBookings(seededUsers)
	if err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}
	fmt.Printf("  📅 Seeded %d bookings\n", count)

	return nil
}

func (s *Seeder) seedUsers() ([]users.User, error) {
	seedData := []struct {
		Name     string
		Email    string
		Password string
	}{
		{"Alice Tan", "alice@kevii.edu.sg", "password123"},
		{"Ben Lim", "ben@kevii.edu.sg", "password123"},
		{"Chloe Ng", "chloe@kevii.edu.sg", "password123"},
		{"Daniel Ong", "daniel@kevii.edu.sg", "password123"},
		{"Elena Koh", "elena@kevii.edu.sg", "password123"},
	}

	created := make([]users.User, 0, len(seedData))
	for _, data := range seedData {
		hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", data.Email, err)
		}

		user := users.User{
			Name:     data.Name,
			Email:    data.Email,
			Password: string(hash),
		}
		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", data.Email, err)
		}
		created = append(created, user)
	}
	return created, nil
}

// seedBookings spreads confirmed slots across the current week so the
// availability matrix has something to show.
func (s *Seeder) seedBookings(seededUsers []users.User) (int, error) {
	if _, err := timegrid.New(s.cfg.Booking.StartTime, s.cfg.Booking.EndTime, s.cfg.Booking.SlotInterval); err != nil {
		return 0, err
	}

	week := timegrid.WeekDates(time.Now().UTC())
	slots := []struct {
		dayOffset int
		timeStr   string
		duration  float64
	}{
		{0, "07:00", 1},
		{0, "18:30", 1.5},
		{1, "06:30", 0.5},
		{1, "20:00", 2},
		{2, "12:00", 1},
		{3, "17:30", 1},
		{3, "17:30", 1},
		{4, "08:00", 0.5},
		{5, "10:30", 3},
		{6, "22:30", 0.5},
	}

	count := 0
	for i, slot := range slots {
		date := week[slot.dayOffset]
		startsAt, err := timegrid.ParseCombined(timegrid.CombineISO(date, slot.timeStr))
		if err != nil {
			return count, err
		}

		booking := bookings.Booking{
			UserID:        seededUsers[i%len(seededUsers)].ID,
			StartsAt:      startsAt.UTC(),
			DurationHours: slot.duration,
			Status:        bookings.StatusConfirmed,
		}
		if err := s.db.PostgreSQL.Create(&booking).Error; err != nil {
			return count, fmt.Errorf("failed to create booking: %w", err)
		}
		count++
	}
	return count, nil
}
