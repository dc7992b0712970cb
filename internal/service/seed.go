package service

import (
	"context"
	"log"
	"math/rand"

	"gorm.io/gorm"

	"ewastemap/internal/model"
)

// Demo seed data: two disposal centres near central Pune.
const (
	seedBaseLat = 18.5204
	seedBaseLng = 73.8567
	// seedJitter spreads demo markers around the base point (roughly 2 km).
	seedJitter = 0.02
)

// Seeder populates demo data on first run
type Seeder struct {
	db   *gorm.DB
	auth *AuthService
}

// NewSeeder creates a new seeder
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, auth: NewAuthService(db)}
}

// Run seeds demo markers and default accounts. Each collection is only
// seeded when it is empty, so running twice has no effect.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.SeedMarkers(ctx); err != nil {
		return err
	}
	return s.SeedUsers(ctx)
}

// SeedMarkers inserts two demo markers in Pune if no markers exist.
func (s *Seeder) SeedMarkers(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Marker{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demos := []model.Marker{
		{Locality: "Kothrud", Category: model.CategoryLarge, Contact: "+91 98765 43210"},
		{Locality: "Shivaji Nagar", Category: model.CategoryDevices, Contact: "+91 87654 32109"},
	}

	for i := range demos {
		demos[i].Lat = seedBaseLat + jitter()
		demos[i].Lng = seedBaseLng + jitter()
		demos[i].State = "Maharashtra"
		demos[i].City = "Pune"
		demos[i].IsActive = true
	}

	if err := s.db.WithContext(ctx).Create(&demos).Error; err != nil {
		return err
	}

	log.Printf("[Seed] Seeded %d demo markers in Pune", len(demos))
	return nil
}

// SeedUsers inserts default admin and read-only accounts if no users exist.
// Demo credentials only: admin/admin123 and user/user123.
func (s *Seeder) SeedUsers(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if _, err := s.auth.CreateUser(ctx, "admin", "admin123", model.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.auth.CreateUser(ctx, "user", "user123", model.RoleUser); err != nil {
		return err
	}

	log.Println("[Seed] Seeded default users (admin, user)")
	return nil
}

// jitter returns a random offset in [-seedJitter, +seedJitter] degrees.
func jitter() float64 {
	return (rand.Float64()*2 - 1) * seedJitter
}
