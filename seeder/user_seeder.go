package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"visitor-management/models"
	"visitor-management/pkg/password"
	"visitor-management/repository"
)

// DemoPassword is shared by every account SeedDemoUsers creates.
const DemoPassword = "Password123"

var demoUsers = []models.User{
	{Name: "Rina Handayani", Email: "receptionist@example.com", Role: models.RoleReceptionist, Department: "Front Office"},
	{Name: "Joko Santoso", Email: "guard@example.com", Role: models.RoleGuard, Department: "Security"},
	{Name: "Dewi Lestari", Email: "visitor@example.com", Role: models.RoleVisitor, Company: "PT Nusantara Abadi", Phone: "+62 812 0000 0001"},
}

// SeedDemoUsers adds a receptionist, a guard and a visitor so a fresh
// in-memory server can be exercised right away. Existing emails are skipped.
func SeedDemoUsers(users repository.UserRepository, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hashed, err := password.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	for _, u := range demoUsers {
		existing, err := users.FindUserByEmail(ctx, u.Email)
		if err != nil {
			return fmt.Errorf("failed to look up %s: %w", u.Email, err)
		}
		if existing != nil {
			log.Debug("demo user exists, skipped", "email", u.Email)
			continue
		}

		user := u
		user.Password = hashed
		user.IsActive = true
		if err := users.CreateUser(ctx, &user); err != nil {
			return fmt.Errorf("failed to create demo user %s: %w", u.Email, err)
		}
		log.Info("demo user created", "email", user.Email, "role", user.Role)
	}
	return nil
}
