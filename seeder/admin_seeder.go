package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"visitor-management/config"
	"visitor-management/models"
	util "visitor-management/pkg/utils"
	"visitor-management/services"
)

// SeedAdmin creates the first admin from ADMIN_* settings when none exists.
// It is a no-op when ADMIN_EMAIL is empty.
func SeedAdmin(auth *services.AuthService, seed config.AdminSeed, log *slog.Logger) error {
	if seed.Email == "" {
		log.Debug("ADMIN_EMAIL not set, admin seeding skipped")
		return nil
	}

	payload := models.SetupAdminPayload{
		Name:     seed.Name,
		Email:    seed.Email,
		Password: seed.Password,
	}
	if fields := util.ValidateStruct(payload); fields != nil {
		msgs := make([]string, 0, len(fields))
		for _, f := range fields {
			msgs = append(msgs, f.Msg)
		}
		return fmt.Errorf("invalid admin seed: %s", strings.Join(msgs, "; "))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := auth.EnsureAdmin(ctx, payload)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if user == nil {
		log.Info("admin already exists, seeding skipped")
		return nil
	}
	log.Info("admin seeded", "email", user.Email)
	return nil
}
