package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/userdesk/userdesk-backend/internal/users"
	"github.com/userdesk/userdesk-backend/pkg/config"
	"github.com/userdesk/userdesk-backend/pkg/db"
	"github.com/userdesk/userdesk-backend/pkg/db/models"
	"github.com/userdesk/userdesk-backend/pkg/enums"
	"github.com/userdesk/userdesk-backend/pkg/logger"
)

type seedUser struct {
	fullName string
	email    string
	contact  string
	gender   enums.Gender
}

var baseUsers = []seedUser{
	{"Juan Dela Cruz", "juan.delacruz@email.com", "+63 917 123 4567", enums.GenderMale},
	{"Maria Santos", "maria.santos@email.com", "+63 918 234 5678", enums.GenderFemale},
	{"Carlos Reyes", "carlos.reyes@email.com", "+63 919 345 6789", enums.GenderMale},
	{"Ana Garcia", "ana.garcia@email.com", "+63 920 456 7890", enums.GenderFemale},
	{"Miguel Torres", "miguel.torres@email.com", "+63 921 567 8901", enums.GenderMale},
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := dbClient.DB().AutoMigrate(&models.User{}); err != nil {
		logg.Error(ctx, "failed to migrate schema", err)
		os.Exit(1)
	}

	repo := users.NewRepository(dbClient)
	created := 0
	for _, u := range seedSet(cfg.Seed.Count) {
		// Existing emails are left untouched so re-seeding stays idempotent.
		if _, err := repo.FindByEmail(ctx, u.email); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			logg.Error(ctx, "failed to check existing user", err)
			os.Exit(1)
		}

		gender := u.gender
		contact := u.contact
		record := &models.User{
			FullName:      u.fullName,
			Email:         u.email,
			ContactNumber: &contact,
			Gender:        &gender,
		}
		if _, err := repo.Create(ctx, record); err != nil {
			logg.Error(ctx, "failed to create seed user", err)
			os.Exit(1)
		}
		created++
		logg.Info(logg.WithFields(ctx, map[string]any{
			"email":     u.email,
			"full_name": u.fullName,
		}), "seeded user")
	}

	logg.Info(logg.WithField(ctx, "created", created), "seeding complete")
}

// seedSet returns the base roster, padded with generated entries when the
// configured count exceeds it.
func seedSet(count int) []seedUser {
	if count <= len(baseUsers) {
		return baseUsers[:max(count, 0)]
	}
	out := append([]seedUser{}, baseUsers...)
	for i := len(baseUsers); i < count; i++ {
		n := i + 1
		gender := enums.GenderMale
		if n%2 == 0 {
			gender = enums.GenderFemale
		}
		out = append(out, seedUser{
			fullName: fmt.Sprintf("Sample User %02d", n),
			email:    fmt.Sprintf("sample.user%02d@email.com", n),
			contact:  fmt.Sprintf("+63 900 000 %04d", n),
			gender:   gender,
		})
	}
	return out
}
