package main

import (
	"time"

	"tripdesk_backend/internal/database"
	"tripdesk_backend/internal/repositories"
	"tripdesk_backend/internal/services"
	"tripdesk_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// dayclose force-ends shifts left open past the configured auto-end hour.
// Run it from cron shortly after that hour; it exits immediately when the
// auto-end policy is disabled.
func main() {
	_ = godotenv.Load()

	utils.InitLogger()

	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "tripdesk")
	dbPassword := utils.Getenv("DB_PASSWORD", "tripdesk")
	dbName := utils.Getenv("DB_NAME", "tripdesk_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")

	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, "")
	db := database.GetDB()

	settingRepo := repositories.NewSettingRepository(db)
	settingService := services.NewSettingService(settingRepo, db)
	shiftRepo := repositories.NewShiftRepository(db)
	shiftService := services.NewShiftService(shiftRepo, settingService, db)

	policy := settingService.GetAttendancePolicy()
	if !policy.AutoEndEnabled {
		utils.LogInfo("Auto-end disabled, nothing to do")
		return
	}

	now := time.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), policy.AutoEndHour, 0, 0, 0, now.Location())
	if cutoff.After(now) {
		// Running after midnight for the previous day's boundary.
		cutoff = cutoff.AddDate(0, 0, -1)
	}

	closed, err := shiftService.CloseOpenShiftsStartedBefore(cutoff)
	if err != nil {
		utils.LogError(err, "Failed to close open shifts")
		return
	}
	utils.LogInfo("Day close complete", map[string]interface{}{
		"closed_shifts": closed,
		"cutoff":        cutoff.Format(time.RFC3339),
	})
}
