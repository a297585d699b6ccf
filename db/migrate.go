package db

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/cliniccare/clinic-api/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.DoctorSchedule{},
		&models.ScheduleShift{},
		&models.ScheduleException{},
		&models.Appointment{},
		&models.Prescription{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// At most one scheduled appointment per (doctor, date, time). The booking
	// transaction re-checks occupancy, this index closes the remaining race.
	err = DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_scheduled_slot
		ON appointments (doctor_id, "date", "time")
		WHERE status = 'scheduled' AND deleted_at IS NULL
	`).Error
	if err != nil {
		log.Fatal("Failed to create scheduled-slot index: ", err)
	}

	log.Println("✅ Migrations applied successfully!")
}

// SeedAdmin creates the admin account on first boot if it does not exist.
func SeedAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var existing models.User
	if DB.Where("email = ?", email).First(&existing).RowsAffected > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		FirstName: "Admin",
		LastName:  "Clinic",
		Email:     email,
		Password:  string(hashed),
		Role:      models.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin account: %v", err)
		return
	}
	log.Println("✅ Admin account seeded")
}
