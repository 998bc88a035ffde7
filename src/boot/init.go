package boot

import (
	"hbms/src/db"
	"hbms/src/lib"
	"hbms/src/models"
	"hbms/src/types"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Reservation{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitScheduler wires the recurring housekeeping jobs: stale pending
// reservations expire hourly, and rooms left in cleaning flip back to
// available early each morning.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	if _, err := lib.CreateCronJob(ExpireStalePendingReservations, time.Hour); err != nil {
		log.Printf("Error scheduling expiry job: %s\n", err.Error())
	}
	if _, err := lib.CreateDailyJob(ReleaseCleanedRooms, 6, 0); err != nil {
		log.Printf("Error scheduling housekeeping job: %s\n", err.Error())
	}
	sched.Start()
	log.Println("Jobs in queue:", len(sched.Jobs()))
}

// ExpireStalePendingReservations cancels pending reservations whose
// check-in date has passed without confirmation, releasing their dates.
func ExpireStalePendingReservations() {
	db := db.GetDb()
	today := time.Now().UTC().Truncate(24 * time.Hour)
	res := db.
		Model(&models.Reservation{}).
		Where("status = ? AND check_in_date < ?", types.RESERVATION_PENDING, today).
		Update("status", types.RESERVATION_CANCELLED)
	if res.Error != nil {
		log.Printf("Error expiring stale reservations: %s\n", res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Expired %d stale pending reservations\n", res.RowsAffected)
	}
}

// ReleaseCleanedRooms returns cleaned rooms to the available pool.
func ReleaseCleanedRooms() {
	db := db.GetDb()
	res := db.
		Model(&models.Room{}).
		Where("status = ?", types.ROOM_CLEANING).
		Update("status", types.ROOM_AVAILABLE)
	if res.Error != nil {
		log.Printf("Error releasing cleaned rooms: %s\n", res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Released %d rooms from cleaning\n", res.RowsAffected)
	}
}

// Seed creates the default accounts and sample rooms on an empty database
// when SEED_DB is set.
func Seed() {
	if os.Getenv("SEED_DB") != "true" {
		return
	}
	db := db.GetDb()
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Printf("Error checking users before seed: %s\n", err.Error())
		return
	}
	if count > 0 {
		return
	}

	users := []struct {
		username string
		email    string
		password string
		role     types.UserRole
		first    string
		last     string
	}{
		{"admin", "admin@hotel.local", "admin123", types.ROLE_ADMIN, "System", "Administrator"},
		{"recepcion", "recepcion@hotel.local", "recepcion123", types.ROLE_RECEPTIONIST, "Front", "Desk"},
		{"guest", "guest@hotel.local", "guest123", types.ROLE_GUEST, "Sample", "Guest"},
	}
	for _, u := range users {
		user := models.User{
			Username:  u.username,
			Email:     u.email,
			Role:      u.role,
			FirstName: u.first,
			LastName:  u.last,
		}
		if err := user.SetPassword(u.password); err != nil {
			log.Printf("Error seeding user [%s]: %s\n", u.username, err.Error())
			continue
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Error seeding user [%s]: %s\n", u.username, err.Error())
		}
	}

	rooms := []models.Room{
		{Number: "101", Type: types.ROOM_INDIVIDUAL, Price: 50, MaxOccupancy: 1, Description: "Single room with city view"},
		{Number: "102", Type: types.ROOM_INDIVIDUAL, Price: 50, MaxOccupancy: 1, Description: "Single room near the elevator"},
		{Number: "201", Type: types.ROOM_DOUBLE, Price: 80, MaxOccupancy: 2, Description: "Double room with balcony"},
		{Number: "202", Type: types.ROOM_DOUBLE, Price: 85, MaxOccupancy: 2, Description: "Double room, garden side"},
		{Number: "301", Type: types.ROOM_SUITE, Price: 150, MaxOccupancy: 4, Description: "Suite with living area", Amenities: "minibar,jacuzzi"},
		{Number: "302", Type: types.ROOM_FAMILY, Price: 120, MaxOccupancy: 6, Description: "Family room with two bedrooms"},
	}
	for _, room := range rooms {
		if err := db.Create(&room).Error; err != nil {
			log.Printf("Error seeding room [%s]: %s\n", room.Number, err.Error())
		}
	}
	log.Println("Database seeded with default accounts and rooms")
}
