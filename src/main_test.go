package main

import (
	"encoding/json"
	"fmt"
	"hbms/src/db"
	"hbms/src/middlewares"
	"hbms/src/models"
	"hbms/src/types"
	"hbms/src/utils"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type TestSuite struct {
	suite.Suite
	DB         *gorm.DB
	GuestToken string
	DeskToken  string
	AdminToken string
	Room       models.Room
}

func (s *TestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookabledate", bookableDateValidatorFunc)
		v.RegisterValidation("afterfield", afterFieldValidatorFunc)
	}

	d, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("error opening database: %s", err.Error())
	}
	db.NewDB(d)
	s.DB = d

	if err := d.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Reservation{},
		&models.Payment{},
	); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	s.GuestToken = s.createUser("guest1", "guest1@example.com", types.ROLE_GUEST)
	s.DeskToken = s.createUser("desk1", "desk1@example.com", types.ROLE_RECEPTIONIST)
	s.AdminToken = s.createUser("admin1", "admin1@example.com", types.ROLE_ADMIN)

	s.Room = models.Room{
		Number:       "101",
		Type:         types.ROOM_DOUBLE,
		Price:        80,
		MaxOccupancy: 2,
		Status:       types.ROOM_AVAILABLE,
	}
	if err := d.Create(&s.Room).Error; err != nil {
		log.Fatalf("error creating room: %s", err.Error())
	}
}

func (s *TestSuite) createUser(username, email string, role types.UserRole) string {
	user := models.User{
		Username: username,
		Email:    email,
		Role:     role,
		Active:   true,
	}
	s.Require().NoError(user.SetPassword("password123"))
	s.Require().NoError(s.DB.Create(&user).Error)
	token, err := utils.GenerateJWT(user.Username, user.ID, user.Role)
	s.Require().NoError(err)
	return token
}

func buildRouter() *gin.Engine {
	router := setupRouter()
	publicRoutes(router)

	authorized := router.Group(apiPrefix)
	authorized.Use(middlewares.AuthMiddleware)
	{
		accountHandlers(authorized)
		reservationHandlers(authorized)
	}
	staff := router.Group(apiPrefix)
	staff.Use(middlewares.AuthMiddleware, middlewares.ReceptionistRequired)
	{
		receptionistHandlers(staff)
	}
	admin := router.Group(apiPrefix)
	admin.Use(middlewares.AuthMiddleware, middlewares.AdminRequired)
	{
		adminHandlers(admin)
	}
	return router
}

func (s *TestSuite) request(router *gin.Engine, method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = strings.NewReader(string(b))
	} else {
		reader = strings.NewReader("")
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestRegisterAndLogin() {
	router := buildRouter()

	w := s.request(router, "POST", "/api/v1/auth/register", "", map[string]any{
		"username": "newguest",
		"email":    "newguest@example.com",
		"password": "secret123",
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)

	w = s.request(router, "POST", "/api/v1/auth/login", "", map[string]any{
		"username": "newguest",
		"password": "secret123",
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)
	token := gjson.Get(w.Body.String(), "token").String()
	assert.NotEmpty(s.T(), token)

	w = s.request(router, "POST", "/api/v1/auth/login", "", map[string]any{
		"username": "newguest",
		"password": "wrongpass",
	})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *TestSuite) TestRoomsArePublic() {
	router := buildRouter()

	w := s.request(router, "GET", "/api/v1/rooms", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	rooms := gjson.Get(w.Body.String(), "data").Array()
	assert.NotEmpty(s.T(), rooms)
}

func (s *TestSuite) TestAvailabilityEndpoint() {
	router := buildRouter()

	checkIn := time.Now().UTC().AddDate(0, 2, 0).Format(types.DATE_PARSE_FORMAT)
	checkOut := time.Now().UTC().AddDate(0, 2, 3).Format(types.DATE_PARSE_FORMAT)
	url := fmt.Sprintf("/api/v1/rooms/%d/availability?check_in=%s&check_out=%s", s.Room.ID, checkIn, checkOut)
	w := s.request(router, "GET", url, "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.True(s.T(), gjson.Get(w.Body.String(), "available").Bool())

	url = fmt.Sprintf("/api/v1/rooms/%d/availability?check_in=%s&check_out=%s", s.Room.ID, checkOut, checkIn)
	w = s.request(router, "GET", url, "", nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *TestSuite) TestReservationRequiresAuth() {
	router := buildRouter()

	w := s.request(router, "POST", "/api/v1/reservations", "", map[string]any{
		"room_id":       s.Room.ID,
		"check_in_date": "2030-01-10",
	})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *TestSuite) TestGuestCannotReachDeskOrAdmin() {
	router := buildRouter()

	w := s.request(router, "GET", "/api/v1/desk/dashboard", s.GuestToken, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.request(router, "GET", "/api/v1/admin/users", s.GuestToken, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.request(router, "GET", "/api/v1/admin/users", s.DeskToken, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

func (s *TestSuite) TestReservationLifecycleOverHTTP() {
	router := buildRouter()

	checkIn := time.Now().UTC().Format(types.DATE_PARSE_FORMAT)
	checkOut := time.Now().UTC().AddDate(0, 0, 2).Format(types.DATE_PARSE_FORMAT)
	w := s.request(router, "POST", "/api/v1/reservations", s.GuestToken, map[string]any{
		"room_id":        s.Room.ID,
		"check_in_date":  checkIn,
		"check_out_date": checkOut,
		"guests_count":   2,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	body := w.Body.String()
	reservationId := gjson.Get(body, "data.id").Uint()
	assert.Equal(s.T(), "pending", gjson.Get(body, "data.status").String())
	assert.Equal(s.T(), float64(160), gjson.Get(body, "data.total_price").Float())

	// Overlapping request for the same room conflicts.
	w = s.request(router, "POST", "/api/v1/reservations", s.GuestToken, map[string]any{
		"room_id":        s.Room.ID,
		"check_in_date":  checkIn,
		"check_out_date": checkOut,
		"guests_count":   1,
	})
	assert.Equal(s.T(), http.StatusConflict, w.Code)

	w = s.request(router, "POST", fmt.Sprintf("/api/v1/desk/reservations/%d/confirm", reservationId), s.DeskToken, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "confirmed", gjson.Get(w.Body.String(), "data.status").String())

	w = s.request(router, "POST", fmt.Sprintf("/api/v1/desk/reservations/%d/checkin", reservationId), s.DeskToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	assert.Equal(s.T(), "checked_in", gjson.Get(w.Body.String(), "data.status").String())

	var room models.Room
	s.Require().NoError(s.DB.First(&room, s.Room.ID).Error)
	assert.Equal(s.T(), types.ROOM_OCCUPIED, room.Status)

	// A checked-in stay cannot be cancelled.
	w = s.request(router, "POST", fmt.Sprintf("/api/v1/desk/reservations/%d/cancel", reservationId), s.DeskToken, nil)
	assert.Equal(s.T(), http.StatusConflict, w.Code)

	w = s.request(router, "POST", fmt.Sprintf("/api/v1/desk/reservations/%d/checkout", reservationId), s.DeskToken, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "checked_out", gjson.Get(w.Body.String(), "data.status").String())

	s.Require().NoError(s.DB.First(&room, s.Room.ID).Error)
	assert.Equal(s.T(), types.ROOM_CLEANING, room.Status)

	w = s.request(router, "POST", fmt.Sprintf("/api/v1/desk/reservations/%d/payments", reservationId), s.DeskToken, map[string]any{
		"method": "cash",
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)
	assert.Equal(s.T(), "completed", gjson.Get(w.Body.String(), "data.status").String())
	assert.Equal(s.T(), float64(160), gjson.Get(w.Body.String(), "data.amount").Float())
}

func (s *TestSuite) TestRoomStatusOverride() {
	router := buildRouter()

	room := models.Room{
		Number:       "901",
		Type:         types.ROOM_INDIVIDUAL,
		Price:        50,
		MaxOccupancy: 1,
		Status:       types.ROOM_AVAILABLE,
	}
	s.Require().NoError(s.DB.Create(&room).Error)

	w := s.request(router, "PATCH", fmt.Sprintf("/api/v1/desk/rooms/%d/status", room.ID), s.DeskToken, map[string]any{
		"status": "maintenance",
	})
	assert.Equal(s.T(), http.StatusNoContent, w.Code)

	var got models.Room
	s.Require().NoError(s.DB.First(&got, room.ID).Error)
	assert.Equal(s.T(), types.ROOM_MAINTENANCE, got.Status)

	// Occupied is not a legal manual status.
	w = s.request(router, "PATCH", fmt.Sprintf("/api/v1/desk/rooms/%d/status", room.ID), s.DeskToken, map[string]any{
		"status": "occupied",
	})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	// An occupied room cannot be overridden by hand.
	s.Require().NoError(s.DB.Model(&models.Room{}).Where("id = ?", room.ID).Update("status", types.ROOM_OCCUPIED).Error)
	w = s.request(router, "PATCH", fmt.Sprintf("/api/v1/desk/rooms/%d/status", room.ID), s.DeskToken, map[string]any{
		"status": "cleaning",
	})
	assert.Equal(s.T(), http.StatusConflict, w.Code)
	s.Require().NoError(s.DB.Model(&models.Room{}).Where("id = ?", room.ID).Update("status", types.ROOM_AVAILABLE).Error)
}

func (s *TestSuite) TestAdminRoomManagement() {
	router := buildRouter()

	w := s.request(router, "POST", "/api/v1/admin/rooms", s.AdminToken, map[string]any{
		"number":        "501",
		"type":          "suite",
		"price":         150.0,
		"max_occupancy": 4,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	roomId := gjson.Get(w.Body.String(), "data.id").Uint()

	// Duplicate room number is rejected.
	w = s.request(router, "POST", "/api/v1/admin/rooms", s.AdminToken, map[string]any{
		"number":        "501",
		"type":          "suite",
		"price":         150.0,
		"max_occupancy": 4,
	})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.request(router, "PATCH", fmt.Sprintf("/api/v1/admin/rooms/%d", roomId), s.AdminToken, map[string]any{
		"price": 175.0,
	})
	assert.Equal(s.T(), http.StatusNoContent, w.Code)

	var got models.Room
	s.Require().NoError(s.DB.First(&got, roomId).Error)
	assert.Equal(s.T(), 175.0, got.Price)
}

func (s *TestSuite) TestAdminStaffAccounts() {
	router := buildRouter()

	w := s.request(router, "POST", "/api/v1/admin/staff", s.AdminToken, map[string]any{
		"username": "desk2",
		"email":    "desk2@example.com",
		"password": "secret123",
		"role":     "receptionist",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.request(router, "POST", "/api/v1/auth/login", "", map[string]any{
		"username": "desk2",
		"password": "secret123",
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)
	token := gjson.Get(w.Body.String(), "token").String()

	w = s.request(router, "GET", "/api/v1/desk/rooms", token, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	// Guest role is not accepted for staff accounts.
	w = s.request(router, "POST", "/api/v1/admin/staff", s.AdminToken, map[string]any{
		"username": "desk3",
		"email":    "desk3@example.com",
		"password": "secret123",
		"role":     "guest",
	})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *TestSuite) TestProfileRoutes() {
	router := buildRouter()

	w := s.request(router, "GET", "/api/v1/profile", s.GuestToken, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "guest1", gjson.Get(w.Body.String(), "data.username").String())

	w = s.request(router, "PATCH", "/api/v1/profile", s.GuestToken, map[string]any{
		"first_name": "Updated",
	})
	assert.Equal(s.T(), http.StatusNoContent, w.Code)

	w = s.request(router, "POST", "/api/v1/profile/password", s.GuestToken, map[string]any{
		"current_password": "wrong",
		"new_password":     "newsecret",
	})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *TestSuite) TestDeskDashboard() {
	router := buildRouter()

	w := s.request(router, "GET", "/api/v1/desk/dashboard", s.DeskToken, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Greater(s.T(), gjson.Get(w.Body.String(), "data.total_rooms").Int(), int64(0))
}

func TestSuiteRun(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
