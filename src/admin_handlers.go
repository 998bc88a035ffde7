package main

import (
	"errors"
	"hbms/src/db"
	"hbms/src/lib"
	"hbms/src/models"
	"hbms/src/types"
	"hbms/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/admin/dashboard", func(ctx *gin.Context) {
			snap, err := utils.BuildDashboardSnapshot(ctx, db.GetDb(), "dashboard:admin")
			if err != nil {
				log.Printf("Error building dashboard: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": snap})
		}).
		POST("/admin/rooms", func(ctx *gin.Context) {
			var body types.CreateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			status := types.ROOM_AVAILABLE
			if body.Status != "" {
				status = types.RoomStatus(body.Status)
			}
			room := models.Room{
				Number:       body.Number,
				Type:         types.RoomType(body.Type),
				Price:        body.Price,
				MaxOccupancy: body.MaxOccupancy,
				Description:  body.Description,
				Amenities:    body.Amenities,
				Status:       status,
			}
			err := db.Transaction(func(tx *gorm.DB) error {
				var count int64
				if err := tx.
					Model(&models.Room{}).
					Where("number = ?", body.Number).
					Count(&count).
					Error; err != nil {
					return err
				}
				if count > 0 {
					return errors.New("a room with this number already exists")
				}
				return tx.Create(&room).Error
			})
			if err != nil {
				log.Printf("Error creating room: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": room})
		}).
		PATCH("/admin/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			updates := map[string]any{}
			if body.Number != nil {
				updates["number"] = *body.Number
			}
			if body.Type != nil {
				updates["type"] = *body.Type
			}
			if body.Price != nil {
				updates["price"] = *body.Price
			}
			if body.MaxOccupancy != nil {
				updates["max_occupancy"] = *body.MaxOccupancy
			}
			if body.Description != nil {
				updates["description"] = *body.Description
			}
			if body.Amenities != nil {
				updates["amenities"] = *body.Amenities
			}
			if len(updates) == 0 {
				ctx.Status(http.StatusNoContent)
				return
			}
			res := db.
				Model(&models.Room{}).
				Where("id = ?", params.ID).
				Updates(updates)
			if res.Error != nil {
				log.Printf("Error updating room [%d]: %s\n", params.ID, res.Error.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			if res.RowsAffected == 0 {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		GET("/admin/reservations", func(ctx *gin.Context) {
			db := db.GetDb()
			var list []models.Reservation
			if err := db.
				Model(&models.Reservation{}).
				Preload("Guest").
				Preload("Room").
				Preload("Payments").
				Order("created_at desc").
				Find(&list).
				Error; err != nil {
				log.Printf("Error listing reservations: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": list})
		}).
		GET("/admin/users", func(ctx *gin.Context) {
			var query struct {
				Role string `form:"role" binding:"omitempty,oneof=guest receptionist admin"`
			}
			if err := ctx.BindQuery(&query); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			tx := db.Model(&models.User{}).Order("created_at asc")
			if query.Role != "" {
				tx = tx.Where("role = ?", query.Role)
			}
			var users []models.User
			if err := tx.Find(&users).Error; err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": users})
		}).
		GET("/admin/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var user models.User
			if err := db.
				Model(&models.User{}).
				Preload("Reservations").
				Where("id = ?", params.ID).
				First(&user).
				Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		}).
		POST("/admin/staff", func(ctx *gin.Context) {
			var body types.CreateStaffRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			staff := models.User{
				Username:  body.Username,
				Email:     body.Email,
				Role:      types.UserRole(body.Role),
				FirstName: body.FirstName,
				LastName:  body.LastName,
				Phone:     body.Phone,
			}
			if err := staff.SetPassword(body.Password); err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			err := db.Transaction(func(tx *gorm.DB) error {
				var count int64
				if err := tx.
					Model(&models.User{}).
					Where("username = ? OR email = ?", body.Username, body.Email).
					Count(&count).
					Error; err != nil {
					return err
				}
				if count > 0 {
					return errors.New("username or email is already in use")
				}
				return tx.Create(&staff).Error
			})
			if err != nil {
				log.Printf("Error creating staff account: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": staff})
		}).
		PATCH("/admin/users/:id/active", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body struct {
				Active *bool `json:"active" binding:"required"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			adminId := ctx.GetUint("id")
			if params.ID == adminId {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "cannot change own account status"})
				return
			}
			db := db.GetDb()
			res := db.
				Model(&models.User{}).
				Where("id = ?", params.ID).
				Update("active", *body.Active)
			if res.Error != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			if res.RowsAffected == 0 {
				ctx.Status(http.StatusNotFound)
				return
			}
			lib.InvalidateDashboards(ctx)
			ctx.Status(http.StatusNoContent)
		})
	return g
}
