package main

import (
	"fmt"
	"hbms/src/db"
	"hbms/src/lib"
	"hbms/src/models"
	"hbms/src/reservations"
	"hbms/src/types"
	"hbms/src/utils"
	"log"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func receptionistHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/desk/dashboard", func(ctx *gin.Context) {
			snap, err := utils.BuildDashboardSnapshot(ctx, db.GetDb(), "dashboard:receptionist")
			if err != nil {
				log.Printf("Error building dashboard: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": snap})
		}).
		GET("/desk/reservations", func(ctx *gin.Context) {
			var query struct {
				Status string `form:"status" binding:"omitempty,oneof=pending confirmed checked_in checked_out cancelled"`
				Date   string `form:"date"`
			}
			if err := ctx.BindQuery(&query); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			tx := db.
				Model(&models.Reservation{}).
				Preload("Guest").
				Preload("Room").
				Order("check_in_date asc")
			if query.Status != "" {
				tx = tx.Where("status = ?", query.Status)
			}
			if query.Date != "" {
				tx = tx.Where("check_in_date = ?", query.Date)
			}
			var list []models.Reservation
			if err := tx.Find(&list).Error; err != nil {
				log.Printf("Error listing reservations: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": list})
		}).
		POST("/desk/reservations/:id/confirm", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			staffId := ctx.GetUint("id")
			svc := reservations.New(db.GetDb(), nil)
			reservation, err := svc.ConfirmReservation(params.ID, staffId)
			if err != nil {
				log.Printf("Error confirming reservation [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(utils.HTTPStatusForError(err), gin.H{"error": err.Error()})
				return
			}
			go func(id uint) {
				db := db.GetDb()
				var full models.Reservation
				if err := db.
					Preload("Guest").
					Preload("Room").
					First(&full, id).
					Error; err != nil {
					log.Printf("Error loading reservation [%d] for email: %s\n", id, err.Error())
					return
				}
				if err := utils.SendReservationConfirmation(&full); err != nil {
					log.Printf("Error sending confirmation email for [%s]: %s\n", full.Reference, err.Error())
				}
			}(reservation.ID)
			lib.InvalidateDashboards(ctx)
			ctx.JSON(http.StatusOK, gin.H{"data": reservation})
		}).
		POST("/desk/reservations/:id/checkin", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			svc := reservations.New(db.GetDb(), nil)
			reservation, err := svc.CheckIn(params.ID)
			if err != nil {
				log.Printf("Error checking in reservation [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(utils.HTTPStatusForError(err), gin.H{"error": err.Error()})
				return
			}
			lib.InvalidateDashboards(ctx)
			ctx.JSON(http.StatusOK, gin.H{"data": reservation})
		}).
		POST("/desk/reservations/:id/checkout", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			svc := reservations.New(db.GetDb(), nil)
			reservation, err := svc.CheckOut(params.ID)
			if err != nil {
				log.Printf("Error checking out reservation [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(utils.HTTPStatusForError(err), gin.H{"error": err.Error()})
				return
			}
			lib.InvalidateDashboards(ctx)
			ctx.JSON(http.StatusOK, gin.H{"data": reservation})
		}).
		POST("/desk/reservations/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			svc := reservations.New(db.GetDb(), nil)
			reservation, err := svc.CancelReservation(params.ID)
			if err != nil {
				log.Printf("Error cancelling reservation [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(utils.HTTPStatusForError(err), gin.H{"error": err.Error()})
				return
			}
			lib.InvalidateDashboards(ctx)
			ctx.JSON(http.StatusOK, gin.H{"data": reservation})
		}).
		POST("/desk/reservations/:id/payments", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.RecordPaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			staffId := ctx.GetUint("id")
			db := db.GetDb()
			var payment models.Payment
			err := db.Transaction(func(tx *gorm.DB) error {
				var reservation models.Reservation
				if err := tx.
					Where(&models.Reservation{ID: params.ID}).
					First(&reservation).
					Error; err != nil {
					return fmt.Errorf("%w: reservation %d", reservations.ErrNotFound, params.ID)
				}
				method := types.PaymentMethod(body.Method)
				payment = models.Payment{
					ReservationID: reservation.ID,
					Amount:        reservation.TotalPrice,
					Method:        method,
					Detail:        body.Detail,
					Status:        types.PAYMENT_COMPLETED,
					ReferenceID:   reservation.Reference,
					RecordedByID:  staffId,
				}
				if method == types.PAYMENT_CARD {
					cents := int64(math.Round(reservation.TotalPrice * 100))
					pi, err := lib.CreatePaymentIntent(cents, "usd", reservation.Reference)
					if err != nil {
						log.Printf("Error creating payment intent for [%s]: %s\n", reservation.Reference, err.Error())
						return err
					}
					payment.PaymentIntentID = &pi.ID
					payment.Status = types.PAYMENT_PENDING
				}
				if err := tx.Create(&payment).Error; err != nil {
					return err
				}
				return tx.
					Model(&models.Reservation{}).
					Where("id = ?", reservation.ID).
					Updates(map[string]any{
						"payment_method": method,
						"payment_detail": body.Detail,
					}).Error
			})
			if err != nil {
				ctx.JSON(utils.HTTPStatusForError(err), gin.H{"error": err.Error()})
				return
			}
			lib.InvalidateDashboards(ctx)
			ctx.JSON(http.StatusCreated, gin.H{"data": payment})
		}).
		GET("/desk/payments", func(ctx *gin.Context) {
			db := db.GetDb()
			var list []models.Payment
			if err := db.
				Model(&models.Payment{}).
				Preload("Reservation").
				Order("created_at desc").
				Find(&list).
				Error; err != nil {
				log.Printf("Error listing payments: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": list})
		}).
		GET("/desk/rooms", func(ctx *gin.Context) {
			db := db.GetDb()
			var rooms []models.Room
			if err := db.Model(&models.Room{}).Order("number asc").Find(&rooms).Error; err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rooms})
		}).
		PATCH("/desk/rooms/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateRoomStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var room models.Room
				if err := tx.
					Where(&models.Room{ID: params.ID}).
					First(&room).
					Error; err != nil {
					return fmt.Errorf("%w: room %d", reservations.ErrNotFound, params.ID)
				}
				// Occupied is owned by the reservation lifecycle and cannot
				// be set or cleared by hand.
				if room.Status == types.ROOM_OCCUPIED {
					return fmt.Errorf("%w: room %s is occupied", reservations.ErrPrecondition, room.Number)
				}
				return tx.
					Model(&models.Room{}).
					Where("id = ?", room.ID).
					Update("status", types.RoomStatus(body.Status)).
					Error
			})
			if err != nil {
				log.Printf("Error updating room [%d] status: %s\n", params.ID, err.Error())
				ctx.JSON(utils.HTTPStatusForError(err), gin.H{"error": err.Error()})
				return
			}
			lib.InvalidateDashboards(ctx)
			ctx.Status(http.StatusNoContent)
		})
	return g
}
