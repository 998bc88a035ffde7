package main

import (
	"hbms/src/db"
	"hbms/src/lib"
	"hbms/src/models"
	"hbms/src/reservations"
	"hbms/src/types"
	"hbms/src/utils"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func reservationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/reservations", func(ctx *gin.Context) {
			var body types.CreateReservationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			checkIn, _ := time.Parse(types.DATE_PARSE_FORMAT, body.CheckInDate)
			checkOut, _ := time.Parse(types.DATE_PARSE_FORMAT, body.CheckOutDate)
			svc := reservations.New(db.GetDb(), nil)
			reservation, err := svc.CreateReservation(&reservations.CreateInput{
				GuestID:         userId,
				RoomID:          body.RoomID,
				CheckIn:         checkIn,
				CheckOut:        checkOut,
				GuestsCount:     body.GuestsCount,
				SpecialRequests: body.SpecialRequests,
			})
			if err != nil {
				log.Printf("Error creating reservation: %s\n", err.Error())
				ctx.JSON(utils.HTTPStatusForError(err), gin.H{"error": err.Error()})
				return
			}
			lib.InvalidateDashboards(ctx)
			ctx.JSON(http.StatusCreated, gin.H{"data": reservation})
		}).
		GET("/dashboard", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var current models.Reservation
			hasStay := true
			if err := db.
				Model(&models.Reservation{}).
				Preload("Room").
				Where("guest_id = ? AND status = ?", userId, types.RESERVATION_CHECKED_IN).
				First(&current).
				Error; err != nil {
				hasStay = false
			}
			var upcoming []models.Reservation
			if err := db.
				Model(&models.Reservation{}).
				Preload("Room").
				Where("guest_id = ? AND status IN ?", userId, []types.ReservationStatus{
					types.RESERVATION_PENDING,
					types.RESERVATION_CONFIRMED,
				}).
				Order("check_in_date asc").
				Find(&upcoming).
				Error; err != nil {
				log.Printf("Error loading dashboard for user [%d]: %s\n", userId, err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			payload := gin.H{"upcoming": upcoming}
			if hasStay {
				payload["current_stay"] = current
			}
			ctx.JSON(http.StatusOK, gin.H{"data": payload})
		}).
		GET("/reservations", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var list []models.Reservation
			if err := db.
				Model(&models.Reservation{}).
				Preload("Room").
				Where("guest_id = ?", userId).
				Order("check_in_date desc").
				Find(&list).
				Error; err != nil {
				log.Printf("Error listing reservations for user [%d]: %s\n", userId, err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": list})
		}).
		GET("/reservations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var reservation models.Reservation
			if err := db.
				Model(&models.Reservation{}).
				Preload("Room").
				Preload("Payments").
				Where("id = ? AND guest_id = ?", params.ID, userId).
				First(&reservation).
				Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"data":           reservation,
				"status_display": reservation.Status.Display(),
			})
		}).
		PATCH("/reservations/:id/dates", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateReservationDatesRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			if !ownsReservation(params.ID, userId) {
				ctx.Status(http.StatusNotFound)
				return
			}
			checkIn, _ := time.Parse(types.DATE_PARSE_FORMAT, body.CheckInDate)
			checkOut, _ := time.Parse(types.DATE_PARSE_FORMAT, body.CheckOutDate)
			svc := reservations.New(db.GetDb(), nil)
			reservation, err := svc.UpdateReservationDates(params.ID, checkIn, checkOut)
			if err != nil {
				log.Printf("Error moving reservation [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(utils.HTTPStatusForError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reservation})
		}).
		POST("/reservations/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			if !ownsReservation(params.ID, userId) {
				ctx.Status(http.StatusNotFound)
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
		})
	return g
}

func ownsReservation(reservationId, userId uint) bool {
	db := db.GetDb()
	var count int64
	if err := db.
		Model(&models.Reservation{}).
		Where("id = ? AND guest_id = ?", reservationId, userId).
		Count(&count).
		Error; err != nil {
		log.Printf("Error checking reservation owner: %s\n", err.Error())
		return false
	}
	return count > 0
}
