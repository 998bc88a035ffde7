package main

import (
	"hbms/src/db"
	"hbms/src/models"
	"hbms/src/reservations"
	"hbms/src/types"
	"hbms/src/utils"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func roomHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/rooms", func(ctx *gin.Context) {
			var query struct {
				Type   string `form:"type" binding:"omitempty,oneof=individual double suite family"`
				Status string `form:"status" binding:"omitempty,oneof=available occupied maintenance cleaning"`
			}
			if err := ctx.BindQuery(&query); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			tx := db.Model(&models.Room{}).Order("number asc")
			if query.Type != "" {
				tx = tx.Where("type = ?", query.Type)
			}
			if query.Status != "" {
				tx = tx.Where("status = ?", query.Status)
			}
			var rooms []models.Room
			if err := tx.Find(&rooms).Error; err != nil {
				log.Printf("Error listing rooms: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rooms})
		}).
		GET("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var room models.Room
			if err := db.
				Model(&models.Room{}).
				Where("id = ?", params.ID).
				First(&room).
				Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"data":           room,
				"status_display": room.Status.Display(),
				"type_display":   room.Type.Display(),
			})
		}).
		GET("/rooms/:id/availability", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var query types.AvailabilityQuery
			if err := ctx.BindQuery(&query); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			checkIn, err := time.Parse(types.DATE_PARSE_FORMAT, query.CheckInDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in date"})
				return
			}
			checkOut, err := time.Parse(types.DATE_PARSE_FORMAT, query.CheckOutDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out date"})
				return
			}
			svc := reservations.New(db.GetDb(), nil)
			available, err := svc.CheckAvailability(params.ID, checkIn, checkOut)
			if err != nil {
				ctx.JSON(utils.HTTPStatusForError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"room_id":   params.ID,
				"check_in":  query.CheckInDate,
				"check_out": query.CheckOutDate,
				"available": available,
			})
		}).
		GET("/rooms/search", func(ctx *gin.Context) {
			var query struct {
				types.AvailabilityQuery
				Guests uint   `form:"guests" binding:"omitempty,min=1"`
				Type   string `form:"type" binding:"omitempty,oneof=individual double suite family"`
			}
			if err := ctx.BindQuery(&query); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			checkIn, err := time.Parse(types.DATE_PARSE_FORMAT, query.CheckInDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in date"})
				return
			}
			checkOut, err := time.Parse(types.DATE_PARSE_FORMAT, query.CheckOutDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out date"})
				return
			}
			svc := reservations.New(db.GetDb(), nil)
			rooms, err := svc.SearchRooms(checkIn, checkOut, query.Guests, types.RoomType(query.Type))
			if err != nil {
				ctx.JSON(utils.HTTPStatusForError(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rooms})
		})
	return g
}
