package main

import (
	"hbms/src/db"
	"hbms/src/models"
	"hbms/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func accountHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/profile", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var user models.User
			if err := db.
				Model(&models.User{}).
				Where("id = ?", userId).
				First(&user).
				Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		}).
		PATCH("/profile", func(ctx *gin.Context) {
			var body types.UpdateProfileRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			updates := map[string]any{}
			if body.Email != nil {
				updates["email"] = *body.Email
			}
			if body.FirstName != nil {
				updates["first_name"] = *body.FirstName
			}
			if body.LastName != nil {
				updates["last_name"] = *body.LastName
			}
			if body.Phone != nil {
				updates["phone"] = *body.Phone
			}
			if len(updates) == 0 {
				ctx.Status(http.StatusNoContent)
				return
			}
			if err := db.
				Model(&models.User{}).
				Where("id = ?", userId).
				Updates(updates).
				Error; err != nil {
				log.Printf("Error updating profile for user [%d]: %s\n", userId, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "could not update profile"})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/profile/password", func(ctx *gin.Context) {
			var body types.ChangePasswordRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var user models.User
			if err := db.
				Model(&models.User{}).
				Where("id = ?", userId).
				First(&user).
				Error; err != nil {
				ctx.Status(http.StatusNotFound)
				return
			}
			if !user.CheckPassword(body.CurrentPassword) {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
				return
			}
			if err := user.SetPassword(body.NewPassword); err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			if err := db.
				Model(&models.User{}).
				Where("id = ?", userId).
				Update("password_hash", user.PasswordHash).
				Error; err != nil {
				log.Printf("Error changing password for user [%d]: %s\n", userId, err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
