package controllers

import (
	"errors"
	"hbms/src/db"
	"hbms/src/models"
	"hbms/src/types"
	"hbms/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthRegister(ctx *gin.Context) (id *uint, status int, err error) {
	var body types.RegisterRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	db := db.GetDb()
	newUser := models.User{
		Username:  body.Username,
		Email:     body.Email,
		Role:      types.ROLE_GUEST,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Phone:     body.Phone,
	}
	if err := newUser.SetPassword(body.Password); err != nil {
		log.Printf("Error hashing password: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("could not register user")
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.
			Model(&models.User{}).
			Select("id").
			Where("username = ? OR email = ?", body.Username, body.Email).
			First(&existing).
			Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("could not complete transaction")
			}
		}
		if existing.ID > 0 {
			err := errors.New("user is already registered in the system. Please proceed to Log In")
			log.Printf("error: %s\n", err.Error())
			return err
		}
		if err := tx.Create(&newUser).Error; err != nil {
			log.Printf("Error creating user: %s\n", err.Error())
			return errors.New("error creating user")
		}
		return nil
	})
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &newUser.ID, http.StatusCreated, nil
}

func AuthLogin(ctx *gin.Context) (token *string, status int, err error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	db := db.GetDb()
	var user models.User
	if err = db.
		Model(&models.User{}).
		Where("username = ? OR email = ?", body.Username, body.Username).
		First(&user).
		Error; err != nil {
		log.Printf("error: %s\n", err.Error())
		return nil, http.StatusUnauthorized, errors.New("invalid credentials")
	}
	if !user.Active {
		return nil, http.StatusUnauthorized, errors.New("account is disabled")
	}
	if !user.CheckPassword(body.Password) {
		return nil, http.StatusUnauthorized, errors.New("invalid credentials")
	}

	jwt, err := utils.GenerateJWT(user.Username, user.ID, user.Role)
	if err != nil {
		log.Printf("Error signing token for user [%d]: %s\n", user.ID, err.Error())
		return nil, http.StatusInternalServerError, errors.New("could not issue token")
	}
	return &jwt, http.StatusOK, nil
}
