package controllers

import (
	"net/http"

	"vendura-api-io/api/internal/auth"
	"vendura-api-io/api/pkg/models"
	"vendura-api-io/api/pkg/services"
	"vendura-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type UserController struct {
	userService services.UserService
	redisClient *redis.Client
}

func InitUserController(userService services.UserService, redisClient *redis.Client) *UserController {
	return &UserController{
		userService: userService,
		redisClient: redisClient,
	}
}

func (uc *UserController) Signup(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	var req models.SignupRequest
	if !BindJSONAndValidate(c, &req) {
		return
	}

	user, err := uc.userService.Signup(ctx, req)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusCreated, "Account created", user)
}

// Login verifies credentials and issues a signed token.
func (uc *UserController) Login(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	var req models.LoginRequest
	if !BindJSONAndValidate(c, &req) {
		return
	}

	user, err := uc.userService.Login(ctx, req)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	token, expiresAt, err := auth.GenerateJWT(user.ID.Hex(), user.Email, user.IsAdmin)
	if err != nil {
		util.HandleError(c, http.StatusInternalServerError, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Login successful", gin.H{
		"user":      user,
		"token":     token,
		"expiresAt": expiresAt,
	})
}

// Logout blacklists the presented token until it would have expired anyway.
func (uc *UserController) Logout(c *gin.Context) {
	tokenString := auth.ExtractToken(c)
	if tokenString == "" {
		util.HandleError(c, http.StatusBadRequest, errors.New("no token to invalidate"))
		return
	}

	if err := auth.InvalidateToken(uc.redisClient, tokenString); err != nil {
		util.HandleError(c, http.StatusInternalServerError, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "Logged out", nil)
}

func (uc *UserController) GetMe(c *gin.Context) {
	ctx, cancel := WithTimeout()
	defer cancel()

	callerID, ok := RequireCaller(c)
	if !ok {
		return
	}

	user, err := uc.userService.GetUser(ctx, callerID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.HandleSuccess(c, http.StatusOK, "User retrieved", user)
}
