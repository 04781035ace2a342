package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/food-storefront/internal/httpresp"
	"github.com/BruksfildServices01/food-storefront/internal/middleware"
	ucUser "github.com/BruksfildServices01/food-storefront/internal/usecase/user"
)

// ======================================================
// HANDLER
// ======================================================

type UserHandler struct {
	register       *ucUser.Register
	login          *ucUser.Login
	get            *ucUser.GetUser
	updateProfile  *ucUser.UpdateProfile
	updateAddress  *ucUser.UpdateAddress
	updateUsername *ucUser.UpdateUsername
	log            *zap.Logger
}

func NewUserHandler(
	register *ucUser.Register,
	login *ucUser.Login,
	get *ucUser.GetUser,
	updateProfile *ucUser.UpdateProfile,
	updateAddress *ucUser.UpdateAddress,
	updateUsername *ucUser.UpdateUsername,
	log *zap.Logger,
) *UserHandler {
	return &UserHandler{
		register:       register,
		login:          login,
		get:            get,
		updateProfile:  updateProfile,
		updateAddress:  updateAddress,
		updateUsername: updateUsername,
		log:            log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AddressRequest struct {
	Address string `json:"address"`
}

type UsernameRequest struct {
	Username string `json:"username"`
}

// ======================================================
// AUTH
// ======================================================

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"user": res.User, "token": res.Token})
}

func (h *UserHandler) Register(c *gin.Context) {
	var req ucUser.RegisterInput
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.register.Execute(c.Request.Context(), req); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucUser.MsgRegistered, nil)
}

// ======================================================
// PROFILE
// ======================================================

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	u, err := h.get.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"user": u})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ucUser.ProfileInput
	if !bindJSON(c, &req) {
		return
	}

	if err := h.updateProfile.Execute(c.Request.Context(), middleware.Actor(c), id, req); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucUser.MsgProfileUpdated, nil)
}

func (h *UserHandler) UpdateAddress(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AddressRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.updateAddress.Execute(c.Request.Context(), middleware.Actor(c), id, req.Address); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucUser.MsgAddressUpdated, nil)
}

func (h *UserHandler) UpdateUsername(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UsernameRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.updateUsername.Execute(c.Request.Context(), middleware.Actor(c), id, req.Username); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucUser.MsgUsernameUpdated, nil)
}
