package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/food-storefront/internal/httpresp"
	"github.com/BruksfildServices01/food-storefront/internal/middleware"
	ucUser "github.com/BruksfildServices01/food-storefront/internal/usecase/user"
)

type AdminUserUseCases struct {
	Register *ucUser.AdminRegisterUser
	Update   *ucUser.AdminUpdateUser
	List     *ucUser.ListUsers
	Delete   *ucUser.DeleteUser
}

type AdminUserHandler struct {
	uc  AdminUserUseCases
	log *zap.Logger
}

func NewAdminUserHandler(uc AdminUserUseCases, log *zap.Logger) *AdminUserHandler {
	return &AdminUserHandler{uc: uc, log: log}
}

type AdminRegisterRequest struct {
	ucUser.RegisterInput
	UserType string `json:"user_type"`
}

func (h *AdminUserHandler) List(c *gin.Context) {
	users, err := h.uc.List.Execute(
		c.Request.Context(),
		middleware.Actor(c),
		c.DefaultQuery("type", "all"),
		c.DefaultQuery("sort_by", "newest"),
	)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, "users", users)
}

func (h *AdminUserHandler) Register(c *gin.Context) {
	var req AdminRegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.uc.Register.Execute(c.Request.Context(), middleware.Actor(c), req.RegisterInput, req.UserType)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucUser.RegisteredMessage(u.UserType), gin.H{"user_id": u.ID})
}

func (h *AdminUserHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ucUser.UserPatch
	if !bindJSON(c, &req) {
		return
	}

	if err := h.uc.Update.Execute(c.Request.Context(), middleware.Actor(c), id, req); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucUser.MsgUserUpdated, nil)
}

func (h *AdminUserHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), middleware.Actor(c), id); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Result(c, true, ucUser.MsgUserDeleted, nil)
}
