package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/food-storefront/internal/db"
	"github.com/BruksfildServices01/food-storefront/internal/httperr"
)

// writeError maps an operation error to the failure envelope. Rule
// violations keep status 200 so clients read them from "success".
func writeError(c *gin.Context, log *zap.Logger, err error) {
	if be, ok := httperr.AsBusiness(err); ok {
		switch {
		case strings.HasSuffix(be.Code, "_not_found"):
			httperr.NotFound(c, be.Code, be.Error())
		case be.Code == "invalid_credentials":
			httperr.Unauthorized(c, be.Code, be.Error())
		case be.Code == "forbidden":
			httperr.Write(c, http.StatusForbidden, be.Code, be.Error())
		default:
			httperr.Write(c, http.StatusOK, be.Code, be.Error())
		}
		return
	}

	_ = c.Error(err)

	switch {
	case db.IsNotFound(err):
		httperr.NotFound(c, "not_found", "Not found")
	case db.IsConflict(err):
		httperr.Write(c, http.StatusConflict, "conflict", "The record conflicts with an existing one")
	case db.IsUnavailable(err):
		log.Error("store unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		httperr.Unavailable(c, "store_unavailable", "Service temporarily unavailable")
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		httperr.Internal(c, "internal_error", "Internal server error")
	}
}

// bindJSON decodes the body into dst, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return false
	}
	return true
}

// paramID reads a positive numeric path parameter, answering 400 when
// it is not one.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+strings.ReplaceAll(name, "_", " "))
		return 0, false
	}
	return uint(id), true
}
