package handlers

import (
	"net/http"

	intconfig "tablebook/internal/config"
	"tablebook/internal/notify"

	"github.com/gin-gonic/gin"
)

var (
	env intconfig.Env
	crm *notify.CRMClient
)

// Init wires handler-level configuration once at router construction.
func Init(e intconfig.Env) {
	env = e
	crm = notify.NewCRMClient(e.CRMURL, e.CRMBusinessID)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "invalid_body", "empty request body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", "invalid payload", err.Error())
		return false
	}
	return true
}
