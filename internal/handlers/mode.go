package handlers

import (
	"net/http"

	"backoffice/internal/mode"

	"github.com/gin-gonic/gin"
)

func (a *API) GetMode(c *gin.Context) {
	cfg := a.Mode.Current()
	c.JSON(http.StatusOK, gin.H{
		"dataMode":   cfg.DataMode,
		"apiBaseUrl": cfg.APIBaseURL,
		"live":       a.Mode.IsLiveMode(),
	})
}

// SetMode switches demo/live. Stores keep their items until the next refresh.
func (a *API) SetMode(c *gin.Context) {
	var cfg mode.Config
	if !BindJSONOrError(c, &cfg) {
		return
	}
	if err := a.Mode.Set(c.Request.Context(), cfg); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid data mode", err)
		return
	}
	a.GetMode(c)
}
