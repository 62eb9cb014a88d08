package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) ListStores(c *gin.Context) {
	type info struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	out := []info{}
	for _, f := range a.Stores.All() {
		out = append(out, info{Name: f.Name(), Count: f.Len()})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// RefreshStore re-fetches one store by name from the active data source.
func (a *API) RefreshStore(c *gin.Context) {
	f, ok := a.Stores.ByName(c.Param("name"))
	if !ok {
		RespondError(c, http.StatusNotFound, "unknown store "+c.Param("name"), nil)
		return
	}
	f.Fetch(c.Request.Context())
	if msg := f.LastError(); msg != "" {
		RespondError(c, http.StatusBadGateway, "refresh failed: "+msg, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": f.Name(), "count": f.Len()})
}
