package handlers

import (
	"net/http"

	"gatekeeper/service"

	"github.com/gin-gonic/gin"
)

// GetSettings returns the full settings map.
func GetSettings(c *gin.Context) {
	settings, err := service.GlobalServices.Settings.All()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, settings)
}

// UpdateSettings bulk-upserts settings. Unrecognized keys and non-string
// values are skipped, not rejected; the response carries the resulting map.
func UpdateSettings(c *gin.Context) {
	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CategoryValidation, "invalid request body: "+err.Error())
		return
	}

	settings, err := service.GlobalServices.Settings.BulkSet(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondDataMessage(c, http.StatusOK, settings, "settings updated")
}

// GetSettingKey returns a single setting.
func GetSettingKey(c *gin.Context) {
	key := c.Param("key")

	value, err := service.GlobalServices.Settings.Get(key)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"key": key, "value": value})
}

// UpdateSettingKey writes a single setting; a disallowed key is an error here,
// unlike the bulk update.
func UpdateSettingKey(c *gin.Context) {
	key := c.Param("key")

	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CategoryValidation, "invalid request body: "+err.Error())
		return
	}

	if err := service.GlobalServices.Settings.Set(key, req.Value); err != nil {
		respondServiceError(c, err)
		return
	}

	respondDataMessage(c, http.StatusOK, gin.H{"key": key, "value": req.Value}, "setting updated")
}
