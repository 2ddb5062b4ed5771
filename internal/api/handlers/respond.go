package handlers

import (
	"errors"
	"net/http"

	"solar-proposal/internal/api/models"
	"solar-proposal/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.NewError(code, message))
}

func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, models.CodeNotFound, err.Error())
		return
	}
	respondError(c, http.StatusInternalServerError, models.CodeStoreError, err.Error())
}

// projectID parses the :id path parameter, answering 400 when it is not a UUID.
func projectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, models.CodeInvalidRequest, "invalid project id")
		return uuid.Nil, false
	}
	return id, true
}
