package controllers

import (
	"net/http"
	"strconv"

	"github.com/alikalatearabi/salemina-main-app-backend/services"

	"github.com/gin-gonic/gin"
)

// GET /api/users
func GetAllUsers(c *gin.Context) {
	users, err := services.GetAllUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := services.GetUser(id)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /api/users/:id
func UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var in services.UserUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.UpdateUser(id, in)
	if err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /api/users/:id
func DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := services.DeleteUser(id); err != nil {
		c.JSON(statusFromErr(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
