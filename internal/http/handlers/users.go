package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/users (admin)
func GetUsers(c *gin.Context) {
	users, err := userService(c).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// DELETE /api/users/:id (admin)
func DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := userService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
