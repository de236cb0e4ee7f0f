package handlers

import "github.com/gin-gonic/gin"

// failed builds the error body every endpoint answers with:
// {status:"failed", message, error}.
func failed(message, errMsg string) gin.H {
	return gin.H{"status": "failed", "message": message, "error": errMsg}
}
