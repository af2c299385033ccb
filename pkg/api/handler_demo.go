package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/logshield/pkg/logging"
)

// DemoCategory is the logger category of the demonstration endpoints.
const DemoCategory = "api.test"

// demoSensitiveData is logged by GET /api/test.
const demoSensitiveData = "User email: john.doe@example.com and credit card: 1234-5678-9876-5432"

var (
	eventTestGet    = logging.EventID{ID: 1001, Name: "TestGet"}
	eventTestPost   = logging.EventID{ID: 1002, Name: "TestPost"}
	eventTestPut    = logging.EventID{ID: 1003, Name: "TestPut"}
	eventTestDelete = logging.EventID{ID: 1004, Name: "TestDelete"}
)

// testGetHandler handles GET /api/test.
func (s *Server) testGetHandler(c *gin.Context) {
	s.demoLogger().Logf(c.Request.Context(), slog.LevelInfo, eventTestGet,
		"Test GET request. Sensitive data: %s", demoSensitiveData)

	c.JSON(http.StatusOK, &MessageResponse{Message: "GET request received and sensitive data logged!"})
}

// testPostHandler handles POST /api/test. The body is a JSON string.
func (s *Server) testPostHandler(c *gin.Context) {
	var data string
	if err := c.ShouldBindJSON(&data); err != nil {
		abortWithError(c, http.StatusBadRequest, "body must be a JSON string")
		return
	}

	s.demoLogger().Logf(c.Request.Context(), slog.LevelInfo, eventTestPost,
		"Test POST request. Sensitive data: %s", data)

	c.JSON(http.StatusOK, &MessageResponse{Message: fmt.Sprintf("POST request received. Data: %s", data)})
}

// testPutHandler handles PUT /api/test/:id. The body is a JSON string.
func (s *Server) testPutHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var data string
	if err := c.ShouldBindJSON(&data); err != nil {
		abortWithError(c, http.StatusBadRequest, "body must be a JSON string")
		return
	}

	s.demoLogger().Logf(c.Request.Context(), slog.LevelInfo, eventTestPut,
		"Test PUT request. Updating data for ID %d. Sensitive data: %s", id, data)

	c.JSON(http.StatusOK, &MessageResponse{Message: fmt.Sprintf("PUT request received. Data for ID %d updated.", id)})
}

// testDeleteHandler handles DELETE /api/test/:id.
func (s *Server) testDeleteHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.demoLogger().Logf(c.Request.Context(), slog.LevelInfo, eventTestDelete,
		"Test DELETE request. Deleting data for ID %d", id)

	c.JSON(http.StatusOK, &MessageResponse{Message: fmt.Sprintf("DELETE request received. Data for ID %d deleted.", id)})
}

func (s *Server) demoLogger() *logging.Logger {
	return s.loggers.Logger(DemoCategory)
}

// pathID parses the :id path parameter, answering 400 when it is not an
// integer.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}
