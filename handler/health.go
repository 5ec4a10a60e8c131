package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const serviceName = "Top Thought Blog API"
const serviceVersion = "1.0.0"

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   serviceName,
		Version:   serviceVersion,
	})
}
