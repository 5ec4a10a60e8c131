package handler

import (
	"net/http"

	"topthought/youtube"

	"github.com/labstack/echo/v4"
)

type channelStatsResponse struct {
	Subscribers string `json:"subscribers"`
	Videos      string `json:"videos"`
	Views       string `json:"views"`
}

// ChannelStats serves the video host's channel counters, formatted for
// display. The host being unreachable is a plain upstream failure; there is
// nothing to fall back to.
func (h *Handler) ChannelStats(c echo.Context) error {
	stats, err := h.YouTube.FetchChannelStats(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("fetching channel stats: %v", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Channel statistics unavailable")
	}
	if stats == nil {
		return c.JSON(http.StatusNotFound, messageResponse{Message: "Channel not found"})
	}
	return c.JSON(http.StatusOK, channelStatsResponse{
		Subscribers: youtube.FormatCount(stats.SubscriberCount),
		Videos:      youtube.FormatCount(stats.VideoCount),
		Views:       youtube.FormatCount(stats.ViewCount),
	})
}
