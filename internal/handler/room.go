package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// RoomHandler serves the public room catalog. These endpoints need no
// authentication and sit behind the Redis response cache.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(r *repository.RoomRepo) *RoomHandler {
	return &RoomHandler{Rooms: r}
}

type roomResp struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	RoomType         string `json:"room_type"`
	NightlyRateCents int64  `json:"nightly_rate_cents"`
	Capacity         int    `json:"capacity"`
	IsAvailable      bool   `json:"is_available"`
}

func toRoomResp(r *model.Room) roomResp {
	return roomResp{
		ID:               r.ID,
		Name:             r.Name,
		Description:      r.Description,
		RoomType:         r.RoomType,
		NightlyRateCents: r.NightlyRateCents,
		Capacity:         r.Capacity,
		IsAvailable:      r.IsAvailable,
	}
}

// List handles GET /v1/rooms.
func (h *RoomHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		c.Logger().Errorf("list rooms failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	out := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		c.Logger().Errorf("get room failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, toRoomResp(room))
}
