package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// AdminRoomHandler manages the room inventory. All routes sit behind
// JWTAuth plus RequireRole(ADMIN).
type AdminRoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewAdminRoomHandler(r *repository.RoomRepo) *AdminRoomHandler {
	return &AdminRoomHandler{Rooms: r}
}

type roomWriteReq struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	RoomType         string `json:"room_type"`
	NightlyRateCents int64  `json:"nightly_rate_cents"`
	Capacity         int    `json:"capacity"`
	IsAvailable      *bool  `json:"is_available"`
}

func (req *roomWriteReq) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	req.RoomType = strings.TrimSpace(req.RoomType)
	switch {
	case req.Name == "":
		return "name required"
	case req.RoomType == "":
		return "room_type required"
	case req.NightlyRateCents <= 0:
		return "nightly_rate_cents must be positive"
	case req.Capacity < 1:
		return "capacity must be at least 1"
	}
	return ""
}

// Create handles POST /v1/admin/rooms.
func (h *AdminRoomHandler) Create(c echo.Context) error {
	var req roomWriteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	room := &model.Room{
		Name:             req.Name,
		Description:      strings.TrimSpace(req.Description),
		RoomType:         req.RoomType,
		NightlyRateCents: req.NightlyRateCents,
		Capacity:         req.Capacity,
		IsAvailable:      true,
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Create(ctx, room); err != nil {
		c.Logger().Errorf("create room failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, toRoomResp(room))
}

// Update handles PUT /v1/admin/rooms/:id.
func (h *AdminRoomHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomWriteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room := &model.Room{
		ID:               id,
		Name:             req.Name,
		Description:      strings.TrimSpace(req.Description),
		RoomType:         req.RoomType,
		NightlyRateCents: req.NightlyRateCents,
		Capacity:         req.Capacity,
		IsAvailable:      true,
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	if err := h.Rooms.Update(ctx, room); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		c.Logger().Errorf("update room failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	return c.JSON(http.StatusOK, toRoomResp(room))
}

// SetAvailability handles PATCH /v1/admin/rooms/:id/availability.
// Flipping a room off the market does not touch existing bookings; it
// only blocks new ones.
func (h *AdminRoomHandler) SetAvailability(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req struct {
		IsAvailable *bool `json:"is_available"`
	}
	if err := c.Bind(&req); err != nil || req.IsAvailable == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_available required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.SetAvailability(ctx, id, *req.IsAvailable); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		c.Logger().Errorf("set availability failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "is_available": *req.IsAvailable})
}

// Delete handles DELETE /v1/admin/rooms/:id. Rooms with booking
// history cannot be deleted (foreign key); take them off the market
// with SetAvailability instead.
func (h *AdminRoomHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		switch err {
		case repository.ErrRoomNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		default:
			if strings.Contains(err.Error(), "1451") { // FK rows exist
				return c.JSON(http.StatusConflict, echo.Map{"error": "room has bookings; mark it unavailable instead"})
			}
			c.Logger().Errorf("delete room failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
