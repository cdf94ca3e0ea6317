package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel comparisons

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// RoomRepo provides methods to create and retrieve hotel rooms. It
// embeds a database handle to perform queries and commands. RoomRepo
// also serves as the Room Catalog collaborator for the booking
// service: it is the authority on room existence, capacity, nightly
// rate and the global availability flag.
type RoomRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

const roomColumns = `id, name, description, room_type, nightly_rate_cents, capacity, is_available, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }) (*model.Room, error) {
	var r model.Room
	var desc sql.NullString
	err := row.Scan(&r.ID, &r.Name, &desc, &r.RoomType, &r.NightlyRateCents, &r.Capacity, &r.IsAvailable, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Description = desc.String
	return &r, nil
}

// Create inserts a new room. After insert the record is read back so
// the ID, timestamps and defaults are populated.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	const qInsert = `INSERT INTO rooms (name, description, room_type, nightly_rate_cents, capacity, is_available)
	                 VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		room.Name, room.Description, room.RoomType, room.NightlyRateCents, room.Capacity, room.IsAvailable)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*room = *stored
	return nil
}

// GetByID retrieves a room by its ID. It returns ErrRoomNotFound when
// no row is found.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	room, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// List returns all rooms ordered by creation time descending (newest
// first), matching the public browse endpoint. When no rooms exist an
// empty slice is returned.
func (r *RoomRepo) List(ctx context.Context) ([]*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the mutable room fields. Returns ErrRoomNotFound
// when the id does not exist. All values are bound as parameters;
// queries are never assembled from user input.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
	const q = `UPDATE rooms
	           SET name = ?, description = ?, room_type = ?, nightly_rate_cents = ?, capacity = ?, is_available = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		room.Name, room.Description, room.RoomType, room.NightlyRateCents, room.Capacity, room.IsAvailable, room.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	stored, err := r.GetByID(ctx, room.ID)
	if err != nil {
		return err
	}
	*room = *stored
	return nil
}

// SetAvailability flips the global availability switch for a room.
func (r *RoomRepo) SetAvailability(ctx context.Context, id uint64, available bool) error {
	const q = `UPDATE rooms SET is_available = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, available, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// Delete removes a room. Bookings reference rooms without cascading
// deletes, so the database rejects removal of a room that still has
// booking rows; that driver error is surfaced unchanged.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// RoomStats aggregates room counts for the admin dashboard.
type RoomStats struct {
	TotalRooms       int64 `json:"total_rooms"`
	AvailableRooms   int64 `json:"available_rooms"`
	UnavailableRooms int64 `json:"unavailable_rooms"`
}

// Stats computes dashboard counters in a single query.
func (r *RoomRepo) Stats(ctx context.Context) (RoomStats, error) {
	const q = `SELECT COUNT(*),
	                  COUNT(CASE WHEN is_available = 1 THEN 1 END),
	                  COUNT(CASE WHEN is_available = 0 THEN 1 END)
	           FROM rooms`
	var s RoomStats
	err := r.db.QueryRowContext(ctx, q).Scan(&s.TotalRooms, &s.AvailableRooms, &s.UnavailableRooms)
	return s, err
}
