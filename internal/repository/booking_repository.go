package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// BookingRepo provides persistence for bookings. It owns the stored
// representation exclusively: every write goes through the booking
// service's validation sequence and ends up here. All timestamp
// fields are stored in UTC; check-in/check-out are DATE columns with
// no time-of-day component.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, room_id, guest_id, check_in, check_out, guests, total_cents, status, special_requests, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	var special sql.NullString
	var status string
	err := row.Scan(&b.ID, &b.RoomID, &b.GuestID, &b.Stay.CheckIn, &b.Stay.CheckOut,
		&b.Guests, &b.TotalCents, &status, &special, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Status = model.BookingStatus(status)
	if special.Valid {
		s := special.String
		b.SpecialRequests = &s
	}
	b.Stay.CheckIn = model.DateOnly(b.Stay.CheckIn)
	b.Stay.CheckOut = model.DateOnly(b.Stay.CheckOut)
	return &b, nil
}

// conflictWhere selects blocking bookings (pending or confirmed) for a
// room whose half-open [check_in, check_out) range overlaps the given
// stay: existing.check_in < new.check_out AND new.check_in < existing.check_out.
const conflictWhere = `room_id = ?
	AND status IN ('pending', 'confirmed')
	AND check_in < ?
	AND ? < check_out`

// FindConflicts returns all blocking bookings for the room that
// overlap the stay, ordered by check-in. This is the plain read path;
// Create re-evaluates the same predicate under a row lock before
// inserting, so callers must treat a clean result here as advisory
// only.
func (r *BookingRepo) FindConflicts(ctx context.Context, roomID uint64, stay model.Stay) ([]*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + conflictWhere + ` ORDER BY check_in`
	rows, err := r.db.QueryContext(ctx, q, roomID, stay.CheckOut, stay.CheckIn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// Create persists a new booking, assigning its ID and timestamps. The
// conflict check and the insert run in one transaction: the room row
// is locked with SELECT ... FOR UPDATE, which serializes concurrent
// creators of the same room, and the overlap predicate is evaluated
// again under that lock. Of two concurrent overlapping requests for a
// room, exactly one commits; the other receives ErrBookingConflict.
// Returns ErrRoomNotFound when the room row has vanished.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the room row. Every createBooking for this room queues here
	// until the current transaction commits or rolls back.
	var roomID uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = ? FOR UPDATE`, b.RoomID).Scan(&roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoomNotFound
		}
		return err
	}

	var conflicts int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE `+conflictWhere,
		b.RoomID, b.Stay.CheckOut, b.Stay.CheckIn).Scan(&conflicts)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return ErrBookingConflict
	}

	const qInsert = `INSERT INTO bookings (room_id, guest_id, check_in, check_out, guests, total_cents, status, special_requests)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, qInsert,
		b.RoomID, b.GuestID, b.Stay.CheckIn, b.Stay.CheckOut,
		b.Guests, b.TotalCents, string(b.Status), b.SpecialRequests)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	// Query back the full row to populate timestamps and defaults.
	stored, err := scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, uint64(id)))
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	*b = *stored
	return nil
}

// GetByID returns a single booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// UpdateStatus moves a booking from one lifecycle state to another
// with compare-and-set semantics: the UPDATE only matches when the
// stored status still equals from, so a concurrent transition loses
// cleanly instead of clobbering the row. The state machine itself is
// validated by the service before this call. Returns the updated
// record, ErrBookingNotFound for an unknown id, or
// model.ErrInvalidTransition when the stored status no longer matches.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, from, to model.BookingStatus) (*model.Booking, error) {
	const q = `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, string(to), time.Now().UTC(), id, string(from))
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish a missing row from a lost status race.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, model.ErrInvalidTransition
	}
	return r.GetByID(ctx, id)
}

// ListByRoom returns all bookings for a room, newest first.
func (r *BookingRepo) ListByRoom(ctx context.Context, roomID uint64) ([]*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE room_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListByGuest returns all bookings placed by a guest, newest first.
// Used by the profile/booking-history view.
func (r *BookingRepo) ListByGuest(ctx context.Context, guestID uint64) ([]*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE guest_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]*model.Booking, error) {
	out := make([]*model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// BookingDetail pairs a booking with denormalized room and guest
// summaries for display. It is returned by the admin listing so the
// dashboard does not need follow-up lookups per row.
type BookingDetail struct {
	ID              uint64  `json:"id"`
	RoomID          uint64  `json:"room_id"`
	RoomName        string  `json:"room_name"`
	RoomType        string  `json:"room_type"`
	GuestID         uint64  `json:"guest_id"`
	GuestEmail      string  `json:"guest_email"`
	GuestFirstName  string  `json:"guest_first_name"`
	GuestLastName   string  `json:"guest_last_name"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	Guests          int     `json:"guests"`
	TotalCents      int64   `json:"total_cents"`
	Status          string  `json:"status"`
	SpecialRequests *string `json:"special_requests,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// ListAllDetailed returns every booking joined with its room and guest
// summaries, newest first. Admin-only read path.
func (r *BookingRepo) ListAllDetailed(ctx context.Context) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.room_id, r.name, r.room_type,
	                  b.guest_id, u.email, u.first_name, u.last_name,
	                  b.check_in, b.check_out, b.guests, b.total_cents, b.status, b.special_requests, b.created_at
	           FROM bookings b
	           JOIN rooms r ON r.id = b.room_id
	           JOIN users u ON u.id = b.guest_id
	           ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		var checkIn, checkOut, createdAt time.Time
		var special sql.NullString
		if err := rows.Scan(&d.ID, &d.RoomID, &d.RoomName, &d.RoomType,
			&d.GuestID, &d.GuestEmail, &d.GuestFirstName, &d.GuestLastName,
			&checkIn, &checkOut, &d.Guests, &d.TotalCents, &d.Status, &special, &createdAt); err != nil {
			return nil, err
		}
		if special.Valid {
			s := special.String
			d.SpecialRequests = &s
		}
		d.CheckIn = checkIn.UTC().Format("2006-01-02")
		d.CheckOut = checkOut.UTC().Format("2006-01-02")
		d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// BookingStats aggregates booking counters for the admin dashboard.
// Revenue sums confirmed and completed bookings only; pending money
// is not counted until an operator approves the booking.
type BookingStats struct {
	TotalBookings     int64 `json:"total_bookings"`
	PendingBookings   int64 `json:"pending_bookings"`
	ConfirmedBookings int64 `json:"confirmed_bookings"`
	CancelledBookings int64 `json:"cancelled_bookings"`
	CompletedBookings int64 `json:"completed_bookings"`
	RevenueCents      int64 `json:"revenue_cents"`
}

// Stats computes dashboard counters in a single query.
func (r *BookingRepo) Stats(ctx context.Context) (BookingStats, error) {
	const q = `SELECT COUNT(*),
	                  COUNT(CASE WHEN status = 'pending' THEN 1 END),
	                  COUNT(CASE WHEN status = 'confirmed' THEN 1 END),
	                  COUNT(CASE WHEN status = 'cancelled' THEN 1 END),
	                  COUNT(CASE WHEN status = 'completed' THEN 1 END),
	                  COALESCE(SUM(CASE WHEN status IN ('confirmed','completed') THEN total_cents ELSE 0 END), 0)
	           FROM bookings`
	var s BookingStats
	err := r.db.QueryRowContext(ctx, q).Scan(&s.TotalBookings, &s.PendingBookings,
		&s.ConfirmedBookings, &s.CancelledBookings, &s.CompletedBookings, &s.RevenueCents)
	return s, err
}
