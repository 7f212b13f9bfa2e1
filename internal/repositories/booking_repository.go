package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "travelapi/internal/config"
	"travelapi/internal/domain"
	"travelapi/internal/domain/models"
)

// BookingRow is the flat shape read from bookings joined with travels;
// services assemble the nested Booking response from it.
type BookingRow struct {
	ID                int64
	UserID            int64
	TravelID          int64
	CreatedAt         string
	TravelTitle       string
	TravelDestination string
	TravelPrice       float64
	TravelStatus      string
}

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingSelect = `
	SELECT b.id,
	       b.user_id,
	       b.travel_id,
	       COALESCE(DATE_FORMAT(b.created_at, '%Y-%m-%d %H:%i:%s'), ''),
	       COALESCE(t.title, ''),
	       COALESCE(t.destination, ''),
	       COALESCE(t.price, 0),
	       COALESCE(t.status, '')
	FROM bookings b
	LEFT JOIN travels t ON t.id = b.travel_id
`

func scanBookingRow(s interface{ Scan(...any) error }) (BookingRow, error) {
	var row BookingRow
	err := s.Scan(
		&row.ID,
		&row.UserID,
		&row.TravelID,
		&row.CreatedAt,
		&row.TravelTitle,
		&row.TravelDestination,
		&row.TravelPrice,
		&row.TravelStatus,
	)
	return row, err
}

func (r BookingRepository) GetByID(id int64) (BookingRow, error) {
	if id <= 0 {
		return BookingRow{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	row, err := scanBookingRow(r.db().QueryRow(bookingSelect+` WHERE b.id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BookingRow{}, domain.NotFoundError{Resource: "booking"}
		}
		return BookingRow{}, domain.InternalError{Err: err}
	}
	return row, nil
}

func (r BookingRepository) ListByUser(userID int64) ([]BookingRow, error) {
	rows, err := r.db().Query(bookingSelect+` WHERE b.user_id=? ORDER BY b.id DESC`, userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []BookingRow{}
	for rows.Next() {
		row, err := scanBookingRow(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListFilter narrows the admin booking list. Status matches the derived
// booking status ("none" selects bookings without a payment row).
type ListFilter struct {
	Q      string
	Status string
	Page   int
	Limit  int
}

func (f ListFilter) normalized() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	return f
}

func (r BookingRepository) List(f ListFilter) ([]BookingRow, error) {
	f = f.normalized()

	query := bookingSelect + ` LEFT JOIN payments p ON p.booking_id = b.id `
	where := []string{}
	args := []any{}

	if q := strings.TrimSpace(f.Q); q != "" {
		where = append(where, `(t.title LIKE ? OR t.destination LIKE ?)`)
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	if status := strings.TrimSpace(f.Status); status != "" {
		where = append(where, `COALESCE(p.status, 'none') = ?`)
		args = append(args, status)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY b.id DESC LIMIT ? OFFSET ?"
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []BookingRow{}
	for rows.Next() {
		row, err := scanBookingRow(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r BookingRepository) ListParticipants(bookingID int64) ([]models.Participant, error) {
	rows, err := r.db().Query(`
		SELECT COALESCE(name,''), COALESCE(age_group,''), COALESCE(gender,'')
		FROM booking_participants
		WHERE booking_id=?
		ORDER BY position, id`, bookingID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.Name, &p.AgeGroup, &p.Gender); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r BookingRepository) Create(userID, travelID int64, participants []models.Participant) (int64, error) {
	db := r.db()
	res, err := db.Exec(`INSERT INTO bookings (user_id, travel_id) VALUES (?, ?)`, userID, travelID)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()

	for i, p := range participants {
		if _, err := db.Exec(`
			INSERT INTO booking_participants (booking_id, name, age_group, gender, position)
			VALUES (?, ?, ?, ?, ?)`,
			id, strings.TrimSpace(p.Name), strings.TrimSpace(p.AgeGroup), strings.TrimSpace(p.Gender), i,
		); err != nil {
			return 0, domain.InternalError{Err: fmt.Errorf("participant %d: %w", i, err)}
		}
	}
	return id, nil
}

// Delete removes the booking and its dependents. Callers enforce the
// no-approved-payment rule before getting here.
func (r BookingRepository) Delete(id int64) error {
	db := r.db()
	if _, err := db.Exec(`DELETE FROM booking_participants WHERE booking_id=?`, id); err != nil {
		return domain.InternalError{Err: err}
	}
	if _, err := db.Exec(`DELETE FROM tickets WHERE booking_id=?`, id); err != nil {
		return domain.InternalError{Err: err}
	}
	if _, err := db.Exec(`DELETE FROM payments WHERE booking_id=?`, id); err != nil {
		return domain.InternalError{Err: err}
	}
	res, err := db.Exec(`DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}
