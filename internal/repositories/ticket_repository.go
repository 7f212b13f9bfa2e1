package repositories

import (
	"database/sql"
	"errors"

	intconfig "travelapi/internal/config"
	"travelapi/internal/domain"
	"travelapi/internal/domain/models"
)

type TicketRepository struct {
	DB *sql.DB
}

func (r TicketRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const ticketSelect = `
	SELECT id,
	       booking_id,
	       COALESCE(name, ''),
	       COALESCE(badge_number, ''),
	       COALESCE(qr_token, ''),
	       COALESCE(DATE_FORMAT(checked_in_at, '%Y-%m-%d %H:%i:%s'), ''),
	       COALESCE(checked_in_by, '')
	FROM tickets
`

func scanTicket(s interface{ Scan(...any) error }) (models.Ticket, error) {
	var t models.Ticket
	err := s.Scan(
		&t.ID,
		&t.BookingID,
		&t.Name,
		&t.BadgeNumber,
		&t.QRToken,
		&t.CheckedInAt,
		&t.CheckedInBy,
	)
	return t, err
}

func (r TicketRepository) GetByID(id int64) (models.Ticket, error) {
	if id <= 0 {
		return models.Ticket{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	t, err := scanTicket(r.db().QueryRow(ticketSelect+` WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, domain.NotFoundError{Resource: "ticket"}
		}
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	return t, nil
}

func (r TicketRepository) GetByToken(token string) (models.Ticket, error) {
	t, err := scanTicket(r.db().QueryRow(ticketSelect+` WHERE qr_token=? LIMIT 1`, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, domain.NotFoundError{Resource: "ticket"}
		}
		return models.Ticket{}, domain.InternalError{Err: err}
	}
	return t, nil
}

func (r TicketRepository) ListByBookingID(bookingID int64) ([]models.Ticket, error) {
	rows, err := r.db().Query(ticketSelect+` WHERE booking_id=? ORDER BY id`, bookingID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TicketRepository) Insert(t models.Ticket) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO tickets (booking_id, name, badge_number, qr_token)
		VALUES (?, ?, ?, ?)`,
		t.BookingID, t.Name, t.BadgeNumber, t.QRToken,
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// DeleteByBookingID removes every ticket of a booking. Used to roll back an
// issuance whose approval did not go through.
func (r TicketRepository) DeleteByBookingID(bookingID int64) error {
	_, err := r.db().Exec(`DELETE FROM tickets WHERE booking_id=?`, bookingID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// CheckInFirst claims the ticket for the scanner iff it has never been
// scanned. The conditional UPDATE is the dedup point: of any number of
// concurrent scans of one token, exactly one sees rows-affected == 1.
func (r TicketRepository) CheckInFirst(token, scannerName string) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE tickets
		SET checked_in_at=NOW(), checked_in_by=?
		WHERE qr_token=? AND checked_in_at IS NULL`,
		scannerName, token,
	)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}
