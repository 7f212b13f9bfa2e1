package repositories

import (
	"database/sql"
	"errors"

	intconfig "travelapi/internal/config"
	"travelapi/internal/domain"
	"travelapi/internal/domain/models"
)

type TravelRepository struct {
	DB *sql.DB
}

func (r TravelRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TravelRepository) GetByID(id int64) (models.Travel, error) {
	if id <= 0 {
		return models.Travel{}, domain.ValidationError{Field: "travel_id", Msg: "invalid id"}
	}

	var t models.Travel
	err := r.db().QueryRow(`
		SELECT id,
		       COALESCE(title, ''),
		       COALESCE(destination, ''),
		       COALESCE(description, ''),
		       COALESCE(price, 0),
		       COALESCE(DATE_FORMAT(start_date, '%Y-%m-%d'), ''),
		       COALESCE(DATE_FORMAT(end_date, '%Y-%m-%d'), ''),
		       COALESCE(capacity, 0),
		       COALESCE(status, '')
		FROM travels
		WHERE id=? LIMIT 1`, id).Scan(
		&t.ID,
		&t.Title,
		&t.Destination,
		&t.Description,
		&t.Price,
		&t.StartDate,
		&t.EndDate,
		&t.Capacity,
		&t.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Travel{}, domain.NotFoundError{Resource: "travel"}
		}
		return models.Travel{}, domain.InternalError{Err: err}
	}
	return t, nil
}

// PopularDestination is one row of the popular-destinations board.
type PopularDestination struct {
	Destination string `json:"destination"`
	Bookings    int    `json:"bookings"`
}

func (r TravelRepository) PopularDestinations(limit int) ([]PopularDestination, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := r.db().Query(`
		SELECT COALESCE(t.destination, ''), COUNT(b.id) AS cnt
		FROM travels t
		LEFT JOIN bookings b ON b.travel_id = t.id
		GROUP BY t.destination
		ORDER BY cnt DESC, t.destination
		LIMIT ?`, limit)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []PopularDestination{}
	for rows.Next() {
		var d PopularDestination
		if err := rows.Scan(&d.Destination, &d.Bookings); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
