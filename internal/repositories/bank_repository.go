package repositories

import (
	"database/sql"
	"errors"

	intconfig "travelapi/internal/config"
	"travelapi/internal/domain"
	"travelapi/internal/domain/models"
)

type BankRepository struct {
	DB *sql.DB
}

func (r BankRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bankSelect = `
	SELECT id,
	       COALESCE(name, ''),
	       COALESCE(logo_url, ''),
	       COALESCE(account_name, ''),
	       COALESCE(account_number, ''),
	       COALESCE(status, '')
	FROM banks
`

func scanBank(s interface{ Scan(...any) error }) (models.Bank, error) {
	var b models.Bank
	err := s.Scan(&b.ID, &b.Name, &b.LogoURL, &b.AccountName, &b.AccountNumber, &b.Status)
	return b, err
}

func (r BankRepository) GetByID(id int64) (models.Bank, error) {
	if id <= 0 {
		return models.Bank{}, domain.ValidationError{Field: "bank_id", Msg: "invalid id"}
	}
	b, err := scanBank(r.db().QueryRow(bankSelect+` WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Bank{}, domain.NotFoundError{Resource: "bank"}
		}
		return models.Bank{}, domain.InternalError{Err: err}
	}
	return b, nil
}

// List returns banks, active-only unless includeInactive is set (admin view).
func (r BankRepository) List(includeInactive bool) ([]models.Bank, error) {
	query := bankSelect
	args := []any{}
	if !includeInactive {
		query += ` WHERE status=?`
		args = append(args, models.BankActive)
	}
	query += ` ORDER BY name`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Bank{}
	for rows.Next() {
		b, err := scanBank(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Toggle flips ACTIVE/INACTIVE and returns the new status.
func (r BankRepository) Toggle(id int64) (string, error) {
	res, err := r.db().Exec(`
		UPDATE banks
		SET status = IF(status=?, ?, ?)
		WHERE id=?`,
		models.BankActive, models.BankInactive, models.BankActive, id,
	)
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return "", domain.NotFoundError{Resource: "bank"}
	}

	var status string
	if err := r.db().QueryRow(`SELECT COALESCE(status,'') FROM banks WHERE id=?`, id).Scan(&status); err != nil {
		return "", domain.InternalError{Err: err}
	}
	return status, nil
}
