package services

import (
	"testing"

	"travelapi/internal/domain"
	"travelapi/internal/domain/models"
	"travelapi/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestParticipantCountDefaultsToOne(t *testing.T) {
	if got := ParticipantCount(nil); got != 1 {
		t.Fatalf("empty list should price as one traveler, got %d", got)
	}
	if got := ParticipantCount([]models.Participant{{Name: "A"}, {Name: "B"}, {Name: "C"}}); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestBaseAmountIsUnitPriceTimesCount(t *testing.T) {
	if got := BaseAmount(90, 3); got != 270 {
		t.Fatalf("expected 270, got %v", got)
	}
	if got := BaseAmount(150, 0); got != 150 {
		t.Fatalf("zero count should still charge one seat, got %v", got)
	}
}

func TestCanSubmitPaymentGate(t *testing.T) {
	if !CanSubmitPayment(nil) {
		t.Fatalf("booking without payment must accept a submission")
	}
	if !CanSubmitPayment(&models.Payment{Status: models.PaymentRejected}) {
		t.Fatalf("rejected payment must allow resubmission")
	}
	if CanSubmitPayment(&models.Payment{Status: models.PaymentPending}) {
		t.Fatalf("pending payment must block a new submission")
	}
	if CanSubmitPayment(&models.Payment{Status: models.PaymentApproved}) {
		t.Fatalf("approved payment must block a new submission")
	}
}

func TestTicketQRURL(t *testing.T) {
	got := TicketQRURL("http://localhost:8080", 42)
	want := "http://localhost:8080/api/tickets/42/qr"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func bookingRowColumns() []string {
	return []string{"id", "user_id", "travel_id", "created_at", "title", "destination", "price", "status"}
}

func paymentColumns() []string {
	return []string{
		"id", "booking_id", "bank_id", "bank_name", "transaction_number", "payment_date",
		"receipt", "coupon_code", "status", "rejection_message",
		"original_amount", "discount_amount", "final_amount",
		"submitted_at", "reviewed_at", "reviewed_by",
	}
}

func TestBookingGetForUserOwnership(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM bookings b").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns()).
			AddRow(5, 7, 3, "2026-05-01 10:00:00", "Bali Escape", "Bali", 150.0, models.TravelActive))
	mock.ExpectQuery("FROM booking_participants").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "age_group", "gender"}).
			AddRow("Ana", "adult", "F"))
	mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()))

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		PaymentRepo: repositories.PaymentRepository{DB: db},
		TicketRepo:  repositories.TicketRepository{DB: db},
		BaseURL:     "http://localhost:8080",
	}

	if _, err := svc.GetForUser(5, 9, models.RoleTraveler); !domain.IsForbidden(err) {
		t.Fatalf("another traveler must get a forbidden error, got %v", err)
	}
}

func TestBookingStatusDerivedFromPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM bookings b").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns()).
			AddRow(5, 7, 3, "2026-05-01 10:00:00", "Bali Escape", "Bali", 150.0, models.TravelActive))
	mock.ExpectQuery("FROM booking_participants").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "age_group", "gender"}).
			AddRow("Ana", "adult", "F").
			AddRow("Budi", "child", "M"))
	mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(11, 5, 1, "First Bank", "TRX-1", "2026-05-02", "data:image/png;base64,x", "",
				models.PaymentApproved, "", 300.0, 0.0, 300.0, "2026-05-02 09:00:00", "2026-05-03 09:00:00", "Admin"))
	mock.ExpectQuery("FROM tickets").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "name", "badge_number", "qr_token", "checked_in_at", "checked_in_by"}).
			AddRow(21, 5, "Ana", "TB-5-1", "tok-1", "", "").
			AddRow(22, 5, "Budi", "TB-5-2", "tok-2", "", ""))

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		PaymentRepo: repositories.PaymentRepository{DB: db},
		TicketRepo:  repositories.TicketRepository{DB: db},
		BaseURL:     "http://localhost:8080",
	}

	b, err := svc.Get(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != models.PaymentApproved {
		t.Fatalf("status should mirror the payment, got %q", b.Status)
	}
	if len(b.Tickets) != 2 {
		t.Fatalf("approved booking should carry its tickets, got %d", len(b.Tickets))
	}
	if b.Tickets[0].QRCodeURL != "http://localhost:8080/api/tickets/21/qr" {
		t.Fatalf("unexpected qr url %q", b.Tickets[0].QRCodeURL)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingWithoutPaymentHasNoneStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("FROM bookings b").WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns()).
			AddRow(8, 7, 3, "2026-05-01 10:00:00", "Bali Escape", "Bali", 150.0, models.TravelActive))
	mock.ExpectQuery("FROM booking_participants").WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "age_group", "gender"}))
	mock.ExpectQuery("FROM payments").WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()))

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		PaymentRepo: repositories.PaymentRepository{DB: db},
		TicketRepo:  repositories.TicketRepository{DB: db},
	}

	b, err := svc.Get(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != models.BookingStatusNone {
		t.Fatalf("expected %q, got %q", models.BookingStatusNone, b.Status)
	}
	if b.Payment != nil {
		t.Fatalf("payment should be nil")
	}
}
