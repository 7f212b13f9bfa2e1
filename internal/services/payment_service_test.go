package services

import (
	"testing"

	"travelapi/internal/domain"
	"travelapi/internal/domain/models"
	"travelapi/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func submitInput() SubmitPaymentInput {
	return SubmitPaymentInput{
		BookingID:         5,
		BankID:            1,
		TransactionNumber: "TRX-1",
		PaymentDate:       "2026-05-02",
		Receipt:           "data:image/png;base64,x",
	}
}

func TestPaymentSubmitBlockedByPendingPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings b").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns()).
			AddRow(5, 7, 3, "2026-05-01 10:00:00", "Bali Escape", "Bali", 150.0, models.TravelActive))
	mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(11, 5, 1, "First Bank", "TRX-0", "2026-05-01", "r", "",
				models.PaymentPending, "", 150.0, 0.0, 150.0, "2026-05-01 09:00:00", "", ""))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		BankRepo:    repositories.BankRepository{DB: db},
	}

	if _, err := svc.Submit(7, submitInput()); !domain.IsConflict(err) {
		t.Fatalf("pending payment must block submission with a conflict, got %v", err)
	}
}

func TestPaymentSubmitOwnershipEnforced(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings b").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns()).
			AddRow(5, 7, 3, "2026-05-01 10:00:00", "Bali Escape", "Bali", 150.0, models.TravelActive))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
	}

	if _, err := svc.Submit(9, submitInput()); !domain.IsForbidden(err) {
		t.Fatalf("someone else's booking must be forbidden, got %v", err)
	}
}

func TestPaymentSubmitMissingFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	for range []int{0, 1} {
		mock.ExpectQuery("FROM bookings b").WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(bookingRowColumns()).
				AddRow(5, 7, 3, "2026-05-01 10:00:00", "Bali Escape", "Bali", 150.0, models.TravelActive))
		mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(paymentColumns()))
	}

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
	}

	in := submitInput()
	in.TransactionNumber = "  "
	if _, err := svc.Submit(7, in); !domain.IsValidation(err) {
		t.Fatalf("blank transaction number must fail validation, got %v", err)
	}

	in = submitInput()
	in.Receipt = ""
	if _, err := svc.Submit(7, in); !domain.IsValidation(err) {
		t.Fatalf("missing receipt must fail validation, got %v", err)
	}
}

func TestPaymentSubmitAfterRejectionResubmits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings b").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns()).
			AddRow(5, 7, 3, "2026-05-01 10:00:00", "Bali Escape", "Bali", 150.0, models.TravelActive))
	mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(11, 5, 1, "First Bank", "TRX-0", "2026-05-01", "r", "",
				models.PaymentRejected, "blurry receipt", 150.0, 0.0, 150.0, "2026-05-01 09:00:00", "2026-05-01 10:00:00", "Admin"))
	mock.ExpectQuery("FROM banks").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "logo_url", "account_name", "account_number", "status"}).
			AddRow(1, "First Bank", "", "Travel Co", "123456", models.BankActive))
	mock.ExpectQuery("FROM booking_participants").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "age_group", "gender"}).
			AddRow("Ana", "adult", "F").
			AddRow("Budi", "child", "M"))
	mock.ExpectExec("UPDATE payments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM payments").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(11, 5, 1, "First Bank", "TRX-1", "2026-05-02", "data:image/png;base64,x", "",
				models.PaymentPending, "", 300.0, 0.0, 300.0, "2026-05-02 09:00:00", "", ""))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		BankRepo:    repositories.BankRepository{DB: db},
	}

	p, err := svc.Submit(7, submitInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != models.PaymentPending {
		t.Fatalf("resubmission must come back as PENDING, got %q", p.Status)
	}
	if p.OriginalAmount != 300 {
		t.Fatalf("amount must be unit price times participants, got %v", p.OriginalAmount)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentSubmitInvalidCouponFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings b").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns()).
			AddRow(5, 7, 3, "2026-05-01 10:00:00", "Bali Escape", "Bali", 150.0, models.TravelActive))
	mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()))
	mock.ExpectQuery("FROM banks").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "logo_url", "account_name", "account_number", "status"}).
			AddRow(1, "First Bank", "", "Travel Co", "123456", models.BankActive))
	mock.ExpectQuery("FROM booking_participants").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "age_group", "gender"}).
			AddRow("Ana", "adult", "F"))
	// the code does not exist, so the submission must fail before any insert
	mock.ExpectQuery("FROM coupons").WithArgs("BOGUS").
		WillReturnRows(sqlmock.NewRows(couponColumns()))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		BankRepo:    repositories.BankRepository{DB: db},
		CouponSvc:   CouponService{CouponRepo: repositories.CouponRepository{DB: db}, Now: fixedClock},
	}

	in := submitInput()
	in.CouponCode = "bogus"
	if _, err := svc.Submit(7, in); !domain.IsValidation(err) {
		t.Fatalf("invalid coupon must fail the submission, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentSubmitWithCouponStoresDiscount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings b").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns()).
			AddRow(5, 7, 3, "2026-05-01 10:00:00", "Bali Escape", "Bali", 150.0, models.TravelActive))
	mock.ExpectQuery("FROM payments").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()))
	mock.ExpectQuery("FROM banks").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "logo_url", "account_name", "account_number", "status"}).
			AddRow(1, "First Bank", "", "Travel Co", "123456", models.BankActive))
	mock.ExpectQuery("FROM booking_participants").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "age_group", "gender"}).
			AddRow("Ana", "adult", "F").
			AddRow("Budi", "child", "M"))
	mock.ExpectQuery("FROM coupons").WithArgs("SAVE20").
		WillReturnRows(sqlmock.NewRows(couponColumns()).
			AddRow(1, "SAVE20", "", models.DiscountPercent, 20.0, 0.0, 0, 0, "2026-01-01", "2026-12-31", models.CouponActive))
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(int64(5), int64(1), "First Bank", "TRX-1", "2026-05-02", "data:image/png;base64,x",
			"SAVE20", models.PaymentPending, 300.0, 60.0, 240.0).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("FROM payments").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(11, 5, 1, "First Bank", "TRX-1", "2026-05-02", "data:image/png;base64,x", "SAVE20",
				models.PaymentPending, "", 300.0, 60.0, 240.0, "2026-05-02 09:00:00", "", ""))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		BankRepo:    repositories.BankRepository{DB: db},
		CouponSvc:   CouponService{CouponRepo: repositories.CouponRepository{DB: db}, Now: fixedClock},
	}

	in := submitInput()
	in.CouponCode = "save20"
	p, err := svc.Submit(7, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DiscountAmount != 60 || p.FinalAmount != 240 {
		t.Fatalf("expected discount 60 / final 240, got %v / %v", p.DiscountAmount, p.FinalAmount)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentReviewRejectionRequiresMessage(t *testing.T) {
	svc := PaymentService{}
	if _, err := svc.Review(11, models.PaymentRejected, "  ", "Admin"); !domain.IsValidation(err) {
		t.Fatalf("rejection without a message must fail, got %v", err)
	}
	if _, err := svc.Review(11, "MAYBE", "", "Admin"); !domain.IsValidation(err) {
		t.Fatalf("unknown status must fail, got %v", err)
	}
}

func TestPaymentReviewApproveIssuesTicketsFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM payments").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(11, 5, 1, "First Bank", "TRX-1", "2026-05-02", "r", "",
				models.PaymentPending, "", 300.0, 0.0, 300.0, "2026-05-02 09:00:00", "", ""))
	mock.ExpectQuery("FROM tickets").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(ticketColumns()))
	mock.ExpectQuery("FROM booking_participants").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "age_group", "gender"}).
			AddRow("Ana", "adult", "F"))
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(int64(5), "Ana", "TB-5-1", "tok-1").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("UPDATE payments").
		WithArgs(models.PaymentApproved, nil, "Admin", int64(11), models.PaymentPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM payments").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(11, 5, 1, "First Bank", "TRX-1", "2026-05-02", "r", "",
				models.PaymentApproved, "", 300.0, 0.0, 300.0, "2026-05-02 09:00:00", "2026-05-03 09:00:00", "Admin"))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		CouponSvc:   CouponService{CouponRepo: repositories.CouponRepository{DB: db}},
		TicketSvc: TicketService{
			TicketRepo:  repositories.TicketRepository{DB: db},
			BookingRepo: repositories.BookingRepository{DB: db},
			NewToken:    func() string { return "tok-1" },
		},
	}

	p, err := svc.Review(11, models.PaymentApproved, "", "Admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != models.PaymentApproved {
		t.Fatalf("expected APPROVED, got %q", p.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentReviewConcurrentReviewConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM payments").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(11, 5, 1, "First Bank", "TRX-1", "2026-05-02", "r", "",
				models.PaymentPending, "", 300.0, 0.0, 300.0, "2026-05-02 09:00:00", "", ""))
	// the other reviewer won the guarded update
	mock.ExpectExec("UPDATE payments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
	}

	if _, err := svc.Review(11, models.PaymentRejected, "duplicate transfer", "Admin"); !domain.IsConflict(err) {
		t.Fatalf("losing the review race must be a conflict, got %v", err)
	}
}

func TestPaymentReviewApproveIncrementsCouponUsageOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM payments").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(11, 5, 1, "First Bank", "TRX-1", "2026-05-02", "r", "SAVE20",
				models.PaymentPending, "", 300.0, 60.0, 240.0, "2026-05-02 09:00:00", "", ""))
	mock.ExpectQuery("FROM tickets").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(ticketColumns()))
	mock.ExpectQuery("FROM booking_participants").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "age_group", "gender"}).
			AddRow("Ana", "adult", "F"))
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(int64(5), "Ana", "TB-5-1", "tok-1").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("UPDATE payments").
		WithArgs(models.PaymentApproved, nil, "Admin", int64(11), models.PaymentPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// exactly one usage bump, only after the status claim succeeded
	mock.ExpectExec("UPDATE coupons").
		WithArgs("SAVE20").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM payments").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(11, 5, 1, "First Bank", "TRX-1", "2026-05-02", "r", "SAVE20",
				models.PaymentApproved, "", 300.0, 60.0, 240.0, "2026-05-02 09:00:00", "2026-05-03 09:00:00", "Admin"))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		CouponSvc:   CouponService{CouponRepo: repositories.CouponRepository{DB: db}},
		TicketSvc: TicketService{
			TicketRepo:  repositories.TicketRepository{DB: db},
			BookingRepo: repositories.BookingRepository{DB: db},
			NewToken:    func() string { return "tok-1" },
		},
	}

	p, err := svc.Review(11, models.PaymentApproved, "", "Admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != models.PaymentApproved {
		t.Fatalf("expected APPROVED, got %q", p.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentReviewLostRaceRemovesIssuedTickets(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM payments").WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentColumns()).
			AddRow(11, 5, 1, "First Bank", "TRX-1", "2026-05-02", "r", "SAVE20",
				models.PaymentPending, "", 300.0, 60.0, 240.0, "2026-05-02 09:00:00", "", ""))
	mock.ExpectQuery("FROM tickets").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(ticketColumns()))
	mock.ExpectQuery("FROM booking_participants").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "age_group", "gender"}).
			AddRow("Ana", "adult", "F"))
	mock.ExpectExec("INSERT INTO tickets").
		WithArgs(int64(5), "Ana", "TB-5-1", "tok-1").
		WillReturnResult(sqlmock.NewResult(21, 1))
	// a concurrent review claimed the payment between issuance and the flip
	mock.ExpectExec("UPDATE payments").
		WithArgs(models.PaymentApproved, nil, "Admin", int64(11), models.PaymentPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// the fresh tickets must not stay scannable, and the coupon must not count
	mock.ExpectExec("DELETE FROM tickets").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		CouponSvc:   CouponService{CouponRepo: repositories.CouponRepository{DB: db}},
		TicketSvc: TicketService{
			TicketRepo:  repositories.TicketRepository{DB: db},
			BookingRepo: repositories.BookingRepository{DB: db},
			NewToken:    func() string { return "tok-1" },
		},
	}

	if _, err := svc.Review(11, models.PaymentApproved, "", "Admin"); !domain.IsConflict(err) {
		t.Fatalf("losing the review race must be a conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
