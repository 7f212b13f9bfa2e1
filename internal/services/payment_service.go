package services

import (
	"fmt"
	"strings"

	"travelapi/internal/domain"
	"travelapi/internal/domain/models"
	"travelapi/internal/repositories"
	"travelapi/internal/utils"
)

type PaymentService struct {
	PaymentRepo repositories.PaymentRepository
	BookingRepo repositories.BookingRepository
	BankRepo    repositories.BankRepository
	CouponSvc   CouponService
	TicketSvc   TicketService
	RequestID   string
}

// SubmitPaymentInput carries the payment form fields.
type SubmitPaymentInput struct {
	BookingID         int64  `json:"bookingId"`
	BankID            int64  `json:"bankId"`
	TransactionNumber string `json:"transactionNumber"`
	PaymentDate       string `json:"paymentDate"`
	Receipt           string `json:"receipt"`
	CouponCode        string `json:"couponCode"`
}

// Submit persists a payment proof for the caller's booking. The gate mirrors
// the form rule: all four fields present AND (no payment OR prior rejected).
// A supplied coupon code is revalidated here; an invalid one fails the whole
// submission instead of silently dropping the discount.
func (s PaymentService) Submit(userID int64, in SubmitPaymentInput) (models.Payment, error) {
	booking, err := s.BookingRepo.GetByID(in.BookingID)
	if err != nil {
		return models.Payment{}, err
	}
	if booking.UserID != userID {
		return models.Payment{}, domain.ForbiddenError{Msg: "booking belongs to another traveler"}
	}

	existing, err := s.PaymentRepo.GetByBookingID(in.BookingID)
	if err != nil {
		return models.Payment{}, err
	}
	if !CanSubmitPayment(existing) {
		return models.Payment{}, domain.ConflictError{
			Resource: "payment",
			Msg:      fmt.Sprintf("booking already has a %s payment", existing.Status),
		}
	}

	if err := validateSubmission(in); err != nil {
		return models.Payment{}, err
	}

	bank, err := s.BankRepo.GetByID(in.BankID)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Payment{}, domain.ValidationError{Field: "bank_id", Msg: "unknown bank"}
		}
		return models.Payment{}, err
	}
	if bank.Status != models.BankActive {
		return models.Payment{}, domain.ValidationError{Field: "bank_id", Msg: "bank is not accepting transfers"}
	}

	participants, err := s.BookingRepo.ListParticipants(in.BookingID)
	if err != nil {
		return models.Payment{}, err
	}
	count := ParticipantCount(participants)
	original := utils.RoundMoney(BaseAmount(booking.TravelPrice, count))

	discount := 0.0
	final := original
	couponCode := ""
	if strings.TrimSpace(in.CouponCode) != "" {
		quote, err := s.CouponSvc.Validate(in.CouponCode, booking.TravelPrice, count)
		if err != nil {
			return models.Payment{}, err
		}
		couponCode = quote.Code
		discount = quote.DiscountAmount
		final = quote.FinalAmount
	}

	payment := models.Payment{
		BookingID:         in.BookingID,
		BankID:            bank.ID,
		Bank:              bank.Name,
		TransactionNumber: strings.TrimSpace(in.TransactionNumber),
		PaymentDate:       strings.TrimSpace(in.PaymentDate),
		ReceiptURL:        strings.TrimSpace(in.Receipt),
		CouponCode:        couponCode,
		Status:            models.PaymentPending,
		OriginalAmount:    original,
		DiscountAmount:    discount,
		FinalAmount:       final,
	}

	if existing != nil {
		// resubmission after rejection replaces the rejected row in place
		if err := s.PaymentRepo.Resubmit(existing.ID, payment); err != nil {
			return models.Payment{}, err
		}
		payment.ID = existing.ID
	} else {
		id, err := s.PaymentRepo.Create(payment)
		if err != nil {
			return models.Payment{}, err
		}
		payment.ID = id
	}

	utils.LogEvent(s.RequestID, "payment", "submit",
		fmt.Sprintf("booking_id=%d amount=%s", in.BookingID, utils.FormatMoney(final)))

	saved, err := s.PaymentRepo.GetByID(payment.ID)
	if err != nil {
		// the write succeeded; the in-memory copy is good enough
		return payment, nil
	}
	return saved, nil
}

func validateSubmission(in SubmitPaymentInput) error {
	if in.BookingID <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	if in.BankID <= 0 {
		return domain.ValidationError{Field: "bank_id", Msg: "bank is required"}
	}
	if strings.TrimSpace(in.TransactionNumber) == "" {
		return domain.ValidationError{Field: "transaction_number", Msg: "transaction number is required"}
	}
	if strings.TrimSpace(in.PaymentDate) == "" {
		return domain.ValidationError{Field: "payment_date", Msg: "payment date is required"}
	}
	if strings.TrimSpace(in.Receipt) == "" {
		return domain.ValidationError{Field: "receipt", Msg: "receipt image is required"}
	}
	return nil
}

// Review approves or rejects a PENDING payment. Approval issues tickets
// first (idempotently), then flips the status; a failed issuance fails the
// approval so a booking can never be APPROVED without tickets on the way.
func (s PaymentService) Review(paymentID int64, status, message, reviewerName string) (models.Payment, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != models.PaymentApproved && status != models.PaymentRejected {
		return models.Payment{}, domain.ValidationError{Field: "status", Msg: "status must be APPROVED or REJECTED"}
	}
	if status == models.PaymentRejected && strings.TrimSpace(message) == "" {
		return models.Payment{}, domain.ValidationError{Field: "message", Msg: "rejection message is required"}
	}

	payment, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	if payment.Status != models.PaymentPending {
		return models.Payment{}, domain.ConflictError{
			Resource: "payment",
			Msg:      fmt.Sprintf("payment is already %s", payment.Status),
		}
	}

	ticketsCreated := false
	if status == models.PaymentApproved {
		created, err := s.TicketSvc.IssueForBooking(payment.BookingID)
		if err != nil {
			utils.LogEvent(s.RequestID, "payment", "approve", "ticket issuance failed: "+err.Error())
			return models.Payment{}, err
		}
		ticketsCreated = created
	}

	claimed, err := s.PaymentRepo.SetStatus(paymentID, status, strings.TrimSpace(message), reviewerName)
	if err != nil {
		return models.Payment{}, err
	}
	if !claimed {
		if ticketsCreated {
			// the other review won; don't leave scannable tickets behind
			if derr := s.TicketSvc.TicketRepo.DeleteByBookingID(payment.BookingID); derr != nil {
				utils.LogEvent(s.RequestID, "payment", "review", "ticket rollback failed: "+derr.Error())
			}
		}
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "payment was reviewed concurrently"}
	}

	if status == models.PaymentApproved && ticketsCreated && payment.CouponCode != "" {
		if err := s.CouponSvc.CouponRepo.IncrementUsage(payment.CouponCode); err != nil {
			// usage counter drift is tolerable; the approval is not rolled back
			utils.LogEvent(s.RequestID, "payment", "approve", "coupon usage increment warning: "+err.Error())
		}
	}

	utils.LogEvent(s.RequestID, "payment", "review",
		fmt.Sprintf("payment_id=%d status=%s", paymentID, status))

	return s.PaymentRepo.GetByID(paymentID)
}
