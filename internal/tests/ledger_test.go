package tests

import (
	"context"
	"errors"
	"testing"

	"charter/internal/domain"
	"charter/internal/service"
)

// ──────────────────────────────────────────────
// 2. BALANCE PAYMENTS
// ──────────────────────────────────────────────

func newLedgerFixture() (*service.LedgerService, *MockUserRepository, *MockBookingRepository, *MockTransactionRepository, *MockLockStore) {
	userRepo := NewMockUserRepository()
	bookingRepo := NewMockBookingRepository()
	txnRepo := NewMockTransactionRepository()
	lockStore := NewMockLockStore()
	atomicUnit := NewMockAtomic(userRepo, bookingRepo, txnRepo)

	ledger := service.NewLedgerService(atomicUnit, userRepo, bookingRepo, txnRepo, lockStore, nil)
	return ledger, userRepo, bookingRepo, txnRepo, lockStore
}

func TestPayBooking_ExactBalanceDrainsToZero(t *testing.T) {
	t.Parallel()

	ledger, userRepo, bookingRepo, txnRepo, _ := newLedgerFixture()

	userRepo.AddUser(&domain.User{ID: "user-1", Balance: 500})
	bookingRepo.AddBooking(&domain.Booking{
		ID:     "booking-1",
		UserID: "user-1",
		Price:  500,
		Status: domain.BookingStatusPending,
	})

	result, err := ledger.PayBookingFromBalance(context.Background(), service.PayBookingRequest{
		BookingID: "booking-1",
		UserID:    "user-1",
		Method:    domain.PaymentMethodBalance,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.NewBalance != 0 {
		t.Errorf("expected balance 0 after exact payment, got %v", result.NewBalance)
	}

	stored := bookingRepo.GetBooking("booking-1")
	if !stored.Paid {
		t.Error("expected booking to be marked paid")
	}
	if stored.Status != domain.BookingStatusConfirmed {
		t.Errorf("expected CONFIRMED booking, got %s", stored.Status)
	}

	if txnRepo.CountByType(domain.TransactionTypePayment) != 1 {
		t.Errorf("expected exactly one payment record, got %d", txnRepo.CountByType(domain.TransactionTypePayment))
	}
	if result.Transaction.Amount != -500 {
		t.Errorf("expected payment amount -500, got %v", result.Transaction.Amount)
	}
}

func TestPayBooking_OneShortIsRejectedWithoutMutation(t *testing.T) {
	t.Parallel()

	ledger, userRepo, bookingRepo, txnRepo, _ := newLedgerFixture()

	userRepo.AddUser(&domain.User{ID: "user-1", Balance: 499})
	bookingRepo.AddBooking(&domain.Booking{
		ID:     "booking-1",
		UserID: "user-1",
		Price:  500,
		Status: domain.BookingStatusPending,
	})

	_, err := ledger.PayBookingFromBalance(context.Background(), service.PayBookingRequest{
		BookingID: "booking-1",
		UserID:    "user-1",
		Method:    domain.PaymentMethodBalance,
	})
	if !errors.Is(err, service.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	balance, _ := userRepo.GetBalance(context.Background(), "user-1")
	if balance != 499 {
		t.Errorf("expected balance untouched at 499, got %v", balance)
	}
	if bookingRepo.GetBooking("booking-1").Paid {
		t.Error("expected booking to stay unpaid")
	}
	if txnRepo.CountTransactions() != 0 {
		t.Errorf("expected no transaction records, got %d", txnRepo.CountTransactions())
	}
}

func TestPayBooking_AlreadyPaidIsRejected(t *testing.T) {
	t.Parallel()

	ledger, userRepo, bookingRepo, txnRepo, _ := newLedgerFixture()

	userRepo.AddUser(&domain.User{ID: "user-1", Balance: 1000})
	bookingRepo.AddBooking(&domain.Booking{
		ID:            "booking-1",
		UserID:        "user-1",
		Price:         500,
		Status:        domain.BookingStatusConfirmed,
		Paid:          true,
		PaymentMethod: domain.PaymentMethodBalance,
	})

	_, err := ledger.PayBookingFromBalance(context.Background(), service.PayBookingRequest{
		BookingID: "booking-1",
		UserID:    "user-1",
		Method:    domain.PaymentMethodBalance,
	})
	if !errors.Is(err, service.ErrBookingAlreadyPaid) {
		t.Fatalf("expected ErrBookingAlreadyPaid, got %v", err)
	}

	balance, _ := userRepo.GetBalance(context.Background(), "user-1")
	if balance != 1000 {
		t.Errorf("expected balance untouched, got %v", balance)
	}
	if txnRepo.CountTransactions() != 0 {
		t.Errorf("expected no new transaction, got %d", txnRepo.CountTransactions())
	}
}

func TestPayBooking_OnlyOwnerCanPay(t *testing.T) {
	t.Parallel()

	ledger, userRepo, bookingRepo, _, _ := newLedgerFixture()

	userRepo.AddUser(&domain.User{ID: "user-2", Balance: 1000})
	bookingRepo.AddBooking(&domain.Booking{
		ID:     "booking-1",
		UserID: "user-1",
		Price:  500,
		Status: domain.BookingStatusPending,
	})

	_, err := ledger.PayBookingFromBalance(context.Background(), service.PayBookingRequest{
		BookingID: "booking-1",
		UserID:    "user-2",
		Method:    domain.PaymentMethodBalance,
	})
	if !errors.Is(err, service.ErrBookingNotOwned) {
		t.Errorf("expected ErrBookingNotOwned, got %v", err)
	}
}

func TestPayBooking_HeldLockRejectsConcurrentAttempt(t *testing.T) {
	t.Parallel()

	ledger, userRepo, bookingRepo, _, lockStore := newLedgerFixture()

	userRepo.AddUser(&domain.User{ID: "user-1", Balance: 1000})
	bookingRepo.AddBooking(&domain.Booking{
		ID:     "booking-1",
		UserID: "user-1",
		Price:  500,
		Status: domain.BookingStatusPending,
	})

	// Simulate another request already holding the lock.
	lockStore.Hold("booking:booking-1")

	_, err := ledger.PayBookingFromBalance(context.Background(), service.PayBookingRequest{
		BookingID: "booking-1",
		UserID:    "user-1",
		Method:    domain.PaymentMethodBalance,
	})
	if !errors.Is(err, service.ErrOperationInProgress) {
		t.Errorf("expected ErrOperationInProgress, got %v", err)
	}
}

// ──────────────────────────────────────────────
// 3. DEPOSIT AND WITHDRAWAL REVIEW
// ──────────────────────────────────────────────

func TestReviewDeposit_ApprovalCreditsExactlyOnce(t *testing.T) {
	t.Parallel()

	ledger, userRepo, _, txnRepo, _ := newLedgerFixture()

	userRepo.AddUser(&domain.User{ID: "user-1", Balance: 100})
	deposit, err := ledger.RequestDeposit(context.Background(), "user-1", 250, domain.PaymentMethodCard, "ref-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Requesting a deposit must not touch the balance.
	balance, _ := userRepo.GetBalance(context.Background(), "user-1")
	if balance != 100 {
		t.Errorf("expected balance unchanged before approval, got %v", balance)
	}

	result, err := ledger.ReviewTransaction(context.Background(), service.ReviewTransactionRequest{
		TransactionID: deposit.ID,
		ActorRole:     domain.RoleAdmin,
		Status:        domain.TransactionStatusApproved,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.BalanceUpdated {
		t.Error("expected balance to be updated on approval")
	}
	if result.NewBalance != 350 {
		t.Errorf("expected balance 350 after approval, got %v", result.NewBalance)
	}

	// A second approval of the same deposit must apply nothing.
	_, err = ledger.ReviewTransaction(context.Background(), service.ReviewTransactionRequest{
		TransactionID: deposit.ID,
		ActorRole:     domain.RoleAdmin,
		Status:        domain.TransactionStatusApproved,
	})
	if !errors.Is(err, service.ErrTransactionAlreadyProcessed) {
		t.Fatalf("expected ErrTransactionAlreadyProcessed, got %v", err)
	}

	balance, _ = userRepo.GetBalance(context.Background(), "user-1")
	if balance != 350 {
		t.Errorf("expected balance still 350 after replay, got %v", balance)
	}
	if txnRepo.GetTransaction(deposit.ID).Status != domain.TransactionStatusApproved {
		t.Errorf("expected APPROVED status, got %s", txnRepo.GetTransaction(deposit.ID).Status)
	}
}

func TestReviewDeposit_RejectionLeavesBalanceUntouched(t *testing.T) {
	t.Parallel()

	ledger, userRepo, _, _, _ := newLedgerFixture()

	userRepo.AddUser(&domain.User{ID: "user-1", Balance: 100})
	deposit, err := ledger.RequestDeposit(context.Background(), "user-1", 250, domain.PaymentMethodCard, "ref-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := ledger.ReviewTransaction(context.Background(), service.ReviewTransactionRequest{
		TransactionID: deposit.ID,
		ActorRole:     domain.RoleAdmin,
		Status:        domain.TransactionStatusRejected,
		AdminNotes:    "unverifiable reference",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BalanceUpdated {
		t.Error("rejection must not update the balance")
	}

	balance, _ := userRepo.GetBalance(context.Background(), "user-1")
	if balance != 100 {
		t.Errorf("expected balance unchanged at 100, got %v", balance)
	}
	if result.Transaction.AdminNotes != "unverifiable reference" {
		t.Errorf("expected admin notes recorded, got %q", result.Transaction.AdminNotes)
	}
}

func TestReviewTransaction_RequiresAdmin(t *testing.T) {
	t.Parallel()

	ledger, userRepo, _, _, _ := newLedgerFixture()

	userRepo.AddUser(&domain.User{ID: "user-1", Balance: 100})
	deposit, err := ledger.RequestDeposit(context.Background(), "user-1", 50, domain.PaymentMethodCash, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = ledger.ReviewTransaction(context.Background(), service.ReviewTransactionRequest{
		TransactionID: deposit.ID,
		ActorRole:     domain.RoleCustomer,
		Status:        domain.TransactionStatusApproved,
	})
	if !errors.Is(err, service.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestReviewTransaction_OnlyApproveOrReject(t *testing.T) {
	t.Parallel()

	ledger, userRepo, _, _, _ := newLedgerFixture()

	userRepo.AddUser(&domain.User{ID: "user-1", Balance: 100})
	deposit, err := ledger.RequestDeposit(context.Background(), "user-1", 50, domain.PaymentMethodCash, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = ledger.ReviewTransaction(context.Background(), service.ReviewTransactionRequest{
		TransactionID: deposit.ID,
		ActorRole:     domain.RoleAdmin,
		Status:        domain.TransactionStatusCompleted,
	})
	if !errors.Is(err, service.ErrInvalidTransactionStatus) {
		t.Errorf("expected ErrInvalidTransactionStatus, got %v", err)
	}
}

func TestWithdrawal_ApprovalDebitsBalance(t *testing.T) {
	t.Parallel()

	ledger, userRepo, _, _, _ := newLedgerFixture()

	userRepo.AddUser(&domain.User{ID: "user-1", Balance: 400})
	withdrawal, err := ledger.RequestWithdrawal(context.Background(), "user-1", 150, "payout")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if withdrawal.Amount != -150 {
		t.Errorf("expected withdrawal stored as -150, got %v", withdrawal.Amount)
	}

	result, err := ledger.ReviewTransaction(context.Background(), service.ReviewTransactionRequest{
		TransactionID: withdrawal.ID,
		ActorRole:     domain.RoleAdmin,
		Status:        domain.TransactionStatusApproved,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NewBalance != 250 {
		t.Errorf("expected balance 250 after payout, got %v", result.NewBalance)
	}
}

func TestWithdrawal_CannotRequestMoreThanBalance(t *testing.T) {
	t.Parallel()

	ledger, userRepo, _, _, _ := newLedgerFixture()

	userRepo.AddUser(&domain.User{ID: "user-1", Balance: 100})

	_, err := ledger.RequestWithdrawal(context.Background(), "user-1", 150, "payout")
	if !errors.Is(err, service.ErrInsufficientBalance) {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestWithdrawal_ApprovalFailsWhenBalanceSpentMeanwhile(t *testing.T) {
	t.Parallel()

	ledger, userRepo, _, _, _ := newLedgerFixture()

	userRepo.AddUser(&domain.User{ID: "user-1", Balance: 200})
	withdrawal, err := ledger.RequestWithdrawal(context.Background(), "user-1", 200, "payout")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The balance is spent between the request and the review.
	if ok, _ := userRepo.AdjustBalance(context.Background(), "user-1", -150); !ok {
		t.Fatal("test setup: adjustment should succeed")
	}

	_, err = ledger.ReviewTransaction(context.Background(), service.ReviewTransactionRequest{
		TransactionID: withdrawal.ID,
		ActorRole:     domain.RoleAdmin,
		Status:        domain.TransactionStatusApproved,
	})
	if !errors.Is(err, service.ErrInsufficientBalance) {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestDeposit_InvalidAmount(t *testing.T) {
	t.Parallel()

	ledger, userRepo, _, _, _ := newLedgerFixture()
	userRepo.AddUser(&domain.User{ID: "user-1"})

	for _, amount := range []float64{0, -50} {
		_, err := ledger.RequestDeposit(context.Background(), "user-1", amount, domain.PaymentMethodCard, "")
		if !errors.Is(err, service.ErrInvalidAmount) {
			t.Errorf("amount %v: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

// ──────────────────────────────────────────────
// 4. REFUNDS
// ──────────────────────────────────────────────

func TestRefundBooking_CreditsAndCancels(t *testing.T) {
	t.Parallel()

	ledger, userRepo, bookingRepo, txnRepo, _ := newLedgerFixture()

	userRepo.AddUser(&domain.User{ID: "user-1", Balance: 0})
	booking := &domain.Booking{
		ID:            "booking-1",
		UserID:        "user-1",
		Price:         500,
		Status:        domain.BookingStatusConfirmed,
		Paid:          true,
		PaymentMethod: domain.PaymentMethodBalance,
	}
	bookingRepo.AddBooking(booking)

	refund, err := ledger.RefundBooking(context.Background(), booking, "weather")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if refund.Type != domain.TransactionTypeRefund {
		t.Errorf("expected REFUND record, got %s", refund.Type)
	}
	if refund.Amount != 500 {
		t.Errorf("expected refund amount 500, got %v", refund.Amount)
	}

	balance, _ := userRepo.GetBalance(context.Background(), "user-1")
	if balance != 500 {
		t.Errorf("expected balance restored to 500, got %v", balance)
	}

	stored := bookingRepo.GetBooking("booking-1")
	if stored.Paid {
		t.Error("expected paid flag cleared")
	}
	if stored.Status != domain.BookingStatusCancelled {
		t.Errorf("expected CANCELLED booking, got %s", stored.Status)
	}
	if stored.CancelReason != "weather" {
		t.Errorf("expected cancel reason recorded, got %q", stored.CancelReason)
	}
	if txnRepo.CountByType(domain.TransactionTypeRefund) != 1 {
		t.Errorf("expected one refund record, got %d", txnRepo.CountByType(domain.TransactionTypeRefund))
	}
}

func TestRefundBooking_UnpaidIsRejected(t *testing.T) {
	t.Parallel()

	ledger, _, bookingRepo, _, _ := newLedgerFixture()

	booking := &domain.Booking{
		ID:     "booking-1",
		UserID: "user-1",
		Price:  500,
		Status: domain.BookingStatusPending,
	}
	bookingRepo.AddBooking(booking)

	_, err := ledger.RefundBooking(context.Background(), booking, "changed plans")
	if !errors.Is(err, service.ErrBookingNotPaid) {
		t.Errorf("expected ErrBookingNotPaid, got %v", err)
	}
}
