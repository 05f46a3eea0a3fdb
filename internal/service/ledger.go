package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"charter/internal/domain"
	"charter/internal/redis"
	"charter/internal/repository"
)

const ledgerLockTTL = 10 * time.Second

// LedgerService applies financial events to user balances and appends
// the matching transaction records. Every balance mutation happens
// inside one atomic unit together with the record that explains it; a
// failed unit rolls back completely.
type LedgerService struct {
	atomic      repository.Atomic
	userRepo    repository.UserRepository
	bookingRepo repository.BookingRepository
	txnRepo     repository.TransactionRepository
	lockStore   redis.LockStoreInterface
	notifier    *NotificationService
}

// NewLedgerService creates a new LedgerService. lockStore and notifier
// may be nil.
func NewLedgerService(
	atomic repository.Atomic,
	userRepo repository.UserRepository,
	bookingRepo repository.BookingRepository,
	txnRepo repository.TransactionRepository,
	lockStore redis.LockStoreInterface,
	notifier *NotificationService,
) *LedgerService {
	return &LedgerService{
		atomic:      atomic,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		txnRepo:     txnRepo,
		lockStore:   lockStore,
		notifier:    notifier,
	}
}

// PayBookingRequest contains the parameters for paying a booking from
// the stored balance.
type PayBookingRequest struct {
	BookingID string
	UserID    string
	Method    domain.PaymentMethod
	Reference string
}

// PayBookingResult contains the outcome of a balance payment.
type PayBookingResult struct {
	Booking     *domain.Booking
	Transaction *domain.Transaction
	NewBalance  float64
}

// PayBookingFromBalance settles a booking against the owner's stored
// balance. The debit, the paid flag, and the payment record commit or
// fail as one unit; insufficient balance or an already-paid booking
// rejects with no mutation.
func (s *LedgerService) PayBookingFromBalance(ctx context.Context, req PayBookingRequest) (*PayBookingResult, error) {
	if req.BookingID == "" {
		return nil, ErrInvalidBookingID
	}
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if req.Method != domain.PaymentMethodBalance {
		return nil, ErrUnsupportedPaymentMethod
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != req.UserID {
		return nil, ErrBookingNotOwned
	}
	if booking.Status == domain.BookingStatusCancelled {
		return nil, ErrBookingAlreadyCancelled
	}
	if booking.Paid {
		return nil, ErrBookingAlreadyPaid
	}

	// Early rejection; the storage-level guards inside the unit are what
	// actually protect against concurrent spends.
	balance, err := s.userRepo.GetBalance(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if balance < booking.Price {
		return nil, ErrInsufficientBalance
	}

	release, err := s.acquireBookingLock(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	defer release()

	txn := &domain.Transaction{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		BookingID:     booking.ID,
		Type:          domain.TransactionTypePayment,
		Amount:        -booking.Price,
		PaymentMethod: domain.PaymentMethodBalance,
		Status:        domain.TransactionStatusCompleted,
		Reference:     req.Reference,
	}

	err = s.atomic.WithinTx(ctx, func(tx repository.LedgerTx) error {
		ok, err := tx.Users().AdjustBalance(ctx, req.UserID, -booking.Price)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientBalance
		}

		ok, err = tx.Bookings().MarkPaid(ctx, booking.ID, domain.PaymentMethodBalance)
		if err != nil {
			return err
		}
		if !ok {
			return ErrBookingAlreadyPaid
		}

		return tx.Transactions().Create(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	booking.Paid = true
	booking.PaymentMethod = domain.PaymentMethodBalance
	booking.Status = domain.BookingStatusConfirmed

	newBalance, err := s.userRepo.GetBalance(ctx, req.UserID)
	if err != nil {
		// The payment committed; surface the booking even if the balance
		// read afterwards failed.
		newBalance = balance - booking.Price
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyBookingPaid(ctx, booking, txn)
	}

	return &PayBookingResult{
		Booking:     booking,
		Transaction: txn,
		NewBalance:  newBalance,
	}, nil
}

// ReviewTransactionRequest contains the parameters for an admin review
// of a pending transaction.
type ReviewTransactionRequest struct {
	TransactionID string
	ActorRole     domain.Role
	Status        domain.TransactionStatus
	AdminNotes    string
}

// ReviewTransactionResult contains the outcome of a review.
type ReviewTransactionResult struct {
	Transaction    *domain.Transaction
	BalanceUpdated bool
	NewBalance     float64
}

// ReviewTransaction transitions a pending transaction to APPROVED or
// REJECTED. Approving a deposit credits the owner's balance exactly
// once: the status transition is conditional on the prior status being
// PENDING and shares the atomic unit with the credit, so a retried or
// concurrent approval finds a terminal status and applies nothing.
// Approved withdrawals debit the balance under the same unit; if the
// balance no longer covers the amount the whole review fails.
func (s *LedgerService) ReviewTransaction(ctx context.Context, req ReviewTransactionRequest) (*ReviewTransactionResult, error) {
	if req.TransactionID == "" {
		return nil, ErrInvalidTransactionID
	}
	if err := RequireRole(string(req.ActorRole), string(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	if req.Status != domain.TransactionStatusApproved && req.Status != domain.TransactionStatusRejected {
		return nil, ErrInvalidTransactionStatus
	}

	txn, err := s.txnRepo.GetByID(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status.IsTerminal() {
		return nil, ErrTransactionAlreadyProcessed
	}

	release, err := s.acquireTransactionLock(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	defer release()

	processedAt := time.Now()
	balanceUpdated := false

	err = s.atomic.WithinTx(ctx, func(tx repository.LedgerTx) error {
		ok, err := tx.Transactions().UpdateStatusIfPending(ctx, txn.ID, req.Status, req.AdminNotes, processedAt)
		if err != nil {
			return err
		}
		if !ok {
			return ErrTransactionAlreadyProcessed
		}

		if req.Status != domain.TransactionStatusApproved {
			return nil
		}

		switch txn.Type {
		case domain.TransactionTypeDeposit, domain.TransactionTypeWithdrawal:
			// Deposit amounts are positive, withdrawal amounts negative,
			// so one signed adjustment covers both.
			ok, err := tx.Users().AdjustBalance(ctx, txn.UserID, txn.Amount)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInsufficientBalance
			}
			balanceUpdated = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	txn.Status = req.Status
	txn.AdminNotes = req.AdminNotes
	txn.ProcessedAt = processedAt

	var newBalance float64
	if balanceUpdated {
		newBalance, err = s.userRepo.GetBalance(ctx, txn.UserID)
		if err != nil {
			return nil, err
		}
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyTransactionReviewed(ctx, txn)
	}

	return &ReviewTransactionResult{
		Transaction:    txn,
		BalanceUpdated: balanceUpdated,
		NewBalance:     newBalance,
	}, nil
}

// RequestDeposit creates a pending deposit for later admin review. The
// balance is not touched until the deposit is approved.
func (s *LedgerService) RequestDeposit(ctx context.Context, userID string, amount float64, method domain.PaymentMethod, reference string) (*domain.Transaction, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	txn := &domain.Transaction{
		ID:            uuid.New().String(),
		UserID:        userID,
		Type:          domain.TransactionTypeDeposit,
		Amount:        amount,
		PaymentMethod: method,
		Status:        domain.TransactionStatusPending,
		Reference:     reference,
	}

	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// RequestWithdrawal creates a pending withdrawal. The amount is stored
// negative; the debit is applied when an admin approves it.
func (s *LedgerService) RequestWithdrawal(ctx context.Context, userID string, amount float64, reference string) (*domain.Transaction, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance < amount {
		return nil, ErrInsufficientBalance
	}

	txn := &domain.Transaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      domain.TransactionTypeWithdrawal,
		Amount:    -amount,
		Status:    domain.TransactionStatusPending,
		Reference: reference,
	}

	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// RefundBooking reverses a balance payment when a paid booking is
// cancelled: credit, cleared paid flag, cancelled status, and the REFUND
// record commit as one unit.
func (s *LedgerService) RefundBooking(ctx context.Context, booking *domain.Booking, reason string) (*domain.Transaction, error) {
	if booking == nil || booking.ID == "" {
		return nil, ErrInvalidBookingID
	}
	if !booking.Paid {
		return nil, ErrBookingNotPaid
	}

	release, err := s.acquireBookingLock(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	txn := &domain.Transaction{
		ID:            uuid.New().String(),
		UserID:        booking.UserID,
		BookingID:     booking.ID,
		Type:          domain.TransactionTypeRefund,
		Amount:        booking.Price,
		PaymentMethod: booking.PaymentMethod,
		Status:        domain.TransactionStatusCompleted,
		Reference:     reason,
	}

	err = s.atomic.WithinTx(ctx, func(tx repository.LedgerTx) error {
		if _, err := tx.Users().AdjustBalance(ctx, booking.UserID, booking.Price); err != nil {
			return err
		}

		booking.Paid = false
		booking.Status = domain.BookingStatusCancelled
		booking.CancelledAt = time.Now()
		booking.CancelReason = reason
		if err := tx.Bookings().Update(ctx, booking); err != nil {
			return err
		}

		return tx.Transactions().Create(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyBookingRefunded(ctx, booking, txn)
	}

	return txn, nil
}

func (s *LedgerService) acquireBookingLock(ctx context.Context, bookingID string) (func(), error) {
	if s.lockStore == nil {
		return func() {}, nil
	}

	ok, err := s.lockStore.AcquireBookingLock(ctx, bookingID, ledgerLockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOperationInProgress
	}

	return func() { _ = s.lockStore.ReleaseBookingLock(ctx, bookingID) }, nil
}

func (s *LedgerService) acquireTransactionLock(ctx context.Context, transactionID string) (func(), error) {
	if s.lockStore == nil {
		return func() {}, nil
	}

	ok, err := s.lockStore.AcquireTransactionLock(ctx, transactionID, ledgerLockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOperationInProgress
	}

	return func() { _ = s.lockStore.ReleaseTransactionLock(ctx, transactionID) }, nil
}
