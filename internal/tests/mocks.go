package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"charter/internal/domain"
	"charter/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters for verification
	CreateCallCount        int32
	AdjustBalanceCallCount int32

	// Error injection
	CreateError        error
	AdjustBalanceError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockUserRepository) AdjustBalance(ctx context.Context, id string, delta float64) (bool, error) {
	atomic.AddInt32(&m.AdjustBalanceCallCount, 1)
	if m.AdjustBalanceError != nil {
		return false, m.AdjustBalanceError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if user.Balance+delta < 0 {
		return false, nil
	}
	user.Balance += delta
	return true, nil
}

func (m *MockUserRepository) GetBalance(ctx context.Context, id string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	return user.Balance, nil
}

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters for verification
	CreateCallCount   int32
	UpdateCallCount   int32
	MarkPaidCallCount int32

	// Error injection
	CreateError   error
	UpdateError   error
	MarkPaidError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		copy := *b
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockBookingRepository) GetAllByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.UserID == userID {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *booking
	m.bookings[booking.ID] = &copy
	return nil
}

func (m *MockBookingRepository) MarkPaid(ctx context.Context, id string, method domain.PaymentMethod) (bool, error) {
	atomic.AddInt32(&m.MarkPaidCallCount, 1)
	if m.MarkPaidError != nil {
		return false, m.MarkPaidError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if booking.Paid {
		return false, nil
	}
	booking.Paid = true
	booking.PaymentMethod = method
	booking.Status = domain.BookingStatusConfirmed
	return true, nil
}

func (m *MockBookingRepository) ClearPaid(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	booking.Paid = false
	return nil
}

// GetBooking returns a booking for test assertions.
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// CountBookings returns the number of stored bookings.
func (m *MockBookingRepository) CountBookings() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bookings)
}

// ──────────────────────────────────────────────
// MOCK TRANSACTION REPOSITORY
// ──────────────────────────────────────────────

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	// Counters for verification
	CreateCallCount                int32
	UpdateStatusIfPendingCallCount int32

	// Error injection
	CreateError                error
	UpdateStatusIfPendingError error
}

// NewMockTransactionRepository creates a new mock transaction repository.
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

// AddTransaction adds a transaction to the mock repository.
func (m *MockTransactionRepository) AddTransaction(txn *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	txn, ok := m.transactions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *txn
	return &copy, nil
}

func (m *MockTransactionRepository) GetAllByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Transaction, 0)
	for _, t := range m.transactions {
		if t.UserID == userID {
			copy := *t
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockTransactionRepository) GetPending(ctx context.Context) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Transaction, 0)
	for _, t := range m.transactions {
		if t.Status == domain.TransactionStatusPending {
			copy := *t
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockTransactionRepository) UpdateStatusIfPending(ctx context.Context, id string, status domain.TransactionStatus, notes string, processedAt time.Time) (bool, error) {
	atomic.AddInt32(&m.UpdateStatusIfPendingCallCount, 1)
	if m.UpdateStatusIfPendingError != nil {
		return false, m.UpdateStatusIfPendingError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.transactions[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if txn.Status.IsTerminal() {
		return false, nil
	}
	txn.Status = status
	txn.AdminNotes = notes
	txn.ProcessedAt = processedAt
	return true, nil
}

// GetTransaction returns a transaction for test assertions.
func (m *MockTransactionRepository) GetTransaction(id string) *domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.transactions[id]
}

// CountTransactions returns the number of stored transactions.
func (m *MockTransactionRepository) CountTransactions() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transactions)
}

// CountByType returns the number of stored transactions of a given type.
func (m *MockTransactionRepository) CountByType(txnType domain.TransactionType) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, t := range m.transactions {
		if t.Type == txnType {
			count++
		}
	}
	return count
}

// ──────────────────────────────────────────────
// MOCK HELICOPTER REPOSITORY
// ──────────────────────────────────────────────

// MockHelicopterRepository is a mock implementation of HelicopterRepository.
type MockHelicopterRepository struct {
	mu          sync.RWMutex
	helicopters map[string]*domain.Helicopter

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockHelicopterRepository creates a new mock helicopter repository.
func NewMockHelicopterRepository() *MockHelicopterRepository {
	return &MockHelicopterRepository{
		helicopters: make(map[string]*domain.Helicopter),
	}
}

// AddHelicopter adds a helicopter to the mock repository.
func (m *MockHelicopterRepository) AddHelicopter(h *domain.Helicopter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.helicopters[h.ID] = h
}

func (m *MockHelicopterRepository) Create(ctx context.Context, h *domain.Helicopter) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.helicopters[h.ID] = h
	return nil
}

func (m *MockHelicopterRepository) GetByID(ctx context.Context, id string) (*domain.Helicopter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.helicopters[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *h
	return &copy, nil
}

func (m *MockHelicopterRepository) GetAll(ctx context.Context) ([]*domain.Helicopter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Helicopter, 0, len(m.helicopters))
	for _, h := range m.helicopters {
		copy := *h
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockHelicopterRepository) Update(ctx context.Context, h *domain.Helicopter) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.helicopters[h.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *h
	m.helicopters[h.ID] = &copy
	return nil
}

func (m *MockHelicopterRepository) UpdateStatus(ctx context.Context, id string, status domain.HelicopterStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.helicopters[id]
	if !ok {
		return repository.ErrNotFound
	}
	h.Status = status
	return nil
}

// ──────────────────────────────────────────────
// MOCK EXPERIENCE REPOSITORY
// ──────────────────────────────────────────────

// MockExperienceRepository is a mock implementation of ExperienceRepository.
type MockExperienceRepository struct {
	mu          sync.RWMutex
	experiences map[string]*domain.Experience
}

// NewMockExperienceRepository creates a new mock experience repository.
func NewMockExperienceRepository() *MockExperienceRepository {
	return &MockExperienceRepository{
		experiences: make(map[string]*domain.Experience),
	}
}

// AddExperience adds an experience to the mock repository.
func (m *MockExperienceRepository) AddExperience(exp *domain.Experience) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.experiences[exp.ID] = exp
}

func (m *MockExperienceRepository) Create(ctx context.Context, exp *domain.Experience) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.experiences[exp.ID] = exp
	return nil
}

func (m *MockExperienceRepository) GetByID(ctx context.Context, id string) (*domain.Experience, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	exp, ok := m.experiences[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *exp
	return &copy, nil
}

func (m *MockExperienceRepository) GetAll(ctx context.Context) ([]*domain.Experience, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Experience, 0, len(m.experiences))
	for _, e := range m.experiences {
		copy := *e
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockExperienceRepository) GetActive(ctx context.Context) ([]*domain.Experience, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Experience, 0)
	for _, e := range m.experiences {
		if e.Active {
			copy := *e
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockExperienceRepository) Update(ctx context.Context, exp *domain.Experience) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.experiences[exp.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *exp
	m.experiences[exp.ID] = &copy
	return nil
}

// ──────────────────────────────────────────────
// MOCK ATOMIC UNIT
// ──────────────────────────────────────────────

// MockAtomic implements the atomic-unit boundary over the mock
// repositories. Mutations inside the callback hit the mocks directly, so
// a failing callback does not roll anything back; tests that exercise
// failure paths rely on the guard ordering inside the services.
type MockAtomic struct {
	userRepo    *MockUserRepository
	bookingRepo *MockBookingRepository
	txnRepo     *MockTransactionRepository

	// Counters for verification
	WithinTxCallCount int32

	// Error injection: returned before the callback runs.
	BeginError error
}

// NewMockAtomic creates a mock atomic unit over the given repositories.
func NewMockAtomic(userRepo *MockUserRepository, bookingRepo *MockBookingRepository, txnRepo *MockTransactionRepository) *MockAtomic {
	return &MockAtomic{
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		txnRepo:     txnRepo,
	}
}

func (m *MockAtomic) WithinTx(ctx context.Context, fn func(tx repository.LedgerTx) error) error {
	atomic.AddInt32(&m.WithinTxCallCount, 1)
	if m.BeginError != nil {
		return m.BeginError
	}
	return fn(m)
}

func (m *MockAtomic) Users() repository.UserRepository               { return m.userRepo }
func (m *MockAtomic) Bookings() repository.BookingRepository         { return m.bookingRepo }
func (m *MockAtomic) Transactions() repository.TransactionRepository { return m.txnRepo }

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of the distributed lock
// store.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]bool),
	}
}

func (m *MockLockStore) AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (bool, error) {
	return m.acquire("booking:" + bookingID)
}

func (m *MockLockStore) ReleaseBookingLock(ctx context.Context, bookingID string) error {
	return m.release("booking:" + bookingID)
}

func (m *MockLockStore) AcquireTransactionLock(ctx context.Context, transactionID string, ttl time.Duration) (bool, error) {
	return m.acquire("transaction:" + transactionID)
}

func (m *MockLockStore) ReleaseTransactionLock(ctx context.Context, transactionID string) error {
	return m.release("transaction:" + transactionID)
}

// Hold marks a lock as taken, simulating a concurrent holder.
func (m *MockLockStore) Hold(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks[key] = true
}

func (m *MockLockStore) acquire(key string) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[key] {
		return false, nil
	}
	m.locks[key] = true
	return true, nil
}

func (m *MockLockStore) release(key string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	return nil
}
