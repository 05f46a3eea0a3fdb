package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"charter/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBookingCreated      NotificationType = "BOOKING_CREATED"
	NotificationBookingPaid         NotificationType = "BOOKING_PAID"
	NotificationBookingCancelled    NotificationType = "BOOKING_CANCELLED"
	NotificationBookingRefunded     NotificationType = "BOOKING_REFUNDED"
	NotificationTransactionReviewed NotificationType = "TRANSACTION_REVIEWED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM, APNS)
	// - Email client (SendGrid)
	// - SMS client (Twilio)
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyBookingCreated notifies the customer that a booking was created.
func (s *NotificationService) NotifyBookingCreated(ctx context.Context, booking *domain.Booking) error {
	s.send(ctx, Notification{
		Type:        NotificationBookingCreated,
		RecipientID: booking.UserID,
		Title:       "Booking Received",
		Message:     fmt.Sprintf("Your charter %s → %s on %s is pending payment.", booking.FromCode, booking.ToCode, booking.FlightDate.Format("2006-01-02")),
		Data: map[string]interface{}{
			"booking_id": booking.ID,
			"price":      booking.Price,
		},
		CreatedAt: time.Now(),
	})
	return nil
}

// NotifyBookingPaid notifies the customer that a payment settled.
func (s *NotificationService) NotifyBookingPaid(ctx context.Context, booking *domain.Booking, txn *domain.Transaction) error {
	s.send(ctx, Notification{
		Type:        NotificationBookingPaid,
		RecipientID: booking.UserID,
		Title:       "Payment Confirmed",
		Message:     fmt.Sprintf("Payment of %.2f received; your charter %s → %s is confirmed.", -txn.Amount, booking.FromCode, booking.ToCode),
		Data: map[string]interface{}{
			"booking_id":     booking.ID,
			"transaction_id": txn.ID,
		},
		CreatedAt: time.Now(),
	})
	return nil
}

// NotifyBookingCancelled notifies the customer of a cancellation.
func (s *NotificationService) NotifyBookingCancelled(ctx context.Context, booking *domain.Booking) error {
	s.send(ctx, Notification{
		Type:        NotificationBookingCancelled,
		RecipientID: booking.UserID,
		Title:       "Booking Cancelled",
		Message:     fmt.Sprintf("Your charter %s → %s was cancelled.", booking.FromCode, booking.ToCode),
		Data: map[string]interface{}{
			"booking_id": booking.ID,
			"reason":     booking.CancelReason,
		},
		CreatedAt: time.Now(),
	})
	return nil
}

// NotifyBookingRefunded notifies the customer of a refund credit.
func (s *NotificationService) NotifyBookingRefunded(ctx context.Context, booking *domain.Booking, txn *domain.Transaction) error {
	s.send(ctx, Notification{
		Type:        NotificationBookingRefunded,
		RecipientID: booking.UserID,
		Title:       "Refund Issued",
		Message:     fmt.Sprintf("%.2f was credited back to your balance for the cancelled charter.", txn.Amount),
		Data: map[string]interface{}{
			"booking_id":     booking.ID,
			"transaction_id": txn.ID,
		},
		CreatedAt: time.Now(),
	})
	return nil
}

// NotifyTransactionReviewed notifies the owner of a review outcome.
func (s *NotificationService) NotifyTransactionReviewed(ctx context.Context, txn *domain.Transaction) error {
	s.send(ctx, Notification{
		Type:        NotificationTransactionReviewed,
		RecipientID: txn.UserID,
		Title:       fmt.Sprintf("%s %s", txn.Type, txn.Status),
		Message:     fmt.Sprintf("Your %s request was %s.", txn.Type, txn.Status),
		Data: map[string]interface{}{
			"transaction_id": txn.ID,
			"amount":         txn.Amount,
		},
		CreatedAt: time.Now(),
	})
	return nil
}

// send delivers a notification. Current implementation logs it; swap in
// real transports here.
func (s *NotificationService) send(ctx context.Context, n Notification) {
	log.Printf("[NOTIFY] type=%s recipient=%s title=%q message=%q", n.Type, n.RecipientID, n.Title, n.Message)
}
