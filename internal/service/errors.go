package service

import "errors"

// Validation errors are rejected synchronously with no state mutation; the
// API layer maps them to 4xx responses.
var (
	ErrSessionNotFound   = errors.New("no open session for that table or order")
	ErrEmptyCart         = errors.New("cart is empty, nothing to send to kitchen")
	ErrNoTicket          = errors.New("no kitchen ticket has been sent for this session")
	ErrKitchenNotReady   = errors.New("kitchen has not completed the required tickets")
	ErrAlreadyBilled     = errors.New("bill already generated for this session")
	ErrNotBilled         = errors.New("session is not awaiting payment")
	ErrSessionFrozen     = errors.New("session is frozen for payment and cannot be modified")
	ErrLineNotFound      = errors.New("cart line not found")
	ErrInvalidGuests     = errors.New("guest count must be at least 1")
	ErrInvalidPayment    = errors.New("payment method must be a final method, not pending")
	ErrInvalidDiscount   = errors.New("discount cannot be negative")
	ErrAlertNotFound     = errors.New("alert not found or already acknowledged")
	ErrPickupStillStaged = errors.New("pickup order has not been sent to the kitchen")
)
