package model

import "time"

// TicketStatus describes the ticket lifecycle. The only transition is
// active to used; used is terminal.
type TicketStatus string

const (
	TicketStatusActive TicketStatus = "active"
	TicketStatusUsed   TicketStatus = "used"
)

// Ticket describes an issued bus ticket. ScannedAt is set exactly once,
// when the ticket transitions to used, and never rewritten afterwards.
type Ticket struct {
	ID         string
	OwnerEmail string
	Status     TicketStatus
	IssuedAt   time.Time
	ScannedAt  *time.Time
}

// Used reports whether the ticket has already been scanned.
func (t *Ticket) Used() bool {
	return t.Status == TicketStatusUsed
}
