package dto

import "time"

// IssueTicketRequest describes the issuance payload. The owner may arrive in
// either field; email wins when both are set.
type IssueTicketRequest struct {
	Email string `json:"email"`
	Owner string `json:"owner"`
}

// OwnerIdentifier returns the requested ticket owner.
func (r IssueTicketRequest) OwnerIdentifier() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Owner
}

// TicketIDRequest addresses a single ticket.
type TicketIDRequest struct {
	ID string `json:"id"`
}

// TicketResponse is the public ticket projection.
type TicketResponse struct {
	ID         string     `json:"id"`
	OwnerEmail string     `json:"ownerEmail"`
	Status     string     `json:"status"`
	IssuedAt   time.Time  `json:"issuedAt"`
	ScannedAt  *time.Time `json:"scannedAt"`
}

// VerifyResponse reports ticket validity without mutating it.
type VerifyResponse struct {
	Valid  bool           `json:"valid"`
	Ticket TicketResponse `json:"ticket"`
}

// ScanResponse reports the scan outcome.
type ScanResponse struct {
	Ticket      TicketResponse `json:"ticket"`
	AlreadyUsed bool           `json:"alreadyUsed"`
}
