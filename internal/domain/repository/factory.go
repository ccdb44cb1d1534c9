package repository

// Factory describes access to the domain repositories. Both storage
// backends implement the same factory contract.
type Factory interface {
	Users() CredentialRepository
	Tickets() TicketRepository
}
