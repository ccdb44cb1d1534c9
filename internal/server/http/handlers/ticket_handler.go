package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ashmarov/ticketgate/internal/domain/errors"
	"github.com/ashmarov/ticketgate/internal/domain/model"
	"github.com/ashmarov/ticketgate/internal/server/http/dto"
)

// TicketHandler manages ticket-related endpoints.
type TicketHandler struct {
	facade TicketFacade
}

// NewTicketHandler constructs TicketHandler.
func NewTicketHandler(facade TicketFacade) *TicketHandler {
	return &TicketHandler{facade: facade}
}

// Issue handles POST /api/tickets.
func (h *TicketHandler) Issue(c *gin.Context) {
	var req dto.IssueTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid payload"})
		return
	}

	ticket, err := h.facade.IssueTicket(c.Request.Context(), CurrentClaims(c), req.OwnerIdentifier())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "valid owner email is required"})
		case errors.Is(err, domainErrors.ErrForbidden):
			c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "admin role required"})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal error"})
		}
		return
	}

	c.JSON(http.StatusCreated, toTicketResponse(ticket))
}

// List handles GET /api/tickets.
func (h *TicketHandler) List(c *gin.Context) {
	tickets, err := h.facade.Tickets(c.Request.Context(), CurrentClaims(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal error"})
		return
	}

	response := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		response = append(response, toTicketResponse(&tickets[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Verify handles POST /api/tickets/verify.
func (h *TicketHandler) Verify(c *gin.Context) {
	id, ok := bindTicketID(c)
	if !ok {
		return
	}

	valid, ticket, err := h.facade.VerifyTicket(c.Request.Context(), id)
	if err != nil {
		respondTicketError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{Valid: valid, Ticket: toTicketResponse(ticket)})
}

// Scan handles POST /api/tickets/scan.
func (h *TicketHandler) Scan(c *gin.Context) {
	id, ok := bindTicketID(c)
	if !ok {
		return
	}

	ticket, alreadyUsed, err := h.facade.ScanTicket(c.Request.Context(), id)
	if err != nil {
		respondTicketError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ScanResponse{Ticket: toTicketResponse(ticket), AlreadyUsed: alreadyUsed})
}

func bindTicketID(c *gin.Context) (string, bool) {
	var req dto.TicketIDRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "ticket id is required"})
		return "", false
	}
	return req.ID, true
}

func respondTicketError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "ticket not found"})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal error"})
	}
}

func toTicketResponse(ticket *model.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:         ticket.ID,
		OwnerEmail: ticket.OwnerEmail,
		Status:     string(ticket.Status),
		IssuedAt:   ticket.IssuedAt,
		ScannedAt:  ticket.ScannedAt,
	}
}
