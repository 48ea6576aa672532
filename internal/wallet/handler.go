package wallet

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type fundsRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

type walletResponse struct {
	CustomerID string          `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"`
}

type transactionResponse struct {
	ID         int64           `json:"id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type"`
	Timestamp  time.Time       `json:"timestamp"`
}

type pageResponse struct {
	Items         []transactionResponse `json:"items"`
	Page          int                   `json:"page"`
	Size          int                   `json:"size"`
	TotalElements int64                 `json:"total_elements"`
	TotalPages    int64                 `json:"total_pages"`
}

// Deposit credits the customer's wallet.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	var req fundsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	w, err := h.service.Deposit(c.UserContext(), c.Params("customerId"), req.Amount)
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(http.StatusOK).JSON(walletResponse{CustomerID: w.CustomerID, Balance: w.Balance})
}

// Withdraw debits the customer's wallet.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	var req fundsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	w, err := h.service.Withdraw(c.UserContext(), c.Params("customerId"), req.Amount)
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(http.StatusOK).JSON(walletResponse{CustomerID: w.CustomerID, Balance: w.Balance})
}

// Get returns the current wallet balance.
func (h *Handler) Get(c *fiber.Ctx) error {
	w, err := h.service.GetWallet(c.UserContext(), c.Params("customerId"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.Status(http.StatusOK).JSON(walletResponse{CustomerID: w.CustomerID, Balance: w.Balance})
}

// Transactions returns one page of the wallet's history.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 20)
	if page < 0 || size <= 0 {
		return fiber.NewError(http.StatusBadRequest, "page must be >= 0 and size > 0")
	}

	result, err := h.service.ListTransactions(c.UserContext(), c.Params("customerId"), page, size)
	if err != nil {
		return toHTTPError(err)
	}

	items := make([]transactionResponse, 0, len(result.Items))
	for _, txn := range result.Items {
		items = append(items, transactionResponse{
			ID:         txn.ID,
			CustomerID: txn.CustomerID,
			Amount:     txn.Amount,
			Type:       string(txn.Type),
			Timestamp:  txn.Timestamp,
		})
	}

	return c.Status(http.StatusOK).JSON(pageResponse{
		Items:         items,
		Page:          result.PageIndex,
		Size:          result.PageSize,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
	})
}

// toHTTPError translates service failures into transport statuses. Exhausted
// retries read as a transient condition the client may safely resubmit.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidPage):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrWalletNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInsufficientFunds):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrConcurrencyExhausted):
		return fiber.NewError(http.StatusServiceUnavailable, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
