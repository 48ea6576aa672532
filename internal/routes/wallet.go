package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tigz/wallet-api/internal/wallet"
)

// RegisterWalletRoutes wires wallet-related endpoints.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Post("/wallets/:customerId/deposit", h.Deposit)
	r.Post("/wallets/:customerId/withdraw", h.Withdraw)
	r.Get("/wallets/:customerId", h.Get)
	r.Get("/wallets/:customerId/transactions", h.Transactions)
}
