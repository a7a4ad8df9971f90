package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wallet-ledger/wallet_ledger/internal/transfer"
)

// RegisterTransferRoutes wires transfer endpoints.
func RegisterTransferRoutes(r fiber.Router, h *transfer.Handler) {
	r.Post("/transfers", h.Create)
	r.Get("/wallets/:walletId/transfers", h.ListByWallet)
}
