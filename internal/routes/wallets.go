package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wallet-ledger/wallet_ledger/internal/wallet"
)

// RegisterWalletRoutes wires wallet-related endpoints.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Post("/wallets", h.Create)
	r.Get("/wallets", h.List)
	r.Get("/wallets/:walletId", h.Get)
	r.Put("/wallets/:walletId", h.Update)
}
