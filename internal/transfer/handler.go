package transfer

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/wallet_ledger/internal/ledger"
)

// Handler exposes transfer endpoints.
type Handler struct {
	service *Service
	reader  *ledger.Reader
	timeout time.Duration
}

// NewHandler constructs a transfer handler. The timeout bounds each Transfer
// call end to end.
func NewHandler(service *Service, reader *ledger.Reader, timeout time.Duration) *Handler {
	return &Handler{service: service, reader: reader, timeout: timeout}
}

type transferRequest struct {
	SourceWalletID      int64  `json:"source_wallet_id"`
	DestinationWalletID int64  `json:"destination_wallet_id"`
	Amount              string `json:"amount"`
	Description         string `json:"description"`
}

type recordResponse struct {
	ID                  int64     `json:"id"`
	SourceWalletID      int64     `json:"source_wallet_id"`
	DestinationWalletID int64     `json:"destination_wallet_id"`
	Amount              string    `json:"amount"`
	Description         string    `json:"description,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}

func toResponse(r ledger.Record) recordResponse {
	return recordResponse{
		ID:                  r.ID,
		SourceWalletID:      r.SourceWalletID,
		DestinationWalletID: r.DestinationWalletID,
		Amount:              r.Amount.String(),
		Description:         r.Description,
		Timestamp:           r.Timestamp,
	}
}

// Create processes a wallet-to-wallet transfer.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed amount")
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	rec, err := h.service.Transfer(ctx, Input{
		SourceID:      req.SourceWalletID,
		DestinationID: req.DestinationWalletID,
		Amount:        amount,
		Description:   req.Description,
	})
	if err != nil {
		var notFound WalletNotFoundError
		switch {
		case errors.Is(err, ErrSelfTransfer),
			errors.Is(err, ErrInvalidAmount),
			errors.Is(err, ErrCurrencyMismatch),
			errors.Is(err, ErrInsufficientFunds):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.As(err, &notFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrConflict):
			return fiber.NewError(http.StatusConflict, err.Error())
		case errors.Is(err, context.DeadlineExceeded):
			return fiber.NewError(http.StatusGatewayTimeout, "transfer timed out")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusCreated).JSON(toResponse(rec))
}

// ListByWallet returns the wallet's transfer history, most recent first.
func (h *Handler) ListByWallet(c *fiber.Ctx) error {
	walletID, err := strconv.ParseInt(c.Params("walletId"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed wallet id")
	}
	records, err := h.reader.ListByWallet(c.UserContext(), walletID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]recordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toResponse(r))
	}
	return c.Status(http.StatusOK).JSON(out)
}
