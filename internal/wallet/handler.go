package wallet

import (
	"errors"
	"net/http"
	"strconv"
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

type createRequest struct {
	Balance      string `json:"balance"`
	Currency     string `json:"currency"`
	UserDocument string `json:"user_document"`
	UserName     string `json:"user_name"`
}

type walletResponse struct {
	ID           int64     `json:"id"`
	Balance      string    `json:"balance"`
	Currency     string    `json:"currency"`
	UserDocument string    `json:"user_document,omitempty"`
	UserName     string    `json:"user_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toResponse(w Wallet) walletResponse {
	return walletResponse{
		ID:           w.ID,
		Balance:      w.Balance.String(),
		Currency:     string(w.Currency),
		UserDocument: w.UserDocument,
		UserName:     w.UserName,
		CreatedAt:    w.CreatedAt,
	}
}

// Create provisions a new wallet.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	balance := decimal.Zero
	if req.Balance != "" {
		var err error
		balance, err = decimal.NewFromString(req.Balance)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "malformed balance")
		}
	}

	w, err := h.service.Create(c.UserContext(), CreateInput{
		Balance:      balance,
		Currency:     req.Currency,
		UserDocument: req.UserDocument,
		UserName:     req.UserName,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCurrency), errors.Is(err, ErrInvalidBalance):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.Status(http.StatusCreated).JSON(toResponse(w))
}

// Get returns a single wallet or 404.
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := parseWalletID(c)
	if err != nil {
		return err
	}
	w, ok, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return fiber.NewError(http.StatusNotFound, "wallet not found")
	}
	return c.Status(http.StatusOK).JSON(toResponse(w))
}

// List returns wallets, optionally filtered by currency and user document.
func (h *Handler) List(c *fiber.Ctx) error {
	f := Filter{
		Currency:     Currency(c.Query("currency")),
		UserDocument: c.Query("user_document"),
	}
	wallets, err := h.service.List(c.UserContext(), f)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]walletResponse, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, toResponse(w))
	}
	return c.Status(http.StatusOK).JSON(out)
}

type updateRequest struct {
	Balance      string `json:"balance"`
	Currency     string `json:"currency"`
	UserDocument string `json:"user_document"`
	UserName     string `json:"user_name"`
}

// Update persists the full state of an existing wallet.
func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := parseWalletID(c)
	if err != nil {
		return err
	}
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed balance")
	}

	w := Wallet{
		ID:           id,
		Balance:      balance,
		Currency:     Currency(req.Currency),
		UserDocument: req.UserDocument,
		UserName:     req.UserName,
	}
	if err := h.service.Update(c.UserContext(), w); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "wallet not found")
		case errors.Is(err, ErrInvalidCurrency), errors.Is(err, ErrInvalidBalance):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.SendStatus(http.StatusOK)
}

func parseWalletID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("walletId"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(http.StatusBadRequest, "malformed wallet id")
	}
	return id, nil
}
