package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/encorehq/booking-platform/internal/booking"
	"github.com/encorehq/booking-platform/internal/model"
	"github.com/encorehq/booking-platform/internal/observability/metrics"
	"github.com/encorehq/booking-platform/internal/repository"
)

// ContractHandler exposes contract generation, signing and the
// per-booking signature checklist.  The state machine itself lives in
// the orchestrator; the handler only translates HTTP.
type ContractHandler struct {
	Orchestrator *booking.ContractOrchestrator
	Contracts    *repository.ContractRepo
}

func NewContractHandler(o *booking.ContractOrchestrator, contracts *repository.ContractRepo) *ContractHandler {
	return &ContractHandler{Orchestrator: o, Contracts: contracts}
}

type generateContractReq struct {
	ContractType    string          `json:"contract_type"`
	Title           string          `json:"title"`
	Content         json.RawMessage `json:"content"`
	Metadata        json.RawMessage `json:"metadata"`
	PerformerUserID uint64          `json:"performer_user_id"`
}

type signReq struct {
	SignerType    string `json:"signer_type"`
	SignatureData string `json:"signature_data"`
}

// Generate creates or re-issues a contract on a booking.  Generating
// the same contract again replaces its content and resets all signer
// rows to pending.
func (h *ContractHandler) Generate(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req generateContractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	contract, action, err := h.Orchestrator.GenerateContract(ctx, booking.GenerateContractInput{
		BookingID:       bookingID,
		ContractType:    req.ContractType,
		Title:           req.Title,
		Content:         req.Content,
		Metadata:        req.Metadata,
		Status:          model.ContractStatusDraft,
		CreatedByUserID: adminID,
		PerformerUserID: req.PerformerUserID,
	})
	if err != nil {
		return writeError(c, err)
	}
	metrics.ObserveContractGenerated(req.ContractType, action)

	status := http.StatusCreated
	if action == repository.UpsertUpdated {
		status = http.StatusOK
	}
	return c.JSON(status, echo.Map{"contract": contract, "action": action})
}

// ListByBooking returns all contracts generated for a booking.
func (h *ContractHandler) ListByBooking(c echo.Context) error {
	bookingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Contracts.ListByBooking(ctx, bookingID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"contracts": items})
}

// Sign captures a signature for one signer role on a contract.
func (h *ContractHandler) Sign(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	contractID, err := pathID(c, "contract_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}
	var req signReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	contract, completed, err := h.Orchestrator.Sign(ctx, booking.SignInput{
		ContractID:    contractID,
		SignerType:    req.SignerType,
		SignatureData: req.SignatureData,
		CallerUserID:  uid,
		CallerIsAdmin: isAdminRole(currentRole(c)),
	})
	if err != nil {
		return writeError(c, err)
	}
	metrics.ObserveSignature(req.SignerType)

	return c.JSON(http.StatusOK, echo.Map{
		"contract":                 contract,
		"all_signatures_completed": completed,
	})
}

// Checklist returns every required signature across every contract of
// a booking, for rendering the consolidated signing view.
func (h *ContractHandler) Checklist(c echo.Context) error {
	bookingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Orchestrator.Checklist(ctx, bookingID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"signatures": items})
}
