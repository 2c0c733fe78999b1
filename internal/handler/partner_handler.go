package handler

import (
	"net/http"
	"strconv"

	"watchmatch/backend/internal/apperr"
	"watchmatch/backend/internal/logger"
	"watchmatch/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// PartnerRequestInput defines the structure for sending a pairing request.
type PartnerRequestInput struct {
	ReceiverUsername string `json:"receiverUsername" binding:"required" example:"popcornpal"`
}

// RespondInput defines the structure for answering a pairing request.
type RespondInput struct {
	Status models.PartnerRequestStatus `json:"status" binding:"required" example:"accepted"`
}

// endregion

// SendPartnerRequest godoc
// @Summary      Send partner request
// @Description  Sends a pairing request to another user by username.
// @Tags         partner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PartnerRequestInput true "Receiver"
// @Success      200  {object}  models.PartnerRequest
// @Failure      400  {object}  ErrorResponse "Self-partnering"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Unknown receiver"
// @Router       /partner/request [post]
func (h *Handler) SendPartnerRequest(c *gin.Context) {
	var input PartnerRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	senderID := currentUserID(c)

	receiver, err := h.store.GetUserByUsername(c.Request.Context(), input.ReceiverUsername)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if receiver.ID == senderID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot partner with yourself"})
		return
	}

	request, err := h.store.CreatePartnerRequest(c.Request.Context(), senderID, input.ReceiverUsername)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// ListPartnerRequests godoc
// @Summary      List partner requests
// @Description  Lists requests sent by the user or addressed to the user's current username.
// @Tags         partner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.PartnerRequest
// @Failure      401  {object}  ErrorResponse
// @Router       /partner/requests [get]
func (h *Handler) ListPartnerRequests(c *gin.Context) {
	requests, err := h.store.PartnerRequestsFor(c.Request.Context(), currentUserID(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// RespondPartnerRequest godoc
// @Summary      Respond to a partner request
// @Description  Accepts or rejects a pending request. Accepting pairs both users.
// @Tags         partner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int           true  "Request ID"
// @Param        input body  RespondInput  true  "Response"
// @Success      200  {object}  models.PartnerRequest
// @Failure      400  {object}  ErrorResponse "Invalid status, already answered, or not the receiver"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Unknown request"
// @Router       /partner/request/{id}/respond [post]
func (h *Handler) RespondPartnerRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var input RespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.Status.Terminal() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be accepted or rejected"})
		return
	}

	ctx := c.Request.Context()
	userID := currentUserID(c)

	request, err := h.store.GetPartnerRequest(ctx, uint(requestID))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	// Only the resolved receiver may answer, and only once.
	viewer, err := h.store.GetUser(ctx, userID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if request.ReceiverUsername != viewer.Username {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not the receiver of this request"})
		return
	}
	if request.Status.Terminal() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request already answered"})
		return
	}

	request, err = h.store.UpdatePartnerRequestStatus(ctx, uint(requestID), input.Status)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	if input.Status == models.RequestAccepted {
		if err := h.store.PairUsers(ctx, request.SenderID, viewer.ID); err != nil {
			apperr.Respond(c, err)
			return
		}
		logger.Info("users paired", "sender", request.SenderID, "receiver", viewer.ID)
	}

	c.JSON(http.StatusOK, request)
}
