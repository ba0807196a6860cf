package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/occurrence-registration-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/occurrence-registration-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
	"github.com/vietanh2810/occurrence-registration-api/internal/service"
)

const (
	participantIDKey = "participantID"

	alreadyRegisteredCode = "already_registered"
	maxOccurrencesListed  = 500
)

type RegistrationService interface {
	Register(ctx context.Context, identity domain.ParticipantIdentity, in service.RegisterInput) (service.RegisterResult, error)
	Update(ctx context.Context, identity domain.ParticipantIdentity, registrationID uint, in service.UpdateInput) (service.RegisterResult, error)
	Cancel(ctx context.Context, identity domain.ParticipantIdentity, eventID, participantID uint) (service.CancelResult, error)
}

type ReservationService interface {
	ListReservations(ctx context.Context, identity domain.ParticipantIdentity, eventID uint, includeDependents bool) ([]domain.ReservationView, error)
	ListCandidates(ctx context.Context, identity domain.ParticipantIdentity, eventID uint) ([]domain.Candidate, error)
	ListOccurrences(ctx context.Context, eventID uint, includePast bool, limit int) (domain.Event, []domain.Occurrence, error)
	History(ctx context.Context, identity domain.ParticipantIdentity, registrationID uint) ([]domain.Transition, error)
}

type RegistrationHandler struct {
	svc  RegistrationService
	rSvc ReservationService
}

func NewRegistrationHandler(svc RegistrationService, rSvc ReservationService) *RegistrationHandler {
	return &RegistrationHandler{
		svc:  svc,
		rSvc: rSvc,
	}
}

// HandleRegister godoc
// @Summary      Register a participant to an event
// @Description  Creates the registration, or updates the sessions and note of an existing one.
// @Description  Returns 201 on creation, 200 on update and 409 when nothing changed.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                      true  "event ID"
// @Param        request  body      request.RegisterRequest  true  "request body"
// @Success      201      {object}  response.RegisterResponse
// @Success      200      {object}  response.UpdateResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/registrations [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleRegister(ctx *gin.Context) {
	identity, respErr := identityFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := paramID(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	ctx.Set(participantIDKey, req.ParticipantID)

	res, err := h.svc.Register(ctx.Request.Context(), identity, service.RegisterInput{
		EventID:       eventID,
		ParticipantID: req.ParticipantID,
		Note:          req.Note,
		Selection:     req.Selection(),
		Delivery:      domain.DeliveryMode(req.Delivery),
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRegister -> h.svc.Register", err)
		return
	}

	switch res.Kind {
	case service.ResultUnchanged:
		response.RenderErr(ctx, response.ErrConflict(res.Message).WithCode(alreadyRegisteredCode))
	case service.ResultUpdated:
		ctx.JSON(http.StatusOK, toUpdateResponse(res))
	default:
		ctx.JSON(http.StatusCreated, toRegisterResponse(res))
	}
}

// HandleUpdateRegistration godoc
// @Summary      Update the sessions or note of a registration
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        registrationID  path      int                                true  "registration ID"
// @Param        request         body      request.UpdateRegistrationRequest  true  "request body"
// @Success      200             {object}  response.UpdateResponse
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      403             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      409             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /registrations/{registrationID} [patch]
// @Security BearerAuth
func (h *RegistrationHandler) HandleUpdateRegistration(ctx *gin.Context) {
	identity, respErr := identityFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registrationID, respErr := paramID(ctx, "registrationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	res, err := h.svc.Update(ctx.Request.Context(), identity, registrationID, service.UpdateInput{
		Note:      req.Note,
		Selection: req.Selection(),
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateRegistration -> h.svc.Update", err)
		return
	}

	if res.Kind == service.ResultUnchanged {
		response.RenderErr(ctx, response.ErrConflict("The registration is already up to date.").WithCode(alreadyRegisteredCode))
		return
	}

	ctx.JSON(http.StatusOK, toUpdateResponse(res))
}

// HandleUnregister godoc
// @Summary      Cancel the registration of a participant
// @Tags         registrations
// @Produce      json
// @Param        eventID        path      int  true  "event ID"
// @Param        participantID  path      int  true  "participant ID"
// @Success      200            {object}  response.UnregisterResponse
// @Failure      400            {object}  response.Err
// @Failure      401            {object}  response.Err
// @Failure      403            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /events/{eventID}/registrations/{participantID} [delete]
// @Security BearerAuth
func (h *RegistrationHandler) HandleUnregister(ctx *gin.Context) {
	identity, respErr := identityFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := paramID(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	participantID, respErr := paramID(ctx, "participantID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	res, err := h.svc.Cancel(ctx.Request.Context(), identity, eventID, participantID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUnregister -> h.svc.Cancel", err)
		return
	}

	ctx.JSON(http.StatusOK, response.UnregisterResponse{Message: res.Message})
}

// HandleListReservations godoc
// @Summary      List the live reservations of the member
// @Tags         reservations
// @Produce      json
// @Param        eventID             path      int   true   "event ID"
// @Param        include_dependents  query     bool  false  "also list the member's dependents"
// @Success      200                 {object}  response.ReservationsResponse
// @Failure      400                 {object}  response.Err
// @Failure      401                 {object}  response.Err
// @Failure      404                 {object}  response.Err
// @Failure      500                 {object}  response.Err
// @Router       /events/{eventID}/reservations [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleListReservations(ctx *gin.Context) {
	identity, respErr := identityFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := paramID(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	includeDependents, err := boolQuery(ctx, "include_dependents")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reservations, err := h.rSvc.ListReservations(ctx.Request.Context(), identity, eventID, includeDependents)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListReservations -> h.rSvc.ListReservations", err)
		return
	}

	ctx.JSON(http.StatusOK, response.ReservationsResponse{Reservations: reservations})
}

// HandleListOccurrences godoc
// @Summary      List the sessions of an event
// @Tags         events
// @Produce      json
// @Param        eventID       path      int   true   "event ID"
// @Param        include_past  query     bool  false  "also list sessions that already started"
// @Param        limit         query     int   false  "maximum number of sessions"
// @Success      200           {object}  response.OccurrencesResponse
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /events/{eventID}/occurrences [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleListOccurrences(ctx *gin.Context) {
	eventID, respErr := paramID(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	includePast, err := boolQuery(ctx, "include_past")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	limit := maxOccurrencesListed
	if raw := ctx.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxOccurrencesListed {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("limit must be between 1 and %d", maxOccurrencesListed)))
			return
		}
	}

	event, occurrences, err := h.rSvc.ListOccurrences(ctx.Request.Context(), eventID, includePast, limit)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListOccurrences -> h.rSvc.ListOccurrences", err)
		return
	}

	ctx.JSON(http.StatusOK, response.OccurrencesResponse{
		EventID:                    event.ID,
		RequireOccurrenceSelection: event.RequireOccurrenceSelection,
		Occurrences:                occurrences,
	})
}

// HandleListParticipants godoc
// @Summary      List the participants the member may register
// @Description  The member and their dependents, with eligibility and registration status for the event.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  response.ParticipantsResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/participants [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleListParticipants(ctx *gin.Context) {
	identity, respErr := identityFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := paramID(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	candidates, err := h.rSvc.ListCandidates(ctx.Request.Context(), identity, eventID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListParticipants -> h.rSvc.ListCandidates", err)
		return
	}

	ctx.JSON(http.StatusOK, response.ParticipantsResponse{Participants: candidates})
}

// HandleRegistrationHistory godoc
// @Summary      Status history of a registration
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path      int  true  "registration ID"
// @Success      200             {object}  response.HistoryResponse
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      403             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /registrations/{registrationID}/history [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleRegistrationHistory(ctx *gin.Context) {
	identity, respErr := identityFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registrationID, respErr := paramID(ctx, "registrationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	transitions, err := h.rSvc.History(ctx.Request.Context(), identity, registrationID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRegistrationHistory -> h.rSvc.History", err)
		return
	}

	ctx.JSON(http.StatusOK, response.HistoryResponse{Transitions: transitions})
}

func boolQuery(ctx *gin.Context, name string) (bool, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return false, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", name, raw)
	}

	return v, nil
}

func toRegisterResponse(res service.RegisterResult) response.RegisterResponse {
	resp := response.RegisterResponse{
		RegistrationID:    res.Registration.ID,
		Disposition:       string(res.Registration.Status),
		Message:           res.Message,
		Reregistered:      res.Reregistered,
		Remaining:         res.Capacity.Remaining,
		WaitlistRemaining: res.Capacity.WaitlistRemaining,
		PaymentError:      res.Payment.PaymentError,
		PaymentEmailError: res.Payment.EmailError,
	}

	if res.Payment.Required {
		resp.Payment = &response.PaymentSummary{
			CheckoutURL:     res.Payment.CheckoutURL,
			AmountLabel:     res.Payment.AmountLabel,
			AmountCents:     res.Payment.AmountCents,
			Currency:        res.Payment.Currency,
			OccurrenceCount: res.Payment.OccurrenceCount,
			Delivery:        res.Payment.Delivery,
			Sent:            res.Payment.Sent,
		}
	}

	return resp
}

func toUpdateResponse(res service.RegisterResult) response.UpdateResponse {
	return response.UpdateResponse{
		RegistrationID: res.Registration.ID,
		Status:         res.Registration.Status,
		Assignments:    res.Registration.Assignment,
		Note:           res.Registration.Note,
		Updated: response.Updated{
			Assignments: res.Changes.Assignment,
			Note:        res.Changes.Note,
		},
		Message: res.Message,
	}
}
