package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/occurrence-registration-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/occurrence-registration-api/internal/api/middleware"
	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
	"github.com/vietanh2810/occurrence-registration-api/internal/service"
)

var errNotAuthenticated = errors.New("not authenticated")

// identityFromContext turns the member id left by the auth middleware into
// the identity passed to every service call.
func identityFromContext(ctx *gin.Context) (domain.ParticipantIdentity, *response.Err) {
	memberID, ok := ctx.Get(middleware.ContextKeyMemberID)
	if !ok {
		return domain.ParticipantIdentity{}, response.ErrUnauthorized(errNotAuthenticated)
	}

	id, ok := memberID.(uint)
	if !ok || id == 0 {
		return domain.ParticipantIdentity{}, response.ErrUnauthorized(errNotAuthenticated)
	}

	return domain.ParticipantIdentity{MemberID: id}, nil
}

func paramID(ctx *gin.Context, name string) (uint, *response.Err) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s %q", name, raw))
	}

	return uint(id), nil
}

// renderServiceErr maps service errors to HTTP responses. Anything it does
// not recognise is a 500.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	var (
		ineligible *service.IneligibleError
		invalid    *service.ValidationError
	)

	switch {
	case errors.As(err, &ineligible):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrIneligible).WithCode("ineligible").WithDetails(ineligible.Reasons...))
	case errors.As(err, &invalid):
		response.RenderErr(ctx, response.ErrBadRequest(errors.New(invalid.Reason)).WithCode("invalid_input"))
	case errors.Is(err, service.ErrNotAuthorized):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotAuthorized))
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "id", ctx.Param("eventID")))
	case errors.Is(err, service.ErrParticipantNotFound):
		response.RenderErr(ctx, response.ErrNotFound("participant", "id", participantRef(ctx)))
	case errors.Is(err, service.ErrRegistrationNotFound):
		response.RenderErr(ctx, response.ErrNotFound("registration", "reference", registrationRef(ctx)))
	case errors.Is(err, service.ErrRegistrationClosed):
		response.RenderErr(ctx, response.ErrConflict(service.ErrRegistrationClosed.Error()).WithCode("registration_closed"))
	case errors.Is(err, service.ErrCapacityRejected):
		response.RenderErr(ctx, response.ErrConflict(service.ErrCapacityRejected.Error()).WithCode("capacity_rejected"))
	case errors.Is(err, service.ErrAlreadyRegistered):
		response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyRegistered.Error()).WithCode("already_registered"))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}

func participantRef(ctx *gin.Context) string {
	if id := ctx.Param("participantID"); id != "" {
		return id
	}
	if id, ok := ctx.Get(participantIDKey); ok {
		return fmt.Sprint(id)
	}

	return "?"
}

func registrationRef(ctx *gin.Context) string {
	if id := ctx.Param("registrationID"); id != "" {
		return id
	}

	return fmt.Sprintf("event %s, participant %s", ctx.Param("eventID"), participantRef(ctx))
}
