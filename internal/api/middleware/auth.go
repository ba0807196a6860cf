package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vietanh2810/occurrence-registration-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/occurrence-registration-api/internal/pkg/jwthelper"
)

// ContextKeyMemberID holds the authenticated member id (uint) in the gin
// context.
const ContextKeyMemberID = "memberID"

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid or expired token")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid bearer token and stores the
// member id of the token in the context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token, ctx.Request.UserAgent())
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(errInvalidToken))
			return
		}

		ctx.Set(ContextKeyMemberID, claims.MemberID)
		ctx.Next()
	}
}

// bearerToken reads the Authorization header. Websocket handshakes from a
// browser cannot set headers and pass the token as access_token instead.
func bearerToken(ctx *gin.Context) string {
	scheme, token, found := strings.Cut(ctx.GetHeader("Authorization"), " ")
	if found && strings.EqualFold(scheme, "Bearer") {
		return token
	}

	if websocket.IsWebSocketUpgrade(ctx.Request) {
		return ctx.Query("access_token")
	}

	return ""
}
