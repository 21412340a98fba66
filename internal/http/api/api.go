package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/tawba/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/tawba/internal/model"
)

// APIError is returned by endpoint handlers. Kind is an optional
// machine-readable error class ("duplicate_log", "validation") so clients
// can render a specific message instead of a generic failure.
type APIError struct {
	Code    int
	Message string
	Kind    string
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type HandlerFuncWithAuth func(ctx *gin.Context, user *model.User) (any, *APIError)
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, ErrorBody{Error: "unauthorized"})
			return
		}

		result, apiErr := h(ctx, user)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, ErrorBody{Error: apiErr.Message, Kind: apiErr.Kind})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, ErrorBody{Error: apiErr.Message, Kind: apiErr.Kind})
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}
