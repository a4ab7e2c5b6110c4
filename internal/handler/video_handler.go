package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"nexora/internal/app/videotoken"
	"nexora/internal/pkg/errs"
	"nexora/internal/pkg/logx"
	"nexora/internal/pkg/req"
	"nexora/internal/pkg/resp"
)

// VideoTokenInput is the JSON body of a video token request.
type VideoTokenInput struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName,omitempty"`
}

// VideoTokenResponse carries the issued token.
type VideoTokenResponse struct {
	Token string `json:"token"`
}

// HandleIssueVideoToken issues a signed video room token for the posted
// room and user.
func HandleIssueVideoToken(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input VideoTokenInput
		if customErr := req.BindFunctionJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		token, err := deps.Issuer.Issue(r.Context(), videotoken.Request{
			RoomID:   input.RoomID,
			UserID:   input.UserID,
			UserName: input.UserName,
		})
		if err != nil {
			customErr := videoTokenError(err)

			event := logx.Ctx(r.Context()).Error()
			if customErr.Kind == errs.KindValidation {
				event = logx.Ctx(r.Context()).Warn()
			}
			event.Err(err).
				Str("error_kind", string(customErr.Kind)).
				Str("room_id", input.RoomID).
				Msg("Video token request failed.")

			resp.RespondError(w, r, customErr)
			return
		}

		logx.Ctx(r.Context()).Info().
			Str("room_id", input.RoomID).
			Str("user_id", input.UserID).
			Msg("Video token issued.")

		resp.RespondSuccess(w, r, VideoTokenResponse{Token: token})
	}
}

func videoTokenError(err error) *errs.CustomError {
	var (
		validationErr *videotoken.ValidationError
		signingErr    *videotoken.SigningError
	)

	switch {
	case errors.As(err, &validationErr):
		return errs.NewError(errs.ErrVideoTokenParams, strings.Join(validationErr.Fields, ", "))
	case errors.Is(err, videotoken.ErrConfiguration):
		return errs.NewError(errs.ErrVideoCredentials)
	case errors.As(err, &signingErr):
		return errs.NewError(errs.ErrVideoSigning)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errs.NewError(errs.ErrRequestCanceled)
	default:
		return errs.NewError(errs.ErrUnknown, err)
	}
}
