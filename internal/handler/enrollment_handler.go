package handler

import (
	"errors"
	"net/http"

	"nexora/internal/app/enrollment"
	"nexora/internal/pkg/auth/jwt"
	"nexora/internal/pkg/errs"
	"nexora/internal/pkg/logx"
	"nexora/internal/pkg/resp"
)

// HandleEnrollFreeCourses enrolls the signed-in user into the free courses
// in their cart. The request body is ignored.
func HandleEnrollFreeCourses(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := jwt.GetClaimsFromContext(r)
		if claims == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		result, err := deps.Enrollment.EnrollFreeCourses(r.Context(), claims.UserID())
		switch {
		case err == nil:
			resp.RespondSuccess(w, r, result)
		case errors.Is(err, enrollment.ErrNoFreeCourses):
			resp.RespondError(w, r, errs.NewError(errs.ErrNoFreeCourses))
		case errors.Is(err, enrollment.ErrInvalidUserID):
			logx.Ctx(r.Context()).Warn().Str("user_id", claims.UserID()).Msg("Access token subject is not a user id.")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
		case errors.Is(err, enrollment.ErrCourseRemoved):
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
		case errors.Is(err, enrollment.ErrAlreadyOwned):
			logx.Ctx(r.Context()).Warn().Str("user_id", claims.UserID()).Msg("Free enrollment kept racing another purchase.")
			resp.RespondError(w, r, errs.NewError(errs.ErrEnrollmentConflict))
		default:
			logx.Ctx(r.Context()).Error().
				Err(err).
				Str("error_kind", string(errs.KindInternal)).
				Str("user_id", claims.UserID()).
				Msg("Free enrollment failed.")
			resp.RespondError(w, r, errs.NewError(errs.ErrDatabase))
		}
	}
}
