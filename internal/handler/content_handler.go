package handler

import (
	"net/http"

	"nexora/internal/app/content"
	"nexora/internal/pkg/auth/jwt"
	"nexora/internal/pkg/errs"
	"nexora/internal/pkg/logx"
	"nexora/internal/pkg/req"
	"nexora/internal/pkg/resp"
)

// PresignUploadInput is the JSON body of an upload URL request.
type PresignUploadInput struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// HandlePresignContentUpload returns a time-limited URL the caller can PUT
// one content file to.
func HandlePresignContentUpload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := jwt.GetClaimsFromContext(r)
		if claims == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input PresignUploadInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := content.ValidateFileSize(input.FileSize); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := content.ValidateFileType(input.FileName, input.MimeType); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		fileKey := content.ObjectKey(claims.UserID(), input.FileName)

		url, err := deps.Storage.PresignUpload(
			r.Context(),
			fileKey,
			input.MimeType,
			input.FileSize,
			content.UploadURLDuration,
		)
		if err != nil {
			logx.Ctx(r.Context()).Error().Err(err).Str("file_key", fileKey).Msg("Failed to presign upload.")
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"presignedUrl": url,
			"filePath":     fileKey,
			"fileName":     input.FileName,
		})
	}
}

// HandleContentDownload redirects to a time-limited download URL for the
// object named by the "k" query parameter.
func HandleContentDownload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileKey := r.URL.Query().Get("k")
		if !content.IsValidKey(fileKey) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		url, err := deps.Storage.PresignDownload(r.Context(), fileKey, content.DownloadURLDuration)
		if err != nil {
			logx.Ctx(r.Context()).Error().Err(err).Str("file_key", fileKey).Msg("Failed to presign download.")
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		http.Redirect(w, r, url, http.StatusFound)
	}
}
