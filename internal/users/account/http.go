// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/constants"
	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/internal/users/auth"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Handler implements the HTTP layer for self-service account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns the account router. Every endpoint requires a session.
//
// # Endpoints
//   - GET   /                 : Current account.
//   - PATCH /                 : Update full name and email.
//   - PATCH /avatar           : Replace the avatar (multipart "avatar").
//   - PATCH /cover-image      : Replace the cover (multipart "cover_image").
//   - POST  /change-password  : Change password.
//   - GET   /history          : Watch history (?oldest_first=true).
func (handler *Handler) Routes(guard middleware.Guard) chi.Router {
	router := chi.NewRouter()
	router.Use(guard.Required)

	router.Get("/", handler.get)
	router.Patch("/", handler.updateDetails)
	router.Patch("/avatar", handler.replaceAvatar)
	router.Patch("/cover-image", handler.replaceCover)
	router.Post("/change-password", handler.changePassword)
	router.Get("/history", handler.history)

	return router
}

type detailsRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateDetails replaces the caller's full name and email.

PATCH /api/v1/account

Response:
  - 200: User
  - 400: Validation failure
  - 409: Email already in use
*/
func (handler *Handler) updateDetails(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input detailsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateDetails(request.Context(), userID, DetailsInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, user, "Account details updated successfully")
}

func (handler *Handler) replaceAvatar(writer http.ResponseWriter, request *http.Request) {
	handler.replaceImage(writer, request, ImageAvatar, auth.FieldAvatar)
}

func (handler *Handler) replaceCover(writer http.ResponseWriter, request *http.Request) {
	handler.replaceImage(writer, request, ImageCover, auth.FieldCoverImage)
}

func (handler *Handler) replaceImage(writer http.ResponseWriter, request *http.Request, image Image, field string) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.ParseMultipart(writer, request, constants.MaxImageBytes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	upload, err := requestutil.RequiredFormFile(request, field)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer upload.File.Close()

	user, err := handler.accountService.ReplaceImage(request.Context(), userID, image, upload.Object())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(request.Context(), userID, input.OldPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, struct{}{}, "Password changed successfully")
}

/*
History lists the caller's watch history.

GET /api/v1/account/history?oldest_first=false&page=1&limit=20
*/
func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	oldestFirst := requestutil.QueryBool(request, "oldest_first", false)

	watched, total, err := handler.accountService.History(request.Context(), userID, oldestFirst, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, watched, page.Meta(total))
}
