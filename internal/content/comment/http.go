// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Handler implements the comment HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the comment router.
//
// # Endpoints
//   - GET    /{videoID}   : Comments under a video.
//   - POST   /{videoID}   : Add a comment.
//   - PATCH  /c/{commentID} : Edit own comment.
//   - DELETE /c/{commentID} : Delete own comment.
func (handler *Handler) Routes(guard middleware.Guard) chi.Router {
	router := chi.NewRouter()

	router.With(guard.Optional).Get("/{videoID}", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(guard.Required)
		r.Post("/{videoID}", handler.add)
		r.Patch("/c/{commentID}", handler.update)
		r.Delete("/c/{commentID}", handler.delete)
	})

	return router
}

type contentRequest struct {
	Content string `json:"content"`
}

// GET /api/v1/comments/{videoID}
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	videoID, err := requestutil.ID(request, "videoID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var viewerID string
	if principal := requestutil.Principal(request); principal != nil {
		viewerID = principal.UserID
	}

	page := pagination.FromRequest(request)
	comments, total, err := handler.service.List(request.Context(), videoID, viewerID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, page.Meta(total))
}

// POST /api/v1/comments/{videoID}
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID, err := requestutil.ID(request, "videoID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Add(request.Context(), ownerID, videoID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

// PATCH /api/v1/comments/c/{commentID}
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.ID(request, "commentID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Update(request.Context(), actorID, commentID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// DELETE /api/v1/comments/c/{commentID}
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.ID(request, "commentID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), actorID, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
