// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Handler serves one kind; the router mounts one handler per kind.
type Handler struct {
	service *Service
	kind    Kind
}

// NewHandler constructs a [Handler] for kind.
func NewHandler(service *Service, kind Kind) *Handler {
	return &Handler{service: service, kind: kind}
}

// Routes returns the router for the handler's kind.
//
// # Endpoints
//   - POST   /               : Create.
//   - GET    /user/{userID}  : List a user's items.
//   - PATCH  /{postID}       : Edit own item.
//   - DELETE /{postID}       : Delete own item.
func (handler *Handler) Routes(guard middleware.Guard) chi.Router {
	router := chi.NewRouter()

	router.With(guard.Optional).Get("/user/{userID}", handler.listByUser)

	router.Group(func(r chi.Router) {
		r.Use(guard.Required)
		r.Post("/", handler.create)
		r.Patch("/{postID}", handler.update)
		r.Delete("/{postID}", handler.delete)
	})

	return router
}

type contentRequest struct {
	Content string `json:"content"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.Create(request.Context(), ownerID, handler.kind, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

func (handler *Handler) listByUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "userID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	posts, total, err := handler.service.ListByOwner(request.Context(), handler.kind, userID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, page.Meta(total))
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	postID, err := requestutil.ID(request, "postID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.Update(request.Context(), handler.kind, actorID, postID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	postID, err := requestutil.ID(request, "postID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), handler.kind, actorID, postID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
