// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Handler implements the playlist HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the playlist router.
//
// # Endpoints
//   - POST   /                              : Create.
//   - GET    /user/{userID}                 : A user's playlists.
//   - GET    /{playlistID}                  : Detail with videos.
//   - PATCH  /{playlistID}                  : Rename / describe.
//   - DELETE /{playlistID}                  : Delete.
//   - PATCH  /add/{videoID}/{playlistID}    : Add a video.
//   - PATCH  /remove/{videoID}/{playlistID} : Remove a video.
func (handler *Handler) Routes(guard middleware.Guard) chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(guard.Optional)
		r.Get("/user/{userID}", handler.listByUser)
		r.Get("/{playlistID}", handler.get)
	})

	router.Group(func(r chi.Router) {
		r.Use(guard.Required)
		r.Post("/", handler.create)
		r.Patch("/{playlistID}", handler.update)
		r.Delete("/{playlistID}", handler.delete)
		r.Patch("/add/{videoID}/{playlistID}", handler.addVideo)
		r.Patch("/remove/{videoID}/{playlistID}", handler.removeVideo)
	})

	return router
}

type detailsRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input detailsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.Create(request.Context(), ownerID, Details(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, playlist)
}

func (handler *Handler) listByUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "userID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	playlists, total, err := handler.service.ListByOwner(request.Context(), userID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, playlists, page.Meta(total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	playlistID, err := requestutil.ID(request, "playlistID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var viewerID string
	if principal := requestutil.Principal(request); principal != nil {
		viewerID = principal.UserID
	}

	playlist, err := handler.service.Get(request.Context(), playlistID, viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlistID, err := requestutil.ID(request, "playlistID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input detailsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.Update(request.Context(), actorID, playlistID, Details(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlistID, err := requestutil.ID(request, "playlistID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), actorID, playlistID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) addVideo(writer http.ResponseWriter, request *http.Request) {
	handler.membership(writer, request, handler.service.AddVideo)
}

func (handler *Handler) removeVideo(writer http.ResponseWriter, request *http.Request) {
	handler.membership(writer, request, handler.service.RemoveVideo)
}

type membershipFunc func(ctx context.Context, actorID, playlistID, videoID string) (*Playlist, error)

func (handler *Handler) membership(writer http.ResponseWriter, request *http.Request, apply membershipFunc) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID, err := requestutil.ID(request, "videoID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlistID, err := requestutil.ID(request, "playlistID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := apply(request.Context(), actorID, playlistID, videoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist)
}
