// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/constants"
	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/pkg/pagination"
	"github.com/taibuivan/vidtube/pkg/pointer"
)

// Handler implements the video HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the video router.
//
// # Endpoints
//   - GET    /                          : Published feed (?owner_id=).
//   - POST   /                          : Publish (multipart).
//   - GET    /{videoID}                 : Detail; counts a view.
//   - PATCH  /{videoID}                 : Update metadata (multipart).
//   - DELETE /{videoID}                 : Delete.
//   - PATCH  /toggle/publish/{videoID}  : Flip publication state.
func (handler *Handler) Routes(guard middleware.Guard) chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(guard.Optional)
		r.Get("/", handler.feed)
		r.Get("/{videoID}", handler.get)
	})

	router.Group(func(r chi.Router) {
		r.Use(guard.Required)
		r.Post("/", handler.publish)
		r.Patch("/{videoID}", handler.update)
		r.Delete("/{videoID}", handler.delete)
		r.Patch("/toggle/publish/{videoID}", handler.togglePublish)
	})

	return router
}

// GET /api/v1/videos
func (handler *Handler) feed(writer http.ResponseWriter, request *http.Request) {
	filter := Filter{OwnerID: request.URL.Query().Get("owner_id")}
	if filter.OwnerID != "" {
		if _, err := requestutil.QueryID(request, "owner_id"); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	page := pagination.FromRequest(request)
	videos, total, err := handler.service.Feed(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, page.Meta(total))
}

/*
Publish uploads a new video.

POST /api/v1/videos

Request:
  - Body: multipart form (title, description, duration?, video_file, thumbnail)

Response:
  - 201: Video
  - 400: Validation failure
  - 413: Upload too large
*/
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := requestutil.ParseMultipart(writer, request, constants.MaxUploadBytes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := PublishInput{
		Title:       requestutil.FormValue(request, FieldTitle),
		Description: requestutil.FormValue(request, FieldDescription),
	}

	if raw := requestutil.FormValue(request, FieldDuration); raw != "" {
		duration, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respond.Error(writer, request, apperr.InvalidRequest("Invalid duration"))
			return
		}
		input.DurationSeconds = duration
	}

	videoFile, err := requestutil.FormFile(request, FieldVideoFile)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if videoFile != nil {
		defer videoFile.File.Close()
		input.VideoFile = videoFile.Object()
	}

	thumbnail, err := requestutil.FormFile(request, FieldThumbnail)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if thumbnail != nil {
		defer thumbnail.File.Close()
		input.Thumbnail = thumbnail.Object()
	}

	video, err := handler.service.Publish(request.Context(), ownerID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, video)
}

// GET /api/v1/videos/{videoID}
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	videoID, err := requestutil.ID(request, "videoID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var viewerID string
	if principal := requestutil.Principal(request); principal != nil {
		viewerID = principal.UserID
	}

	video, err := handler.service.Get(request.Context(), videoID, viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

// PATCH /api/v1/videos/{videoID}
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
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

	if err := requestutil.ParseMultipart(writer, request, constants.MaxImageBytes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if values, ok := request.MultipartForm.Value[FieldTitle]; ok && len(values) > 0 {
		input.Title = pointer.To(values[0])
	}
	if values, ok := request.MultipartForm.Value[FieldDescription]; ok && len(values) > 0 {
		input.Description = pointer.To(values[0])
	}

	thumbnail, err := requestutil.FormFile(request, FieldThumbnail)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if thumbnail != nil {
		defer thumbnail.File.Close()
		input.Thumbnail = thumbnail.Object()
	}

	video, err := handler.service.Update(request.Context(), actorID, videoID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

// DELETE /api/v1/videos/{videoID}
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
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

	if err := handler.service.Delete(request.Context(), actorID, videoID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// PATCH /api/v1/videos/toggle/publish/{videoID}
func (handler *Handler) togglePublish(writer http.ResponseWriter, request *http.Request) {
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

	video, err := handler.service.TogglePublish(request.Context(), actorID, videoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}
