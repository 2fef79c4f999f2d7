// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Handler exposes the ledger over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Route shorthands, e.g. POST /likes/toggle/v/{targetID}.
var kindAliases = map[string]TargetKind{
	"v": KindVideo,
	"c": KindComment,
	"t": KindTweet,
	"p": KindPost,
}

// Routes returns the like router.
//
// # Endpoints
//   - POST /toggle/{kind}/{targetID} : Toggle a like (kind or v|c|t|p).
//   - GET  /count/{kind}/{targetID}  : Like count.
//   - GET  /videos                   : Videos liked by the caller.
//   - GET  /?kind=Comment            : Targets of any kind liked by the caller.
func (handler *Handler) Routes(guard middleware.Guard) chi.Router {
	router := chi.NewRouter()

	router.With(guard.Optional).Get("/count/{kind}/{targetID}", handler.count)

	router.Group(func(r chi.Router) {
		r.Use(guard.Required)
		r.Post("/toggle/{kind}/{targetID}", handler.toggle)
		r.Get("/videos", handler.likedVideos)
		r.Get("/", handler.liked)
	})

	return router
}

func kindParam(request *http.Request) (TargetKind, error) {
	raw := requestutil.Param(request, "kind")
	if kind, ok := kindAliases[raw]; ok {
		return kind, nil
	}
	return ParseTargetKind(raw)
}

/*
Toggle flips the caller's like on a target.

POST /api/v1/likes/toggle/{kind}/{targetID}

Response:
  - 200: ToggleResult
  - 400: Unknown kind or malformed id
  - 404: Target does not exist
*/
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	kind, err := kindParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID, err := requestutil.ID(request, "targetID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Toggle(request.Context(), actorID, targetID, kind)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// GET /api/v1/likes/count/{kind}/{targetID}
func (handler *Handler) count(writer http.ResponseWriter, request *http.Request) {
	kind, err := kindParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID, err := requestutil.ID(request, "targetID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, err := handler.service.Count(request.Context(), targetID, kind)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int64{"count": count})
}

func (handler *Handler) likedVideos(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, KindVideo)
}

func (handler *Handler) liked(writer http.ResponseWriter, request *http.Request) {
	kind := KindVideo
	if raw := request.URL.Query().Get("kind"); raw != "" {
		parsed, err := ParseTargetKind(raw)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		kind = parsed
	}
	handler.list(writer, request, kind)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, kind TargetKind) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	entries, total, err := handler.service.ListLiked(request.Context(), actorID, kind, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, page.Meta(total))
}
