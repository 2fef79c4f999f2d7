// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Handler serves the caller's own channel dashboard.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the dashboard router.
//
// # Endpoints
//   - GET /stats  : Channel totals.
//   - GET /videos : Every video of the channel.
func (handler *Handler) Routes(guard middleware.Guard) chi.Router {
	router := chi.NewRouter()
	router.Use(guard.Required)

	router.Get("/stats", handler.stats)
	router.Get("/videos", handler.videos)

	return router
}

func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	channelID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.Stats(request.Context(), channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

func (handler *Handler) videos(writer http.ResponseWriter, request *http.Request) {
	channelID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	videos, total, err := handler.service.Videos(request.Context(), channelID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, page.Meta(total))
}
