// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidtube/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidtube/internal/platform/request"
	"github.com/taibuivan/vidtube/internal/platform/respond"
	"github.com/taibuivan/vidtube/pkg/pagination"
)

// Handler exposes the subscription graph over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the subscription router.
//
// # Endpoints
//   - POST /c/{channelID}         : Toggle the caller's subscription.
//   - GET  /c/{channelID}         : Subscribers of a channel.
//   - GET  /u/{subscriberID}      : Channels a user follows.
//   - GET  /c/{channelID}/profile : Channel page by id.
//   - GET  /channel/{username}    : Channel page by username.
func (handler *Handler) Routes(guard middleware.Guard) chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(guard.Optional)
		r.Get("/c/{channelID}", handler.subscribers)
		r.Get("/u/{subscriberID}", handler.subscriptions)
		r.Get("/c/{channelID}/profile", handler.profileByID)
		r.Get("/channel/{username}", handler.profileByUsername)
	})

	router.With(guard.Required).Post("/c/{channelID}", handler.toggle)

	return router
}

func viewer(request *http.Request) string {
	if principal := requestutil.Principal(request); principal != nil {
		return principal.UserID
	}
	return ""
}

/*
Toggle flips the caller's subscription to a channel.

POST /api/v1/subscriptions/c/{channelID}

Response:
  - 200: ToggleResult
  - 400: Self subscription
  - 404: Unknown channel
*/
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	subscriberID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	channelID, err := requestutil.ID(request, "channelID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Toggle(request.Context(), subscriberID, channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

func (handler *Handler) subscribers(writer http.ResponseWriter, request *http.Request) {
	channelID, err := requestutil.ID(request, "channelID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	members, total, err := handler.service.ListSubscribers(request.Context(), channelID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, members, page.Meta(total))
}

func (handler *Handler) subscriptions(writer http.ResponseWriter, request *http.Request) {
	subscriberID, err := requestutil.ID(request, "subscriberID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	members, total, err := handler.service.ListSubscriptions(request.Context(), subscriberID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, members, page.Meta(total))
}

func (handler *Handler) profileByID(writer http.ResponseWriter, request *http.Request) {
	channelID, err := requestutil.ID(request, "channelID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.ChannelProfile(request.Context(), channelID, viewer(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

func (handler *Handler) profileByUsername(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.service.ChannelByUsername(request.Context(), requestutil.Param(request, "username"), viewer(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
