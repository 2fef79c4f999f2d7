// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package subscription maintains the follower graph between users and channels.

A channel is simply a user seen from the outside. Each edge is unique per
(subscriber, channel) pair and a user can never subscribe to themself; both
rules are enforced by the database as well as by the [Service].
*/
package subscription

import (
	"time"

	"github.com/taibuivan/vidtube/internal/view"
)

// # Domain Entities

// Edge is one subscriber → channel relationship.
type Edge struct {
	ID           string
	SubscriberID string
	ChannelID    string
	CreatedAt    time.Time
}

// State is the outcome of a toggle.
type State string

const (
	StateSubscribed   State = "subscribed"
	StateUnsubscribed State = "unsubscribed"
)

// ToggleResult reports the new state and the channel's recomputed audience.
type ToggleResult struct {
	State       State `json:"state"`
	Subscribers int64 `json:"subscribers"`
}

/*
Member is one row of a subscriber or subscription list: the counterpart of the
edge, seen through its public profile.
*/
type Member struct {
	Profile      *view.OwnerProfile `json:"profile"`
	SubscribedAt time.Time          `json:"subscribed_at"`

	userID string
}

func (member *Member) OwnerRef() string { return member.userID }

func (member *Member) AttachOwner(profile view.OwnerProfile) { member.Profile = &profile }

// ChannelProfile is a user's public page with its audience figures.
type ChannelProfile struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	FullName          string    `json:"full_name"`
	AvatarURL         string    `json:"avatar_url"`
	CoverImageURL     string    `json:"cover_image_url"`
	SubscriberCount   int64     `json:"subscriber_count"`
	SubscriptionCount int64     `json:"subscription_count"`
	IsSubscribed      bool      `json:"is_subscribed"`
	CreatedAt         time.Time `json:"created_at"`
}
