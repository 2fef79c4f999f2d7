// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"
)

// Repository defines the data access contract for the ledger.
type Repository interface {

	/*
		DeleteLike removes the actor's like on a target.

		Returns:
		  - bool: True if a like row existed and was removed
		  - error: Persistence failures
	*/
	DeleteLike(ctx context.Context, actorID, targetID string, kind TargetKind) (bool, error)

	/*
		InsertLike records a like. An existing row for the same tuple is
		turned into a like instead of failing, so a lost race still reads
		as liked.
	*/
	InsertLike(ctx context.Context, record *Record) error

	// CountLikes returns the number of like rows for a target.
	CountLikes(ctx context.Context, targetID string, kind TargetKind) (int64, error)

	// ListByActor returns all of the actor's likes of one kind.
	ListByActor(ctx context.Context, actorID string, kind TargetKind) ([]*Record, error)

	// CountForOwner counts likes on targets of one kind owned by ownerID.
	CountForOwner(ctx context.Context, ownerID string, kind TargetKind) (int64, error)
}
