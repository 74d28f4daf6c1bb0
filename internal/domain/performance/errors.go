package performance

import "errors"

var (
	ErrReviewNotFound          = errors.New("performance review not found")
	ErrReviewPeriodOverlap     = errors.New("a review already covers part of this period")
	ErrInvalidPeriod           = errors.New("invalid review period")
	ErrInvalidReviewTransition = errors.New("invalid review status transition")
	ErrReviewNotDraft          = errors.New("review is no longer a draft")
	ErrRatingsRequired         = errors.New("at least one rating is required before submitting")
	ErrNotReviewee             = errors.New("only the reviewee can acknowledge a review")
	ErrSelfReview              = errors.New("a reviewer cannot review themselves")
	ErrGoalNotFound            = errors.New("performance goal not found")
	ErrGoalFinished            = errors.New("goal is completed or cancelled")
	ErrNotGoalOwner            = errors.New("only the goal owner can update its progress")
)
