package dto

import (
	"time"

	"eventhub/modules/engagement/entity"
)

type AddCommentRequest struct {
	Body string `json:"body"`
}

type RateEventRequest struct {
	Score int `json:"score"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type RatingResponse struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	Score   int    `json:"score"`
}

type RatingSummaryResponse struct {
	EventID string   `json:"event_id"`
	Average *float64 `json:"average"`
	Count   int      `json:"count"`
}

func ToCommentResponse(c *entity.Comment) *CommentResponse {
	if c == nil {
		return nil
	}
	return &CommentResponse{
		ID:        c.ID.String(),
		EventID:   c.EventID.String(),
		UserID:    c.UserID.String(),
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

func ToCommentResponses(comments []entity.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, *ToCommentResponse(&comments[i]))
	}
	return out
}

func ToRatingResponse(r *entity.Rating) *RatingResponse {
	if r == nil {
		return nil
	}
	return &RatingResponse{
		EventID: r.EventID.String(),
		UserID:  r.UserID.String(),
		Score:   r.Score,
	}
}
