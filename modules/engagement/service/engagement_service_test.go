package service

import (
	"context"
	"testing"

	"eventhub/core/errors"
	"eventhub/modules/engagement/dto"
	"eventhub/modules/engagement/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ratingKey struct {
	userID  uuid.UUID
	eventID uuid.UUID
}

type fakeEngagementRepo struct {
	events   map[uuid.UUID]bool
	comments []entity.Comment
	ratings  map[ratingKey]*entity.Rating
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{
		events:  make(map[uuid.UUID]bool),
		ratings: make(map[ratingKey]*entity.Rating),
	}
}

func (f *fakeEngagementRepo) addEvent() uuid.UUID {
	id := uuid.New()
	f.events[id] = true
	return id
}

func (f *fakeEngagementRepo) AddComment(_ context.Context, comment *entity.Comment) (*entity.Comment, error) {
	if !f.events[comment.EventID] {
		return nil, &pq.Error{Code: "23503"}
	}
	created := *comment
	created.ID = uuid.New()
	f.comments = append(f.comments, created)
	return &created, nil
}

func (f *fakeEngagementRepo) ListCommentsByEvent(_ context.Context, eventID uuid.UUID) ([]entity.Comment, error) {
	var out []entity.Comment
	for _, c := range f.comments {
		if c.EventID == eventID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeEngagementRepo) UpsertRating(_ context.Context, rating *entity.Rating) (*entity.Rating, error) {
	if !f.events[rating.EventID] {
		return nil, &pq.Error{Code: "23503"}
	}
	key := ratingKey{userID: rating.UserID, eventID: rating.EventID}
	if existing, ok := f.ratings[key]; ok {
		existing.Score = rating.Score
		copied := *existing
		return &copied, nil
	}
	saved := *rating
	saved.ID = uuid.New()
	f.ratings[key] = &saved
	copied := saved
	return &copied, nil
}

func (f *fakeEngagementRepo) GetRatingSummary(_ context.Context, eventID uuid.UUID) (*entity.RatingSummary, error) {
	sum, count := 0, 0
	for _, r := range f.ratings {
		if r.EventID == eventID {
			sum += r.Score
			count++
		}
	}
	summary := &entity.RatingSummary{Count: count}
	if count > 0 {
		avg := float64(sum) / float64(count)
		summary.Average = &avg
	}
	return summary, nil
}

func (f *fakeEngagementRepo) EventExists(_ context.Context, eventID uuid.UUID) (bool, error) {
	return f.events[eventID], nil
}

func TestRateTwiceKeepsOneRow(t *testing.T) {
	repo := newFakeEngagementRepo()
	eventID := repo.addEvent()
	svc := NewEngagementService(repo)
	userID := uuid.New()

	if _, appErr := svc.RateEvent(context.Background(), userID, eventID, &dto.RateEventRequest{Score: 3}); appErr != nil {
		t.Fatalf("RateEvent(3) error = %v", appErr)
	}
	resp, appErr := svc.RateEvent(context.Background(), userID, eventID, &dto.RateEventRequest{Score: 5})
	if appErr != nil {
		t.Fatalf("RateEvent(5) error = %v", appErr)
	}

	if resp.Score != 5 {
		t.Errorf("score = %d, want 5", resp.Score)
	}
	if len(repo.ratings) != 1 {
		t.Errorf("rating rows = %d, want 1", len(repo.ratings))
	}

	summary, appErr := svc.GetRatingSummary(context.Background(), eventID)
	if appErr != nil {
		t.Fatalf("GetRatingSummary() error = %v", appErr)
	}
	if summary.Count != 1 || summary.Average == nil || *summary.Average != 5 {
		t.Errorf("summary = {count: %d, average: %v}, want {1, 5}", summary.Count, summary.Average)
	}
}

func TestRateOutOfRange(t *testing.T) {
	repo := newFakeEngagementRepo()
	eventID := repo.addEvent()
	svc := NewEngagementService(repo)

	for _, score := range []int{0, 6, -1} {
		_, appErr := svc.RateEvent(context.Background(), uuid.New(), eventID, &dto.RateEventRequest{Score: score})
		if appErr == nil || appErr.Code != errors.ErrInvalidInput {
			t.Errorf("RateEvent(%d) error = %v, want %s", score, appErr, errors.ErrInvalidInput)
		}
	}
	if len(repo.ratings) != 0 {
		t.Errorf("rating rows = %d, want 0", len(repo.ratings))
	}
}

func TestRateUnknownEvent(t *testing.T) {
	svc := NewEngagementService(newFakeEngagementRepo())

	_, appErr := svc.RateEvent(context.Background(), uuid.New(), uuid.New(), &dto.RateEventRequest{Score: 4})
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("RateEvent() error = %v, want %s", appErr, errors.ErrNotFound)
	}
}

func TestRatingSummaryAverages(t *testing.T) {
	repo := newFakeEngagementRepo()
	eventID := repo.addEvent()
	svc := NewEngagementService(repo)

	for _, score := range []int{4, 5} {
		if _, appErr := svc.RateEvent(context.Background(), uuid.New(), eventID, &dto.RateEventRequest{Score: score}); appErr != nil {
			t.Fatalf("RateEvent(%d) error = %v", score, appErr)
		}
	}

	summary, appErr := svc.GetRatingSummary(context.Background(), eventID)
	if appErr != nil {
		t.Fatalf("GetRatingSummary() error = %v", appErr)
	}
	if summary.Count != 2 || summary.Average == nil || *summary.Average != 4.5 {
		t.Errorf("summary = {count: %d, average: %v}, want {2, 4.5}", summary.Count, summary.Average)
	}
}

func TestAddCommentRequiresBody(t *testing.T) {
	repo := newFakeEngagementRepo()
	eventID := repo.addEvent()
	svc := NewEngagementService(repo)

	_, appErr := svc.AddComment(context.Background(), uuid.New(), eventID, &dto.AddCommentRequest{Body: "   "})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("AddComment() error = %v, want %s", appErr, errors.ErrInvalidInput)
	}
}

func TestAddCommentUnknownEvent(t *testing.T) {
	svc := NewEngagementService(newFakeEngagementRepo())

	_, appErr := svc.AddComment(context.Background(), uuid.New(), uuid.New(), &dto.AddCommentRequest{Body: "see you there"})
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("AddComment() error = %v, want %s", appErr, errors.ErrNotFound)
	}
}

func TestCommentsListedChronologically(t *testing.T) {
	repo := newFakeEngagementRepo()
	eventID := repo.addEvent()
	svc := NewEngagementService(repo)

	for _, body := range []string{"first", "second"} {
		if _, appErr := svc.AddComment(context.Background(), uuid.New(), eventID, &dto.AddCommentRequest{Body: body}); appErr != nil {
			t.Fatalf("AddComment(%q) error = %v", body, appErr)
		}
	}

	comments, appErr := svc.ListComments(context.Background(), eventID)
	if appErr != nil {
		t.Fatalf("ListComments() error = %v", appErr)
	}
	if len(comments) != 2 || comments[0].Body != "first" || comments[1].Body != "second" {
		t.Errorf("comments = %v, want [first second] in order", comments)
	}
}
