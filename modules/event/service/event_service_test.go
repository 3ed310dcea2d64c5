package service

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"eventhub/core/errors"
	"eventhub/modules/event/dto"
	"eventhub/modules/event/entity"

	"github.com/google/uuid"
)

type fakeEventRepo struct {
	events      map[uuid.UUID]*entity.EventWithSeats
	categories  map[uuid.UUID][]string
	createCalls int
	deleteCalls int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:     make(map[uuid.UUID]*entity.EventWithSeats),
		categories: make(map[uuid.UUID][]string),
	}
}

func (f *fakeEventRepo) Create(_ context.Context, event *entity.Event, _ []uuid.UUID) (*entity.EventWithSeats, error) {
	f.createCalls++
	stored := &entity.EventWithSeats{Event: *event}
	stored.ID = uuid.New()
	f.events[stored.ID] = stored
	copied := *stored
	return &copied, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.EventWithSeats, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *entity.Event, _ []uuid.UUID) (*entity.EventWithSeats, error) {
	stored := f.events[event.ID]
	stored.Event = *event
	copied := *stored
	return &copied, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleteCalls++
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) ListPublic(_ context.Context) ([]entity.EventWithSeats, error) {
	var out []entity.EventWithSeats
	for _, e := range f.events {
		if e.IsPublic {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListByOrganizer(_ context.Context, organizerID uuid.UUID) ([]entity.EventWithSeats, error) {
	var out []entity.EventWithSeats
	for _, e := range f.events {
		if e.OrganizerID == organizerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

// Search mirrors the SQL semantics: case-insensitive substring over the
// textual columns, every tag matched against the event's category names.
func (f *fakeEventRepo) Search(_ context.Context, query string, tags []string) ([]entity.EventWithSeats, error) {
	var out []entity.EventWithSeats
	for _, e := range f.events {
		if !e.IsPublic {
			continue
		}
		if query != "" && !matchesText(&e.Event, query) {
			continue
		}
		if !hasAllTags(f.categories[e.ID], tags) {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func matchesText(e *entity.Event, query string) bool {
	q := strings.ToLower(query)
	fields := []*string{&e.Title, e.Description, e.Wishlist, e.AddressLine1, e.AddressLine2}
	for _, field := range fields {
		if field != nil && strings.Contains(strings.ToLower(*field), q) {
			return true
		}
	}
	return false
}

func hasAllTags(names []string, tags []string) bool {
	for _, tag := range tags {
		found := false
		for _, name := range names {
			if strings.EqualFold(name, tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakeEventRepo) GetCategoriesForEvent(_ context.Context, _ uuid.UUID) ([]entity.CategoryRef, error) {
	return nil, nil
}

func (f *fakeEventRepo) GetCategoriesForEvents(_ context.Context, _ []uuid.UUID) (map[uuid.UUID][]entity.CategoryRef, error) {
	return map[uuid.UUID][]entity.CategoryRef{}, nil
}

type fakeUserDirectory struct {
	admins map[uuid.UUID]bool
}

func (f *fakeUserDirectory) IsUserAdmin(_ context.Context, userID uuid.UUID) (bool, error) {
	return f.admins[userID], nil
}

func intPtr(v int) *int { return &v }

func validCreateRequest() *dto.CreateEventRequest {
	start := time.Now().Add(24 * time.Hour)
	return &dto.CreateEventRequest{
		Title:    "Tech Conference",
		StartsAt: start,
		EndsAt:   start.Add(2 * time.Hour),
	}
}

func TestCreateRejectsInvertedWindow(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, &fakeUserDirectory{})

	start := time.Now().Add(24 * time.Hour)
	tests := []struct {
		name   string
		endsAt time.Time
	}{
		{"end before start", start.Add(-time.Hour)},
		{"end equals start", start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			req.StartsAt = start
			req.EndsAt = tt.endsAt

			_, appErr := svc.Create(context.Background(), uuid.New(), req)
			if appErr == nil || appErr.Code != errors.ErrInvalidInput {
				t.Fatalf("Create() error = %v, want %s", appErr, errors.ErrInvalidInput)
			}
		})
	}

	if repo.createCalls != 0 {
		t.Errorf("repo.Create called %d times, want 0", repo.createCalls)
	}
}

func TestCreateRejectsNonPositiveCapacity(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, &fakeUserDirectory{})

	req := validCreateRequest()
	req.Capacity = intPtr(0)

	_, appErr := svc.Create(context.Background(), uuid.New(), req)
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("Create() error = %v, want %s", appErr, errors.ErrInvalidInput)
	}
	if repo.createCalls != 0 {
		t.Errorf("repo.Create called %d times, want 0", repo.createCalls)
	}
}

func TestCreateDefaultsToPublic(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, &fakeUserDirectory{})

	resp, appErr := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	if appErr != nil {
		t.Fatalf("Create() error = %v", appErr)
	}
	if !resp.IsPublic {
		t.Error("is_public = false, want true by default")
	}
}

func seedEvent(repo *fakeEventRepo, organizerID uuid.UUID) uuid.UUID {
	id := uuid.New()
	start := time.Now().Add(24 * time.Hour)
	repo.events[id] = &entity.EventWithSeats{Event: entity.Event{
		ID:          id,
		Title:       "Meetup",
		StartsAt:    start,
		EndsAt:      start.Add(time.Hour),
		IsPublic:    true,
		OrganizerID: organizerID,
	}}
	return id
}

func TestDeleteAuthorization(t *testing.T) {
	organizerID := uuid.New()
	adminID := uuid.New()
	strangerID := uuid.New()
	directory := &fakeUserDirectory{admins: map[uuid.UUID]bool{adminID: true}}

	tests := []struct {
		name     string
		actorID  uuid.UUID
		wantCode errors.ErrorCode
	}{
		{"organizer may delete", organizerID, ""},
		{"admin may delete", adminID, ""},
		{"stranger is refused", strangerID, errors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeEventRepo()
			eventID := seedEvent(repo, organizerID)
			svc := NewEventService(repo, directory)

			appErr := svc.Delete(context.Background(), tt.actorID, eventID)
			if tt.wantCode == "" {
				if appErr != nil {
					t.Fatalf("Delete() error = %v, want nil", appErr)
				}
				if repo.deleteCalls != 1 {
					t.Errorf("repo.Delete called %d times, want 1", repo.deleteCalls)
				}
				return
			}
			if appErr == nil || appErr.Code != tt.wantCode {
				t.Fatalf("Delete() error = %v, want %s", appErr, tt.wantCode)
			}
			if repo.deleteCalls != 0 {
				t.Errorf("repo.Delete called %d times, want 0", repo.deleteCalls)
			}
		})
	}
}

func TestUpdateByNonOrganizerForbidden(t *testing.T) {
	organizerID := uuid.New()
	adminID := uuid.New()
	repo := newFakeEventRepo()
	eventID := seedEvent(repo, organizerID)
	svc := NewEventService(repo, &fakeUserDirectory{admins: map[uuid.UUID]bool{adminID: true}})

	start := time.Now().Add(48 * time.Hour)
	req := &dto.UpdateEventRequest{
		Title:    "Renamed",
		StartsAt: start,
		EndsAt:   start.Add(time.Hour),
	}

	// Admins get delete rights, not edit rights.
	_, appErr := svc.Update(context.Background(), adminID, eventID, req)
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("Update() error = %v, want %s", appErr, errors.ErrForbidden)
	}
	if repo.events[eventID].Title != "Meetup" {
		t.Errorf("title = %q, want unchanged", repo.events[eventID].Title)
	}
}

func TestDeleteUnknownEvent(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), &fakeUserDirectory{})

	appErr := svc.Delete(context.Background(), uuid.New(), uuid.New())
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("Delete() error = %v, want %s", appErr, errors.ErrNotFound)
	}
}

func seedTitledEvent(repo *fakeEventRepo, title string, categories ...string) uuid.UUID {
	id := seedEvent(repo, uuid.New())
	repo.events[id].Title = title
	repo.categories[id] = categories
	return id
}

func TestSearchMatchesSubstring(t *testing.T) {
	repo := newFakeEventRepo()
	wantID := seedTitledEvent(repo, "Tech Conference")
	seedTitledEvent(repo, "Garden Party")
	svc := NewEventService(repo, &fakeUserDirectory{})

	// Matching is case-insensitive in both directions.
	for _, query := range []string{"conf", "CONF", "tech conf"} {
		t.Run(query, func(t *testing.T) {
			results, appErr := svc.Search(context.Background(), &dto.SearchEventsRequest{Query: query})
			if appErr != nil {
				t.Fatalf("Search(%q) error = %v", query, appErr)
			}
			if len(results) != 1 {
				t.Fatalf("Search(%q) returned %d events, want 1", query, len(results))
			}
			if results[0].ID != wantID.String() {
				t.Errorf("Search(%q) returned %q, want the Tech Conference event", query, results[0].Title)
			}
		})
	}

	results, appErr := svc.Search(context.Background(), &dto.SearchEventsRequest{Query: "symposium"})
	if appErr != nil {
		t.Fatalf("Search() error = %v", appErr)
	}
	if len(results) != 0 {
		t.Errorf("Search(%q) returned %d events, want 0", "symposium", len(results))
	}
}

func TestSearchIntersectsTags(t *testing.T) {
	repo := newFakeEventRepo()
	wantID := seedTitledEvent(repo, "Tech Conference", "Music", "Tech")
	seedTitledEvent(repo, "Concert", "Music")
	svc := NewEventService(repo, &fakeUserDirectory{})

	// Every tag must match; whitespace around tags is trimmed.
	results, appErr := svc.Search(context.Background(), &dto.SearchEventsRequest{Tags: " music , tech "})
	if appErr != nil {
		t.Fatalf("Search() error = %v", appErr)
	}
	if len(results) != 1 {
		t.Fatalf("Search() returned %d events, want 1", len(results))
	}
	if results[0].ID != wantID.String() {
		t.Errorf("Search() returned %q, want the event carrying both tags", results[0].Title)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "music", []string{"music"}},
		{"trims whitespace", " music , tech ", []string{"music", "tech"}},
		{"drops empties", "music,,tech,", []string{"music", "tech"}},
		{"only separators", " , ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTags(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTags(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
