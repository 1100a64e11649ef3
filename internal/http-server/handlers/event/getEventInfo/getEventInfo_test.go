package getEventInfo

import (
	"encoding/json"
	"errors"
	"eventManager/internal/http-server/handlers/event/getEventInfo/mocks"
	"eventManager/internal/lib/logger/handlers/slogdiscard"
	"eventManager/internal/models"
	"eventManager/internal/storage"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetEventInfoHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	start := time.Date(2025, 12, 25, 18, 0, 0, 0, time.UTC)
	testEvent := &models.Event{
		ID:        1,
		Name:      "Go Meetup",
		StartDate: start,
		EndDate:   start.Add(2 * time.Hour),
		Location:  "Berlin",
		CreatedAt: start.Add(-48 * time.Hour),
		UpdatedAt: start.Add(-48 * time.Hour),
	}

	testCases := []struct {
		name           string
		eventID        string
		mockSetup      func(m *mocks.EventGetter)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:    "Success",
			eventID: "1",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("Event", mock.Anything, int64(1)).Return(testEvent, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var event models.Event
				require.NoError(t, json.Unmarshal([]byte(body), &event))

				assert.Equal(t, int64(1), event.ID)
				assert.Equal(t, "Go Meetup", event.Name)
				assert.True(t, event.StartDate.Equal(start))
				assert.NotContains(t, body, `"status"`)
			},
		},
		{
			name:    "Not found",
			eventID: "42",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("Event", mock.Anything, int64(42)).
					Return(nil, fmt.Errorf("storage.postgres.Event: %w", storage.ErrEventNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
		{
			name:           "Invalid id",
			eventID:        "abc",
			mockSetup:      func(m *mocks.EventGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event id format"}`,
		},
		{
			name:    "Storage failure",
			eventID: "1",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("Event", mock.Anything, int64(1)).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get event"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewEventGetter(t)
			tc.mockSetup(mockGetter)

			r := chi.NewRouter()
			r.Get("/events/{id}", New(logger, mockGetter))

			req, err := http.NewRequest(http.MethodGet, "/events/"+tc.eventID, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
