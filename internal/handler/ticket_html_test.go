package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/parkonic/ticket-portal/internal/model"
	"github.com/parkonic/ticket-portal/internal/repository"
)

func TestHomeRedirectsToOCRList(t *testing.T) {
	e := setup(t, new(MockTicketStore))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/ocr/tickets", rec.Header().Get("Location"))
}

func TestListPageRendersTickets(t *testing.T) {
	store := new(MockTicketStore)
	store.On("List", "omc_ticket").Return([]*model.Ticket{
		{ID: 1, PlateNumber: null.StringFrom("XYZ789"), Status: null.StringFrom("pending"),
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)
	e := setup(t, store)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/omc/tickets", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "OMC Tickets")
	assert.Contains(t, rec.Body.String(), "XYZ789")
	assert.Contains(t, rec.Body.String(), "pending")
	store.AssertExpectations(t)
}

func TestListPageUnknownType(t *testing.T) {
	e := setup(t, new(MockTicketStore))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oct/tickets", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateFormRedirectsToList(t *testing.T) {
	store := new(MockTicketStore)
	store.On("Create", "ocr_ticket", mock.MatchedBy(func(tk *model.Ticket) bool {
		return tk.PlateNumber.ValueOrZero() == "ABC123" && tk.Confidence.ValueOrZero() == 92
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Ticket).ID = 9
	}).Return(nil)
	e := setup(t, store)

	form := url.Values{}
	form.Set("plate_number", "ABC123")
	form.Set("confidence", "92")
	req := httptest.NewRequest(http.MethodPost, "/ocr/tickets/new", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/ocr/tickets", rec.Header().Get("Location"))
	store.AssertExpectations(t)
}

func TestEditPageNotFound(t *testing.T) {
	store := new(MockTicketStore)
	store.On("GetByID", "ocr_ticket", uint64(404)).Return(nil, repository.ErrTicketNotFound)
	e := setup(t, store)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ocr/tickets/404/edit", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	store.AssertExpectations(t)
}

func TestEditPagePrefillsForm(t *testing.T) {
	store := new(MockTicketStore)
	store.On("GetByID", "ocr_ticket", uint64(3)).Return(&model.Ticket{
		ID:          3,
		PlateNumber: null.StringFrom("ABC123"),
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil)
	e := setup(t, store)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ocr/tickets/3/edit", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Edit OCR ticket #3")
	assert.Contains(t, rec.Body.String(), `value="ABC123"`)
	store.AssertExpectations(t)
}

func TestDeleteFormRedirectsToList(t *testing.T) {
	store := new(MockTicketStore)
	store.On("Delete", "omc_ticket", uint64(4)).Return(nil)
	e := setup(t, store)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/omc/tickets/4/delete", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/omc/tickets", rec.Header().Get("Location"))
	store.AssertExpectations(t)
}
