package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicedash/internal/cache"
	"invoicedash/internal/model"
)

type mockOverview struct {
	mock.Mock
}

func (m *mockOverview) CardData(ctx context.Context) (*model.CardData, error) {
	ret := m.Called()
	cd, _ := ret.Get(0).(*model.CardData)
	return cd, ret.Error(1)
}

func (m *mockOverview) Latest(ctx context.Context, limit int) ([]model.LatestInvoice, error) {
	ret := m.Called(limit)
	rows, _ := ret.Get(0).([]model.LatestInvoice)
	return rows, ret.Error(1)
}

type mockRevenue struct {
	mock.Mock
}

func (m *mockRevenue) Fetch(ctx context.Context) ([]model.Revenue, error) {
	ret := m.Called()
	rows, _ := ret.Get(0).([]model.Revenue)
	return rows, ret.Error(1)
}

type mockCustomers struct {
	mock.Mock
}

func (m *mockCustomers) All(ctx context.Context) ([]model.CustomerField, error) {
	ret := m.Called()
	rows, _ := ret.Get(0).([]model.CustomerField)
	return rows, ret.Error(1)
}

func (m *mockCustomers) Filtered(ctx context.Context, query string) ([]model.CustomerSummary, error) {
	ret := m.Called(query)
	rows, _ := ret.Get(0).([]model.CustomerSummary)
	return rows, ret.Error(1)
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestOverviewHandler(t *testing.T) {
	t.Run("combines cards and latest invoices", func(t *testing.T) {
		reader := &mockOverview{}
		reader.On("CardData").Return(&model.CardData{NumberOfInvoices: 13, TotalPaidCents: 5000}, nil).Once()
		reader.On("Latest", latestCount).Return([]model.LatestInvoice{{Name: "Delba de Oliveira", AmountCents: 8945}}, nil).Once()
		h := OverviewHandler(reader, cache.NewRenderCache(8))

		w := get(h, "/dashboard")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

		var ov overview
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ov))
		require.NotNil(t, ov.Cards)
		assert.Equal(t, 13, ov.Cards.NumberOfInvoices)
		require.Len(t, ov.LatestInvoices, 1)
		assert.Equal(t, int64(8945), ov.LatestInvoices[0].AmountCents)

		assert.Equal(t, "HIT", get(h, "/dashboard").Header().Get("X-Cache"))
		reader.AssertExpectations(t)
	})

	t.Run("query failure is not cached", func(t *testing.T) {
		reader := &mockOverview{}
		reader.On("CardData").Return(nil, errors.New("db down")).Twice()
		reader.On("Latest", latestCount).Return(nil, nil).Maybe()
		h := OverviewHandler(reader, cache.NewRenderCache(8))

		w := get(h, "/dashboard")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")

		assert.Equal(t, http.StatusInternalServerError, get(h, "/dashboard").Code)
		reader.AssertExpectations(t)
	})
}

func TestRevenueHandler(t *testing.T) {
	t.Run("empty table renders an empty list", func(t *testing.T) {
		reader := &mockRevenue{}
		reader.On("Fetch").Return(nil, nil).Once()

		w := get(RevenueHandler(reader, cache.NewRenderCache(8)), RevenuePath)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("invalidation forces a refetch", func(t *testing.T) {
		c := cache.NewRenderCache(8)
		reader := &mockRevenue{}
		reader.On("Fetch").Return([]model.Revenue{{Month: "Jan", RevenueCents: 200000}}, nil).Twice()
		h := RevenueHandler(reader, c)

		assert.JSONEq(t, `[{"month":"Jan","revenue":200000}]`, get(h, RevenuePath).Body.String())
		assert.Equal(t, "HIT", get(h, RevenuePath).Header().Get("X-Cache"))

		c.Invalidate(RevenuePath)
		assert.Equal(t, "MISS", get(h, RevenuePath).Header().Get("X-Cache"))
		reader.AssertExpectations(t)
	})
}

func TestListCustomersHandler(t *testing.T) {
	t.Run("picker", func(t *testing.T) {
		reader := &mockCustomers{}
		reader.On("All").Return([]model.CustomerField{{ID: "c1", Name: "Lee Robinson"}}, nil)

		w := get(ListCustomersHandler(reader), "/dashboard/customers?fields=picker")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":"c1","name":"Lee Robinson"}]`, w.Body.String())
		reader.AssertNotCalled(t, "Filtered", mock.Anything)
	})

	t.Run("filtered with no matches", func(t *testing.T) {
		reader := &mockCustomers{}
		reader.On("Filtered", "zz").Return(nil, nil)

		w := get(ListCustomersHandler(reader), "/dashboard/customers?query=zz")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
		reader.AssertNotCalled(t, "All")
	})

	t.Run("store failure", func(t *testing.T) {
		reader := &mockCustomers{}
		reader.On("Filtered", "").Return(nil, errors.New("db down"))

		w := get(ListCustomersHandler(reader), "/dashboard/customers")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}
