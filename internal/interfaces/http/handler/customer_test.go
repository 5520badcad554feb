package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCustomerHandler_Create(t *testing.T) {
	t.Run("creates customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		handler := setupCustomerHandler(repo)
		accountID := uuid.New()

		repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

		router := setupTestRouter(accountID)
		router.POST("/customers", handler.Create)

		body, _ := json.Marshal(map[string]string{
			"name":  "Acme Corp",
			"email": "billing@acme.com",
		})
		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Acme Corp")
		repo.AssertExpectations(t)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		handler := setupCustomerHandler(repo)

		router := setupTestRouter(uuid.New())
		router.POST("/customers", handler.Create)

		body, _ := json.Marshal(map[string]string{"email": "billing@acme.com"})
		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects missing email", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		handler := setupCustomerHandler(repo)

		router := setupTestRouter(uuid.New())
		router.POST("/customers", handler.Create)

		body, _ := json.Marshal(map[string]string{"name": "No Email Co"})
		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("requires authentication", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		handler := setupCustomerHandler(repo)

		router := gin.New()
		router.POST("/customers", handler.Create)

		body, _ := json.Marshal(map[string]string{"name": "Acme Corp"})
		req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCustomerHandler_GetByID(t *testing.T) {
	t.Run("returns customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		handler := setupCustomerHandler(repo)
		accountID := uuid.New()
		customer := createTestCustomer(t, accountID, "Acme Corp")

		repo.On("FindByIDForAccount", mock.Anything, accountID, customer.ID).Return(customer, nil)

		router := setupTestRouter(accountID)
		router.GET("/customers/:id", handler.GetByID)

		req := httptest.NewRequest(http.MethodGet, "/customers/"+customer.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), customer.ID.String())
	})

	t.Run("returns 404 for unknown customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		handler := setupCustomerHandler(repo)
		accountID := uuid.New()

		repo.On("FindByIDForAccount", mock.Anything, accountID, mock.Anything).
			Return(nil, shared.ErrNotFound)

		router := setupTestRouter(accountID)
		router.GET("/customers/:id", handler.GetByID)

		req := httptest.NewRequest(http.MethodGet, "/customers/"+uuid.New().String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		handler := setupCustomerHandler(repo)

		router := setupTestRouter(uuid.New())
		router.GET("/customers/:id", handler.GetByID)

		req := httptest.NewRequest(http.MethodGet, "/customers/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCustomerHandler_List(t *testing.T) {
	repo := new(MockCustomerRepository)
	handler := setupCustomerHandler(repo)
	accountID := uuid.New()
	customer := createTestCustomer(t, accountID, "Acme Corp")

	repo.On("FindAllForAccount", mock.Anything, accountID, mock.Anything).
		Return([]partner.Customer{*customer}, nil)
	repo.On("CountForAccount", mock.Anything, accountID, mock.Anything).
		Return(int64(1), nil)

	router := setupTestRouter(accountID)
	router.GET("/customers", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/customers?search=acme", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Meta    struct {
			Total int64 `json:"total"`
			Page  int   `json:"page"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(1), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.Page)
}

func TestCustomerHandler_Update(t *testing.T) {
	repo := new(MockCustomerRepository)
	handler := setupCustomerHandler(repo)
	accountID := uuid.New()
	customer := createTestCustomer(t, accountID, "Acme Corp")

	repo.On("FindByIDForAccount", mock.Anything, accountID, customer.ID).Return(customer, nil)
	repo.On("Save", mock.Anything, customer).Return(nil)

	router := setupTestRouter(accountID)
	router.PUT("/customers/:id", handler.Update)

	body, _ := json.Marshal(map[string]string{"name": "Acme Corporation"})
	req := httptest.NewRequest(http.MethodPut, "/customers/"+customer.ID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acme Corporation")
}

func TestCustomerHandler_Delete(t *testing.T) {
	repo := new(MockCustomerRepository)
	handler := setupCustomerHandler(repo)
	accountID := uuid.New()
	customerID := uuid.New()

	repo.On("DeleteForAccount", mock.Anything, accountID, customerID).Return(nil)

	router := setupTestRouter(accountID)
	router.DELETE("/customers/:id", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/customers/"+customerID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}
