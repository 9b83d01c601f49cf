package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, category string) ([]model.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, req *model.UpdateProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// withUser attaches an authenticated identity to the request, mirroring what
// the session middleware does.
func withUser(r *http.Request, user *model.User) *http.Request {
	return r.WithContext(auth.WithUser(r.Context(), user))
}

func adminUser() *model.User {
	return &model.User{ID: 1, OpenID: "owner-1", Role: model.RoleAdmin}
}

func regularUser() *model.User {
	return &model.User{ID: 2, OpenID: "user-1", Role: model.RoleUser}
}

func TestProductHandler_List_Public(t *testing.T) {
	logger := zerolog.Nop()

	products := []model.Product{
		{ID: 1, Name: "Stoneware Mug", Price: decimal.RequireFromString("14.99"), Category: "kitchen"},
	}

	mockService := new(MockProductService)
	h := NewProductHandler(mockService, logger)

	mockService.On("List", mock.Anything, "kitchen").Return(products, nil)

	// No identity on the request: listing is public.
	req := httptest.NewRequest(http.MethodGet, "/api/products.list?category=kitchen", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result []model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result, 1)
	assert.Equal(t, "Stoneware Mug", result[0].Name)
	mockService.AssertExpectations(t)
}

func TestProductHandler_GetByID_AbsentIsNull(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockProductService)
	h := NewProductHandler(mockService, logger)

	mockService.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products.getById?id=99", nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "null", rec.Body.String())
	mockService.AssertExpectations(t)
}

func TestProductHandler_GetByID_MissingID(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockProductService)
	h := NewProductHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/products.getById", nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "GetByID")
}

func TestProductHandler_Create_RoleGating(t *testing.T) {
	logger := zerolog.Nop()

	body := `{"name":"Cork Yoga Mat","price":"64.00","category":"fitness","stock":40}`

	tests := []struct {
		name           string
		user           *model.User
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Anonymous is unauthorised",
			user:           nil,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   model.ErrCodeUnauthorised,
		},
		{
			name:           "Non-admin is forbidden",
			user:           regularUser(),
			expectedStatus: http.StatusForbidden,
			expectedCode:   model.ErrCodeForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			h := NewProductHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodPost, "/api/products.create", bytes.NewBufferString(body))
			if tt.user != nil {
				req = withUser(req, tt.user)
			}
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var errResp model.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.Equal(t, tt.expectedCode, errResp.Error)
			mockService.AssertNotCalled(t, "Create")
		})
	}
}

func TestProductHandler_Create_AdminSuccess(t *testing.T) {
	logger := zerolog.Nop()

	created := &model.Product{ID: 5, Name: "Cork Yoga Mat", Price: decimal.RequireFromString("64.00"), Category: "fitness", Stock: 40}

	mockService := new(MockProductService)
	h := NewProductHandler(mockService, logger)

	mockService.On("Create", mock.Anything, mock.AnythingOfType("*model.CreateProductRequest")).Return(created, nil)

	body := `{"name":"Cork Yoga Mat","price":"64.00","category":"fitness","stock":40}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/products.create", bytes.NewBufferString(body)), adminUser())
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var result model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, int64(5), result.ID)
	mockService.AssertExpectations(t)
}

func TestProductHandler_Create_InvalidJSON(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockProductService)
	h := NewProductHandler(mockService, logger)

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/products.create", bytes.NewBufferString("{")), adminUser())
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "Create")
}

func TestProductHandler_Update_ValidationErrorFromService(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockProductService)
	h := NewProductHandler(mockService, logger)

	mockService.On("Update", mock.Anything, mock.AnythingOfType("*model.UpdateProductRequest")).
		Return(nil, model.ErrProductNotFound)

	body := `{"id":99,"name":"Renamed"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/products.update", bytes.NewBufferString(body)), adminUser())
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockService.AssertExpectations(t)
}

func TestProductHandler_Delete_Success(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockProductService)
	h := NewProductHandler(mockService, logger)

	mockService.On("Delete", mock.Anything, int64(5)).Return(nil)

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/products.delete", bytes.NewBufferString(`{"id":5}`)), adminUser())
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	mockService.AssertExpectations(t)
}

func TestProductHandler_List_MethodNotAllowed(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockProductService)
	h := NewProductHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodPost, "/api/products.list", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	mockService.AssertNotCalled(t, "List")
}
