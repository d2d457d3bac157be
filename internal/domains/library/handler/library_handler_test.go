package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/library/model"
	"library-backend/internal/domains/library/service"
)

type mockService struct {
	mock.Mock
}

var _ service.ServiceInterface = (*mockService)(nil)

func (m *mockService) library(args mock.Arguments) (*model.Library, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Library), args.Error(1)
}

func (m *mockService) GetLibrary(ctx context.Context, id int64) (*model.Library, error) {
	return m.library(m.Called(ctx, id))
}

func (m *mockService) GetLibraryHoldings(ctx context.Context, id int64) (*model.Library, error) {
	return m.library(m.Called(ctx, id))
}

func (m *mockService) ListLibraries(ctx context.Context) ([]model.Library, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Library), args.Error(1)
}

func (m *mockService) CreateLibrary(ctx context.Context, req model.CreateLibraryRequest) (*model.Library, error) {
	return m.library(m.Called(ctx, req))
}

func (m *mockService) UpdateLibrary(ctx context.Context, id int64, req model.UpdateLibraryRequest) (*model.Library, error) {
	return m.library(m.Called(ctx, id, req))
}

func (m *mockService) DeleteLibrary(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) AddBook(ctx context.Context, libraryID, bookID int64) (*model.Library, error) {
	return m.library(m.Called(ctx, libraryID, bookID))
}

func (m *mockService) RemoveBook(ctx context.Context, libraryID, bookID int64) error {
	return m.Called(ctx, libraryID, bookID).Error(0)
}

func setup() (*mockService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	svc := new(mockService)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return svc, r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestGetLibrary(t *testing.T) {
	svc, r := setup()
	svc.On("GetLibrary", mock.Anything, int64(1)).Return(&model.Library{
		ID:    1,
		Name:  "Central",
		Info:  &model.LibraryInfo{ID: 1, Address: "1 Main St", Phone: "5550100"},
		Books: []bookmodel.Book{{ID: 10, Title: "Dune"}},
	}, nil)
	svc.On("GetLibrary", mock.Anything, int64(2)).Return(nil, model.ErrLibraryNotFound)

	w, env := do(t, r, http.MethodGet, "/api/v1/libraries/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got model.LibraryResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Central", got.Name)
	require.NotNil(t, got.Info)
	assert.Equal(t, "1 Main St", got.Info.Address)
	require.Len(t, got.Books, 1)

	w, env = do(t, r, http.MethodGet, "/api/v1/libraries/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "LIBRARY_NOT_FOUND", env.Error.Code)
}

func TestGetHoldings(t *testing.T) {
	svc, r := setup()
	svc.On("GetLibraryHoldings", mock.Anything, int64(1)).Return(&model.Library{
		ID:   1,
		Name: "Central",
		Books: []bookmodel.Book{{
			ID:        10,
			Title:     "Dune",
			Libraries: []bookmodel.LibraryRef{{ID: 1, Name: "Central"}, {ID: 2, Name: "North"}},
		}},
	}, nil)

	w, env := do(t, r, http.MethodGet, "/api/v1/libraries/1/holdings", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got model.LibraryResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got.Books, 1)
	assert.Len(t, got.Books[0].Libraries, 2)
}

func TestListLibraries(t *testing.T) {
	svc, r := setup()
	svc.On("ListLibraries", mock.Anything).Return([]model.Library{{ID: 1}, {ID: 2}, {ID: 3}}, nil)

	w, env := do(t, r, http.MethodGet, "/api/v1/libraries", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got []model.LibraryResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 3)
}

func TestListLibraries_InternalError(t *testing.T) {
	svc, r := setup()
	svc.On("ListLibraries", mock.Anything).Return(nil, errors.New("merge mismatch at offset 500"))

	w, env := do(t, r, http.MethodGet, "/api/v1/libraries", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, env.Error.Message, "offset")
}

func TestCreateLibrary(t *testing.T) {
	svc, r := setup()
	req := model.CreateLibraryRequest{Name: "Central", Info: &model.LibraryInfoRequest{Address: "1 Main St", Phone: "5550100"}}
	svc.On("CreateLibrary", mock.Anything, req).Return(&model.Library{ID: 5, Name: "Central", Books: []bookmodel.Book{}}, nil)

	w, _ := do(t, r, http.MethodPost, "/api/v1/libraries", `{"name":"Central","info":{"address":"1 Main St","phone":"5550100"}}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/v1/libraries", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAndDeleteLibrary(t *testing.T) {
	svc, r := setup()
	svc.On("UpdateLibrary", mock.Anything, int64(1), model.UpdateLibraryRequest{Name: "Main"}).Return(&model.Library{ID: 1, Name: "Main"}, nil)
	svc.On("DeleteLibrary", mock.Anything, int64(1)).Return(nil)
	svc.On("DeleteLibrary", mock.Anything, int64(2)).Return(model.ErrLibraryNotFound)

	w, _ := do(t, r, http.MethodPut, "/api/v1/libraries/1", `{"name":"Main"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/v1/libraries/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/v1/libraries/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHoldings(t *testing.T) {
	svc, r := setup()
	svc.On("AddBook", mock.Anything, int64(1), int64(10)).Return(&model.Library{ID: 1, Books: []bookmodel.Book{{ID: 10}}}, nil)
	svc.On("AddBook", mock.Anything, int64(1), int64(99)).Return(nil, model.ErrBookNotFound)
	svc.On("RemoveBook", mock.Anything, int64(1), int64(10)).Return(nil)
	svc.On("RemoveBook", mock.Anything, int64(1), int64(11)).Return(model.ErrHoldingNotFound)

	w, _ := do(t, r, http.MethodPost, "/api/v1/libraries/1/books/10", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, r, http.MethodPost, "/api/v1/libraries/1/books/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "BOOK_NOT_FOUND", env.Error.Code)

	w, _ = do(t, r, http.MethodPost, "/api/v1/libraries/1/books/x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/v1/libraries/1/books/10", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env = do(t, r, http.MethodDelete, "/api/v1/libraries/1/books/11", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "HOLDING_NOT_FOUND", env.Error.Code)
}
