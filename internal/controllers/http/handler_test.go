package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"store-service/internal/auth"
	"store-service/internal/domain"
	"store-service/internal/mocks"
	"store-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(store *mocks.MockStore, publisher *mocks.MockPublisher) *gin.Engine {
	gin.SetMode(gin.TestMode)

	issuer := auth.NewJWTIssuer("test-secret", 15*time.Minute, 24*time.Hour)
	catalog := services.NewCatalogService(store)
	accounts := services.NewAccountService(store, issuer)
	checkout := services.NewCheckoutService(store, publisher)
	reviews := services.NewReviewService(store)
	carts := services.NewCartService(store)
	orders := services.NewOrderService(store)
	payments := services.NewPaymentService(store)

	handler := NewHandler(catalog, accounts, checkout, reviews, carts, orders, payments)
	r := gin.New()
	handler.RegisterRoutes(r)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlaceOrder_MissingFields(t *testing.T) {
	store := mocks.NewMockStore()
	r := newTestRouter(store, new(mocks.MockPublisher))

	w := doJSON(r, http.MethodPost, "/place-order",
		`{"email":"buyer@example.com","address":"1 Main Street","items":[{"id":1,"quantity":1,"price":9.99}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Missing fields", resp["error"])
}

func TestPlaceOrder_Success(t *testing.T) {
	store := mocks.NewMockStore()
	publisher := new(mocks.MockPublisher)

	store.AccountsRepo.On("FindByUsername", mock.Anything, "buyer@example.com").
		Return(&domain.Account{ID: 1, Username: "buyer@example.com"}, nil)
	store.ProductRepo.On("FindByID", mock.Anything, uint64(1)).
		Return(&domain.Product{ID: 1, Name: "Coffee Beans", Price: decimal.RequireFromString("9.99")}, nil)
	store.OrderRepo.On("Create", mock.Anything, mock.Anything).Return(nil).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Order).ID = 42 })
	store.CartItemRepo.On("FindByAccountAndProduct", mock.Anything, uint64(1), uint64(1)).
		Return(nil, nil)
	store.CartItemRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	store.OrderRepo.On("AttachItem", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	store.PaymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	store.OrderRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, "order.placed", mock.Anything).Return(nil).Maybe()

	r := newTestRouter(store, publisher)
	w := doJSON(r, http.MethodPost, "/place-order",
		`{"name":"Buyer","email":"buyer@example.com","address":"1 Main Street","items":[{"id":1,"quantity":2,"price":9.99}]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Message string `json:"message"`
		OrderID uint64 `json:"order_id"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(42), resp.OrderID)
	assert.NotEmpty(t, resp.Message)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	store := mocks.NewMockStore()
	store.AccountsRepo.On("FindByUsername", mock.Anything, "buyer@example.com").
		Return(&domain.Account{ID: 1, Username: "buyer@example.com"}, nil)
	store.ProductRepo.On("FindByID", mock.Anything, uint64(999)).Return(nil, nil)

	r := newTestRouter(store, new(mocks.MockPublisher))
	w := doJSON(r, http.MethodPost, "/place-order",
		`{"name":"Buyer","email":"buyer@example.com","address":"1 Main Street","items":[{"id":999,"quantity":1,"price":9.99}]}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	store := mocks.NewMockStore()
	store.AccountsRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, nil)

	r := newTestRouter(store, new(mocks.MockPublisher))
	w := doJSON(r, http.MethodPost, "/login", `{"username":"ghost","password":"whatever"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid credentials", resp["detail"])
}

func TestLogin_MissingFields(t *testing.T) {
	r := newTestRouter(mocks.NewMockStore(), new(mocks.MockPublisher))

	w := doJSON(r, http.MethodPost, "/login", `{"username":"alice"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["detail"], "required")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	r := newTestRouter(mocks.NewMockStore(), new(mocks.MockPublisher))

	w := doJSON(r, http.MethodPost, "/register",
		`{"username":"alice","email":"alice@example.com","password":"one","password2":"two"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Password does not match", resp["password"])
}

func TestRegister_Success(t *testing.T) {
	store := mocks.NewMockStore()
	store.AccountsRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, nil)
	store.AccountsRepo.On("Create", mock.Anything, mock.Anything).Return(nil).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Account).ID = 5 })

	r := newTestRouter(store, new(mocks.MockPublisher))
	w := doJSON(r, http.MethodPost, "/register",
		`{"username":"alice","email":"alice@example.com","password":"s3cret-pass","password2":"s3cret-pass"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Message string `json:"message"`
		User    struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)
}

func TestSearchProducts_ShortQuery(t *testing.T) {
	store := mocks.NewMockStore()
	r := newTestRouter(store, new(mocks.MockPublisher))

	w := doJSON(r, http.MethodGet, "/products/search?q=a", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	store.ProductRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchProducts(t *testing.T) {
	store := mocks.NewMockStore()
	store.ProductRepo.On("Search", mock.Anything, "coffee", 10).
		Return([]domain.Product{
			{ID: 1, Name: "Coffee Beans", Price: decimal.RequireFromString("9.99")},
		}, nil)

	r := newTestRouter(store, new(mocks.MockPublisher))
	w := doJSON(r, http.MethodGet, "/products/search?q=coffee", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var products []map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 1)
	assert.Equal(t, "Coffee Beans", products[0]["name"])
}

func TestGetProduct_NotFound(t *testing.T) {
	store := mocks.NewMockStore()
	store.ProductRepo.On("FindByID", mock.Anything, uint64(99)).Return(nil, nil)

	r := newTestRouter(store, new(mocks.MockPublisher))
	w := doJSON(r, http.MethodGet, "/products/99", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCartItem_Conflict(t *testing.T) {
	store := mocks.NewMockStore()
	store.ProductRepo.On("FindByID", mock.Anything, uint64(2)).
		Return(&domain.Product{ID: 2, Name: "Filter Papers", Price: decimal.RequireFromString("5.00")}, nil)
	store.CartItemRepo.On("FindByAccountAndProduct", mock.Anything, uint64(1), uint64(2)).
		Return(&domain.CartItem{ID: 4, AccountID: 1, ProductID: 2, Quantity: 1}, nil)

	r := newTestRouter(store, new(mocks.MockPublisher))
	w := doJSON(r, http.MethodPost, "/cart-items", `{"user":1,"product":2,"quantity":1}`)

	assert.Equal(t, http.StatusConflict, w.Code)
}
