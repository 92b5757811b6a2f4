package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitaconnect/kita-admin/internal/auth"
	"github.com/kitaconnect/kita-admin/internal/cache"
	"github.com/kitaconnect/kita-admin/internal/excel"
	"github.com/kitaconnect/kita-admin/internal/http/middleware"
	"github.com/kitaconnect/kita-admin/internal/model"
	"github.com/kitaconnect/kita-admin/internal/pdf"
	"github.com/kitaconnect/kita-admin/internal/service"
)

const testSecret = "test-secret"

// fakeStores overrides the store methods the routes under test reach.
// Untouched methods come from the embedded nil interfaces.
type fakeStores struct {
	service.RegistryStore
	service.ScheduleStore
	service.BoardStore

	children  []model.Child
	guardians []model.Guardian
	contracts []model.Contract

	createdAbsence *model.Absence
}

func (f *fakeStores) ListChildren(ctx context.Context) ([]model.Child, error) {
	return f.children, nil
}

func (f *fakeStores) ListGuardians(ctx context.Context) ([]model.Guardian, error) {
	return f.guardians, nil
}

func (f *fakeStores) ListContracts(ctx context.Context) ([]model.Contract, error) {
	return f.contracts, nil
}

func (f *fakeStores) CreateAbsence(ctx context.Context, a model.Absence) (uuid.UUID, error) {
	f.createdAbsence = &a
	return uuid.New(), nil
}

func newTestRouter(t *testing.T, stores *fakeStores) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zerolog.Nop()
	queryCache := cache.New()
	views := service.NewViewService(stores, stores, stores, queryCache, 30, log)
	exports := service.NewExportService(views, excel.NewGenerator(), pdf.NewGenerator(), log)
	admin := service.NewAdminService(stores, stores, stores, queryCache, log)

	handler := NewHandler(views, exports, admin, log)
	authMiddleware := middleware.Auth(auth.NewParser(testSecret))
	return NewRouter(handler, authMiddleware, "test")
}

func token(t *testing.T, role model.Role) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(router *gin.Engine, method, path, bearer, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthIsPublic(t *testing.T) {
	router := newTestRouter(t, &fakeStores{})
	rec := doRequest(router, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t, &fakeStores{})

	rec := doRequest(router, http.MethodGet, "/admin/children", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, http.MethodGet, "/admin/children", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesRejectParents(t *testing.T) {
	router := newTestRouter(t, &fakeStores{})
	rec := doRequest(router, http.MethodGet, "/admin/children", token(t, model.RoleParent), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListChildrenWithFilter(t *testing.T) {
	childID := uuid.New()
	end := time.Now().AddDate(0, 0, 10)
	stores := &fakeStores{
		children: []model.Child{
			{ID: childID, FirstName: "Mia", LastName: "Huber"},
			{ID: uuid.New(), FirstName: "Tom", LastName: "Berg"},
		},
		contracts: []model.Contract{
			{ChildID: childID, Status: model.ContractStatusActive, EndDate: &end},
		},
	}
	router := newTestRouter(t, stores)

	rec := doRequest(router, http.MethodGet, "/admin/children?exit=exiting", token(t, model.RoleManager), "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Mia")
	assert.NotContains(t, body, "Tom")
	assert.Contains(t, body, `"total":1`)
}

func TestExportDownloadHeaders(t *testing.T) {
	stores := &fakeStores{guardians: []model.Guardian{{ID: uuid.New(), FirstName: "Anna", LastName: "Huber"}}}
	router := newTestRouter(t, stores)

	rec := doRequest(router, http.MethodPost, "/admin/export", token(t, model.RoleAdmin),
		`{"tab":"guardians","format":"csv"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	disposition := rec.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="eltern_export_`), disposition)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "Anna")
}

func TestExportBadFormat(t *testing.T) {
	router := newTestRouter(t, &fakeStores{})

	rec := doRequest(router, http.MethodPost, "/admin/export", token(t, model.RoleAdmin),
		`{"tab":"guardians","format":"pdf"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAbsenceAsParent(t *testing.T) {
	stores := &fakeStores{}
	router := newTestRouter(t, stores)

	body := `{"child_id":"` + uuid.New().String() + `","type":"sick","start_date":"2026-03-02","end_date":"2026-03-04"}`
	rec := doRequest(router, http.MethodPost, "/absences", token(t, model.RoleParent), body)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, stores.createdAbsence)
	assert.Equal(t, model.AbsenceTypeSick, stores.createdAbsence.Type)
	assert.NotNil(t, stores.createdAbsence.ReportedBy)
}

func TestCreateGuardianValidationError(t *testing.T) {
	router := newTestRouter(t, &fakeStores{})

	rec := doRequest(router, http.MethodPost, "/admin/guardians", token(t, model.RoleManager),
		`{"first_name":"Anna"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
