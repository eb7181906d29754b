package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/clock"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/persistence"
	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/repository/memory"
	"github.com/spec-kit/employee-service/internal/service"
)

var now = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	return newTestAppWith(t, zap.NewNop(), store, store.Employees())
}

func newTestAppWith(t *testing.T, logger *zap.Logger, store *memory.Store, employees repository.EmployeeRepository) *fiber.App {
	t.Helper()
	clk := clock.Fixed(now)
	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost}}

	return NewServer("ems-test", logger, time.Second, RouteConfig{
		Health:       handlers.NewHealthHandler("ems-test", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Departments:  handlers.NewDepartmentHandler(service.NewDepartmentService(store.Departments(), nil, clk)),
		Designations: handlers.NewDesignationHandler(service.NewDesignationService(store.Designations(), nil, clk)),
		Employees: handlers.NewEmployeeHandler(service.NewEmployeeService(cfg, service.EmployeeDependencies{
			EmployeeRepo: employees,
			Clock:        clk,
		}), 10),
		Metrics: observability.NewMetrics("ems_test"),
	})
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (*nethttp.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, raw []byte) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func employeeBody(id int, name, contact, email, city string) map[string]any {
	return map[string]any{
		"employeeId":    id,
		"name":          name,
		"contactNo":     contact,
		"email":         email,
		"city":          city,
		"designationId": 1,
		"password":      "pw-" + contact,
	}
}

func TestDepartmentRoutes(t *testing.T) {
	app := newTestApp(t)

	resp, raw := do(t, app, nethttp.MethodPost, "/api/department", map[string]any{"departmentName": "HR", "isActive": true})
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Department added successfully", string(raw))

	// the path id is ignored; the body id selects the row
	resp, raw = do(t, app, nethttp.MethodPut, "/api/department/999", map[string]any{"departmentId": 1, "departmentName": "People", "isActive": false})
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Department updated successfully!", string(raw))

	resp, raw = do(t, app, nethttp.MethodGet, "/api/department", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"departmentId":1,"departmentName":"People","isActive":false}]`, string(raw))

	resp, raw = do(t, app, nethttp.MethodPut, "/api/department/1", map[string]any{"departmentId": 5, "departmentName": "Ghost"})
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Department not found", decodeError(t, raw).Error.Message)

	resp, raw = do(t, app, nethttp.MethodDelete, "/api/department/1", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Department deleted successfully", string(raw))

	resp, _ = do(t, app, nethttp.MethodDelete, "/api/department/1", nil)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	resp, raw = do(t, app, nethttp.MethodPost, "/api/department", map[string]any{"departmentName": ""})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "is required", decodeError(t, raw).Error.Details["departmentName"])
}

func TestDesignationRoutes(t *testing.T) {
	app := newTestApp(t)

	resp, raw := do(t, app, nethttp.MethodPost, "/api/designation", map[string]any{"departmentId": 42, "designationName": "Engineer"})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/designation/1", resp.Header.Get("Location"))
	assert.JSONEq(t, `{"designationId":1,"departmentId":42,"designationName":"Engineer"}`, string(raw))

	resp, _ = do(t, app, nethttp.MethodGet, "/api/designation/1", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp, raw = do(t, app, nethttp.MethodGet, "/api/designation/2", nil)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Designation not found", decodeError(t, raw).Error.Message)

	resp, raw = do(t, app, nethttp.MethodPut, "/api/designation/1", map[string]any{"designationId": 2, "departmentId": 1, "designationName": "X"})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Designation ID mismatch", decodeError(t, raw).Error.Message)

	resp, raw = do(t, app, nethttp.MethodPut, "/api/designation/1", map[string]any{"designationId": 1, "departmentId": 3, "designationName": "Lead"})
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"designationId":1,"departmentId":3,"designationName":"Lead"}`, string(raw))

	resp, _ = do(t, app, nethttp.MethodGet, "/api/designation/abc", nil)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	resp, raw = do(t, app, nethttp.MethodDelete, "/api/designation/1", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Designation deleted successfully", string(raw))
}

func TestEmployeeRoutes(t *testing.T) {
	app := newTestApp(t)

	resp, raw := do(t, app, nethttp.MethodPost, "/api/employee", employeeBody(0, "Ann", "0100", "ann@example.com", "Dhaka"))
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/employee/1", resp.Header.Get("Location"))

	var created map[string]any
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.EqualValues(t, 1, created["employeeId"])
	assert.Equal(t, now.Format(time.RFC3339), created["createdDate"])
	assert.Nil(t, created["modifiedDate"])
	assert.NotContains(t, created, "password")

	resp, raw = do(t, app, nethttp.MethodPost, "/api/employee", employeeBody(0, "Other", "0100", "other@example.com", "Dhaka"))
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Contact number or Email already exists", decodeError(t, raw).Error.Message)

	resp, _ = do(t, app, nethttp.MethodPut, "/api/employee/1", employeeBody(2, "Ann", "0100", "ann@example.com", "Dhaka"))
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	resp, raw = do(t, app, nethttp.MethodPut, "/api/employee/1", employeeBody(1, "Ann Lee", "0100", "ann@example.com", "Sylhet"))
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var updated map[string]any
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "Sylhet", updated["city"])
	assert.Equal(t, now.Format(time.RFC3339), updated["modifiedDate"])

	resp, _ = do(t, app, nethttp.MethodGet, "/api/employee/7", nil)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)

	resp, raw = do(t, app, nethttp.MethodPost, "/api/employee", employeeBody(0, "Bad", "0300", "not-an-email", "Dhaka"))
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "must be a valid email address", decodeError(t, raw).Error.Details["email"])

	resp, raw = do(t, app, nethttp.MethodDelete, "/api/employee/1", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "Employee deleted successfully", string(raw))
}

func TestEmployeeSearchRoute(t *testing.T) {
	app := newTestApp(t)
	seed := []struct{ name, city string }{
		{"Joanne", "Berlin"}, {"Marianne", "Oslo"}, {"Hannah", "Austin"},
		{"Suzanne", "Paris"}, {"Leanne", "Cairo"}, {"Bob", "Lima"},
	}
	for i, s := range seed {
		contact := string(rune('a' + i))
		resp, _ := do(t, app, nethttp.MethodPost, "/api/employee", employeeBody(0, s.name, contact, contact+"@example.com", s.city))
		require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	}

	resp, raw := do(t, app, nethttp.MethodGet, "/api/employee/search?name=ann&sortBy=city&sortDir=desc&page=1&pageSize=2", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var page struct {
		TotalRecords int              `json:"totalRecords"`
		Page         int              `json:"page"`
		PageSize     int              `json:"pageSize"`
		Data         []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, 5, page.TotalRecords)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.PageSize)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Paris", page.Data[0]["city"])
	assert.Equal(t, "Oslo", page.Data[1]["city"])

	resp, raw = do(t, app, nethttp.MethodGet, "/api/employee/search?page=x&pageSize=", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Len(t, page.Data, 6)
	assert.Equal(t, "Bob", page.Data[0]["name"])

	resp, raw = do(t, app, nethttp.MethodGet, "/api/employee/search?sortDir=DESC", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &page))
	require.Len(t, page.Data, 6)
	assert.Equal(t, "Bob", page.Data[0]["name"])
	assert.Equal(t, "Suzanne", page.Data[5]["name"])

	resp, raw = do(t, app, nethttp.MethodGet, fmt.Sprintf("/api/employee/search?page=3&pageSize=%d", math.MaxInt), nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, 6, page.TotalRecords)
	assert.Equal(t, math.MaxInt, page.PageSize)
	assert.Empty(t, page.Data)

	resp, raw = do(t, app, nethttp.MethodGet, "/api/employee/search?city=Zurich", nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(raw), `"data":[]`))
}

func TestEmployeeLoginRoute(t *testing.T) {
	app := newTestApp(t)
	resp, _ := do(t, app, nethttp.MethodPost, "/api/employee", employeeBody(0, "Ann", "0100", "ann@example.com", "Dhaka"))
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	resp, raw := do(t, app, nethttp.MethodPost, "/api/employee/login", map[string]any{"email": "ann@example.com", "password": "pw-0100"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"employeeId":1,"name":"Ann","email":"ann@example.com","designationId":1}`, string(raw))

	resp, raw = do(t, app, nethttp.MethodPost, "/api/employee/login", map[string]any{"email": "ann@example.com", "password": "nope"})
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", decodeError(t, raw).Error.Message)

	resp, _ = do(t, app, nethttp.MethodPost, "/api/employee/login", map[string]any{"email": "ann@example.com"})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestOperationalRoutes(t *testing.T) {
	app := newTestApp(t)

	resp, raw := do(t, app, nethttp.MethodGet, "/health/ready", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ready","dependencies":{"postgres":"disabled","redis":"disabled"}}`, string(raw))

	resp, _ = do(t, app, nethttp.MethodGet, "/api/department", nil)
	assert.NotEmpty(t, resp.Header.Get(observability.RequestIDHeader))

	resp, raw = do(t, app, nethttp.MethodGet, "/metrics", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "ems_test_http_requests_total")

	resp, raw = do(t, app, nethttp.MethodGet, "/api/unknown", nil)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, raw).Error.Code)
}

func TestEmployeeMultiByteLongPassword(t *testing.T) {
	app := newTestApp(t)
	password := strings.Repeat("é", 40)

	body := employeeBody(0, "Ann", "0100", "ann@example.com", "Dhaka")
	body["password"] = password
	resp, raw := do(t, app, nethttp.MethodPost, "/api/employee", body)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode, string(raw))

	resp, _ = do(t, app, nethttp.MethodPost, "/api/employee/login", map[string]any{"email": "ann@example.com", "password": password})
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp, _ = do(t, app, nethttp.MethodPost, "/api/employee/login", map[string]any{"email": "ann@example.com", "password": strings.Repeat("é", 39)})
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

type brokenEmployeeRepository struct {
	repository.EmployeeRepository
	err error
}

func (r brokenEmployeeRepository) List(context.Context) ([]domain.Employee, error) {
	return nil, r.err
}

func TestPersistenceFaultIsOpaque(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	store := memory.NewStore()
	app := newTestAppWith(t, zap.New(core), store, brokenEmployeeRepository{err: errors.New("relation does not exist")})

	resp, raw := do(t, app, nethttp.MethodGet, "/api/employee", nil)
	assert.Equal(t, nethttp.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, string(raw), "relation does not exist")

	body := decodeError(t, raw)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Equal(t, "internal server error", body.Error.Message)

	failures := logs.FilterMessage("request failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, zapcore.ErrorLevel, failures[0].Level)
	assert.Contains(t, failures[0].ContextMap()["error"], "relation does not exist")
}
