package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpin "warehouse/internal/adapters/in/http"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/fleet"
	"warehouse/internal/core/domain/model/robot"
)

func newTestServer(t *testing.T) (*echo.Echo, *fleet.State) {
	t.Helper()

	state, err := fleet.NewState(100)
	require.NoError(t, err)

	server := httpin.NewServer(
		commands.NewSubmitOrderCommandHandler(state),
		queries.NewGetFleetSnapshotQueryHandler(state),
		queries.GetDispatchLogQueryHandler{},
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return e, state
}

func TestServer_Health(t *testing.T) {
	e, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestServer_SubmitOrder(t *testing.T) {
	t.Run("accepts_valid_order", func(t *testing.T) {
		e, state := newTestServer(t)

		body := `{"item":"item_A","quantity":10,"pack_station":"P1","order_id":"ord-1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		var accepted httpin.OrderAccepted
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accepted))
		assert.Equal(t, "ord-1", accepted.OrderID)
		assert.Equal(t, 1, state.PendingOrders())
	})

	t.Run("generates_order_id_when_missing", func(t *testing.T) {
		e, _ := newTestServer(t)

		body := `{"item":"item_A","quantity":10,"pack_station":"P1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		var accepted httpin.OrderAccepted
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accepted))
		assert.NotEmpty(t, accepted.OrderID)
	})

	t.Run("rejects_invalid_order", func(t *testing.T) {
		e, state := newTestServer(t)

		body := `{"item":"","quantity":0,"pack_station":"nowhere"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 0, state.PendingOrders())
	})

	t.Run("rejects_malformed_body", func(t *testing.T) {
		e, _ := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader("{broken"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_GetFleet(t *testing.T) {
	e, state := newTestServer(t)
	state.ApplyRobotStatus("AMR-001", robot.Idle.String(), robot.LocationDock, 92)
	state.ApplyShelfStatus("shelf-1", "item_A", 50, "units")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/fleet", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var snapshot queries.GetFleetSnapshotQueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	require.Len(t, snapshot.Robots, 1)
	assert.Equal(t, "AMR-001", snapshot.Robots[0].ID)
	assert.Equal(t, 92, snapshot.Robots[0].Battery)
	require.Len(t, snapshot.Shelves, 1)
	assert.Equal(t, 50.0, snapshot.Shelves[0].Stock)
}
