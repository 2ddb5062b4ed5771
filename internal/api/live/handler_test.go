package live

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"solar-proposal/internal/config"
	"solar-proposal/internal/model"
	"solar-proposal/internal/session"
	"solar-proposal/internal/simulation"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testHandler() *Handler {
	holder := config.NewPricingHolder(model.DefaultPricing(), "defaults")
	return NewHandler(NewHub(zap.NewNop()), simulation.New(), holder, zap.NewNop())
}

// dialHandler sets up a test server with the handler and returns a WS connection.
func dialHandler(t *testing.T, handler *Handler) (*websocket.Conn, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn, func() {
		conn.Close()
		server.Close()
	}
}

// readJSON reads the next JSON message from the connection.
func readJSON(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(msg, &env))
	return env
}

// sendJSON sends a JSON message on the connection.
func sendJSON(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	data, err := NewEnvelope(msgType, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

func readSnapshot(t *testing.T, conn *websocket.Conn) session.Snapshot {
	t.Helper()
	env := readJSON(t, conn)
	require.Equal(t, TypeResult, env.Type, string(env.Payload))
	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(env.Payload, &snap))
	return snap
}

func readError(t *testing.T, conn *websocket.Conn) ErrorPayload {
	t.Helper()
	env := readJSON(t, conn)
	require.Equal(t, TypeError, env.Type)
	var p ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	return p
}

func TestConnectSendsInitialResult(t *testing.T) {
	conn, cleanup := dialHandler(t, testHandler())
	defer cleanup()

	snap := readSnapshot(t, conn)
	assert.Len(t, snap.Input.Records, 12)
	assert.Equal(t, model.DefaultSettings(), snap.Input.Settings)
	require.NotNil(t, snap.Result)
	assert.InDelta(t, 100*3.64*365, snap.Result.AnnualGeneration, 1e-6)
}

func TestSettingsPatchKeepsOtherFields(t *testing.T) {
	conn, cleanup := dialHandler(t, testHandler())
	defer cleanup()
	readSnapshot(t, conn)

	sendJSON(t, conn, TypeSettingsSet, map[string]any{"capacity_kw": 500})
	snap := readSnapshot(t, conn)
	assert.Equal(t, 500.0, snap.Input.Settings.CapacityKW)
	assert.Equal(t, 0.5, snap.Input.Settings.DegradationRate)
	// No usage recorded, so all 664,300 kWh is surplus sold to the grid.
	assert.InDelta(t, 128_070_397, snap.Result.GrossRevenue, 1e-3)
}

func TestRecordsAndRationalization(t *testing.T) {
	conn, cleanup := dialHandler(t, testHandler())
	defer cleanup()
	readSnapshot(t, conn)

	records := make([]model.MonthlyRecord, 12)
	for i := range records {
		records[i] = model.MonthlyRecord{Month: i + 1, UsageKWh: 5_000, SelfConsumption: 2_000}
	}
	sendJSON(t, conn, TypeRecordsSet, RecordsPayload{Records: records})
	snap := readSnapshot(t, conn)
	assert.InDelta(t, 24_000, snap.Result.AnnualSelfConsumption, 1e-6)

	sendJSON(t, conn, TypeSettingsSet, map[string]any{"contract_class": "high"})
	readSnapshot(t, conn)

	sendJSON(t, conn, TypeRationalizationSet, map[string]any{
		"light": map[string]any{"high": 94.2, "low": 87.3, "usage": 1000},
	})
	snap = readSnapshot(t, conn)
	assert.InDelta(t, 6_900, snap.Result.RationalizationSavings, 1e-6)
}

func TestInputsSetKeepsActivePricing(t *testing.T) {
	conn, cleanup := dialHandler(t, testHandler())
	defer cleanup()
	readSnapshot(t, conn)

	records := make([]model.MonthlyRecord, 12)
	for i := range records {
		records[i] = model.MonthlyRecord{Month: i + 1, UsageKWh: 50_000, SelfConsumption: 30_000}
	}
	sendJSON(t, conn, TypeInputsSet, map[string]any{
		"records":  records,
		"settings": map[string]any{"capacity_kw": 500},
	})
	snap := readSnapshot(t, conn)
	assert.Equal(t, model.DefaultPricing(), snap.Input.Pricing)
	assert.Equal(t, 500.0, snap.Input.Settings.CapacityKW)
	assert.Equal(t, model.ModelRE100, snap.Input.Settings.BusinessModel)
	assert.InDelta(t, 107_795_197, snap.Result.GrossRevenue, 1e-3)

	// A partial pricing block only replaces the fields it names.
	sendJSON(t, conn, TypeInputsSet, map[string]any{"pricing": map[string]any{"grid_price": 250}})
	snap = readSnapshot(t, conn)
	assert.Equal(t, 250.0, snap.Input.Pricing.GridPrice)
	assert.Equal(t, 3.64, snap.Input.Pricing.Irradiance)
	assert.Len(t, snap.Input.Records, 12)
	assert.Equal(t, 50_000.0, snap.Input.Records[0].UsageKWh)
}

func TestMaintenanceConfirmation(t *testing.T) {
	conn, cleanup := dialHandler(t, testHandler())
	defer cleanup()
	readSnapshot(t, conn)

	sendJSON(t, conn, TypeMaintenanceConfirm, nil)
	assert.Equal(t, "INVALID_REQUEST", readError(t, conn).Code)

	sendJSON(t, conn, TypeSettingsSet, map[string]any{
		"capacity_kw":      500,
		"cost_ceiling":     4_000_000,
		"auto_maintenance": false,
	})
	snap := readSnapshot(t, conn)
	require.NotNil(t, snap.Pending)
	assert.Equal(t, 3.12, snap.Pending.IdealRate)
	assert.Equal(t, 5.0, snap.Input.Settings.MaintenanceRate)

	sendJSON(t, conn, TypeMaintenanceConfirm, nil)
	snap = readSnapshot(t, conn)
	assert.Nil(t, snap.Pending)
	assert.Equal(t, 3.12, snap.Input.Settings.MaintenanceRate)
}

func TestInvalidMessages(t *testing.T) {
	conn, cleanup := dialHandler(t, testHandler())
	defer cleanup()
	readSnapshot(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	assert.Equal(t, "INVALID_REQUEST", readError(t, conn).Code)

	sendJSON(t, conn, "bogus", nil)
	assert.Contains(t, readError(t, conn).Message, "unknown message type")

	bad := model.DefaultPricing()
	bad.Irradiance = 0
	sendJSON(t, conn, TypeInputsSet, simulation.Input{Settings: model.DefaultSettings(), Pricing: bad})
	assert.Equal(t, "INVALID_PRICING", readError(t, conn).Code)

	// The session survives the rejected input.
	sendJSON(t, conn, TypeMaintenanceDecline, nil)
	assert.Equal(t, "INVALID_REQUEST", readError(t, conn).Code)
}

func TestBroadcastPricing(t *testing.T) {
	h := testHandler()
	conn1, cleanup1 := dialHandler(t, h)
	defer cleanup1()
	conn2, cleanup2 := dialHandler(t, h)
	defer cleanup2()
	readSnapshot(t, conn1)
	readSnapshot(t, conn2)
	assert.Equal(t, 2, h.hub.ClientCount())

	p := model.DefaultPricing()
	p.GridPrice = 210
	h.BroadcastPricing(p, "api")

	for _, conn := range []*websocket.Conn{conn1, conn2} {
		env := readJSON(t, conn)
		require.Equal(t, TypePricingUpdated, env.Type)
		var payload PricingUpdatedPayload
		require.NoError(t, json.Unmarshal(env.Payload, &payload))
		assert.Equal(t, "api", payload.Source)
		assert.Equal(t, 210.0, payload.Pricing.GridPrice)

		snap := readSnapshot(t, conn)
		assert.Equal(t, 210.0, snap.Input.Pricing.GridPrice)
	}
}

func TestPricingUpdateReachesRunningSessions(t *testing.T) {
	h := testHandler()
	conn, cleanup := dialHandler(t, h)
	defer cleanup()
	readSnapshot(t, conn)

	p := model.DefaultPricing()
	p.GridPrice = 300
	require.NoError(t, h.pricing.Update(p, "api"))
	h.BroadcastPricing(p, "api")

	require.Equal(t, TypePricingUpdated, readJSON(t, conn).Type)
	snap := readSnapshot(t, conn)
	assert.InDelta(t, 100*3.64*365*300, snap.Result.RevenueSurplus, 1e-3)

	// Later edits keep computing with the new grid price.
	sendJSON(t, conn, TypeSettingsSet, map[string]any{"capacity_kw": 500})
	snap = readSnapshot(t, conn)
	assert.Equal(t, 300.0, snap.Input.Pricing.GridPrice)
	assert.InDelta(t, 664_300*300, snap.Result.RevenueSurplus, 1e-3)
}

func TestDisconnectUnregisters(t *testing.T) {
	h := testHandler()
	conn, cleanup := dialHandler(t, h)
	readSnapshot(t, conn)
	require.Equal(t, 1, h.hub.ClientCount())

	cleanup()
	assert.Eventually(t, func() bool { return h.hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
