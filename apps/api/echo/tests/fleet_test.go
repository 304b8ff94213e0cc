package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/opsdesk/apps/api/echo"
	"github.com/trezcool/opsdesk/core/fleet"
)

func Test_fleetApi_access(t *testing.T) {
	app, conf := setup(t)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/fleet/van/report", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Fleet role required", path: "/v1/fleet/van/report", token: getToken(t, conf, RoleInventory),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Plan", path: "/v1/fleet/van/plan", token: getToken(t, conf, RoleFleet),
			wantCode: http.StatusOK, wantData: marchallObj(t, fleet.DefaultPlan()),
		},
		{
			name: "New log book", path: "/v1/fleet/van", token: getToken(t, conf, RoleAdmin),
			wantCode: http.StatusOK, wantData: marchallObj(t, fleet.NewSession()),
		},
	}
	runHTTPTests(t, app, tests)
}

func Test_fleetApi_recordEvent(t *testing.T) {
	app, conf := setup(t)
	token := getToken(t, conf, RoleFleet)
	path := "/v1/fleet/van"

	tests := []httpTest{
		{
			name: "odometer required", method: http.MethodPost, path: path + "/events", token: token,
			body:     []byte(`{"category": "Other"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"odometer": "this field is required"}),
		},
		{
			name: "component required for maintenance", method: http.MethodPost, path: path + "/events", token: token,
			body:     []byte(`{"category": "Maintenance", "odometer": 100}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"component": "the serviced component is required for maintenance"}),
		},
		{
			name: "unknown category", method: http.MethodPost, path: path + "/events", token: token,
			body: []byte(`{"category": "Party", "odometer": 100}`), wantCode: http.StatusBadRequest,
		},
	}
	runHTTPTests(t, app, tests)

	// a tyre change the plan does not know about
	req, rec := newAuthRequest(http.MethodPost, path+"/events", token,
		[]byte(`{"category": "Maintenance", "component": "Tyres", "odometer": 1000, "cost": 400}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var recorded fleet.Recorded
	decodeBody(t, rec, &recorded)
	assert.Equal(t, "Tires", recorded.Suggestion)
	assert.Equal(t, 1000, recorded.Report.CurrentOdometer)
	assert.NotEmpty(t, recorded.Event.ID)

	for _, body := range []string{
		`{"category": "Refuel", "component": "Diesel", "odometer": 100000, "volume": 0, "cost": 50}`,
		`{"category": "Refuel", "component": "Diesel", "odometer": 100400, "volume": 40, "cost": 60}`,
	} {
		req, rec = newAuthRequest(http.MethodPost, path+"/events", token, []byte(body))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	var report fleet.Report
	req, rec = newAuthRequest(http.MethodGet, path+"/report", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &report)
	assert.Equal(t, "van", report.Vehicle)
	assert.Equal(t, 100400, report.CurrentOdometer)
	require.NotNil(t, report.FuelEfficiency)
	assert.InDelta(t, 10.0, *report.FuelEfficiency, 1e-9)
	assert.Len(t, report.Components, len(fleet.DefaultPlan()))

	var costs []fleet.CategoryCost
	req, rec = newAuthRequest(http.MethodGet, path+"/costs", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &costs)
	require.Len(t, costs, len(fleet.Categories))
	assert.Equal(t, fleet.CategoryCost{Category: fleet.CategoryMaintenance, Total: 400, Count: 1}, costs[0])
	assert.Equal(t, fleet.CategoryCost{Category: fleet.CategoryRefuel, Total: 110, Count: 2}, costs[1])

	var state fleet.State
	req, rec = newAuthRequest(http.MethodGet, "/v1/fleet/VAN", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &state)
	assert.Len(t, state.History, 3, "vehicle names are case insensitive")
}
