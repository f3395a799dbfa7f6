package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"lp-grapher/internal/lp"
)

func testApp() *fiber.App {
	return New(&Config{
		Port:         "5000",
		Environment:  "test",
		ReadTimeout:  10,
		WriteTimeout: 10,
	})
}

func furnitureBody(t *testing.T) []byte {
	t.Helper()
	prob := lp.Problem{
		Objective: lp.Objective{X: 3, Y: 5},
		Constraints: []lp.Constraint{
			{X: 1, Y: 0, Operator: lp.OpLE, RHS: 4},
			{X: 0, Y: 2, Operator: lp.OpLE, RHS: 12},
			{X: 3, Y: 2, Operator: lp.OpLE, RHS: 18},
		},
		Maximize: true,
	}
	data, err := json.Marshal(prob)
	if err != nil {
		t.Fatalf("marshal problem: %v", err)
	}
	return data
}

func TestHealthEndpoint(t *testing.T) {
	app := testApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "online" {
		t.Errorf("status field = %q, want online", body["status"])
	}
}

func TestSolveGraphicEndpoint(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("POST", "/api/solve-graphic", bytes.NewReader(furnitureBody(t)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var sol lp.Solution
	if err := json.NewDecoder(resp.Body).Decode(&sol); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sol.Status != lp.StatusOptimal {
		t.Errorf("solution status = %s, want Optimal", sol.Status)
	}
	if sol.Optimal == nil || sol.Optimal.Z != 36 {
		t.Errorf("optimal = %+v, want z = 36", sol.Optimal)
	}
	if len(sol.FeasibleRegion) != 5 {
		t.Errorf("region has %d vertices, want 5", len(sol.FeasibleRegion))
	}
}

func TestSolveGraphicBadRequest(t *testing.T) {
	app := testApp()

	for name, body := range map[string]string{
		"empty":   "",
		"garbage": "{not json",
	} {
		req := httptest.NewRequest("POST", "/api/solve-graphic", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request: %v", name, err)
		}
		if resp.StatusCode != 400 {
			t.Errorf("%s body: status = %d, want 400", name, resp.StatusCode)
		}
		var payload map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		resp.Body.Close()
		if payload["error"] == "" {
			t.Errorf("%s body: no error field in response", name)
		}
	}
}

func TestExportReportEndpoint(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("POST", "/api/export-report", bytes.NewReader(furnitureBody(t)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	cd := resp.Header.Get("Content-Disposition")
	if !strings.Contains(cd, "Reporte_PL_") || !strings.Contains(cd, ".csv") {
		t.Errorf("Content-Disposition = %q, want Reporte_PL_*.csv attachment", cd)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(data), "Optimal Z,36") {
		t.Errorf("report body missing the optimum:\n%s", data)
	}
}
