package solver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lp-grapher/internal/lp"
	"lp-grapher/pkg/geometry"
)

func furnitureProblem() *lp.Problem {
	return &lp.Problem{
		Objective: lp.Objective{X: 3, Y: 5},
		Constraints: []lp.Constraint{
			{X: 1, Y: 0, Operator: lp.OpLE, RHS: 4},
			{X: 0, Y: 2, Operator: lp.OpLE, RHS: 12},
			{X: 3, Y: 2, Operator: lp.OpLE, RHS: 18},
		},
		Maximize: true,
	}
}

func TestClientSolve(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		var prob lp.Problem
		if err := json.NewDecoder(r.Body).Decode(&prob); err != nil {
			t.Errorf("server could not decode problem: %v", err)
		}
		if len(prob.Constraints) != 3 {
			t.Errorf("server saw %d constraints, want 3", len(prob.Constraints))
		}

		json.NewEncoder(w).Encode(lp.Solution{
			Status: lp.StatusOptimal,
			Optimal: &lp.Optimal{
				Point: geometry.NewPoint2D(2, 6),
				Z:     36,
			},
		})
	}))
	defer srv.Close()

	sol, err := NewClient(srv.URL).Solve(context.Background(), furnitureProblem())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if gotPath != "/api/solve-graphic" {
		t.Errorf("request path = %q, want /api/solve-graphic", gotPath)
	}
	if sol.Status != lp.StatusOptimal || sol.Optimal.Z != 36 {
		t.Errorf("solution = %+v", sol)
	}
}

func TestClientSolveUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		w.Write([]byte(`{"error":"invalid json"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Solve(context.Background(), furnitureProblem())
	if err == nil {
		t.Fatal("Solve succeeded against a failing backend")
	}
	if !strings.Contains(err.Error(), "invalid json") {
		t.Errorf("error %q does not carry the upstream message", err)
	}
}

func TestClientSolveOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	_, err := NewClient(srv.URL).Solve(context.Background(), furnitureProblem())
	if !errors.Is(err, ErrOffline) {
		t.Errorf("err = %v, want ErrOffline", err)
	}
}

func TestClientHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("path = %q, want /api/health", r.URL.Path)
		}
		w.Write([]byte(`{"status":"online"}`))
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck: %v", err)
	}
}

func TestClientHealthCheckUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"starting"}`))
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).HealthCheck(context.Background()); !errors.Is(err, ErrOffline) {
		t.Errorf("err = %v, want ErrOffline", err)
	}
}

func TestClientExportReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="Reporte_PL_20250314_092653.csv"`)
		w.Write([]byte("Status,Optimal\n"))
	}))
	defer srv.Close()

	data, filename, err := NewClient(srv.URL).ExportReport(context.Background(), furnitureProblem())
	if err != nil {
		t.Fatalf("ExportReport: %v", err)
	}
	if filename != "Reporte_PL_20250314_092653.csv" {
		t.Errorf("filename = %q", filename)
	}
	if !strings.Contains(string(data), "Status,Optimal") {
		t.Errorf("report data = %q", data)
	}
}

func TestClientExportReportFallbackFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Status,Optimal\n"))
	}))
	defer srv.Close()

	_, filename, err := NewClient(srv.URL).ExportReport(context.Background(), furnitureProblem())
	if err != nil {
		t.Fatalf("ExportReport: %v", err)
	}
	if filename != "report.csv" {
		t.Errorf("filename = %q, want report.csv fallback", filename)
	}
}

func TestLocalService(t *testing.T) {
	svc := NewLocal()
	ctx := context.Background()

	if err := svc.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck: %v", err)
	}

	sol, err := svc.Solve(ctx, furnitureProblem())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Status != lp.StatusOptimal || sol.Optimal.Z != 36 {
		t.Errorf("solution = %+v", sol)
	}

	data, filename, err := svc.ExportReport(ctx, furnitureProblem())
	if err != nil {
		t.Fatalf("ExportReport: %v", err)
	}
	if !strings.HasPrefix(filename, "Reporte_PL_") {
		t.Errorf("filename = %q", filename)
	}
	if !strings.Contains(string(data), "Optimal Z,36") {
		t.Errorf("report missing optimum:\n%s", data)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := svc.Solve(cancelled, furnitureProblem()); err == nil {
		t.Error("Solve ignored a cancelled context")
	}
}
