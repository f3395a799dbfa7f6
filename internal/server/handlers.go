package server

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"lp-grapher/internal/engine"
	"lp-grapher/internal/lp"
)

// New builds the solverd application with all routes and middleware.
func New(cfg *Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "LP Solver Service",
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"*"},
		AllowMethods: []string{"*"},
	}))

	api := app.Group("/api")
	api.Get("/health", Health)
	api.Post("/solve-graphic", SolveGraphic)
	api.Post("/export-report", ExportReport)

	return app
}

// Health reports service status.
func Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "online",
		"mode":   "Linear Programming Graphical Method",
		"engine": "gonum vertex enumeration",
	})
}

// SolveGraphic solves the posted program and returns its solution with
// the feasible-region geometry.
func SolveGraphic(c fiber.Ctx) error {
	prob, err := parseProblem(c.Body())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	sol := engine.Solve(prob)
	return c.JSON(sol)
}

// ExportReport solves the posted program and returns the result as a CSV
// attachment.
func ExportReport(c fiber.Ctx) error {
	prob, err := parseProblem(c.Body())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	sol := engine.Solve(prob)
	data, err := engine.Report(prob, sol)
	if err != nil {
		log.Printf("[SOLVERD] report error: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to build report"})
	}

	filename := engine.ReportFilename(time.Now())
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}

func parseProblem(body []byte) (*lp.Problem, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty body")
	}
	var prob lp.Problem
	if err := json.Unmarshal(body, &prob); err != nil {
		return nil, fmt.Errorf("invalid json")
	}
	return &prob, nil
}
