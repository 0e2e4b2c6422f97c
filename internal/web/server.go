// Package web serves saved evaluation results over HTTP, backing the
// results-browsing UI and scripted access to the results directory.
package web

import (
	"errors"
	"io/fs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/okhramov/impact-matcher/internal/results"
)

// Server exposes the results store as a small JSON API.
type Server struct {
	app    *fiber.App
	store  *results.Store
	logger *zap.Logger
}

func New(store *results.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		store:  store,
		logger: logger,
	}

	app := fiber.New(fiber.Config{
		AppName:               "impact-matcher results",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/healthz", s.handleHealth)

	api := app.Group("/api")
	api.Get("/results", s.handleList)
	api.Get("/results/:file", s.handleGet)
	api.Delete("/results/:file", s.handleDelete)

	s.app = app
	return s
}

// Listen blocks serving HTTP on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("serving results", zap.String("addr", addr), zap.String("dir", s.store.Dir()))
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleList(c *fiber.Ctx) error {
	entries, err := s.store.List()
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []results.Entry{}
	}
	return c.JSON(fiber.Map{
		"count":   len(entries),
		"results": entries,
	})
}

func (s *Server) handleGet(c *fiber.Ctx) error {
	result, err := s.store.Load(c.Params("file"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(result)
}

func (s *Server) handleDelete(c *fiber.Ctx) error {
	name := c.Params("file")
	if err := s.store.Delete(name); err != nil {
		return storeError(c, err)
	}
	s.logger.Info("result deleted", zap.String("file", name))
	return c.SendStatus(fiber.StatusNoContent)
}

// storeError maps store failures onto HTTP statuses: bad names are client
// errors, missing files are 404, everything else bubbles to the error
// handler.
func storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, results.ErrInvalidName):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid result name",
		})
	case errors.Is(err, fs.ErrNotExist):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "result not found",
		})
	default:
		return err
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
