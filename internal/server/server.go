// SPDX-FileCopyrightText: 2026 ts2openapi
// SPDX-License-Identifier: FSL-1.1-MIT

// Package server serves the latest generated document over HTTP with a
// Redoc preview page.
package server

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/ts2openapi/ts2openapi/internal/openapi"
	"github.com/ts2openapi/ts2openapi/pkg/types"
)

// Route paths served by the preview server.
const (
	JSONPath = "/openapi.json"
	YAMLPath = "/openapi.yaml"
	DocsPath = "/docs"
)

// Server holds the most recent document and serves it.
type Server struct {
	app    *fiber.App
	logger *slog.Logger
	writer *openapi.Writer

	mu    sync.RWMutex
	doc   *types.OpenAPI
	json  []byte
	yaml  []byte
	title string
}

// New creates a server with its routes registered. A nil logger uses
// slog.Default().
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "ts2openapi",
			DisableStartupMessage: true,
		}),
		logger: logger,
		writer: openapi.NewWriter(),
		title:  "API Documentation",
	}

	s.app.Get(JSONPath, s.handleJSON)
	s.app.Get(YAMLPath, s.handleYAML)
	s.app.Get(DocsPath, s.handleDocs)
	s.app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(DocsPath)
	})

	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Update replaces the served document. The document is serialized once
// here so requests only copy bytes.
func (s *Server) Update(doc *types.OpenAPI) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}

	asJSON, err := s.writer.ToJSON(doc)
	if err != nil {
		return err
	}
	asYAML, err := s.writer.ToYAML(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = doc
	s.json = []byte(asJSON)
	s.yaml = []byte(asYAML)
	if doc.Info.Title != "" {
		s.title = doc.Info.Title
	}
	return nil
}

// Document returns the currently served document, or nil before the first Update.
func (s *Server) Document() *types.OpenAPI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Listen serves on addr until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr)
	}()

	s.logger.Info("serving document", "address", addr, "docs", DocsPath)

	select {
	case <-ctx.Done():
		if err := s.app.Shutdown(); err != nil {
			s.logger.Warn("shutdown failed", "error", err)
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve on %s: %w", addr, err)
		}
		return nil
	}
}

func (s *Server) handleJSON(c *fiber.Ctx) error {
	body, ok := s.body(func() []byte { return s.json })
	if !ok {
		return notReady(c)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(body)
}

func (s *Server) handleYAML(c *fiber.Ctx) error {
	body, ok := s.body(func() []byte { return s.yaml })
	if !ok {
		return notReady(c)
	}
	c.Set(fiber.HeaderContentType, "application/yaml; charset=utf-8")
	return c.Send(body)
}

func (s *Server) handleDocs(c *fiber.Ctx) error {
	s.mu.RLock()
	title := s.title
	s.mu.RUnlock()

	var sb strings.Builder
	if err := docsTemplate.Execute(&sb, struct {
		Title   string
		SpecURL string
	}{title, JSONPath}); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(sb.String())
}

func (s *Server) body(pick func() []byte) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, false
	}
	return pick(), true
}

func notReady(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": "document not generated yet",
	})
}

var docsTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html>
  <head>
    <title>{{.Title}}</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>body { margin: 0; padding: 0; }</style>
  </head>
  <body>
    <redoc spec-url="{{.SpecURL}}"></redoc>
    <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
  </body>
</html>
`))
