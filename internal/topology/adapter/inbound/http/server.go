package http_handler

import (
	"context"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/port"
)

// Server is the read-only admin API of the agent.
type Server struct {
	app        *fiber.App
	addr       string
	topologies port.TopologyQuery
	clients    []port.ClientStatus
}

type clientView struct {
	Bucket             string `json:"bucket"`
	Nodes              int    `json:"nodes"`
	PlainReady         bool   `json:"plain_ready"`
	TopologyAwareReady bool   `json:"topology_aware_ready"`
}

func NewServer(addr string, topologies port.TopologyQuery, clients ...port.ClientStatus) *Server {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:        app,
		addr:       addr,
		topologies: topologies,
		clients:    clients,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/buckets", s.handleBuckets)
	s.app.Get("/buckets/:name", s.handleBucket)
	s.app.Get("/client", s.handleClients)
}

func (s *Server) Start() error {
	return s.app.Listen(s.addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleBuckets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"buckets": s.topologies.Buckets()})
}

func (s *Server) handleBucket(c *fiber.Ctx) error {
	name := c.Params("name")
	t, ok := s.topologies.Lookup(name)
	if !ok {
		logger.Debugw("Bucket topology not cached", "bucket", name)
		return s.sendJSONError(c, fiber.StatusNotFound, "bucket not found: "+name)
	}
	return c.JSON(t)
}

func (s *Server) handleClients(c *fiber.Ctx) error {
	views := make([]clientView, 0, len(s.clients))
	for _, cs := range s.clients {
		views = append(views, clientView{
			Bucket:             cs.Bucket(),
			Nodes:              len(cs.Topology().Nodes),
			PlainReady:         cs.Ready(domain.ClientPlain),
			TopologyAwareReady: cs.Ready(domain.ClientTopologyAware),
		})
	}
	return c.JSON(fiber.Map{"clients": views})
}
