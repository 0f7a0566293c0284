package gin

import (
	"fmt"

	ginlib "github.com/gin-gonic/gin"

	"github.com/growthfolio/next-comic-store/internal/config"
)

type Server struct {
	engine *ginlib.Engine
	addr   string
}

// NewEngine builds the base engine with recovery plus any extra middleware
// (metrics, logging) the caller wires in.
func NewEngine(middleware ...ginlib.HandlerFunc) *ginlib.Engine {
	r := ginlib.New()
	r.Use(ginlib.Recovery())
	for _, m := range middleware {
		r.Use(m)
	}
	return r
}

func NewServer(cfg config.ServerConfig, engine *ginlib.Engine) *Server {
	return &Server{
		engine: engine,
		addr:   cfg.Address(),
	}
}

func (s *Server) Run() error {
	if s.engine == nil {
		return fmt.Errorf("gin engine is nil")
	}
	return s.engine.Run(s.addr)
}
