package http_init

import (
	"log"

	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// ControllerPool collects controllers and mounts them under one API prefix.
type ControllerPool struct {
	pool   []Controller
	rg     *gin.RouterGroup
	engine *gin.Engine
}

func NewControllerPool() *ControllerPool {
	engine := gin.Default()
	return &ControllerPool{
		pool:   make([]Controller, 0, 8),
		rg:     engine.Group(apiPrefix),
		engine: engine,
	}
}

func (pool *ControllerPool) Add(c Controller) {
	pool.pool = append(pool.pool, c)
}

func (pool *ControllerPool) Register() {
	for _, c := range pool.pool {
		c.RegisterRoutes(pool.rg)
	}
}

func (pool *ControllerPool) RunAll(addr string) {
	if err := pool.engine.Run(addr); err != nil {
		log.Fatalf("failed to run HTTP server: %v", err)
	}
}
