package deps

import (
	"github.com/joefazee/placement/internal/events"
	"github.com/joefazee/placement/internal/logger"
	"github.com/joefazee/placement/internal/sanitizer"
	"github.com/joefazee/placement/internal/security"
	"gorm.io/gorm"
)

// Container holds all shared dependencies
type Container struct {
	DB         *gorm.DB
	TokenMaker security.Maker
	Sanitizer  sanitizer.HTMLStripperer
	Logger     logger.Logger
	Publisher  events.Publisher

	// Store repositories as interfaces to avoid imports
	repositories map[string]interface{}
	services     map[string]interface{}
}

func NewContainer(db *gorm.DB,
	tokenMaker security.Maker,
	sanitizer sanitizer.HTMLStripperer,
	logger logger.Logger,
	publisher events.Publisher) *Container {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Container{
		DB:           db,
		TokenMaker:   tokenMaker,
		Sanitizer:    sanitizer,
		Logger:       logger,
		Publisher:    publisher,
		repositories: make(map[string]interface{}),
		services:     make(map[string]interface{}),
	}
}

// RegisterRepository stores a repository with a key
func (c *Container) RegisterRepository(key string, repo interface{}) {
	c.repositories[key] = repo
}

// GetRepository retrieves a repository by key
func (c *Container) GetRepository(key string) interface{} {
	return c.repositories[key]
}

// RegisterService stores a service with a key
func (c *Container) RegisterService(key string, service interface{}) {
	c.services[key] = service
}

// GetService retrieves a service by key
func (c *Container) GetService(key string) interface{} {
	return c.services[key]
}

// MustService retrieves a service registered by an earlier module init.
func (c *Container) MustService(key string) interface{} {
	s, ok := c.services[key]
	if !ok {
		panic("deps: service not registered: " + key)
	}
	return s
}
