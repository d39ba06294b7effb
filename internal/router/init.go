package router

import (
	"fmt"

	"github.com/oksasatya/rituday/internal/container"
	handlers "github.com/oksasatya/rituday/internal/interface/http"
	"github.com/oksasatya/rituday/internal/router/modules"
	"github.com/oksasatya/rituday/pkg/validation"
	"github.com/oksasatya/rituday/web"
)

// InitModules wires every feature module from c and registers it with r.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) error {
	validation.Init()

	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("page templates: %w", err)
	}
	r.Engine.SetHTMLTemplate(tmpl)

	account := handlers.NewAccountHandler(c.AccountService(), c.Logger)
	rituals := handlers.NewRitualHandler(c.RitualService(), c.Logger)

	r.Add(modules.NewAccountModule(account, c.Redis, c.Config.RateLimitEnabled, c.Config.RateLimitBypassPrivate))
	r.Add(modules.NewRitualModule(rituals, c.JWT, c.Redis, c.Config.RateLimitEnabled))
	r.Add(modules.NewPageModule(handlers.NewPageHandler(c.Config.AppName)))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
	return nil
}
