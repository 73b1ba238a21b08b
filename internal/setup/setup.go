package setup

import (
	"github.com/mveldsman/gxproxy/internal/config"
	"github.com/mveldsman/gxproxy/internal/gxweb"
	"github.com/mveldsman/gxproxy/internal/handler"
)

type Dependencies struct {
	Config  *config.Config
	Handler *handler.Handler
	Session *gxweb.Session
	Client  *gxweb.Client
}

// SetupDependencies wires the backend client, the shared session store and
// the handlers. The session is owned here and injected, never referenced
// as ambient global state.
func SetupDependencies(cfg *config.Config) *Dependencies {
	client := gxweb.NewClient(gxweb.Options{
		BaseURL:            cfg.Public.GXWebURL,
		Timeout:            cfg.Public.RequestTimeout,
		InsecureSkipVerify: cfg.Public.InsecureSkipVerify,
		UserAgent:          cfg.Public.UserAgent,
	})
	session := gxweb.NewSession(client)
	h := handler.New(session, client, cfg.GXWebUser(), cfg.GXWebPass())

	return &Dependencies{
		Config:  cfg,
		Handler: h,
		Session: session,
		Client:  client,
	}
}
