package cli

import (
	"fmt"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/eventbus"
	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/workshop/api"
	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/workshop/session"
)

// runtime holds the wired client stack for one command invocation.
type runtime struct {
	Client  *httpclient.Client
	Store   *session.FileStore
	Manager *session.Manager
	API     *api.Service
	bus     *eventbus.Bus
}

// newRuntime wires the credential store, event bus, HTTP client, and session
// manager over the loaded configuration. Callers must Close it.
func newRuntime() (*runtime, error) {
	cfg := GetConfig()
	if cfg == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}

	bus := eventbus.New()

	storePath, err := session.DefaultStorePath()
	if err != nil {
		return nil, err
	}
	store, err := session.NewFileStore(storePath, bus)
	if err != nil {
		return nil, err
	}

	client := httpclient.NewClient(cfg, store, bus, httpclient.ClientOptions{
		DisableCertValidation: cfg.Insecure,
	})

	return &runtime{
		Client:  client,
		Store:   store,
		Manager: session.NewManager(client, store, bus),
		API:     api.NewService(client),
		bus:     bus,
	}, nil
}

func (r *runtime) Close() {
	r.Manager.Close()
	r.Store.Close()
	r.bus.Shutdown()
}
