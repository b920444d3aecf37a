// Package container composes partial request configurations.
//
// A Container carries a URL, transport settings (Init) and behavior options
// (Options). Containers are values: Merge and the helpers built on it always
// return a fresh Container and never modify their inputs.
//
// Layered configuration is built with presets:
//
//	api := container.Compose(client.Fetch).Bind(container.New("https://api.example.com", nil, nil))
//	users := api.Extend(container.New("users", nil, container.Options{"resolveAs": "json"}))
//	v, err := users.Get(ctx, "42")
package container
