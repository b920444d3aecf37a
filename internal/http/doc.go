// Package http issues Containers over net/http and exposes the result as a
// resolve.Response.
//
// A Client is the transport behind presets:
//
//	client := http.NewClient(http.WithTimeout(10 * time.Second))
//	api := container.Compose(client.Fetch).Bind(container.New("https://api.example.com", nil, nil))
//	user, err := api.Get(ctx, "users/1")
package http
