// Package http is the public face of fetchkit for programmatic use. It
// re-exports the request container, the preset composer and the response
// resolver so applications can build layered requests without the CLI.
//
// Containers are partial requests. Merging two of them joins their URLs with
// exactly one slash, and their Init and Options maps key by key with the
// later container winning:
//
//	base := http.NewContainer("https://api.example.com/v1",
//	    http.Init{"headers": map[string]string{"Accept": "application/json"}},
//	    http.Options{"resolveAs": "json"},
//	)
//	users := http.Merge(base, http.NewContainer("users", nil, nil))
//	// users.URL == "https://api.example.com/v1/users"
//
// A Client turns containers into responses and resolves them:
//
//	client := http.NewClient(http.WithTimeout(10 * time.Second))
//	api := client.Preset(base)
//
//	user, err := api.Get(ctx, "users/1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(user.(map[string]any)["name"])
//
// Query parameters keep their insertion order and values are encoded with
// URI component rules:
//
//	q := http.Query{}.Add("q", "a b").Add("page", 2)
//	http.CreateQuery(q) // "q=a%20b&page=2"
//
// Resolution kinds are "json", "text", "arrayBuffer", "blob", "formData" and
// "response". The empty kind means "response". Other names are looked up in
// the Resolver's extensions and fail with ErrUnsupportedMethod otherwise.
// JSON resolution of an empty body yields Empty rather than an error.
//
// Thread Safety:
//
// Client and Resolver are safe for concurrent use. Containers are values but
// share their maps; use Clone before mutating one in place.
package http
