package container

import (
	"context"
	"net/http"
)

// IssueFunc performs a request described by an effective Container.
type IssueFunc[T any] func(ctx context.Context, c Container) (T, error)

// Composer captures an IssueFunc until a base Container is bound to it.
type Composer[T any] struct {
	issue IssueFunc[T]
}

// Compose captures issue for later binding.
func Compose[T any](issue IssueFunc[T]) Composer[T] {
	return Composer[T]{issue: issue}
}

// Bind returns a Preset issuing requests on top of base.
func (c Composer[T]) Bind(base Container) Preset[T] {
	return Preset[T]{issue: c.issue, base: base.Clone()}
}

// Preset is a reusable request function with a bound base Container.
// Presets are values and safe to share between goroutines.
type Preset[T any] struct {
	issue IssueFunc[T]
	base  Container
}

// Base returns a copy of the bound base Container.
func (p Preset[T]) Base() Container {
	return p.base.Clone()
}

// Extend returns a new Preset whose base is Merge(p's base, delta).
func (p Preset[T]) Extend(delta Container) Preset[T] {
	return Preset[T]{issue: p.issue, base: Merge(p.base, delta)}
}

// Do merges the base with {url, init, options}, the new values winning, and
// issues the resulting Container.
func (p Preset[T]) Do(ctx context.Context, url string, init Init, options Options) (T, error) {
	return p.Call(ctx, New(url, init, options))
}

// Call is Do with the delta given as a Container.
func (p Preset[T]) Call(ctx context.Context, delta Container) (T, error) {
	return p.issue(ctx, Merge(p.base, delta))
}

// Get issues a GET request for url relative to the base.
func (p Preset[T]) Get(ctx context.Context, url string) (T, error) {
	return p.Call(ctx, Merge(New(url, nil, nil), WithMethod(http.MethodGet)))
}

// Head issues a HEAD request for url relative to the base.
func (p Preset[T]) Head(ctx context.Context, url string) (T, error) {
	return p.Call(ctx, Merge(New(url, nil, nil), WithMethod(http.MethodHead)))
}

// Delete issues a DELETE request for url relative to the base.
func (p Preset[T]) Delete(ctx context.Context, url string) (T, error) {
	return p.Call(ctx, Merge(New(url, nil, nil), WithMethod(http.MethodDelete)))
}

// Post issues a POST request carrying body.
func (p Preset[T]) Post(ctx context.Context, url string, body any) (T, error) {
	return p.withBody(ctx, http.MethodPost, url, body)
}

// Put issues a PUT request carrying body.
func (p Preset[T]) Put(ctx context.Context, url string, body any) (T, error) {
	return p.withBody(ctx, http.MethodPut, url, body)
}

// Patch issues a PATCH request carrying body.
func (p Preset[T]) Patch(ctx context.Context, url string, body any) (T, error) {
	return p.withBody(ctx, http.MethodPatch, url, body)
}

func (p Preset[T]) withBody(ctx context.Context, method, url string, body any) (T, error) {
	return p.Call(ctx, MergeAll(New(url, nil, nil), WithMethod(method), WithBody(body)))
}
