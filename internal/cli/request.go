package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync/atomic"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wesleyorama2/fetchkit/internal/config"
	"github.com/wesleyorama2/fetchkit/internal/container"
	"github.com/wesleyorama2/fetchkit/internal/extract"
	fkhttp "github.com/wesleyorama2/fetchkit/internal/http"
	"github.com/wesleyorama2/fetchkit/internal/metrics"
	"github.com/wesleyorama2/fetchkit/internal/output"
	"github.com/wesleyorama2/fetchkit/internal/pace"
	"github.com/wesleyorama2/fetchkit/internal/resolve"
)

// ErrStatus is returned with --fail for responses outside the 2xx range.
var ErrStatus = errors.New("unsuccessful response status")

type requestOptions struct {
	preset          string
	method          string
	headers         []string
	data            string
	jsonData        string
	form            []string
	query           []string
	resolveAs       string
	jq              string
	extractPath     string
	selector        string
	repeat          int
	rate            float64
	concurrency     int
	requestID       bool
	omitCredentials bool
	fail            bool
}

func newRequestCmd(global *globalOptions, use, method string) *cobra.Command {
	opts := &requestOptions{method: method}

	short := "Issue a request built from a preset and flags"
	if method != "" {
		short = fmt.Sprintf("Issue a %s request", strings.ToUpper(method))
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rawURL string
			if len(args) == 1 {
				rawURL = args[0]
			}
			return runRequest(cmd.Context(), global, opts, rawURL, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.preset, "preset", "p", "", "Preset to start from (requires --config)")
	if method == "" {
		flags.StringVarP(&opts.method, "method", "X", "", "HTTP method")
	}
	flags.StringArrayVarP(&opts.headers, "header", "H", nil, "HTTP header as 'Key: Value' (can be used multiple times)")
	flags.StringVarP(&opts.data, "data", "d", "", "Request body sent as is")
	flags.StringVar(&opts.jsonData, "json", "", "Request body parsed as JSON and re-encoded")
	flags.StringArrayVar(&opts.form, "form", nil, "Form field as key=value (can be used multiple times)")
	flags.StringArrayVarP(&opts.query, "query", "q", nil, "Query parameter as key=value (can be used multiple times)")
	flags.StringVarP(&opts.resolveAs, "as", "a", "", "Resolve the response as json, text, arraybuffer, blob, formdata, document or response")
	flags.StringVar(&opts.jq, "jq", "", "jq filter applied to the resolved value")
	flags.StringVar(&opts.extractPath, "extract", "", "JSONPath expression applied to the resolved value")
	flags.StringVar(&opts.selector, "select", "", "CSS selector applied to a document")
	flags.IntVar(&opts.repeat, "repeat", 1, "Issue the request N times and print latency statistics")
	flags.IntVar(&opts.concurrency, "concurrency", 1, "Concurrent requests when repeating")
	flags.Float64Var(&opts.rate, "rate", 0, "Maximum requests per second when repeating (0 means unlimited)")
	flags.BoolVar(&opts.requestID, "request-id", false, "Send a random X-Request-Id header")
	flags.BoolVar(&opts.omitCredentials, "omit-credentials", false, "Strip Authorization and Cookie headers")
	flags.BoolVar(&opts.fail, "fail", false, "Fail on responses outside the 2xx range")

	return cmd
}

func runRequest(ctx context.Context, global *globalOptions, opts *requestOptions, rawURL string, stdout, stderr io.Writer) error {
	format, err := output.ParseFormat(global.format)
	if err != nil {
		return err
	}
	if opts.repeat < 1 || opts.concurrency < 1 {
		return fmt.Errorf("--repeat and --concurrency must be at least 1")
	}

	base, err := loadBase(global, opts.preset)
	if err != nil {
		return err
	}
	delta, err := buildDelta(opts, rawURL)
	if err != nil {
		return err
	}
	if _, ok := delta.Init[container.InitHeaders]; ok {
		delta.Init[container.InitHeaders] = layerHeaders(base, delta)
	}
	effective := container.Merge(base, delta)
	if effective.ResolveAs() == "" {
		if opts.selector != "" {
			effective = effective.With(container.WithResolveAs(extract.KindDocument))
		} else {
			effective = effective.With(container.WithResolveAs(resolve.MethodText))
		}
	}

	resolver := resolve.NewResolver()
	extract.Register(resolver)

	clientOpts := []fkhttp.ClientOption{
		fkhttp.WithTimeout(global.timeout),
		fkhttp.WithHeader("User-Agent", "fetchkit/"+version),
		fkhttp.WithResolver(resolver),
		fkhttp.WithLogger(slog.Default()),
	}
	if opts.requestID {
		clientOpts = append(clientOpts, fkhttp.WithRequestID())
	}
	var recorder *metrics.Recorder
	if opts.repeat > 1 {
		recorder = metrics.NewRecorder()
		clientOpts = append(clientOpts, fkhttp.WithRecorder(recorder))
	}
	client := fkhttp.NewClient(clientOpts...)

	issue := func(ctx context.Context, c container.Container) (any, error) {
		resp, err := client.Issue(ctx, c)
		if err != nil {
			return nil, err
		}
		if opts.fail && !resp.IsSuccess() {
			return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
		}
		return resolver.Resolve(resp, c.ResolveAs())
	}
	preset := container.Compose[any](issue).Bind(effective)

	formatter := output.NewFormatter(format, global.verbose, useColor(stdout, global.noColor))
	if global.verbose {
		fmt.Fprintln(stderr, formatter.FormatRequestLine(effective.Method(),
			container.AppendQuery(effective.URL, effective.Query())))
	}

	if opts.repeat > 1 {
		return runRepeated(ctx, preset, opts, recorder, formatter, stdout)
	}

	value, err := preset.Call(ctx, container.Container{})
	if err != nil {
		return err
	}
	value, err = postProcess(value, opts)
	if err != nil {
		return err
	}

	text, err := formatter.FormatValue(value)
	if err != nil {
		return err
	}
	if text != "" {
		fmt.Fprintln(stdout, text)
	}
	return nil
}

func runRepeated(ctx context.Context, preset container.Preset[any], opts *requestOptions, recorder *metrics.Recorder, formatter *output.Formatter, stdout io.Writer) error {
	var failures atomic.Int64
	pacer := pace.New(opts.rate)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency)
	for i := 0; i < opts.repeat; i++ {
		g.Go(func() error {
			if err := pacer.Wait(ctx); err != nil {
				return err
			}
			if _, err := preset.Call(ctx, container.Container{}); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				failures.Add(1)
				slog.Debug("request failed", "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	text, err := formatter.FormatSummary(recorder.Snapshot(), int(failures.Load()))
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, text)
	return nil
}

func loadBase(global *globalOptions, preset string) (container.Container, error) {
	if preset == "" {
		return container.Container{}, nil
	}
	if global.configPath == "" {
		return container.Container{}, fmt.Errorf("--preset requires --config")
	}
	cfg, err := config.LoadConfig(global.configPath)
	if err != nil {
		return container.Container{}, err
	}
	vars, err := config.ParseVariables(global.vars)
	if err != nil {
		return container.Container{}, err
	}
	return cfg.Container(preset, vars)
}

// buildDelta turns request flags into the container merged over the preset.
func buildDelta(opts *requestOptions, rawURL string) (container.Container, error) {
	init := container.Init{}
	options := container.Options{}

	if opts.method != "" {
		init[container.InitMethod] = strings.ToUpper(opts.method)
	}

	if len(opts.headers) > 0 {
		headers, err := parseHeaders(opts.headers)
		if err != nil {
			return container.Container{}, err
		}
		init[container.InitHeaders] = headers
	}

	bodies := 0
	for _, set := range []bool{opts.data != "", opts.jsonData != "", len(opts.form) > 0} {
		if set {
			bodies++
		}
	}
	if bodies > 1 {
		return container.Container{}, fmt.Errorf("only one of --data, --json and --form can be used")
	}
	switch {
	case opts.data != "":
		init[container.InitBody] = opts.data
	case opts.jsonData != "":
		var v any
		if err := json.Unmarshal([]byte(opts.jsonData), &v); err != nil {
			return container.Container{}, fmt.Errorf("invalid --json body: %w", err)
		}
		init[container.InitBody] = v
	case len(opts.form) > 0:
		form := url.Values{}
		for _, pair := range opts.form {
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				return container.Container{}, fmt.Errorf("invalid form field %q, expected key=value", pair)
			}
			form.Add(key, value)
		}
		init[container.InitBody] = form
	}

	if opts.omitCredentials {
		init[container.InitCredentials] = "omit"
	}

	if opts.resolveAs != "" {
		options[container.OptionResolveAs] = opts.resolveAs
	}
	if len(opts.query) > 0 {
		q, err := parseQuery(opts.query)
		if err != nil {
			return container.Container{}, err
		}
		options[container.OptionQuery] = q
	}

	return container.New(rawURL, init, options), nil
}

func parseHeaders(raw []string) (map[string]string, error) {
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		key, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid header %q, expected 'Key: Value'", h)
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return headers, nil
}

// layerHeaders adds -H headers on top of the preset's instead of replacing
// the whole header set the way a plain merge does.
func layerHeaders(base, delta container.Container) http.Header {
	headers := base.Headers()
	for key, values := range delta.Headers() {
		headers[key] = values
	}
	return headers
}

func parseQuery(raw []string) (container.Query, error) {
	var q container.Query
	for _, pair := range raw {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid query parameter %q, expected key=value", pair)
		}
		q = q.Add(key, value)
	}
	return q, nil
}

// postProcess applies --select, --jq and --extract in that order.
func postProcess(value any, opts *requestOptions) (any, error) {
	if opts.selector != "" {
		doc, ok := value.(*goquery.Document)
		if !ok {
			return nil, fmt.Errorf("--select needs a document, got %T", value)
		}
		value = extract.Select(doc, opts.selector)
	}
	if opts.jq != "" {
		if resolve.IsEmpty(value) {
			return nil, fmt.Errorf("--jq: response body is empty")
		}
		v, err := extract.Filter(normalize(value), opts.jq)
		if err != nil {
			return nil, err
		}
		value = v
	}
	if opts.extractPath != "" {
		v, err := extract.Path(value, opts.extractPath)
		if err != nil {
			return nil, err
		}
		value = v
	}
	return value, nil
}

// normalize converts values gojq cannot walk, such as []string, through JSON.
func normalize(v any) any {
	switch v.(type) {
	case nil, bool, float64, string, []any, map[string]any:
		return v
	}
	var out any
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

func useColor(w io.Writer, noColor bool) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return output.UseColor(f, noColor)
}
