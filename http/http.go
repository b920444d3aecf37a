package http

import (
	"github.com/wesleyorama2/fetchkit/internal/container"
	fkhttp "github.com/wesleyorama2/fetchkit/internal/http"
	"github.com/wesleyorama2/fetchkit/internal/resolve"
)

type (
	// Container is a partial request configuration.
	Container = container.Container
	// Init holds method, headers, body and credentials.
	Init = container.Init
	// Options holds resolveAs, payloadAs and query.
	Options = container.Options
	// Query is an ordered list of query parameters.
	Query = container.Query
	// Param is one query parameter.
	Param = container.Param
	// PayloadFunc transforms a body before it is encoded.
	PayloadFunc = container.PayloadFunc

	// Client issues requests described by containers.
	Client = fkhttp.Client
	// ClientOption configures a Client.
	ClientOption = fkhttp.ClientOption
	// Response is a received response whose body can be read once.
	Response = fkhttp.Response
	// TimingInfo holds the phases of a request.
	TimingInfo = fkhttp.TimingInfo

	// Resolver maps resolution kinds to extraction methods.
	Resolver = resolve.Resolver
	// ResolvableResponse is what a Resolver reads from.
	ResolvableResponse = resolve.Response
	// ExtractFunc is a custom extraction method.
	ExtractFunc = resolve.ExtractFunc
	// Blob is a body together with its media type.
	Blob = resolve.Blob
	// Empty is the JSON result of an empty body.
	Empty = resolve.Empty
	// UnsupportedMethodError reports a kind with no extraction method.
	UnsupportedMethodError = resolve.UnsupportedMethodError
)

// Preset is a request function bound to a base container.
type Preset = container.Preset[any]

var (
	// ErrBodyUsed is returned when a response body is read twice.
	ErrBodyUsed = fkhttp.ErrBodyUsed
	// ErrUnsupportedMethod matches every UnsupportedMethodError.
	ErrUnsupportedMethod = resolve.ErrUnsupportedMethod
)

// Constructors and helpers.
var (
	NewContainer       = container.New
	Merge              = container.Merge
	MergeAll           = container.MergeAll
	CombineURLs        = container.CombineURLs
	CreateQuery        = container.CreateQuery
	AppendQuery        = container.AppendQuery
	EncodeURIComponent = container.EncodeURIComponent
	JSONPayload        = container.JSONPayload

	NewClient      = fkhttp.NewClient
	WithTimeout    = fkhttp.WithTimeout
	WithHeader     = fkhttp.WithHeader
	WithHTTPClient = fkhttp.WithHTTPClient
	WithResolver   = fkhttp.WithResolver
	WithLogger     = fkhttp.WithLogger
	WithRequestID  = fkhttp.WithRequestID

	NewResolver   = resolve.NewResolver
	WithExtension = resolve.WithExtension
	Resolve       = resolve.Resolve
	MethodName    = resolve.MethodName
)
