// Package firestore implements service.DocumentStore using the Cloud Firestore REST API.
package firestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	firestore "google.golang.org/api/firestore/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"nenkin/internal/config"
	"nenkin/internal/service"
)

const (
	// DefaultDatabase is the database id every Firebase project has.
	DefaultDatabase = "(default)"

	// PageSize is the number of documents per list page.
	PageSize = 300

	// APITimeout is the timeout for a single document update.
	APITimeout = 10 * time.Second

	// OAuth scope for Cloud Datastore / Firestore
	datastoreScope = "https://www.googleapis.com/auth/datastore"
)

// Client implements service.DocumentStore using the Firestore REST API.
type Client struct {
	svc      *firestore.Service
	project  string
	database string
}

// New creates a Firestore client for the configured project.
// Transport is chosen in this order: emulator host, credentials file, API key.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	fb := cfg.Env.Firebase
	if fb.ProjectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is not set")
	}

	var opts []option.ClientOption
	switch {
	case fb.EmulatorHost != "":
		opts = append(opts,
			option.WithEndpoint("http://"+fb.EmulatorHost+"/"),
			option.WithoutAuthentication())

	case cfg.Env.CredentialsFile != "":
		keyJSON, err := os.ReadFile(cfg.Env.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		jwtConfig, err := google.JWTConfigFromJSON(keyJSON, datastoreScope)
		if err != nil {
			return nil, fmt.Errorf("invalid credentials file: %w", err)
		}
		// Token source refreshes automatically
		httpClient := oauth2.NewClient(ctx, jwtConfig.TokenSource(ctx))
		opts = append(opts, option.WithHTTPClient(httpClient))

	case fb.APIKey != "":
		opts = append(opts, option.WithAPIKey(fb.APIKey))

	default:
		return nil, fmt.Errorf("no remote credentials: set FIREBASE_API_KEY, NENKIN_CREDENTIALS_FILE or FIRESTORE_EMULATOR_HOST")
	}

	return NewWithOptions(ctx, fb.ProjectID, opts...)
}

// NewWithOptions creates a client with explicit client options (for testing).
func NewWithOptions(ctx context.Context, project string, opts ...option.ClientOption) (*Client, error) {
	svc, err := firestore.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore service: %w", err)
	}
	return &Client{
		svc:      svc,
		project:  project,
		database: DefaultDatabase,
	}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and endpoint (for testing).
func NewWithHTTPClient(ctx context.Context, project, endpoint string, httpClient *http.Client) (*Client, error) {
	return NewWithOptions(ctx, project,
		option.WithEndpoint(endpoint),
		option.WithHTTPClient(httpClient))
}

func (c *Client) documentsRoot() string {
	return fmt.Sprintf("projects/%s/databases/%s/documents", c.project, c.database)
}

func (c *Client) documentName(collection, id string) string {
	return c.documentsRoot() + "/" + collection + "/" + id
}

// ReadAll returns every document of collection, page by page.
// The caller's context bounds the whole listing.
func (c *Client) ReadAll(ctx context.Context, collection string) ([]service.Document, error) {
	var result []service.Document
	err := c.svc.Projects.Databases.Documents.List(c.documentsRoot(), collection).
		PageSize(PageSize).
		Pages(ctx, func(resp *firestore.ListDocumentsResponse) error {
			for _, d := range resp.Documents {
				doc, err := decodeDocument(d)
				if err != nil {
					return err
				}
				result = append(result, doc)
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(ctx, err)
	}
	return result, nil
}

// Update sets exactly the given fields on an existing document.
// The update mask limits the write to those fields and the exists
// precondition keeps the call from creating a missing document.
func (c *Client) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	encoded := make(map[string]firestore.Value, len(fields))
	mask := make([]string, 0, len(fields))
	for name, v := range fields {
		val, err := encodeValue(v)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		encoded[name] = val
		mask = append(mask, name)
	}
	sort.Strings(mask)

	_, err := c.svc.Projects.Databases.Documents.
		Patch(c.documentName(collection, id), &firestore.Document{Fields: encoded}).
		UpdateMaskFieldPaths(mask...).
		CurrentDocumentExists(true).
		Context(ctx).
		Do()
	if err != nil {
		return wrapError(ctx, err)
	}
	return nil
}

// wireValue mirrors the JSON form of a Firestore Value for the types the
// checklist stores. Integers travel as decimal strings.
type wireValue struct {
	StringValue  *string          `json:"stringValue,omitempty"`
	BooleanValue *bool            `json:"booleanValue,omitempty"`
	IntegerValue *json.Number     `json:"integerValue,omitempty"`
	DoubleValue  *json.RawMessage `json:"doubleValue,omitempty"`
	NullValue    *string          `json:"nullValue,omitempty"`
}

func decodeDocument(d *firestore.Document) (service.Document, error) {
	doc := service.Document{
		ID:     path.Base(d.Name),
		Fields: make(map[string]any, len(d.Fields)),
	}
	for name, v := range d.Fields {
		v := v
		raw, err := json.Marshal(&v)
		if err != nil {
			return service.Document{}, fmt.Errorf("document %s field %s: %w", doc.ID, name, err)
		}
		var w wireValue
		if err := json.Unmarshal(raw, &w); err != nil {
			return service.Document{}, fmt.Errorf("document %s field %s: %w", doc.ID, name, err)
		}
		doc.Fields[name] = w.value()
	}
	return doc, nil
}

// value returns the Go value; unsupported kinds (maps, arrays, timestamps) decode to nil.
func (w wireValue) value() any {
	switch {
	case w.StringValue != nil:
		return *w.StringValue
	case w.BooleanValue != nil:
		return *w.BooleanValue
	case w.IntegerValue != nil:
		if n, err := w.IntegerValue.Int64(); err == nil {
			return n
		}
	case w.DoubleValue != nil:
		var f float64
		if err := json.Unmarshal(*w.DoubleValue, &f); err == nil {
			return f
		}
	}
	return nil
}

func encodeValue(v any) (firestore.Value, error) {
	var w wireValue
	var force string
	switch x := v.(type) {
	case string:
		w.StringValue, force = &x, "StringValue"
	case bool:
		w.BooleanValue, force = &x, "BooleanValue"
	case nil:
		null := "NULL_VALUE"
		w.NullValue, force = &null, "NullValue"
	default:
		return firestore.Value{}, fmt.Errorf("unsupported value type %T", v)
	}

	raw, err := json.Marshal(w)
	if err != nil {
		return firestore.Value{}, err
	}
	var val firestore.Value
	if err := json.Unmarshal(raw, &val); err != nil {
		return firestore.Value{}, err
	}
	// false and "" are zero values the client would otherwise omit
	val.ForceSendFields = []string{force}
	return val, nil
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	// Check for timeout
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", context.DeadlineExceeded)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("permission denied (check FIREBASE_API_KEY and security rules): %s", strings.TrimSpace(apiErr.Message))
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", service.ErrNotFound, strings.TrimSpace(apiErr.Message))
		}
	}
	return err
}
