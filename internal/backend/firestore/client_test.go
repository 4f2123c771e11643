package firestore_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"nenkin/internal/backend/firestore"
	"nenkin/internal/config"
	"nenkin/internal/service"
)

const docsPrefix = "/v1/projects/demo/databases/(default)/documents/questions"

// fakeServer serves the two Firestore REST calls the client makes.
type fakeServer struct {
	mu      sync.Mutex
	pages   []string
	patches []patchCall
	status  int
}

type patchCall struct {
	Path   string
	Mask   []string
	Exists string
	Body   map[string]map[string]map[string]any
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !strings.HasPrefix(r.URL.Path, docsPrefix) {
		http.NotFound(w, r)
		return
	}
	if f.status != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		fmt.Fprintf(w, `{"error":{"code":%d,"message":"rejected","status":"FAILED"}}`, f.status)
		return
	}

	switch r.Method {
	case http.MethodGet:
		page := 0
		if tok := r.URL.Query().Get("pageToken"); tok != "" {
			fmt.Sscanf(tok, "p%d", &page)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, f.pages[page])

	case http.MethodPatch:
		var body struct {
			Fields map[string]map[string]any `json:"fields"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		q := r.URL.Query()
		f.patches = append(f.patches, patchCall{
			Path:   r.URL.Path,
			Mask:   q["updateMask.fieldPaths"],
			Exists: q.Get("currentDocument.exists"),
			Body:   map[string]map[string]map[string]any{"fields": body.Fields},
		})
		if strings.HasSuffix(r.URL.Path, "/missing") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"error":{"code":404,"message":"No document to update","status":"NOT_FOUND"}}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newClient(t *testing.T, srv *fakeServer) *firestore.Client {
	t.Helper()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	c, err := firestore.NewWithOptions(context.Background(), "demo",
		option.WithEndpoint(ts.URL+"/"),
		option.WithoutAuthentication())
	require.NoError(t, err)
	return c
}

func doc(id, fields string) string {
	return fmt.Sprintf(`{"name":"projects/demo/databases/(default)/documents/questions/%s","fields":{%s}}`, id, fields)
}

func TestReadAll_Pages(t *testing.T) {
	srv := &fakeServer{pages: []string{
		`{"documents":[` +
			doc("hospital-1", `"section":{"stringValue":"病院"},"title":{"stringValue":"診断書"},"checked":{"booleanValue":true},"answer":{"stringValue":""}`) +
			`],"nextPageToken":"p1"}`,
		`{"documents":[` +
			doc("pension-1", `"section":{"stringValue":"年金"},"checked":{"booleanValue":false},"order":{"integerValue":"3"},"extra":{"nullValue":null}`) +
			`]}`,
	}}
	c := newClient(t, srv)

	docs, err := c.ReadAll(context.Background(), "questions")

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "hospital-1", docs[0].ID)
	assert.Equal(t, "病院", docs[0].Fields["section"])
	assert.Equal(t, true, docs[0].Fields["checked"])
	assert.Equal(t, "", docs[0].Fields["answer"])
	assert.Equal(t, "pension-1", docs[1].ID)
	assert.Equal(t, false, docs[1].Fields["checked"])
	assert.Equal(t, int64(3), docs[1].Fields["order"])
	assert.Nil(t, docs[1].Fields["extra"])
}

func TestReadAll_Empty(t *testing.T) {
	c := newClient(t, &fakeServer{pages: []string{`{}`}})

	docs, err := c.ReadAll(context.Background(), "questions")

	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestReadAll_PermissionDenied(t *testing.T) {
	c := newClient(t, &fakeServer{status: http.StatusForbidden})

	_, err := c.ReadAll(context.Background(), "questions")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestUpdate_MaskAndPrecondition(t *testing.T) {
	srv := &fakeServer{}
	c := newClient(t, srv)

	err := c.Update(context.Background(), "questions", "hospital-1", map[string]any{
		service.FieldChecked: false,
		service.FieldAnswer:  "",
	})

	require.NoError(t, err)
	require.Len(t, srv.patches, 1)
	p := srv.patches[0]
	assert.Equal(t, docsPrefix+"/hospital-1", p.Path)
	assert.Equal(t, []string{"answer", "checked"}, p.Mask)
	assert.Equal(t, "true", p.Exists)

	fields := p.Body["fields"]
	require.Len(t, fields, 2)
	// zero values must still be sent
	assert.Equal(t, map[string]any{"stringValue": ""}, fields["answer"])
	assert.Equal(t, map[string]any{"booleanValue": false}, fields["checked"])
}

func TestUpdate_MissingDocument(t *testing.T) {
	c := newClient(t, &fakeServer{})

	err := c.Update(context.Background(), "questions", "missing", map[string]any{service.FieldChecked: true})

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdate_UnsupportedValue(t *testing.T) {
	srv := &fakeServer{}
	c := newClient(t, srv)

	err := c.Update(context.Background(), "questions", "hospital-1", map[string]any{"when": struct{}{}})

	assert.Error(t, err)
	assert.Empty(t, srv.patches)
}

func TestUpdate_Timeout(t *testing.T) {
	c := newClient(t, &fakeServer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Update(ctx, "questions", "hospital-1", map[string]any{service.FieldChecked: true})

	assert.Error(t, err)
}

func TestNew_RequiresProjectAndCredentials(t *testing.T) {
	_, err := firestore.New(context.Background(), &config.Config{})
	assert.ErrorContains(t, err, "FIREBASE_PROJECT_ID")

	cfg := &config.Config{}
	cfg.Env.Firebase.ProjectID = "demo"
	_, err = firestore.New(context.Background(), cfg)
	assert.ErrorContains(t, err, "no remote credentials")

	cfg.Env.Firebase.APIKey = "key"
	c, err := firestore.New(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestNew_BadCredentialsFile(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Firebase.ProjectID = "demo"
	cfg.Env.CredentialsFile = t.TempDir() + "/absent.json"

	_, err := firestore.New(context.Background(), cfg)

	assert.ErrorContains(t, err, "credentials file")
}
