package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/electronicsclair/Clair-Form/internal/notion"
	"github.com/gin-gonic/gin"
)

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map
func ParseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v (body=%s)", err, w.Body.String())
	}
	return resp
}

// CreateCall is one recorded POST /pages call
type CreateCall struct {
	Body map[string]interface{}
}

// NotionStub is a fake Notion API server for handler/service tests.
// It serves canned query results per database ID and records create calls.
type NotionStub struct {
	Server *httptest.Server

	mu          sync.Mutex
	pages       map[string][]notion.Page
	failQueries map[string]bool
	createCalls []CreateCall
	failCreate  bool
}

// NewNotionStub starts the stub server; it is closed on test cleanup.
func NewNotionStub(t *testing.T) *NotionStub {
	t.Helper()
	s := &NotionStub{
		pages:       make(map[string][]notion.Page),
		failQueries: make(map[string]bool),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Server.Close)
	return s
}

// Client returns a notion client pointed at the stub
func (s *NotionStub) Client() *notion.Client {
	return notion.NewClient("test-token", "2022-06-28").WithBaseURL(s.Server.URL)
}

// SetPages sets the canned query result for a database ID
func (s *NotionStub) SetPages(databaseID string, pages []notion.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[databaseID] = pages
}

// FailQuery makes queries against the given database ID return HTTP 500
func (s *NotionStub) FailQuery(databaseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failQueries[databaseID] = true
}

// FailCreate makes POST /pages return HTTP 500
func (s *NotionStub) FailCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCreate = true
}

// CreateCalls returns all recorded create calls
func (s *NotionStub) CreateCalls() []CreateCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CreateCall(nil), s.createCalls...)
}

func (s *NotionStub) handle(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case strings.HasPrefix(path, "/databases/") && strings.HasSuffix(path, "/query"):
		dbID := strings.TrimSuffix(strings.TrimPrefix(path, "/databases/"), "/query")
		s.mu.Lock()
		fail := s.failQueries[dbID]
		pages := s.pages[dbID]
		s.mu.Unlock()

		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"stub query failure"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(notion.QueryResponse{Results: pages, HasMore: false})

	case path == "/pages":
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		fail := s.failCreate
		if !fail {
			s.createCalls = append(s.createCalls, CreateCall{Body: body})
		}
		s.mu.Unlock()

		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"stub create failure"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"page-stub-001"}`))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// Page builds a reference row from read-side typed property values.
// Convenience for option-builder and handler tests.
func Page(id string, props map[string]notion.Property) notion.Page {
	return notion.Page{ID: id, Properties: props}
}

// TitleProperty builds a read-side title property with one plain_text span
func TitleProperty(text string) notion.Property {
	return notion.Property{Type: notion.TypeTitle, Title: []notion.RichText{{PlainText: text}}}
}

// TextProperty builds a read-side rich_text property with one plain_text span
func TextProperty(text string) notion.Property {
	return notion.Property{Type: notion.TypeRichText, RichText: []notion.RichText{{PlainText: text}}}
}

// SelectProperty builds a read-side select property
func SelectProperty(name string) notion.Property {
	return notion.Property{Type: notion.TypeSelect, Select: &notion.SelectOption{Name: name}}
}
