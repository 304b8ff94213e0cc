package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/opsdesk/apps/api/echo"
	"github.com/trezcool/opsdesk/core"
	"github.com/trezcool/opsdesk/core/fleet"
	"github.com/trezcool/opsdesk/core/review"
	emailsvc "github.com/trezcool/opsdesk/services/email"
	inmemdb "github.com/trezcool/opsdesk/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

func newTestConfig() *core.Config {
	conf := &core.Config{
		AppName:   "Opsdesk",
		Env:       "TEST",
		TestMode:  true,
		SecretKey: "secret",
		Store:     core.StoreMemory,
	}
	conf.Server.JWTExpirationDelta = 10 * time.Minute
	return conf
}

// nopLogger drops every message
type nopLogger struct{}

var _ core.Logger = (*nopLogger)(nil) // interface compliance check

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func setup(t *testing.T) (*Server, *core.Config) {
	conf := newTestConfig()

	// set up DB & store
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	store := inmemdb.NewDocumentStore(db)

	// set up services
	translator := core.NewTranslator()
	validate := core.NewValidator(translator)
	fleet.InitValidators(validate, translator)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	// set up server
	return NewServer(
		ServerDeps{
			Conf:           conf,
			Logger:         nopLogger{},
			ReviewSvc:      review.NewService(store, validate, review.DefaultQueues()...),
			FleetSvc:       fleet.NewService(store, fleet.NewPlanner(fleet.DefaultPlan()), validate, mailSvc, nil),
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
		},
	), conf
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, conf *core.Config, role string) string {
	token, err := GenerateToken(conf, GetClaims(conf, role+"-user", role))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app http.Handler, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decodeBody() failed: %v", err)
	}
}

func Test_home(t *testing.T) {
	app, _ := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Opsdesk API!", rec.Body.String())
}
