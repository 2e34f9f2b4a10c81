// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/property-ledger/backend/config"
	"github.com/property-ledger/backend/internal/infra/dependency"
	"github.com/property-ledger/backend/internal/integration/adapters"
	"github.com/property-ledger/backend/internal/integration/persistence/model"
	"github.com/property-ledger/backend/test/integration/mock"
)

const testJWTSecret = "integration-test-secret"

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken string
	userID      uuid.UUID

	// Application
	cfg      *config.Config
	db       *mock.Db
	clock    *adapters.FixedClock
	injector *dependency.Injector

	// ids maps fixture names to their generated ids
	ids map[string]uuid.UUID
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		// Set Gin to test mode
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		mock.RedisServer().Close()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cfg := config.Load()
		cfg.JWT.Secret = testJWTSecret

		tc := &TestContext{
			requestHeaders: make(map[string]string),
			cfg:            cfg,
			db:             mock.NewDb(schemaModels()),
			clock:          adapters.NewFixedClock(time.Now()),
			ids:            make(map[string]uuid.UUID),
		}

		// Setup test server with the full dependency graph
		tc.injector = dependency.NewInjector(cfg, tc.db.DbConn, mock.NewRedis(), dependency.Options{
			Clock: tc.clock,
		})
		tc.engine = tc.injector.Router.Setup("test")
		tc.server = httptest.NewServer(tc.engine)

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc == nil {
			return ctx, nil
		}
		if tc.server != nil {
			tc.server.Close()
		}
		if clearErr := tc.db.ClearDB(); clearErr != nil {
			return ctx, clearErr
		}
		if clearErr := mock.ClearRedis(mock.NewRedis()); clearErr != nil {
			return ctx, clearErr
		}
		return ctx, nil
	})

	// Register step definitions
	registerAPISteps(ctx)
	registerFixtureSteps(ctx)
	registerResponseSteps(ctx)
	registerDatabaseSteps(ctx)
}

// schemaModels keys every ledger model by its table name.
func schemaModels() map[string]any {
	models := make(map[string]any)
	for _, m := range model.All() {
		if tabler, ok := m.(interface{ TableName() string }); ok {
			models[tabler.TableName()] = m
		}
	}
	return models
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I am authenticated as a "([^"]*)"$`, iAmAuthenticatedAs)
	ctx.Step(`^I use the token "([^"]*)"$`, iUseTheToken)
}

// Step implementations

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	return sendRequest(ctx, method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	return sendRequest(ctx, method, endpoint, []byte(tc.expand(body.Content)))
}

func sendRequest(ctx context.Context, method, endpoint string, body []byte) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	url := tc.server.URL + tc.expand(endpoint)
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return ctx, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Add headers
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	// Add auth token if present
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ctx, fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ctx, fmt.Errorf("failed to read response body: %w", err)
	}

	return SetTestContext(ctx, tc), nil
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return SetTestContext(ctx, tc), nil
}

func iAmAuthenticatedAs(ctx context.Context, role string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	tc.userID = uuid.New()
	token, err := mintAccessToken(tc.userID, strings.ToLower(role)+"@example.com", strings.ToUpper(role))
	if err != nil {
		return ctx, err
	}
	tc.accessToken = token
	return SetTestContext(ctx, tc), nil
}

func iUseTheToken(ctx context.Context, token string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.accessToken = token
	return SetTestContext(ctx, tc), nil
}

// expand replaces {user} and {name} placeholders with generated ids.
func (tc *TestContext) expand(s string) string {
	if tc.userID != uuid.Nil {
		s = strings.ReplaceAll(s, "{user}", tc.userID.String())
	}
	for name, id := range tc.ids {
		s = strings.ReplaceAll(s, "{"+name+"}", id.String())
	}
	return s
}
