// Package steps provides step definitions for the BDD feature suite. The
// scenarios run against the real application wired over an in-memory SQLite
// database and an in-process miniredis server.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/envelofy/backend/config"
	"github.com/envelofy/backend/internal/application/adapter"
	"github.com/envelofy/backend/internal/infra/dependency"
	"github.com/envelofy/backend/internal/integration/adapters"
	"github.com/envelofy/backend/internal/integration/persistence/model"
	"github.com/envelofy/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-feature-suite"

// testContext holds the mutable state of one scenario.
type testContext struct {
	uri     string
	client  *http.Client
	headers map[string]string

	response *apiResponse

	db     *mock.Db
	redis  *redis.Client
	tokens adapter.TokenService

	accessToken   string
	currentUserID uuid.UUID

	// Seeded fixtures, keyed by the name used in the feature file.
	accountIDs  map[string]uuid.UUID
	categoryIDs map[string]uuid.UUID
	envelopeIDs map[string]uuid.UUID

	// lastID is the "id" field of the most recent JSON response, if any.
	lastID string
}

// apiResponse is the decoded result of the last HTTP request.
type apiResponse struct {
	status int
	body   any
}

// InitializeTestSuite sets up suite-wide state before any scenario runs.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario wires a fresh testContext and registers every step.
func InitializeScenario(ctx *godog.ScenarioContext) {
	startServer()

	test := &testContext{
		uri:    fmt.Sprintf("http://localhost:%d", serverPort),
		client: &http.Client{Timeout: 10 * time.Second},
		db:     testDb,
		redis:  testRedis,
		tokens: adapters.NewTokenService(testJWTSecret, 15*time.Minute),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.reset()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Fixture steps
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^I am not authenticated$`, test.iAmNotAuthenticated)
	ctx.Given(`^an account "([^"]*)" of type "([^"]*)" exists$`, test.anAccountOfTypeExists)
	ctx.Given(`^a category "([^"]*)" exists$`, test.aCategoryExists)
	ctx.Given(`^an envelope "([^"]*)" with monthly budget "([^"]*)" in category "([^"]*)" exists$`, test.anEnvelopeInCategoryExists)
	ctx.Given(`^an? (merchant|temporal|amount) pattern "([^"]*)" for category "([^"]*)" exists with (\d+) matches and (\d+) correct$`, test.aPatternExists)
	ctx.Given(`^the account "([^"]*)" has the following transactions:$`, test.theAccountHasTransactions)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I upload the CSV below to "([^"]*)" for account "([^"]*)":$`, test.iUploadTheCSVBelow)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should be empty$`, test.theResponseFieldShouldBeEmpty)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

// reset clears scenario-local state plus all persisted and cached data.
func (t *testContext) reset() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.accountIDs = make(map[string]uuid.UUID)
	t.categoryIDs = make(map[string]uuid.UUID)
	t.envelopeIDs = make(map[string]uuid.UUID)
	t.lastID = ""

	if err := t.db.Clear(); err != nil {
		return fmt.Errorf("failed to clear database: %w", err)
	}
	if err := mock.ClearRedis(t.redis); err != nil {
		return fmt.Errorf("failed to clear redis: %w", err)
	}
	return nil
}

var (
	serverOnce sync.Once
	serverPort int
	testDb     *mock.Db
	testRedis  *redis.Client
)

// startServer boots the full application once for the whole suite: real
// router, controllers, use cases and repositories over the mock backends.
func startServer() {
	serverOnce.Do(func() {
		testDb = mock.NewDb(map[string]any{
			"users":        &model.UserModel{},
			"accounts":     &model.AccountModel{},
			"categories":   &model.CategoryModel{},
			"envelopes":    &model.EnvelopeModel{},
			"patterns":     &model.PatternModel{},
			"transactions": &model.TransactionModel{},
			"insights":     &model.InsightModel{},
		})
		testRedis = mock.NewRedis()
		serverPort = findAvailablePort()

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret

		injector := dependency.NewInjector(cfg, testDb.Conn, testRedis)
		engine := injector.Router.Setup(cfg.Server.Environment)

		go func() {
			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", serverPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()

		waitForServer(fmt.Sprintf("http://localhost:%d/health", serverPort))
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func waitForServer(healthURL string) {
	for i := 0; i < 50; i++ {
		resp, err := http.Get(healthURL)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	panic("test server did not come up")
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.uri + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server unhealthy, status %d", resp.StatusCode)
	}
	return nil
}
