// Package smoke drives a headless Chromium through the tracker's pages and
// reports every step as OpenTelemetry spans. A run produces one suite span,
// one child span per test case, and one grandchild span per browser action,
// so a trace viewer shows exactly which step of which test broke.
package smoke

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope name for smoke-run spans.
const tracerName = "github.com/ramonehamilton/arc-damage-tracker/internal/smoke"

const (
	suiteName   = "arc-damage-tracker-smoke"
	serviceName = "arc-damage-tracker-e2e"

	viewportWidth  = 1280
	viewportHeight = 720
)

// Config holds smoke run configuration.
type Config struct {
	// BaseURL is the root of the running tracker, e.g. http://localhost:8080.
	BaseURL string

	// Headless controls whether Chromium runs without a visible window.
	Headless bool

	// Environment is reported as the test target environment.
	Environment string

	// NavTimeout bounds page navigations and load waits.
	NavTimeout time.Duration

	// StepTimeout bounds individual element lookups and assertions.
	StepTimeout time.Duration
}

// DefaultConfig returns sensible defaults for a local smoke run.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "http://localhost:8080",
		Headless:    true,
		Environment: "development",
		NavTimeout:  30 * time.Second,
		StepTimeout: 5 * time.Second,
	}
}

// CaseResult records the outcome of a single test case.
type CaseResult struct {
	ID   string
	Name string
	Err  error
}

// Summary aggregates the outcomes of a completed run.
type Summary struct {
	Cases []CaseResult
}

// Total returns the number of executed cases.
func (s *Summary) Total() int {
	return len(s.Cases)
}

// Passed returns the number of cases that finished without error.
func (s *Summary) Passed() int {
	n := 0
	for _, c := range s.Cases {
		if c.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of cases that returned an error.
func (s *Summary) Failed() int {
	return s.Total() - s.Passed()
}

// Result classifies the run as passed, failed or partial.
func (s *Summary) Result() string {
	switch {
	case s.Failed() == 0:
		return "passed"
	case s.Passed() == 0:
		return "failed"
	default:
		return "partial"
	}
}

// testCase couples the span metadata of a case with its body.
type testCase struct {
	ID          string
	Name        string
	Description string
	Tags        []string
	run         func(ctx context.Context, span trace.Span) error
}

// Suite owns the browser session and tracer for one smoke run.
type Suite struct {
	cfg     Config
	tracer  trace.Tracer
	browser *rod.Browser
	page    *rod.Page
}

// NewSuite creates a suite using the globally registered tracer provider.
// Zero config fields fall back to DefaultConfig values.
func NewSuite(cfg Config) *Suite {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Environment == "" {
		cfg.Environment = def.Environment
	}
	if cfg.NavTimeout <= 0 {
		cfg.NavTimeout = def.NavTimeout
	}
	if cfg.StepTimeout <= 0 {
		cfg.StepTimeout = def.StepTimeout
	}
	return &Suite{cfg: cfg, tracer: otel.Tracer(tracerName)}
}

// Run launches Chromium, executes every test case against the configured
// target and returns the per-case outcomes. The returned error covers
// harness-level failures only; assertion failures land in the Summary.
func (s *Suite) Run(ctx context.Context) (*Summary, error) {
	launch := launcher.New().Headless(s.cfg.Headless)
	controlURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	defer launch.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chromium: %w", err)
	}
	defer browser.Close()
	s.browser = browser

	page, err := browser.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}
	s.page = page

	ctx, span := s.tracer.Start(ctx, fmt.Sprintf("suite(%s)", suiteName))
	defer span.End()
	span.SetAttributes(suiteAttributes(s.cfg, collectGitInfo())...)

	summary := &Summary{}
	for _, tc := range s.cases() {
		err := s.runCase(ctx, tc)
		summary.Cases = append(summary.Cases, CaseResult{ID: tc.ID, Name: tc.Name, Err: err})
	}
	finishSuite(span, summary)
	return summary, nil
}

func (s *Suite) cases() []testCase {
	return []testCase{
		{
			ID:          "TC-ARC-001",
			Name:        "home-page-loads",
			Description: "Home page renders the threat-grouped ARC listing",
			Tags:        []string{"smoke", "home"},
			run:         s.homePageLoads,
		},
		{
			ID:          "TC-ARC-002",
			Name:        "arc-detail-navigation",
			Description: "Clicking a listing row opens the ARC detail page",
			Tags:        []string{"smoke", "navigation"},
			run:         s.arcDetailNavigation,
		},
		{
			ID:          "TC-ARC-003",
			Name:        "arc-detail-content",
			Description: "Detail page shows every documented strategy for an ARC",
			Tags:        []string{"smoke", "detail"},
			run:         s.arcDetailContent,
		},
		{
			ID:          "TC-ARC-004",
			Name:        "missing-arc-not-found",
			Description: "Unknown slugs get the not-found page and a 404 status",
			Tags:        []string{"smoke", "errors"},
			run:         s.missingArcNotFound,
		},
	}
}

// runCase wraps a test case in a span carrying the case metadata and outcome.
func (s *Suite) runCase(ctx context.Context, tc testCase) error {
	ctx, span := s.tracer.Start(ctx, fmt.Sprintf("test(%q)", tc.Name))
	defer span.End()
	span.SetAttributes(
		attribute.String("test.case.id", tc.ID),
		attribute.String("test.case.name", tc.Name),
		attribute.String("test.case.description", tc.Description),
		attribute.StringSlice("test.case.tags", tc.Tags),
	)
	if err := tc.run(ctx, span); err != nil {
		span.SetAttributes(
			attribute.String("test.case.result", "failed"),
			attribute.String("test.case.failure_reason", err.Error()),
			attribute.String("arc.failure_url", s.pageURL()),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.String("test.case.result", "passed"))
	span.SetStatus(codes.Ok, "")
	return nil
}

func (s *Suite) homePageLoads(ctx context.Context, span trace.Span) error {
	if _, err := s.navigate(ctx, s.cfg.BaseURL+"/"); err != nil {
		return err
	}
	if err := s.assertVisible(ctx, "h1"); err != nil {
		return err
	}
	if err := s.assertText(ctx, "h1", "ARC Damage Guide"); err != nil {
		return err
	}
	for _, heading := range []string{"Extreme Threat", "Critical Threat", "High Threat"} {
		if err := s.assertText(ctx, "h2", heading); err != nil {
			return err
		}
	}
	links, err := s.countElements("a[href^='/arc/']")
	if err != nil {
		return err
	}
	sections, err := s.countElements("section.threat-section")
	if err != nil {
		return err
	}
	span.SetAttributes(
		attribute.Int("arc.home.total_arc_links", links),
		attribute.Int("arc.home.visible_threat_sections", sections),
	)
	return nil
}

func (s *Suite) arcDetailNavigation(ctx context.Context, span trace.Span) error {
	if _, err := s.navigate(ctx, s.cfg.BaseURL+"/"); err != nil {
		return err
	}
	if err := s.click(ctx, "a[href='/arc/matriarch']"); err != nil {
		return err
	}
	if err := s.assertVisible(ctx, "h1"); err != nil {
		return err
	}
	if url := s.pageURL(); !strings.Contains(url, "/arc/") {
		return fmt.Errorf("expected an ARC detail URL after click, got %s", url)
	}
	name, err := s.elementText("h1")
	if err != nil {
		return err
	}
	span.SetAttributes(
		attribute.String("arc.navigated_to.slug", "matriarch"),
		attribute.String("arc.navigated_to.name", name),
	)
	return nil
}

func (s *Suite) arcDetailContent(ctx context.Context, span trace.Span) error {
	if _, err := s.navigate(ctx, s.cfg.BaseURL+"/arc/matriarch"); err != nil {
		return err
	}
	if err := s.assertText(ctx, "h1", "Matriarch"); err != nil {
		return err
	}
	if err := s.assertVisible(ctx, "section.strategy"); err != nil {
		return err
	}
	name, err := s.elementText("h1")
	if err != nil {
		return err
	}
	title, err := s.pageTitle()
	if err != nil {
		return err
	}
	strategies, err := s.countElements("section.strategy")
	if err != nil {
		return err
	}
	threat, err := s.elementText(".arc-meta .badge")
	if err != nil {
		return err
	}
	span.SetAttributes(
		attribute.String("arc.detail.name", name),
		attribute.String("arc.detail.page_title", title),
		attribute.Int("arc.detail.strategy_count", strategies),
		attribute.String("arc.detail.threat_level", threat),
	)
	_, err = s.navigate(ctx, s.cfg.BaseURL+"/")
	return err
}

func (s *Suite) missingArcNotFound(ctx context.Context, span trace.Span) error {
	status, err := s.navigate(ctx, s.cfg.BaseURL+"/arc/rustbucket")
	if err != nil {
		return err
	}
	if status != 404 {
		return fmt.Errorf("expected status 404 for unknown slug, got %d", status)
	}
	if err := s.assertText(ctx, "h1", "ARC not found"); err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("arc.notfound.response_status", status))
	return nil
}

// suiteAttributes assembles the metadata attached to the suite span.
func suiteAttributes(cfg Config, git gitInfo) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("test.suite.name", suiteName),
		attribute.String("test.suite.id", uuid.NewString()),
		attribute.String("test.run.trigger", "manual"),
		attribute.String("test.run.timestamp", time.Now().UTC().Format(time.RFC3339)),
		attribute.String("test.target.base_url", cfg.BaseURL),
		attribute.String("test.target.environment", cfg.Environment),
		attribute.String("test.browser.name", "chromium"),
		attribute.Bool("test.browser.headless", cfg.Headless),
		attribute.Int("test.viewport.width", viewportWidth),
		attribute.Int("test.viewport.height", viewportHeight),
	}
	return append(attrs, gitAttributes(git)...)
}

// finishSuite records the aggregate outcome on the suite span.
func finishSuite(span trace.Span, sum *Summary) {
	span.SetAttributes(
		attribute.Int("test.suite.total_tests", sum.Total()),
		attribute.Int("test.suite.passed", sum.Passed()),
		attribute.Int("test.suite.failed", sum.Failed()),
		attribute.String("test.suite.result", sum.Result()),
	)
	if sum.Failed() > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d of %d tests failed", sum.Failed(), sum.Total()))
		return
	}
	span.SetStatus(codes.Ok, "")
}
