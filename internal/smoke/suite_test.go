package smoke

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// newTestSuite returns a suite wired to an in-memory exporter so tests can
// inspect recorded spans without a browser.
func newTestSuite(t *testing.T) (*Suite, *tracetest.InMemoryExporter) {
	t.Helper()
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	s := &Suite{cfg: DefaultConfig(), tracer: tp.Tracer("smoke-test")}
	return s, exp
}

func attrMap(stub tracetest.SpanStub) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(stub.Attributes))
	for _, kv := range stub.Attributes {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestRunCasePassed(t *testing.T) {
	s, exp := newTestSuite(t)

	err := s.runCase(context.Background(), testCase{
		ID:          "TC-TEST-001",
		Name:        "stub-case",
		Description: "always passes",
		Tags:        []string{"smoke"},
		run: func(ctx context.Context, span trace.Span) error {
			return nil
		},
	})
	if err != nil {
		t.Fatalf("runCase() error = %v, want nil", err)
	}

	spans := exp.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	span := spans[0]
	if span.Name != `test("stub-case")` {
		t.Errorf("span name = %q, want %q", span.Name, `test("stub-case")`)
	}
	attrs := attrMap(span)
	if got := attrs["test.case.result"].AsString(); got != "passed" {
		t.Errorf("test.case.result = %q, want %q", got, "passed")
	}
	if got := attrs["test.case.id"].AsString(); got != "TC-TEST-001" {
		t.Errorf("test.case.id = %q, want %q", got, "TC-TEST-001")
	}
	if span.Status.Code != codes.Ok {
		t.Errorf("status code = %v, want %v", span.Status.Code, codes.Ok)
	}
}

func TestRunCaseFailed(t *testing.T) {
	s, exp := newTestSuite(t)

	caseErr := errors.New("h1 never appeared")
	err := s.runCase(context.Background(), testCase{
		ID:   "TC-TEST-002",
		Name: "failing-case",
		run: func(ctx context.Context, span trace.Span) error {
			return caseErr
		},
	})
	if !errors.Is(err, caseErr) {
		t.Fatalf("runCase() error = %v, want %v", err, caseErr)
	}

	spans := exp.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	span := spans[0]
	attrs := attrMap(span)
	if got := attrs["test.case.result"].AsString(); got != "failed" {
		t.Errorf("test.case.result = %q, want %q", got, "failed")
	}
	if got := attrs["test.case.failure_reason"].AsString(); got != caseErr.Error() {
		t.Errorf("test.case.failure_reason = %q, want %q", got, caseErr.Error())
	}
	if got := attrs["arc.failure_url"].AsString(); got != "about:blank" {
		t.Errorf("arc.failure_url = %q, want %q", got, "about:blank")
	}
	if span.Status.Code != codes.Error {
		t.Errorf("status code = %v, want %v", span.Status.Code, codes.Error)
	}

	foundException := false
	for _, ev := range span.Events {
		if ev.Name == "exception" {
			foundException = true
		}
	}
	if !foundException {
		t.Error("failed case did not record an exception event")
	}
}

func TestActionSpanSuccess(t *testing.T) {
	s, exp := newTestSuite(t)

	ctx, parent := s.tracer.Start(context.Background(), "case")
	err := s.action(ctx, "assert_text", "h1", func(ctx context.Context, span trace.Span) error {
		return nil
	})
	parent.End()
	if err != nil {
		t.Fatalf("action() error = %v, want nil", err)
	}

	spans := exp.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("recorded %d spans, want 2", len(spans))
	}
	action := spans[0]
	if action.Name != "assert_text(h1)" {
		t.Errorf("span name = %q, want %q", action.Name, "assert_text(h1)")
	}
	if action.Parent.SpanID() != spans[1].SpanContext.SpanID() {
		t.Error("action span is not a child of the case span")
	}
	attrs := attrMap(action)
	if got := attrs["test.action.type"].AsString(); got != "assert_text" {
		t.Errorf("test.action.type = %q, want %q", got, "assert_text")
	}
	if got := attrs["test.action.selector"].AsString(); got != "h1" {
		t.Errorf("test.action.selector = %q, want %q", got, "h1")
	}
	if got := attrs["test.action.result"].AsString(); got != "success" {
		t.Errorf("test.action.result = %q, want %q", got, "success")
	}
	if got := attrs["test.action.page_url"].AsString(); got != "about:blank" {
		t.Errorf("test.action.page_url = %q, want %q", got, "about:blank")
	}
}

func TestActionSpanFailure(t *testing.T) {
	s, exp := newTestSuite(t)

	stepErr := errors.New("element not found")
	err := s.action(context.Background(), "click", "a[href='/arc/wasp']", func(ctx context.Context, span trace.Span) error {
		return stepErr
	})
	if !errors.Is(err, stepErr) {
		t.Fatalf("action() error = %v, want %v", err, stepErr)
	}

	spans := exp.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	span := spans[0]
	if span.Name != "click(a[href='/arc/wasp'])" {
		t.Errorf("span name = %q, want %q", span.Name, "click(a[href='/arc/wasp'])")
	}
	attrs := attrMap(span)
	if got := attrs["test.action.result"].AsString(); got != "failed" {
		t.Errorf("test.action.result = %q, want %q", got, "failed")
	}
	if span.Status.Code != codes.Error {
		t.Errorf("status code = %v, want %v", span.Status.Code, codes.Error)
	}
}

func TestSuiteAttributes(t *testing.T) {
	cfg := DefaultConfig()
	attrs := suiteAttributes(cfg, gitInfo{CommitSHA: "abc123", Branch: "main"})

	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[kv.Key] = kv.Value
	}

	if got := m["test.suite.name"].AsString(); got != "arc-damage-tracker-smoke" {
		t.Errorf("test.suite.name = %q, want %q", got, "arc-damage-tracker-smoke")
	}
	if got := m["test.suite.id"].AsString(); got == "" {
		t.Error("test.suite.id is empty")
	}
	if got := m["test.run.timestamp"].AsString(); got != "" {
		if _, err := time.Parse(time.RFC3339, got); err != nil {
			t.Errorf("test.run.timestamp %q is not RFC3339: %v", got, err)
		}
	} else {
		t.Error("test.run.timestamp is empty")
	}
	if got := m["test.target.base_url"].AsString(); got != cfg.BaseURL {
		t.Errorf("test.target.base_url = %q, want %q", got, cfg.BaseURL)
	}
	if got := m["test.browser.name"].AsString(); got != "chromium" {
		t.Errorf("test.browser.name = %q, want %q", got, "chromium")
	}
	if got := m["test.viewport.width"].AsInt64(); got != viewportWidth {
		t.Errorf("test.viewport.width = %d, want %d", got, viewportWidth)
	}
	if got := m["vcs.commit.sha"].AsString(); got != "abc123" {
		t.Errorf("vcs.commit.sha = %q, want %q", got, "abc123")
	}
	if got := m["vcs.branch"].AsString(); got != "main" {
		t.Errorf("vcs.branch = %q, want %q", got, "main")
	}
}

func TestGitAttributesOmitsEmptyFields(t *testing.T) {
	if got := gitAttributes(gitInfo{}); len(got) != 0 {
		t.Errorf("gitAttributes(empty) returned %d attributes, want 0", len(got))
	}
	if got := gitAttributes(gitInfo{CommitSHA: "abc"}); len(got) != 1 {
		t.Errorf("gitAttributes(sha only) returned %d attributes, want 1", len(got))
	}
}

func TestFinishSuite(t *testing.T) {
	tests := []struct {
		name       string
		cases      []CaseResult
		wantResult string
		wantCode   codes.Code
	}{
		{
			name: "all passed",
			cases: []CaseResult{
				{Name: "a"}, {Name: "b"},
			},
			wantResult: "passed",
			wantCode:   codes.Ok,
		},
		{
			name: "partial",
			cases: []CaseResult{
				{Name: "a"}, {Name: "b", Err: errors.New("boom")},
			},
			wantResult: "partial",
			wantCode:   codes.Error,
		},
		{
			name: "all failed",
			cases: []CaseResult{
				{Name: "a", Err: errors.New("boom")},
			},
			wantResult: "failed",
			wantCode:   codes.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, exp := newTestSuite(t)
			_, span := s.tracer.Start(context.Background(), "suite(test)")
			sum := &Summary{Cases: tt.cases}
			finishSuite(span, sum)
			span.End()

			spans := exp.GetSpans()
			if len(spans) != 1 {
				t.Fatalf("recorded %d spans, want 1", len(spans))
			}
			attrs := attrMap(spans[0])
			if got := attrs["test.suite.result"].AsString(); got != tt.wantResult {
				t.Errorf("test.suite.result = %q, want %q", got, tt.wantResult)
			}
			if got := attrs["test.suite.total_tests"].AsInt64(); got != int64(len(tt.cases)) {
				t.Errorf("test.suite.total_tests = %d, want %d", got, len(tt.cases))
			}
			if spans[0].Status.Code != tt.wantCode {
				t.Errorf("status code = %v, want %v", spans[0].Status.Code, tt.wantCode)
			}
		})
	}
}

func TestSummaryResult(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		sum  Summary
		want string
	}{
		{"no cases", Summary{}, "passed"},
		{"all passed", Summary{Cases: []CaseResult{{}, {}}}, "passed"},
		{"mixed", Summary{Cases: []CaseResult{{}, {Err: boom}}}, "partial"},
		{"all failed", Summary{Cases: []CaseResult{{Err: boom}}}, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sum.Result(); got != tt.want {
				t.Errorf("Result() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSuiteCases(t *testing.T) {
	s := NewSuite(Config{})
	cases := s.cases()
	if len(cases) != 4 {
		t.Fatalf("cases() returned %d cases, want 4", len(cases))
	}
	seen := make(map[string]bool)
	for _, tc := range cases {
		if tc.ID == "" || tc.Name == "" {
			t.Errorf("case %+v missing ID or name", tc)
		}
		if seen[tc.ID] {
			t.Errorf("duplicate case ID %s", tc.ID)
		}
		seen[tc.ID] = true
		if tc.run == nil {
			t.Errorf("case %s has no body", tc.ID)
		}
	}
}

func TestNewSuiteDefaults(t *testing.T) {
	s := NewSuite(Config{BaseURL: "http://example.test:9090/"})
	if s.cfg.BaseURL != "http://example.test:9090" {
		t.Errorf("BaseURL = %q, want trailing slash stripped", s.cfg.BaseURL)
	}
	if s.cfg.NavTimeout <= 0 || s.cfg.StepTimeout <= 0 {
		t.Error("timeouts were not defaulted")
	}
	if s.cfg.Environment != "development" {
		t.Errorf("Environment = %q, want %q", s.cfg.Environment, "development")
	}
}

func TestInitProviderWithoutExporter(t *testing.T) {
	origTP := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(origTP) })

	shutdown, err := InitProvider(context.Background(), ProviderConfig{})
	if err != nil {
		t.Fatalf("InitProvider() error = %v", err)
	}
	if shutdown == nil {
		t.Fatal("InitProvider() returned nil shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}
