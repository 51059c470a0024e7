package smoke

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// navTimingJS reads the navigation performance entry. Returns null when
// the browser has not recorded one.
const navTimingJS = `() => {
	const entries = performance.getEntriesByType('navigation');
	if (entries.length === 0) {
		return null;
	}
	const nav = entries[0];
	return {
		domContentLoaded: nav.domContentLoadedEventEnd - nav.startTime,
		loadEvent: nav.loadEventEnd - nav.startTime,
		transferSize: nav.transferSize || 0,
		domInteractive: nav.domInteractive - nav.startTime,
	};
}`

// action runs fn inside a span named after the step, e.g. navigate(/arc/wasp)
// or assert_text(h1), recording the attribute set every browser action carries.
func (s *Suite) action(ctx context.Context, actionType, selector string, fn func(ctx context.Context, span trace.Span) error) error {
	ctx, span := s.tracer.Start(ctx, fmt.Sprintf("%s(%s)", actionType, selector))
	defer span.End()
	span.SetAttributes(
		attribute.String("test.action.type", actionType),
		attribute.String("test.action.selector", selector),
		attribute.String("test.action.page_url", s.pageURL()),
	)
	if err := fn(ctx, span); err != nil {
		span.SetAttributes(attribute.String("test.action.result", "failed"))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.String("test.action.result", "success"))
	return nil
}

// navigate loads target, waits for the load event and returns the HTTP
// status of the document response.
func (s *Suite) navigate(ctx context.Context, target string) (int, error) {
	status := 0
	err := s.action(ctx, "navigate", target, func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(attribute.String("test.action.target_url", target))
		page := s.page.Context(ctx).Timeout(s.cfg.NavTimeout)
		wait := page.EachEvent(func(ev *proto.NetworkResponseReceived) bool {
			if ev.Type != proto.NetworkResourceTypeDocument {
				return false
			}
			status = ev.Response.Status
			return true
		})
		if err := page.Navigate(target); err != nil {
			return fmt.Errorf("navigate to %s: %w", target, err)
		}
		wait()
		if err := page.WaitLoad(); err != nil {
			return fmt.Errorf("wait for load: %w", err)
		}
		span.SetAttributes(attribute.Int("test.navigation.response_status", status))
		s.recordNavTiming(span)
		return nil
	})
	return status, err
}

// click clicks the first element matching selector and waits for the
// resulting page load.
func (s *Suite) click(ctx context.Context, selector string) error {
	return s.action(ctx, "click", selector, func(ctx context.Context, span trace.Span) error {
		page := s.page.Context(ctx)
		el, err := page.Timeout(s.cfg.StepTimeout).Element(selector)
		if err != nil {
			return fmt.Errorf("element not found: %w", err)
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return fmt.Errorf("click %s: %w", selector, err)
		}
		if err := page.Timeout(s.cfg.NavTimeout).WaitLoad(); err != nil {
			return fmt.Errorf("wait for load: %w", err)
		}
		return nil
	})
}

// assertVisible fails unless an element matching selector exists and is
// visible within the step timeout.
func (s *Suite) assertVisible(ctx context.Context, selector string) error {
	return s.action(ctx, "assert_visible", selector, func(ctx context.Context, span trace.Span) error {
		page := s.page.Context(ctx)
		el, err := page.Timeout(s.cfg.StepTimeout).Element(selector)
		if err != nil {
			return fmt.Errorf("element not found: %w", err)
		}
		visible, err := el.Visible()
		if err != nil {
			return err
		}
		if !visible {
			return fmt.Errorf("element %s is not visible", selector)
		}
		return nil
	})
}

// assertText fails unless some element matching selector contains expected,
// compared case-insensitively.
func (s *Suite) assertText(ctx context.Context, selector, expected string) error {
	return s.action(ctx, "assert_text", selector, func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(attribute.String("test.action.expected_text", expected))
		page := s.page.Context(ctx)
		pattern := "/" + regexp.QuoteMeta(expected) + "/i"
		if _, err := page.Timeout(s.cfg.StepTimeout).ElementR(selector, pattern); err != nil {
			return fmt.Errorf("no %s element containing %q: %w", selector, expected, err)
		}
		return nil
	})
}

// recordNavTiming attaches browser performance timings when the page exposes
// them. Missing entries are skipped rather than failing the action.
func (s *Suite) recordNavTiming(span trace.Span) {
	res, err := s.page.Evaluate(&rod.EvalOptions{JS: navTimingJS, ByValue: true})
	if err != nil || res == nil || res.Value.Nil() {
		return
	}
	v := res.Value
	span.SetAttributes(
		attribute.Float64("test.navigation.dom_content_loaded_ms", v.Get("domContentLoaded").Num()),
		attribute.Float64("test.navigation.load_event_ms", v.Get("loadEvent").Num()),
		attribute.Int("test.navigation.transfer_size_bytes", v.Get("transferSize").Int()),
		attribute.Float64("test.navigation.dom_interactive_ms", v.Get("domInteractive").Num()),
	)
}

func (s *Suite) elementText(selector string) (string, error) {
	el, err := s.page.Timeout(s.cfg.StepTimeout).Element(selector)
	if err != nil {
		return "", fmt.Errorf("element not found: %w", err)
	}
	text, err := el.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *Suite) countElements(selector string) (int, error) {
	els, err := s.page.Elements(selector)
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", selector, err)
	}
	return len(els), nil
}

func (s *Suite) pageTitle() (string, error) {
	res, err := s.page.Evaluate(&rod.EvalOptions{JS: `() => document.title`, ByValue: true})
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// pageURL returns the current page URL, or about:blank before the first
// navigation.
func (s *Suite) pageURL() string {
	if s.page == nil {
		return "about:blank"
	}
	info, err := s.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}
