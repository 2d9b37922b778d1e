package handlers

import (
	"strings"
	"time"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/services"

	"github.com/araddon/dateparse"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
)

// parseInsightQuery reads startDate, endDate, months and top. A date-only
// endDate covers that whole day.
func parseInsightQuery(c *fiber.Ctx) (services.InsightQuery, error) {
	var q services.InsightQuery

	if raw := strings.TrimSpace(c.Query("startDate")); raw != "" {
		t, err := dateparse.ParseLocal(raw)
		if err != nil {
			return q, apperrors.Validation("invalid startDate: %s", raw)
		}
		q.Start = &t
	}
	if raw := strings.TrimSpace(c.Query("endDate")); raw != "" {
		t, err := dateparse.ParseLocal(raw)
		if err != nil {
			return q, apperrors.Validation("invalid endDate: %s", raw)
		}
		if isMidnight(t) {
			t = t.AddDate(0, 0, 1)
		}
		q.End = &t
	}

	var err error
	if q.Months, err = intParam(c, "months"); err != nil {
		return q, err
	}
	if q.Top, err = intParam(c, "top"); err != nil {
		return q, err
	}
	return q, nil
}

func intParam(c *fiber.Ctx, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n, err := cast.ToIntE(raw)
	if err != nil || n < 0 {
		return 0, apperrors.Validation("invalid %s: %s", name, raw)
	}
	return n, nil
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
