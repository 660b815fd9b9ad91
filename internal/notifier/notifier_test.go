package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/model"
)

func TestSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := newTelegramNotifier(srv.URL, "TOKEN", "42", "")
	require.NoError(t, n.Send(context.Background(), "<b>hi</b>"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "<b>hi</b>", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	err := newTelegramNotifier(srv.URL, "T", "1", "").Send(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSendWithRetry(t *testing.T) {
	var calls int
	flaky := func(context.Context, string) error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	}
	require.NoError(t, sendWithRetry(context.Background(), flaky, "x", 3, time.Millisecond))
	assert.Equal(t, 3, calls)

	calls = 0
	failing := func(context.Context, string) error { calls++; return errors.New("down") }
	err := sendWithRetry(context.Background(), failing, "x", 2, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 retries exhausted")
	assert.Equal(t, 3, calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = sendWithRetry(ctx, failing, "x", 5, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPollOnce_DispatchesCommands(t *testing.T) {
	var sent atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botT/getUpdates":
			assert.Equal(t, "7", r.URL.Query().Get("offset"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok":true,"result":[
				{"update_id":7,"message":{"text":" /list "}},
				{"update_id":8},
				{"update_id":9,"message":{"text":"/noop"}}
			]}`))
		case "/botT/sendMessage":
			sent.Add(1)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	var seen []string
	handler := func(_ context.Context, cmd string) string {
		seen = append(seen, cmd)
		if cmd == "/list" {
			return "AAPL"
		}
		return ""
	}

	n := newTelegramNotifier(srv.URL, "T", "1", "")
	next, err := n.pollOnce(context.Background(), 7, 0, handler)
	require.NoError(t, err)
	assert.Equal(t, 10, next)
	assert.Equal(t, []string{"/list", "/noop"}, seen)
	assert.Equal(t, int32(1), sent.Load())
}

func TestFormatRSReport(t *testing.T) {
	adr := 3.14159
	a := &model.SymbolAnalytics{
		Symbol:       "NVDA",
		Benchmark:    "SPY",
		AsOf:         "2025-03-14",
		CurrentPrice: 121.456,
		SMA:          []model.MovingAverageLine{{Period: 50, Timeseries: []model.LinePoint{{Value: 110}}}},
		ADRPercent:   &adr,
		High52w:      150,
		Low52w:       80,
		Position52w:  0.592,
		RSRating:     91,
		Strength: &model.RelativeStrength{
			Standard:           model.RelativeStrengthStats{OneMonth: 1.005, ThreeMonth: -2.5, SixMonth: 10, OneYear: 40.123, Composite: 9.1234},
			VolatilityAdjusted: model.RelativeStrengthStats{Composite: 0.456},
		},
		Rotation: &model.Rotation{Quadrant: model.QuadrantLeading, Trail: []model.RotationPoint{{Ratio: 101.234, Momentum: 100.5}}},
	}
	sig := &model.Signal{TotalScore: 1.4, Tier: model.Tier{Label: "Leader"},
		Factors: []model.FactorScore{{Name: "RS rating", Commentary: "RS=91", Weighted: 0.7}}}

	out := FormatRSReport(a, sig)
	assert.Contains(t, out, "<b>NVDA</b> vs SPY | 2025-03-14")
	assert.Contains(t, out, "Price: 121.46")
	assert.Contains(t, out, "SMA50: 110.00 (+10.41%)")
	assert.Contains(t, out, "ADR%: 3.14")
	assert.Contains(t, out, "1M +1.01 | 3M -2.50 | 6M +10.00 | 1Y +40.12")
	assert.Contains(t, out, "Composite: +9.12 (RS 91)")
	assert.Contains(t, out, "Vol-adjusted composite: +0.46")
	assert.Contains(t, out, "Rotation: LEADING (ratio 101.23, momentum 100.50)")
	assert.Contains(t, out, "<b>Leader</b> (score +1.40)")
	assert.NotContains(t, out, "SMA200")
}

func TestFormatRSReport_NoStrength(t *testing.T) {
	out := FormatRSReport(&model.SymbolAnalytics{Symbol: "IPO", Benchmark: "SPY"}, nil)
	assert.Contains(t, out, "not enough history")
}

func TestFormatRotationAlert(t *testing.T) {
	assert.Empty(t, FormatRotationAlert(nil))
	out := FormatRotationAlert([]model.RotationEvent{{Symbol: "AMD", From: model.QuadrantImproving, To: model.QuadrantLeading, Ratio: 100.4, Momentum: 101}})
	assert.Contains(t, out, "<b>AMD</b>: IMPROVING → LEADING (ratio 100.40, momentum 101.00)")
}

func TestFormatDigest(t *testing.T) {
	ranked := []*model.SymbolAnalytics{
		{Symbol: "A", RSRating: 99, Strength: &model.RelativeStrength{Standard: model.RelativeStrengthStats{Composite: 12}}},
		{Symbol: "B", RSRating: 50},
		{Symbol: "C", RSRating: 1},
	}
	out := FormatDigest(ranked, model.Breadth{AsOf: "2025-03-14", Total: 3, AboveSMA50: 2, PctAbove50: 66.666}, 2)
	assert.Contains(t, out, "digest</b> | 2025-03-14")
	assert.Contains(t, out, " 1. A      RS 99  +12.00")
	assert.Contains(t, out, " 2. B      RS 50  n/a")
	assert.Contains(t, out, "… and 1 more")
	assert.Contains(t, out, "Above SMA50: 2/3 (66.67%)")
}

func TestFormatWatchlist(t *testing.T) {
	assert.Contains(t, FormatWatchlist(nil, "SPY"), "empty")
	assert.Contains(t, FormatWatchlist([]string{"AAPL", "MSFT"}, "SPY"), "AAPL, MSFT")
}
