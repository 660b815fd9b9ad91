package notifier

import (
	"fmt"
	"html"
	"strings"

	"MarketPulse/internal/calculator"
	"MarketPulse/internal/model"
)

var f2 = calculator.Format2

func signed(v float64) string {
	s := f2(v)
	if v > 0 {
		return "+" + s
	}
	return s
}

var quadrantIcon = map[model.Quadrant]string{
	model.QuadrantLeading:   "🟢",
	model.QuadrantWeakening: "🟡",
	model.QuadrantLagging:   "🔴",
	model.QuadrantImproving: "🔵",
}

// FormatRSReport formats one symbol's analytics into a Telegram message.
func FormatRSReport(a *model.SymbolAnalytics, sig *model.Signal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 <b>%s</b> vs %s | %s\n\n", html.EscapeString(a.Symbol), html.EscapeString(a.Benchmark), a.AsOf)
	fmt.Fprintf(&b, "Price: %s\n", f2(a.CurrentPrice))
	for _, p := range []int{50, 200} {
		if v, ok := a.LastSMA(p); ok && v != 0 {
			fmt.Fprintf(&b, "SMA%d: %s (%s%%)\n", p, f2(v), signed((a.CurrentPrice-v)/v*100))
		}
	}
	if a.ADRPercent != nil {
		fmt.Fprintf(&b, "ADR%%: %s\n", f2(*a.ADRPercent))
	}
	fmt.Fprintf(&b, "52w: %s – %s (position %s%%)\n", f2(a.Low52w), f2(a.High52w), f2(a.Position52w*100))

	if a.Strength == nil {
		b.WriteString("\nRelative strength: not enough history\n")
	} else {
		s := a.Strength.Standard
		v := a.Strength.VolatilityAdjusted
		b.WriteString("\n📈 <b>Relative strength</b>\n")
		fmt.Fprintf(&b, "  1M %s | 3M %s | 6M %s | 1Y %s\n", signed(s.OneMonth), signed(s.ThreeMonth), signed(s.SixMonth), signed(s.OneYear))
		fmt.Fprintf(&b, "  Composite: %s", signed(s.Composite))
		if a.RSRating > 0 {
			fmt.Fprintf(&b, " (RS %d)", a.RSRating)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "  Vol-adjusted composite: %s\n", signed(v.Composite))
	}

	if a.Rotation != nil && len(a.Rotation.Trail) > 0 {
		head := a.Rotation.Trail[len(a.Rotation.Trail)-1]
		fmt.Fprintf(&b, "\n%s Rotation: %s (ratio %s, momentum %s)\n",
			quadrantIcon[a.Rotation.Quadrant], a.Rotation.Quadrant, f2(head.Ratio), f2(head.Momentum))
	}

	if sig != nil {
		fmt.Fprintf(&b, "\n🏷 <b>%s</b> (score %s)\n", sig.Tier.Label, signed(sig.TotalScore))
		for _, f := range sig.Factors {
			fmt.Fprintf(&b, "  %s (%s): %s\n", f.Name, html.EscapeString(f.Commentary), signed(f.Weighted))
		}
		if sig.WarningMsg != "" {
			fmt.Fprintf(&b, "\n⚠️ %s\n", sig.WarningMsg)
		}
	}
	return b.String()
}

// FormatRotationAlert formats quadrant changes detected in a refresh.
func FormatRotationAlert(events []model.RotationEvent) string {
	if len(events) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("🔄 <b>Rotation changes</b>\n\n")
	for _, e := range events {
		fmt.Fprintf(&b, "%s <b>%s</b>: %s → %s (ratio %s, momentum %s)\n",
			quadrantIcon[e.To], html.EscapeString(e.Symbol), e.From, e.To, f2(e.Ratio), f2(e.Momentum))
	}
	return b.String()
}

// FormatDigest formats the ranked watchlist and breadth summary.
func FormatDigest(ranked []*model.SymbolAnalytics, breadth model.Breadth, top int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗞 <b>MarketPulse digest</b> | %s\n\n", breadth.AsOf)

	if len(ranked) == 0 {
		b.WriteString("Watchlist is empty.\n")
	}
	for i, a := range ranked {
		if top > 0 && i >= top {
			fmt.Fprintf(&b, "… and %d more\n", len(ranked)-top)
			break
		}
		comp := "n/a"
		if a.Strength != nil {
			comp = signed(a.Strength.Standard.Composite)
		}
		quad := ""
		if a.Rotation != nil {
			quad = " " + quadrantIcon[a.Rotation.Quadrant]
		}
		fmt.Fprintf(&b, "%2d. %-6s RS %2d  %s%s\n", i+1, html.EscapeString(a.Symbol), a.RSRating, comp, quad)
	}
	b.WriteString("\n")
	b.WriteString(FormatBreadth(breadth))
	return b.String()
}

// FormatBreadth formats a breadth snapshot.
func FormatBreadth(br model.Breadth) string {
	var b strings.Builder
	b.WriteString("🌡 <b>Breadth</b>\n")
	fmt.Fprintf(&b, "Above SMA50: %d/%d (%s%%)\n", br.AboveSMA50, br.Total, f2(br.PctAbove50))
	fmt.Fprintf(&b, "Above SMA200: %d/%d (%s%%)\n", br.AboveSMA200, br.Total, f2(br.PctAbove200))
	fmt.Fprintf(&b, "Adv/Dec: %d/%d (%d unchanged)\n", br.Advancers, br.Decliners, br.Unchanged)
	fmt.Fprintf(&b, "New highs/lows: %d/%d\n", br.NewHighs, br.NewLows)
	return b.String()
}

// FormatWatchlist formats the list of watched symbols.
func FormatWatchlist(symbols []string, benchmark string) string {
	if len(symbols) == 0 {
		return "📋 Watchlist is empty. Add one with /watch SYMBOL"
	}
	return fmt.Sprintf("📋 <b>Watchlist</b> (vs %s)\n%s", html.EscapeString(benchmark), html.EscapeString(strings.Join(symbols, ", ")))
}

// FormatHelp lists the supported commands.
func FormatHelp() string {
	return "📖 <b>Commands</b>\n" +
		"/rs SYMBOL – relative strength report\n" +
		"/watch SYMBOL – add to watchlist\n" +
		"/unwatch SYMBOL – remove from watchlist\n" +
		"/list – show watchlist\n" +
		"/digest – ranked watchlist now\n" +
		"/breadth – watchlist breadth"
}
