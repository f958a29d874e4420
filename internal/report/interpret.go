// Package report turns raw metrics into natural-language findings and
// severity-graded alerts.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/model"
)

// Thresholds for the fixed interpretation rules. These are absolute
// sanity bars on the final report, not the regime-adaptive detection
// thresholds.
const (
	priceFindingPct = 2.0  // daily move worth mentioning, percent
	priceAlertPct   = 5.0  // daily move worth alerting, percent
	highVolPct      = 50.0 // annualized volatility considered elevated
	flowFindingUSD  = 1e6
	flowAlertUSD    = 5e6
	bearishPCR      = 1.5
	bearishPCRAlert = 2.0
	bullishPCR      = 0.5
	bullishPCRAlert = 0.3
	spreadAlertMin  = 5
)

const noActivitySummary = "No significant unusual options activity detected at this time."

// Interpret derives the human-readable reading of one report. The
// evaluation order (price, volatility, flow, put/call, spreads) is
// fixed; the summary quotes at most the first three findings in that
// order.
func Interpret(r *model.Report) model.Interpretation {
	var findings, alerts []string

	// Price movement
	dailyPct := r.PriceAnalysis.DailyReturn * 100
	if math.Abs(dailyPct) > priceFindingPct {
		direction := "increase"
		if dailyPct < 0 {
			direction = "decrease"
		}
		findings = append(findings, fmt.Sprintf(
			"Stock showed significant price movement today: %.1f%% %s", dailyPct, direction))
		if math.Abs(dailyPct) > priceAlertPct {
			alerts = append(alerts, "ALERT: Large price movement detected!")
		}
	}

	// Volatility
	volPct := r.PriceAnalysis.HistoricalVolatility * 100
	if volPct > highVolPct {
		findings = append(findings, fmt.Sprintf(
			"Historical volatility is elevated at %.1f%%, indicating increased market uncertainty", volPct))
	}

	// Options flow
	netFlow := r.OptionsMetrics.OptionsFlow.Net
	if math.Abs(netFlow) > flowFindingUSD {
		direction := "bullish"
		if netFlow < 0 {
			direction = "bearish"
		}
		findings = append(findings, fmt.Sprintf(
			"Significant %s options flow detected: $%.1fM net %s positions",
			direction, math.Abs(netFlow)/1e6, direction))
		if math.Abs(netFlow) > flowAlertUSD {
			alerts = append(alerts, fmt.Sprintf("ALERT: Large %s options flow detected!", direction))
		}
	}

	// Put/call ratio
	volumePCR := r.OptionsMetrics.PutCallRatios.VolumeRatio
	if volumePCR > bearishPCR {
		findings = append(findings, fmt.Sprintf(
			"Elevated put-call ratio of %.2f suggests bearish sentiment", volumePCR))
		if volumePCR > bearishPCRAlert {
			alerts = append(alerts, "ALERT: Unusually high put volume detected!")
		}
	} else if volumePCR < bullishPCR {
		findings = append(findings, fmt.Sprintf(
			"Low put-call ratio of %.2f suggests bullish sentiment", volumePCR))
		if volumePCR < bullishPCRAlert {
			alerts = append(alerts, "ALERT: Unusually high call volume detected!")
		}
	}

	// Unusual spreads
	if n := r.OptionsMetrics.UnusualSpreadsCount; n > 0 {
		findings = append(findings, fmt.Sprintf(
			"Detected %d options contracts with unusual bid-ask spreads", n))
		if n > spreadAlertMin {
			alerts = append(alerts, "ALERT: Multiple unusual options spreads detected!")
		}
	}

	return model.Interpretation{
		Summary:                 summarize(findings, alerts),
		Alerts:                  alerts,
		DetailedInterpretations: findings,
	}
}

func summarize(findings, alerts []string) string {
	if len(alerts) == 0 && len(findings) == 0 {
		return noActivitySummary
	}

	severity := "LOW"
	switch {
	case len(alerts) > 2:
		severity = "HIGH"
	case len(alerts) > 0:
		severity = "MEDIUM"
	}

	top := findings
	if len(top) > 3 {
		top = top[:3]
	}
	return fmt.Sprintf("Unusual Activity Level: %s\nNumber of alerts: %d\nKey findings: %s",
		severity, len(alerts), strings.Join(top, "; "))
}
