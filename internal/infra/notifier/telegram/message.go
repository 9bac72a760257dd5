package telegram

import (
	"fmt"
	"strings"

	"github.com/fmarchini/whalewatch/internal/pkg/units"
	"github.com/fmarchini/whalewatch/internal/whalealert"
)

// formatAlert renders an alert as the plain-text message sent to the chat.
// Every alert field is represented so the channel remains auditable on its
// own.
func formatAlert(alert whalealert.Alert) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Whale alert: %.8f BTC moved in block %d\n", units.ToBTC(alert.TotalValue), alert.Height)

	if alert.FiatRateKnown {
		fiatValue := units.ToBTC(alert.TotalValue) * alert.FiatRate
		fmt.Fprintf(&b, "Estimated value: %.2f (rate %.2f per BTC)\n", fiatValue, alert.FiatRate)
	} else {
		b.WriteString("Estimated value: n/a (exchange rate unavailable)\n")
	}

	fmt.Fprintf(&b, "Tx: %s\n", alert.TxID)
	fmt.Fprintf(&b, "Inputs: %d, outputs: %d\n", alert.InputCount, alert.OutputCount)
	fmt.Fprintf(&b, "Largest output: %.8f BTC\n", units.ToBTC(alert.LargestOutput))

	parts := make([]string, len(alert.OutputValues))
	for i, value := range alert.OutputValues {
		parts[i] = fmt.Sprintf("%.8f", units.ToBTC(value))
	}
	fmt.Fprintf(&b, "Output values (BTC): %s", strings.Join(parts, ", "))

	return b.String()
}
