package notifier

import (
	"fmt"
	"html"
	"strings"

	"wholesomemarket.io/booking/models"
)

func confirmationBody(email *ConfirmationEmail) string {
	var b strings.Builder

	b.WriteString(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:640px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
table { width:100%; border-collapse:collapse; margin-top:16px; }
th, td { text-align:left; padding:8px; border-bottom:1px solid #e6eef6; }
.total { font-weight:bold; margin-top:16px; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
`)

	fmt.Fprintf(&b, "    <h2>Your demo booking is confirmed</h2>\n")
	fmt.Fprintf(&b, "    <p>Hi %s,</p>\n", html.EscapeString(email.CustomerName))
	fmt.Fprintf(&b, "    <p>Thanks for booking in-store demos with Wholesome Market. Your confirmation number is <strong>%s</strong>.</p>\n",
		html.EscapeString(email.ConfirmationNumber))
	fmt.Fprintf(&b, "    <p>Company: %s<br>Product: %s</p>\n",
		html.EscapeString(email.Company), html.EscapeString(email.Product))

	b.WriteString("    <table>\n      <tr><th>Date</th><th>Time</th><th>Location</th></tr>\n")
	for _, slot := range email.Bookings {
		fmt.Fprintf(&b, "      <tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(slot.DisplayDate),
			html.EscapeString(slot.Time),
			html.EscapeString(slot.Location))
	}
	b.WriteString("    </table>\n")

	fmt.Fprintf(&b, "    <p class=\"total\">Total paid: $%.2f</p>\n", float64(email.AmountTotal)/100)
	b.WriteString("    <p>A calendar file with your demo slots is attached.</p>\n")
	b.WriteString("  </div>\n</div>\n</body>\n</html>")

	return b.String()
}

func cancellationBody(email *CancellationEmail) string {
	var b strings.Builder

	b.WriteString(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:640px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
ul { padding-left:20px; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
`)

	fmt.Fprintf(&b, "    <h2>Your demo booking was cancelled</h2>\n")
	fmt.Fprintf(&b, "    <p>Hi %s,</p>\n", html.EscapeString(email.CustomerName))
	fmt.Fprintf(&b, "    <p>The following demo slots have been cancelled and a refund of <strong>$%.2f</strong> has been issued to your original payment method.</p>\n",
		float64(email.RefundAmount)/100)

	b.WriteString("    <ul>\n")
	for _, slot := range email.Bookings {
		fmt.Fprintf(&b, "      <li>%s</li>\n", html.EscapeString(slotLine(slot)))
	}
	b.WriteString("    </ul>\n")

	b.WriteString("    <p>Refunds typically appear within 5-10 business days.</p>\n")
	b.WriteString("  </div>\n</div>\n</body>\n</html>")

	return b.String()
}

func slotLine(slot models.DemoSlot) string {
	return fmt.Sprintf("%s at %s - %s", slot.DisplayDate, slot.Time, slot.Location)
}
