package models

import "time"

// DemoSlot is one bookable three-hour in-store demo appointment. The four
// fields are exactly what survives the round trip through checkout session
// metadata.
type DemoSlot struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	DisplayDate string `json:"displayDate"`
}

type CheckoutRequest struct {
	Cart          []DemoSlot `json:"cart"`
	CustomerEmail string     `json:"customerEmail"`
	CustomerName  string     `json:"customerName"`
	Company       string     `json:"company"`
	Product       string     `json:"product"`
	Phone         string     `json:"phone"`
}

type CheckoutResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

type VerificationResult struct {
	ConfirmationNumber string     `json:"confirmationNumber"`
	Bookings           []DemoSlot `json:"bookings"`
	CustomerEmail      string     `json:"customerEmail"`
}

// BookingRecord joins one paid checkout session with its decoded slots and
// refund state. It is never stored; every admin request recomputes it from
// the payment processor's records.
type BookingRecord struct {
	SessionID     string     `json:"sessionId"`
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	Company       string     `json:"company"`
	Product       string     `json:"product"`
	Phone         string     `json:"phone"`
	Bookings      []DemoSlot `json:"bookings"`
	AmountTotal   int64      `json:"amountTotal"`
	CreatedAt     time.Time  `json:"createdAt"`
	Refunded      bool       `json:"refunded"`
}

type RefundResult struct {
	RefundID string `json:"refundId"`
	Amount   int64  `json:"amount"`
}
