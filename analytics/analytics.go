// Package analytics folds paid checkout sessions into the admin views:
// monthly revenue, per-location counts, time-slot and weekday popularity,
// and per-customer rollups. Everything here is recomputed from the payment
// processor's records on every request; nothing is stored.
package analytics

import (
	"sort"
	"time"

	"wholesomemarket.io/booking/models"
)

// Fixed per-slot pricing and the two-party revenue split, in whole dollars.
const (
	DemoFee           = 30
	MarketPerDemo     = 20
	GrassrootsPerDemo = 10
)

const trailingMonths = 6

// Session is the projection of one paid checkout session that the
// aggregates consume. Refunded sessions still appear here; the folds decide
// per-aggregate whether they count.
type Session struct {
	ID          string
	Email       string
	Name        string
	Company     string
	Product     string
	AmountTotal int64
	Created     time.Time
	Refunded    bool
	Slots       []models.DemoSlot
}

// MonthKey buckets a payment timestamp by calendar month.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthSummary sums slot counts over the given sessions and derives the
// fixed $20/$10 split from the $30 flat fee.
func MonthSummary(sessions []Session) *models.MonthStats {
	var demos int
	for _, s := range sessions {
		demos += len(s.Slots)
	}

	return &models.MonthStats{
		ThisMonthDemos:    demos,
		TotalRevenue:      demos * DemoFee,
		MarketShare:       demos * MarketPerDemo,
		GrassrootsShare:   demos * GrassrootsPerDemo,
		DemoFee:           DemoFee,
		MarketPerDemo:     MarketPerDemo,
		GrassrootsPerDemo: GrassrootsPerDemo,
	}
}

// Aggregate produces the full admin analytics view. Refunded sessions are
// excluded from the monthly, location, time-slot, and weekday aggregates and
// from customer spend, but still count toward a customer's booking total.
func Aggregate(sessions []Session, now time.Time) *models.Analytics {
	a := &models.Analytics{
		Monthly:   seedMonthly(now),
		Locations: make(map[string]*models.LocationStats),
		TimeSlots: map[string]int{
			"11:00 AM": 0,
			"3:00 PM":  0,
		},
		PopularDays: map[string]int{
			"Monday": 0, "Tuesday": 0, "Wednesday": 0, "Thursday": 0,
			"Friday": 0, "Saturday": 0, "Sunday": 0,
		},
	}

	customers := make(map[string]*customerFold)

	for _, s := range sessions {
		foldCustomer(customers, s)

		if s.Refunded {
			continue
		}

		slots := len(s.Slots)
		if bucket, ok := a.Monthly[MonthKey(s.Created)]; ok {
			bucket.Demos += slots
			bucket.Revenue += slots * DemoFee
			bucket.MarketShare += slots * MarketPerDemo
			bucket.GrassrootsShare += slots * GrassrootsPerDemo
		}

		for _, slot := range s.Slots {
			loc := a.Locations[slot.Location]
			if loc == nil {
				loc = &models.LocationStats{}
				a.Locations[slot.Location] = loc
			}
			loc.Demos++
			loc.Revenue += DemoFee

			a.TimeSlots[slot.Time]++

			// Weekday popularity uses the slot's own date, not the payment
			// date.
			if day, err := time.Parse("2006-01-02", slot.Date); err == nil {
				a.PopularDays[day.Weekday().String()]++
			}
		}
	}

	a.Customers = finalizeCustomers(customers)
	a.TotalCustomers = len(a.Customers)
	for _, c := range a.Customers {
		if c.Repeat {
			a.RepeatCustomers++
		}
	}

	return a
}

// seedMonthly pre-fills the trailing six-month window with zero buckets so
// quiet months appear as zeros instead of gaps.
func seedMonthly(now time.Time) map[string]*models.MonthBucket {
	monthly := make(map[string]*models.MonthBucket, trailingMonths)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < trailingMonths; i++ {
		monthly[MonthKey(first.AddDate(0, -i, 0))] = &models.MonthBucket{}
	}
	return monthly
}

type customerFold struct {
	rollup   models.CustomerRollup
	products map[string]struct{}
	latest   time.Time
}

func foldCustomer(customers map[string]*customerFold, s Session) {
	if s.Email == "" {
		return
	}

	c, ok := customers[s.Email]
	if !ok {
		c = &customerFold{
			rollup: models.CustomerRollup{
				Email:        s.Email,
				FirstBooking: s.Created,
				LastBooking:  s.Created,
			},
			products: make(map[string]struct{}),
		}
		customers[s.Email] = c
	}

	c.rollup.Bookings += len(s.Slots)
	if !s.Refunded {
		c.rollup.TotalSpent += len(s.Slots) * DemoFee
	}
	if s.Product != "" {
		c.products[s.Product] = struct{}{}
	}
	if s.Created.Before(c.rollup.FirstBooking) {
		c.rollup.FirstBooking = s.Created
	}
	if s.Created.After(c.rollup.LastBooking) {
		c.rollup.LastBooking = s.Created
	}
	// The most recent session's identity fields win when an email recurs.
	if !s.Created.Before(c.latest) {
		c.rollup.Name = s.Name
		c.rollup.Company = s.Company
		c.latest = s.Created
	}
}

func finalizeCustomers(customers map[string]*customerFold) []*models.CustomerRollup {
	out := make([]*models.CustomerRollup, 0, len(customers))
	for _, c := range customers {
		c.rollup.Products = make([]string, 0, len(c.products))
		for p := range c.products {
			c.rollup.Products = append(c.rollup.Products, p)
		}
		sort.Strings(c.rollup.Products)
		c.rollup.Repeat = c.rollup.Bookings > 1
		rollup := c.rollup
		out = append(out, &rollup)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSpent != out[j].TotalSpent {
			return out[i].TotalSpent > out[j].TotalSpent
		}
		return out[i].Email < out[j].Email
	})

	return out
}
