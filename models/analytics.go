package models

import "time"

// MonthStats summarizes the current calendar month and the fixed two-party
// revenue split. All amounts are whole dollars.
type MonthStats struct {
	ThisMonthDemos    int `json:"thisMonthDemos"`
	TotalRevenue      int `json:"totalRevenue"`
	MarketShare       int `json:"marketShare"`
	GrassrootsShare   int `json:"grassrootsShare"`
	DemoFee           int `json:"demoFee"`
	MarketPerDemo     int `json:"marketPerDemo"`
	GrassrootsPerDemo int `json:"grassrootsPerDemo"`
}

type MonthBucket struct {
	Revenue         int `json:"revenue"`
	Demos           int `json:"demos"`
	MarketShare     int `json:"marketShare"`
	GrassrootsShare int `json:"grassrootsShare"`
}

type LocationStats struct {
	Demos   int `json:"demos"`
	Revenue int `json:"revenue"`
}

// CustomerRollup folds every checkout session sharing an email address.
// Bookings counts refunded slots; TotalSpent does not.
type CustomerRollup struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Company      string    `json:"company"`
	TotalSpent   int       `json:"totalSpent"`
	Bookings     int       `json:"bookings"`
	Products     []string  `json:"products"`
	FirstBooking time.Time `json:"firstBooking"`
	LastBooking  time.Time `json:"lastBooking"`
	Repeat       bool      `json:"repeatCustomer"`
}

type Analytics struct {
	Monthly         map[string]*MonthBucket   `json:"monthly"`
	Locations       map[string]*LocationStats `json:"locations"`
	TimeSlots       map[string]int            `json:"timeSlots"`
	PopularDays     map[string]int            `json:"popularDays"`
	Customers       []*CustomerRollup         `json:"customers"`
	TotalCustomers  int                       `json:"totalCustomers"`
	RepeatCustomers int                       `json:"repeatCustomers"`
}
