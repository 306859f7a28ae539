// Package codec serializes a cart of demo slots into checkout session
// metadata and back. Stripe caps each metadata value at 500 characters, so
// oversized payloads are split across indexed keys; no other component needs
// to know the limit exists.
package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"wholesomemarket.io/booking/models"
)

// MaxValueLen is the payment processor's per-value metadata limit.
const MaxValueLen = 500

const (
	keyBookings = "bookings"
	keyChunks   = "bookings_chunks"
)

// Encode serializes the cart to a JSON blob and stores it under a single
// "bookings" key when it fits, or as consecutive 500-character chunks under
// "bookings_0".."bookings_n-1" plus a "bookings_chunks" count when it does
// not.
func Encode(slots []models.DemoSlot) (map[string]string, error) {
	blob, err := json.Marshal(slots)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bookings: %w", err)
	}

	metadata := make(map[string]string)
	if len(blob) <= MaxValueLen {
		metadata[keyBookings] = string(blob)
		return metadata, nil
	}

	var chunks int
	for start := 0; start < len(blob); start += MaxValueLen {
		end := start + MaxValueLen
		if end > len(blob) {
			end = len(blob)
		}
		metadata[fmt.Sprintf("%s_%d", keyBookings, chunks)] = string(blob[start:end])
		chunks++
	}
	metadata[keyChunks] = strconv.Itoa(chunks)

	return metadata, nil
}

// Decode reverses Encode, detecting which form was stored by the presence of
// the singular key versus the chunk-count sentinel. Malformed or missing
// payloads yield an empty slice so historical records with corrupt metadata
// never break admin listings.
func Decode(metadata map[string]string) []models.DemoSlot {
	if metadata == nil {
		return []models.DemoSlot{}
	}

	blob, ok := metadata[keyBookings]
	if !ok {
		count, err := strconv.Atoi(metadata[keyChunks])
		if err != nil || count <= 0 {
			return []models.DemoSlot{}
		}
		var joined strings.Builder
		for i := 0; i < count; i++ {
			chunk, ok := metadata[fmt.Sprintf("%s_%d", keyBookings, i)]
			if !ok {
				return []models.DemoSlot{}
			}
			joined.WriteString(chunk)
		}
		blob = joined.String()
	}

	var slots []models.DemoSlot
	if err := json.Unmarshal([]byte(blob), &slots); err != nil || slots == nil {
		return []models.DemoSlot{}
	}

	return slots
}
