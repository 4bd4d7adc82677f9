// Package parcel provides the Parcel aggregate and its lifecycle state machine.
//
// The package includes:
//   - Parcel: the aggregate root that owns identity, weight, COD amount,
//     inspection images and the voice verification flag
//   - Status: the ordered lifecycle from Registered to Delivered
//   - Event: domain events recorded by every mutation
//
// Key business rules:
//   - A parcel only moves to the immediate next status, never backwards
//   - Checking -> ReadyToShip is gated by a completed voice verification
//   - The COD amount is derived from the recorded weight, never from input
//   - Rejected operations leave the aggregate untouched, including UpdatedAt
package parcel
