// Package services provides domain services for the shipping system: logic
// that does not belong to a single aggregate.
//
// The package includes:
//   - Tariff: prices a parcel by weight and supplies the cash-on-delivery
//     amount recorded when an operator weighs it
//
// Domain services are pure; they hold configuration only and never touch
// repositories.
package services
