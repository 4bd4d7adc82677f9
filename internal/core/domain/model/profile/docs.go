// Package profile provides the customer Profile aggregate.
//
// A profile is created lazily the first time a user opens it and is never
// deleted. It carries the trust score (0..100), the COD limit, the contact
// details used for delivery in India and the personal warehouse address in
// Guangzhou that merchants ship to.
package profile
