// Package kernel provides the domain primitives shared by the parcel, profile
// and call aggregates.
//
// The package includes:
//   - ParcelID and UserID: identifiers of parcels and their owners
//   - Weight: a validated weight in kilograms, rounded to two decimals
//   - CallID: the identifier of a voice verification call attempt
//   - EventRecorder: collects domain events until the unit of work publishes them
//
// Value objects are immutable and must be built through their constructors;
// zero values fail Validate.
package kernel
