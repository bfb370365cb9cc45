// Package services provides domain services of labflow that do not belong to a
// single aggregate.
//
// The package includes:
//   - OrderAccess: loads an order on behalf of a caller and hides orders the caller does not own
package services
