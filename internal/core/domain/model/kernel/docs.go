// Package kernel provides the value objects shared by every labflow aggregate.
//
// The package includes:
//   - UUID: identifiers for orders, services and users
//   - Money: non-negative decimal amounts used for service values
//   - PageRequest and Page: the pagination contract of order listings
//
// All values are immutable and reject their zero value through Validate.
package kernel
