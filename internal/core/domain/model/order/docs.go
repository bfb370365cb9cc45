// Package order provides the Order aggregate of labflow together with its services
// and the stage workflow.
//
// The package includes:
//   - Order: the aggregate root holding descriptive fields, owner, deadline and services
//   - Service: a billable line item owned by an order
//   - Stage: the forward-only workflow created -> analysis -> completed
//   - Status and ServiceStatus: the soft-delete axis of orders and the state of line items
//
// Key business rules:
//   - An order always has at least one service and a positive total
//   - Stages advance one step at a time, completed is terminal
//   - Deleting an order only flips its status to deleted
//   - Service IDs are unique within an order and never change
package order
