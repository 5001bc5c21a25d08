// Package models defines the core domain models for the Khidmat shop ledger.
//
// # Models
//
//   - Transaction: one purchase/payment line on a customer's ledger
//   - MessageEntry: one outbound message recorded in the shared message log
//   - BillRecord: index row written whenever a bill document is generated
//   - Consultation: index row written whenever a consultation image is accepted
//
// Customers have no profile entity. A customer is identified only by phone number,
// which is also the key of their ledger file.
//
// # Money
//
// Amounts are shopspring/decimal values so that sums over a ledger are exact.
// The outstanding due of a ledger is always derived (see package billing) and
// never stored.
package models
