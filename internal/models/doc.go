// Package models defines the core domain models for the wash.
//
// # Records
//
//   - Ticket: one wash job, from intake through payment or cancellation
//   - Extra: an add-on sold on a ticket, optionally attributed to one employee
//   - Assignment: links an employee to a ticket they worked on
//   - Employee: staff member with a role that gates aggregate views
//   - Customer, Vehicle: the client and the car being washed
//   - Service: catalog entry with base price and configured commission
//   - Expense: a business outlay; lunches are attributed to an employee
//   - Feedback: a customer review linked to a ticket
//   - Settings: the singleton per-location configuration record
//
// # Design Principles
//
// 1. **ID strings over pointers**: relationships reference records by ID to
// avoid circular references
// 2. **Legacy compatibility**: tickets written before multi-employee
// assignments carry a single employee ID, folded into Assignments at load
// 3. **Models carry no behavior beyond validation**: allocation and
// lifecycle arithmetic live in their own packages
package models
