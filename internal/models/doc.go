// Package models defines the core domain models for Splitledger.
//
// # Models
//
//   - Member: a registered account that pays for expenses and belongs to groups
//   - Group: a set of members sharing costs, owned by the member who created it
//   - Expense: a single cost paid by one member on behalf of a group
//
// # Design Principles
//
// 1. **Insert-only**: records are created and never updated or deleted
// 2. **Avoid circular references**: relationships are ID strings, resolved on demand
// 3. **No secrets at rest**: members carry a bcrypt hash, never a plaintext password
package models
