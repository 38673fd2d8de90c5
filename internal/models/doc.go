// Package models defines the core domain models for GiftCircle.
//
// # Entities
//
//   - User: a registered account; other entities reference users by ID string
//   - Item: a wishlist entry owned by its creator, with a contributor list
//     recording other users' gifting intent
//   - Proposal: a group-purchase coordination unit tied to one item, with
//     named participants and requested amounts
//   - MoneyEntry: a directed debt record between two users, optionally
//     linked to an item
//   - Question: a question asked of a user, optionally answered
//
// # Design Principles
//
//  1. **Avoid circular references**: relationships use ID strings, never
//     pointers between entities
//  2. **No representable-but-invalid states**: participant accept/reject is
//     a single ParticipantState enum, not two booleans
//  3. **Flag-scoped fields**: contributor fields like NumberGetting are
//     meaningful only while their flag is set and are zeroed otherwise
//
// Derived views (the per-recipient contribution grouping) hold no identity
// of their own and live in the contrib package, not here.
package models
