// Package turn runs one player's turn as a queue of action cards.
//
// A turn starts from the cards the player still holds plus whatever the
// caller adds (normally a NewTurn card). Each Step picks the pending card with
// the lowest priority, breaking ties by insertion order. Mandatory cards
// (obligations and chance cards) execute at once; optional, keepable and
// contract cards are offered to a Chooser, which may accept, decline or defer
// them. Executing a card queues the cards it produces.
//
// The turn ends when an EndTurn card executes or the caller invokes EndTurn,
// which refuses while any obligation is still pending. Deciding what happens
// to a player who can never clear an obligation is left to the caller.
package turn
