// Package puzzle implements the "Eight" digit puzzle engine.
//
// Eight slots hold true digits 0-9, but each slot renders
// (true - addendum) mod 10, where the addendum mixes a bomb-derived
// contribution with a fixed per-slot table indexed by the stage digit. The
// player removes digits until what remains is divisible by 8 and submits.
// Every correct submission disables one slot until two remain; a correct
// submission at two slots solves the puzzle, and any wrong submission strikes
// and re-enables every slot.
//
// Engine is a single-owner state machine: it never blocks and is not safe
// for concurrent use. Callers serialize Remove, Submit and Poll themselves.
package puzzle
