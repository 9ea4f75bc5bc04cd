// Package calc contains the keypad input state machine.
//
// Allowed here:
// - the State record, Action values and the Transition reducer
// - number <-> display text conversion used by the reducer
//
// Not allowed here:
// - display formatting (grouping, locale), rendering, key decoding, logging
package calc
