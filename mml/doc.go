/*
Package mml compiles MML scores into lists of playable beep events.

The pipeline has two stages. Lex tokenizes the text into one token list per
track, validating the ranges the grammar fixes and recording a line/column
position on every token. Compile then drives all tracks through their token
lists and resolves each note or pause into a (frequency, duration) pair,
applying the stateful parts of the notation: octaves, default lengths,
ties, and the tempo.

Tempo is the one piece of state the tracks share. The compiler advances
whichever track has the least music emitted so far (later tracks winning
ties) one token at a time, and every duration computation resolves the
tempo by scanning the tracks from last to first for one that has set it.
A tempo command therefore governs all tracks, no matter which track it
was written in, from the moment its track's position is reached.

Parse runs both stages back to back. All failures are *ParseError values
carrying the position of the offending input.
*/
package mml
