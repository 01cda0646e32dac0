// Package circuit implements the circmark notation: a tokenizer, a
// recursive-descent parser, and the topology tree the rest of the system
// consumes.
//
// # Notation
//
// A circmark document is either a two-ended circuit or a twoport network:
//
//	R1              single element
//	(R1+R2)         series arrangement
//	(R1||R2)        parallel arrangement
//	(R1+R2||R3)     '+' binds looser than '||'
//	|V1-R1|O        twoport: shunt source, series resistor, shunt open
//
// Elements are a letter from {O,R,C,L,V,I,Z} followed by an alphanumeric
// identifier ('O' alone denotes an open circuit). Whitespace is not valid
// anywhere in a document.
//
// # Pipeline position
//
// Parsing is the first of three stages: text → topology tree (this package),
// tree → geometry (package layout), geometry → markup (package render). The
// tree is immutable once built and owns its children outright.
package circuit
