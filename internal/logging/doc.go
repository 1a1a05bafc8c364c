// Package logging provides a unified logging interface for the resistance
// calculator. It abstracts the underlying logging implementation, allowing
// consistent logging across components while supporting multiple backends.
//
// The evaluation core never logs; only the application and presentation
// layers hold a Logger.
package logging
