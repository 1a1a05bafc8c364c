// Package apperrors defines the application error types and the exit codes
// they map to. Netlist failures keep their cause so errors.Is and errors.As
// still reach the circuit sentinels through a NetlistError.
package apperrors
