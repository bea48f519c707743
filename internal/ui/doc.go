// Package ui implements the interactive front panel.
//
// The panel plays the role of the original device's physical controls:
// buttons cycle power, mode and fan, the temperature replaces the
// potentiometer, and the readout shows what the two-digit display would.
// It drives the same shared remote as the CLI and control server, so a
// busy transmission shows up as a rejected send in the status line.
package ui
