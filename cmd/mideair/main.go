// Mideair drives a Midea air conditioner over an infrared LED.
//
// It encodes remote-control commands (power, mode, temperature, fan) into
// the Midea pulse protocol and plays them out of a GPIO pin with a 38 kHz
// carrier. Besides one-shot sends it offers an interactive front panel and
// a WebSocket control server for LAN clients.
//
// Usage:
//
//	mideair [command] [flags]
//
// See 'mideair --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pali/mideair/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mideair",
	Short: "Midea infrared remote control",
	Long: `Transmit Midea air-conditioner remote commands over an infrared LED.

Commands are encoded into the Midea 6-byte complement-checked frame and
played back as a 38 kHz carrier-modulated pulse train on a GPIO pin.
Use --dry-run to simulate a transmission without hardware.`,
	Version: version.Version,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mideair %s\n", version.Full())
	},
}
