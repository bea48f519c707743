package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pali/mideair/internal/config"
	"github.com/pali/mideair/internal/display"
	"github.com/pali/mideair/internal/hal"
	"github.com/pali/mideair/internal/logging"
	"github.com/pali/mideair/internal/player"
	"github.com/pali/mideair/internal/protocol"
	"github.com/pali/mideair/internal/pulse"
	"github.com/pali/mideair/internal/remote"
	"github.com/pali/mideair/internal/server"
	"github.com/pali/mideair/internal/ui"
)

// Shared command flags
var (
	configPath string
	gpioPin    int
	activeLow  bool
	dryRun     bool
	logLevel   string

	sendOff  bool
	sendMode string
	sendTemp int
	sendFan  string

	listenAddr string
	noMDNS     bool

	displayDecimal int
	displayHex     string
	displayOff     bool

	decodeSlots bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: platform config dir)")
	rootCmd.PersistentFlags().IntVar(&gpioPin, "pin", -1, "IR LED GPIO pin (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&activeLow, "active-low", false, "IR LED is driven active-low")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Simulate the transmission without hardware")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error; default silent)")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(deflectorCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(panelCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(displayCmd)
}

// loadConfig merges the config file with command-line overrides.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if gpioPin >= 0 {
		cfg.Emitter.Pin = gpioPin
	}
	if activeLow {
		cfg.Emitter.ActiveLow = true
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// transmitter bundles the remote with the backend it plays through.
type transmitter struct {
	remote *remote.Remote
	player *player.Player

	// simulation backend, nil on real hardware
	sim   *hal.SimEmitter
	burst *hal.BurstGate

	closer func() error
}

// newTransmitter builds the playback chain from the configuration. In
// dry-run mode Start runs the whole transmission synchronously against a
// recording emitter.
func newTransmitter(cfg *config.Config) (*transmitter, error) {
	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return nil, err
	}

	if dryRun {
		sim := hal.NewSimEmitter()
		p := player.New(sim)
		burst := hal.NewBurstGate(p.Tick)
		p.AttachGate(burst)
		return &transmitter{
			remote: remote.New(p),
			player: p,
			sim:    sim,
			burst:  burst,
		}, nil
	}

	emitter, err := hal.OpenGPIOEmitter(cfg.Emitter.Pin, cfg.Emitter.ActiveLow)
	if err != nil {
		return nil, err
	}
	p := player.New(emitter)
	p.AttachGate(hal.NewTickRunner(player.TickInterval, p.Tick))
	return &transmitter{
		remote: remote.New(p),
		player: p,
		closer: emitter.Close,
	}, nil
}

// finish waits for an in-flight transmission and releases the hardware.
func (t *transmitter) finish() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := t.player.Wait(ctx); err != nil {
		return fmt.Errorf("transmission did not finish: %w", err)
	}
	if t.closer != nil {
		return t.closer()
	}
	return nil
}

// report prints the dry-run summary.
func (t *transmitter) report() {
	if t.sim == nil {
		return
	}
	ticks := t.burst.Ticks
	fmt.Printf("Simulated transmission:\n")
	fmt.Printf("  ticks:    %d (%.1f ms at %d Hz)\n",
		ticks, float64(ticks)*float64(player.TickInterval)/float64(time.Millisecond), player.TickHz)
	fmt.Printf("  edges:    %d\n", len(t.sim.Edges()))
	fmt.Printf("  emitter:  %v (idle)\n", t.sim.Level())
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send an air-conditioner command",
	Long: `Encode the given state into a Midea frame and transmit it twice, the
way the original remote repeats every command for receiver-side checking.

Temperatures outside 17-30 are transmitted as the protocol's invalid
marker rather than clamped; the unit ignores them.`,
	Example: `  # Cool to 24 degrees, automatic fan
  mideair send --mode cool --temp 24

  # Heat with high fan on GPIO 22
  mideair send --mode heat --temp 28 --fan high --pin 22

  # Turn the unit off
  mideair send --off

  # Inspect the pulse train without hardware
  mideair send --mode cool --temp 21 --dry-run`,
	RunE: runSend,
}

func init() {
	sendCmd.Flags().BoolVar(&sendOff, "off", false, "Send the power-off command")
	sendCmd.Flags().StringVar(&sendMode, "mode", "auto", "Operating mode (cool, heat, auto, fan, dry)")
	sendCmd.Flags().IntVar(&sendTemp, "temp", 24, "Target temperature in Celsius (17-30)")
	sendCmd.Flags().StringVar(&sendFan, "fan", "auto", "Fan level (auto, low, medium, high)")
}

func runSend(cmd *cobra.Command, args []string) error {
	mode, err := protocol.ParseMode(sendMode)
	if err != nil {
		return err
	}
	fan, err := protocol.ParseFanLevel(sendFan)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	t, err := newTransmitter(cfg)
	if err != nil {
		return err
	}

	t.remote.SetCommand(protocol.Command{
		Enabled:     !sendOff,
		Mode:        mode,
		Temperature: sendTemp,
		FanLevel:    fan,
	})

	pkt := protocol.Encode(t.remote.Command())
	raw := protocol.Expand(pkt.Bytes())
	fmt.Printf("Command: %s\n", t.remote.Command())
	fmt.Printf("Frame:   %s\n", hex.EncodeToString(raw[:]))

	if err := t.remote.Send(); err != nil {
		return err
	}
	if err := t.finish(); err != nil {
		return err
	}
	t.report()
	return nil
}

var deflectorCmd = &cobra.Command{
	Use:   "deflector",
	Short: "Sweep the air deflector",
	Long: `Transmit the fixed deflector-move frame. Unlike state commands it is
sent only once and is independent of any remote state.`,
	Example: `  mideair deflector
  mideair deflector --dry-run`,
	RunE: runDeflector,
}

func runDeflector(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	t, err := newTransmitter(cfg)
	if err != nil {
		return err
	}

	raw := protocol.Expand(protocol.DeflectorFrame())
	fmt.Printf("Frame: %s\n", hex.EncodeToString(raw[:]))

	if err := t.remote.MoveDeflector(); err != nil {
		return err
	}
	if err := t.finish(); err != nil {
		return err
	}
	t.report()
	return nil
}

var decodeCmd = &cobra.Command{
	Use:   "decode <frame-hex>",
	Short: "Decode a captured 6-byte frame",
	Long: `Validate and decode a Midea frame captured from a real remote.

The argument is 12 hex digits (6 bytes); spaces between bytes are allowed
when quoted. The complement pairing is verified before decoding.`,
	Example: `  mideair decode b24d1fe040bf
  mideair decode "b2 4d 1f e0 40 bf"
  mideair decode --slots b24d1fe040bf`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeSlots, "slots", false, "Print the compiled slot train")
}

func runDecode(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}

	clean := strings.ReplaceAll(args[0], " ", "")
	data, err := hex.DecodeString(clean)
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	if len(data) != protocol.FrameSize {
		return fmt.Errorf("frame must be %d bytes, got %d", protocol.FrameSize, len(data))
	}

	var raw [protocol.FrameSize]byte
	copy(raw[:], data)

	pkt, err := protocol.Decode(raw)
	if err != nil {
		return err
	}

	fmt.Printf("Frame:  %s\n", hex.EncodeToString(raw[:]))
	fmt.Printf("Nibbles: state=%04b fan=%04b cmd=%04b temp=%04b\n",
		pkt.State, pkt.Fan, pkt.Cmd, pkt.Temp)
	fmt.Printf("Meaning: %s\n", pkt.Describe())

	buf := pulse.Compile(raw)
	fmt.Printf("Pulse:   %d slots, %d ticks per repeat\n", buf.Len(), buf.Len()*player.SubTicksPerSlot)

	if decodeSlots {
		var slots strings.Builder
		for i := 0; i < buf.Len(); i++ {
			if buf.Active(i) {
				slots.WriteByte('#')
			} else {
				slots.WriteByte('.')
			}
		}
		fmt.Printf("Slots:   %s\n", slots.String())
	}
	return nil
}

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Interactive front panel",
	Long: `Open a terminal front panel with the controls of the physical remote:
power, mode, fan, and temperature, plus send and deflector keys.`,
	Example: `  mideair panel
  mideair panel --dry-run`,
	RunE: runPanel,
}

func runPanel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	t, err := newTransmitter(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if t.closer != nil {
			_ = t.closer()
		}
	}()

	return ui.Run(t.remote)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the WebSocket control server",
	Long: `Serve a WebSocket control endpoint on /ws that accepts JSON command
messages from LAN clients and plays them through the emitter. The service
is advertised over mDNS as _mideair._tcp unless disabled.`,
	Example: `  # Serve on the configured address
  mideair serve

  # Custom listen address with debug logging
  mideair serve --listen :9000 --log-level debug

  # Without mDNS advertisement
  mideair serve --no-mdns`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVar(&noMDNS, "no-mdns", false, "Disable mDNS advertisement")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.Server.Listen = listenAddr
	}
	if noMDNS {
		cfg.Server.MDNS = false
	}

	t, err := newTransmitter(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if t.closer != nil {
			_ = t.closer()
		}
	}()

	srv, err := server.New(&server.Config{
		Listen:   cfg.Server.Listen,
		MDNS:     cfg.Server.MDNS,
		LogLevel: cfg.LogLevel,
	}, t.remote)
	if err != nil {
		return err
	}
	return srv.Run()
}

var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Drive the 7-segment display",
	Long: `Render a value on the shift-register 7-segment display, or blank it.
The three bus lines (data, clock, latch) come from the configuration.`,
	Example: `  # Show 24
  mideair display --decimal 24

  # Show a byte as hex
  mideair display --hex b2

  # Blank the display
  mideair display --off`,
	RunE: runDisplay,
}

func init() {
	displayCmd.Flags().IntVar(&displayDecimal, "decimal", -1, "Show a decimal value 0-99")
	displayCmd.Flags().StringVar(&displayHex, "hex", "", "Show a byte given as two hex digits")
	displayCmd.Flags().BoolVar(&displayOff, "off", false, "Blank the display")
}

func runDisplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return err
	}

	var bus display.BusWriter
	var closer func() error
	if dryRun {
		sim := &hal.SimBus{}
		bus = sim
		closer = func() error {
			for _, tr := range sim.Transfers {
				fmt.Printf("Bus transfer: %s\n", hex.EncodeToString(tr))
			}
			return nil
		}
	} else {
		hw, err := hal.OpenShiftRegisterBus(cfg.Display.DataPin, cfg.Display.ClockPin, cfg.Display.LatchPin)
		if err != nil {
			return err
		}
		bus = hw
		closer = hw.Close
	}

	disp := display.New(bus)
	switch {
	case displayOff:
		err = disp.Off()
	case displayHex != "":
		data, decodeErr := hex.DecodeString(displayHex)
		if decodeErr != nil || len(data) != 1 {
			return fmt.Errorf("--hex wants exactly two hex digits")
		}
		err = disp.RenderHex(data[0])
	case displayDecimal >= 0:
		if displayDecimal > 99 {
			return fmt.Errorf("--decimal wants a value 0-99")
		}
		err = disp.RenderDecimal(uint8(displayDecimal))
	default:
		return fmt.Errorf("one of --decimal, --hex or --off is required")
	}
	if err != nil {
		return err
	}
	return closer()
}
