package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fretkey/fretkey/sdk/contracts"
	"github.com/fretkey/fretkey/sdk/midi"
)

func init() {
	rootCmd.AddCommand(devicesCmd)
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List available MIDI input devices",
	Long:  `Lists every MIDI input the driver can see, with the index fretkey would use.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		client, err := midi.NewMIDIClient(
			contracts.WithLogger(log),
			contracts.WithLogLevel(logLevel()),
			contracts.WithClientName("fretkey"),
		)
		if err != nil {
			return deviceErr(err)
		}
		defer func() { _ = client.Stop() }()

		devices, err := client.ListDevices()
		if err != nil {
			return deviceErr(err)
		}
		for i, device := range devices {
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", i, device)
		}
		return nil
	},
}
