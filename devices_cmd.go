package main

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
	"github.com/spf13/cobra"

	"github.com/sayline/sayline/tts/audio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List playback devices",
	Long:  paragraph(fmt.Sprintf("\nList the output devices on this machine. Copy a name verbatim into %s; matching is exact.", keyword("output_device"))),
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		sys, err := audio.OpenSystem()
		if err != nil {
			return err
		}
		defer sys.Close() //nolint:errcheck

		devices, err := portaudio.Devices()
		if err != nil {
			return fmt.Errorf("unable to list devices: %w", err)
		}

		var defaultName string
		if dev, err := portaudio.DefaultOutputDevice(); err == nil {
			defaultName = dev.Name
		}

		n := 0
		for _, dev := range devices {
			if dev.MaxOutputChannels <= 0 || dev.Name == "" {
				continue
			}
			marker := " "
			if dev.Name == defaultName {
				marker = "*"
			}
			fmt.Printf("%s %-50q %d ch, %.0f Hz\n", marker, dev.Name, dev.MaxOutputChannels, dev.DefaultSampleRate)
			n++
		}
		if n == 0 {
			return fmt.Errorf("no output devices found")
		}
		return nil
	},
}
