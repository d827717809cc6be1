package main

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newWeatherCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Fetch the weather report for a location",
		RunE: func(cmd *cobra.Command, _ []string) error {
			lat, _ := cmd.Flags().GetString("lat")
			lng, _ := cmd.Flags().GetString("lng")
			return getJSON(cmd, "/api/weather", url.Values{
				"lat": {lat},
				"lng": {lng},
			})
		},
	}
	cmd.Flags().String("lat", "22.5726", "Latitude")
	cmd.Flags().String("lng", "88.3639", "Longitude")
	return cmd
}
