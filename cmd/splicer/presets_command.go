package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"splicer/internal/presets"
)

var presetKinds = []string{"qualities", "platforms", "resolutions", "codecs"}

func newPresetsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "presets [qualities|platforms|resolutions|codecs]",
		Short:       "List built-in presets",
		Args:        cobra.MaximumNArgs(1),
		ValidArgs:   presetKinds,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := presetKinds
			if len(args) == 1 {
				kind := strings.ToLower(strings.TrimSpace(args[0]))
				if !contains(presetKinds, kind) {
					return fmt.Errorf("unknown preset kind %q (use %s)", args[0], strings.Join(presetKinds, ", "))
				}
				kinds = []string{kind}
			}

			if asJSON {
				payload := make(map[string]any, len(kinds))
				for _, kind := range kinds {
					payload[kind] = presetData(kind)
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			for i, kind := range kinds {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, titleCase(kind))
				fmt.Fprintln(out, presetTable(kind))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print presets as JSON")
	return cmd
}

func presetData(kind string) any {
	switch kind {
	case "qualities":
		return presets.Qualities()
	case "platforms":
		return presets.Platforms()
	case "resolutions":
		return presets.Resolutions()
	default:
		return presets.CodecPresets()
	}
}

func presetTable(kind string) string {
	switch kind {
	case "qualities":
		var rows [][]string
		for _, q := range presets.Qualities() {
			rows = append(rows, []string{q.Name, titleCase(q.Name), strconv.Itoa(q.CRF), q.Preset, dash(q.VideoBitrate), dash(q.MaxRate), q.AudioBitrate})
		}
		return renderTable([]string{"Name", "Label", "CRF", "Preset", "Bitrate", "Max rate", "Audio"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight})
	case "platforms":
		var rows [][]string
		for _, p := range presets.Platforms() {
			res, _ := presets.LookupResolution(p.Resolution)
			rows = append(rows, []string{
				p.Name, titleCase(p.Name), res.String(), durationRange(p.MinDuration, p.MaxDuration),
				maxSize(p.MaxFileSize), frameRates(p.FrameRates), p.Quality, p.CodecPreset,
			})
		}
		return renderTable([]string{"Name", "Label", "Size", "Duration", "Max file", "Frame rates", "Quality", "Codec"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft, alignLeft})
	case "resolutions":
		var rows [][]string
		for _, r := range presets.Resolutions() {
			rows = append(rows, []string{r.Name, titleCase(r.Name), strconv.Itoa(r.Width), strconv.Itoa(r.Height), r.AspectRatio})
		}
		return renderTable([]string{"Name", "Label", "Width", "Height", "Aspect"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft})
	default:
		var rows [][]string
		for _, c := range presets.CodecPresets() {
			rows = append(rows, []string{c.Name, c.VideoCodec, c.AudioCodec, c.PixelFormat, c.Container, yesNo(!c.NoCRF), dash(strings.Join(c.ExtraArgs, " "))})
		}
		return renderTable([]string{"Name", "Video", "Audio", "Pixel format", "Container", "CRF", "Extra args"}, rows, nil)
	}
}

var titleCaser = cases.Title(language.English)

// titleCase turns "instagram-reel" into "Instagram Reel".
func titleCase(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "-", " "))
}

func durationRange(minSec, maxSec float64) string {
	switch {
	case minSec <= 0 && maxSec <= 0:
		return "-"
	case minSec <= 0:
		return "≤ " + seconds(maxSec)
	}
	return seconds(minSec) + " - " + seconds(maxSec)
}

func seconds(v float64) string {
	switch {
	case v >= 3600 && int(v)%3600 == 0:
		return strconv.Itoa(int(v)/3600) + "h"
	case v >= 60 && int(v)%60 == 0:
		return strconv.Itoa(int(v)/60) + "m"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "s"
}

func maxSize(n int64) string {
	if n <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(n))
}

func frameRates(rates []float64) string {
	if len(rates) == 0 {
		return "any"
	}
	parts := make([]string, len(rates))
	for i, r := range rates {
		parts[i] = strconv.FormatFloat(r, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
