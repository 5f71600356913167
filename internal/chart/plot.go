package chart

import (
	"fmt"

	"github.com/fogleman/gg"
)

// plot geometry
const (
	plotWidth   = 1200
	plotHeight  = 500
	plotMargin  = 60.0
	plotDotSize = 3.0
)

// RenderPlot draws the chart's notes as a beat/pitch scatter and saves it as
// a PNG. Sung notes are drawn as horizontal bars over their duration,
// emphasized notes in a highlight color, pauses as vertical markers. Useful
// for eyeballing a generated chart next to a hand-authored one.
func RenderPlot(path string, c *Chart, profile Profile) error {
	st := Summarize(c)
	if st.SungNotes+st.EmphasizedNotes == 0 {
		return fmt.Errorf("chart has no notes to plot")
	}

	dc := gg.NewContext(plotWidth, plotHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	plotW := float64(plotWidth) - 2*plotMargin
	plotH := float64(plotHeight) - 2*plotMargin

	beatSpan := float64(st.BeatMax - st.BeatMin)
	if beatSpan <= 0 {
		beatSpan = 1
	}
	pitchSpan := float64(profile.PitchHi - profile.PitchLo)
	if pitchSpan <= 0 {
		pitchSpan = 1
	}

	xAt := func(beat int) float64 {
		return plotMargin + float64(beat-st.BeatMin)/beatSpan*plotW
	}
	yAt := func(pitch int) float64 {
		return plotMargin + (1-float64(pitch-profile.PitchLo)/pitchSpan)*plotH
	}

	// axes
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.SetLineWidth(1)
	dc.DrawLine(plotMargin, plotMargin, plotMargin, float64(plotHeight)-plotMargin)
	dc.DrawLine(plotMargin, float64(plotHeight)-plotMargin,
		float64(plotWidth)-plotMargin, float64(plotHeight)-plotMargin)
	dc.Stroke()

	dc.DrawString(fmt.Sprintf("%s - %s  (%.1f BPM, GAP %dms)",
		c.Meta.Title, c.Meta.Artist, c.Meta.BPM, c.Meta.GapMS), plotMargin, plotMargin/2)
	dc.DrawString("beat", float64(plotWidth)/2, float64(plotHeight)-plotMargin/3)
	dc.DrawString("pitch", 10, float64(plotHeight)/2)

	for _, n := range c.Notes {
		switch n.Kind {
		case Pause:
			dc.SetRGBA(0.5, 0.5, 0.5, 0.6)
			x := xAt(n.Beat)
			dc.DrawLine(x, plotMargin, x, float64(plotHeight)-plotMargin)
			dc.Stroke()
		case Emphasized:
			dc.SetRGB(0.85, 0.65, 0.1)
			drawNoteBar(dc, xAt(n.Beat), xAt(n.Beat+n.Duration), yAt(n.Pitch))
		default:
			dc.SetRGB(0.15, 0.4, 0.8)
			drawNoteBar(dc, xAt(n.Beat), xAt(n.Beat+n.Duration), yAt(n.Pitch))
		}
	}

	return dc.SavePNG(path)
}

func drawNoteBar(dc *gg.Context, x0, x1, y float64) {
	if x1-x0 < plotDotSize {
		x1 = x0 + plotDotSize
	}
	dc.DrawRectangle(x0, y-plotDotSize/2, x1-x0, plotDotSize)
	dc.Fill()
}
