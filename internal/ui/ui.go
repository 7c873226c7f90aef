// Package ui renders the capture session with termui and feeds key presses
// back to the application core. It owns the terminal exclusively.
package ui

import (
	"fmt"
	"strings"
	"sync"

	termui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/wireview/wireview/internal/app"
	"github.com/wireview/wireview/internal/core"
)

// chartOrder fixes the bar chart layout so bars do not jump around as
// counters appear.
var chartOrder = []core.Protocol{
	core.ProtoARP,
	core.ProtoIPv4,
	core.ProtoIPv6,
	core.ProtoTCP,
	core.ProtoUDP,
	core.ProtoICMP,
	core.ProtoICMPv6,
}

// TUI implements app.View on top of termui.
type TUI struct {
	packets    *widgets.List
	counters   *widgets.BarChart
	interfaces *widgets.List
	footer     *widgets.Paragraph
	detail     *widgets.Paragraph

	keys      *termKeys
	closeOnce sync.Once
}

// New initializes the terminal and builds the widgets. The caller must
// ensure Close runs before the process exits, or the terminal stays raw.
func New() (*TUI, error) {
	if err := termui.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}

	t := &TUI{
		packets:    widgets.NewList(),
		counters:   widgets.NewBarChart(),
		interfaces: widgets.NewList(),
		footer:     widgets.NewParagraph(),
		detail:     widgets.NewParagraph(),
		keys:       newTermKeys(termui.PollEvents()),
	}

	t.packets.Title = " Packets "
	t.packets.SelectedRowStyle = termui.NewStyle(termui.ColorBlack, termui.ColorGreen)
	t.packets.SelectedRow = -1

	t.counters.Title = " Protocols "
	t.counters.BarWidth = 7
	t.counters.Labels = make([]string, len(chartOrder))
	for i, proto := range chartOrder {
		t.counters.Labels[i] = proto.String()
	}

	t.interfaces.Title = " Interfaces "

	t.footer.Border = false

	t.detail.Title = " Packet Detail "
	t.detail.WrapText = false
	return t, nil
}

// Keys returns the key source backed by this terminal.
func (t *TUI) Keys() app.KeySource { return t.keys }

// Render draws one snapshot. Called only from the application core's event
// loop, never concurrently.
func (t *TUI) Render(s app.Snapshot) error {
	width, height := termui.TerminalDimensions()
	sideWidth := width / 4
	if sideWidth < 24 {
		sideWidth = 24
	}
	footerTop := height - 3
	mainWidth := width - sideWidth

	t.layoutPackets(s, mainWidth, footerTop)
	t.layoutInterfaces(s, mainWidth, width, footerTop)
	t.layoutCounters(s, mainWidth, width, footerTop)
	t.layoutFooter(s, width, height)

	termui.Clear()
	drawables := []termui.Drawable{t.packets, t.interfaces, t.counters, t.footer}
	if s.Detail != nil {
		t.layoutDetail(s, width, height)
		drawables = append(drawables, t.detail)
	}
	termui.Render(drawables...)
	return nil
}

func (t *TUI) layoutPackets(s app.Snapshot, mainWidth, footerTop int) {
	t.packets.SetRect(0, 0, mainWidth, footerTop)

	visible := footerTop - 2 // minus borders
	start, end := viewport(len(s.Packets), visible, s.Selected)
	rows := make([]string, 0, end-start)
	for _, p := range s.Packets[start:end] {
		rows = append(rows, packetRow(p))
	}
	t.packets.Rows = rows
	if s.Selected >= 0 {
		t.packets.SelectedRow = s.Selected - start
	} else {
		t.packets.SelectedRow = -1
	}

	title := fmt.Sprintf(" Packets %d (%s) ", s.TotalPackets, formatBytes(s.TotalBytes))
	if s.State == app.StatePaused {
		title += "[PAUSED] "
	}
	t.packets.Title = title
}

func (t *TUI) layoutInterfaces(s app.Snapshot, left, right, footerTop int) {
	t.interfaces.SetRect(left, 0, right, footerTop/3)
	rows := make([]string, 0, len(s.Interfaces))
	for _, iface := range s.Interfaces {
		marker := "  "
		if iface.Name == s.Active {
			marker = "> "
		}
		state := "down"
		if iface.Up {
			state = "up"
		}
		rows = append(rows, fmt.Sprintf("%s%-12s %s", marker, iface.Name, state))
	}
	t.interfaces.Rows = rows
}

func (t *TUI) layoutCounters(s app.Snapshot, left, right, footerTop int) {
	t.counters.SetRect(left, footerTop/3, right, footerTop)
	data := make([]float64, len(chartOrder))
	maxVal := 1.0
	for i, proto := range chartOrder {
		data[i] = float64(s.Counters[proto].Packets)
		if data[i] > maxVal {
			maxVal = data[i]
		}
	}
	t.counters.Data = data
	t.counters.MaxVal = maxVal
}

func (t *TUI) layoutFooter(s app.Snapshot, width, height int) {
	t.footer.SetRect(0, height-3, width, height)
	text := "[q] quit  [p] pause  [i] interface  [j/k] select  [enter] detail  [esc] back"
	if s.Notice != "" {
		text += "  |  " + s.Notice
	}
	t.footer.Text = text
}

func (t *TUI) layoutDetail(s app.Snapshot, width, height int) {
	margin := width / 8
	t.detail.SetRect(margin, 2, width-margin, height-4)
	t.detail.Text = strings.Join(detailLines(s.Detail), "\n")
}

// Close restores the terminal and unblocks the key source. Idempotent.
func (t *TUI) Close() {
	t.closeOnce.Do(func() {
		termui.Close()
		t.keys.stop()
	})
}
