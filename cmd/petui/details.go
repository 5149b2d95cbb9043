package main

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DetailsModel manages the results panel with a scrollable viewport
type DetailsModel struct {
	viewport viewport.Model
	content  string
	ready    bool
}

func NewDetailsModel() DetailsModel {
	return DetailsModel{}
}

func (d *DetailsModel) SetSize(width, height int) {
	if !d.ready {
		d.viewport = viewport.New(width, height)
		d.viewport.SetContent(d.content)
		d.ready = true
	} else {
		d.viewport.Width = width
		d.viewport.Height = height
	}
}

func (d *DetailsModel) SetContent(content string) {
	if content == d.content {
		return
	}
	d.content = content
	if d.ready {
		d.viewport.SetContent(content)
	}
}

// Update passes viewport messages such as mouse wheel events
func (d *DetailsModel) Update(msg tea.Msg) {
	d.viewport, _ = d.viewport.Update(msg)
}

func (d *DetailsModel) ScrollDown() {
	d.viewport.ScrollDown(1)
}

func (d *DetailsModel) ScrollUp() {
	d.viewport.ScrollUp(1)
}

func (d *DetailsModel) View() string {
	if !d.ready {
		return d.content
	}
	return d.viewport.View()
}
