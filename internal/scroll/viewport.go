package scroll

import "github.com/charmbracelet/bubbles/viewport"

// ViewportContainer 把 bubbles 的 viewport 适配为 Container
type ViewportContainer struct {
	VP *viewport.Model
}

func (v ViewportContainer) Offset() int {
	return v.VP.YOffset
}

func (v ViewportContainer) MaxOffset() int {
	return max(0, v.VP.TotalLineCount()-v.VP.Height)
}

func (v ViewportContainer) SetOffset(offset int) {
	v.VP.SetYOffset(offset)
}
