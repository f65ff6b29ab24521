package output

import (
	"strings"
)

// BoxStyle defines the character set for drawing boxes
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
	TeeLeft     rune // Horizontal divider meeting the left border
	TeeRight    rune // Horizontal divider meeting the right border
	Dashed      rune // Horizontal rule for dashed outlines
}

var (
	// ASCIIStyle uses simple ASCII characters for box drawing
	ASCIIStyle = BoxStyle{
		TopLeft:     '+',
		TopRight:    '+',
		BottomLeft:  '+',
		BottomRight: '+',
		Horizontal:  '-',
		Vertical:    '|',
		TeeLeft:     '+',
		TeeRight:    '+',
		Dashed:      '.',
	}

	// UnicodeStyle uses Unicode box drawing characters
	UnicodeStyle = BoxStyle{
		TopLeft:     '┌',
		TopRight:    '┐',
		BottomLeft:  '└',
		BottomRight: '┘',
		Horizontal:  '─',
		Vertical:    '│',
		TeeLeft:     '├',
		TeeRight:    '┤',
		Dashed:      '┄',
	}
)

// Mark tags canvas cells so a renderer can color them
type Mark uint8

const (
	MarkNone Mark = iota
	MarkWindow
	MarkActive
	MarkDock
	MarkMenuBar
)

// Canvas represents a 2D character buffer for drawing
type Canvas struct {
	Width  int
	Height int
	buffer [][]rune
	marks  [][]Mark
	style  BoxStyle
}

// NewCanvas creates a new canvas with the specified dimensions
func NewCanvas(width, height int, useUnicode bool) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	buffer := make([][]rune, height)
	marks := make([][]Mark, height)
	for i := range buffer {
		buffer[i] = []rune(strings.Repeat(" ", width))
		marks[i] = make([]Mark, width)
	}

	style := ASCIIStyle
	if useUnicode {
		style = UnicodeStyle
	}

	return &Canvas{
		Width:  width,
		Height: height,
		buffer: buffer,
		marks:  marks,
		style:  style,
	}
}

// Style returns the box style in use
func (c *Canvas) Style() BoxStyle {
	return c.style
}

// SetCell sets a character at the specified position
func (c *Canvas) SetCell(x, y int, r rune) {
	if c.inBounds(x, y) {
		c.buffer[y][x] = r
	}
}

// GetCell returns the character at the specified position
func (c *Canvas) GetCell(x, y int) rune {
	if c.inBounds(x, y) {
		return c.buffer[y][x]
	}
	return ' '
}

// MarkAt returns the mark of a cell
func (c *Canvas) MarkAt(x, y int) Mark {
	if c.inBounds(x, y) {
		return c.marks[y][x]
	}
	return MarkNone
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// MarkRect tags every cell of a rectangle
func (c *Canvas) MarkRect(x, y, width, height int, m Mark) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			if c.inBounds(x+dx, y+dy) {
				c.marks[y+dy][x+dx] = m
			}
		}
	}
}

// DrawBox draws a box outline with the specified position and size
func (c *Canvas) DrawBox(x, y, width, height int) {
	c.drawOutline(x, y, width, height, c.style.Horizontal)
}

// DrawDashedBox draws a box whose top and bottom edges are dashed
func (c *Canvas) DrawDashedBox(x, y, width, height int) {
	c.drawOutline(x, y, width, height, c.style.Dashed)
}

func (c *Canvas) drawOutline(x, y, width, height int, horizontal rune) {
	if width < 2 || height < 2 {
		return
	}

	c.SetCell(x, y, c.style.TopLeft)
	c.SetCell(x+width-1, y, c.style.TopRight)
	c.SetCell(x, y+height-1, c.style.BottomLeft)
	c.SetCell(x+width-1, y+height-1, c.style.BottomRight)

	for i := 1; i < width-1; i++ {
		c.SetCell(x+i, y, horizontal)
		c.SetCell(x+i, y+height-1, horizontal)
	}
	for i := 1; i < height-1; i++ {
		c.SetCell(x, y+i, c.style.Vertical)
		c.SetCell(x+width-1, y+i, c.style.Vertical)
	}
}

// DrawWindow draws an opaque box: the interior is cleared first so it
// hides whatever was drawn beneath. With a title bar, a divider is drawn
// under the first interior row.
func (c *Canvas) DrawWindow(x, y, width, height int, titleBar bool) {
	if width < 2 || height < 2 {
		return
	}
	c.FillRect(x, y, width, height, ' ')
	c.DrawBox(x, y, width, height)

	if titleBar && height >= 4 {
		row := y + 2
		c.SetCell(x, row, c.style.TeeLeft)
		c.SetCell(x+width-1, row, c.style.TeeRight)
		for i := 1; i < width-1; i++ {
			c.SetCell(x+i, row, c.style.Horizontal)
		}
	}
}

// DrawHLine draws a horizontal rule across the given width
func (c *Canvas) DrawHLine(x, y, width int) {
	for i := 0; i < width; i++ {
		c.SetCell(x+i, y, c.style.Horizontal)
	}
}

// DrawText writes text at the specified position
func (c *Canvas) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		c.SetCell(x+i, y, r)
		i++
	}
}

// DrawTextCentered writes text centered within a width, truncating it
// when it does not fit
func (c *Canvas) DrawTextCentered(x, y, width int, text string) {
	runes := []rune(text)
	if len(runes) >= width {
		c.DrawText(x, y, string(runes[:max(width, 0)]))
		return
	}
	c.DrawText(x+(width-len(runes))/2, y, text)
}

// FillRect fills a rectangle with a character
func (c *Canvas) FillRect(x, y, width, height int, r rune) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			c.SetCell(x+dx, y+dy, r)
		}
	}
}

// String renders the canvas to a string
func (c *Canvas) String() string {
	return c.Render(nil)
}

// Render renders the canvas, passing each run of equally marked cells
// through paint. A nil paint renders plain text.
func (c *Canvas) Render(paint func(m Mark, s string) string) string {
	var sb strings.Builder
	for y, row := range c.buffer {
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && c.marks[y][x] == c.marks[y][start] {
				continue
			}
			run := string(row[start:x])
			if paint != nil && c.marks[y][start] != MarkNone {
				run = paint(c.marks[y][start], run)
			}
			sb.WriteString(run)
			start = x
		}
		if y < len(c.buffer)-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
