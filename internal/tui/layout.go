package tui

const (
	minContentWidth   = 40
	maxContentWidth   = 96
	horizontalPadding = 4
	tallWindowHeight  = 30
	aboutChrome       = 8
	minAboutHeight    = 5
)

type pageLayout struct {
	windowWidth  int
	windowHeight int
	contentWidth int
	inputHeight  int
	aboutHeight  int
}

func newPageLayout() pageLayout {
	return pageLayout{
		contentWidth: 76,
		inputHeight:  3,
		aboutHeight:  16,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height

	l.contentWidth = width - horizontalPadding
	if l.contentWidth < minContentWidth {
		l.contentWidth = minContentWidth
	}
	if l.contentWidth > maxContentWidth {
		l.contentWidth = maxContentWidth
	}

	l.inputHeight = 3
	if height >= tallWindowHeight {
		l.inputHeight = 5
	}

	l.aboutHeight = height - aboutChrome
	if l.aboutHeight < minAboutHeight {
		l.aboutHeight = minAboutHeight
	}
}

// wrapWidth is the text width inside a bordered, padded card.
func (l pageLayout) wrapWidth() int {
	w := l.contentWidth - 6
	if w < 20 {
		w = 20
	}
	return w
}
