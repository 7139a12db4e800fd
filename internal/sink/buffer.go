package sink

// Buffer keeps the visible text in memory.
type Buffer struct {
	text   []rune
	writes int
	erases int
}

// Write implements the sink contract.
func (b *Buffer) Write(r rune) error {
	b.text = append(b.text, r)
	b.writes++
	return nil
}

// Backspace removes the last rune, if any.
func (b *Buffer) Backspace() error {
	b.erases++
	if len(b.text) > 0 {
		b.text = b.text[:len(b.text)-1]
	}
	return nil
}

// String returns the visible text.
func (b *Buffer) String() string {
	return string(b.text)
}

// Len returns the number of visible runes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Counts reports how many writes and erases were performed.
func (b *Buffer) Counts() (writes, erases int) {
	return b.writes, b.erases
}
