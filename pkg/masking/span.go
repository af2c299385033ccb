package masking

// SensitiveSpan is one located match of a detector inside a message.
// Offsets are byte offsets into the original message.
type SensitiveSpan struct {
	Start    int
	Length   int
	Kind     PatternKind
	Priority int
	RawText  string
}

// End returns the offset one past the last byte of the span.
func (s SensitiveSpan) End() int {
	return s.Start + s.Length
}

// Overlaps reports whether the two spans share at least one byte.
func (s SensitiveSpan) Overlaps(o SensitiveSpan) bool {
	return s.Start < o.End() && o.Start < s.End()
}

// FindSpans returns the non-overlapping matches of the detector's pattern in
// text, left to right. Zero-length matches are discarded.
func (d *Detector) FindSpans(text string) []SensitiveSpan {
	locs := d.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	spans := make([]SensitiveSpan, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if end <= start {
			continue
		}
		spans = append(spans, SensitiveSpan{
			Start:    start,
			Length:   end - start,
			Kind:     d.kind,
			Priority: d.priority,
			RawText:  text[start:end],
		})
	}
	return spans
}
