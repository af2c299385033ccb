package masking

import (
	"slices"
	"sort"
)

// Replacement is one entry of a ReplacementPlan: the span to remove and the
// redacted text to insert at its start offset.
type Replacement struct {
	Span     SensitiveSpan
	Redacted string
}

// ReplacementPlan is ordered by descending Span.Start and no two entries'
// spans overlap, so applying entries in order never shifts the offsets of
// the entries still pending.
type ReplacementPlan []Replacement

// collectSpans runs every detector, in catalog order, over the full text.
func (c *Catalog) collectSpans(text string) []SensitiveSpan {
	var spans []SensitiveSpan
	for _, d := range c.detectors {
		spans = append(spans, d.FindSpans(text)...)
	}
	return spans
}

// Plan builds the replacement plan for text.
//
// Detectors claim bytes in priority order: a span survives only if none of
// its bytes were already claimed by a kept span of an earlier detector.
// A losing span is dropped whole, never truncated.
func (c *Catalog) Plan(text string) ReplacementPlan {
	spans := c.collectSpans(text)
	if len(spans) == 0 {
		return nil
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Priority != spans[j].Priority {
			return spans[i].Priority < spans[j].Priority
		}
		return spans[i].Start < spans[j].Start
	})

	// kept is sorted by Start and pairwise disjoint, so only the neighbours
	// around the insertion point can overlap a candidate.
	kept := make([]SensitiveSpan, 0, len(spans))
	for _, sp := range spans {
		i := sort.Search(len(kept), func(k int) bool { return kept[k].Start >= sp.Start })
		if i > 0 && kept[i-1].Overlaps(sp) {
			continue
		}
		if i < len(kept) && kept[i].Overlaps(sp) {
			continue
		}
		kept = slices.Insert(kept, i, sp)
	}

	plan := make(ReplacementPlan, len(kept))
	for i, sp := range kept {
		plan[len(kept)-1-i] = Replacement{
			Span:     sp,
			Redacted: c.detectors[sp.Priority].Redact(sp.RawText),
		}
	}
	return plan
}

// Apply rewrites text by removing each span and inserting its redacted text
// at the span's original offset. text itself is not modified.
func (p ReplacementPlan) Apply(text string) string {
	out := text
	for _, r := range p {
		out = out[:r.Span.Start] + r.Redacted + out[r.Span.End():]
	}
	return out
}

// CountByKind returns how many replacements the plan holds per pattern kind.
func (p ReplacementPlan) CountByKind() map[PatternKind]int {
	counts := make(map[PatternKind]int, len(p))
	for _, r := range p {
		counts[r.Span.Kind]++
	}
	return counts
}
